package snippet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDestinationPathStripsSchemeAndQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/foo/bar.git?ref=main", "github.com/foo/bar.git"},
		{"https://github.com/foo/bar.git", "github.com/foo/bar.git"},
		{"git@github.com:foo/bar.git", "git@github.com:foo/bar.git"},
	}
	for _, c := range cases {
		if got := destinationPath(c.in); got != c.want {
			t.Errorf("destinationPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadExternalSnippetsTagsDescriptionWithSourceName(t *testing.T) {
	dir := t.TempDir()

	srcDir := filepath.Join(dir, "external-snippets", destinationPath("https://example.com/org/repo.git"))
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "snippets.toml"), []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := `
[[sources]]
name = "my-source"
git = "https://example.com/org/repo.git"

[[sources.paths]]
path = "snippets.toml"
`
	cfgPath := filepath.Join(dir, "external-snippets.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadExternalSnippets(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("LoadExternalSnippets() = %d snippets, want 1", len(got))
	}
	want := "my-source\n\nentrypoint"
	if got[0].Description != want {
		t.Errorf("Description = %q, want %q", got[0].Description, want)
	}
}

func TestLoadExternalSnippetsFallsBackToGitURLWhenNameEmpty(t *testing.T) {
	dir := t.TempDir()

	srcDir := filepath.Join(dir, "external-snippets", destinationPath("https://example.com/org/repo.git"))
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `
[[snippets]]
prefix = "x"
body = "y"
`
	if err := os.WriteFile(filepath.Join(srcDir, "snippets.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := `
[[sources]]
git = "https://example.com/org/repo.git"

[[sources.paths]]
path = "snippets.toml"
`
	cfgPath := filepath.Join(dir, "external-snippets.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadExternalSnippets(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Description != "https://example.com/org/repo.git" {
		t.Fatalf("expected description to fall back to git URL, got %+v", got)
	}
}

func TestLoadExternalSnippetsSkipsMissingSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := `
[[sources]]
name = "absent"
git = "https://example.com/org/missing.git"

[[sources.paths]]
path = "snippets.toml"
`
	cfgPath := filepath.Join(dir, "external-snippets.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadExternalSnippets(cfgPath)
	if err != nil {
		t.Fatalf("a missing source directory should be logged and skipped, not returned as an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("LoadExternalSnippets() = %d snippets, want 0", len(got))
	}
}
