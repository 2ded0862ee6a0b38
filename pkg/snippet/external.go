package snippet

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourcePath names one scoped snippet path within a fetched git source.
type SourcePath struct {
	Scope []string `toml:"scope"`
	Path  string   `toml:"path"`
}

// SnippetSource is one entry of an external-snippets config file
// (spec.md §6.5, component C15), mirroring Rust's SnippetSource.
type SnippetSource struct {
	Name  string       `toml:"name"`
	Git   string       `toml:"git"`
	Paths []SourcePath `toml:"paths"`
}

// ExternalSnippets is the top-level external-snippets config document.
type ExternalSnippets struct {
	Sources []SnippetSource `toml:"sources"`
}

// destinationPath derives a filesystem-safe directory name from a git URL by
// stripping the query string and the scheme, mirroring
// SnippetSource::destination_path.
func destinationPath(gitURL string) string {
	noQuery := strings.SplitN(gitURL, "?", 2)[0]
	parts := strings.SplitN(noQuery, "://", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return noQuery
}

// FetchExternalSnippets reads configPath (an ExternalSnippets TOML file) and
// clones/updates each source's git repository into
// <directory of configPath>/external-snippets/<destination_path> via the system git CLI
// (spec.md §1 Out-of-scope: "external snippet repository fetching via a git
// CLI" — boundary code, not engine logic).
func FetchExternalSnippets(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	var cfg ExternalSnippets
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return err
	}

	baseDir := filepath.Join(filepath.Dir(configPath), "external-snippets")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	for _, source := range cfg.Sources {
		name := source.Name
		if name == "" {
			name = source.Git
		}
		dest := filepath.Join(baseDir, destinationPath(source.Git))

		if _, err := os.Stat(dest); os.IsNotExist(err) {
			log.Infof("cloning external snippet source %s into %s", name, dest)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				log.Errorf("failed to prepare destination for %s: %v", name, err)
				continue
			}
			cmd := exec.Command("git", "clone", source.Git, dest)
			if out, err := cmd.CombinedOutput(); err != nil {
				log.Errorf("git clone failed for %s: %v: %s", name, err, out)
			}
			continue
		}

		log.Infof("updating external snippet source %s in %s", name, dest)
		cmd := exec.Command("git", "-C", dest, "pull", "--rebase")
		if out, err := cmd.CombinedOutput(); err != nil {
			log.Errorf("git pull failed for %s: %v: %s", name, err, out)
		}
	}
	return nil
}

// LoadExternalSnippets loads every source's scoped snippet paths, the way
// load_snippets appends base snippets with each external source's files,
// tagging each resulting snippet's description with the source name.
func LoadExternalSnippets(configPath string) ([]Snippet, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg ExternalSnippets
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	baseDir := filepath.Join(filepath.Dir(configPath), "external-snippets")
	var all []Snippet
	for _, source := range cfg.Sources {
		name := source.Name
		if name == "" {
			name = source.Git
		}
		srcDir := filepath.Join(baseDir, destinationPath(source.Git))
		for _, p := range source.Paths {
			loaded, err := LoadFromPath(filepath.Join(srcDir, p.Path), p.Scope)
			if err != nil {
				log.Errorf("failed to load external snippets from %s (%s): %v", name, p.Path, err)
				continue
			}
			for i := range loaded {
				if loaded[i].Description != "" {
					loaded[i].Description = name + "\n\n" + loaded[i].Description
				} else {
					loaded[i].Description = name
				}
			}
			all = append(all, loaded...)
		}
	}
	return all, nil
}
