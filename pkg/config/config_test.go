package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.MaxCompletionItems != 100 {
		t.Errorf("MaxCompletionItems = %d, want 100", s.MaxCompletionItems)
	}
	if !s.FeatureWords || !s.FeatureSnippets || !s.FeatureUnicodeInput {
		t.Errorf("words/snippets/unicode-input should be enabled by default")
	}
	if s.FeaturePaths || s.FeatureCitations {
		t.Errorf("paths/citations should be disabled by default")
	}
	if s.CitationPrefixTrigger != "@" {
		t.Errorf("CitationPrefixTrigger = %q, want @", s.CitationPrefixTrigger)
	}
}

func TestPartialSettingsApplyEmptyIsNoop(t *testing.T) {
	s := Default()
	before := *s
	(&PartialSettings{}).Apply(s)
	if *s != before {
		t.Errorf("applying an empty PartialSettings mutated Settings: got %+v, want %+v", *s, before)
	}
}

func TestPartialSettingsApplyFieldWise(t *testing.T) {
	s := Default()
	n := 250
	snippetsFirst := true
	(&PartialSettings{MaxCompletionItems: &n, SnippetsFirst: &snippetsFirst}).Apply(s)
	if s.MaxCompletionItems != 250 {
		t.Errorf("MaxCompletionItems = %d, want 250", s.MaxCompletionItems)
	}
	if !s.SnippetsFirst {
		t.Errorf("SnippetsFirst = false, want true")
	}
	// untouched fields retain their default value.
	if s.MaxCharsPrefixLen != 64 {
		t.Errorf("MaxCharsPrefixLen should be untouched, got %d", s.MaxCharsPrefixLen)
	}
}

func TestPartialSettingsApplyIsIdempotent(t *testing.T) {
	s := Default()
	n := 5
	p := &PartialSettings{MaxCompletionItems: &n}
	p.Apply(s)
	p.Apply(s)
	if s.MaxCompletionItems != 5 {
		t.Errorf("MaxCompletionItems = %d, want 5 after repeated Apply", s.MaxCompletionItems)
	}
}

func TestPartialSettingsApplyNilReceiverOrTarget(t *testing.T) {
	var p *PartialSettings
	s := Default()
	p.Apply(s) // must not panic
	if s.MaxCompletionItems != 100 {
		t.Errorf("nil PartialSettings.Apply mutated Settings")
	}
	n := 3
	(&PartialSettings{MaxCompletionItems: &n}).Apply(nil) // must not panic
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := Default()
	s.MaxCompletionItems = 42
	s.FeaturePaths = true
	if err := Save(s, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MaxCompletionItems != 42 {
		t.Errorf("loaded MaxCompletionItems = %d, want 42", loaded.MaxCompletionItems)
	}
	if !loaded.FeaturePaths {
		t.Errorf("loaded FeaturePaths = false, want true")
	}
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	s, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxCompletionItems != 100 {
		t.Errorf("InitConfig should return defaults for a fresh path, got %d", s.MaxCompletionItems)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("InitConfig did not persist a loadable file: %v", err)
	}
	if loaded.MaxCompletionItems != 100 {
		t.Errorf("persisted config MaxCompletionItems = %d, want 100", loaded.MaxCompletionItems)
	}
}

func TestInitConfigLoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := Default()
	s.MaxCompletionItems = 7
	if err := Save(s, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MaxCompletionItems != 7 {
		t.Errorf("InitConfig should load the existing file, got MaxCompletionItems = %d, want 7", loaded.MaxCompletionItems)
	}
}

func TestConfigDirNonEmpty(t *testing.T) {
	if dir := ConfigDir(); dir == "" {
		t.Errorf("ConfigDir() returned empty string")
	}
}
