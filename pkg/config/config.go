// Package config manages TOML config for the completion backend.
//
// InitConfig handles automatic config file creation and loading with
// fallback to defaults. Load and Save provide direct fs access for runtime
// changes. PartialSettings.Apply allows targeted field updates sent over
// workspace/didChangeConfiguration, with persistence left to the caller.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/scls-go/internal/logger"
)

var log = logger.New("config")

// defaultCitationRegexp matches lines like `bibliography: "path"`, with
// optional surrounding brackets/quotes.
const defaultCitationRegexp = `bibliography:\s*['"\[]*([~\w\./\\-]*)['"\]]*`

// Settings is the flat, typed configuration record consulted by every
// completion provider and by the prefix extractor's bounds.
type Settings struct {
	MaxCompletionItems int `toml:"max_completion_items"`
	MaxCharsPrefixLen  int `toml:"max_chars_prefix_len"`
	MinCharsPrefixLen  int `toml:"min_chars_prefix_len"`

	// MaxSnippetPrefixLen/MaxUnicodePrefixLen bound the tail-matching scan
	// of the snippet and unicode-input providers. Neither has an
	// independent default in the settings table this was distilled from;
	// both default to MaxCharsPrefixLen and can be overridden separately.
	MaxSnippetPrefixLen int `toml:"max_snippet_prefix_len"`
	MaxUnicodePrefixLen int `toml:"max_unicode_prefix_len"`

	SnippetsFirst            bool `toml:"snippets_first"`
	SnippetsInlineByWordTail bool `toml:"snippets_inline_by_word_tail"`

	CitationPrefixTrigger         string `toml:"citation_prefix_trigger"`
	CitationBibfileExtractRegexp string `toml:"citation_bibfile_extract_regexp"`

	FeatureWords        bool `toml:"feature_words"`
	FeatureSnippets     bool `toml:"feature_snippets"`
	FeatureUnicodeInput bool `toml:"feature_unicode_input"`
	FeaturePaths        bool `toml:"feature_paths"`
	FeatureCitations    bool `toml:"feature_citations"`
}

// Default returns the baseline settings a fresh backend starts from.
func Default() *Settings {
	return &Settings{
		MaxCompletionItems:            100,
		MaxCharsPrefixLen:             64,
		MinCharsPrefixLen:             2,
		MaxSnippetPrefixLen:           64,
		MaxUnicodePrefixLen:           64,
		SnippetsFirst:                 false,
		SnippetsInlineByWordTail:      false,
		CitationPrefixTrigger:         "@",
		CitationBibfileExtractRegexp:  defaultCitationRegexp,
		FeatureWords:                  true,
		FeatureSnippets:               true,
		FeatureUnicodeInput:           true,
		FeaturePaths:                  false,
		FeatureCitations:              false,
	}
}

// PartialSettings mirrors Settings with every field optional, used by
// workspace/didChangeConfiguration payloads. Unset fields leave the
// current value untouched on Apply.
type PartialSettings struct {
	MaxCompletionItems *int `toml:"max_completion_items"`
	MaxCharsPrefixLen  *int `toml:"max_chars_prefix_len"`
	MinCharsPrefixLen  *int `toml:"min_chars_prefix_len"`

	MaxSnippetPrefixLen *int `toml:"max_snippet_prefix_len"`
	MaxUnicodePrefixLen *int `toml:"max_unicode_prefix_len"`

	SnippetsFirst            *bool `toml:"snippets_first"`
	SnippetsInlineByWordTail *bool `toml:"snippets_inline_by_word_tail"`

	CitationPrefixTrigger        *string `toml:"citation_prefix_trigger"`
	CitationBibfileExtractRegexp *string `toml:"citation_bibfile_extract_regexp"`

	FeatureWords        *bool `toml:"feature_words"`
	FeatureSnippets     *bool `toml:"feature_snippets"`
	FeatureUnicodeInput *bool `toml:"feature_unicode_input"`
	FeaturePaths        *bool `toml:"feature_paths"`
	FeatureCitations    *bool `toml:"feature_citations"`
}

// Apply merges p field-wise into cur. Applying an empty PartialSettings is
// a no-op, so repeated identical ChangeConfiguration messages are idempotent.
func (p *PartialSettings) Apply(cur *Settings) {
	if p == nil || cur == nil {
		return
	}
	if p.MaxCompletionItems != nil {
		cur.MaxCompletionItems = *p.MaxCompletionItems
	}
	if p.MaxCharsPrefixLen != nil {
		cur.MaxCharsPrefixLen = *p.MaxCharsPrefixLen
	}
	if p.MinCharsPrefixLen != nil {
		cur.MinCharsPrefixLen = *p.MinCharsPrefixLen
	}
	if p.MaxSnippetPrefixLen != nil {
		cur.MaxSnippetPrefixLen = *p.MaxSnippetPrefixLen
	}
	if p.MaxUnicodePrefixLen != nil {
		cur.MaxUnicodePrefixLen = *p.MaxUnicodePrefixLen
	}
	if p.SnippetsFirst != nil {
		cur.SnippetsFirst = *p.SnippetsFirst
	}
	if p.SnippetsInlineByWordTail != nil {
		cur.SnippetsInlineByWordTail = *p.SnippetsInlineByWordTail
	}
	if p.CitationPrefixTrigger != nil {
		cur.CitationPrefixTrigger = *p.CitationPrefixTrigger
	}
	if p.CitationBibfileExtractRegexp != nil {
		cur.CitationBibfileExtractRegexp = *p.CitationBibfileExtractRegexp
	}
	if p.FeatureWords != nil {
		cur.FeatureWords = *p.FeatureWords
	}
	if p.FeatureSnippets != nil {
		cur.FeatureSnippets = *p.FeatureSnippets
	}
	if p.FeatureUnicodeInput != nil {
		cur.FeatureUnicodeInput = *p.FeatureUnicodeInput
	}
	if p.FeaturePaths != nil {
		cur.FeaturePaths = *p.FeaturePaths
	}
	if p.FeatureCitations != nil {
		cur.FeatureCitations = *p.FeatureCitations
	}
}

// InitConfig loads config from path or creates a default file there.
func InitConfig(path string) (*Settings, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s := Default()
		if err := Save(s, path); err != nil {
			return nil, err
		}
		log.Debugf("created default config file at: %s", path)
		return s, nil
	}
	s, err := Load(path)
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		return Default(), nil
	}
	return s, nil
}

// Load decodes a TOML settings file, starting from Default so any field
// absent from the file keeps its default value.
func Load(path string) (*Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, s); err != nil {
		log.Errorf("failed to decode config file: %v", err)
		return nil, err
	}
	return s, nil
}

// Save encodes s to a TOML file at path.
func Save(s *Settings, path string) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(s)
}

// ConfigDir resolves the platform's XDG-style config directory, honoring
// SCLS_CONFIG_SUBDIRECTORY, the way the teacher's internal/utils path
// resolution picks a per-platform directory.
func ConfigDir() string {
	sub := os.Getenv("SCLS_CONFIG_SUBDIRECTORY")
	if sub == "" {
		sub = "scls"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("could not determine home directory: %v", err)
		home = os.TempDir()
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", sub)
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, sub)
		}
		return filepath.Join(home, ".config", sub)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, sub)
		}
		return filepath.Join(home, "AppData", "Roaming", sub)
	default:
		return filepath.Join(home, "."+sub)
	}
}
