package snippet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bastiangx/scls-go/internal/logger"
)

var log = logger.New("snippet")

// tomlFile mirrors the TOML `snippets` array format (spec.md §6.3).
type tomlFile struct {
	Snippets []tomlSnippet `toml:"snippets"`
}

type tomlSnippet struct {
	Scope       []string `toml:"scope"`
	Prefix      string   `toml:"prefix"`
	Body        string   `toml:"body"`
	Description string   `toml:"description"`
}

// stringOrList decodes either a bare JSON string or a JSON array of strings,
// mirroring the Rust VSCodeSnippetValue untagged enum.
type stringOrList []string

func (v *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = []string{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = list
	return nil
}

func (v stringOrList) join(sep string) string {
	return strings.Join([]string(v), sep)
}

type vscodeSnippet struct {
	Scope       *string       `json:"scope"`
	Prefix      *stringOrList `json:"prefix"`
	Body        stringOrList  `json:"body"`
	Description *stringOrList `json:"description"`
}

// LoadFromPath loads snippets from path, dispatching to LoadFromFile for a
// single file or walking a directory's immediate entries otherwise
// (spec.md §6.3), mirroring load_snippets_from_path. Per-file errors inside
// a directory walk are logged and skipped, not propagated.
func LoadFromPath(path string, scope []string) ([]Snippet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return LoadFromFile(path, scope)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		log.Errorf("failed to read snippets directory %s: %v", path, err)
		return nil, err
	}
	var all []Snippet
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		full := filepath.Join(path, e.Name())
		loaded, err := LoadFromFile(full, scope)
		if err != nil {
			log.Errorf("failed to load snippets from %s: %v", full, err)
			continue
		}
		all = append(all, loaded...)
	}
	return all, nil
}

// LoadFromFile loads a single snippets file, either TOML (a `snippets`
// array) or VSCode-style JSON (spec.md §6.3). If scope is nil, a file stem
// other than "snippets" contributes an implicit scope, mirroring
// load_snippets_from_file.
func LoadFromFile(path string, scope []string) ([]Snippet, error) {
	effectiveScope := scope
	if effectiveScope == nil {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if stem != "snippets" && stem != "" {
			effectiveScope = []string{stem}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snippets []Snippet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var f tomlFile
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, err
		}
		for _, s := range f.Snippets {
			snippets = append(snippets, Snippet{
				Scope:       s.Scope,
				Prefix:      s.Prefix,
				Body:        s.Body,
				Description: s.Description,
			})
		}
	case ".json":
		var raw map[string]vscodeSnippet
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		for name, vs := range raw {
			var scopeList []string
			if vs.Scope != nil {
				scopeList = strings.Split(*vs.Scope, ",")
			}
			body := vs.Body.join("\n")
			var description string
			if vs.Description != nil {
				description = vs.Description.join("\n")
			}
			prefixes := []string{name}
			if vs.Prefix != nil {
				prefixes = []string(*vs.Prefix)
			}
			for _, prefix := range prefixes {
				snippets = append(snippets, Snippet{
					Scope:       scopeList,
					Prefix:      prefix,
					Body:        body,
					Description: description,
				})
			}
		}
	default:
		return nil, errUnsupportedFormat(path)
	}

	if len(effectiveScope) > 0 {
		for i := range snippets {
			if len(snippets[i].Scope) > 0 {
				merged := append([]string{}, snippets[i].Scope...)
				for _, sc := range effectiveScope {
					if !slices.Contains(merged, sc) {
						merged = append(merged, sc)
					}
				}
				snippets[i].Scope = merged
			} else {
				snippets[i].Scope = effectiveScope
			}
		}
	}
	return snippets, nil
}

type unsupportedFormatError struct{ path string }

func (e *unsupportedFormatError) Error() string {
	return "unsupported snippets format: " + e.path
}

func errUnsupportedFormat(path string) error { return &unsupportedFormatError{path} }
