package unicodeinput

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bastiangx/scls-go/internal/logger"
)

var log = logger.New("unicodeinput")

// LoadFromPath loads a TOML map (prefix -> body) at path, or every such file
// in path if it is a directory (spec.md §6.4), mirroring
// load_unicode_input_from_path. The result is sorted by SortDescending.
func LoadFromPath(path string) ([]Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var items []Item
	if !info.IsDir() {
		items, err = loadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Errorf("failed to read unicode-input directory %s: %v", path, err)
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			full := filepath.Join(path, e.Name())
			loaded, err := loadFile(full)
			if err != nil {
				log.Errorf("failed to load unicode-input config from %s: %v", full, err)
				continue
			}
			items = append(items, loaded...)
		}
	}
	return SortDescending(items), nil
}

func loadFile(path string) ([]Item, error) {
	if strings.ToLower(filepath.Ext(path)) != ".toml" {
		return nil, &unsupportedFormatError{path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]string)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(raw))
	for prefix, body := range raw {
		items = append(items, Item{Trigger: prefix, Body: body})
	}
	return items, nil
}

type unsupportedFormatError struct{ path string }

func (e *unsupportedFormatError) Error() string {
	return "unsupported unicode-input format: " + e.path
}
