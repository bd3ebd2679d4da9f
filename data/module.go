// Package data locates the resources shipped next to the filter: shader
// effects under effects/ and translated strings under locale/.
package data

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultLocale is used when the requested locale has no table.
const DefaultLocale = "en-US"

// Module resolves files and strings from a data directory.
type Module struct {
	dir    string
	locale string
	text   map[string]string
}

// New opens the data directory dir and loads the string table for locale,
// falling back to DefaultLocale.
func New(dir, locale string) (*Module, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	m := &Module{dir: dir, text: make(map[string]string)}
	for _, loc := range []string{locale, DefaultLocale} {
		if loc == "" {
			continue
		}
		text, err := loadLocale(filepath.Join(dir, "locale", loc+".toml"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		m.locale = loc
		m.text = text
		break
	}
	return m, nil
}

func loadLocale(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := make(map[string]string)
	if err := toml.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("failed to parse locale %s: %w", path, err)
	}
	return text, nil
}

// Locale returns the locale whose table was loaded, or "" if none was.
func (m *Module) Locale() string {
	return m.locale
}

func (m *Module) File(name string) (string, bool) {
	path := filepath.Join(m.dir, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (m *Module) Text(key string) string {
	if s, ok := m.text[key]; ok {
		return s
	}
	return key
}
