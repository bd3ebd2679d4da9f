package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported settings format")
	ErrUnsupportedValue  = errors.New("unsupported settings value")
)

// Format is a settings file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads user values from a settings file.
func Load(path string) (*Data, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()
	d, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return d, nil
}

// Save writes the user values of d. Defaults are never persisted.
func Save(path string, d *Data) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Decode parses a flat object of numeric values.
func Decode(r io.Reader, format Format) (*Data, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	d := New()
	for name, v := range raw {
		switch n := v.(type) {
		case json.Number:
			if i, err := n.Int64(); err == nil {
				d.values[name] = i
				continue
			}
			f, err := n.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%s", ErrUnsupportedValue, name, n)
			}
			d.values[name] = f
		case int64:
			d.values[name] = n
		case float64:
			d.values[name] = n
		default:
			return nil, fmt.Errorf("%w: %s has type %T", ErrUnsupportedValue, name, v)
		}
	}
	return d, nil
}

// Encode writes the user values of d.
func Encode(w io.Writer, d *Data, format Format) error {
	values := d.userValues()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		if err := enc.Encode(values); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(values); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}
