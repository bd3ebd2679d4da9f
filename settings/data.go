// Package settings implements the host's generic settings object and its
// file persistence.
package settings

import "sync"

// Data holds user values and declared defaults. Values are stored as
// float64 or int64; getters convert between the two the way the host
// does. Data is safe for concurrent use.
type Data struct {
	mu       sync.RWMutex
	values   map[string]any
	defaults map[string]any
}

func New() *Data {
	return &Data{
		values:   make(map[string]any),
		defaults: make(map[string]any),
	}
}

func (d *Data) lookup(name string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if v, ok := d.values[name]; ok {
		return v, true
	}
	v, ok := d.defaults[name]
	return v, ok
}

func (d *Data) GetDouble(name string) float64 {
	v, _ := d.lookup(name)
	return toDouble(v)
}

func (d *Data) GetInt(name string) int64 {
	v, _ := d.lookup(name)
	return toInt(v)
}

func (d *Data) SetDouble(name string, v float64) {
	d.set(d.values, name, v)
}

func (d *Data) SetInt(name string, v int64) {
	d.set(d.values, name, v)
}

func (d *Data) SetDefaultDouble(name string, v float64) {
	d.set(d.defaults, name, v)
}

func (d *Data) SetDefaultInt(name string, v int64) {
	d.set(d.defaults, name, v)
}

func (d *Data) set(m map[string]any, name string, v any) {
	d.mu.Lock()
	m[name] = v
	d.mu.Unlock()
}

// HasUserValue reports whether name was explicitly set.
func (d *Data) HasUserValue(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.values[name]
	return ok
}

func (d *Data) userValues() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

func toDouble(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
