package host

// Data is the host's generic settings object. Reads fall back to the
// declared default when no user value is present, and to zero when
// neither exists.
type Data interface {
	GetDouble(name string) float64
	GetInt(name string) int64
	SetDouble(name string, v float64)
	SetInt(name string, v int64)
	SetDefaultDouble(name string, v float64)
	SetDefaultInt(name string, v int64)
}
