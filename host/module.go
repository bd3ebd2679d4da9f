package host

// Module gives a plugin access to its shipped resources.
type Module interface {
	// File resolves a resource relative to the module data directory.
	// ok is false when the resource does not exist.
	File(name string) (path string, ok bool)
	// Text returns the localized string for key, or key itself when no
	// translation exists.
	Text(key string) string
}
