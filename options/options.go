package options

type FilterOptions struct {
	Help       *bool
	Input      *string
	Output     *string
	FFMPEGPath *string
	Codec      *string
	Bitrate    *string
	HWAccel    *bool
	Pad        *int  // Transparent border added around each frame so the shadow is not cropped
	MaxFrames  *int  // Stop after this many frames; 0 processes the whole input
	Properties *bool // Print the filter properties and exit
	Debug      *bool
	Headless   *bool // Use an EGL pbuffer context instead of a hidden GLFW window (Linux)

	DataDir *string // Directory holding effects/ and locale/
	Locale  *string

	SettingsFile *string // JSON or TOML settings applied on top of the defaults
	Watch        *bool   // Reload SettingsFile while processing
	SaveSettings *string // Write the effective user settings to this file

	// Per-setting overrides. Only flags named in Overrides are applied.
	OffsetX    *float64
	OffsetY    *float64
	BlurRadius *float64
	Opacity    *float64
	Color      *string // 0xAABBGGRR or #RRGGBBAA
	Overrides  map[string]bool
}
