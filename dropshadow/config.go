package dropshadow

import "github.com/richinsley/dropshadow/host"

// Setting names as stored in the host settings object.
const (
	SettingOffsetX    = "offset_x"
	SettingOffsetY    = "offset_y"
	SettingBlurRadius = "blur_radius"
	SettingColor      = "color"
	SettingOpacity    = "opacity"
)

const (
	defaultOffsetX    = 4.0
	defaultOffsetY    = 4.0
	defaultBlurRadius = 4.0
	defaultOpacity    = 0.6
	defaultColor      = 0x80000000 // translucent black
)

// ShadowConfig is the user facing shadow configuration. Offsets and blur
// are in pixels, Opacity scales the color alpha, Color is packed RGBA
// with red in the low byte.
type ShadowConfig struct {
	OffsetX    float32
	OffsetY    float32
	BlurRadius float32
	Opacity    float32
	Color      uint32
}

// DefaultConfig returns the baseline applied when a setting has no value.
func DefaultConfig() ShadowConfig {
	return ShadowConfig{
		OffsetX:    defaultOffsetX,
		OffsetY:    defaultOffsetY,
		BlurRadius: defaultBlurRadius,
		Opacity:    defaultOpacity,
		Color:      defaultColor,
	}
}

// ConfigFromSettings reads a complete configuration. Values are taken as
// stored; range checks belong to whoever wrote the settings.
func ConfigFromSettings(settings host.Data) ShadowConfig {
	return ShadowConfig{
		OffsetX:    float32(settings.GetDouble(SettingOffsetX)),
		OffsetY:    float32(settings.GetDouble(SettingOffsetY)),
		BlurRadius: float32(settings.GetDouble(SettingBlurRadius)),
		Opacity:    float32(settings.GetDouble(SettingOpacity)),
		Color:      uint32(settings.GetInt(SettingColor)),
	}
}

// Vec4 returns the shadow color as a normalized shader vector.
func (c ShadowConfig) Vec4() host.Vec4 {
	return host.Vec4FromRGBA(c.Color)
}

// Defaults declares the baseline values on a settings object.
func Defaults(settings host.Data) {
	settings.SetDefaultDouble(SettingOffsetX, defaultOffsetX)
	settings.SetDefaultDouble(SettingOffsetY, defaultOffsetY)
	settings.SetDefaultDouble(SettingBlurRadius, defaultBlurRadius)
	settings.SetDefaultInt(SettingColor, defaultColor)
	settings.SetDefaultDouble(SettingOpacity, defaultOpacity)
}

// Properties describes the editable settings. Labels are looked up in the
// module string table.
func Properties(module host.Module) *host.Properties {
	text := func(key string) string {
		if module == nil {
			return key
		}
		return module.Text(key)
	}
	props := host.NewProperties()
	props.AddFloat(SettingOffsetX, text("OffsetX"), -100, 100, 1)
	props.AddFloat(SettingOffsetY, text("OffsetY"), -100, 100, 1)
	props.AddFloat(SettingBlurRadius, text("BlurRadius"), 0, 20, 0.5)
	props.AddColor(SettingColor, text("Color"))
	props.AddFloatSlider(SettingOpacity, text("Opacity"), 0, 1, 0.01)
	return props
}
