// Package dropshadow is a video filter that draws an offset, blurred and
// tinted copy of the source alpha beneath the source.
package dropshadow

import "github.com/richinsley/dropshadow/host"

// Filter is one drop shadow attachment. The host calls Update, Render and
// Destroy from a single goroutine.
type Filter struct {
	source   host.FilterContext
	graphics host.Graphics

	binding ShaderBinding
	config  ShadowConfig
	color   host.Vec4
}

// New creates a filter for source. It never fails: when the effect can not
// be loaded the filter passes frames through unchanged.
func New(settings host.Data, source host.FilterContext, gfx host.Graphics, module host.Module) *Filter {
	f := &Filter{
		source:   source,
		graphics: gfx,
		config:   DefaultConfig(),
	}
	if gfx != nil {
		host.WithGraphics(gfx, func() {
			f.binding = loadBinding(gfx, module)
		})
	} else {
		f.binding = loadBinding(nil, module)
	}
	f.Update(settings)
	return f
}

// Update replaces the configuration from settings.
func (f *Filter) Update(settings host.Data) {
	f.config = ConfigFromSettings(settings)
	f.color = f.config.Vec4()
}

// Config returns the active configuration.
func (f *Filter) Config() ShadowConfig {
	return f.config
}

// Color returns the decoded shadow color.
func (f *Filter) Color() host.Vec4 {
	return f.color
}

// Active reports whether the effect loaded; an inactive filter always
// skips.
func (f *Filter) Active() bool {
	return f.binding.Complete()
}

// Render draws one frame.
func (f *Filter) Render() {
	if !f.binding.Complete() {
		f.source.SkipVideoFilter()
		return
	}

	if !f.source.ProcessFilterBegin(host.ColorFormatRGBA, host.AllowDirectRendering) {
		return
	}

	target := f.source.FilterTarget()
	var width, height uint32
	if target != nil {
		width, height = target.BaseWidth(), target.BaseHeight()
	}
	if width == 0 || height == 0 {
		f.source.SkipVideoFilter()
		return
	}

	texel := host.Vec2{X: 1 / float32(width), Y: 1 / float32(height)}

	f.binding.shadowOffset.SetVec2(host.Vec2{X: f.config.OffsetX, Y: f.config.OffsetY})
	f.binding.blurRadius.SetFloat(f.config.BlurRadius)
	f.binding.shadowColor.SetVec4(f.color)
	f.binding.shadowOpacity.SetFloat(f.config.Opacity)
	f.binding.texelSize.SetVec2(texel)

	f.source.ProcessFilterEnd(f.binding.effect, 0, 0)
}

// Destroy releases the effect. The filter must not be used afterwards.
func (f *Filter) Destroy() {
	if f.graphics == nil {
		f.binding = ShaderBinding{}
		return
	}
	host.WithGraphics(f.graphics, func() {
		f.binding.release(f.graphics)
	})
}
