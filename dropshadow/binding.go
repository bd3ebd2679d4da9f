package dropshadow

import "github.com/richinsley/dropshadow/host"

// EffectPath is the effect resource loaded for every instance.
const EffectPath = "effects/drop-shadow.effect"

// Uniform names the effect must expose.
const (
	paramShadowOffset  = "shadow_offset"
	paramBlurRadius    = "blur_radius"
	paramShadowColor   = "shadow_color"
	paramShadowOpacity = "shadow_opacity"
	paramTexelSize     = "texel_size"
)

// ShaderBinding is the effect and its uniform slots. It is resolved once
// when the filter is created and never changes afterwards.
type ShaderBinding struct {
	effect        host.Effect
	shadowOffset  host.EffectParam
	blurRadius    host.EffectParam
	shadowColor   host.EffectParam
	shadowOpacity host.EffectParam
	texelSize     host.EffectParam
}

// Complete reports whether the effect and all five params resolved.
func (b *ShaderBinding) Complete() bool {
	return b.effect != nil &&
		b.shadowOffset != nil &&
		b.blurRadius != nil &&
		b.shadowColor != nil &&
		b.shadowOpacity != nil &&
		b.texelSize != nil
}

// loadBinding must be called inside a graphics scope. Failures leave the
// binding incomplete and are logged once here.
func loadBinding(gfx host.Graphics, module host.Module) ShaderBinding {
	var b ShaderBinding
	if gfx == nil || module == nil {
		logger().Warn("no graphics runtime or module, filter disabled")
		return b
	}

	path, ok := module.File(EffectPath)
	if !ok {
		logger().Warn("module file lookup failed", "file", EffectPath)
		return b
	}

	effect, err := gfx.CreateEffectFromFile(path)
	if err != nil || effect == nil {
		logger().Warn("failed to load effect", "file", path, "error", err)
		return b
	}

	b.effect = effect
	b.shadowOffset = effect.Param(paramShadowOffset)
	b.blurRadius = effect.Param(paramBlurRadius)
	b.shadowColor = effect.Param(paramShadowColor)
	b.shadowOpacity = effect.Param(paramShadowOpacity)
	b.texelSize = effect.Param(paramTexelSize)

	if !b.Complete() {
		logger().Warn("effect is missing parameters, filter disabled", "file", path, "missing", b.missing())
	}
	return b
}

func (b *ShaderBinding) missing() []string {
	var names []string
	for _, p := range []struct {
		name  string
		param host.EffectParam
	}{
		{paramShadowOffset, b.shadowOffset},
		{paramBlurRadius, b.blurRadius},
		{paramShadowColor, b.shadowColor},
		{paramShadowOpacity, b.shadowOpacity},
		{paramTexelSize, b.texelSize},
	} {
		if p.param == nil {
			names = append(names, p.name)
		}
	}
	return names
}

// release must be called inside a graphics scope.
func (b *ShaderBinding) release(gfx host.Graphics) {
	if b.effect != nil && gfx != nil {
		gfx.DestroyEffect(b.effect)
	}
	*b = ShaderBinding{}
}
