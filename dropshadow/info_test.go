package dropshadow

import (
	"testing"

	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoDescriptor(t *testing.T) {
	info := Info(nil, newFakeModule())
	assert.Equal(t, "drop_shadow_filter", info.ID)
	assert.Equal(t, host.SourceTypeFilter, info.Type)
	assert.Equal(t, host.OutputVideo, info.OutputFlags)
	assert.Equal(t, "text:DropShadowFilterName", info.GetName())
	assert.Equal(t, "DropShadowFilterName", Info(nil, nil).GetName())
}

func TestProperties(t *testing.T) {
	props := Properties(newFakeModule()).List()
	require.Len(t, props, 5)

	want := []host.Property{
		{Name: SettingOffsetX, Description: "text:OffsetX", Type: host.PropertyFloat, NumberType: host.NumberScroller, Min: -100, Max: 100, Step: 1},
		{Name: SettingOffsetY, Description: "text:OffsetY", Type: host.PropertyFloat, NumberType: host.NumberScroller, Min: -100, Max: 100, Step: 1},
		{Name: SettingBlurRadius, Description: "text:BlurRadius", Type: host.PropertyFloat, NumberType: host.NumberScroller, Min: 0, Max: 20, Step: 0.5},
		{Name: SettingColor, Description: "text:Color", Type: host.PropertyColor},
		{Name: SettingOpacity, Description: "text:Opacity", Type: host.PropertyFloat, NumberType: host.NumberSlider, Min: 0, Max: 1, Step: 0.01},
	}
	for i, p := range props {
		assert.Equal(t, want[i], *p)
	}
}

func TestRegisterAndLifecycle(t *testing.T) {
	h := newHarness(1920, 1080)
	reg := host.NewRegistry()
	require.NoError(t, Register(reg, h.graphics, h.module))
	assert.ErrorIs(t, Register(reg, h.graphics, h.module), host.ErrDuplicateSource)

	src, err := reg.Create(ID, settings.New(), h.ctx)
	require.NoError(t, err)
	f, ok := src.Instance().(*Filter)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig(), f.Config(), "registry seeds defaults")

	s := settings.New()
	s.SetDouble(SettingOffsetX, -20)
	src.Update(s)
	assert.Equal(t, float32(-20), f.Config().OffsetX)
	assert.Equal(t, float32(4), f.Config().OffsetY)

	src.Render()
	assert.Len(t, h.rec.ops("end"), 1)
	assert.NotNil(t, src.Properties().Get(SettingBlurRadius))

	src.Destroy()
	assert.Len(t, h.graphics.destroyed, 1)
}

func TestCreateWithoutContextFails(t *testing.T) {
	h := newHarness(1920, 1080)
	reg := host.NewRegistry()
	require.NoError(t, Register(reg, h.graphics, h.module))

	_, err := reg.Create(ID, settings.New(), nil)
	assert.ErrorIs(t, err, host.ErrCreateFailed)
	assert.Empty(t, h.graphics.loaded)
}

func TestCreateRejectsNilContext(t *testing.T) {
	h := newHarness(64, 64)
	reg := host.NewRegistry()
	require.NoError(t, Register(reg, h.graphics, h.module))

	for name, ctx := range map[string]host.FilterContext{
		"untyped": nil,
		"typed":   (*fakeContext)(nil),
	} {
		src, err := reg.Create(ID, settings.New(), ctx)
		assert.ErrorIs(t, err, host.ErrCreateFailed, name)
		assert.Nil(t, src, name)
	}

	_, err := reg.Create(ID, (*settings.Data)(nil), h.ctx)
	assert.ErrorIs(t, err, host.ErrCreateFailed)
	assert.Empty(t, h.graphics.loaded, "no effect is loaded for a rejected create")
}
