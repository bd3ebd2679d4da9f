package dropshadow

import (
	"github.com/richinsley/dropshadow/host"
)

// ID is the registered source id.
const ID = "drop_shadow_filter"

// Info builds the registration descriptor. gfx and module are captured by
// the callbacks and shared by every instance.
func Info(gfx host.Graphics, module host.Module) *host.SourceInfo {
	return &host.SourceInfo{
		ID:          ID,
		Type:        host.SourceTypeFilter,
		OutputFlags: host.OutputVideo,

		GetName: func() string {
			if module == nil {
				return "DropShadowFilterName"
			}
			return module.Text("DropShadowFilterName")
		},
		Create: func(settings host.Data, ctx host.FilterContext) host.Instance {
			if host.IsNil(ctx) || host.IsNil(settings) {
				return nil
			}
			return New(settings, ctx, gfx, module)
		},
		Destroy: func(data host.Instance) {
			if f, ok := data.(*Filter); ok {
				f.Destroy()
			}
		},
		Update: func(data host.Instance, settings host.Data) {
			if f, ok := data.(*Filter); ok {
				f.Update(settings)
			}
		},
		GetDefaults: Defaults,
		GetProperties: func(host.Instance) *host.Properties {
			return Properties(module)
		},
		VideoRender: func(data host.Instance) {
			if f, ok := data.(*Filter); ok {
				f.Render()
			}
		},
	}
}

// Register adds the filter to reg. Call it once per process.
func Register(reg *host.Registry, gfx host.Graphics, module host.Module) error {
	return reg.Register(Info(gfx, module))
}
