package pipeline

import (
	"errors"

	"github.com/richinsley/dropshadow/host"
)

type push struct {
	frame int
	name  string
	value any
}

type fakeParam struct {
	name   string
	target *fakeTarget
}

func (p *fakeParam) SetFloat(v float32)  { p.target.record(p.name, v) }
func (p *fakeParam) SetVec2(v host.Vec2) { p.target.record(p.name, v) }
func (p *fakeParam) SetVec4(v host.Vec4) { p.target.record(p.name, v) }

type fakeEffect struct {
	params map[string]*fakeParam
}

func (e *fakeEffect) Param(name string) host.EffectParam {
	if p, ok := e.params[name]; ok {
		return p
	}
	return nil
}

type fakeGraphics struct {
	effect *fakeEffect
	depth  int
}

func (g *fakeGraphics) Enter() { g.depth++ }
func (g *fakeGraphics) Leave() { g.depth-- }

func (g *fakeGraphics) CreateEffectFromFile(path string) (host.Effect, error) {
	if g.effect == nil {
		return nil, errors.New("no effect")
	}
	return g.effect, nil
}

func (g *fakeGraphics) DestroyEffect(host.Effect) {}

type fakeModule struct{}

func (fakeModule) File(name string) (string, bool) { return "/data/" + name, true }
func (fakeModule) Text(key string) string          { return key }

// fakeTarget is the filter context and frame target in one. The first
// pixel byte of each uploaded frame identifies it.
type fakeTarget struct {
	graphics *fakeGraphics

	frame     int
	width     int
	height    int
	pushes    []push
	ends      int
	unscoped  int
	uploadErr error

	// onRead runs while the frame is read back.
	onRead func(frame int)
}

func (t *fakeTarget) record(name string, v any) {
	t.pushes = append(t.pushes, push{frame: t.frame, name: name, value: v})
}

func (t *fakeTarget) pushed(name string) []push {
	var out []push
	for _, p := range t.pushes {
		if p.name == name {
			out = append(out, p)
		}
	}
	return out
}

func (t *fakeTarget) Upload(pixels []byte, width, height int) error {
	if t.graphics.depth == 0 {
		t.unscoped++
	}
	if t.uploadErr != nil {
		return t.uploadErr
	}
	t.frame = int(pixels[0])
	t.width, t.height = width, height
	return nil
}

func (t *fakeTarget) ReadPixels(dst []byte) error {
	if t.graphics.depth == 0 {
		t.unscoped++
	}
	if t.onRead != nil {
		t.onRead(t.frame)
	}
	return nil
}

func (t *fakeTarget) ProcessFilterBegin(host.ColorFormat, host.RenderMode) bool { return true }
func (t *fakeTarget) ProcessFilterEnd(host.Effect, uint32, uint32)              { t.ends++ }
func (t *fakeTarget) SkipVideoFilter()                                          {}
func (t *fakeTarget) FilterTarget() host.Source                                 { return t }
func (t *fakeTarget) BaseWidth() uint32                                         { return uint32(t.width) }
func (t *fakeTarget) BaseHeight() uint32                                        { return uint32(t.height) }
