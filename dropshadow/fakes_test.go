package dropshadow

import (
	"errors"

	"github.com/richinsley/dropshadow/host"
)

type call struct {
	op    string
	name  string
	value any
}

type recorder struct {
	calls []call
}

func (r *recorder) add(op, name string, value any) {
	r.calls = append(r.calls, call{op: op, name: name, value: value})
}

func (r *recorder) ops(op string) []call {
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

type fakeParam struct {
	name string
	rec  *recorder
}

func (p *fakeParam) SetFloat(v float32)  { p.rec.add("set", p.name, v) }
func (p *fakeParam) SetVec2(v host.Vec2) { p.rec.add("set", p.name, v) }
func (p *fakeParam) SetVec4(v host.Vec4) { p.rec.add("set", p.name, v) }

type fakeEffect struct {
	params map[string]*fakeParam
}

func newFakeEffect(rec *recorder, names ...string) *fakeEffect {
	if len(names) == 0 {
		names = []string{paramShadowOffset, paramBlurRadius, paramShadowColor, paramShadowOpacity, paramTexelSize}
	}
	e := &fakeEffect{params: make(map[string]*fakeParam)}
	for _, n := range names {
		e.params[n] = &fakeParam{name: n, rec: rec}
	}
	return e
}

func (e *fakeEffect) Param(name string) host.EffectParam {
	if p, ok := e.params[name]; ok {
		return p
	}
	return nil
}

type fakeGraphics struct {
	effect    *fakeEffect
	loadErr   error
	depth     int
	enters    int
	loaded    []string
	destroyed []host.Effect
	unscoped  int
}

func (g *fakeGraphics) Enter() {
	g.depth++
	g.enters++
}

func (g *fakeGraphics) Leave() { g.depth-- }

func (g *fakeGraphics) CreateEffectFromFile(path string) (host.Effect, error) {
	if g.depth == 0 {
		g.unscoped++
	}
	g.loaded = append(g.loaded, path)
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	if g.effect == nil {
		return nil, errors.New("no effect")
	}
	return g.effect, nil
}

func (g *fakeGraphics) DestroyEffect(effect host.Effect) {
	if g.depth == 0 {
		g.unscoped++
	}
	g.destroyed = append(g.destroyed, effect)
}

type fakeModule struct {
	files map[string]string
}

func newFakeModule() *fakeModule {
	return &fakeModule{files: map[string]string{EffectPath: "/data/" + EffectPath}}
}

func (m *fakeModule) File(name string) (string, bool) {
	p, ok := m.files[name]
	return p, ok
}

func (m *fakeModule) Text(key string) string { return "text:" + key }

type fakeTarget struct {
	width, height uint32
}

func (t *fakeTarget) BaseWidth() uint32  { return t.width }
func (t *fakeTarget) BaseHeight() uint32 { return t.height }

type fakeContext struct {
	rec    *recorder
	target *fakeTarget
	deny   bool
}

func (c *fakeContext) ProcessFilterBegin(format host.ColorFormat, mode host.RenderMode) bool {
	c.rec.add("begin", "", [2]int{int(format), int(mode)})
	return !c.deny
}

func (c *fakeContext) ProcessFilterEnd(effect host.Effect, width, height uint32) {
	c.rec.add("end", "", endArgs{effect: effect, width: width, height: height})
}

func (c *fakeContext) SkipVideoFilter() { c.rec.add("skip", "", nil) }

func (c *fakeContext) FilterTarget() host.Source {
	if c.target == nil {
		return nil
	}
	return c.target
}

type endArgs struct {
	effect        host.Effect
	width, height uint32
}

// harness wires a filter to fakes that share one call recorder.
type harness struct {
	rec      *recorder
	graphics *fakeGraphics
	module   *fakeModule
	ctx      *fakeContext
}

func newHarness(width, height uint32) *harness {
	rec := &recorder{}
	return &harness{
		rec:      rec,
		graphics: &fakeGraphics{effect: newFakeEffect(rec)},
		module:   newFakeModule(),
		ctx:      &fakeContext{rec: rec, target: &fakeTarget{width: width, height: height}},
	}
}
