package host

// Effect is a compiled shader program owned by the graphics runtime.
type Effect interface {
	// Param returns the named uniform slot, or nil when the program
	// does not expose it.
	Param(name string) EffectParam
}

// EffectParam is a named uniform slot of an Effect. Values set here are
// uploaded when the effect is next drawn.
type EffectParam interface {
	SetFloat(v float32)
	SetVec2(v Vec2)
	SetVec4(v Vec4)
}

// Graphics is the host's GPU runtime. Resource creation and destruction
// must happen between Enter and Leave.
type Graphics interface {
	Enter()
	Leave()
	CreateEffectFromFile(path string) (Effect, error)
	DestroyEffect(effect Effect)
}

// WithGraphics runs fn inside a graphics scope and always leaves it,
// even if fn panics.
func WithGraphics(g Graphics, fn func()) {
	g.Enter()
	defer g.Leave()
	fn()
}
