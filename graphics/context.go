package graphics

// Context is an OpenGL context that can be bound to the calling thread.
type Context interface {
	MakeCurrent()
	// DetachCurrent makes no context current on the calling thread.
	DetachCurrent()
	Shutdown()
}
