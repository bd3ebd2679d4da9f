package glfwcontext

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/dropshadow/dropshadow"
)

// Context owns a hidden GLFW window used only for its OpenGL context.
// Filtering renders into framebuffer objects, so the window surface is
// never presented.
type Context struct {
	window *glfw.Window
}

// New creates a hidden window with an OpenGL 4.1 core profile context.
func New(width, height int) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	win, err := glfw.CreateWindow(width, height, "dropshadow", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create glfw window: %w", err)
	}
	return &Context{window: win}, nil
}

// MakeCurrent makes the context current for the calling thread.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) DetachCurrent() {
	glfw.DetachCurrentContext()
}

// Shutdown destroys the window and its context.
func (c *Context) Shutdown() {
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	dropshadow.Logger().Debug("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	dropshadow.Logger().Debug("GLFW terminated")
}
