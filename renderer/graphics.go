package renderer

import (
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/dropshadow/dropshadow"
	"github.com/richinsley/dropshadow/graphics"
	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/shader"
)

// Ensures gl.Init() runs once per process.
var glInitOnce sync.Once

// Graphics is the OpenGL implementation of host.Graphics. Scopes are
// serialized; entering a scope makes the context current on the calling
// thread and leaving it detaches the context again.
type Graphics struct {
	context graphics.Context
	mu      sync.Mutex

	quadVAO        uint32
	quadVBO        uint32
	blitProgram    uint32
	blitTextureLoc int32
}

var _ host.Graphics = (*Graphics)(nil)

func NewGraphics(ctx graphics.Context) (*Graphics, error) {
	g := &Graphics{context: ctx}

	ctx.MakeCurrent()
	defer ctx.DetachCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	dropshadow.Logger().Debug("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	g.quadVAO, g.quadVBO = newQuad()

	var err error
	g.blitProgram, err = newProgram(shader.GenerateVertexShader(), shader.GetBlitFragmentShader())
	if err != nil {
		g.releaseQuad()
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	g.blitTextureLoc = uniformLocation(g.blitProgram, "u_texture")
	return g, nil
}

func (g *Graphics) Enter() {
	g.mu.Lock()
	g.context.MakeCurrent()
}

func (g *Graphics) Leave() {
	g.context.DetachCurrent()
	g.mu.Unlock()
}

func (g *Graphics) CreateEffectFromFile(path string) (host.Effect, error) {
	effect, err := newEffectFromFile(g, path)
	if err != nil {
		return nil, err
	}
	return effect, nil
}

func (g *Graphics) DestroyEffect(effect host.Effect) {
	if e, ok := effect.(*Effect); ok && e != nil {
		e.destroy()
	}
}

// NewFilterTarget creates an empty target. Its GL objects are allocated on
// the first Upload.
func (g *Graphics) NewFilterTarget() *FilterTarget {
	return &FilterTarget{graphics: g}
}

// Shutdown releases the shared GL objects. The context itself belongs to
// the caller.
func (g *Graphics) Shutdown() {
	host.WithGraphics(g, func() {
		if g.blitProgram != 0 {
			gl.DeleteProgram(g.blitProgram)
			g.blitProgram = 0
		}
		g.releaseQuad()
	})
}

func (g *Graphics) releaseQuad() {
	if g.quadVBO != 0 {
		gl.DeleteBuffers(1, &g.quadVBO)
		g.quadVBO = 0
	}
	if g.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &g.quadVAO)
		g.quadVAO = 0
	}
}

func (g *Graphics) drawQuad() {
	gl.BindVertexArray(g.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// blit copies texture into the currently bound framebuffer.
func (g *Graphics) blit(texture uint32, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.UseProgram(g.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(g.blitTextureLoc, 0)
	g.drawQuad()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}
