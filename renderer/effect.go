package renderer

import (
	"fmt"
	"os"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/shader"
)

// imageParam is the sampler every effect reads the upstream frame from.
const imageParam = "image"

type paramKind int

const (
	paramUnset paramKind = iota
	paramFloat
	paramVec2
	paramVec4
)

// EffectParam is one uniform slot of an Effect. Values are staged and
// uploaded when the effect draws.
type EffectParam struct {
	name  string
	loc   int32
	kind  paramKind
	value [4]float32
}

var _ host.EffectParam = (*EffectParam)(nil)

func (p *EffectParam) SetFloat(v float32) {
	p.kind = paramFloat
	p.value = [4]float32{v}
}

func (p *EffectParam) SetVec2(v host.Vec2) {
	p.kind = paramVec2
	p.value = [4]float32{v.X, v.Y}
}

func (p *EffectParam) SetVec4(v host.Vec4) {
	p.kind = paramVec4
	p.value = [4]float32{v.X, v.Y, v.Z, v.W}
}

func (p *EffectParam) upload() {
	switch p.kind {
	case paramFloat:
		gl.Uniform1f(p.loc, p.value[0])
	case paramVec2:
		gl.Uniform2f(p.loc, p.value[0], p.value[1])
	case paramVec4:
		gl.Uniform4f(p.loc, p.value[0], p.value[1], p.value[2], p.value[3])
	}
}

// Effect is a linked program built from an effect file.
type Effect struct {
	graphics *Graphics
	path     string
	program  uint32
	imageLoc int32
	params   map[string]*EffectParam
}

var _ host.Effect = (*Effect)(nil)

// newEffectFromFile must run inside a graphics scope.
func newEffectFromFile(g *Graphics, path string) (*Effect, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect: %w", err)
	}
	translated, err := shader.TranslateEffect(string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to translate %s: %w", path, err)
	}
	program, err := newProgram(shader.GenerateVertexShader(), translated.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", path, err)
	}

	e := &Effect{
		graphics: g,
		path:     path,
		program:  program,
		imageLoc: -1,
		params:   make(map[string]*EffectParam),
	}
	for name, mapped := range translated.Uniforms {
		loc := uniformLocation(program, mapped)
		if loc == -1 {
			// Optimized out, or not a uniform at all.
			continue
		}
		if name == imageParam {
			e.imageLoc = loc
			continue
		}
		e.params[name] = &EffectParam{name: name, loc: loc}
	}
	if e.imageLoc == -1 {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("effect %s does not sample %q", path, imageParam)
	}
	return e, nil
}

func (e *Effect) Param(name string) host.EffectParam {
	p, ok := e.params[name]
	if !ok {
		return nil
	}
	return p
}

// draw renders texture through the effect into the bound framebuffer.
func (e *Effect) draw(texture uint32, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.UseProgram(e.program)
	for _, p := range e.params {
		p.upload()
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(e.imageLoc, 0)
	e.graphics.drawQuad()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (e *Effect) destroy() {
	if e.program != 0 {
		gl.DeleteProgram(e.program)
		e.program = 0
	}
}
