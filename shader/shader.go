package shader

import (
	"fmt"

	xlate "github.com/richinsley/dropshadow/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// Fullscreen quad. Fragment stages derive texture coordinates from
// gl_FragCoord, so nothing is passed down.
const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
void main() {
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// Pass-through copy used when a filter skips. Source and target always
// share a size, so a texel fetch at the fragment position is exact.
const blitFragmentShaderSourceGL = `#version 410 core
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texelFetch(u_texture, ivec2(gl_FragCoord.xy), 0); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader() string {
	return vertexShaderSourceGL
}

func GetBlitFragmentShader() string {
	return blitFragmentShaderSourceGL
}

// Effect is a fragment program translated for the desktop GL backend.
type Effect struct {
	Code string
	// Uniforms maps each declared uniform name to its name in Code.
	Uniforms map[string]string
}

// TranslateEffect converts an effect written in GLSL ES 3.00 into GLSL 330.
func TranslateEffect(source string) (*Effect, error) {
	translator, err := xlate.GetTranslator()
	if err != nil {
		return nil, err
	}
	fsShader, err := translator.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	effect := &Effect{
		Code:     fsShader.Code,
		Uniforms: make(map[string]string, len(fsShader.Variables)),
	}
	for name, v := range fsShader.Variables {
		effect.Uniforms[name] = v.MappedName
	}
	return effect, nil
}
