package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/dropshadow/dropshadow"
	"github.com/richinsley/dropshadow/host"
)

// FilterTarget is the host side of one filter attachment on the GL
// backend. The upstream frame is uploaded into a source texture and the
// filter output lands in an RGBA8 framebuffer that can be read back.
// All methods except BaseWidth and BaseHeight must be called inside a
// graphics scope.
type FilterTarget struct {
	graphics *Graphics

	sourceTex uint32
	fbo       uint32
	outputTex uint32
	width     int
	height    int

	// rendering is set between a successful ProcessFilterBegin and the
	// matching end or skip.
	rendering bool
}

var (
	_ host.FilterContext = (*FilterTarget)(nil)
	_ host.Source        = (*FilterTarget)(nil)
)

func (t *FilterTarget) BaseWidth() uint32 {
	return uint32(t.width)
}

func (t *FilterTarget) BaseHeight() uint32 {
	return uint32(t.height)
}

func (t *FilterTarget) FilterTarget() host.Source {
	return t
}

// Upload replaces the upstream frame. pixels is tightly packed RGBA, first
// row first. Textures are reallocated when the size changes.
func (t *FilterTarget) Upload(pixels []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		t.release()
		return nil
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("frame holds %d bytes, %dx%d RGBA needs %d", len(pixels), width, height, width*height*4)
	}
	if width != t.width || height != t.height || t.fbo == 0 {
		if err := t.allocate(width, height); err != nil {
			return err
		}
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.BindTexture(gl.TEXTURE_2D, t.sourceTex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (t *FilterTarget) allocate(width, height int) error {
	t.release()
	dropshadow.Logger().Debug("allocating filter target", "width", width, "height", height)

	t.sourceTex = newTexture(width, height)
	t.outputTex = newTexture(width, height)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.outputTex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.release()
		return fmt.Errorf("filter framebuffer is not complete: 0x%x", status)
	}

	t.width = width
	t.height = height
	return nil
}

func newTexture(width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// ProcessFilterBegin binds and clears the output framebuffer. The upstream
// frame always lives in sourceTex, so the render mode makes no difference
// on this backend.
func (t *FilterTarget) ProcessFilterBegin(format host.ColorFormat, _ host.RenderMode) bool {
	if t.fbo == 0 || t.width == 0 || t.height == 0 {
		return false
	}
	if format != host.ColorFormatRGBA {
		return false
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	t.rendering = true
	return true
}

func (t *FilterTarget) ProcessFilterEnd(effect host.Effect, width, height uint32) {
	if !t.rendering {
		return
	}
	defer t.finish()

	w, h := int(width), int(height)
	if w == 0 || h == 0 {
		w, h = t.width, t.height
	}
	e, ok := effect.(*Effect)
	if !ok || e == nil {
		dropshadow.Logger().Warn("filter end with a foreign effect, passing through")
		t.graphics.blit(t.sourceTex, t.width, t.height)
		return
	}
	e.draw(t.sourceTex, w, h)
}

// SkipVideoFilter copies the upstream frame to the output unchanged.
func (t *FilterTarget) SkipVideoFilter() {
	if t.fbo == 0 {
		t.rendering = false
		return
	}
	if !t.rendering {
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	}
	t.graphics.blit(t.sourceTex, t.width, t.height)
	t.finish()
}

func (t *FilterTarget) finish() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	t.rendering = false
}

// ReadPixels copies the filter output into dst as tightly packed RGBA.
func (t *FilterTarget) ReadPixels(dst []byte) error {
	need := t.width * t.height * 4
	if t.fbo == 0 || need == 0 {
		return fmt.Errorf("filter target has no frame")
	}
	if len(dst) < need {
		return fmt.Errorf("read buffer holds %d bytes, need %d", len(dst), need)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return nil
}

// Destroy releases the GL objects. Must be called inside a graphics scope.
func (t *FilterTarget) Destroy() {
	t.release()
}

func (t *FilterTarget) release() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.sourceTex != 0 {
		gl.DeleteTextures(1, &t.sourceTex)
		t.sourceTex = 0
	}
	if t.outputTex != 0 {
		gl.DeleteTextures(1, &t.outputTex)
		t.outputTex = 0
	}
	t.width, t.height = 0, 0
	t.rendering = false
}
