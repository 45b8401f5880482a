package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scenegl/core"
	"scenegl/gfx"
)

// framebuffer renders into a color texture with its own depth renderbuffer.
type framebuffer struct {
	id    uint32
	depth uint32
}

func (d *Device) NewFramebuffer(color gfx.Texture) (gfx.Framebuffer, error) {
	tex := asTexture(color)
	if tex == nil {
		return nil, core.Report(core.Errorf(core.ErrFramebuffer, "framebuffer needs a color texture"))
	}

	g := d.state.acquire()
	defer g.release()

	fb := &framebuffer{}
	gl.GenRenderbuffers(1, &fb.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(tex.width), int32(tex.height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &fb.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.id)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex.id, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		fb.Delete()
		return nil, core.Report(core.Errorf(core.ErrFramebuffer, "framebuffer incomplete: status=0x%X", status))
	}
	return fb, nil
}

func (f *framebuffer) Delete() {
	if f.id != 0 {
		gl.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
}

func framebufferID(fb gfx.Framebuffer) uint32 {
	if fb == nil {
		return 0
	}
	gf, ok := fb.(*framebuffer)
	if !ok {
		panic("opengl: framebuffer was not created by this device")
	}
	return gf.id
}
