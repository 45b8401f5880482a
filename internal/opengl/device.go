// Package opengl implements gfx.Device on an OpenGL 4.1 core context.
//
// Every call must be made from the goroutine that owns the current context.
// Operations that touch bound program, vertex array, framebuffer, texture or
// capability state do so under a guard that restores the previous values.
package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
)

// Device is the OpenGL backend.
type Device struct {
	state *guardStack
}

// NewDevice loads GL function pointers. The window's context must be current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, core.Report(core.Wrap(core.ErrGLInit, err, "failed to initialize OpenGL"))
	}
	core.Logger().Info("opengl initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)
	return &Device{state: newGuardStack()}, nil
}

// SetCulling enables or disables back-face culling for subsequent draws.
// Draw calls that request DisableCull override it for their duration.
func (d *Device) SetCulling(on bool) {
	setCap(gl.CULL_FACE, on)
}

func (d *Device) bindTarget(t gfx.Target) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebufferID(t.Framebuffer()))
	vp := t.Viewport()
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
}

// Clear clears color and depth of the whole target.
func (d *Device) Clear(target gfx.Target, color mgl32.Vec4) {
	g := d.state.acquire()
	defer g.release()

	d.bindTarget(target)
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func glPrimitive(p gfx.Primitive) uint32 {
	switch p {
	case gfx.TriangleFan:
		return gl.TRIANGLE_FAN
	case gfx.Lines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}

// Draw binds the target, program, textures and vertex array, issues the
// call and restores the previous state.
func (d *Device) Draw(target gfx.Target, call gfx.DrawCall) {
	p := asProgram(call.Program)
	va, ok := call.VertexArray.(*vertexArray)
	if !ok {
		panic("opengl: vertex array was not created by this device")
	}

	g := d.state.acquire()
	defer g.release()

	d.bindTarget(target)
	gl.Enable(gl.DEPTH_TEST)
	if call.DisableCull {
		gl.Disable(gl.CULL_FACE)
	}
	setCap(gl.BLEND, call.Blend)
	if call.Blend {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.UseProgram(p.id)
	p.bindTextures()
	gl.BindVertexArray(va.id)

	mode := glPrimitive(call.Primitive)
	if call.Indexed {
		gl.DrawElements(mode, int32(call.Count), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, int32(call.Count))
	}
}
