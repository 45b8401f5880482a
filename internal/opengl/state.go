package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// snapshot is the slice of global context state a guard restores.
type snapshot struct {
	program       int32
	vertexArray   int32
	framebuffer   int32
	activeTexture int32
	texture       int32
	viewport      [4]int32
	cull          bool
	blend         bool
	depth         bool
}

func captureGL() snapshot {
	var s snapshot
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vertexArray)
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &s.framebuffer)
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &s.activeTexture)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	return s
}

func restoreGL(s snapshot) {
	gl.UseProgram(uint32(s.program))
	gl.BindVertexArray(uint32(s.vertexArray))
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(s.framebuffer))
	gl.ActiveTexture(uint32(s.activeTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	setCap(gl.CULL_FACE, s.cull)
	setCap(gl.BLEND, s.blend)
	setCap(gl.DEPTH_TEST, s.depth)
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

// guardStack hands out scoped state guards. Guards must be released in
// reverse order of acquisition; releasing out of order panics.
type guardStack struct {
	depth   int
	capture func() snapshot
	restore func(snapshot)
}

func newGuardStack() *guardStack {
	return &guardStack{capture: captureGL, restore: restoreGL}
}

// guard restores the state captured at acquisition when released.
type guard struct {
	stack    *guardStack
	depth    int
	saved    snapshot
	released bool
}

func (s *guardStack) acquire() *guard {
	s.depth++
	return &guard{stack: s, depth: s.depth, saved: s.capture()}
}

func (g *guard) release() {
	if g.released {
		panic("opengl: state guard released twice")
	}
	if g.depth != g.stack.depth {
		panic(fmt.Sprintf("opengl: state guard released at depth %d, stack is at %d", g.depth, g.stack.depth))
	}
	g.released = true
	g.stack.depth--
	g.stack.restore(g.saved)
}

// Depth returns the number of guards currently held.
func (s *guardStack) Depth() int { return s.depth }
