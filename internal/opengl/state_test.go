package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeContext stands in for the GL context: capture reads current, restore
// writes it back.
type fakeContext struct {
	current  snapshot
	restored []int32
}

func (f *fakeContext) stack() *guardStack {
	return &guardStack{
		capture: func() snapshot { return f.current },
		restore: func(s snapshot) {
			f.current = s
			f.restored = append(f.restored, s.program)
		},
	}
}

func TestGuardsRestoreInReverseOrder(t *testing.T) {
	ctx := &fakeContext{current: snapshot{program: 1}}
	s := ctx.stack()

	outer := s.acquire()
	ctx.current.program = 2
	inner := s.acquire()
	ctx.current.program = 3
	assert.Equal(t, 2, s.Depth())

	inner.release()
	assert.Equal(t, int32(2), ctx.current.program)
	outer.release()
	assert.Equal(t, int32(1), ctx.current.program)

	assert.Equal(t, []int32{2, 1}, ctx.restored)
	assert.Zero(t, s.Depth())
}

func TestGuardOutOfOrderReleasePanics(t *testing.T) {
	ctx := &fakeContext{}
	s := ctx.stack()

	outer := s.acquire()
	s.acquire()
	assert.Panics(t, outer.release)
}

func TestGuardDoubleReleasePanics(t *testing.T) {
	ctx := &fakeContext{}
	s := ctx.stack()

	g := s.acquire()
	g.release()
	assert.Panics(t, g.release)
}

func TestGuardRestoresCapabilities(t *testing.T) {
	ctx := &fakeContext{current: snapshot{cull: true, depth: true}}
	s := ctx.stack()

	g := s.acquire()
	ctx.current.cull = false
	ctx.current.blend = true
	g.release()

	assert.True(t, ctx.current.cull)
	assert.False(t, ctx.current.blend)
	assert.True(t, ctx.current.depth)
}
