package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraViewMatchesLookAt(t *testing.T) {
	pos := mgl32.Vec3{3, 2, 5}
	c := NewCamera(pos, mgl32.Vec3{})
	want := mgl32.LookAtV(pos, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertMat4InDelta(t, want, c.View())
}

func TestCameraAxesAreOrthonormal(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 4, -2}, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1, c.Right().Len(), 1e-6)
	assert.InDelta(t, 1, c.Up().Len(), 1e-6)
	assert.InDelta(t, 0, c.Right().Dot(c.Up()), 1e-6)
	assert.InDelta(t, 0, c.Right().Dot(c.Dir()), 1e-6)
	assert.InDelta(t, 0, c.Right()[1], 1e-6, "right stays horizontal")
}

func TestCameraLookAtSelf(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Dir())
}

func TestCameraRotateRight(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.RotateRight(math.Pi / 2)
	// was looking down -Z, now looks down +X
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Dir().Normalize().Mul(-1))
}

func TestCameraRotateUp(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.RotateUp(0.1)
	assert.Positive(t, -c.Dir()[1], "looks upwards")

	before := c.Dir()
	c.RotateUp(math.Pi/2 - 0.1)
	assert.Equal(t, before, c.Dir(), "rotation onto the pole is ignored")
}

func TestCameraMoves(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 3, 5}, mgl32.Vec3{0, 0, 0})

	c.MoveForward(1)
	assertVec3InDelta(t, mgl32.Vec3{0, 3, 4}, c.Position)

	c.MoveRight(2)
	assertVec3InDelta(t, mgl32.Vec3{2, 3, 4}, c.Position)

	c.MoveUp(-1)
	assertVec3InDelta(t, mgl32.Vec3{2, 2, 4}, c.Position)
}

func TestPerspectiveAspect(t *testing.T) {
	p := Perspective{FOV: mgl32.DegToRad(45), Aspect: 1, Near: 0.1, Far: 100}
	p.UpdateAspectRatio(800, 600)
	assert.InDelta(t, 4.0/3, p.Aspect, 1e-6)
	p.UpdateAspectRatio(800, 0)
	assert.InDelta(t, 4.0/3, p.Aspect, 1e-6)
	assert.Equal(t, mgl32.Perspective(p.FOV, p.Aspect, p.Near, p.Far), p.Matrix())
}

func TestPixelOrtho(t *testing.T) {
	m := PixelOrtho(200, 100)
	assertVec3InDelta(t, mgl32.Vec3{-1, -1, 0}, point(m, mgl32.Vec3{}))
	assertVec3InDelta(t, mgl32.Vec3{1, 1, 0}, point(m, mgl32.Vec3{200, 100, 0}))
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 0}, point(m, mgl32.Vec3{100, 50, 0}))
}
