package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps RotateUp slightly short of vertical so yaw does not spin
// around the pole.
const maxPitch = math32.Pi / 2.15

// Camera is a free-look camera. Its direction points from the target back
// towards the camera, so the view looks down -Dir.
type Camera struct {
	Position mgl32.Vec3

	dir   mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

func NewCamera(pos, target mgl32.Vec3) *Camera {
	c := &Camera{Position: pos}
	c.LookAt(target)
	return c
}

func (c *Camera) Dir() mgl32.Vec3   { return c.dir }
func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Up() mgl32.Vec3    { return c.up }

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	d := c.dir.Normalize()
	orient := mgl32.Mat4FromRows(
		c.right.Vec4(0),
		c.up.Vec4(0),
		d.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	return orient.Mul4(mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
}

// LookAt turns the camera towards target. Looking at its own position faces
// down -X.
func (c *Camera) LookAt(target mgl32.Vec3) {
	if target != c.Position {
		c.dir = c.Position.Sub(target)
	} else {
		c.dir = mgl32.Vec3{1, 0, 0}
	}
	c.axes()
}

// RotateRight yaws by angle radians around the camera's up axis.
func (c *Camera) RotateRight(angle float32) {
	c.dir = mgl32.HomogRotate3D(-angle, c.up).Mul4x1(c.dir.Vec4(1)).Vec3()
	c.axes()
}

// RotateUp pitches by angle radians around the camera's right axis. A
// rotation that would bring the direction within maxPitch of vertical is
// ignored.
func (c *Camera) RotateUp(angle float32) {
	d := mgl32.HomogRotate3D(angle, c.right).Mul4x1(c.dir.Vec4(1)).Vec3()
	if math32.Abs(pitch(d)) >= maxPitch {
		return
	}
	c.dir = d
	c.axes()
}

// MoveForward moves along the view direction projected onto the XZ plane.
func (c *Camera) MoveForward(distance float32) {
	c.Position = c.Position.Sub(horizontal(c.dir).Mul(distance))
}

// MoveRight strafes along the right axis projected onto the XZ plane.
func (c *Camera) MoveRight(distance float32) {
	c.Position = c.Position.Add(horizontal(c.right).Mul(distance))
}

func (c *Camera) MoveUp(distance float32) {
	c.Position[1] += distance
}

func (c *Camera) axes() {
	switch {
	case c.dir[0] != 0 || c.dir[2] != 0:
		c.right = mgl32.Vec3{0, 1, 0}.Cross(c.dir).Normalize()
	case c.dir[1] > 0:
		c.right = mgl32.Vec3{0, 0, -1}
	default:
		c.right = mgl32.Vec3{0, 0, 1}
	}
	c.up = c.dir.Cross(c.right).Normalize()
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}.Normalize()
}

// pitch is the angle between d and its projection onto the XZ plane.
func pitch(d mgl32.Vec3) float32 {
	h := mgl32.Vec3{d[0], 0, d[2]}
	if h.Len() == 0 || d.Len() == 0 {
		return math32.Pi / 2
	}
	cos := mgl32.Clamp(d.Dot(h)/(d.Len()*h.Len()), -1, 1)
	return math32.Acos(cos)
}

// ── Projections ──────────────────────────────────────────────────────────────

// Perspective describes a perspective projection.
type Perspective struct {
	FOV    float32 // vertical, radians
	Aspect float32
	Near   float32
	Far    float32
}

func (p Perspective) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.FOV, p.Aspect, p.Near, p.Far)
}

// UpdateAspectRatio follows a resized target.
func (p *Perspective) UpdateAspectRatio(width, height int) {
	if height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
}

// PixelOrtho maps drawable pixel coordinates, origin bottom left, to clip
// space.
func PixelOrtho(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), 0, float32(height), -1, 1)
}
