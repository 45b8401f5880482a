package transform

import "github.com/go-gl/mathgl/mgl32"

// Component folds its contribution into a model matrix by right-multiplying
// it onto the accumulator.
type Component interface {
	Apply(acc *mgl32.Mat4)
}

// Translation moves the object to Loc.
type Translation struct {
	Loc mgl32.Vec3
}

func (t *Translation) Apply(acc *mgl32.Mat4) {
	*acc = acc.Mul4(mgl32.Translate3D(t.Loc[0], t.Loc[1], t.Loc[2]))
}

// Scaling scales about Origin, which is local to the object.
type Scaling struct {
	Scale  mgl32.Vec3
	Origin mgl32.Vec3
}

func (s *Scaling) Apply(acc *mgl32.Mat4) {
	*acc = acc.Mul4(about(s.Origin, mgl32.Scale3D(s.Scale[0], s.Scale[1], s.Scale[2])))
}

// Rotation turns Angle radians around the unit Axis through Origin, which is
// local to the object. A zero angle contributes nothing.
type Rotation struct {
	Axis   mgl32.Vec3
	Angle  float32
	Origin mgl32.Vec3
}

func (r *Rotation) Apply(acc *mgl32.Mat4) {
	if r.Angle == 0 {
		return
	}
	*acc = acc.Mul4(about(r.Origin, mgl32.HomogRotate3D(r.Angle, r.Axis)))
}

// about returns T(pivot)·m·T(-pivot), or m itself for the zero pivot.
func about(pivot mgl32.Vec3, m mgl32.Mat4) mgl32.Mat4 {
	if pivot == (mgl32.Vec3{}) {
		return m
	}
	return mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(m).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}
