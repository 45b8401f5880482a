// Package transform composes movable, scalable and rotatable components into
// a cached model matrix.
//
// Components are applied in a fixed order onto an identity accumulator:
// translation, then rotation, then scaling. For a point p the model matrix is
// therefore T·R·S·p, so scaling happens first in object space and translation
// last.
//
// Calling a setter for a component the Transform was not created with is a
// programming error and panics.
package transform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Caps selects which components a Transform carries.
type Caps uint8

const (
	Movable Caps = 1 << iota
	Scalable
	Rotatable

	All = Movable | Scalable | Rotatable
)

func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	s := ""
	for _, n := range []struct {
		c    Caps
		name string
	}{{Movable, "movable"}, {Scalable, "scalable"}, {Rotatable, "rotatable"}} {
		if c&n.c != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// Transform holds the optional components of a drawable and its cached model
// matrix. The cache reflects every component value whenever it is not dirty.
type Transform struct {
	move  *Translation
	scale *Scaling
	rot   *Rotation

	model mgl32.Mat4
	dirty bool
}

// New returns a Transform with the given components at their defaults:
// location zero, scale one, rotation axis +Z with angle zero, zero pivots.
func New(caps Caps) *Transform {
	t := &Transform{model: mgl32.Ident4(), dirty: true}
	if caps&Movable != 0 {
		t.move = &Translation{}
	}
	if caps&Scalable != 0 {
		t.scale = &Scaling{Scale: mgl32.Vec3{1, 1, 1}}
	}
	if caps&Rotatable != 0 {
		t.rot = &Rotation{Axis: mgl32.Vec3{0, 0, 1}}
	}
	return t
}

// Caps reports which components are present.
func (t *Transform) Caps() Caps {
	var c Caps
	if t.move != nil {
		c |= Movable
	}
	if t.scale != nil {
		c |= Scalable
	}
	if t.rot != nil {
		c |= Rotatable
	}
	return c
}

func (t *Transform) Has(c Caps) bool { return t.Caps()&c == c }

// Components returns the present components in application order.
func (t *Transform) Components() []Component {
	out := make([]Component, 0, 3)
	if t.move != nil {
		out = append(out, t.move)
	}
	if t.rot != nil {
		out = append(out, t.rot)
	}
	if t.scale != nil {
		out = append(out, t.scale)
	}
	return out
}

// Model returns the cached matrix without recomputing it.
func (t *Transform) Model() mgl32.Mat4 { return t.model }

// Dirty reports whether a setter ran since the last UpdateModel.
func (t *Transform) Dirty() bool { return t.dirty }

// UpdateModel recomputes the cached matrix if any component changed and
// returns it. Draw paths call it before reading the model matrix.
func (t *Transform) UpdateModel() mgl32.Mat4 {
	if !t.dirty {
		return t.model
	}
	acc := mgl32.Ident4()
	for _, c := range t.Components() {
		c.Apply(&acc)
	}
	t.model = acc
	t.dirty = false
	return t.model
}

func (t *Transform) mustHave(c Caps, op string) {
	if !t.Has(c) {
		panic(fmt.Sprintf("transform: %s on a transform without %s (have %s)", op, c, t.Caps()))
	}
}

func (t *Transform) SetLoc(loc mgl32.Vec3) {
	t.mustHave(Movable, "SetLoc")
	t.move.Loc = loc
	t.dirty = true
}

func (t *Transform) Loc() mgl32.Vec3 {
	t.mustHave(Movable, "Loc")
	return t.move.Loc
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.mustHave(Scalable, "SetScale")
	t.scale.Scale = scale
	t.dirty = true
}

func (t *Transform) Scale() mgl32.Vec3 {
	t.mustHave(Scalable, "Scale")
	return t.scale.Scale
}

// SetScaleOrigin sets the scaling pivot in object space.
func (t *Transform) SetScaleOrigin(origin mgl32.Vec3) {
	t.mustHave(Scalable, "SetScaleOrigin")
	t.scale.Origin = origin
	t.dirty = true
}

func (t *Transform) ScaleOrigin() mgl32.Vec3 {
	t.mustHave(Scalable, "ScaleOrigin")
	return t.scale.Origin
}

// SetRotAxis stores axis normalized.
func (t *Transform) SetRotAxis(axis mgl32.Vec3) {
	t.mustHave(Rotatable, "SetRotAxis")
	t.rot.Axis = axis.Normalize()
	t.dirty = true
}

func (t *Transform) RotAxis() mgl32.Vec3 {
	t.mustHave(Rotatable, "RotAxis")
	return t.rot.Axis
}

// SetAngle sets the rotation angle in radians.
func (t *Transform) SetAngle(angle float32) {
	t.mustHave(Rotatable, "SetAngle")
	t.rot.Angle = angle
	t.dirty = true
}

func (t *Transform) Angle() float32 {
	t.mustHave(Rotatable, "Angle")
	return t.rot.Angle
}

// SetRotOrigin sets the rotation pivot in object space.
func (t *Transform) SetRotOrigin(origin mgl32.Vec3) {
	t.mustHave(Rotatable, "SetRotOrigin")
	t.rot.Origin = origin
	t.dirty = true
}

func (t *Transform) RotOrigin() mgl32.Vec3 {
	t.mustHave(Rotatable, "RotOrigin")
	return t.rot.Origin
}
