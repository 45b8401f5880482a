package core

import "github.com/go-gl/mathgl/mgl32"

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorTransparent = Color{}
)

func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4{c.R, c.G, c.B, c.A} }

// Vec3 drops alpha.
func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3{c.R, c.G, c.B} }

func ColorFromVec4(v mgl32.Vec4) Color { return Color{v[0], v[1], v[2], v[3]} }

