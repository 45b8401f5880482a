package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gfx"
	"scenegl/transform"
)

// Sprite is a textured rectangle.
type Sprite struct {
	*Rectangle

	texture gfx.Texture
}

// NewSprite creates a movable sprite showing tex. extra may add
// transform.Rotatable.
func NewSprite(ctx *Context, tex gfx.Texture, min mgl32.Vec3, size mgl32.Vec2, extra transform.Caps) *Sprite {
	return &Sprite{Rectangle: NewRectangle(ctx, min, size, extra), texture: tex}
}

func (s *Sprite) Texture() gfx.Texture     { return s.texture }
func (s *Sprite) SetTexture(t gfx.Texture) { s.texture = t }
func (s *Sprite) Draw(target gfx.Target)   { s.DrawWith(target, s.ctx.Settings()) }

// DrawWith draws through the sprite shader unless settings override it.
func (s *Sprite) DrawWith(target gfx.Target, set Settings) {
	s.ctx.drawQuad(target, s.UpdateModel(), s.Corners(), set, spriteShader, s.texture, false)
}
