package scene

import (
	"scenegl/core"
	"scenegl/gfx"
)

// TextureTarget renders into a color texture with its own depth buffer.
// The texture can then be drawn with a Sprite.
type TextureTarget struct {
	texture     gfx.Texture
	framebuffer gfx.Framebuffer
	viewport    gfx.Viewport
}

// NewTextureTarget allocates a width x height color texture and a
// framebuffer around it. The viewport covers the whole texture.
func NewTextureTarget(dev gfx.Device, width, height int) (*TextureTarget, error) {
	tex, err := dev.NewTexture(gfx.TextureDesc{
		Width:   width,
		Height:  height,
		Format:  gfx.RGBA8,
		Nearest: true,
	})
	if err != nil {
		return nil, core.Report(err)
	}
	fb, err := dev.NewFramebuffer(tex)
	if err != nil {
		tex.Delete()
		if !core.IsCode(err, core.ErrFramebuffer) {
			err = core.Wrap(core.ErrFramebuffer, err, "create texture target")
		}
		return nil, core.Report(err)
	}
	return &TextureTarget{
		texture:     tex,
		framebuffer: fb,
		viewport:    gfx.Viewport{Width: width, Height: height},
	}, nil
}

func (t *TextureTarget) Texture() gfx.Texture { return t.texture }

func (t *TextureTarget) DrawableSize() (int, int) {
	return t.texture.Width(), t.texture.Height()
}

func (t *TextureTarget) ActualSize() (int, int) {
	return t.texture.Width(), t.texture.Height()
}

func (t *TextureTarget) Viewport() gfx.Viewport       { return t.viewport }
func (t *TextureTarget) SetViewport(vp gfx.Viewport)  { t.viewport = vp }
func (t *TextureTarget) Framebuffer() gfx.Framebuffer { return t.framebuffer }

// ResetViewport makes the viewport cover the whole texture again.
func (t *TextureTarget) ResetViewport() {
	t.viewport = gfx.Viewport{Width: t.texture.Width(), Height: t.texture.Height()}
}

func (t *TextureTarget) Delete() {
	t.framebuffer.Delete()
	t.texture.Delete()
}
