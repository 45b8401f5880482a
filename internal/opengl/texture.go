package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scenegl/core"
	"scenegl/gfx"
)

type texture struct {
	id            uint32
	width, height int
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

func (t *texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func asTexture(t gfx.Texture) *texture {
	if t == nil {
		return nil
	}
	gt, ok := t.(*texture)
	if !ok {
		panic("opengl: texture was not created by this device")
	}
	return gt
}

// NewTexture allocates a 2D texture and uploads desc.Pixels if present.
func (d *Device) NewTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, core.Report(core.Errorf(core.ErrTextureLoad, "invalid texture size %dx%d", desc.Width, desc.Height))
	}
	internal, format, bpp := int32(gl.RGBA8), uint32(gl.RGBA), 4
	if desc.Format == gfx.R8 {
		internal, format, bpp = gl.R8, gl.RED, 1
	}
	if desc.Pixels != nil && len(desc.Pixels) != desc.Width*desc.Height*bpp {
		return nil, core.Report(core.Errorf(core.ErrTextureLoad,
			"texture %dx%d expects %d bytes, got %d", desc.Width, desc.Height, desc.Width*desc.Height*bpp, len(desc.Pixels)))
	}

	g := d.state.acquire()
	defer g.release()

	t := &texture{width: desc.Width, height: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	wrap := int32(gl.REPEAT)
	if desc.ClampToBorder {
		wrap = gl.CLAMP_TO_BORDER
		border := [4]float32{0, 0, 0, 0}
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	if desc.Nearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}

	// Single-channel rows are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var pixels any
	if len(desc.Pixels) > 0 {
		pixels = desc.Pixels
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	if !desc.Nearest {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	return t, nil
}
