package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"scenegl/core"
	"scenegl/gfx"
)

// Image holds decoded RGBA8 pixels, bottom row first, ready for upload.
type Image struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// LoadImage reads and decodes a PNG, JPEG, BMP, TIFF or WebP file.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.ErrTextureLoad, err, fmt.Sprintf("open texture %q", path))
	}
	defer f.Close()
	return DecodeImage(path, f)
}

// DecodeImage decodes any registered image format from r.
func DecodeImage(name string, r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, core.Wrap(core.ErrTextureLoad, err, fmt.Sprintf("decode texture %q", name))
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)

	out := &Image{Name: name, Width: b.Dx(), Height: b.Dy(), Pixels: make([]byte, len(rgba.Pix))}
	row := out.Width * 4
	for y := 0; y < out.Height; y++ {
		copy(out.Pixels[(out.Height-1-y)*row:], rgba.Pix[y*rgba.Stride:y*rgba.Stride+row])
	}
	return out, nil
}

func decodeImageBytes(name string, data []byte) (*Image, error) {
	return DecodeImage(name, bytes.NewReader(data))
}

// NewSolidImage is a 1x1 image of one color.
func NewSolidImage(name string, r, g, b, a uint8) *Image {
	return &Image{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}

// Upload creates a mipmapped, repeating texture from the image.
func (img *Image) Upload(dev gfx.Device) (gfx.Texture, error) {
	t, err := dev.NewTexture(gfx.TextureDesc{
		Width:  img.Width,
		Height: img.Height,
		Format: gfx.RGBA8,
		Pixels: img.Pixels,
	})
	if err != nil && !core.IsCode(err, core.ErrTextureLoad) {
		err = core.Wrap(core.ErrTextureLoad, err, fmt.Sprintf("upload texture %q", img.Name))
	}
	return t, err
}

// LoadTexture decodes path and uploads it. Failures are also reported to
// the error channel.
func LoadTexture(dev gfx.Device, path string) (gfx.Texture, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, core.Report(err)
	}
	t, err := img.Upload(dev)
	if err != nil {
		return nil, core.Report(err)
	}
	return t, nil
}
