// Package font rasterizes glyphs into single-channel coverage bitmaps with
// the bearing and advance metrics needed to lay text out along a baseline.
//
// Glyphs are rasterized lazily on first use and cached per rune.
package font

import (
	"image"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"scenegl/core"
)

// DefaultHeight is the pixel height used when Load is given zero.
const DefaultHeight = 48

// Glyph is one rasterized character.
type Glyph struct {
	Width, Height int
	// Left is the horizontal distance from the pen position to the bitmap's
	// left edge; Top the distance from the baseline up to its top edge.
	Left, Top int
	// Advance is how far the pen moves after this glyph, in pixels.
	Advance int
	// Pix is row-major coverage, bottom row first.
	Pix []byte
}

// Empty reports a glyph with no pixels, such as a space.
func (g *Glyph) Empty() bool { return g.Width == 0 || g.Height == 0 }

type Face struct {
	face   xfont.Face
	height int
	glyphs map[rune]*Glyph
}

// Load parses a TrueType or OpenType file and sizes it to height pixels.
func Load(path string, height int) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.Report(core.Wrap(core.ErrFontLoad, err, "read font"))
	}
	return FromBytes(data, height)
}

// FromBytes parses font data held in memory.
func FromBytes(data []byte, height int) (*Face, error) {
	if height <= 0 {
		height = DefaultHeight
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, core.Report(core.Wrap(core.ErrFontLoad, err, "parse font"))
	}
	// At 72 DPI one point is one pixel.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(height),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, core.Report(core.Wrap(core.ErrFontLoad, err, "create face"))
	}
	return newFace(face, height), nil
}

// Default returns the built-in 7x13 bitmap face.
func Default() *Face {
	return newFace(basicfont.Face7x13, basicfont.Face7x13.Height)
}

func newFace(face xfont.Face, height int) *Face {
	return &Face{face: face, height: height, glyphs: make(map[rune]*Glyph)}
}

// Height is the pixel size the face was loaded at.
func (f *Face) Height() int { return f.height }

// Glyph returns the rasterized glyph for r, rasterizing it on first use.
func (f *Face) Glyph(r rune) (*Glyph, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}
	g, err := f.rasterize(r)
	if err != nil {
		return nil, core.Report(err)
	}
	f.glyphs[r] = g
	core.Logger().Debug("glyph rasterized", "rune", string(r), "width", g.Width, "height", g.Height)
	return g, nil
}

func (f *Face) rasterize(r rune) (*Glyph, error) {
	bounds, advance, ok := f.face.GlyphBounds(r)
	if !ok {
		return nil, core.Errorf(core.ErrFontLoad, "no glyph for %q", r)
	}
	rect := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil())
	g := &Glyph{
		Width:   rect.Dx(),
		Height:  rect.Dy(),
		Left:    rect.Min.X,
		Top:     -rect.Min.Y,
		Advance: advance.Round(),
	}
	if g.Empty() {
		return g, nil
	}

	// The mask shares the glyph's coordinate space: dot at the origin,
	// baseline at y=0, y growing downwards.
	mask := image.NewAlpha(rect)
	d := xfont.Drawer{Dst: mask, Src: image.White, Face: f.face}
	d.DrawString(string(r))

	g.Pix = make([]byte, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+g.Width]
		copy(g.Pix[(g.Height-1-y)*g.Width:], row)
	}
	return g, nil
}

func (f *Face) Close() error {
	return f.face.Close()
}
