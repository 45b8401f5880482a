package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/font"
	"scenegl/gfx"
	"scenegl/transform"
)

// Text is a run of characters laid out along Dir with glyph tops towards
// Up. The origin sits on the baseline at the first glyph's left edge.
type Text struct {
	ctx   *Context
	face  *font.Face
	runes []rune

	origin    mgl32.Vec3
	dir       mgl32.Vec3
	up        mgl32.Vec3
	scale     mgl32.Vec2
	rotOrigin mgl32.Vec3
	axis      mgl32.Vec3
	angle     float32

	// quad is reused for every glyph.
	quad *Rectangle
}

func NewText(ctx *Context, face *font.Face, s string) *Text {
	return &Text{
		ctx:   ctx,
		face:  face,
		runes: []rune(s),
		dir:   mgl32.Vec3{1, 0, 0},
		up:    mgl32.Vec3{0, 1, 0},
		scale: mgl32.Vec2{1, 1},
		axis:  mgl32.Vec3{0, 0, 1},
		quad:  NewRectangle(ctx, mgl32.Vec3{}, mgl32.Vec2{}, transform.Rotatable),
	}
}

func (t *Text) String() string          { return string(t.runes) }
func (t *Text) SetString(s string)      { t.runes = []rune(s) }
func (t *Text) Face() *font.Face        { return t.face }
func (t *Text) SetFace(f *font.Face)    { t.face = f }
func (t *Text) Origin() mgl32.Vec3      { return t.origin }
func (t *Text) SetOrigin(o mgl32.Vec3)  { t.origin = o }
func (t *Text) Dir() mgl32.Vec3         { return t.dir }
func (t *Text) SetDir(d mgl32.Vec3)     { t.dir = d.Normalize() }
func (t *Text) Up() mgl32.Vec3          { return t.up }
func (t *Text) SetUp(u mgl32.Vec3)      { t.up = u.Normalize() }
func (t *Text) Scale() mgl32.Vec2       { return t.scale }
func (t *Text) SetScale(s mgl32.Vec2)   { t.scale = s }
func (t *Text) Angle() float32          { return t.angle }
func (t *Text) SetAngle(a float32)      { t.angle = a }
func (t *Text) RotAxis() mgl32.Vec3     { return t.axis }
func (t *Text) SetRotAxis(a mgl32.Vec3) { t.axis = a.Normalize() }

// RotOrigin is the world-space point the text rotates about.
func (t *Text) RotOrigin() mgl32.Vec3     { return t.rotOrigin }
func (t *Text) SetRotOrigin(o mgl32.Vec3) { t.rotOrigin = o }

// placedGlyph is one character positioned in world space.
type placedGlyph struct {
	r     rune
	glyph *font.Glyph
	loc   mgl32.Vec3
	size  mgl32.Vec2
}

// layout positions every character. Bearings and advances are scaled by
// the horizontal scale along Dir and heights by the vertical scale along Up.
func (t *Text) layout() ([]placedGlyph, error) {
	if len(t.runes) == 0 || t.face == nil {
		return nil, nil
	}
	first, err := t.face.Glyph(t.runes[0])
	if err != nil {
		return nil, err
	}
	sx, sy := t.scale[0], t.scale[1]
	pen := t.origin.Sub(t.dir.Mul(float32(first.Left) * sx))

	out := make([]placedGlyph, 0, len(t.runes))
	for _, r := range t.runes {
		g, err := t.face.Glyph(r)
		if err != nil {
			return nil, err
		}
		loc := pen.
			Add(t.dir.Mul(float32(g.Left) * sx)).
			Add(t.up.Mul(float32(g.Top-g.Height) * sy))
		out = append(out, placedGlyph{
			r:     r,
			glyph: g,
			loc:   loc,
			size:  mgl32.Vec2{float32(g.Width) * sx, float32(g.Height) * sy},
		})
		pen = pen.Add(t.dir.Mul(float32(g.Advance) * sx))
	}
	return out, nil
}

func (t *Text) Draw(target gfx.Target) { t.DrawWith(target, t.ctx.Settings()) }

// DrawWith draws each glyph as a blended quad through the text shader
// unless settings override it. The whole string rotates by Angle about
// RotOrigin.
func (t *Text) DrawWith(target gfx.Target, s Settings) {
	glyphs, err := t.layout()
	if err != nil {
		return
	}
	q := t.quad
	q.SetRight(t.dir)
	q.SetUp(t.up)
	q.SetAngle(t.angle)
	q.SetRotAxis(t.axis)

	for _, pg := range glyphs {
		_, tex, err := t.ctx.glyph(t.face, pg.r)
		if err != nil {
			return
		}
		if tex == nil {
			continue
		}
		q.SetLoc(pg.loc)
		q.SetSize(pg.size)
		q.SetRotOrigin(t.rotOrigin.Sub(pg.loc))
		t.ctx.drawQuad(target, q.UpdateModel(), q.Corners(), s, textShader, tex, true)
	}
}

// Rect is an axis-aligned rectangle in text space: X along Dir, Y along Up.
type Rect struct {
	Min  mgl32.Vec2
	Size mgl32.Vec2
}

// LocalRect returns the scaled extent of the text relative to its origin,
// from the lowest descender to the highest ascender.
func (t *Text) LocalRect() (Rect, error) {
	glyphs, err := t.layout()
	if err != nil || len(glyphs) == 0 {
		return Rect{}, err
	}

	var minY, maxY float32
	width := float32(-glyphs[0].glyph.Left)
	for i, pg := range glyphs {
		g := pg.glyph
		if i == len(glyphs)-1 {
			width += float32(g.Left + g.Width)
		} else {
			width += float32(g.Advance)
		}
		minY = min(minY, float32(g.Top-g.Height))
		maxY = max(maxY, float32(g.Top))
	}

	return Rect{
		Min:  mgl32.Vec2{0, minY * t.scale[1]},
		Size: mgl32.Vec2{width * t.scale[0], (maxY - minY) * t.scale[1]},
	}, nil
}

// Bound is a box given by a corner and the vector to the opposite corner.
type Bound struct {
	Min  mgl32.Vec3
	Size mgl32.Vec3
}

// LocalBound is LocalRect expressed along Dir and Up, relative to the
// origin.
func (t *Text) LocalBound() (Bound, error) {
	r, err := t.LocalRect()
	if err != nil {
		return Bound{}, err
	}
	return Bound{
		Min:  t.up.Mul(r.Min[1]),
		Size: t.dir.Mul(r.Size[0]).Add(t.up.Mul(r.Size[1])),
	}, nil
}
