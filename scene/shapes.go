package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gfx"
	"scenegl/transform"
)

// DefaultLineWidth is the width of lines created by NewLine.
const DefaultLineWidth float32 = 0.05

// drawQuad rewrites the shared rectangle stream with corners and draws it
// as a fan with culling disabled.
func (c *Context) drawQuad(target gfx.Target, model mgl32.Mat4, corners [4]mgl32.Vec3, s Settings, kind shaderKind, tex gfx.Texture, blend bool) {
	g := c.geometry()
	if g == nil {
		return
	}
	g.rectPos.Update(flatten(corners[:]))

	p := c.resolve(s, kind)
	if p == nil {
		return
	}
	c.setup(p, model, s, tex)
	c.dev.Draw(target, gfx.DrawCall{
		Program:     p.Handle(),
		VertexArray: g.rect,
		Primitive:   gfx.TriangleFan,
		Count:       4,
		DisableCull: true,
		Blend:       blend,
	})
}

func flatten(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// ── Rectangle ────────────────────────────────────────────────────────────────

// Rectangle spans size along its right and up axes from its minimum corner,
// which is its location.
type Rectangle struct {
	*transform.Transform

	ctx   *Context
	size  mgl32.Vec2
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewRectangle creates a movable rectangle in the XY plane. extra may add
// transform.Rotatable; other components are ignored.
func NewRectangle(ctx *Context, min mgl32.Vec3, size mgl32.Vec2, extra transform.Caps) *Rectangle {
	r := &Rectangle{
		Transform: transform.New(transform.Movable | extra&transform.Rotatable),
		ctx:       ctx,
		size:      size,
		right:     mgl32.Vec3{1, 0, 0},
		up:        mgl32.Vec3{0, 1, 0},
	}
	r.SetLoc(min)
	return r
}

func (r *Rectangle) Min() mgl32.Vec3       { return r.Loc() }
func (r *Rectangle) SetMin(min mgl32.Vec3) { r.SetLoc(min) }
func (r *Rectangle) Size() mgl32.Vec2      { return r.size }
func (r *Rectangle) SetSize(s mgl32.Vec2)  { r.size = s }
func (r *Rectangle) Right() mgl32.Vec3     { return r.right }
func (r *Rectangle) Up() mgl32.Vec3        { return r.up }

// SetRight stores right normalized.
func (r *Rectangle) SetRight(right mgl32.Vec3) { r.right = right.Normalize() }

// SetUp stores up normalized.
func (r *Rectangle) SetUp(up mgl32.Vec3) { r.up = up.Normalize() }

// Corners returns the fan in object space: origin, right, right+up, up,
// each axis scaled by size.
func (r *Rectangle) Corners() [4]mgl32.Vec3 {
	w := r.right.Mul(r.size[0])
	h := r.up.Mul(r.size[1])
	return [4]mgl32.Vec3{{}, w, w.Add(h), h}
}

func (r *Rectangle) Draw(target gfx.Target) { r.DrawWith(target, r.ctx.Settings()) }

func (r *Rectangle) DrawWith(target gfx.Target, s Settings) {
	r.ctx.drawQuad(target, r.UpdateModel(), r.Corners(), s, shapesShader, nil, false)
}

// ── Cube ─────────────────────────────────────────────────────────────────────

// Cube is the unit cube moved to min and scaled by size.
type Cube struct {
	*transform.Transform

	ctx *Context
}

// NewCube creates a movable, scalable cube. extra may add
// transform.Rotatable.
func NewCube(ctx *Context, min, size mgl32.Vec3, extra transform.Caps) *Cube {
	c := &Cube{
		Transform: transform.New(transform.Movable | transform.Scalable | extra&transform.Rotatable),
		ctx:       ctx,
	}
	c.SetLoc(min)
	c.SetScale(size)
	return c
}

func (c *Cube) Min() mgl32.Vec3        { return c.Loc() }
func (c *Cube) SetMin(min mgl32.Vec3)  { c.SetLoc(min) }
func (c *Cube) Size() mgl32.Vec3       { return c.Scale() }
func (c *Cube) SetSize(s mgl32.Vec3)   { c.SetScale(s) }
func (c *Cube) Draw(target gfx.Target) { c.DrawWith(target, c.ctx.Settings()) }

func (c *Cube) DrawWith(target gfx.Target, s Settings) {
	c.ctx.drawCube(target, c.UpdateModel(), s)
}

func (c *Context) drawCube(target gfx.Target, model mgl32.Mat4, s Settings) {
	g := c.geometry()
	if g == nil {
		return
	}
	p := c.resolve(s, shapesShader)
	if p == nil {
		return
	}
	c.setup(p, model, s, nil)
	c.dev.Draw(target, gfx.DrawCall{
		Program:     p.Handle(),
		VertexArray: g.cube,
		Primitive:   gfx.Triangles,
		Count:       36,
	})
}

// ── Points ───────────────────────────────────────────────────────────────────

// Point2D is a square of side size centered on a point in the XY plane.
type Point2D struct {
	tr     *transform.Transform
	ctx    *Context
	center mgl32.Vec2
	size   float32
}

func NewPoint2D(ctx *Context, center mgl32.Vec2, size float32) *Point2D {
	p := &Point2D{tr: transform.New(transform.Movable), ctx: ctx, size: size}
	p.SetCenter(center)
	return p
}

func (p *Point2D) Center() mgl32.Vec2 { return p.center }

func (p *Point2D) SetCenter(c mgl32.Vec2) {
	p.center = c
	p.tr.SetLoc(c.Vec3(0))
}

func (p *Point2D) Size() float32     { return p.size }
func (p *Point2D) SetSize(s float32) { p.size = s }
func (p *Point2D) Model() mgl32.Mat4 { return p.tr.UpdateModel() }
func (p *Point2D) Draw(t gfx.Target) { p.DrawWith(t, p.ctx.Settings()) }

func (p *Point2D) Corners() [4]mgl32.Vec3 {
	h := p.size / 2
	return [4]mgl32.Vec3{{-h, -h, 0}, {h, -h, 0}, {h, h, 0}, {-h, h, 0}}
}

func (p *Point2D) DrawWith(target gfx.Target, s Settings) {
	p.ctx.drawQuad(target, p.tr.UpdateModel(), p.Corners(), s, shapesShader, nil, false)
}

// Point3D is a cube of side size centered on a point.
type Point3D struct {
	tr     *transform.Transform
	ctx    *Context
	center mgl32.Vec3
	size   float32
}

func NewPoint3D(ctx *Context, center mgl32.Vec3, size float32) *Point3D {
	p := &Point3D{tr: transform.New(transform.Movable | transform.Scalable), ctx: ctx}
	p.center = center
	p.SetSize(size)
	return p
}

func (p *Point3D) Center() mgl32.Vec3 { return p.center }

func (p *Point3D) SetCenter(c mgl32.Vec3) {
	p.center = c
	p.SetSize(p.size)
}

func (p *Point3D) Size() float32 { return p.size }

func (p *Point3D) SetSize(s float32) {
	p.size = s
	side := mgl32.Vec3{s, s, s}
	p.tr.SetLoc(p.center.Sub(side.Mul(0.5)))
	p.tr.SetScale(side)
}

func (p *Point3D) Model() mgl32.Mat4 { return p.tr.UpdateModel() }
func (p *Point3D) Draw(t gfx.Target) { p.DrawWith(t, p.ctx.Settings()) }

func (p *Point3D) DrawWith(target gfx.Target, s Settings) {
	p.ctx.drawCube(target, p.tr.UpdateModel(), s)
}

// ── Line ─────────────────────────────────────────────────────────────────────

// Line is a square-section box of the given width from its location, the
// beginning, to End.
type Line struct {
	*transform.Transform

	ctx   *Context
	end   mgl32.Vec3
	width float32
}

// NewLine creates a movable line of DefaultLineWidth. extra may add
// transform.Scalable and transform.Rotatable.
func NewLine(ctx *Context, begin, end mgl32.Vec3, extra transform.Caps) *Line {
	l := &Line{
		Transform: transform.New(transform.Movable | extra&(transform.Scalable|transform.Rotatable)),
		ctx:       ctx,
		end:       end,
		width:     DefaultLineWidth,
	}
	l.SetLoc(begin)
	return l
}

func (l *Line) Begin() mgl32.Vec3      { return l.Loc() }
func (l *Line) SetBegin(b mgl32.Vec3)  { l.SetLoc(b) }
func (l *Line) End() mgl32.Vec3        { return l.end }
func (l *Line) SetEnd(e mgl32.Vec3)    { l.end = e }
func (l *Line) Width() float32         { return l.width }
func (l *Line) SetWidth(w float32)     { l.width = w }
func (l *Line) Draw(target gfx.Target) { l.DrawWith(target, l.ctx.Settings()) }

// Corners returns the box in object space: a square of side width around
// the beginning (0..3) and the same square moved to the end (4..7).
func (l *Line) Corners() [8]mgl32.Vec3 {
	end := l.end.Sub(l.Loc())
	dir := mgl32.Vec3{1, 0, 0}
	if end.Len() > 0 {
		dir = end.Normalize()
	}

	right := mgl32.Vec3{0, 0, 1}
	if dir[0] != 0 || dir[2] != 0 {
		right = dir.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	}
	up := right.Cross(dir).Normalize()
	hw := l.width / 2

	var c [8]mgl32.Vec3
	c[0] = right.Sub(up).Mul(hw)
	c[1] = right.Add(up).Mul(-hw)
	c[2] = right.Sub(up).Mul(-hw)
	c[3] = right.Add(up).Mul(hw)
	for i := range 4 {
		c[i+4] = end.Add(c[i])
	}
	return c
}

func (l *Line) DrawWith(target gfx.Target, s Settings) {
	model := l.UpdateModel()
	g := l.ctx.geometry()
	if g == nil {
		return
	}
	c := l.Corners()
	g.linePos.Update(flatten(c[:]))

	p := l.ctx.resolve(s, shapesShader)
	if p == nil {
		return
	}
	l.ctx.setup(p, model, s, nil)
	l.ctx.dev.Draw(target, gfx.DrawCall{
		Program:     p.Handle(),
		VertexArray: g.line,
		Primitive:   gfx.Triangles,
		Count:       36,
		Indexed:     true,
	})
}
