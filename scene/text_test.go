package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/font"
	"scenegl/gfx"
	"scenegl/gfx/gfxtest"
)

func TestTextLayout(t *testing.T) {
	ctx, _, _ := newTestContext()
	face := font.Default()
	txt := NewText(ctx, face, "ab")
	txt.SetOrigin(mgl32.Vec3{10, 20, 0})
	txt.SetScale(mgl32.Vec2{2, 3})

	a, err := face.Glyph('a')
	require.NoError(t, err)
	b, err := face.Glyph('b')
	require.NoError(t, err)

	placed, err := txt.layout()
	require.NoError(t, err)
	require.Len(t, placed, 2)

	assertVec3InDelta(t, mgl32.Vec3{10, 20 + float32(a.Top-a.Height)*3, 0}, placed[0].loc)
	assert.Equal(t, mgl32.Vec2{float32(a.Width) * 2, float32(a.Height) * 3}, placed[0].size)

	x := 10 + float32(a.Advance+b.Left-a.Left)*2
	assertVec3InDelta(t, mgl32.Vec3{x, 20 + float32(b.Top-b.Height)*3, 0}, placed[1].loc)
}

func TestTextLayoutFollowsDirection(t *testing.T) {
	ctx, _, _ := newTestContext()
	face := font.Default()
	txt := NewText(ctx, face, "ii")
	txt.SetDir(mgl32.Vec3{0, 0, -4})
	txt.SetUp(mgl32.Vec3{0, 1, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, txt.Dir())

	i, err := face.Glyph('i')
	require.NoError(t, err)
	placed, err := txt.layout()
	require.NoError(t, err)
	step := placed[1].loc.Sub(placed[0].loc)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -float32(i.Advance)}, step)
}

func TestTextDraw(t *testing.T) {
	ctx, dev, target := newTestContext()
	txt := NewText(ctx, font.Default(), "ab")
	txt.Draw(target)

	require.Len(t, dev.Draws, 2)
	for _, d := range dev.Draws {
		assert.True(t, d.Blend)
		assert.True(t, d.DisableCull)
		assert.Equal(t, gfx.TriangleFan, d.Primitive)
		tex, ok := d.Uniforms["sgl_Texture"].(*gfxtest.Texture)
		require.True(t, ok)
		assert.Equal(t, gfx.R8, tex.Desc.Format)
	}
	assert.NotSame(t, dev.Draws[0].Uniforms["sgl_Texture"], dev.Draws[1].Uniforms["sgl_Texture"])

	textures := len(dev.Textures)
	txt.Draw(target)
	assert.Len(t, dev.Textures, textures, "glyph textures are cached")

	p, err := ctx.TextShader()
	require.NoError(t, err)
	assert.Same(t, p.Handle(), dev.LastDraw().Program)
}

func TestTextEmptyDrawsNothing(t *testing.T) {
	ctx, dev, target := newTestContext()
	txt := NewText(ctx, font.Default(), "")
	txt.Draw(target)
	assert.Empty(t, dev.Draws)

	r, err := txt.LocalRect()
	require.NoError(t, err)
	assert.Equal(t, Rect{}, r)
}

func TestTextRotatesAboutOrigin(t *testing.T) {
	ctx, dev, target := newTestContext()
	txt := NewText(ctx, font.Default(), "a")
	txt.SetOrigin(mgl32.Vec3{5, 0, 0})
	txt.SetRotOrigin(mgl32.Vec3{5, 0, 0})
	txt.SetAngle(mgl32.DegToRad(90))
	txt.Draw(target)

	placed, err := txt.layout()
	require.NoError(t, err)
	mvp := dev.LastDraw().Uniforms["sgl_ModelViewProj"].(mgl32.Mat4)
	// the glyph corner below the origin swings to its right
	below := placed[0].loc
	want := mgl32.Vec3{5 - below[1], 0, 0}
	assertVec3InDelta(t, want, point(mvp, mgl32.Vec3{}))
}

func TestTextLocalRect(t *testing.T) {
	ctx, _, _ := newTestContext()
	face := font.Default()
	txt := NewText(ctx, face, "ab")
	txt.SetScale(mgl32.Vec2{2, 1})

	a, _ := face.Glyph('a')
	b, _ := face.Glyph('b')
	r, err := txt.LocalRect()
	require.NoError(t, err)

	width := float32(-a.Left + a.Advance + b.Left + b.Width)
	minY := float32(min(0, a.Top-a.Height, b.Top-b.Height))
	maxY := float32(max(0, a.Top, b.Top))
	assert.Equal(t, mgl32.Vec2{0, minY}, r.Min)
	assert.Equal(t, mgl32.Vec2{width * 2, maxY - minY}, r.Size)

	bound, err := txt.LocalBound()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, minY, 0}, bound.Min)
	assert.Equal(t, mgl32.Vec3{width * 2, maxY - minY, 0}, bound.Size)
}
