package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
)

// Unit cube corners.
var cubeCorners = [8]mgl32.Vec3{
	{1, 0, 0}, // A
	{0, 0, 0}, // B
	{0, 0, 1}, // C
	{1, 0, 1}, // D
	{1, 1, 0}, // E
	{0, 1, 0}, // F
	{0, 1, 1}, // G
	{1, 1, 1}, // H
}

// cubeFaces holds two triangles per face over
// cubeCorners: front, top, back, bottom, left, right.
var cubeFaces = [6][6]uint32{
	{0, 1, 4, 4, 1, 5},
	{4, 5, 7, 7, 5, 6},
	{2, 3, 6, 6, 3, 7},
	{1, 0, 2, 2, 0, 3},
	{3, 0, 7, 7, 0, 4},
	{1, 2, 5, 5, 2, 6},
}

var faceTexCoords = [6]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {0, 1}, {1, 0}, {1, 1}}

var rectTexCoords = []float32{0, 0, 1, 0, 1, 1, 0, 1}

// faceNormal is the outward normal of a face, taken from its first triangle.
func faceNormal(face [6]uint32) mgl32.Vec3 {
	p0, p1, p2 := cubeCorners[face[0]], cubeCorners[face[1]], cubeCorners[face[2]]
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// cubeData returns the 36 unindexed vertices of the unit cube.
func cubeData() (pos, normal, uv []float32) {
	for _, face := range cubeFaces {
		n := faceNormal(face)
		for i, idx := range face {
			p := cubeCorners[idx]
			pos = append(pos, p[0], p[1], p[2])
			normal = append(normal, n[0], n[1], n[2])
			uv = append(uv, faceTexCoords[i][0], faceTexCoords[i][1])
		}
	}
	return pos, normal, uv
}

// lineIndices triangulates the eight line box corners like the cube.
func lineIndices() []uint32 {
	out := make([]uint32, 0, 36)
	for _, face := range cubeFaces {
		out = append(out, face[:]...)
	}
	return out
}

// geometry is the vertex data shared by every instance of a shape kind.
// Rectangle and line positions are stream buffers rewritten before each
// draw.
type geometry struct {
	rectPos gfx.Buffer
	rectTex gfx.Buffer
	rect    gfx.VertexArray

	cubePos    gfx.Buffer
	cubeNormal gfx.Buffer
	cubeTex    gfx.Buffer
	cube       gfx.VertexArray

	linePos gfx.Buffer
	lineIdx gfx.IndexBuffer
	line    gfx.VertexArray
}

// geometry returns the shared geometry, creating it on first use. Failures
// are reported and yield nil.
func (c *Context) geometry() *geometry {
	if c.geom != nil {
		return c.geom
	}
	g, err := newGeometry(c.dev)
	if err != nil {
		core.Report(err)
		return nil
	}
	c.geom = g
	return g
}

func newGeometry(dev gfx.Device) (*geometry, error) {
	g := &geometry{}
	var err error
	defer func() {
		if err != nil {
			g.delete()
		}
	}()

	buffer := func(data []float32, usage gfx.Usage) gfx.Buffer {
		if err != nil {
			return nil
		}
		var b gfx.Buffer
		b, err = dev.NewBuffer(data, usage)
		return b
	}

	g.rectPos = buffer(make([]float32, 4*3), gfx.StreamDraw)
	g.rectTex = buffer(rectTexCoords, gfx.StaticDraw)

	pos, normal, uv := cubeData()
	g.cubePos = buffer(pos, gfx.StaticDraw)
	g.cubeNormal = buffer(normal, gfx.StaticDraw)
	g.cubeTex = buffer(uv, gfx.StaticDraw)

	g.linePos = buffer(make([]float32, 8*3), gfx.StreamDraw)
	if err != nil {
		return nil, err
	}
	if g.lineIdx, err = dev.NewIndexBuffer(lineIndices()); err != nil {
		return nil, err
	}

	if g.rect, err = dev.NewVertexArray([]gfx.VertexAttrib{
		{Location: gfx.PosLocation, Components: 3, Buffer: g.rectPos},
		{Location: gfx.TextPosLocation, Components: 2, Buffer: g.rectTex},
	}, nil); err != nil {
		return nil, err
	}
	if g.cube, err = dev.NewVertexArray([]gfx.VertexAttrib{
		{Location: gfx.PosLocation, Components: 3, Buffer: g.cubePos},
		{Location: gfx.NormalLocation, Components: 3, Buffer: g.cubeNormal},
		{Location: gfx.TextPosLocation, Components: 2, Buffer: g.cubeTex},
	}, nil); err != nil {
		return nil, err
	}
	if g.line, err = dev.NewVertexArray([]gfx.VertexAttrib{
		{Location: gfx.PosLocation, Components: 3, Buffer: g.linePos},
	}, g.lineIdx); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *geometry) delete() {
	for _, va := range []gfx.VertexArray{g.rect, g.cube, g.line} {
		if va != nil {
			va.Delete()
		}
	}
	for _, b := range []gfx.Buffer{g.rectPos, g.rectTex, g.cubePos, g.cubeNormal, g.cubeTex, g.linePos} {
		if b != nil {
			b.Delete()
		}
	}
	if g.lineIdx != nil {
		g.lineIdx.Delete()
	}
}
