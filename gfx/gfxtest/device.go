// Package gfxtest provides an in-memory gfx.Device that records what scene
// code asks the backend to do.
package gfxtest

import (
	"errors"
	"maps"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gfx"
)

// Program records every uniform set on it.
type Program struct {
	Vertex, Fragment string
	// Values holds the last value set per uniform name.
	Values map[string]any
	// Sets lists uniform names in the order they were set.
	Sets    []string
	Deleted bool
}

func (p *Program) set(name string, v any) {
	p.Values[name] = v
	p.Sets = append(p.Sets, name)
}

func (p *Program) SetInt(name string, v int32)           { p.set(name, v) }
func (p *Program) SetFloat(name string, v float32)       { p.set(name, v) }
func (p *Program) SetVec3(name string, v mgl32.Vec3)     { p.set(name, v) }
func (p *Program) SetVec4(name string, v mgl32.Vec4)     { p.set(name, v) }
func (p *Program) SetMat4(name string, v mgl32.Mat4)     { p.set(name, v) }
func (p *Program) SetTexture(name string, t gfx.Texture) { p.set(name, t) }
func (p *Program) Delete()                               { p.Deleted = true }

// Reset forgets recorded uniforms.
func (p *Program) Reset() {
	p.Values = map[string]any{}
	p.Sets = nil
}

type Buffer struct {
	Data    []float32
	Usage   gfx.Usage
	Updates int
	Deleted bool
}

func (b *Buffer) Update(data []float32) {
	b.Data = append(b.Data[:0], data...)
	b.Updates++
}
func (b *Buffer) Delete() { b.Deleted = true }

type IndexBuffer struct {
	Indices []uint32
	Deleted bool
}

func (b *IndexBuffer) Count() int { return len(b.Indices) }
func (b *IndexBuffer) Delete()    { b.Deleted = true }

type VertexArray struct {
	Attribs []gfx.VertexAttrib
	Indices gfx.IndexBuffer
	Deleted bool
}

func (v *VertexArray) Delete() { v.Deleted = true }

// Attrib returns the buffer bound at loc, or nil.
func (v *VertexArray) Attrib(loc uint32) *Buffer {
	for _, a := range v.Attribs {
		if a.Location == loc {
			b, _ := a.Buffer.(*Buffer)
			return b
		}
	}
	return nil
}

type Texture struct {
	Desc    gfx.TextureDesc
	Deleted bool
}

func (t *Texture) Width() int  { return t.Desc.Width }
func (t *Texture) Height() int { return t.Desc.Height }
func (t *Texture) Delete()     { t.Deleted = true }

type Framebuffer struct {
	Color   gfx.Texture
	Deleted bool
}

func (f *Framebuffer) Delete() { f.Deleted = true }

// Draw is a recorded draw call with a snapshot of the program's uniforms and
// the vertex streams as they were when the call was issued.
type Draw struct {
	gfx.DrawCall
	Target   gfx.Target
	Uniforms map[string]any
	// Positions is a copy of the data bound at gfx.PosLocation.
	Positions []float32
}

type Clear struct {
	Target gfx.Target
	Color  mgl32.Vec4
}

// Device records resources and draws. Set FailCompile to make CompileProgram
// return an error.
type Device struct {
	Programs     []*Program
	Buffers      []*Buffer
	IndexBuffers []*IndexBuffer
	VertexArrays []*VertexArray
	Textures     []*Texture
	Framebuffers []*Framebuffer
	Draws        []Draw
	Clears       []Clear

	FailCompile error
}

func NewDevice() *Device { return &Device{} }

func (d *Device) CompileProgram(vertex, fragment string) (gfx.Program, error) {
	if d.FailCompile != nil {
		return nil, d.FailCompile
	}
	p := &Program{Vertex: vertex, Fragment: fragment, Values: map[string]any{}}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *Device) NewBuffer(data []float32, usage gfx.Usage) (gfx.Buffer, error) {
	b := &Buffer{Data: append([]float32(nil), data...), Usage: usage}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) NewIndexBuffer(indices []uint32) (gfx.IndexBuffer, error) {
	b := &IndexBuffer{Indices: append([]uint32(nil), indices...)}
	d.IndexBuffers = append(d.IndexBuffers, b)
	return b, nil
}

func (d *Device) NewVertexArray(attribs []gfx.VertexAttrib, indices gfx.IndexBuffer) (gfx.VertexArray, error) {
	if len(attribs) == 0 {
		return nil, errors.New("gfxtest: vertex array without attributes")
	}
	v := &VertexArray{Attribs: append([]gfx.VertexAttrib(nil), attribs...), Indices: indices}
	d.VertexArrays = append(d.VertexArrays, v)
	return v, nil
}

func (d *Device) NewTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	t := &Texture{Desc: desc}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) NewFramebuffer(color gfx.Texture) (gfx.Framebuffer, error) {
	f := &Framebuffer{Color: color}
	d.Framebuffers = append(d.Framebuffers, f)
	return f, nil
}

func (d *Device) Clear(target gfx.Target, color mgl32.Vec4) {
	d.Clears = append(d.Clears, Clear{Target: target, Color: color})
}

func (d *Device) Draw(target gfx.Target, call gfx.DrawCall) {
	rec := Draw{DrawCall: call, Target: target}
	if p, ok := call.Program.(*Program); ok {
		rec.Uniforms = maps.Clone(p.Values)
	}
	if va, ok := call.VertexArray.(*VertexArray); ok {
		if b := va.Attrib(gfx.PosLocation); b != nil {
			rec.Positions = append([]float32(nil), b.Data...)
		}
	}
	d.Draws = append(d.Draws, rec)
}

// LastDraw returns the most recent draw, or the zero Draw.
func (d *Device) LastDraw() Draw {
	if len(d.Draws) == 0 {
		return Draw{}
	}
	return d.Draws[len(d.Draws)-1]
}

// Target is a fixed-size gfx.Target backed by the default framebuffer.
type Target struct {
	W, H int
	FB   gfx.Framebuffer
}

func (t *Target) DrawableSize() (int, int)     { return t.W, t.H }
func (t *Target) ActualSize() (int, int)       { return t.W, t.H }
func (t *Target) Viewport() gfx.Viewport       { return gfx.Viewport{Width: t.W, Height: t.H} }
func (t *Target) Framebuffer() gfx.Framebuffer { return t.FB }
