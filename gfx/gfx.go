// Package gfx declares the boundary between scene code and a graphics
// backend. Scene objects create, bind and draw these handles but never
// inspect them; internal/opengl provides the OpenGL implementation and
// gfx/gfxtest a recording one.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Attribute locations shared by generated shaders and vertex arrays.
const (
	PosLocation         uint32 = 0
	NormalLocation      uint32 = 1
	ColorAttribLocation uint32 = 2
	TextPosLocation     uint32 = 3
)

type Primitive int

const (
	Triangles Primitive = iota
	TriangleFan
	Lines
)

type Usage int

const (
	StaticDraw Usage = iota
	StreamDraw
)

type TextureFormat int

const (
	RGBA8 TextureFormat = iota
	// R8 is a single coverage channel, used for glyphs.
	R8
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	// Pixels is row-major, bottom row first. Nil allocates storage only.
	Pixels []byte
	// Nearest selects nearest-neighbour minification and disables mipmaps.
	Nearest bool
	// ClampToBorder clamps sampling to a transparent border instead of repeating.
	ClampToBorder bool
}

// Uniforms is the typed setter surface of a compiled program. Setting a name
// the program does not declare is ignored.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, v mgl32.Mat4)
	// SetTexture binds t to a texture unit owned by this program and points
	// the sampler uniform at it.
	SetTexture(name string, t Texture)
}

type Program interface {
	Uniforms
	Delete()
}

type Buffer interface {
	// Update replaces the buffer contents.
	Update(data []float32)
	Delete()
}

type IndexBuffer interface {
	Count() int
	Delete()
}

// VertexAttrib binds one float buffer to an attribute location.
type VertexAttrib struct {
	Location   uint32
	Components int32
	Buffer     Buffer
}

// VertexArray is an immutable geometry descriptor: attribute bindings plus
// an optional index buffer.
type VertexArray interface {
	Delete()
}

type Texture interface {
	Width() int
	Height() int
	Delete()
}

type Framebuffer interface {
	Delete()
}

type Viewport struct {
	X, Y, Width, Height int
}

// Target is a place pixels get written: a window or an off-screen texture.
type Target interface {
	DrawableSize() (int, int)
	// ActualSize is the logical size used to derive the default viewport.
	ActualSize() (int, int)
	Viewport() Viewport
	// Framebuffer returns nil for the default framebuffer.
	Framebuffer() Framebuffer
}

// DrawCall is one immediate-mode draw.
type DrawCall struct {
	Program     Program
	VertexArray VertexArray
	Primitive   Primitive
	Count       int
	Indexed     bool
	DisableCull bool
	Blend       bool
}

// Device creates resources and issues draws on the current context.
type Device interface {
	CompileProgram(vertex, fragment string) (Program, error)
	NewBuffer(data []float32, usage Usage) (Buffer, error)
	NewIndexBuffer(indices []uint32) (IndexBuffer, error)
	NewVertexArray(attribs []VertexAttrib, indices IndexBuffer) (VertexArray, error)
	NewTexture(desc TextureDesc) (Texture, error)
	NewFramebuffer(color Texture) (Framebuffer, error)
	Clear(target Target, color mgl32.Vec4)
	Draw(target Target, call DrawCall)
}
