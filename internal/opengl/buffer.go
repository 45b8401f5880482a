package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scenegl/gfx"
)

// Uploads go through COPY_WRITE_BUFFER so creating or updating a buffer
// never disturbs the ARRAY_BUFFER binding or the element binding of
// whichever vertex array is current.

type buffer struct {
	id    uint32
	size  int
	usage uint32
}

func glUsage(u gfx.Usage) uint32 {
	if u == gfx.StreamDraw {
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

func upload(id uint32, bytes int, ptr any, usage uint32) {
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, id)
	if bytes == 0 {
		gl.BufferData(gl.COPY_WRITE_BUFFER, 0, nil, usage)
	} else {
		gl.BufferData(gl.COPY_WRITE_BUFFER, bytes, gl.Ptr(ptr), usage)
	}
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
}

func (d *Device) NewBuffer(data []float32, usage gfx.Usage) (gfx.Buffer, error) {
	b := &buffer{size: len(data), usage: glUsage(usage)}
	gl.GenBuffers(1, &b.id)
	upload(b.id, len(data)*4, data, b.usage)
	return b, nil
}

// Update replaces the contents, reallocating only when the length changes.
func (b *buffer) Update(data []float32) {
	if len(data) != b.size || len(data) == 0 {
		b.size = len(data)
		upload(b.id, len(data)*4, data, b.usage)
		return
	}
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferSubData(gl.COPY_WRITE_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
}

func (b *buffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

type indexBuffer struct {
	id    uint32
	count int
}

func (d *Device) NewIndexBuffer(indices []uint32) (gfx.IndexBuffer, error) {
	b := &indexBuffer{count: len(indices)}
	gl.GenBuffers(1, &b.id)
	upload(b.id, len(indices)*4, indices, gl.STATIC_DRAW)
	return b, nil
}

func (b *indexBuffer) Count() int { return b.count }

func (b *indexBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

type vertexArray struct {
	id uint32
}

// NewVertexArray records attribute bindings and the optional element buffer
// into a new VAO. Each attribute reads tightly packed floats from its own
// buffer.
func (d *Device) NewVertexArray(attribs []gfx.VertexAttrib, indices gfx.IndexBuffer) (gfx.VertexArray, error) {
	g := d.state.acquire()
	defer g.release()

	va := &vertexArray{}
	gl.GenVertexArrays(1, &va.id)
	gl.BindVertexArray(va.id)

	for _, a := range attribs {
		b, ok := a.Buffer.(*buffer)
		if !ok {
			panic("opengl: buffer was not created by this device")
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, 0, nil)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if indices != nil {
		ib, ok := indices.(*indexBuffer)
		if !ok {
			panic("opengl: index buffer was not created by this device")
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	}
	return va, nil
}

func (v *vertexArray) Delete() {
	if v.id != 0 {
		gl.DeleteVertexArrays(1, &v.id)
		v.id = 0
	}
}
