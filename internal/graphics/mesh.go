package graphics

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Vertex is a textured vertex: position followed by texture coordinates
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}

// ColorVertex carries a per-vertex color between position and UV
type ColorVertex struct {
	Position [3]float32
	Color    [3]float32
	UV       [2]float32
}

// Attribute describes one float vertex attribute inside an interleaved buffer
type Attribute struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// VertexLayout describes how a vertex struct maps onto shader inputs
type VertexLayout struct {
	Stride     int32
	Attributes []Attribute
}

// Layout matches the basic shader: location 0 position, 1 UV.
func (Vertex) Layout() VertexLayout {
	var v Vertex
	return VertexLayout{
		Stride: int32(unsafe.Sizeof(v)),
		Attributes: []Attribute{
			{Location: 0, Components: 3, Offset: unsafe.Offsetof(v.Position)},
			{Location: 1, Components: 2, Offset: unsafe.Offsetof(v.UV)},
		},
	}
}

// Layout matches the colored shader: location 0 position, 1 color, 2 UV.
func (ColorVertex) Layout() VertexLayout {
	var v ColorVertex
	return VertexLayout{
		Stride: int32(unsafe.Sizeof(v)),
		Attributes: []Attribute{
			{Location: 0, Components: 3, Offset: unsafe.Offsetof(v.Position)},
			{Location: 1, Components: 3, Offset: unsafe.Offsetof(v.Color)},
			{Location: 2, Components: 2, Offset: unsafe.Offsetof(v.UV)},
		},
	}
}

// Cube is a unit cube centered on the origin, two triangles per face.
var Cube = [36]Vertex{
	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, -0.5}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 0}},

	{[3]float32{-0.5, -0.5, 0.5}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, 0.5}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [2]float32{0, 0}},

	{[3]float32{-0.5, 0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [2]float32{1, 0}},

	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [2]float32{0, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 0}},

	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{-0.5, -0.5, 0.5}, [2]float32{0, 0}},
	{[3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 1}},

	{[3]float32{-0.5, 0.5, -0.5}, [2]float32{0, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [2]float32{0, 1}},
}

// Quad is a unit square in the XY plane facing +Z, one color per corner.
var Quad = [6]ColorVertex{
	{[3]float32{-0.5, -0.5, 0}, [3]float32{1, 0, 0}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, 0}, [3]float32{0, 1, 0}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, 0}, [3]float32{1, 1, 0}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0}, [3]float32{1, 0, 0}, [2]float32{0, 0}},
}

// MeshBuffer is a vertex array plus the buffer backing it
type MeshBuffer struct {
	vao, vbo uint32
	count    int32
	label    string
	released bool
}

// UploadMesh copies vertices into a static GPU buffer and configures a
// vertex array according to layout.
func UploadMesh[V any](label string, vertices []V, layout VertexLayout) (*MeshBuffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("upload mesh %q: no vertices", label)
	}
	var zero V
	size := len(vertices) * int(unsafe.Sizeof(zero))
	if int32(unsafe.Sizeof(zero)) != layout.Stride {
		return nil, fmt.Errorf("upload mesh %q: vertex size %d does not match layout stride %d", label, unsafe.Sizeof(zero), layout.Stride)
	}

	m := &MeshBuffer{count: int32(len(vertices)), label: label}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	if m.vao == 0 || m.vbo == 0 {
		m.Release()
		return nil, fmt.Errorf("upload mesh %q: %w", label, ErrCreation)
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(vertices), gl.STATIC_DRAW)
	setLabel(gl.BUFFER, m.vbo, label)
	setLabel(gl.VERTEX_ARRAY, m.vao, label)

	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, layout.Stride, gl.PtrOffset(int(a.Offset)))
	}

	// unbind to reduce accidental state changes
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	Logger().Debug("uploaded mesh", "label", label, "vertices", m.count, "bytes", size)
	return m, nil
}

// Draw binds the vertex array and draws it as a triangle list
func (m *MeshBuffer) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

func (m *MeshBuffer) Count() int32 { return m.count }

// Release deletes the buffer and vertex array. Calls after the first are no-ops.
func (m *MeshBuffer) Release() {
	if m == nil || m.released {
		return
	}
	m.released = true
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
}
