package mesh

import "fmt"

// PrimitiveTopology describes how a RenderMesh groups its vertices into primitives.
type PrimitiveTopology int

const (
	PointList PrimitiveTopology = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (p PrimitiveTopology) String() string {
	switch p {
	case PointList:
		return "point list"
	case LineList:
		return "line list"
	case LineStrip:
		return "line strip"
	case TriangleList:
		return "triangle list"
	case TriangleStrip:
		return "triangle strip"
	default:
		return fmt.Sprintf("PrimitiveTopology(%d)", int(p))
	}
}

// AttributeFormat is the element layout of a vertex attribute.
type AttributeFormat int

const (
	Float32x2 AttributeFormat = iota + 1
	Float32x3
	Float32x4
)

// Components returns the number of float32 values per element.
func (f AttributeFormat) Components() int {
	switch f {
	case Float32x2:
		return 2
	case Float32x3:
		return 3
	case Float32x4:
		return 4
	default:
		return 0
	}
}

func (f AttributeFormat) String() string {
	switch f {
	case Float32x2:
		return "Float32x2"
	case Float32x3:
		return "Float32x3"
	case Float32x4:
		return "Float32x4"
	default:
		return fmt.Sprintf("AttributeFormat(%d)", int(f))
	}
}

// Attribute is a flat, tightly packed vertex attribute buffer.
// A nil Data means the attribute is absent.
type Attribute struct {
	Format AttributeFormat
	Data   []float32
}

// NewFloat32x3 packs three-component values into an attribute.
func NewFloat32x3(values ...[3]float32) Attribute {
	data := make([]float32, 0, len(values)*3)
	for _, v := range values {
		data = append(data, v[0], v[1], v[2])
	}
	return Attribute{Format: Float32x3, Data: data}
}

// Len returns the number of elements in the attribute.
func (a Attribute) Len() int {
	components := a.Format.Components()
	if components == 0 {
		return 0
	}
	return len(a.Data) / components
}

// Float32x3At returns element i of a Float32x3 attribute.
func (a Attribute) Float32x3At(i int) [3]float32 {
	return [3]float32{a.Data[i*3], a.Data[i*3+1], a.Data[i*3+2]}
}

// Indices is an index buffer of either width.
type Indices interface {
	Len() int
	At(i int) uint32
}

type U16Indices []uint16

func (i U16Indices) Len() int { return len(i) }
func (i U16Indices) At(index int) uint32 { return uint32(i[index]) }

type U32Indices []uint32

func (i U32Indices) Len() int { return len(i) }
func (i U32Indices) At(index int) uint32 { return i[index] }

// RenderMesh is a GPU-oriented description of a mesh, as produced by loaders and
// primitive generators. With nil Indices, vertices are consumed in order.
type RenderMesh struct {
	Topology  PrimitiveTopology
	Positions Attribute
	Normals   Attribute
	Indices   Indices
}

// VertexCount returns the number of positions.
func (r RenderMesh) VertexCount() int {
	return r.Positions.Len()
}

// TriangleCount returns the number of triangles of a triangle list.
func (r RenderMesh) TriangleCount() int {
	if r.Indices != nil {
		return r.Indices.Len() / 3
	}
	return r.VertexCount() / 3
}
