// Package mesh holds the topological mesh representation that spatial queries run on.
//
// A Mesh is built once from a RenderMesh (a triangle list with positions and normals)
// and then only read. Vertices are not welded: every input vertex becomes its own
// topological vertex, so two triangles only share an edge when the index buffer
// makes them share vertices.
//
// Elements are addressed by dense handles. Per-element data lives in DenseMap values
// next to the Topology instead of inside it, so the connectivity structure stays
// independent of the attributes attached to it.
package mesh

import (
	"errors"
	"fmt"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnsupportedTopology = errors.New("unsupported primitive topology")
	ErrUnsupportedFormat   = errors.New("unsupported attribute format")
	ErrMissingAttribute    = errors.New("missing vertex attribute")
	ErrAttributeMismatch   = errors.New("vertex attribute counts differ")
	ErrIncompleteTriangle  = errors.New("incomplete triangle")
	ErrIndexOutOfRange     = errors.New("vertex index out of range")
	ErrEmptyMesh           = errors.New("mesh has no faces")
)

// Mesh is a half-edge topology with per-vertex positions and normals, and a
// cached normal per face.
type Mesh struct {
	Topology    *Topology
	Positions   DenseMap[VertexHandle, mgl64.Vec3]
	Normals     DenseMap[VertexHandle, mgl64.Vec3]
	FaceNormals DenseMap[FaceHandle, mgl64.Vec3]
}

// New builds a Mesh from a triangle list.
//
// Steps:
//  1. Reject anything that is not a triangle list with Float32x3 positions and normals
//  2. Create one vertex per input vertex, carrying its position and normal
//  3. Create one face per triangle, taken either from the index buffer or from
//     consecutive vertex triples
//  4. Compute face normals from the winding
func New(render RenderMesh) (*Mesh, error) {
	if render.Topology != TriangleList {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTopology, render.Topology)
	}
	if err := checkAttribute("position", render.Positions); err != nil {
		return nil, err
	}
	if err := checkAttribute("normal", render.Normals); err != nil {
		return nil, err
	}

	vertexCount := render.Positions.Len()
	if render.Normals.Len() != vertexCount {
		return nil, fmt.Errorf("%w: %d positions, %d normals", ErrAttributeMismatch, vertexCount, render.Normals.Len())
	}

	indexCount := vertexCount
	if render.Indices != nil {
		indexCount = render.Indices.Len()
	}
	if indexCount%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, indexCount)
	}
	if indexCount == 0 {
		return nil, ErrEmptyMesh
	}

	faceCount := indexCount / 3
	m := &Mesh{
		Topology:    NewTopologyWithCapacity(vertexCount, faceCount),
		Positions:   NewDenseMap[VertexHandle, mgl64.Vec3](vertexCount),
		Normals:     NewDenseMap[VertexHandle, mgl64.Vec3](vertexCount),
		FaceNormals: NewDenseMap[FaceHandle, mgl64.Vec3](faceCount),
	}

	for i := range vertexCount {
		v := m.Topology.AddVertex()
		m.Positions.Insert(v, toVec3(render.Positions.Float32x3At(i)))
		m.Normals.Insert(v, toVec3(render.Normals.Float32x3At(i)))
	}

	for i := 0; i < indexCount; i += 3 {
		var triangle [3]VertexHandle
		for corner := range triangle {
			index := uint32(i + corner)
			if render.Indices != nil {
				index = render.Indices.At(i + corner)
			}
			if int(index) >= vertexCount {
				return nil, fmt.Errorf("%w: index %d with %d vertices", ErrIndexOutOfRange, index, vertexCount)
			}
			triangle[corner] = VertexHandle(index)
		}

		f, err := m.Topology.AddFace(triangle[:]...)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i/3, err)
		}
		m.FaceNormals.Insert(f, m.computeFaceNormal(f))
	}

	return m, nil
}

func checkAttribute(name string, attribute Attribute) error {
	if attribute.Data == nil {
		return fmt.Errorf("%w: %s", ErrMissingAttribute, name)
	}
	if attribute.Format != Float32x3 {
		return fmt.Errorf("%w: %s is %s, want Float32x3", ErrUnsupportedFormat, name, attribute.Format)
	}
	if len(attribute.Data)%3 != 0 {
		return fmt.Errorf("%w: %s buffer of %d floats", ErrUnsupportedFormat, name, len(attribute.Data))
	}
	return nil
}

func toVec3(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// computeFaceNormal uses Newell's method, which matches the triangle normal for
// triangles and stays stable for slightly non-planar polygons.
func (m *Mesh) computeFaceNormal(f FaceHandle) mgl64.Vec3 {
	positions := m.FacePositions(f)

	var normal mgl64.Vec3
	for i, current := range positions {
		next := positions[(i+1)%len(positions)]
		normal[0] += (current.Y() - next.Y()) * (current.Z() + next.Z())
		normal[1] += (current.Z() - next.Z()) * (current.X() + next.X())
		normal[2] += (current.X() - next.X()) * (current.Y() + next.Y())
	}

	if normal.Len() < 1e-12 {
		return mgl64.Vec3{}
	}
	return normal.Normalize()
}

func (m *Mesh) NumVertices() int { return m.Topology.NumVertices() }
func (m *Mesh) NumFaces() int { return m.Topology.NumFaces() }

// FaceHandles lists every face of the mesh.
func (m *Mesh) FaceHandles() []FaceHandle {
	return m.Topology.FaceHandles()
}

// FaceVertices returns the vertices of a face in counter-clockwise order.
func (m *Mesh) FaceVertices(f FaceHandle) []VertexHandle {
	return m.Topology.FaceVertices(f)
}

// FacePositions returns the vertex positions of a face in counter-clockwise order.
func (m *Mesh) FacePositions(f FaceHandle) []mgl64.Vec3 {
	return m.AppendFacePositions(make([]mgl64.Vec3, 0, m.Topology.FaceDegree(f)), f)
}

// AppendFacePositions appends the vertex positions of a face to dst.
func (m *Mesh) AppendFacePositions(dst []mgl64.Vec3, f FaceHandle) []mgl64.Vec3 {
	fc := m.Topology.face(f)
	he := fc.halfEdge
	for range fc.degree {
		dst = append(dst, m.Positions.Get(m.Topology.halfEdges[he].origin))
		he = m.Topology.halfEdges[he].next
	}
	return dst
}

// Centroid returns the mean of the vertex positions of a face.
func (m *Mesh) Centroid(f FaceHandle) mgl64.Vec3 {
	positions := m.FacePositions(f)

	var sum mgl64.Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(positions)))
}

// FaceAABB returns the bounding box of a face.
func (m *Mesh) FaceAABB(f FaceHandle) geometry.AABB {
	return geometry.AABBFromPoints(m.FacePositions(f)...)
}

// AABB returns the bounding box of every vertex position.
func (m *Mesh) AABB() geometry.AABB {
	box := geometry.AABB{Min: m.Positions.Get(0), Max: m.Positions.Get(0)}
	for _, p := range m.Positions.All() {
		box = box.Grow(p)
	}
	return box
}

// FaceNormal returns the cached unit normal of a face.
func (m *Mesh) FaceNormal(f FaceHandle) mgl64.Vec3 {
	return m.FaceNormals.Get(f)
}
