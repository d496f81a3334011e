package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVertex  = errors.New("unknown vertex handle")
	ErrDegenerateFace = errors.New("degenerate face")
)

const noHalfEdge = -1

type halfEdge struct {
	origin VertexHandle
	next   uint32
	twin   int32
	face   FaceHandle
	edge   EdgeHandle
}

type edge struct {
	vertices  [2]VertexHandle
	halfEdges []uint32
}

type face struct {
	halfEdge uint32
	degree   int
}

// Topology is a half-edge connectivity structure for polygonal meshes.
//
// Every face is a closed loop of half-edges following its vertices in counter-clockwise
// order. Half-edges sharing the same two vertices in opposite directions are twins and
// belong to the same undirected edge. Non-manifold input (an edge shared by more than
// two faces, or by two faces with inconsistent winding) is accepted: the extra
// half-edges are simply left without a twin.
//
// Handles are indices into the element tables, elements are never removed.
type Topology struct {
	outgoing  [][]uint32
	halfEdges []halfEdge
	edges     []edge
	faces     []face

	edgeLookup map[[2]VertexHandle]EdgeHandle
}

// NewTopology creates an empty topology.
func NewTopology() *Topology {
	return NewTopologyWithCapacity(0, 0)
}

// NewTopologyWithCapacity creates an empty topology sized for the given element counts.
func NewTopologyWithCapacity(vertices, faces int) *Topology {
	return &Topology{
		outgoing:   make([][]uint32, 0, vertices),
		halfEdges:  make([]halfEdge, 0, faces*3),
		edges:      make([]edge, 0, faces*3/2),
		faces:      make([]face, 0, faces),
		edgeLookup: make(map[[2]VertexHandle]EdgeHandle, faces*3/2),
	}
}

// AddVertex registers a new isolated vertex.
func (t *Topology) AddVertex() VertexHandle {
	t.outgoing = append(t.outgoing, nil)
	return VertexHandle(len(t.outgoing) - 1)
}

// AddFace creates a face bounded by vertices, given in counter-clockwise order.
// A face needs at least three distinct, registered vertices.
func (t *Topology) AddFace(vertices ...VertexHandle) (FaceHandle, error) {
	if len(vertices) < 3 {
		return 0, fmt.Errorf("%w: %d vertices", ErrDegenerateFace, len(vertices))
	}
	for i, v := range vertices {
		if int(v) >= len(t.outgoing) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
		}
		for _, other := range vertices[:i] {
			if other == v {
				return 0, fmt.Errorf("%w: vertex %d repeated", ErrDegenerateFace, v)
			}
		}
	}

	handle := FaceHandle(len(t.faces))
	first := uint32(len(t.halfEdges))
	for i, origin := range vertices {
		target := vertices[(i+1)%len(vertices)]
		index := first + uint32(i)
		next := first + uint32((i+1)%len(vertices))

		he := halfEdge{
			origin: origin,
			next:   next,
			twin:   noHalfEdge,
			face:   handle,
		}

		key := edgeKey(origin, target)
		edgeHandle, exists := t.edgeLookup[key]
		if !exists {
			edgeHandle = EdgeHandle(len(t.edges))
			t.edges = append(t.edges, edge{vertices: [2]VertexHandle{origin, target}})
			t.edgeLookup[key] = edgeHandle
		}
		he.edge = edgeHandle

		// Pair with the first opposite half-edge still free
		for _, candidate := range t.edges[edgeHandle].halfEdges {
			other := &t.halfEdges[candidate]
			if other.twin == noHalfEdge && other.origin == target {
				other.twin = int32(index)
				he.twin = int32(candidate)
				break
			}
		}

		t.halfEdges = append(t.halfEdges, he)
		t.edges[edgeHandle].halfEdges = append(t.edges[edgeHandle].halfEdges, index)
		t.outgoing[origin] = append(t.outgoing[origin], index)
	}

	t.faces = append(t.faces, face{halfEdge: first, degree: len(vertices)})

	return handle, nil
}

func edgeKey(a, b VertexHandle) [2]VertexHandle {
	if a > b {
		a, b = b, a
	}
	return [2]VertexHandle{a, b}
}

func (t *Topology) NumVertices() int { return len(t.outgoing) }
func (t *Topology) NumEdges() int { return len(t.edges) }
func (t *Topology) NumFaces() int { return len(t.faces) }

// FaceHandles lists every face in creation order.
func (t *Topology) FaceHandles() []FaceHandle {
	handles := make([]FaceHandle, len(t.faces))
	for i := range handles {
		handles[i] = FaceHandle(i)
	}
	return handles
}

// VertexHandles lists every vertex in creation order.
func (t *Topology) VertexHandles() []VertexHandle {
	handles := make([]VertexHandle, len(t.outgoing))
	for i := range handles {
		handles[i] = VertexHandle(i)
	}
	return handles
}

// FaceDegree returns the number of vertices of a face.
func (t *Topology) FaceDegree(f FaceHandle) int {
	return t.face(f).degree
}

// FaceVertices returns the boundary vertices of a face in counter-clockwise order.
func (t *Topology) FaceVertices(f FaceHandle) []VertexHandle {
	return t.AppendFaceVertices(make([]VertexHandle, 0, t.face(f).degree), f)
}

// AppendFaceVertices appends the boundary vertices of a face to dst.
func (t *Topology) AppendFaceVertices(dst []VertexHandle, f FaceHandle) []VertexHandle {
	fc := t.face(f)
	he := fc.halfEdge
	for range fc.degree {
		dst = append(dst, t.halfEdges[he].origin)
		he = t.halfEdges[he].next
	}
	return dst
}

// FaceEdges returns the edges bounding a face, starting with the edge leaving its
// first vertex.
func (t *Topology) FaceEdges(f FaceHandle) []EdgeHandle {
	fc := t.face(f)
	edges := make([]EdgeHandle, 0, fc.degree)
	he := fc.halfEdge
	for range fc.degree {
		edges = append(edges, t.halfEdges[he].edge)
		he = t.halfEdges[he].next
	}
	return edges
}

// FaceNeighbors returns the faces sharing an edge with f through twin half-edges.
func (t *Topology) FaceNeighbors(f FaceHandle) []FaceHandle {
	fc := t.face(f)
	neighbors := make([]FaceHandle, 0, fc.degree)
	he := fc.halfEdge
	for range fc.degree {
		if twin := t.halfEdges[he].twin; twin != noHalfEdge {
			neighbors = append(neighbors, t.halfEdges[twin].face)
		}
		he = t.halfEdges[he].next
	}
	return neighbors
}

// VertexFaces returns the faces incident to a vertex, in creation order.
func (t *Topology) VertexFaces(v VertexHandle) []FaceHandle {
	outgoing := t.vertex(v)
	faces := make([]FaceHandle, 0, len(outgoing))
	for _, he := range outgoing {
		faces = append(faces, t.halfEdges[he].face)
	}
	return faces
}

// VertexDegree returns the number of faces incident to a vertex.
func (t *Topology) VertexDegree(v VertexHandle) int {
	return len(t.vertex(v))
}

// EdgeVertices returns the two endpoints of an edge.
func (t *Topology) EdgeVertices(e EdgeHandle) (VertexHandle, VertexHandle) {
	ed := t.edge(e)
	return ed.vertices[0], ed.vertices[1]
}

// EdgeFaces returns the faces adjacent to an edge.
func (t *Topology) EdgeFaces(e EdgeHandle) []FaceHandle {
	ed := t.edge(e)
	faces := make([]FaceHandle, 0, len(ed.halfEdges))
	for _, he := range ed.halfEdges {
		faces = append(faces, t.halfEdges[he].face)
	}
	return faces
}

// IsBoundaryEdge reports whether an edge borders a single face.
func (t *Topology) IsBoundaryEdge(e EdgeHandle) bool {
	return len(t.edge(e).halfEdges) == 1
}

// IsManifoldEdge reports whether an edge borders at most two faces wound consistently.
func (t *Topology) IsManifoldEdge(e EdgeHandle) bool {
	ed := t.edge(e)
	switch len(ed.halfEdges) {
	case 1:
		return true
	case 2:
		return t.halfEdges[ed.halfEdges[0]].twin == int32(ed.halfEdges[1])
	default:
		return false
	}
}

func (t *Topology) face(f FaceHandle) face {
	if int(f) >= len(t.faces) {
		panic(fmt.Sprintf("mesh: face handle %d out of range (%d faces)", f, len(t.faces)))
	}
	return t.faces[f]
}

func (t *Topology) vertex(v VertexHandle) []uint32 {
	if int(v) >= len(t.outgoing) {
		panic(fmt.Sprintf("mesh: vertex handle %d out of range (%d vertices)", v, len(t.outgoing)))
	}
	return t.outgoing[v]
}

func (t *Topology) edge(e EdgeHandle) edge {
	if int(e) >= len(t.edges) {
		panic(fmt.Sprintf("mesh: edge handle %d out of range (%d edges)", e, len(t.edges)))
	}
	return t.edges[e]
}
