package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPrimitives_FaceCounts(t *testing.T) {
	tests := []struct {
		name     string
		render   RenderMesh
		faces    int
		vertices int
	}{
		{"Quad", Quad(1, 1), 2, 4},
		{"Cuboid", Cuboid(mgl64.Vec3{1, 2, 3}), 12, 24},
		{"Icosahedron", Icosphere(1, 0), 20, 12},
		{"Icosphere 1", Icosphere(1, 1), 80, 42},
		{"Icosphere 4", Icosphere(1, 4), 5120, 2562},
		{"Cone", Cone(1, 1, 16), 32, 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.render)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m.NumFaces() != tt.faces {
				t.Errorf("Expected %d faces, got %d", tt.faces, m.NumFaces())
			}
			if m.NumVertices() != tt.vertices {
				t.Errorf("Expected %d vertices, got %d", tt.vertices, m.NumVertices())
			}
		})
	}
}

// Closed convex primitives must have every face normal pointing away from the center.
func TestPrimitives_OutwardWinding(t *testing.T) {
	tests := []struct {
		name   string
		render RenderMesh
		center mgl64.Vec3
	}{
		{"Cuboid", Cuboid(mgl64.Vec3{2, 2, 2}), mgl64.Vec3{}},
		{"Icosphere", Icosphere(2, 2), mgl64.Vec3{}},
		{"Cone", Cone(1, 2, 12), mgl64.Vec3{0, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.render)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, f := range m.FaceHandles() {
				outward := m.Centroid(f).Sub(tt.center)
				if m.FaceNormal(f).Dot(outward) <= 0 {
					t.Fatalf("Face %v points inward (normal %v)", f, m.FaceNormal(f))
				}
			}
		})
	}
}

func TestIcosphere_OnSphere(t *testing.T) {
	m, err := New(Icosphere(3, 2))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for v, p := range m.Positions.All() {
		if math.Abs(p.Len()-3) > 1e-5 {
			t.Fatalf("Vertex %v at distance %v, expected 3", v, p.Len())
		}
	}
}

func TestIcosphere_Closed(t *testing.T) {
	m, err := New(Icosphere(1, 1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	topology := m.Topology
	for e := range topology.NumEdges() {
		if !topology.IsManifoldEdge(EdgeHandle(e)) || topology.IsBoundaryEdge(EdgeHandle(e)) {
			t.Fatalf("Edge %d should be shared by exactly two faces", e)
		}
	}
	// Euler characteristic of a sphere
	if topology.NumVertices()-topology.NumEdges()+topology.NumFaces() != 2 {
		t.Errorf("Expected V - E + F = 2, got %d", topology.NumVertices()-topology.NumEdges()+topology.NumFaces())
	}
}
