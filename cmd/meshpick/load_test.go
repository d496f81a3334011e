package main

import (
	"strings"
	"testing"

	"github.com/akmonengine/meshpick"
	"github.com/akmonengine/meshpick/bvh"
	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		value    string
		expected mgl64.Vec3
		wantErr  bool
	}{
		{"0,0,10", mgl64.Vec3{0, 0, 10}, false},
		{" 1.5, -2 ,3e2", mgl64.Vec3{1.5, -2, 300}, false},
		{"1,2", mgl64.Vec3{}, true},
		{"1,2,z", mgl64.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseVec3(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormatStats(t *testing.T) {
	m, err := mesh.New(mesh.Icosphere(1, 2))
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	b, err := bvh.Build(m)
	if err != nil {
		t.Fatalf("bvh.Build: %v", err)
	}

	out := formatStats(m, b)
	for _, expected := range []string{"Vertices", "Faces", "320", "Leaves", "Build time"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected %q in\n%s", expected, out)
		}
	}
}

func TestFormatHits(t *testing.T) {
	entity, err := meshpick.NewEntity("cube", mesh.Cuboid(mgl64.Vec3{2, 2, 2}), geometry.NewTransform())
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	hit := formatHits(entity, geometry.NewRay(mgl64.Vec3{0.3, -0.4, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax))
	if !strings.Contains(hit, "9.000000") || strings.Contains(hit, "miss") {
		t.Errorf("Expected both tests to hit at 9\n%s", hit)
	}

	miss := formatHits(entity, geometry.NewRay(mgl64.Vec3{5, 5, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax))
	if strings.Count(miss, "miss") != 2 {
		t.Errorf("Expected both tests to miss\n%s", miss)
	}
}

func TestSummarizeTopology(t *testing.T) {
	m, err := mesh.New(mesh.Icosphere(1, 2))
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}

	summary := summarizeTopology(m.Topology)
	expected := topologySummary{boundaryEdges: 0, nonManifoldEdges: 0, maxValence: 6}
	if summary != expected {
		t.Errorf("Expected %+v for a closed icosphere, got %+v", expected, summary)
	}

	quad, err := mesh.New(mesh.Quad(1, 1))
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	if got := summarizeTopology(quad.Topology).boundaryEdges; got != 4 {
		t.Errorf("Expected the 4 sides of a quad on the boundary, got %d", got)
	}
}

func TestWorldNormal_NonUniformScale(t *testing.T) {
	render := mesh.RenderMesh{
		Topology:  mesh.TriangleList,
		Positions: mesh.NewFloat32x3([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 1}),
		Normals:   mesh.NewFloat32x3([3]float32{0, -1, 1}, [3]float32{0, -1, 1}, [3]float32{0, -1, 1}),
	}
	transform := geometry.NewTransform()
	transform.Scale = mgl64.Vec3{1, 1, 2}

	entity, err := meshpick.NewEntity("tilted", render, transform)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	// (1,0,0) x (0,1,2)
	expected := mgl64.Vec3{0, -2, 1}.Normalize()
	if got := worldNormal(entity, 0); !got.ApproxEqualThreshold(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
