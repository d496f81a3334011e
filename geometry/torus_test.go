package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTorusIntersectRay(t *testing.T) {
	tests := []struct {
		name      string
		torus     *Torus
		ray       Ray
		expectHit bool
		expectedT float64
	}{
		{
			name:      "Default orientation, ray from the center",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, 1000),
			expectHit: true,
			expectedT: 0.5,
		},
		{
			name:      "Translated torus",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, -10}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, 1000),
			expectHit: true,
			expectedT: 8.5,
		},
		{
			name:      "Rotated torus",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})),
			ray:       NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, 1000),
			expectHit: true,
			expectedT: 0.5,
		},
		{
			name:      "Ray through the hole along the axis",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 1000),
			expectHit: false,
		},
		{
			name:      "Ray from above onto the tube",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{1, 5, 0}, mgl64.Vec3{0, -1, 0}, 1000),
			expectHit: true,
			expectedT: 4.5,
		},
		{
			name:      "Torus behind the ray",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, -10}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, 1000),
			expectHit: false,
		},
		{
			name:      "Out of range",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, -10}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, 8),
			expectHit: false,
		},
		{
			name:      "Complete miss",
			torus:     NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent()),
			ray:       NewRay(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{1, 0, 0}, 1000),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, hit := tt.torus.IntersectRay(tt.ray)
			if hit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v (t=%v)", tt.expectHit, hit, distance)
			}
			if hit && math.Abs(distance-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, distance)
			}
		})
	}
}

func TestTorusAABB(t *testing.T) {
	torus := NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
	box := torus.AABB()

	expected := AABB{Min: mgl64.Vec3{-1.5, -0.5, -1.5}, Max: mgl64.Vec3{1.5, 0.5, 1.5}}
	if !box.Min.ApproxEqual(expected.Min) || !box.Max.ApproxEqual(expected.Max) {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	rotated := NewTorus(1.0, 0.5, mgl64.Vec3{0, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))
	box = rotated.AABB()
	expected = AABB{Min: mgl64.Vec3{-0.5, -1.5, -1.5}, Max: mgl64.Vec3{0.5, 1.5, 1.5}}
	if !box.Min.ApproxEqualThreshold(expected.Min, 1e-9) || !box.Max.ApproxEqualThreshold(expected.Max, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, box)
	}
}
