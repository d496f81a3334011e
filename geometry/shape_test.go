package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitQuad() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}
}

// =============================================================================
// Triangle Tests
// =============================================================================

func TestTriangleIntersectRay(t *testing.T) {
	triangle := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name      string
		ray       Ray
		expectHit bool
		expectedT float64
	}{
		{
			name:      "Hit from the front",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 2}, mgl64.Vec3{0, 0, -1}, 100),
			expectHit: true,
			expectedT: 2,
		},
		{
			name:      "Hit from the back",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, -3}, mgl64.Vec3{0, 0, 1}, 100),
			expectHit: true,
			expectedT: 3,
		},
		{
			name:      "Outside u",
			ray:       NewRay(mgl64.Vec3{-0.1, 0.25, 2}, mgl64.Vec3{0, 0, -1}, 100),
			expectHit: false,
		},
		{
			name:      "Outside u+v",
			ray:       NewRay(mgl64.Vec3{0.6, 0.6, 2}, mgl64.Vec3{0, 0, -1}, 100),
			expectHit: false,
		},
		{
			name:      "Parallel to the plane",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{1, 0, 0}, 100),
			expectHit: false,
		},
		{
			name:      "Triangle behind the origin",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 2}, mgl64.Vec3{0, 0, 1}, 100),
			expectHit: false,
		},
		{
			name:      "Origin on the surface",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 0}, mgl64.Vec3{0, 0, -1}, 100),
			expectHit: false,
		},
		{
			name:      "Out of range",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 2}, mgl64.Vec3{0, 0, -1}, 1.5),
			expectHit: false,
		},
		{
			name:      "Exactly at max range",
			ray:       NewRay(mgl64.Vec3{0.25, 0.25, 2}, mgl64.Vec3{0, 0, -1}, 2),
			expectHit: true,
			expectedT: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, hit := triangle.IntersectRay(tt.ray)
			if hit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v (t=%v)", tt.expectHit, hit, distance)
			}
			if hit && math.Abs(distance-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, distance)
			}
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	ccw := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	if !ccw.Normal().ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Expected +Z normal, got %v", ccw.Normal())
	}

	cw := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})
	if !cw.Normal().ApproxEqual(mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Expected -Z normal, got %v", cw.Normal())
	}

	degenerate := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2})
	if degenerate.Normal() != (mgl64.Vec3{}) {
		t.Errorf("Expected zero normal for collinear vertices, got %v", degenerate.Normal())
	}
}

// =============================================================================
// Convex Polygon Tests
// =============================================================================

func TestIntersectConvexPolygon_UnitQuad(t *testing.T) {
	transform := NewTransform()

	ray := NewRay(mgl64.Vec3{0.5, 0.5, 1}, mgl64.Vec3{0, 0, -1}, 1000)
	distance, hit := IntersectConvexPolygon(ray, transform, unitQuad())
	if !hit {
		t.Fatalf("Expected the quad to be hit")
	}
	if distance != 1.0 {
		t.Errorf("Expected t=1.0, got %v", distance)
	}

	ray = NewRay(mgl64.Vec3{0.5, -0.5, 1}, mgl64.Vec3{0, 0, -1}, 1000)
	if _, hit := IntersectConvexPolygon(ray, transform, unitQuad()); hit {
		t.Errorf("Expected miss below the quad")
	}
}

func TestIntersectConvexPolygon_SecondFanTriangle(t *testing.T) {
	// (0.2, 0.8) lies in the triangle (v0, v2, v3) only
	ray := NewRay(mgl64.Vec3{0.2, 0.8, 1}, mgl64.Vec3{0, 0, -1}, 1000)
	distance, hit := IntersectConvexPolygon(ray, NewTransform(), unitQuad())
	if !hit || math.Abs(distance-1) > 1e-12 {
		t.Errorf("Expected hit at t=1, got hit=%v t=%v", hit, distance)
	}
}

func TestIntersectConvexPolygon_Transformed(t *testing.T) {
	transform := NewTransform()
	transform.Position = mgl64.Vec3{10, 0, 0}
	transform.Scale = mgl64.Vec3{2, 2, 1}

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		expectHit bool
	}{
		{"Inside the scaled quad", mgl64.Vec3{11.5, 1.5, 1}, true},
		{"Inside the original quad only", mgl64.Vec3{0.5, 0.5, 1}, false},
		{"Outside the scaled quad", mgl64.Vec3{12.5, 0.5, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, mgl64.Vec3{0, 0, -1}, 1000)
			_, hit := IntersectConvexPolygon(ray, transform, unitQuad())
			if hit != tt.expectHit {
				t.Errorf("Expected hit=%v, got %v", tt.expectHit, hit)
			}
		})
	}
}

func TestIntersectConvexPolygon_TooFewVertices(t *testing.T) {
	ray := NewRay(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 1000)
	if _, hit := IntersectConvexPolygon(ray, NewTransform(), unitQuad()[:2]); hit {
		t.Errorf("Expected a segment never to be hit")
	}
}
