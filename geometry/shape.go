package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ParallelEpsilon rejects rays nearly parallel to a triangle plane.
	ParallelEpsilon = 1e-5

	// MinHitDistance discards hits at the ray origin, so a ray cast from a surface
	// does not report the surface it starts on.
	MinHitDistance = 1e-5
)

// Shape is implemented by everything a ray can be tested against
type Shape interface {
	// IntersectRay returns the closest parametric distance of a hit within [0, ray.Max]
	IntersectRay(ray Ray) (float64, bool)
}

var (
	_ Shape = AABB{}
	_ Shape = Triangle{}
	_ Shape = (*Torus)(nil)
)

// Triangle is a single triangle, vertices in counter-clockwise order
type Triangle struct {
	Vertices [3]mgl64.Vec3
}

// NewTriangle creates a triangle from three vertices
func NewTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{Vertices: [3]mgl64.Vec3{a, b, c}}
}

// IntersectRay tests the ray against the triangle with the Möller–Trumbore algorithm.
//
// Algorithm:
//  1. Compute the two edges sharing vertex 0
//  2. Reject if the ray is parallel to the plane (|det| < ParallelEpsilon)
//  3. Compute barycentric u, reject outside [0, 1]
//  4. Compute barycentric v, reject if v < 0 or u + v > 1
//  5. Accept t in (MinHitDistance, ray.Max]
//
// Both faces are hit: picking does not cull back faces.
func (tr Triangle) IntersectRay(ray Ray) (float64, bool) {
	edge1 := tr.Vertices[1].Sub(tr.Vertices[0])
	edge2 := tr.Vertices[2].Sub(tr.Vertices[0])
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	if math.Abs(det) < ParallelEpsilon {
		return 0, false
	}

	f := 1.0 / det
	s := ray.Origin.Sub(tr.Vertices[0])
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= MinHitDistance || t > ray.Max {
		return 0, false
	}

	return t, true
}

// Normal returns the unit normal following the right-hand rule, or zero for a
// degenerate triangle
func (tr Triangle) Normal() mgl64.Vec3 {
	normal := tr.Vertices[1].Sub(tr.Vertices[0]).Cross(tr.Vertices[2].Sub(tr.Vertices[0]))
	if normal.Len() < 1e-12 {
		return mgl64.Vec3{}
	}

	return normal.Normalize()
}

// IntersectConvexPolygon fan-triangulates a convex, planar, counter-clockwise polygon
// from its first vertex and returns the first triangle hit within ray.Max.
// The transform is applied to every vertex before testing.
// Non-convex or non-planar input gives unspecified, but memory-safe, results.
func IntersectConvexPolygon(ray Ray, transform Transform, vertices []mgl64.Vec3) (float64, bool) {
	if len(vertices) < 3 {
		return 0, false
	}

	identity := transform.IsIdentity()
	apply := func(v mgl64.Vec3) mgl64.Vec3 {
		if identity {
			return v
		}
		return transform.Apply(v)
	}

	first := apply(vertices[0])
	previous := apply(vertices[1])
	for i := 2; i < len(vertices); i++ {
		current := apply(vertices[i])
		if t, ok := NewTriangle(first, previous, current).IntersectRay(ray); ok {
			return t, true
		}
		previous = current
	}

	return 0, false
}
