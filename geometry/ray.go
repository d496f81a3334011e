// Package geometry holds the primitives shared by the mesh index and the picking tools:
// rays, axis-aligned boxes, rigid transforms, and exact ray intersections against
// triangles, convex polygons and tori.
package geometry

import "github.com/go-gl/mathgl/mgl64"

// DefaultRayMax is the pick distance used by interactive tools.
const DefaultRayMax = 1000.0

// Ray is a half-line limited to the parametric range [0, Max].
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Max       float64
}

// NewRay creates a ray with a normalized direction, so that parametric distances
// are world distances.
func NewRay(origin, direction mgl64.Vec3, max float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		Max:       max,
	}
}

// At returns the point at parametric distance t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// InRange reports whether t lies in [0, Max].
func (r Ray) InRange(t float64) bool {
	return t >= 0 && t <= r.Max
}
