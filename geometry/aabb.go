package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
// Min <= Max componentwise, a single point is a valid box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB creates a box from its center and half extents
func NewAABB(center, halfSize mgl64.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfSize),
		Max: center.Add(halfSize),
	}
}

// AABBFromPoints returns the tightest box around points
// points must not be empty
func AABBFromPoints(points ...mgl64.Vec3) AABB {
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Grow(p)
	}

	return box
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Contains checks if other lies entirely inside the AABB
func (a AABB) Contains(other AABB) bool {
	return a.ContainsPoint(other.Min) && a.ContainsPoint(other.Max)
}

// Merge returns the smallest box containing both boxes
func (a AABB) Merge(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			math.Min(a.Min[0], other.Min[0]),
			math.Min(a.Min[1], other.Min[1]),
			math.Min(a.Min[2], other.Min[2]),
		},
		Max: mgl64.Vec3{
			math.Max(a.Max[0], other.Max[0]),
			math.Max(a.Max[1], other.Max[1]),
			math.Max(a.Max[2], other.Max[2]),
		},
	}
}

// Grow returns the box extended to include point
func (a AABB) Grow(point mgl64.Vec3) AABB {
	return a.Merge(AABB{Min: point, Max: point})
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfSize() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// VisibleArea is the surface area of the box, the cost weight of the SAH.
// A flat box still has the area of its non-degenerate faces.
func (a AABB) VisibleArea() float64 {
	s := a.Size()
	return 2.0 * (s.X()*s.Y() + s.Y()*s.Z() + s.Z()*s.X())
}

// IntersectRay returns the entry distance of the ray into the box (slab method).
// A ray starting inside the box enters at 0. Returns false if the box is missed
// or only reached beyond ray.Max.
//
// The direction does not need to be normalized, t is expressed in direction units.
func (a AABB) IntersectRay(ray Ray) (float64, bool) {
	tEnter, _, ok := a.ClipRay(ray)
	return tEnter, ok
}

// ClipRay returns the parametric interval of the ray inside the box, clamped to
// [0, ray.Max].
func (a AABB) ClipRay(ray Ray) (tEnter, tExit float64, ok bool) {
	tMin := 0.0
	tMax := ray.Max

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		direction := ray.Direction[axis]

		if math.Abs(direction) < 1e-12 {
			// Parallel to the slab: inside or never
			if origin < a.Min[axis] || origin > a.Max[axis] {
				return 0, 0, false
			}
			continue
		}

		inv := 1.0 / direction
		t1 := (a.Min[axis] - origin) * inv
		t2 := (a.Max[axis] - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}
