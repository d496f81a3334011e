package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Torus is a ring lying in its local XZ plane, around the local Y axis.
// RingRadius is the distance from the center to the middle of the tube, Thickness the
// tube radius.
type Torus struct {
	RingRadius  float64
	Thickness   float64
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewTorus creates a torus
func NewTorus(ringRadius, thickness float64, position mgl64.Vec3, orientation mgl64.Quat) *Torus {
	return &Torus{
		RingRadius:  ringRadius,
		Thickness:   thickness,
		Position:    position,
		Orientation: orientation,
	}
}

// IntersectRay returns the distance to the closest surface point along the ray.
//
// The ray is moved into the torus frame (d = R⁻¹(origin - position), e = R⁻¹ direction)
// and substituted into the implicit equation
//
//	(x² + y² + z² + a² - b²)² = 4a²(x² + z²)
//
// which yields a quartic in t whose smallest non-negative real root within ray.Max is
// the hit.
//
// References:
//   - http://cosinekitty.com/raytrace/chapter13_torus.html
func (tor *Torus) IntersectRay(ray Ray) (float64, bool) {
	inverse := tor.Orientation.Inverse()
	d := inverse.Rotate(ray.Origin.Sub(tor.Position))
	e := inverse.Rotate(ray.Direction)

	a := tor.RingRadius
	b := tor.Thickness
	aSquared := a * a

	g := 4 * aSquared * (e.X()*e.X() + e.Z()*e.Z())
	h := 8 * aSquared * (d.X()*e.X() + d.Z()*e.Z())
	i := 4 * aSquared * (d.X()*d.X() + d.Z()*d.Z())
	j := e.LenSqr()
	k := 2 * d.Dot(e)
	l := d.LenSqr() + aSquared - b*b

	a4 := j * j
	a3 := 2 * j * k
	a2 := 2*j*l + k*k - g
	a1 := 2*k*l - h
	a0 := l*l - i

	closest := math.Inf(1)
	for _, t := range SolveQuartic(a4, a3, a2, a1, a0) {
		if t >= 0 && t < closest {
			closest = t
		}
	}

	if math.IsInf(closest, 1) || closest > ray.Max {
		return 0, false
	}

	return closest, true
}

// AABB returns a conservative world-space bound of the torus.
func (tor *Torus) AABB() AABB {
	outer := tor.RingRadius + tor.Thickness
	// The bound of the rotated local box
	local := NewAABB(mgl64.Vec3{}, mgl64.Vec3{outer, tor.Thickness, outer})
	corners := [8]mgl64.Vec3{}
	for c := range corners {
		for axis := 0; axis < 3; axis++ {
			if c&(1<<axis) == 0 {
				corners[c][axis] = local.Min[axis]
			} else {
				corners[c][axis] = local.Max[axis]
			}
		}
		corners[c] = tor.Orientation.Rotate(corners[c]).Add(tor.Position)
	}

	return AABBFromPoints(corners[:]...)
}
