package geometry

import "github.com/go-gl/mathgl/mgl64"

// Transform places a mesh in the world: scale first, then rotation, then translation
// Scale components must not be zero
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Apply maps a local point to world space
func (t Transform) Apply(point mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{point[0] * t.Scale[0], point[1] * t.Scale[1], point[2] * t.Scale[2]}
	return t.Rotation.Rotate(scaled).Add(t.Position)
}

// InverseApply maps a world point to local space
func (t Transform) InverseApply(point mgl64.Vec3) mgl64.Vec3 {
	local := t.Rotation.Inverse().Rotate(point.Sub(t.Position))
	return mgl64.Vec3{local[0] / t.Scale[0], local[1] / t.Scale[1], local[2] / t.Scale[2]}
}

// InverseRay maps a world ray to local space.
// The local direction is not renormalized: a parametric distance t designates the same
// point in both spaces, so distances found locally are world distances.
func (t Transform) InverseRay(ray Ray) Ray {
	inverse := t.Rotation.Inverse()
	direction := inverse.Rotate(ray.Direction)

	return Ray{
		Origin:    t.InverseApply(ray.Origin),
		Direction: mgl64.Vec3{direction[0] / t.Scale[0], direction[1] / t.Scale[1], direction[2] / t.Scale[2]},
		Max:       ray.Max,
	}
}

// IsIdentity reports whether applying the transform is a no-op
func (t Transform) IsIdentity() bool {
	return t.Position == (mgl64.Vec3{}) &&
		t.Scale == (mgl64.Vec3{1, 1, 1}) &&
		t.Rotation.ApproxEqual(mgl64.QuatIdent())
}

// ApplyAABB returns the world box enclosing the transformed corners of a local box
func (t Transform) ApplyAABB(box AABB) AABB {
	corners := make([]mgl64.Vec3, 0, 8)
	for i := range 8 {
		corner := box.Min
		if i&1 != 0 {
			corner[0] = box.Max[0]
		}
		if i&2 != 0 {
			corner[1] = box.Max[1]
		}
		if i&4 != 0 {
			corner[2] = box.Max[2]
		}
		corners = append(corners, t.Apply(corner))
	}
	return AABBFromPoints(corners...)
}
