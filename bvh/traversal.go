package bvh

import (
	"math"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// traversalStackCapacity covers the depth of balanced trees over a few million faces.
const traversalStackCapacity = 64

// Hit is the result of a precise query.
type Hit struct {
	Face mesh.FaceHandle
	// Distance is the parametric distance along the world ray: ray.At(Distance)
	// is the hit point in world space.
	Distance float64
}

// IntersectFast returns the entry distance of the ray into the closest leaf box.
// Faces are not tested, so the result can be shorter than the distance to the surface.
// transform places the mesh in the world.
func (b *BVH) IntersectFast(ray geometry.Ray, transform geometry.Transform) (float64, bool) {
	local := toLocal(ray, transform)

	closest := math.Inf(1)
	b.traverse(local, func(node *Node, entry float64) {
		closest = math.Min(closest, entry)
	}, func() float64 { return closest })

	if math.IsInf(closest, 1) {
		return 0, false
	}
	return closest, true
}

// IntersectPrecise returns the closest face hit by the ray and its distance.
// m must be the mesh the hierarchy was built from; transform places it in the world.
//
// Boxes are tested in mesh-local space. Leaf faces are moved to world space and
// fan-triangulated from their first vertex against the world ray, so the parallel
// rejection of geometry.Triangle.IntersectRay does not depend on the scale. The
// first face reaching the smallest distance wins.
func (b *BVH) IntersectPrecise(ray geometry.Ray, transform geometry.Transform, m *mesh.Mesh) (Hit, bool) {
	local := toLocal(ray, transform)

	best := Hit{Distance: math.Inf(1)}
	positions := make([]mgl64.Vec3, 0, 3)
	b.traverse(local, func(node *Node, entry float64) {
		for _, f := range node.Primitives {
			positions = m.AppendFacePositions(positions[:0], f)
			if t, ok := geometry.IntersectConvexPolygon(ray, transform, positions); ok && t < best.Distance {
				best = Hit{Face: f, Distance: t}
			}
		}
	}, func() float64 { return best.Distance })

	if math.IsInf(best.Distance, 1) {
		return Hit{}, false
	}
	return best, true
}

// toLocal maps a world ray into mesh-local space. The direction keeps the length
// given by the inverse transform so that local distances equal world distances.
func toLocal(ray geometry.Ray, transform geometry.Transform) geometry.Ray {
	if transform.IsIdentity() {
		return ray
	}
	return transform.InverseRay(ray)
}

// traverse walks the tree depth first with an explicit stack, nearest child first.
//
// A node is skipped when the ray misses its box or when the best distance so far is
// already shorter than its entry distance. Leaves are handed to visit with their entry
// distance. When only one child of an internal node is hit, both are pushed and the
// missed one is discarded once popped.
func (b *BVH) traverse(ray geometry.Ray, visit func(node *Node, entry float64), best func() float64) {
	if len(b.Nodes) == 0 {
		return
	}

	stack := make([]uint32, 0, traversalStackCapacity)
	stack = append(stack, 0)

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := b.Node(index)

		entry, ok := node.AABB.IntersectRay(ray)
		if !ok || best() < entry {
			continue
		}

		if node.IsLeaf() {
			visit(node, entry)
			continue
		}

		left, right := node.Children[0], node.Children[1]
		leftEntry, leftHit := b.Node(left).AABB.IntersectRay(ray)
		rightEntry, rightHit := b.Node(right).AABB.IntersectRay(ray)

		// Push the farther child first so the nearer one pops next
		if leftHit && rightHit && leftEntry < rightEntry {
			stack = append(stack, right, left)
		} else {
			stack = append(stack, left, right)
		}
	}
}
