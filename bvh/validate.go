package bvh

import (
	"errors"
	"fmt"

	"github.com/akmonengine/meshpick/mesh"
)

var ErrInvalidTree = errors.New("invalid hierarchy")

// Walk visits the nodes depth first, parents before children, left before right.
// Returning false from fn skips the children of that node.
func (b *BVH) Walk(fn func(index uint32, node *Node, depth int) bool) {
	if len(b.Nodes) == 0 {
		return
	}

	stack := []queued{{index: 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := b.Node(current.index)
		if !fn(current.index, node, current.depth) || node.IsLeaf() {
			continue
		}
		stack = append(stack,
			queued{index: node.Children[1], depth: current.depth + 1},
			queued{index: node.Children[0], depth: current.depth + 1},
		)
	}
}

// Leaves returns the indices of every leaf, in depth-first order.
func (b *BVH) Leaves() []uint32 {
	leaves := make([]uint32, 0, b.stats.Leaves)
	b.Walk(func(index uint32, node *Node, _ int) bool {
		if node.IsLeaf() {
			leaves = append(leaves, index)
		}
		return true
	})
	return leaves
}

// Validate checks the structural guarantees of the hierarchy against the mesh it was
// built from:
//   - every node is reachable once from the root and every child index is in range
//   - leaves are non-empty and hold at most MaxLeafPrimitives faces unless Oversized
//   - every face of m appears in exactly one leaf
//   - every box contains the boxes of its children and of its faces
func (b *BVH) Validate(m *mesh.Mesh) error {
	if len(b.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidTree)
	}

	seenNodes := make([]bool, len(b.Nodes))
	seenFaces := mesh.NewDenseMap[mesh.FaceHandle, uint32](m.NumFaces())

	var err error
	b.Walk(func(index uint32, node *Node, _ int) bool {
		if err != nil {
			return false
		}
		if seenNodes[index] {
			err = fmt.Errorf("%w: node %d reached twice", ErrInvalidTree, index)
			return false
		}
		seenNodes[index] = true

		if node.IsLeaf() {
			err = b.validateLeaf(index, node, m, &seenFaces)
			return false
		}

		for _, child := range node.Children {
			if int(child) >= len(b.Nodes) {
				err = fmt.Errorf("%w: node %d points to missing child %d", ErrInvalidTree, index, child)
				return false
			}
			if !node.AABB.Contains(b.Nodes[child].AABB) {
				err = fmt.Errorf("%w: node %d does not contain child %d", ErrInvalidTree, index, child)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	for index, seen := range seenNodes {
		if !seen {
			return fmt.Errorf("%w: node %d is unreachable", ErrInvalidTree, index)
		}
	}
	if seenFaces.Len() != m.NumFaces() {
		return fmt.Errorf("%w: %d of %d faces are in a leaf", ErrInvalidTree, seenFaces.Len(), m.NumFaces())
	}

	return nil
}

func (b *BVH) validateLeaf(index uint32, node *Node, m *mesh.Mesh, seenFaces *mesh.DenseMap[mesh.FaceHandle, uint32]) error {
	if len(node.Primitives) == 0 {
		return fmt.Errorf("%w: leaf %d is empty", ErrInvalidTree, index)
	}
	if len(node.Primitives) > b.options.MaxLeafPrimitives && !node.Oversized {
		return fmt.Errorf("%w: leaf %d holds %d faces", ErrInvalidTree, index, len(node.Primitives))
	}

	for _, f := range node.Primitives {
		if int(f) >= m.NumFaces() {
			return fmt.Errorf("%w: leaf %d holds unknown face %v", ErrInvalidTree, index, f)
		}
		if other, ok := seenFaces.Lookup(f); ok {
			return fmt.Errorf("%w: face %v is in leaves %d and %d", ErrInvalidTree, f, other, index)
		}
		seenFaces.Insert(f, index)

		if !node.AABB.Contains(m.FaceAABB(f)) {
			return fmt.Errorf("%w: leaf %d does not contain face %v", ErrInvalidTree, index, f)
		}
	}

	return nil
}
