package bvh

import (
	"fmt"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
)

// Kind tells which fields of a Node are meaningful.
type Kind uint8

const (
	// Leaf nodes hold primitives and no children.
	Leaf Kind = iota
	// Internal nodes hold two children and no primitives.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is one entry of the flat node array.
// AABB is expressed in mesh-local space.
type Node struct {
	Kind Kind
	AABB geometry.AABB

	// Primitives lists the faces of a leaf, never empty.
	Primitives []mesh.FaceHandle

	// Children indexes the two children of an internal node.
	Children [2]uint32

	// Oversized marks a leaf above the primitive limit that no split could improve.
	Oversized bool
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

func newLeaf(box geometry.AABB, primitives []mesh.FaceHandle) Node {
	return Node{
		Kind:       Leaf,
		AABB:       box,
		Primitives: primitives,
	}
}

// toInternal rewrites a leaf in place, keeping its box.
func (n *Node) toInternal(left, right uint32) {
	n.Kind = Internal
	n.Primitives = nil
	n.Children = [2]uint32{left, right}
	n.Oversized = false
}
