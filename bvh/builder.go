// Package bvh implements a bounding volume hierarchy over the faces of a mesh.Mesh.
//
// The hierarchy is a binary tree of axis-aligned boxes stored in one flat array:
// node 0 is the root and children are referenced by index. It answers ray queries
// in two modes:
//   - Fast: the entry distance into the closest leaf box, for whole-object picking
//   - Precise: the closest face and its exact hit distance, for sub-object interaction
//
// Construction uses the Surface Area Heuristic with binned candidates:
//  1. Cache the centroid and box of every face
//  2. Seed a root leaf holding every face
//  3. Process leaves breadth first, splitting those above MaxLeafPrimitives
//  4. For each axis, drop face centroids into BucketCount equal-width bins, then score
//     every interior bin boundary with cost = (leftArea/area)*nLeft + (rightArea/area)*nRight
//  5. Partition on the cheapest boundary; the leaf becomes internal and both halves
//     are queued as new leaves
//
// A leaf that no boundary can split (every centroid in one bin) is kept as an
// oversized leaf and a warning is logged. Construction is deterministic: equal
// meshes and options always produce equal trees.
//
// References:
//   - Wald: "On fast Construction of SAH-based Bounding Volume Hierarchies" (2007)
//   - Pharr, Jakob, Humphreys: "Physically Based Rendering", 4.3 Bounding Volume Hierarchies
package bvh

import (
	"errors"
	"fmt"
	"time"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/log"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultMaxLeafPrimitives is the face count above which a leaf is split.
	DefaultMaxLeafPrimitives = 16

	// DefaultBucketCount is the number of bins per axis scored by the SAH.
	// More buckets find better splits at a linear build cost.
	DefaultBucketCount = 16

	// minBucketCount leaves at least one interior boundary to score.
	minBucketCount = 3
)

var (
	ErrEmptyMesh      = errors.New("cannot build a hierarchy over a mesh without faces")
	ErrInvalidOptions = errors.New("invalid build options")
)

var logger = log.New("bvh")

// Options tunes the construction.
type Options struct {
	MaxLeafPrimitives int
	BucketCount       int
}

// DefaultOptions returns the options used by Build.
func DefaultOptions() Options {
	return Options{
		MaxLeafPrimitives: DefaultMaxLeafPrimitives,
		BucketCount:       DefaultBucketCount,
	}
}

func (o Options) validate() error {
	if o.MaxLeafPrimitives < 1 {
		return fmt.Errorf("%w: MaxLeafPrimitives must be at least 1, got %d", ErrInvalidOptions, o.MaxLeafPrimitives)
	}
	if o.BucketCount < minBucketCount {
		return fmt.Errorf("%w: BucketCount must be at least %d, got %d", ErrInvalidOptions, minBucketCount, o.BucketCount)
	}
	return nil
}

// Stats describes the last build.
type Stats struct {
	Faces           int
	Nodes           int
	Leaves          int
	OversizedLeaves int
	MaxDepth        int
	// LargestLeaf is the face count of the most populated leaf.
	LargestLeaf int
	Duration    time.Duration
}

// BVH is a hierarchy built from one mesh snapshot.
// It is read-only after construction and safe for concurrent queries.
type BVH struct {
	Nodes []Node

	options Options
	stats   Stats
}

// Build creates a hierarchy over every face of m with DefaultOptions.
func Build(m *mesh.Mesh) (*BVH, error) {
	return BuildWithOptions(m, DefaultOptions())
}

// BuildWithOptions creates a hierarchy over every face of m.
func BuildWithOptions(m *mesh.Mesh, options Options) (*BVH, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	b := &BVH{options: options}
	if err := b.build(m); err != nil {
		return nil, err
	}
	return b, nil
}

// Rebuild discards the current tree and builds a new one from m with the same options.
// On error the current tree is kept.
func (b *BVH) Rebuild(m *mesh.Mesh) error {
	return b.build(m)
}

// Stats returns the statistics of the last build.
func (b *BVH) Stats() Stats {
	return b.stats
}

// Options returns the options the hierarchy was built with.
func (b *BVH) Options() Options {
	return b.options
}

// Root returns node 0.
func (b *BVH) Root() *Node {
	return b.Node(0)
}

// Node returns the node at index. An index outside the array is a builder bug and panics.
func (b *BVH) Node(index uint32) *Node {
	if int(index) >= len(b.Nodes) {
		panic(fmt.Sprintf("bvh: node index %d out of range (%d nodes)", index, len(b.Nodes)))
	}
	return &b.Nodes[index]
}

// AABB returns the bounds of the whole mesh in local space.
func (b *BVH) AABB() geometry.AABB {
	return b.Root().AABB
}

type faceCache struct {
	centroids mesh.DenseMap[mesh.FaceHandle, mgl64.Vec3]
	boxes     mesh.DenseMap[mesh.FaceHandle, geometry.AABB]
}

type queued struct {
	index uint32
	depth int
}

type bucket struct {
	count int
	box   geometry.AABB
}

func (bk bucket) merge(other bucket) bucket {
	switch {
	case other.count == 0:
		return bk
	case bk.count == 0:
		return other
	default:
		return bucket{count: bk.count + other.count, box: bk.box.Merge(other.box)}
	}
}

type split struct {
	axis     int
	boundary int
	cost     float64
	left     bucket
	right    bucket
	lower    float64
	extent   float64
}

func (b *BVH) build(m *mesh.Mesh) error {
	faceCount := m.NumFaces()
	if faceCount == 0 {
		return ErrEmptyMesh
	}

	start := time.Now()

	cache := faceCache{
		centroids: mesh.NewDenseMap[mesh.FaceHandle, mgl64.Vec3](faceCount),
		boxes:     mesh.NewDenseMap[mesh.FaceHandle, geometry.AABB](faceCount),
	}
	faces := m.FaceHandles()

	var rootBox geometry.AABB
	for i, f := range faces {
		box := m.FaceAABB(f)
		cache.centroids.Insert(f, m.Centroid(f))
		cache.boxes.Insert(f, box)
		if i == 0 {
			rootBox = box
		} else {
			rootBox = rootBox.Merge(box)
		}
	}

	nodes := make([]Node, 0, 2*faceCount/b.options.MaxLeafPrimitives+1)
	nodes = append(nodes, newLeaf(rootBox, faces))
	stats := Stats{Faces: faceCount}

	queue := []queued{{index: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		stats.MaxDepth = max(stats.MaxDepth, current.depth)

		node := &nodes[current.index]
		if len(node.Primitives) <= b.options.MaxLeafPrimitives {
			continue
		}

		best, ok := b.findSplit(node, &cache)
		if !ok {
			node.Oversized = true
			logger.Warningf("leaf %d keeps %d faces: no bucket boundary separates their centroids", current.index, len(node.Primitives))
			continue
		}

		left, right := b.partition(node.Primitives, best, &cache)

		leftIndex := uint32(len(nodes))
		rightIndex := leftIndex + 1
		nodes = append(nodes, newLeaf(best.left.box, left), newLeaf(best.right.box, right))
		// append may have moved the array
		nodes[current.index].toInternal(leftIndex, rightIndex)

		queue = append(queue,
			queued{index: leftIndex, depth: current.depth + 1},
			queued{index: rightIndex, depth: current.depth + 1},
		)
	}

	for i := range nodes {
		if !nodes[i].IsLeaf() {
			continue
		}
		stats.Leaves++
		stats.LargestLeaf = max(stats.LargestLeaf, len(nodes[i].Primitives))
		if nodes[i].Oversized {
			stats.OversizedLeaves++
		}
	}
	stats.Nodes = len(nodes)
	stats.Duration = time.Since(start)

	b.Nodes = nodes
	b.stats = stats

	logger.Debugf("built %d nodes (%d leaves, %d oversized, depth %d) over %d faces in %v",
		stats.Nodes, stats.Leaves, stats.OversizedLeaves, stats.MaxDepth, stats.Faces, stats.Duration)

	return nil
}

// findSplit scores every interior bucket boundary of the three axes and returns the
// cheapest. Ties keep the first candidate in axis then boundary order.
func (b *BVH) findSplit(node *Node, cache *faceCache) (split, bool) {
	bucketCount := b.options.BucketCount
	buckets := make([]bucket, bucketCount)
	area := node.AABB.VisibleArea()

	var best split
	found := false
	for axis := range 3 {
		lower := node.AABB.Min[axis]
		extent := node.AABB.Max[axis] - lower
		if extent <= 0 {
			// Every centroid would land in bucket 0
			continue
		}

		clear(buckets)
		for _, f := range node.Primitives {
			index := bucketIndex(cache.centroids.Get(f)[axis], lower, extent, bucketCount)
			buckets[index] = buckets[index].merge(bucket{count: 1, box: cache.boxes.Get(f)})
		}

		for boundary := 1; boundary < bucketCount-1; boundary++ {
			var left, right bucket
			for _, bk := range buckets[:boundary] {
				left = left.merge(bk)
			}
			if left.count == 0 {
				continue
			}
			for _, bk := range buckets[boundary:] {
				right = right.merge(bk)
			}
			if right.count == 0 {
				continue
			}

			cost := left.box.VisibleArea()/area*float64(left.count) +
				right.box.VisibleArea()/area*float64(right.count)
			if !found || cost < best.cost {
				best = split{
					axis:     axis,
					boundary: boundary,
					cost:     cost,
					left:     left,
					right:    right,
					lower:    lower,
					extent:   extent,
				}
				found = true
			}
		}
	}

	return best, found
}

// partition sends faces whose centroid lies before the split boundary to the left.
// The comparison runs in bucket space so that each side gets exactly the faces
// counted for it while scoring.
func (b *BVH) partition(primitives []mesh.FaceHandle, s split, cache *faceCache) (left, right []mesh.FaceHandle) {
	left = make([]mesh.FaceHandle, 0, s.left.count)
	right = make([]mesh.FaceHandle, 0, s.right.count)

	for _, f := range primitives {
		centroid := cache.centroids.Get(f)[s.axis]
		if bucketIndex(centroid, s.lower, s.extent, b.options.BucketCount) < s.boundary {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}

	return left, right
}

func bucketIndex(coordinate, lower, extent float64, bucketCount int) int {
	index := int((coordinate - lower) / extent * float64(bucketCount))
	return max(0, min(index, bucketCount-1))
}
