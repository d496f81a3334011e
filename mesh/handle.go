package mesh

import (
	"fmt"
	"iter"
)

// Handle is implemented by the element identifiers of a Topology.
// Handles are dense, allocated in insertion order and never reused.
type Handle interface {
	~uint32
}

type (
	VertexHandle uint32
	EdgeHandle   uint32
	FaceHandle   uint32
)

func (h VertexHandle) String() string { return fmt.Sprintf("v%d", uint32(h)) }
func (h EdgeHandle) String() string { return fmt.Sprintf("e%d", uint32(h)) }
func (h FaceHandle) String() string { return fmt.Sprintf("f%d", uint32(h)) }

// DenseMap stores one value per handle in a slice indexed by the handle.
// Reading a handle that was never inserted is a programming error and panics.
type DenseMap[H Handle, V any] struct {
	values  []V
	present []bool
	count   int
}

// NewDenseMap creates a map with room for capacity handles.
func NewDenseMap[H Handle, V any](capacity int) DenseMap[H, V] {
	return DenseMap[H, V]{
		values:  make([]V, 0, capacity),
		present: make([]bool, 0, capacity),
	}
}

// Insert sets the value of handle, growing the map if needed.
func (m *DenseMap[H, V]) Insert(handle H, value V) {
	index := int(handle)
	if index >= len(m.values) {
		m.values = append(m.values, make([]V, index+1-len(m.values))...)
		m.present = append(m.present, make([]bool, index+1-len(m.present))...)
	}

	if !m.present[index] {
		m.present[index] = true
		m.count++
	}
	m.values[index] = value
}

// Get returns the value of handle and panics if there is none.
func (m *DenseMap[H, V]) Get(handle H) V {
	index := int(handle)
	if index >= len(m.values) || !m.present[index] {
		panic(fmt.Sprintf("mesh: no value for handle %d", index))
	}

	return m.values[index]
}

// Lookup returns the value of handle, if any.
func (m *DenseMap[H, V]) Lookup(handle H) (V, bool) {
	index := int(handle)
	if index >= len(m.values) || !m.present[index] {
		var zero V
		return zero, false
	}

	return m.values[index], true
}

// Contains reports whether handle has a value.
func (m *DenseMap[H, V]) Contains(handle H) bool {
	index := int(handle)
	return index < len(m.present) && m.present[index]
}

// Len returns the number of handles with a value.
func (m *DenseMap[H, V]) Len() int {
	return m.count
}

// All iterates over the stored values in handle order.
func (m *DenseMap[H, V]) All() iter.Seq2[H, V] {
	return func(yield func(H, V) bool) {
		for i, ok := range m.present {
			if !ok {
				continue
			}
			if !yield(H(i), m.values[i]) {
				return
			}
		}
	}
}
