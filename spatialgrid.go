package meshpick

import (
	"math"
	"sort"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - Entity indices stored in a hashed cell
type Cell struct {
	entityIndices []int
}

// SpatialGrid - Uniform hashed grid, used as the broad phase of object picking.
// Distinct cells may share a slot, so lookups can return false positives but never
// miss an entity whose box is crossed.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int

	// bounds of everything inserted since the last Clear
	bounds geometry.AABB
	empty  bool
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - Creates a grid of numCells slots, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].entityIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
		empty:    true,
	}
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - Stores the entity index in every cell its world box overlaps
func (sg *SpatialGrid) Insert(entityIndex int, aabb geometry.AABB) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellKey := CellKey{x, y, z}
				cellIdx := sg.hashCell(cellKey)

				sg.cells[cellIdx].entityIndices = append(
					sg.cells[cellIdx].entityIndices,
					entityIndex,
				)
			}
		}
	}

	if sg.empty {
		sg.bounds = aabb
		sg.empty = false
	} else {
		sg.bounds = sg.bounds.Merge(aabb)
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].entityIndices = sg.cells[i].entityIndices[:0]
	}
	sg.empty = true
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].entityIndices) > 1 {
			sort.Ints(sg.cells[i].entityIndices)
		}
	}
}

// QueryRay - Returns, in ascending order, the entity indices stored in the cells
// crossed by the ray within the inserted bounds.
//
// Cells are walked with a 3D digital differential analyzer (Amanatides & Woo,
// "A Fast Voxel Traversal Algorithm for Ray Tracing", 1987).
func (sg *SpatialGrid) QueryRay(ray geometry.Ray) []int {
	if sg.empty {
		return nil
	}
	tEnter, tExit, ok := sg.bounds.ClipRay(ray)
	if !ok {
		return nil
	}

	start := ray.At(tEnter)
	first := sg.worldToCell(start)
	last := sg.worldToCell(ray.At(tExit))

	cell := [3]int{first.X, first.Y, first.Z}
	var step [3]int
	var tMax, tDelta [3]float64
	for axis := range 3 {
		direction := ray.Direction[axis]
		switch {
		case direction > 0:
			step[axis] = 1
			boundary := float64(cell[axis]+1) * sg.cellSize
			tMax[axis] = tEnter + (boundary-start[axis])/direction
			tDelta[axis] = sg.cellSize / direction
		case direction < 0:
			step[axis] = -1
			boundary := float64(cell[axis]) * sg.cellSize
			tMax[axis] = tEnter + (boundary-start[axis])/direction
			tDelta[axis] = -sg.cellSize / direction
		default:
			tMax[axis] = math.Inf(1)
			tDelta[axis] = math.Inf(1)
		}
	}

	// One cell per unit step along each axis, plus slack for starts on a cell boundary
	steps := 3 + abs(last.X-first.X) + abs(last.Y-first.Y) + abs(last.Z-first.Z)

	seen := make(map[int]struct{})
	for range steps {
		cellIdx := sg.hashCell(CellKey{cell[0], cell[1], cell[2]})
		for _, entityIdx := range sg.cells[cellIdx].entityIndices {
			seen[entityIdx] = struct{}{}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		if tMax[axis] > tExit {
			break
		}
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}

	indices := make([]int, 0, len(seen))
	for entityIdx := range seen {
		indices = append(indices, entityIdx)
	}
	sort.Ints(indices)

	return indices
}

// worldToCell - Converts a world position into cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hashes a cell to a slot of the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
