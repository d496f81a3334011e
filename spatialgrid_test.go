package meshpick

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"fractional", mgl64.Vec3{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16) // 16 cells, mask = 15

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0, 0}, 0},
		{"simple", CellKey{1, 2, 3}, 6},
		{"negative", CellKey{-1, -2, -3}, 10},
		{"large", CellKey{100, 200, 300}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			if result < 0 || result >= len(grid.cells) {
				t.Errorf("hashCell(%v) = %d, out of range [0, %d)", tt.key, result, len(grid.cells))
			}
			if result != tt.expected {
				t.Errorf("hashCell(%v) = %d, want %d", tt.key, result, tt.expected)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32}, {1024, 1024}, {1025, 2048},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.n); got != tt.expected {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.expected)
		}
	}
}

// cellsContaining counts the cells of box holding entityIndex
func cellsContaining(grid *SpatialGrid, box geometry.AABB, entityIndex int) (found, expected int) {
	minCell := grid.worldToCell(box.Min)
	maxCell := grid.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				expected++
				cellIdx := grid.hashCell(CellKey{x, y, z})
				if slices.Contains(grid.cells[cellIdx].entityIndices, entityIndex) {
					found++
				}
			}
		}
	}
	return found, expected
}

func TestInsertMultipleEntities(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	boxes := []geometry.AABB{
		geometry.NewAABB(mgl64.Vec3{1.0, 1.0, 1.0}, mgl64.Vec3{0.4, 0.4, 0.4}),
		geometry.NewAABB(mgl64.Vec3{2.0, 2.0, 2.0}, mgl64.Vec3{0.4, 0.4, 0.4}),
		geometry.NewAABB(mgl64.Vec3{3.0, 3.0, 3.0}, mgl64.Vec3{0.4, 0.4, 0.4}),
	}

	for i, box := range boxes {
		grid.Insert(i, box)
	}

	for i, box := range boxes {
		if found, expected := cellsContaining(grid, box, i); found != expected {
			t.Errorf("Entity %d found in %d of its %d cells", i, found, expected)
		}
	}

	expectedBounds := geometry.AABB{Min: mgl64.Vec3{0.6, 0.6, 0.6}, Max: mgl64.Vec3{3.4, 3.4, 3.4}}
	if !grid.bounds.Min.ApproxEqual(expectedBounds.Min) || !grid.bounds.Max.ApproxEqual(expectedBounds.Max) {
		t.Errorf("Expected bounds %v, got %v", expectedBounds, grid.bounds)
	}
}

func TestLargeEntitySpanningManyCells(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	box := geometry.NewAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{5.0, 5.0, 5.0})

	grid.Insert(0, box)

	if found, expected := cellsContaining(grid, box, 0); found != expected {
		t.Errorf("Expected entity in %d cells, found in %d cells", expected, found)
	}
}

func TestClear(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(0, geometry.NewAABB(mgl64.Vec3{1.0, 1.0, 1.0}, mgl64.Vec3{0.4, 0.4, 0.4}))
	grid.Insert(1, geometry.NewAABB(mgl64.Vec3{2.0, 2.0, 2.0}, mgl64.Vec3{0.4, 0.4, 0.4}))

	grid.Clear()

	for _, cell := range grid.cells {
		if len(cell.entityIndices) != 0 {
			t.Error("Cells should be empty after clear")
		}
	}
	if !grid.empty {
		t.Error("Bounds should be reset after clear")
	}

	ray := geometry.NewRay(mgl64.Vec3{1, 1, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax)
	if candidates := grid.QueryRay(ray); len(candidates) != 0 {
		t.Errorf("Expected no candidate after clear, got %v", candidates)
	}
}

func TestSortCells(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	entityIndices := []int{5, 2, 8, 1, 9, 3}
	cellIdx := 0
	grid.cells[cellIdx].entityIndices = append(grid.cells[cellIdx].entityIndices, entityIndices...)

	grid.SortCells()

	if !sort.IntsAreSorted(grid.cells[cellIdx].entityIndices) {
		t.Error("Cell indices should be sorted")
	}
	expected := []int{1, 2, 3, 5, 8, 9}
	if !slices.Equal(grid.cells[cellIdx].entityIndices, expected) {
		t.Errorf("Expected %v, got %v", expected, grid.cells[cellIdx].entityIndices)
	}
}

// ============================================================================
// Ray queries
// ============================================================================

func TestQueryRay(t *testing.T) {
	// Two unit boxes far enough apart to not share any slot of a 64 slots grid
	grid := NewSpatialGrid(1.0, 64)
	grid.Insert(0, geometry.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}})
	grid.Insert(1, geometry.AABB{Min: mgl64.Vec3{5, 0, 0}, Max: mgl64.Vec3{6, 1, 1}})
	grid.SortCells()

	tests := []struct {
		name     string
		ray      geometry.Ray
		expected []int
	}{
		{"Through both", geometry.NewRay(mgl64.Vec3{-5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, geometry.DefaultRayMax), []int{0, 1}},
		{"Backwards through both", geometry.NewRay(mgl64.Vec3{20, 0.5, 0.5}, mgl64.Vec3{-1, 0, 0}, geometry.DefaultRayMax), []int{0, 1}},
		{"Down on the second", geometry.NewRay(mgl64.Vec3{5.5, 0.5, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax), []int{1}},
		{"Too short to reach the second", geometry.NewRay(mgl64.Vec3{-5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, 7), []int{0}},
		{"Missing the bounds", geometry.NewRay(mgl64.Vec3{-5, 5, 0.5}, mgl64.Vec3{1, 0, 0}, geometry.DefaultRayMax), nil},
		{"Pointing away", geometry.NewRay(mgl64.Vec3{-5, 0.5, 0.5}, mgl64.Vec3{-1, 0, 0}, geometry.DefaultRayMax), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := grid.QueryRay(tt.ray)
			if !slices.Equal(candidates, tt.expected) && !(len(candidates) == 0 && len(tt.expected) == 0) {
				t.Errorf("Expected %v, got %v", tt.expected, candidates)
			}
		})
	}
}

func TestQueryRay_EmptyGrid(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	ray := geometry.NewRay(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax)

	if candidates := grid.QueryRay(ray); candidates != nil {
		t.Errorf("Expected no candidate, got %v", candidates)
	}
}

// Every box crossed by a ray must be returned, whatever the direction
func TestQueryRay_NoFalseNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grid := NewSpatialGrid(0.75, 256)

	boxes := make([]geometry.AABB, 40)
	for i := range boxes {
		center := mgl64.Vec3{rng.Float64()*20 - 10, rng.Float64()*20 - 10, rng.Float64()*20 - 10}
		half := mgl64.Vec3{rng.Float64()*1.5 + 0.05, rng.Float64()*1.5 + 0.05, rng.Float64()*1.5 + 0.05}
		boxes[i] = geometry.NewAABB(center, half)
		grid.Insert(i, boxes[i])
	}
	grid.SortCells()

	for i := range 500 {
		origin := mgl64.Vec3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		target := mgl64.Vec3{rng.Float64()*20 - 10, rng.Float64()*20 - 10, rng.Float64()*20 - 10}
		ray := geometry.NewRay(origin, target.Sub(origin), geometry.DefaultRayMax)

		candidates := grid.QueryRay(ray)
		if !sort.IntsAreSorted(candidates) {
			t.Fatalf("Ray %d: candidates not sorted: %v", i, candidates)
		}
		for index, box := range boxes {
			if _, hit := box.IntersectRay(ray); hit && !slices.Contains(candidates, index) {
				t.Fatalf("Ray %d crosses box %d but candidates are %v", i, index, candidates)
			}
		}
	}
}

func BenchmarkQueryRay(b *testing.B) {
	grid := NewSpatialGrid(1.0, 1024)

	for i := range 1000 {
		pos := mgl64.Vec3{
			float64(i%10) * 2.0,
			float64((i/10)%10) * 2.0,
			float64((i/100)%10) * 2.0,
		}
		grid.Insert(i, geometry.NewAABB(pos, mgl64.Vec3{0.4, 0.4, 0.4}))
	}
	grid.SortCells()

	ray := geometry.NewRay(mgl64.Vec3{-5, -5, -5}, mgl64.Vec3{1, 1, 1}, geometry.DefaultRayMax)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.QueryRay(ray)
	}
}
