package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quad returns a two-triangle rectangle spanning [0, width] x [0, height] in the XY
// plane, facing +Z.
func Quad(width, height float64) RenderMesh {
	w, h := float32(width), float32(height)

	return RenderMesh{
		Topology:  TriangleList,
		Positions: NewFloat32x3([3]float32{0, 0, 0}, [3]float32{w, 0, 0}, [3]float32{w, h, 0}, [3]float32{0, h, 0}),
		Normals:   NewFloat32x3([3]float32{0, 0, 1}, [3]float32{0, 0, 1}, [3]float32{0, 0, 1}, [3]float32{0, 0, 1}),
		Indices:   U16Indices{0, 1, 2, 0, 2, 3},
	}
}

// cuboidSides lists each side as its outward normal and two in-plane axes with
// u x v = normal.
var cuboidSides = [6][3]mgl64.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Cuboid returns a box of the given size centered on the origin. Each side has its
// own four vertices so normals stay flat.
func Cuboid(size mgl64.Vec3) RenderMesh {
	half := size.Mul(0.5)
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	positions := make([][3]float32, 0, 24)
	normals := make([][3]float32, 0, 24)
	indices := make(U16Indices, 0, 36)
	for _, side := range cuboidSides {
		normal, u, v := side[0], side[1], side[2]
		first := uint16(len(positions))
		for _, c := range corners {
			direction := normal.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			positions = append(positions, toFloat32x3(mgl64.Vec3{
				direction.X() * half.X(),
				direction.Y() * half.Y(),
				direction.Z() * half.Z(),
			}))
			normals = append(normals, toFloat32x3(normal))
		}
		indices = append(indices, first, first+1, first+2, first, first+2, first+3)
	}

	return RenderMesh{
		Topology:  TriangleList,
		Positions: NewFloat32x3(positions...),
		Normals:   NewFloat32x3(normals...),
		Indices:   indices,
	}
}

// Icosphere returns a sphere of the given radius centered on the origin, made by
// splitting every triangle of an icosahedron into four, subdivisions times.
// The result has 20 * 4^subdivisions faces.
func Icosphere(radius float64, subdivisions int) RenderMesh {
	phi := (1 + math.Sqrt(5)) / 2
	points := []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	for i := range points {
		points[i] = points[i].Normalize()
	}

	triangles := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for range subdivisions {
		midpoints := make(map[[2]uint32]uint32, len(triangles)*3/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if index, ok := midpoints[key]; ok {
				return index
			}
			points = append(points, points[a].Add(points[b]).Normalize())
			index := uint32(len(points) - 1)
			midpoints[key] = index
			return index
		}

		next := make([][3]uint32, 0, len(triangles)*4)
		for _, tri := range triangles {
			ab := midpoint(tri[0], tri[1])
			bc := midpoint(tri[1], tri[2])
			ca := midpoint(tri[2], tri[0])
			next = append(next,
				[3]uint32{tri[0], ab, ca},
				[3]uint32{tri[1], bc, ab},
				[3]uint32{tri[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		triangles = next
	}

	positions := make([][3]float32, len(points))
	normals := make([][3]float32, len(points))
	for i, p := range points {
		positions[i] = toFloat32x3(p.Mul(radius))
		normals[i] = toFloat32x3(p)
	}

	indices := make(U32Indices, 0, len(triangles)*3)
	for _, tri := range triangles {
		indices = append(indices, tri[0], tri[1], tri[2])
	}

	return RenderMesh{
		Topology:  TriangleList,
		Positions: NewFloat32x3(positions...),
		Normals:   NewFloat32x3(normals...),
		Indices:   indices,
	}
}

// Cone returns a cone standing on the XZ plane with its apex at (0, height, 0).
// The base is a fan around the origin. Vertices are duplicated per triangle and
// carry flat normals, so the result has no index buffer.
func Cone(radius, height float64, resolution int) RenderMesh {
	apex := mgl64.Vec3{0, height, 0}
	center := mgl64.Vec3{}

	rim := make([]mgl64.Vec3, resolution)
	for i := range rim {
		angle := 2 * math.Pi * float64(i) / float64(resolution)
		rim[i] = mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)}
	}

	positions := make([][3]float32, 0, resolution*6)
	normals := make([][3]float32, 0, resolution*6)
	addTriangle := func(a, b, c mgl64.Vec3) {
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() > 1e-12 {
			normal = normal.Normalize()
		}
		positions = append(positions, toFloat32x3(a), toFloat32x3(b), toFloat32x3(c))
		normals = append(normals, toFloat32x3(normal), toFloat32x3(normal), toFloat32x3(normal))
	}

	for i := range rim {
		current, next := rim[i], rim[(i+1)%resolution]
		addTriangle(next, current, apex)
		addTriangle(center, current, next)
	}

	return RenderMesh{
		Topology:  TriangleList,
		Positions: NewFloat32x3(positions...),
		Normals:   NewFloat32x3(normals...),
	}
}

func toFloat32x3(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
