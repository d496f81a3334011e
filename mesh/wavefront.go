package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidOBJ = errors.New("invalid wavefront obj")

type wavefrontReader struct {
	vertexList []mgl64.Vec3
	normalList []mgl64.Vec3

	positions [][3]float32
	normals   [][3]float32
}

// ReadOBJ reads the geometry of a Wavefront OBJ stream into a non-indexed triangle
// list. Only "v", "vn" and "f" records are interpreted; polygonal faces are
// fan-triangulated from their first corner and corners without a normal get the
// flat normal of their triangle. Other records are ignored.
func ReadOBJ(r io.Reader) (RenderMesh, error) {
	reader := &wavefrontReader{}
	if err := reader.parse(r); err != nil {
		return RenderMesh{}, err
	}

	return RenderMesh{
		Topology:  TriangleList,
		Positions: NewFloat32x3(reader.positions...),
		Normals:   NewFloat32x3(reader.normals...),
	}, nil
}

func (r *wavefrontReader) parse(in io.Reader) error {
	var lineNum int

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(lineNum, err)
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(lineNum, err)
			}
			r.normalList = append(r.normalList, v)
		case "f":
			if err := r.parseFace(lineTokens); err != nil {
				return emitError(lineNum, err)
			}
		}
	}

	return scanner.Err()
}

func emitError(line int, err error) error {
	return fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, line, err)
}

type faceCorner struct {
	position  mgl64.Vec3
	normal    mgl64.Vec3
	hasNormal bool
}

// Parse a face row with "v", "v/vt", "v//vn" or "v/vt/vn" arguments.
func (r *wavefrontReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	corners := make([]faceCorner, 0, len(lineTokens)-1)
	for arg, token := range lineTokens[1:] {
		indexTokens := strings.Split(token, "/")

		vIndex, err := selectFaceCoordIndex(indexTokens[0], len(r.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %w", arg, err)
		}
		corner := faceCorner{position: r.vertexList[vIndex]}

		if len(indexTokens) == 3 && indexTokens[2] != "" {
			nIndex, err := selectFaceCoordIndex(indexTokens[2], len(r.normalList))
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %w", arg, err)
			}
			corner.normal = r.normalList[nIndex]
			corner.hasNormal = true
		}

		corners = append(corners, corner)
	}

	for i := 2; i < len(corners); i++ {
		r.addTriangle(corners[0], corners[i-1], corners[i])
	}

	return nil
}

func (r *wavefrontReader) addTriangle(corners ...faceCorner) {
	flat := corners[1].position.Sub(corners[0].position).Cross(corners[2].position.Sub(corners[0].position))
	if flat.Len() > 1e-12 {
		flat = flat.Normalize()
	}

	for _, c := range corners {
		normal := c.normal
		if !c.hasNormal {
			normal = flat
		}
		r.positions = append(r.positions, toFloat32x3(c.position))
		r.normals = append(r.normals, toFloat32x3(normal))
	}
}

// Wavefront indices are 1-based, negative indices count back from the end of
// the list parsed so far.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	offset := int(index - 1)
	if index < 0 {
		offset = coordListLen + int(index)
	}
	if index == 0 || offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return offset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (mgl64.Vec3, error) {
	if len(lineTokens) < 4 {
		return mgl64.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := mgl64.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}
