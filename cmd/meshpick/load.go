package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/urfave/cli"
)

// loadMesh reads the obj file given as first argument, or generates the primitive
// selected by the flags.
func loadMesh(ctx *cli.Context) (string, mesh.RenderMesh, error) {
	if ctx.NArg() > 0 {
		meshFile := ctx.Args().Get(0)
		if !strings.HasSuffix(meshFile, ".obj") {
			return "", mesh.RenderMesh{}, fmt.Errorf("unsupported file %s", meshFile)
		}

		f, err := os.Open(meshFile)
		if err != nil {
			return "", mesh.RenderMesh{}, err
		}
		defer f.Close()

		render, err := mesh.ReadOBJ(f)
		if err != nil {
			return "", mesh.RenderMesh{}, fmt.Errorf("%s: %w", meshFile, err)
		}
		logger.Infof("read %d triangles from %s", render.TriangleCount(), meshFile)
		return meshFile, render, nil
	}

	size := ctx.Float64("size")
	resolution := ctx.Int("resolution")
	primitive := ctx.String("primitive")

	var render mesh.RenderMesh
	switch primitive {
	case "quad":
		render = mesh.Quad(size, size)
	case "cuboid":
		render = mesh.Cuboid(mgl64.Vec3{size, size, size})
	case "icosphere":
		render = mesh.Icosphere(size, resolution)
	case "cone":
		render = mesh.Cone(size, size, resolution)
	default:
		return "", mesh.RenderMesh{}, fmt.Errorf("unknown primitive %q", primitive)
	}
	logger.Infof("generated %s with %d triangles", primitive, render.TriangleCount())
	return primitive, render, nil
}

// parseVec3 parses a "x,y,z" flag value.
func parseVec3(value string) (mgl64.Vec3, error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected x,y,z, got %q", value)
	}

	var v mgl64.Vec3
	for i, token := range tokens {
		c, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("expected x,y,z, got %q: %w", value, err)
		}
		v[i] = c
	}
	return v, nil
}
