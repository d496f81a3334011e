package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/akmonengine/meshpick"
	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Pick casts a ray against a mesh with the fast and the precise tests.
func Pick(ctx *cli.Context) {
	setupLogging(ctx)

	name, render, err := loadMesh(ctx)
	if err != nil {
		logger.Errorf("error: %s", err.Error())
		os.Exit(1)
	}

	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		logger.Errorf("error: origin: %s", err.Error())
		os.Exit(1)
	}
	direction, err := parseVec3(ctx.String("direction"))
	if err != nil {
		logger.Errorf("error: direction: %s", err.Error())
		os.Exit(1)
	}
	if direction.Len() == 0 {
		logger.Errorf("error: direction must not be zero")
		os.Exit(1)
	}
	position, err := parseVec3(ctx.String("position"))
	if err != nil {
		logger.Errorf("error: position: %s", err.Error())
		os.Exit(1)
	}

	transform := geometry.NewTransform()
	transform.Position = position
	entity, err := meshpick.NewEntity(name, render, transform)
	if err != nil {
		logger.Errorf("error: %s", err.Error())
		os.Exit(1)
	}

	ray := geometry.NewRay(origin, direction, geometry.DefaultRayMax)
	logger.Noticef("ray %v -> %v against %s\n%s", origin, direction, name, formatHits(entity, ray))
}

func formatHits(entity *meshpick.Entity, ray geometry.Ray) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Test", "Distance", "Point", "Face", "Normal", "Neighbors"})

	if t, ok := entity.IntersectFast(ray); ok {
		table.Append([]string{"Fast", fmt.Sprintf("%.6f", t), fmt.Sprintf("%v", ray.At(t)), "-", "-", "-"})
	} else {
		table.Append([]string{"Fast", "miss", "-", "-", "-", "-"})
	}

	if hit, ok := entity.IntersectPrecise(ray); ok {
		table.Append([]string{
			"Precise",
			fmt.Sprintf("%.6f", hit.Distance),
			fmt.Sprintf("%v", ray.At(hit.Distance)),
			hit.Face.String(),
			fmt.Sprintf("%v", worldNormal(entity, hit.Face)),
			fmt.Sprintf("%v", entity.Mesh.Topology.FaceNeighbors(hit.Face)),
		})
	} else {
		table.Append([]string{"Precise", "miss", "-", "-", "-", "-"})
	}

	table.Render()
	return buf.String()
}

// worldNormal returns the normal of a face once placed in the world. Rotating the
// local normal is wrong under a non-uniform scale.
func worldNormal(entity *meshpick.Entity, f mesh.FaceHandle) mgl64.Vec3 {
	positions := entity.Mesh.FacePositions(f)
	triangle := geometry.NewTriangle(
		entity.Transform.Apply(positions[0]),
		entity.Transform.Apply(positions[1]),
		entity.Transform.Apply(positions[2]),
	)
	return triangle.Normal()
}
