package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/akmonengine/meshpick/bvh"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Stats builds the hierarchy of a mesh and displays its statistics.
func Stats(ctx *cli.Context) {
	setupLogging(ctx)

	name, render, err := loadMesh(ctx)
	if err != nil {
		logger.Errorf("error: %s", err.Error())
		os.Exit(1)
	}

	m, err := mesh.New(render)
	if err != nil {
		logger.Errorf("error: %s", err.Error())
		os.Exit(1)
	}

	b, err := bvh.Build(m)
	if err != nil {
		logger.Errorf("error: %s", err.Error())
		os.Exit(1)
	}

	if ctx.Bool("validate") {
		if err := b.Validate(m); err != nil {
			logger.Errorf("error: %s", err.Error())
			os.Exit(1)
		}
		logger.Notice("hierarchy is valid")
	}

	logger.Noticef("%s statistics\n%s", name, formatStats(m, b))
}

func formatStats(m *mesh.Mesh, b *bvh.BVH) string {
	stats := b.Stats()
	options := b.Options()
	box := b.AABB()
	topology := summarizeTopology(m.Topology)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Property", "Value"})
	table.Append([]string{"Mesh", "Vertices", fmt.Sprintf("%d", m.NumVertices())})
	table.Append([]string{"", "Edges", fmt.Sprintf("%d", m.Topology.NumEdges())})
	table.Append([]string{"", "Faces", fmt.Sprintf("%d", m.NumFaces())})
	table.Append([]string{"", "Boundary edges", fmt.Sprintf("%d", topology.boundaryEdges)})
	table.Append([]string{"", "Non-manifold edges", fmt.Sprintf("%d", topology.nonManifoldEdges)})
	table.Append([]string{"", "Max valence", fmt.Sprintf("%d", topology.maxValence)})
	table.Append([]string{"", "Bounds", fmt.Sprintf("%v - %v", box.Min, box.Max)})
	table.Append([]string{"", "Center", fmt.Sprintf("%v", box.Center())})
	table.Append([]string{"", "Half size", fmt.Sprintf("%v", box.HalfSize())})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "Nodes", fmt.Sprintf("%d", stats.Nodes)})
	table.Append([]string{"", "Leaves", fmt.Sprintf("%d", len(b.Leaves()))})
	table.Append([]string{"", "Oversized leaves", fmt.Sprintf("%d", stats.OversizedLeaves)})
	table.Append([]string{"", "Largest leaf", fmt.Sprintf("%d", stats.LargestLeaf)})
	table.Append([]string{"", "Max depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Options", "Max leaf primitives", fmt.Sprintf("%d", options.MaxLeafPrimitives)})
	table.Append([]string{"", "Buckets", fmt.Sprintf("%d", options.BucketCount)})
	table.SetFooter([]string{"Build time", " ", stats.Duration.String()})

	table.Render()
	return buf.String()
}

type topologySummary struct {
	boundaryEdges    int
	nonManifoldEdges int
	maxValence       int
}

func summarizeTopology(t *mesh.Topology) topologySummary {
	var summary topologySummary
	for e := range t.NumEdges() {
		edge := mesh.EdgeHandle(e)
		if t.IsBoundaryEdge(edge) {
			summary.boundaryEdges++
		}
		if !t.IsManifoldEdge(edge) {
			summary.nonManifoldEdges++
		}
	}
	for _, v := range t.VertexHandles() {
		summary.maxValence = max(summary.maxValence, t.VertexDegree(v))
	}
	return summary
}
