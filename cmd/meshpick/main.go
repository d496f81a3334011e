package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	meshFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "primitive, p",
			Value: "icosphere",
			Usage: "generated mesh when no obj file is given: quad, cuboid, icosphere or cone",
		},
		cli.Float64Flag{
			Name:  "size, s",
			Value: 1.0,
			Usage: "size of the generated mesh",
		},
		cli.IntFlag{
			Name:  "resolution, r",
			Value: 3,
			Usage: "subdivisions of an icosphere, sides of a cone",
		},
	}

	app := cli.NewApp()
	app.Name = "meshpick"
	app.Usage = "index meshes and resolve picking rays against them"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringSliceFlag{
			Name:  "debug",
			Value: &cli.StringSlice{},
			Usage: "enable debug logging for a single module: bvh, meshpick or tool",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "stats",
			Usage: "build the BVH of a mesh and display its statistics",
			Description: `
Read a wavefront obj file, or generate a primitive when no file is given, index
it and build its bounding volume hierarchy.

The hierarchy can be checked against the mesh with --validate.`,
			ArgsUsage: "[mesh.obj]",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "validate",
					Usage: "check the structure of the hierarchy",
				},
			}, meshFlags...),
			Action: Stats,
		},
		{
			Name:  "pick",
			Usage: "cast a ray against a mesh",
			Description: `
Cast a ray against a mesh with both the fast and the precise tests and
display the hit of each one.`,
			ArgsUsage: "[mesh.obj]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "origin, o",
					Value: "0,0,10",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "direction, d",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
				cli.StringFlag{
					Name:  "position",
					Value: "0,0,0",
					Usage: "world position of the mesh as x,y,z",
				},
			}, meshFlags...),
			Action: Pick,
		},
	}

	app.Run(os.Args)
}
