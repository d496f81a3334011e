package main

import (
	"fmt"

	"github.com/akmonengine/meshpick"
	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/log"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/akmonengine/meshpick/tool"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a world with a floor, a cube and a sphere
func SetupScene() (*meshpick.World, error) {
	world := meshpick.NewWorld()
	world.Workers = 4
	world.SpatialGrid = meshpick.NewSpatialGrid(2.0, 1024)

	at := func(x, y, z float64) geometry.Transform {
		transform := geometry.NewTransform()
		transform.Position = mgl64.Vec3{x, y, z}
		return transform
	}

	_, err := world.AddEntities([]meshpick.EntityDescriptor{
		{Name: "floor", Render: mesh.Quad(20, 20), Transform: at(-10, -10, 0)},
		{Name: "cube", Render: mesh.Cuboid(mgl64.Vec3{2, 2, 2}), Transform: at(-3, 0, 1)},
		{Name: "sphere", Render: mesh.Icosphere(1.5, 4), Transform: at(3, 0, 1.5)},
	})
	return world, err
}

func subscribe(world *meshpick.World) {
	world.Events.Subscribe(meshpick.FOCUS, func(event meshpick.Event) {
		fmt.Printf("focus %v\n", event.(meshpick.FocusEvent).Entity)
	})
	world.Events.Subscribe(meshpick.BLUR, func(event meshpick.Event) {
		fmt.Printf("blur %v\n", event.(meshpick.BlurEvent).Entity)
	})
	world.Events.Subscribe(meshpick.FACE_ENTER, func(event meshpick.Event) {
		e := event.(meshpick.FaceEnterEvent)
		fmt.Printf("enter %v %v at %v\n", e.Entity, e.Face, e.Point)
	})
	world.Events.Subscribe(meshpick.FACE_EXIT, func(event meshpick.Event) {
		e := event.(meshpick.FaceExitEvent)
		fmt.Printf("exit %v %v\n", e.Entity, e.Face)
	})
}

func down(x, y float64) geometry.Ray {
	return geometry.NewRay(mgl64.Vec3{x, y, 10}, mgl64.Vec3{0, 0, -1}, geometry.DefaultRayMax)
}

func main() {
	log.SetLevel(log.Debug)

	world, err := SetupScene()
	if err != nil {
		fmt.Println(err)
		return
	}
	subscribe(world)

	// Object mode: focus the sphere
	if result, ok := world.Pick(down(3, 0)); ok {
		fmt.Printf("picked %v at %.3f\n", result.Entity, result.Distance)
	}

	if world.Focused() == nil {
		fmt.Println("nothing focused")
		return
	}

	// Edit mode: sweep the cursor over the faces of the sphere
	if err := world.SetMode(meshpick.EditMode); err != nil {
		fmt.Println(err)
		return
	}
	for x := 2.0; x <= 4.0; x += 0.5 {
		if result, ok := world.Pick(down(x, 0.2)); ok {
			fmt.Printf("face %v at %v\n", result.Face, result.Point)
		}
	}

	// Drag the translate gizmo of the focused entity along X
	camera := tool.Camera{Position: mgl64.Vec3{3, 0, 20}, Rotation: mgl64.QuatIdent()}
	ctx := &tool.Context{
		Camera:        camera,
		Target:        &world.Focused().Transform,
		PixelScale:    0.01,
		PlaneDistance: 5,
	}

	tools := tool.NewManager()
	if err := tools.Activate(tool.TranslateKind, ctx); err != nil {
		fmt.Println(err)
		return
	}

	origin := geometry.ProjectToPlane(camera.Position, camera.Forward(), ctx.Target.Position, ctx.PlaneDistance)
	grab := origin.Add(mgl64.Vec3{0.6, 0, 0})
	for frame := 0; frame < 5; frame++ {
		ctx.Input = tool.Input{
			Pressed:   true,
			HasCursor: true,
			Cursor:    mgl64.Vec2{100 + 10*float64(frame), 100},
			Ray:       geometry.NewRay(camera.Position, grab.Sub(camera.Position), geometry.DefaultRayMax),
		}
		tools.Update(ctx)
		fmt.Printf("frame %d: %v %v\n", frame, tools.Active().Gizmo().Active, world.Focused().Transform.Position)
	}

	// The sphere moved: the object broad phase follows it
	if err := world.SetMode(meshpick.ObjectMode); err != nil {
		fmt.Println(err)
		return
	}
	if result, ok := world.Pick(down(4.2, 0)); ok {
		fmt.Printf("picked %v at %.3f\n", result.Entity, result.Distance)
	}
}
