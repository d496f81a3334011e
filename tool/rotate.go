package tool

import (
	"github.com/akmonengine/meshpick/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// RotateSensitivity is the angle in radians turned per pixel of drag
	RotateSensitivity = 0.01

	ringRadius       = 80.0
	cameraRingRadius = 90.0
	ringThickness    = 3.0
)

// Rotate turns the target around the world axis of the ring being dragged, or around
// the view axis for the outer camera-facing ring. The ring under the cursor is
// tracked every frame for highlighting.
type Rotate struct {
	gizmo Gizmo
	drag  drag
	rings []ringHandle
}

func NewRotate() *Rotate {
	return &Rotate{}
}

func (r *Rotate) Startup(ctx *Context) {
	r.drag.reset()
	r.gizmo = Gizmo{}
	r.rings = nil
}

func (r *Rotate) Cleanup(ctx *Context) {
	r.drag.reset()
	r.gizmo.Visible = false
	r.gizmo.Active = ActionNone
	r.gizmo.Hovered = ActionNone
}

func (r *Rotate) Gizmo() Gizmo {
	return r.gizmo
}

// Rings returns the tori of the last update, for drawing.
func (r *Rotate) Rings() []*geometry.Torus {
	tori := make([]*geometry.Torus, 0, len(r.rings))
	for _, ring := range r.rings {
		tori = append(tori, ring.torus)
	}
	return tori
}

// rotationRings builds the X, Y and Z rings and the camera ring around origin.
// A torus lies in the XZ plane, each ring is turned so that its axis is the one it
// rotates around.
func rotationRings(origin mgl64.Vec3, camera Camera, pixelScale float64) []ringHandle {
	up := mgl64.Vec3{0, 1, 0}
	radius := ringRadius * pixelScale
	thickness := ringThickness * pixelScale

	return []ringHandle{
		{geometry.NewTorus(radius, thickness, origin, mgl64.QuatIdent()), ActionY},
		{geometry.NewTorus(radius, thickness, origin, mgl64.QuatBetweenVectors(up, mgl64.Vec3{1, 0, 0})), ActionX},
		{geometry.NewTorus(radius, thickness, origin, mgl64.QuatBetweenVectors(up, mgl64.Vec3{0, 0, 1})), ActionZ},
		{geometry.NewTorus(cameraRingRadius*pixelScale, thickness, origin, mgl64.QuatBetweenVectors(up, camera.Back())), ActionCameraFront},
	}
}

func (r *Rotate) Update(ctx *Context) {
	if ctx.Target == nil {
		r.gizmo.Visible = false
		r.rings = nil
		return
	}
	r.gizmo.Visible = true
	r.gizmo.Origin = ctx.origin()
	r.rings = rotationRings(r.gizmo.Origin, ctx.Camera, ctx.PixelScale)

	r.gizmo.Hovered = ActionNone
	if ctx.Input.HasCursor {
		r.gizmo.Hovered = pickRingHandle(ctx.Input.Ray, r.rings)
	}

	if !ctx.Input.Pressed {
		r.drag.reset()
		r.gizmo.Active = ActionNone
		return
	}
	if !ctx.Input.HasCursor {
		return
	}

	if r.drag.action == ActionNone {
		if r.gizmo.Hovered == ActionNone {
			return
		}
		r.drag.action = r.gizmo.Hovered
		r.gizmo.Active = r.gizmo.Hovered
	}

	delta, ok := r.drag.step(ctx)
	if !ok {
		return
	}

	angle := (delta.X() + delta.Y()) * RotateSensitivity
	rotation := mgl64.QuatRotate(angle, rotationAxis(r.drag.action, ctx.Camera))
	ctx.Target.Rotation = rotation.Mul(ctx.Target.Rotation).Normalize()
}

func rotationAxis(action Action, camera Camera) mgl64.Vec3 {
	switch action {
	case ActionX:
		return mgl64.Vec3{1, 0, 0}
	case ActionY:
		return mgl64.Vec3{0, 1, 0}
	case ActionZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return camera.Back()
	}
}
