package tool

import (
	"fmt"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Action is the handle of a gizmo, i.e. the constraint applied while dragging it.
type Action uint8

const (
	ActionNone Action = iota
	ActionX
	ActionY
	ActionZ
	ActionXY
	ActionXZ
	ActionYZ
	ActionXYZ
	ActionCameraFront
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionX:
		return "x"
	case ActionY:
		return "y"
	case ActionZ:
		return "z"
	case ActionXY:
		return "xy"
	case ActionXZ:
		return "xz"
	case ActionYZ:
		return "yz"
	case ActionXYZ:
		return "xyz"
	case ActionCameraFront:
		return "camera front"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// mask keeps the components of v constrained by the action
func (a Action) mask(v mgl64.Vec3) mgl64.Vec3 {
	switch a {
	case ActionX:
		return mgl64.Vec3{v.X(), 0, 0}
	case ActionY:
		return mgl64.Vec3{0, v.Y(), 0}
	case ActionZ:
		return mgl64.Vec3{0, 0, v.Z()}
	case ActionXY:
		return mgl64.Vec3{v.X(), v.Y(), 0}
	case ActionXZ:
		return mgl64.Vec3{v.X(), 0, v.Z()}
	case ActionYZ:
		return mgl64.Vec3{0, v.Y(), v.Z()}
	case ActionXYZ:
		return v
	default:
		return mgl64.Vec3{}
	}
}

// Handle sizes in pixels, shared by the translate and scale gizmos
const (
	handleWidth      = 15.0
	handlePlaneSize  = 15.0
	handlePlaneShift = 25.0
	// handlePlaneThickness is in world units
	handlePlaneThickness = 0.05
)

type boxHandle struct {
	box    geometry.AABB
	action Action
}

// boxHandles lays out the axis arrows, the plane squares and the center cube of a
// translate or scale gizmo. arrowLength is in pixels.
func boxHandles(origin mgl64.Vec3, pixelScale, arrowLength float64) []boxHandle {
	halfWidth := handleWidth * pixelScale * 0.5
	halfHeight := arrowLength * pixelScale * 0.5
	planeCenter := handlePlaneShift * pixelScale
	halfPlaneSize := handlePlaneSize * pixelScale * 0.5

	return []boxHandle{
		{geometry.NewAABB(origin.Add(mgl64.Vec3{halfHeight, 0, 0}), mgl64.Vec3{halfHeight, halfWidth, halfWidth}), ActionX},
		{geometry.NewAABB(origin.Add(mgl64.Vec3{0, halfHeight, 0}), mgl64.Vec3{halfWidth, halfHeight, halfWidth}), ActionY},
		{geometry.NewAABB(origin.Add(mgl64.Vec3{0, 0, halfHeight}), mgl64.Vec3{halfWidth, halfWidth, halfHeight}), ActionZ},
		{geometry.NewAABB(origin.Add(mgl64.Vec3{planeCenter, planeCenter, 0}), mgl64.Vec3{halfPlaneSize, halfPlaneSize, handlePlaneThickness}), ActionXY},
		{geometry.NewAABB(origin.Add(mgl64.Vec3{planeCenter, 0, planeCenter}), mgl64.Vec3{halfPlaneSize, handlePlaneThickness, halfPlaneSize}), ActionXZ},
		{geometry.NewAABB(origin.Add(mgl64.Vec3{0, planeCenter, planeCenter}), mgl64.Vec3{handlePlaneThickness, halfPlaneSize, halfPlaneSize}), ActionYZ},
		{geometry.NewAABB(origin, mgl64.Vec3{halfWidth, halfWidth, halfWidth}), ActionXYZ},
	}
}

// pickBoxHandle returns the handle entered first by the ray.
// Ties keep the first handle of the list.
func pickBoxHandle(ray geometry.Ray, handles []boxHandle) Action {
	closest := ActionNone
	closestT := ray.Max
	for _, h := range handles {
		t, ok := h.box.IntersectRay(ray)
		if ok && (closest == ActionNone || t < closestT) {
			closest = h.action
			closestT = t
		}
	}
	return closest
}

type ringHandle struct {
	torus  *geometry.Torus
	action Action
}

// pickRingHandle returns the ring hit first by the ray.
func pickRingHandle(ray geometry.Ray, rings []ringHandle) Action {
	closest := ActionNone
	closestT := ray.Max
	for _, r := range rings {
		// Skip the quartic when the bound is missed
		if _, ok := r.torus.AABB().IntersectRay(ray); !ok {
			continue
		}
		t, ok := r.torus.IntersectRay(ray)
		if ok && (closest == ActionNone || t < closestT) {
			closest = r.action
			closestT = t
		}
	}
	return closest
}

// drag tracks the cursor while a handle is held
type drag struct {
	action      Action
	previous    mgl64.Vec2
	hasPrevious bool
}

func (d *drag) reset() {
	*d = drag{}
}

// step returns the cursor motion since the previous frame, Y up. The first frame of a
// drag only records the cursor and reports false.
func (d *drag) step(ctx *Context) (mgl64.Vec2, bool) {
	if !d.hasPrevious {
		d.previous = ctx.Input.Cursor
		d.hasPrevious = true
		return mgl64.Vec2{}, false
	}

	delta := ctx.dragDelta(d.previous)
	d.previous = ctx.Input.Cursor
	return delta, true
}

// screenMovement converts a cursor motion into a world motion in the camera plane
func screenMovement(camera Camera, delta mgl64.Vec2) mgl64.Vec3 {
	return camera.Right().Mul(delta.X()).Add(camera.Up().Mul(delta.Y()))
}
