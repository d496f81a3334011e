package tool

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ScaleSensitivity is the scale change per pixel of drag
	ScaleSensitivity = 0.02
	// MinScale is the smallest magnitude a drag leaves on a scale component.
	// Transforms divide by their scale.
	MinScale         = 1e-3
	scaleArrowLength = 85.0
)

// Scale changes the scale of the target along the axes of the handle being dragged.
// Plane and center handles scale their axes uniformly by the sum of the motion
// components.
type Scale struct {
	gizmo Gizmo
	drag  drag
}

func NewScale() *Scale {
	return &Scale{}
}

func (s *Scale) Startup(ctx *Context) {
	s.drag.reset()
	s.gizmo = Gizmo{}
}

func (s *Scale) Cleanup(ctx *Context) {
	s.drag.reset()
	s.gizmo.Visible = false
	s.gizmo.Active = ActionNone
}

func (s *Scale) Gizmo() Gizmo {
	return s.gizmo
}

func (s *Scale) Update(ctx *Context) {
	if ctx.Target == nil {
		s.gizmo.Visible = false
		return
	}
	s.gizmo.Visible = true
	// Scaling does not move the target
	s.gizmo.Origin = ctx.origin()

	if !ctx.Input.Pressed {
		s.drag.reset()
		s.gizmo.Active = ActionNone
		return
	}
	if !ctx.Input.HasCursor {
		return
	}

	if s.drag.action == ActionNone {
		handles := boxHandles(s.gizmo.Origin, ctx.PixelScale, scaleArrowLength)
		action := pickBoxHandle(ctx.Input.Ray, handles)
		if action == ActionNone {
			return
		}
		s.drag.action = action
		s.gizmo.Active = action
	}

	delta, ok := s.drag.step(ctx)
	if !ok {
		return
	}

	scales := screenMovement(ctx.Camera, delta).Mul(ScaleSensitivity)
	ctx.Target.Scale = clampScale(ctx.Target.Scale, ctx.Target.Scale.Add(scaleChange(s.drag.action, scales)))
}

// clampScale keeps every component of next at least MinScale away from zero, on
// the side of the current value.
func clampScale(current, next mgl64.Vec3) mgl64.Vec3 {
	for i := range 3 {
		if math.Abs(next[i]) < MinScale {
			next[i] = math.Copysign(MinScale, current[i])
		}
	}
	return next
}

func scaleChange(action Action, scales mgl64.Vec3) mgl64.Vec3 {
	switch action {
	case ActionXY:
		sum := scales.X() + scales.Y()
		return mgl64.Vec3{sum, sum, 0}
	case ActionXZ:
		sum := scales.X() + scales.Z()
		return mgl64.Vec3{sum, 0, sum}
	case ActionYZ:
		sum := scales.Y() + scales.Z()
		return mgl64.Vec3{0, sum, sum}
	case ActionXYZ:
		sum := scales.X() + scales.Y() + scales.Z()
		return mgl64.Vec3{sum, sum, sum}
	default:
		return action.mask(scales)
	}
}
