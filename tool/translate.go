package tool

const (
	// TranslateSensitivity is the world distance moved per pixel of drag
	TranslateSensitivity = 0.03
	translateArrowLength = 90.0
)

// Translate moves the target along the axis or plane of the handle being dragged.
type Translate struct {
	gizmo Gizmo
	drag  drag
}

func NewTranslate() *Translate {
	return &Translate{}
}

func (t *Translate) Startup(ctx *Context) {
	t.drag.reset()
	t.gizmo = Gizmo{}
}

func (t *Translate) Cleanup(ctx *Context) {
	t.drag.reset()
	t.gizmo.Visible = false
	t.gizmo.Active = ActionNone
}

func (t *Translate) Gizmo() Gizmo {
	return t.gizmo
}

// Update picks a handle when the button is pressed, then moves the target by the
// cursor motion projected on the camera plane and masked by the handle.
func (t *Translate) Update(ctx *Context) {
	if ctx.Target == nil {
		t.gizmo.Visible = false
		return
	}
	t.gizmo.Visible = true
	t.gizmo.Origin = ctx.origin()

	if !ctx.Input.Pressed {
		t.drag.reset()
		t.gizmo.Active = ActionNone
		return
	}
	if !ctx.Input.HasCursor {
		return
	}

	if t.drag.action == ActionNone {
		handles := boxHandles(t.gizmo.Origin, ctx.PixelScale, translateArrowLength)
		action := pickBoxHandle(ctx.Input.Ray, handles)
		if action == ActionNone {
			return
		}
		t.drag.action = action
		t.gizmo.Active = action
	}

	delta, ok := t.drag.step(ctx)
	if !ok {
		return
	}

	moves := screenMovement(ctx.Camera, delta).Mul(TranslateSensitivity)
	ctx.Target.Position = ctx.Target.Position.Add(t.drag.action.mask(moves))
	t.gizmo.Origin = ctx.origin()
}
