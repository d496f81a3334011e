// Package tool implements the transform gizmos of the editor: translate, scale and
// rotate. Each gizmo is a Tool driven frame by frame through Update; a Manager keeps
// at most one tool active and runs the Startup/Cleanup transitions when switching.
//
// Gizmo handles are hit with the picking ray of the cursor: boxes for translate and
// scale, tori for rotate. Handle sizes are given in pixels and converted with
// Context.PixelScale so that gizmos keep a constant size on screen.
package tool

import (
	"errors"
	"fmt"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies a registered tool.
type Kind uint8

const (
	None Kind = iota
	TranslateKind
	ScaleKind
	RotateKind
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case TranslateKind:
		return "translate"
	case ScaleKind:
		return "scale"
	case RotateKind:
		return "rotate"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var ErrUnknownTool = errors.New("unknown tool")

var logger = log.New("tool")

// Camera is the viewpoint the gizmos are drawn for.
// With an identity rotation it looks down -Z with +Y up.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func (c Camera) Forward() mgl64.Vec3 { return c.Rotation.Rotate(mgl64.Vec3{0, 0, -1}) }
func (c Camera) Back() mgl64.Vec3 { return c.Rotation.Rotate(mgl64.Vec3{0, 0, 1}) }
func (c Camera) Right() mgl64.Vec3 { return c.Rotation.Rotate(mgl64.Vec3{1, 0, 0}) }
func (c Camera) Up() mgl64.Vec3 { return c.Rotation.Rotate(mgl64.Vec3{0, 1, 0}) }

// Input is the pointer state of one frame.
type Input struct {
	// Pressed reports whether the primary button is held
	Pressed bool
	// HasCursor is false when the cursor is outside the viewport; Cursor and Ray are
	// meaningless then
	HasCursor bool
	// Cursor is in pixels, Y pointing down
	Cursor mgl64.Vec2
	// Ray is the picking ray under the cursor
	Ray geometry.Ray
}

// Context is everything a tool reads and writes during a frame.
type Context struct {
	Camera Camera
	Input  Input
	// Target is the transform of the focused entity, nil when nothing is focused
	Target *geometry.Transform
	// PixelScale converts a size in pixels to world units at PlaneDistance
	PixelScale float64
	// PlaneDistance is the distance from the camera at which gizmos are drawn
	PlaneDistance float64
}

// origin returns where the gizmo of the target is drawn: the target projected on
// the gizmo plane.
func (ctx *Context) origin() mgl64.Vec3 {
	return geometry.ProjectToPlane(ctx.Camera.Position, ctx.Camera.Forward(), ctx.Target.Position, ctx.PlaneDistance)
}

// dragDelta returns the cursor motion since previous with Y pointing up
func (ctx *Context) dragDelta(previous mgl64.Vec2) mgl64.Vec2 {
	delta := ctx.Input.Cursor.Sub(previous)
	return mgl64.Vec2{delta.X(), -delta.Y()}
}

// Gizmo is the drawable state of a tool after Update.
type Gizmo struct {
	Visible bool
	Origin  mgl64.Vec3
	// Active is the handle being dragged
	Active Action
	// Hovered is the handle under the cursor, only tracked by tools that highlight
	Hovered Action
}

// Tool is a gizmo driven by the Manager.
type Tool interface {
	// Startup runs when the tool becomes active
	Startup(ctx *Context)
	// Update runs every frame while the tool is active
	Update(ctx *Context)
	// Cleanup runs when another tool replaces this one
	Cleanup(ctx *Context)
	Gizmo() Gizmo
}

// Manager keeps the registered tools and the active one.
type Manager struct {
	tools  map[Kind]Tool
	active Kind
}

// NewManager creates a manager with the translate, scale and rotate tools registered
// and no active tool.
func NewManager() *Manager {
	m := &Manager{tools: make(map[Kind]Tool)}
	m.Register(TranslateKind, NewTranslate())
	m.Register(ScaleKind, NewScale())
	m.Register(RotateKind, NewRotate())
	return m
}

// Register adds or replaces the tool for kind. Replacing the active tool does not
// run its transitions.
func (m *Manager) Register(kind Kind, tool Tool) {
	if m.tools == nil {
		m.tools = make(map[Kind]Tool)
	}
	m.tools[kind] = tool
}

// Activate switches to the tool of kind: the current tool is cleaned up, then the new
// one started. Activating the active tool does nothing, None deactivates.
func (m *Manager) Activate(kind Kind, ctx *Context) error {
	if kind == m.active {
		return nil
	}
	next, ok := m.tools[kind]
	if kind != None && !ok {
		return fmt.Errorf("%w: %v", ErrUnknownTool, kind)
	}

	if current := m.Active(); current != nil {
		current.Cleanup(ctx)
	}
	logger.Debugf("tool %v -> %v", m.active, kind)
	m.active = kind

	if next != nil {
		next.Startup(ctx)
	}
	return nil
}

// ActiveKind returns the kind of the active tool, None if no tool is active.
func (m *Manager) ActiveKind() Kind {
	return m.active
}

// Active returns the active tool, nil if no tool is active.
func (m *Manager) Active() Tool {
	if m.active == None {
		return nil
	}
	return m.tools[m.active]
}

// Tool returns the tool registered for kind.
func (m *Manager) Tool(kind Kind) (Tool, bool) {
	tool, ok := m.tools[kind]
	return tool, ok
}

// Update runs the active tool for one frame.
func (m *Manager) Update(ctx *Context) {
	if tool := m.Active(); tool != nil {
		tool.Update(ctx)
	}
}
