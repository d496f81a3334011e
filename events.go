package meshpick

import (
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	FOCUS EventType = iota
	BLUR
	FACE_ENTER
	FACE_STAY
	FACE_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Focus events
type FocusEvent struct {
	Entity *Entity
}

func (e FocusEvent) Type() EventType { return FOCUS }

type BlurEvent struct {
	Entity *Entity
}

func (e BlurEvent) Type() EventType { return BLUR }

// Face events, only produced by precise picks in Edit and Sculpt modes
type FaceEnterEvent struct {
	Entity *Entity
	Face   mesh.FaceHandle
	Point  mgl64.Vec3
}

func (e FaceEnterEvent) Type() EventType { return FACE_ENTER }

type FaceStayEvent struct {
	Entity *Entity
	Face   mesh.FaceHandle
	Point  mgl64.Vec3
}

func (e FaceStayEvent) Type() EventType { return FACE_STAY }

// FaceExitEvent carries the handle of the face that was left. After a mesh update
// the handle refers to the previous mesh.
type FaceExitEvent struct {
	Entity *Entity
	Face   mesh.FaceHandle
}

func (e FaceExitEvent) Type() EventType { return FACE_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

type hoverKey struct {
	entity *Entity
	face   mesh.FaceHandle
}

type hover struct {
	key   hoverKey
	point mgl64.Vec3
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Hover tracking for Enter/Stay/Exit detection
	previousHover *hover
	currentHover  *hover
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emitFocus(entity *Entity) {
	e.buffer = append(e.buffer, FocusEvent{Entity: entity})
}

func (e *Events) emitBlur(entity *Entity) {
	e.buffer = append(e.buffer, BlurEvent{Entity: entity})
}

// recordHover is called by a precise pick that hit a face
func (e *Events) recordHover(entity *Entity, face mesh.FaceHandle, point mgl64.Vec3) {
	e.currentHover = &hover{key: hoverKey{entity: entity, face: face}, point: point}
}

// forget drops the tracked hover on entity, emitting its exit right away.
// Used when the entity is removed or its faces are renumbered by a rebuild.
func (e *Events) forget(entity *Entity) {
	if e.previousHover != nil && e.previousHover.key.entity == entity {
		e.buffer = append(e.buffer, FaceExitEvent{Entity: entity, Face: e.previousHover.key.face})
		e.previousHover = nil
	}
	if e.currentHover != nil && e.currentHover.key.entity == entity {
		e.currentHover = nil
	}
}

// processHoverEvents compares the current and previous hovered faces to detect Enter/Stay/Exit
func (e *Events) processHoverEvents() {
	previous, current := e.previousHover, e.currentHover

	if previous != nil && (current == nil || current.key != previous.key) {
		e.buffer = append(e.buffer, FaceExitEvent{
			Entity: previous.key.entity,
			Face:   previous.key.face,
		})
	}

	if current != nil {
		if previous != nil && current.key == previous.key {
			e.buffer = append(e.buffer, FaceStayEvent{
				Entity: current.key.entity,
				Face:   current.key.face,
				Point:  current.point,
			})
		} else {
			e.buffer = append(e.buffer, FaceEnterEvent{
				Entity: current.key.entity,
				Face:   current.key.face,
				Point:  current.point,
			})
		}
	}

	// Next pick starts without a hovered face
	e.previousHover, e.currentHover = current, nil
}

// flush closes a pick: hover changes are turned into events, then everything is dispatched
func (e *Events) flush() {
	e.processHoverEvents()
	e.dispatch()
}

// dispatch sends all buffered events and clears the buffer
func (e *Events) dispatch() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
