package meshpick

import (
	"errors"
	"fmt"

	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// InteractionMode selects how a pick is resolved.
type InteractionMode uint8

const (
	// ObjectMode picks whole entities with the fast test and focuses the closest
	ObjectMode InteractionMode = iota
	// EditMode picks faces of the focused entity with the precise test
	EditMode
	// SculptMode picks like EditMode, for brushes
	SculptMode
)

var (
	ErrNoFocusedEntity = errors.New("no focused entity")
	ErrUnknownEntity   = errors.New("entity is not in the world")
	ErrInvalidMode     = errors.New("invalid interaction mode")
)

func (m InteractionMode) String() string {
	switch m {
	case ObjectMode:
		return "object"
	case EditMode:
		return "edit"
	case SculptMode:
		return "sculpt"
	default:
		return fmt.Sprintf("InteractionMode(%d)", uint8(m))
	}
}

// InteractionCache keeps the last face hit by a precise pick.
type InteractionCache struct {
	Face  mesh.FaceHandle
	Point mgl64.Vec3
}

// PickResult describes a successful pick.
// Face and Point are only set by precise picks.
type PickResult struct {
	Entity   *Entity
	Distance float64
	Face     mesh.FaceHandle
	Point    mgl64.Vec3
	Precise  bool
}

type entityHit struct {
	index    int
	distance float64
	hit      bool
}

// Pick resolves a world ray according to the current mode, then dispatches the events.
//
// In ObjectMode every candidate entity is tested with the fast test and the closest
// one gets the focus; a miss keeps the current focus. In EditMode and SculptMode only
// the focused entity is tested with the precise test and the interaction cache is
// replaced by the result, or emptied on a miss.
func (w *World) Pick(ray geometry.Ray) (PickResult, bool) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	var result PickResult
	var ok bool
	if w.mode == ObjectMode {
		result, ok = w.pickObject(ray)
	} else {
		result, ok = w.pickFace(ray)
	}

	w.Events.flush()
	return result, ok
}

func (w *World) pickObject(ray geometry.Ray) (PickResult, bool) {
	candidates := w.broadPhase(ray)

	hits := make([]*entityHit, len(candidates))
	for i, index := range candidates {
		hits[i] = &entityHit{index: index}
	}
	task(w.Workers, hits, func(h *entityHit) {
		h.distance, h.hit = w.Entities[h.index].IntersectFast(ray)
	})

	// Candidates are sorted, so ties go to the first entity added
	var closest *entityHit
	for _, h := range hits {
		if h.hit && (closest == nil || h.distance < closest.distance) {
			closest = h
		}
	}
	if closest == nil {
		return PickResult{}, false
	}

	entity := w.Entities[closest.index]
	w.setFocus(entity)

	return PickResult{Entity: entity, Distance: closest.distance}, true
}

func (w *World) pickFace(ray geometry.Ray) (PickResult, bool) {
	entity := w.focused
	hit, ok := entity.IntersectPrecise(ray)
	if !ok {
		w.cache = nil
		return PickResult{}, false
	}

	point := ray.At(hit.Distance)
	w.cache = &InteractionCache{Face: hit.Face, Point: point}
	w.Events.recordHover(entity, hit.Face, point)

	return PickResult{
		Entity:   entity,
		Distance: hit.Distance,
		Face:     hit.Face,
		Point:    point,
		Precise:  true,
	}, true
}

// broadPhase returns the indices of the entities the ray may hit, in ascending order
func (w *World) broadPhase(ray geometry.Ray) []int {
	if w.SpatialGrid == nil {
		candidates := make([]int, len(w.Entities))
		for i := range w.Entities {
			candidates[i] = i
		}
		return candidates
	}

	// Transforms may have changed since the last pick
	w.SpatialGrid.Clear()
	for i, entity := range w.Entities {
		w.SpatialGrid.Insert(i, entity.WorldAABB())
	}
	w.SpatialGrid.SortCells()

	return w.SpatialGrid.QueryRay(ray)
}

// Mode returns the current interaction mode.
func (w *World) Mode() InteractionMode {
	return w.mode
}

// SetMode switches the interaction mode. EditMode and SculptMode need a focused entity.
// Leaving a mode empties the interaction cache.
func (w *World) SetMode(mode InteractionMode) error {
	switch mode {
	case ObjectMode:
	case EditMode, SculptMode:
		if w.focused == nil {
			return fmt.Errorf("%w: cannot enter %v mode", ErrNoFocusedEntity, mode)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
	}

	if mode != w.mode {
		logger.Debugf("interaction mode %v -> %v", w.mode, mode)
		w.cache = nil
		if w.focused != nil {
			w.Events.forget(w.focused)
		}
	}
	w.mode = mode
	w.Events.dispatch()

	return nil
}

// Focused returns the focused entity, or nil.
func (w *World) Focused() *Entity {
	return w.focused
}

// Focus gives the focus to entity, which must belong to the world.
// A nil entity removes the focus and goes back to ObjectMode.
func (w *World) Focus(entity *Entity) error {
	if entity != nil && w.indexOf(entity) == -1 {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, entity)
	}

	w.setFocus(entity)
	w.Events.dispatch()
	return nil
}

func (w *World) setFocus(entity *Entity) {
	if entity == w.focused {
		return
	}

	if w.focused != nil {
		w.Events.forget(w.focused)
		w.Events.emitBlur(w.focused)
	}
	w.focused = entity
	w.cache = nil

	if entity == nil {
		w.mode = ObjectMode
		return
	}
	w.Events.emitFocus(entity)
}

// InteractionCache returns the face hit by the last precise pick, if any.
func (w *World) InteractionCache() (InteractionCache, bool) {
	if w.cache == nil {
		return InteractionCache{}, false
	}
	return *w.cache, true
}
