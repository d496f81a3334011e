// Package meshpick resolves picking rays against a world of indexed meshes.
//
// Each Entity owns a mesh.Mesh and the bvh.BVH built over it. The World routes
// picks according to its InteractionMode: whole entities in ObjectMode, faces of
// the focused entity in EditMode and SculptMode. Focus and hovered face changes are
// reported through Events.
package meshpick

import (
	"errors"
	"fmt"

	"github.com/akmonengine/meshpick/log"
	"github.com/akmonengine/meshpick/mesh"
)

const DEFAULT_WORKERS = 1

var logger = log.New("meshpick")

type World struct {
	// List of all pickable entities, in insertion order
	Entities []*Entity
	// Optional broad phase of object picks, every entity is tested when nil
	SpatialGrid *SpatialGrid
	Workers     int

	Events Events

	mode    InteractionMode
	focused *Entity
	cache   *InteractionCache
}

// NewWorld creates an empty world in ObjectMode
func NewWorld() *World {
	return &World{
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// AddEntity adds an entity to the world
func (w *World) AddEntity(entity *Entity) {
	w.Entities = append(w.Entities, entity)
}

// AddEntities builds the entities concurrently with Workers goroutines and adds them
// in the order of descriptors. If any build fails, none is added and every error is
// returned.
func (w *World) AddEntities(descriptors []EntityDescriptor) ([]*Entity, error) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	type build struct {
		descriptor EntityDescriptor
		entity     *Entity
		err        error
	}

	builds := make([]*build, len(descriptors))
	for i, descriptor := range descriptors {
		builds[i] = &build{descriptor: descriptor}
	}

	task(w.Workers, builds, func(b *build) {
		b.entity, b.err = NewEntity(b.descriptor.Name, b.descriptor.Render, b.descriptor.Transform)
		if b.entity != nil {
			b.entity.Id = b.descriptor.Id
		}
	})

	var errs []error
	entities := make([]*Entity, 0, len(builds))
	for _, b := range builds {
		if b.err != nil {
			errs = append(errs, b.err)
			continue
		}
		entities = append(entities, b.entity)
		stats := b.entity.BVH.Stats()
		logger.Debugf("entity %q: %d faces, %d nodes in %v", b.entity.Name, stats.Faces, stats.Nodes, stats.Duration)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	w.Entities = append(w.Entities, entities...)
	return entities, nil
}

// RemoveEntity removes an entity from the world.
// Removing the focused entity blurs it and goes back to ObjectMode.
func (w *World) RemoveEntity(entity *Entity) {
	k := w.indexOf(entity)
	if k == -1 {
		return
	}

	w.Entities = append(w.Entities[:k], w.Entities[k+1:]...)

	if entity == w.focused {
		w.setFocus(nil)
	}
	w.Events.forget(entity)
	w.Events.dispatch()
}

// UpdateMesh replaces the mesh of entity with a full rebuild.
// Face handles of the previous mesh are no longer valid: the interaction cache is
// emptied and the hovered face, if on this entity, is exited.
func (w *World) UpdateMesh(entity *Entity, render mesh.RenderMesh) error {
	if w.indexOf(entity) == -1 {
		return fmt.Errorf("%w: %v", ErrUnknownEntity, entity)
	}
	if err := entity.SetMesh(render); err != nil {
		return err
	}

	if entity == w.focused {
		w.cache = nil
	}
	w.Events.forget(entity)
	w.Events.dispatch()

	return nil
}

func (w *World) indexOf(entity *Entity) int {
	for i, e := range w.Entities {
		if e == entity {
			return i
		}
	}
	return -1
}
