package meshpick

import (
	"fmt"

	"github.com/akmonengine/meshpick/bvh"
	"github.com/akmonengine/meshpick/geometry"
	"github.com/akmonengine/meshpick/mesh"
)

// Entity is a pickable mesh placed in the world.
// Mesh and BVH always describe the same snapshot: they are replaced together by SetMesh.
type Entity struct {
	// Id is free for the caller, e.g. to link the entity to its scene node
	Id        interface{}
	Name      string
	Transform geometry.Transform
	Mesh      *mesh.Mesh
	BVH       *bvh.BVH
}

// EntityDescriptor lists what is needed to build an Entity.
type EntityDescriptor struct {
	Id        interface{}
	Name      string
	Render    mesh.RenderMesh
	Transform geometry.Transform
}

// NewEntity indexes render and builds its hierarchy.
func NewEntity(name string, render mesh.RenderMesh, transform geometry.Transform) (*Entity, error) {
	m, b, err := index(render)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", name, err)
	}

	return &Entity{
		Name:      name,
		Transform: transform,
		Mesh:      m,
		BVH:       b,
	}, nil
}

func index(render mesh.RenderMesh) (*mesh.Mesh, *bvh.BVH, error) {
	m, err := mesh.New(render)
	if err != nil {
		return nil, nil, err
	}
	b, err := bvh.Build(m)
	if err != nil {
		return nil, nil, err
	}
	return m, b, nil
}

// SetMesh replaces the mesh with a full rebuild of the topology and the hierarchy.
// On error the entity keeps its current mesh.
func (e *Entity) SetMesh(render mesh.RenderMesh) error {
	m, b, err := index(render)
	if err != nil {
		return fmt.Errorf("entity %q: %w", e.Name, err)
	}

	e.Mesh = m
	e.BVH = b
	return nil
}

// WorldAABB returns a world box enclosing the transformed mesh.
func (e *Entity) WorldAABB() geometry.AABB {
	return e.Transform.ApplyAABB(e.BVH.AABB())
}

func (e *Entity) IntersectFast(ray geometry.Ray) (float64, bool) {
	return e.BVH.IntersectFast(ray, e.Transform)
}

func (e *Entity) IntersectPrecise(ray geometry.Ray) (bvh.Hit, bool) {
	return e.BVH.IntersectPrecise(ray, e.Transform, e.Mesh)
}

func (e *Entity) String() string {
	return e.Name
}
