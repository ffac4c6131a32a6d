package world

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id is not registered.
var ErrNotFound = errors.New("object not found")

// Entity is anything that receives its id from a Registry.
type Entity interface {
	AssignID(id uint32)
}

// Registry issues ids on insertion and resolves them back to objects.
// Back references between objects are ids looked up here.
// A Registry belongs to one encounter and is not safe for concurrent use.
type Registry[T Entity] struct {
	ids     *IDGenerator
	objects map[uint32]T
	order   []uint32
}

// NewRegistry creates an empty registry with its own id generator.
func NewRegistry[T Entity]() *Registry[T] {
	return &Registry[T]{
		ids:     NewIDGenerator(),
		objects: make(map[uint32]T),
	}
}

// Insert assigns obj a fresh id from r and registers it.
func (r *Registry[T]) Insert(obj T, rng Range) uint32 {
	id := r.ids.Next(rng)
	obj.AssignID(id)
	r.objects[id] = obj
	r.order = append(r.order, id)
	return id
}

// Get returns the object registered under id.
func (r *Registry[T]) Get(id uint32) (T, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Lookup is Get returning ErrNotFound for unknown ids.
func (r *Registry[T]) Lookup(id uint32) (T, error) {
	obj, ok := r.objects[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("id %#x: %w", id, ErrNotFound)
	}
	return obj, nil
}

// InRange returns the objects of one range in insertion order.
func (r *Registry[T]) InRange(rng Range) []T {
	var out []T
	for _, id := range r.order {
		if got, ok := RangeOf(id); ok && got == rng {
			out = append(out, r.objects[id])
		}
	}
	return out
}
