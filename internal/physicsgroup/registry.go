// Package physicsgroup hands out the ids that separate galaxies into independent
// rotation domains.
package physicsgroup

import "sync/atomic"

// Undefined is the id of a planet that belongs to no group yet.
const Undefined = 0

// Registry issues strictly increasing ids starting at 1. Ids are never reused.
type Registry struct {
	last atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Next() int {
	return int(r.last.Add(1))
}

// Reset makes the next id 1 again. Only tests should call it.
func (r *Registry) Reset() {
	r.last.Store(0)
}

var defaultRegistry = NewRegistry()

// Next returns a fresh id from the process-wide registry.
func Next() int {
	return defaultRegistry.Next()
}

// Reset rewinds the process-wide registry.
func Reset() {
	defaultRegistry.Reset()
}
