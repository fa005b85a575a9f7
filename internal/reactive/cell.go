package reactive

import (
	"sync/atomic"
)

// Cell is a typed reactive value. Reads are lock-free; writes go through the
// graph's serialization point.
type Cell[T any] struct {
	g     *Graph
	src   *source
	val   atomic.Pointer[T]
	equal func(a, b T) bool
}

// NewCell creates a cell owned by scope. A nil scope ties the cell to the
// lifetime of the graph.
func NewCell[T any](g *Graph, scope *Scope, v T) *Cell[T] {
	c := &Cell[T]{g: g, src: g.newSource(scope)}
	c.val.Store(&v)
	return c
}

// NewCellFunc is like NewCell but skips invalidation when equal reports the
// new value equal to the old one.
func NewCellFunc[T any](g *Graph, scope *Scope, v T, equal func(a, b T) bool) *Cell[T] {
	c := NewCell(g, scope, v)
	c.equal = equal
	return c
}

// NewCellEq is NewCellFunc with ==.
func NewCellEq[T comparable](g *Graph, scope *Scope, v T) *Cell[T] {
	return NewCellFunc(g, scope, v, func(a, b T) bool { return a == b })
}

// ID returns the cell's source id.
func (c *Cell[T]) ID() SourceID {
	return c.src.id
}

// Generation returns the number of committed writes to the cell.
func (c *Cell[T]) Generation() uint64 {
	return c.src.gen.Load()
}

// Alive reports whether the owning scope is still open.
func (c *Cell[T]) Alive() bool {
	return !c.src.dead.Load()
}

// Get returns the current value without recording a dependency.
func (c *Cell[T]) Get() T {
	return *c.val.Load()
}

// Read returns the current value and records it with r.
//
// The generation is loaded before the value. A write landing between the
// two loads leaves the recorded generation behind the cell's, which the
// tracker's commit detects.
func (c *Cell[T]) Read(r Reader) T {
	gen := c.src.gen.Load()
	v := *c.val.Load()
	if r != nil {
		r.Observe(c.src.id, gen)
	}
	return v
}

// Set stores v and invalidates every computation downstream of the cell.
func (c *Cell[T]) Set(v T) error {
	_, err := c.SetInvalidation(v)
	return err
}

// SetInvalidation is Set returning the computed invalidation set.
func (c *Cell[T]) SetInvalidation(v T) (Invalidation, error) {
	return c.g.write(c.src, func() bool {
		if c.equal != nil && c.equal(*c.val.Load(), v) {
			return false
		}
		c.val.Store(&v)
		return true
	})
}

// Update replaces the value with fn applied to the current one. If fn
// panics the value is left as it was, dependents are invalidated and the
// panic propagates.
func (c *Cell[T]) Update(fn func(T) T) error {
	_, err := c.g.write(c.src, func() bool {
		old := *c.val.Load()
		next := fn(old)
		if c.equal != nil && c.equal(old, next) {
			return false
		}
		c.val.Store(&next)
		return true
	})
	return err
}

// Mutate calls fn with a pointer to a shallow copy of the value and
// publishes the copy once fn returns. Reference types inside T are shared
// with the previous value, so fn must replace them rather than modify them
// in place.
func (c *Cell[T]) Mutate(fn func(*T)) error {
	_, err := c.g.write(c.src, func() bool {
		next := *c.val.Load()
		fn(&next)
		c.val.Store(&next)
		return true
	})
	return err
}
