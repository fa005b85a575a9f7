package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a derived value. It is a computation over the sources its
// function reads and a source for whoever reads it. A memo is recomputed
// lazily on the first read after one of its inputs changed.
type Memo[T any] struct {
	g     *Graph
	comp  *computation
	out   *source
	stale atomic.Bool
	fn    func(r Reader) T
	equal func(a, b T) bool

	mu  sync.Mutex
	val atomic.Pointer[T]
}

// NewMemo creates a memo owned by scope. fn receives the Reader to pass to
// every read it wants tracked.
func NewMemo[T any](g *Graph, scope *Scope, label string, fn func(r Reader) T) *Memo[T] {
	m := &Memo[T]{g: g, fn: fn}
	m.out = g.newSource(scope)
	m.stale.Store(true)
	m.comp = g.newComputation(scope, label, m.out, &m.stale)
	return m
}

// NewMemoEq creates a memo that keeps its output generation unchanged when
// a recomputation yields an equal value.
func NewMemoEq[T comparable](g *Graph, scope *Scope, label string, fn func(r Reader) T) *Memo[T] {
	m := NewMemo(g, scope, label, fn)
	m.equal = func(a, b T) bool { return a == b }
	return m
}

// ID returns the memo's output source id.
func (m *Memo[T]) ID() SourceID {
	return m.out.id
}

// Comp returns the memo's computation id.
func (m *Memo[T]) Comp() CompID {
	return m.comp.id
}

// Stale reports whether the next read will recompute.
func (m *Memo[T]) Stale() bool {
	return m.stale.Load()
}

// Get returns the current value, recomputing if needed, without recording
// a dependency.
func (m *Memo[T]) Get() T {
	return m.Read(nil)
}

// Read returns the current value and records the memo's output with r.
func (m *Memo[T]) Read(r Reader) T {
	gen, v := m.current()
	if r != nil {
		r.Observe(m.out.id, gen)
	}
	return v
}

func (m *Memo[T]) current() (uint64, T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stale.Load() || m.val.Load() == nil {
		m.recomputeLocked()
	}
	return m.out.gen.Load(), *m.val.Load()
}

func (m *Memo[T]) recomputeLocked() {
	// Cleared before running so a write during fn marks it stale again.
	m.stale.Store(false)
	t := m.g.Track(m.comp.id)
	completed := false
	defer func() {
		if !completed {
			t.CommitUnion()
			m.stale.Store(true)
		}
	}()
	next := m.fn(t)
	completed = true
	t.Commit()

	prev := m.val.Load()
	if prev != nil && m.equal != nil && m.equal(*prev, next) {
		return
	}
	m.val.Store(&next)
	if prev != nil {
		m.g.bump(m.out)
	}
}

// bump advances a memo output's generation after a recomputation. Readers
// were already invalidated when the memo went stale.
func (g *Graph) bump(s *source) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.gen.Add(1)
}
