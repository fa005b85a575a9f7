package reactive

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// SourceID identifies a readable source: a cell or a memo's output.
type SourceID uint64

// CompID identifies a computation that reads sources.
type CompID uint64

// Invalidation is the result of a committed write: the computations that
// transitively depend on the written source, in ascending id order.
type Invalidation struct {
	Source     SourceID
	Comps      []CompID
	Generation uint64
}

// Empty reports whether the write invalidated nothing.
func (inv Invalidation) Empty() bool {
	return len(inv.Comps) == 0
}

// source is the graph-side bookkeeping of a cell or memo output.
type source struct {
	id    SourceID
	gen   atomic.Uint64
	dead  atomic.Bool
	scope *Scope

	// readers is protected by Graph.mu.
	readers map[CompID]struct{}
}

// computation is the graph-side bookkeeping of a tracked function.
type computation struct {
	id    CompID
	label string
	scope *Scope

	// Protected by Graph.mu.
	deps  map[SourceID]uint64
	epoch uint64

	// output and stale are set for memos. A memo is not scheduled; its
	// stale flag is raised and its readers are invalidated in turn.
	output *source
	stale  *atomic.Bool
}

// Graph owns every source and computation of a session.
type Graph struct {
	mu         sync.Mutex
	sources    swiss.Map[SourceID, *source]
	comps      swiss.Map[CompID, *computation]
	pending    map[CompID]struct{}
	nextSource SourceID
	nextComp   CompID
	epoch      uint64

	pendingCount atomic.Int64
	writeCount   atomic.Uint64
	notify       chan struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	g := &Graph{
		pending: make(map[CompID]struct{}),
		notify:  make(chan struct{}, 1),
	}
	// Choice of 64 is arbitrary.
	g.sources.Init(64)
	g.comps.Init(64)
	return g
}

// Notify returns a channel that receives a value whenever the pending set
// goes from empty to non-empty.
func (g *Graph) Notify() <-chan struct{} {
	return g.notify
}

// Pending reports whether any scheduled computation is waiting to run.
func (g *Graph) Pending() bool {
	return g.pendingCount.Load() > 0
}

// WriteCount returns the number of committed writes since the graph was
// created.
func (g *Graph) WriteCount() uint64 {
	return g.writeCount.Load()
}

// TakePending removes and returns every pending computation in ascending
// id order.
func (g *Graph) TakePending() []CompID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.pending) == 0 {
		return nil
	}
	out := make([]CompID, 0, len(g.pending))
	for id := range g.pending {
		out = append(out, id)
	}
	clear(g.pending)
	g.pendingCount.Store(0)
	slices.Sort(out)
	return out
}

// Invalidate schedules the given computations as if a source they read had
// changed.
func (g *Graph) Invalidate(ids ...CompID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		if c, ok := g.comps.Get(id); ok {
			g.scheduleLocked(c)
		}
	}
}

func (g *Graph) newSource(scope *Scope) *source {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextSource++
	s := &source{
		id:      g.nextSource,
		scope:   scope,
		readers: make(map[CompID]struct{}),
	}
	if scope != nil && scope.closed {
		s.dead.Store(true)
		return s
	}
	g.sources.Put(s.id, s)
	if scope != nil {
		scope.sources = append(scope.sources, s.id)
	}
	return s
}

// NewComputation registers a computation owned by scope (which may be nil
// for computations owned directly by the session).
func (g *Graph) NewComputation(scope *Scope, label string) CompID {
	return g.newComputation(scope, label, nil, nil).id
}

func (g *Graph) newComputation(scope *Scope, label string, output *source, stale *atomic.Bool) *computation {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextComp++
	c := &computation{
		id:     g.nextComp,
		label:  label,
		scope:  scope,
		deps:   make(map[SourceID]uint64),
		output: output,
		stale:  stale,
	}
	g.comps.Put(c.id, c)
	if scope != nil {
		scope.comps = append(scope.comps, c.id)
	}
	return c
}

// DropComputation unregisters a computation and every edge it installed.
// Dropping an unknown id is a no-op.
func (g *Graph) DropComputation(id CompID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dropLocked(id)
}

func (g *Graph) dropLocked(id CompID) {
	c, ok := g.comps.Get(id)
	if !ok {
		return
	}
	g.unlinkLocked(c)
	g.comps.Delete(id)
	if _, ok := g.pending[id]; ok {
		delete(g.pending, id)
		g.pendingCount.Store(int64(len(g.pending)))
	}
}

// unlinkLocked removes c from the reader sets of its current dependencies.
func (g *Graph) unlinkLocked(c *computation) {
	for sid := range c.deps {
		if s, ok := g.sources.Get(sid); ok {
			delete(s.readers, c.id)
		}
	}
	clear(c.deps)
}

// Label returns the label a computation was registered with.
func (g *Graph) Label(id CompID) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.comps.Get(id); ok {
		return c.label
	}
	return ""
}

// Dependents returns the computations currently reading source id, in
// ascending order.
func (g *Graph) Dependents(id SourceID) []CompID {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sources.Get(id)
	if !ok {
		return nil
	}
	out := make([]CompID, 0, len(s.readers))
	for c := range s.readers {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Dependencies returns the sources a computation read during its last
// committed run, in ascending order.
func (g *Graph) Dependencies(id CompID) []SourceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.comps.Get(id)
	if !ok {
		return nil
	}
	out := make([]SourceID, 0, len(c.deps))
	for s := range c.deps {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Stats reports the number of live sources and computations.
func (g *Graph) Stats() (sources, comps int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sources.Len(), g.comps.Len()
}

// Write serializes a mutation of source id.
//
// Phase 1 computes the dependent closure without touching any "already
// notified" bookkeeping. apply then publishes the new value and reports
// whether it changed. Phase 2 bumps the generation and merges the closure
// into the pending set.
//
// If apply panics the value may be partially written, so the closure is
// committed as if the value changed and the panic is re-raised.
func (g *Graph) Write(id SourceID, apply func() bool) (Invalidation, error) {
	g.mu.Lock()
	s, ok := g.sources.Get(id)
	g.mu.Unlock()
	if !ok {
		return Invalidation{}, errors.Wrapf(ErrUnknownSource, "write to source %d", id)
	}
	return g.write(s, apply)
}

func (g *Graph) write(s *source, apply func() bool) (Invalidation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s.dead.Load() {
		return Invalidation{}, errors.Wrapf(ErrScopeEnded, "write to source %d", s.id)
	}

	// Phase 1: closure
	closure := g.closureLocked(s)

	completed := false
	defer func() {
		if !completed {
			g.commitLocked(s, closure)
		}
	}()
	changed := apply()
	completed = true

	if !changed {
		return Invalidation{Source: s.id, Generation: s.gen.Load()}, nil
	}

	// Phase 2: commit
	return g.commitLocked(s, closure), nil
}

// closureLocked returns every computation transitively reading s.
func (g *Graph) closureLocked(s *source) []CompID {
	if len(s.readers) == 0 {
		return nil
	}
	g.epoch++
	epoch := g.epoch
	var out []CompID
	stack := []*source{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for cid := range cur.readers {
			c, ok := g.comps.Get(cid)
			if !ok || c.epoch == epoch {
				continue
			}
			c.epoch = epoch
			out = append(out, cid)
			if c.output != nil {
				stack = append(stack, c.output)
			}
		}
	}
	slices.Sort(out)
	return out
}

// commitLocked bumps the generation of s and schedules closure.
func (g *Graph) commitLocked(s *source, closure []CompID) Invalidation {
	gen := s.gen.Add(1)
	g.writeCount.Add(1)
	for _, cid := range closure {
		if c, ok := g.comps.Get(cid); ok {
			g.scheduleLocked(c)
		}
	}
	return Invalidation{Source: s.id, Comps: closure, Generation: gen}
}

// scheduleLocked marks c as needing to run. Memos are flagged stale
// instead of being queued.
func (g *Graph) scheduleLocked(c *computation) {
	if c.stale != nil {
		c.stale.Store(true)
		return
	}
	if _, ok := g.pending[c.id]; ok {
		return
	}
	wasEmpty := len(g.pending) == 0
	g.pending[c.id] = struct{}{}
	g.pendingCount.Store(int64(len(g.pending)))
	if wasEmpty {
		select {
		case g.notify <- struct{}{}:
		default:
		}
	}
}

// killLocked marks a source dead and invalidates its readers, which can no
// longer rely on it.
func (g *Graph) killLocked(id SourceID) {
	s, ok := g.sources.Get(id)
	if !ok || s.dead.Load() {
		return
	}
	closure := g.closureLocked(s)
	s.dead.Store(true)
	g.commitLocked(s, closure)
	for cid := range s.readers {
		if c, ok := g.comps.Get(cid); ok {
			delete(c.deps, id)
		}
	}
	clear(s.readers)
	g.sources.Delete(id)
}
