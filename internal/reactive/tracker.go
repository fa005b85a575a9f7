package reactive

// Reader receives the sources observed by tracked reads. A nil Reader makes
// a read untracked.
type Reader interface {
	Observe(id SourceID, gen uint64)
}

// Tracker records the reads of one run of a computation. It is not safe for
// concurrent use; a run happens on a single goroutine.
type Tracker struct {
	g    *Graph
	comp CompID
	seen map[SourceID]uint64
	done bool
}

// Track starts a run of computation id.
func (g *Graph) Track(id CompID) *Tracker {
	return &Tracker{g: g, comp: id, seen: make(map[SourceID]uint64)}
}

// Bind points the tracker at computation id. A tracker started with
// Track(0) records reads before its computation is known and is bound
// once it is.
func (t *Tracker) Bind(id CompID) {
	t.comp = id
}

// Merge copies the reads recorded by o into t.
func (t *Tracker) Merge(o *Tracker) {
	for id, gen := range o.seen {
		t.Observe(id, gen)
	}
}

// Comp returns the computation this tracker records for.
func (t *Tracker) Comp() CompID {
	return t.comp
}

// Observe records that source id was read at generation gen. The oldest
// generation wins when a source is read more than once.
func (t *Tracker) Observe(id SourceID, gen uint64) {
	if t == nil || t.done {
		return
	}
	if prev, ok := t.seen[id]; ok && prev <= gen {
		return
	}
	t.seen[id] = gen
}

// Reads returns the number of distinct sources read so far.
func (t *Tracker) Reads() int {
	return len(t.seen)
}

// Commit replaces the computation's edge set with the reads of this run.
// It reports whether any read was already stale, in which case the
// computation has been scheduled again.
func (t *Tracker) Commit() (stale bool) {
	return t.commit(false)
}

// CommitUnion installs the reads of this run without dropping the edges of
// the previous run. It is used when a run failed and its output was thrown
// away: the computation must be woken by anything either run depended on.
func (t *Tracker) CommitUnion() (stale bool) {
	return t.commit(true)
}

func (t *Tracker) commit(union bool) bool {
	if t.done {
		return false
	}
	t.done = true

	g := t.g
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.comps.Get(t.comp)
	if !ok {
		// Dropped while running.
		return false
	}
	if !union {
		g.unlinkLocked(c)
	}

	stale := false
	for sid, gen := range t.seen {
		s, ok := g.sources.Get(sid)
		if !ok || s.dead.Load() {
			stale = true
			continue
		}
		s.readers[c.id] = struct{}{}
		if prev, ok := c.deps[sid]; !ok || gen < prev {
			c.deps[sid] = gen
		}
		if s.gen.Load() != gen {
			stale = true
		}
	}
	if stale {
		g.scheduleLocked(c)
	}
	return stale
}
