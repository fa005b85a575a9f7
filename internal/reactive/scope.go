package reactive

// Scope owns cells, memos and computations. Closing a scope ends them all:
// later writes to its cells fail with ErrScopeEnded and computations that
// read them are invalidated.
type Scope struct {
	g        *Graph
	parent   *Scope
	children []*Scope

	// Protected by Graph.mu.
	sources []SourceID
	comps   []CompID
	closed  bool
}

// NewScope creates a root scope.
func (g *Graph) NewScope() *Scope {
	return &Scope{g: g}
}

// Graph returns the graph the scope belongs to.
func (s *Scope) Graph() *Graph {
	return s.g
}

// Child creates a scope that is closed together with s.
func (s *Scope) Child() *Scope {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	c := &Scope{g: s.g, parent: s}
	if s.closed {
		c.closed = true
		return c
	}
	s.children = append(s.children, c)
	return c
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	return s.closed
}

// Close ends the scope and all of its children. Closing twice is a no-op.
func (s *Scope) Close() {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	s.closeLocked()
	if p := s.parent; p != nil {
		for i, c := range p.children {
			if c == s {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
}

func (s *Scope) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	for _, c := range s.children {
		c.closeLocked()
	}
	s.children = nil
	for _, id := range s.comps {
		s.g.dropLocked(id)
	}
	for _, id := range s.sources {
		s.g.killLocked(id)
	}
	s.comps = nil
	s.sources = nil
}
