package weft

import (
	"time"

	"github.com/grindlemire/weft/internal/tree"
)

// Event is an input delivered to a node and bubbled towards the root.
type Event = tree.Event

// Handler handles one event.
type Handler = tree.Handler

// Common event types. Any string works; handlers are matched by type.
const (
	EventClick       = "click"
	EventPointerDown = "pointerdown"
	EventPointerUp   = "pointerup"
	EventPointerMove = "pointermove"
	EventKey         = "key"
	EventScroll      = "scroll"
)

// Dispatch delivers ev to node id and bubbles it to the root. Handlers run
// synchronously; the writes they make show in the next frame. It reports
// whether any handler ran.
func (s *Session) Dispatch(id NodeID, ev *Event) (bool, error) {
	if s.closed.Load() {
		return false, ErrSessionClosed
	}
	return s.tree.Dispatch(id, ev)
}

// DispatchAt delivers ev to the deepest node under (x, y) in the last
// committed layout. It reports false when no node is there.
func (s *Session) DispatchAt(x, y float64, ev *Event) (bool, error) {
	if s.closed.Load() {
		return false, ErrSessionClosed
	}
	id, ok := s.tree.HitTest(x, y)
	if !ok {
		return false, nil
	}
	ev.X, ev.Y = x, y
	return s.tree.Dispatch(id, ev)
}

// PointerMove moves the hover state to the deepest node under (x, y) and
// its ancestors. Nodes the pointer left lose it.
func (s *Session) PointerMove(x, y float64) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	id, ok := s.tree.HitTest(x, y)
	if !ok {
		id = 0
	}
	if id == s.hovered {
		return nil
	}
	next := make(map[NodeID]struct{})
	for n, found := s.tree.Lookup(id); found && n != nil; n = n.Parent() {
		next[n.ID()] = struct{}{}
	}
	for n, found := s.tree.Lookup(s.hovered); found && n != nil; n = n.Parent() {
		if _, still := next[n.ID()]; !still {
			if _, err := s.tree.SetPseudo(n.ID(), PseudoHover, false); err != nil {
				return err
			}
		}
	}
	for nid := range next {
		if _, err := s.tree.SetPseudo(nid, PseudoHover, true); err != nil {
			return err
		}
	}
	s.hovered = id
	s.invalid.Store(true)
	return nil
}

// Animate runs every animation frame handler once. Run calls it on each
// refresh tick while handlers are registered; platforms driving frames
// themselves call it from their vsync. Handlers that write nothing leave
// the session idle. It returns the number of handlers run.
func (s *Session) Animate(now time.Time) int {
	if s.closed.Load() {
		return 0
	}
	var n int
	s.runUpdate(func() {
		n = s.tree.AnimationFrame(now)
	})
	return n
}

// Animating reports whether any node has an animation frame handler.
func (s *Session) Animating() bool {
	return !s.closed.Load() && s.tree.Animating()
}
