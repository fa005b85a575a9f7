package weft

import (
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/tree"
)

// Focus event types, delivered to the node gaining or losing focus.
const (
	EventFocus = "focus"
	EventBlur  = "blur"
)

// Focused returns the node holding focus. Focus is lost when the focused
// node leaves the tree, and a node later inserted at the same path does not
// get it back.
func (s *Session) Focused() (NodeID, bool) {
	if _, ok := s.tree.Lookup(s.focused); !ok {
		s.focused = 0
		return 0, false
	}
	return s.focused, true
}

// Focus moves focus to node id, which must be focusable and not disabled.
// The previous holder gets a blur event and loses PseudoFocus; id gets a
// focus event and gains it.
func (s *Session) Focus(id NodeID) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	n, ok := s.tree.Lookup(id)
	if !ok {
		return ErrUnknownNode
	}
	if !canFocus(n) {
		debug.Log("session %s: node %016x (%s) is not focusable", s.id, uint64(id), n.Kind())
		return nil
	}
	return s.moveFocus(id)
}

// Blur clears focus.
func (s *Session) Blur() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return s.moveFocus(0)
}

// FocusNext moves focus to the next focusable node in tree order,
// wrapping around. With nothing focused it focuses the first.
func (s *Session) FocusNext() error {
	return s.cycleFocus(1)
}

// FocusPrev moves focus to the previous focusable node in tree order,
// wrapping around. With nothing focused it focuses the last.
func (s *Session) FocusPrev() error {
	return s.cycleFocus(-1)
}

func (s *Session) cycleFocus(step int) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	var order []NodeID
	s.tree.Visit(func(n *tree.Node) bool {
		if n.Computed().Layout.Display == DisplayNone {
			return false
		}
		if canFocus(n) {
			order = append(order, n.ID())
		}
		return true
	}, nil)
	if len(order) == 0 {
		return nil
	}

	cur := -1
	if id, ok := s.Focused(); ok {
		for i, o := range order {
			if o == id {
				cur = i
				break
			}
		}
	}
	var next int
	switch {
	case cur == -1 && step > 0:
		next = 0
	case cur == -1:
		next = len(order) - 1
	default:
		next = (cur + step + len(order)) % len(order)
	}
	return s.moveFocus(order[next])
}

func (s *Session) moveFocus(id NodeID) error {
	prev, had := s.Focused()
	if had && prev == id {
		return nil
	}
	s.focused = id
	if had {
		if _, err := s.tree.SetPseudo(prev, PseudoFocus, false); err != nil {
			return err
		}
		if _, err := s.tree.Dispatch(prev, &Event{Type: EventBlur}); err != nil {
			return err
		}
	}
	s.invalid.Store(true)
	if id == 0 {
		return nil
	}
	if _, err := s.tree.SetPseudo(id, PseudoFocus, true); err != nil {
		return err
	}
	_, err := s.tree.Dispatch(id, &Event{Type: EventFocus})
	return err
}

func canFocus(n *tree.Node) bool {
	return n.Focusable() && n.Pseudo()&PseudoDisabled == 0
}
