package tree

import "github.com/cockroachdb/errors"

// Event is an input delivered to a node and bubbled towards the root.
type Event struct {
	Type string

	// Target is the node the event was dispatched to. Current is the node
	// whose handler is running.
	Target  NodeID
	Current NodeID

	X, Y float64
	Data any

	stopped bool
}

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Handler handles one event.
type Handler func(e *Event)

// Dispatch delivers ev to the node id and then to each ancestor until a
// handler stops it. It reports whether any handler ran.
func (t *Tree) Dispatch(id NodeID, ev *Event) (bool, error) {
	h, ok := t.index.Get(id)
	if !ok {
		return false, errors.Wrapf(ErrUnknownNode, "dispatch %q to %016x", ev.Type, uint64(id))
	}
	ev.Target = id
	handled := false
	for h != NoHandle {
		n := t.nodes[h]
		if fn, ok := n.attrs.Handlers[ev.Type]; ok {
			ev.Current = n.id
			fn(ev)
			handled = true
			if ev.stopped {
				break
			}
		}
		h = n.parent
	}
	return handled, nil
}

// HitTest returns the deepest node whose box contains (x, y). Later
// siblings are on top of earlier ones.
func (t *Tree) HitTest(x, y float64) (NodeID, bool) {
	if t.root == NoHandle {
		return 0, false
	}
	root := t.nodes[t.root]
	if !root.box.Rect.Contains(x, y) {
		return 0, false
	}
	return t.hit(root, x, y).id, true
}

func (t *Tree) hit(n *Node, x, y float64) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		c := t.nodes[n.children[i]]
		if c.box.Rect.Contains(x, y) {
			return t.hit(c, x, y)
		}
	}
	return n
}
