package tree

import (
	"github.com/grindlemire/weft/internal/layout"
	"github.com/grindlemire/weft/internal/reactive"
	"github.com/grindlemire/weft/internal/style"
)

// Handle is the index of a node's arena slot. Slots are recycled, so a
// Handle is only meaningful while its node lives; NodeID is the stable
// name.
type Handle int32

// NoHandle is the parent of the root.
const NoHandle Handle = -1

// Node is a retained node in the arena.
type Node struct {
	t      *Tree
	h      Handle
	id     NodeID
	key    Key
	kind   string
	parent Handle
	depth  int

	children  []Handle
	lchildren []layout.Layoutable

	// attrs is the node's last descriptor with its children stripped.
	attrs   Desc
	build   func(*Ui)
	comp    reactive.CompID
	styleID reactive.CompID
	memory  *Memory
	cleanup func()

	pseudo   style.Pseudo
	computed style.Computed
	styled   bool
	box      layout.Layout

	needsRebuild      bool
	childNeedsRebuild bool
	styleDirty        bool
	styleSubtree      bool
	childStyleDirty   bool
	layoutDirty       bool
}

var _ layout.Layoutable = (*Node)(nil)

func (n *Node) ID() NodeID               { return n.id }
func (n *Node) Key() Key                 { return n.key }
func (n *Node) Kind() string             { return n.kind }
func (n *Node) Depth() int               { return n.depth }
func (n *Node) Text() string             { return n.attrs.Text }
func (n *Node) Role() string             { return n.attrs.Role }
func (n *Node) Label() string            { return n.attrs.Label }
func (n *Node) Focusable() bool          { return n.attrs.Focusable }
func (n *Node) Classes() []string        { return n.attrs.Classes }
func (n *Node) Pseudo() style.Pseudo     { return n.pseudo }
func (n *Node) Computed() style.Computed { return n.computed }
func (n *Node) Memory() *Memory          { return n.memory }
func (n *Node) Draw() DrawFunc           { return n.attrs.OnDraw }
func (n *Node) Box() layout.Layout       { return n.box }

// Parent returns the node's parent, nil for the root.
func (n *Node) Parent() *Node {
	if n.parent == NoHandle {
		return nil
	}
	return n.t.nodes[n.parent]
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i'th child.
func (n *Node) Child(i int) *Node {
	return n.t.nodes[n.children[i]]
}

func (n *Node) elem() style.Elem {
	return style.Elem{Kind: n.kind, Classes: n.attrs.Classes, Pseudo: n.pseudo}
}

// --- layout.Layoutable ---

func (n *Node) LayoutStyle() layout.Style {
	if !n.styled {
		return layout.DefaultStyle()
	}
	return n.computed.Layout
}

func (n *Node) LayoutChildren() []layout.Layoutable {
	if n.lchildren == nil && len(n.children) > 0 {
		n.lchildren = make([]layout.Layoutable, len(n.children))
		for i, h := range n.children {
			n.lchildren[i] = n.t.nodes[h]
		}
	}
	return n.lchildren
}

func (n *Node) SetLayout(l layout.Layout) { n.box = l }
func (n *Node) GetLayout() layout.Layout  { return n.box }
func (n *Node) IsDirty() bool             { return n.layoutDirty }
func (n *Node) SetDirty(d bool)           { n.layoutDirty = d }
func (n *Node) HasText() bool             { return n.attrs.Text != "" }

func (n *Node) IntrinsicSize(maxWidth float64) (layout.Size, bool) {
	if n.attrs.OnMeasure != nil {
		return n.attrs.OnMeasure(maxWidth)
	}
	if n.attrs.Text == "" {
		return layout.Size{}, false
	}
	s := n.LayoutStyle()
	return layout.MeasureText(n.attrs.Text, s.FontSize, s.LineHeight), true
}
