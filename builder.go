package weft

import "github.com/grindlemire/weft/internal/tree"

// Key identifies a node among its siblings.
type Key = tree.Key

// NodeID identifies a node in the whole tree: the keys on its path from the
// root. It is stable across rebuilds and runs.
type NodeID = tree.NodeID

// Ui declares the children of one node. It is the Reader for variables read
// while declaring them.
type Ui = tree.Ui

// NodeBuilder sets the attributes of a declared node.
type NodeBuilder = tree.NodeBuilder

// Component is a reusable piece of view, mounted with Ui.Mount.
type Component = tree.Component

// Mounter is implemented by components that need setup when they enter the
// tree. The function Mount returns, if not nil, runs when they leave it.
type Mounter = tree.Mounter

// Kinder lets a component name the kind of the node it is mounted as.
type Kinder = tree.Kinder

// Memory is the state a node keeps across rebuilds.
type Memory = tree.Memory

// MeasureFunc reports the intrinsic content size of a node.
type MeasureFunc = tree.MeasureFunc

// DrawFunc paints custom content for a node.
type DrawFunc = tree.DrawFunc

// StyleFunc adjusts a node's resolved style from reactive state.
type StyleFunc = tree.StyleFunc

// RootID is the NodeID of the implicit root every view builds under.
var RootID = tree.RootID

// ID derives a key from the caller's call site, mixed with disambiguators.
// Separate calls get separate keys, even on one line. Calls inside a loop
// share a call site and need a disambiguator, usually the item's index or
// id:
//
//	for i, item := range items {
//		ui.Text(weft.ID(uint64(i)), item.Name)
//	}
func ID(disambiguators ...uint64) Key {
	return tree.ID(1, disambiguators...)
}

// KeyOf derives a key from a name.
func KeyOf(name string, disambiguators ...uint64) Key {
	return tree.KeyOf(name, disambiguators...)
}

// Path returns the NodeID of the node reached from the root by keys.
func Path(keys ...Key) NodeID {
	return tree.Path(keys...)
}

// NodeState returns a pointer to a value the node keeps across rebuilds,
// created with init the first time.
func NodeState[T any](n *NodeBuilder, key string, init func() T) *T {
	return tree.State(n.Memory(), key, init)
}
