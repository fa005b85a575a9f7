// Package tree keeps the retained node tree behind a view function.
//
// A view describes its children as descriptors through Ui and NodeBuilder.
// Every Children closure is a reactive computation; when one is
// invalidated only the subtree it produced is described again, and the
// result is reconciled against the arena by (key, kind) among siblings.
// Nodes that match keep their identity, state and cached style; the rest
// are inserted or torn down.
//
// The tree is owned by a single goroutine.
package tree
