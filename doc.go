// Package weft is a retained UI engine driven by an immediate-mode style
// view function.
//
// Users import this single package for the complete public API: sessions
// and their frame loop, the node builder, reactive variables, style sheets
// and layout types.
//
// A view declares nodes from current state:
//
//	count := weft.NewVar(scope, 0)
//	view := func(ui *weft.Ui) {
//		ui.Node(weft.ID(), "button", func(n *weft.NodeBuilder) {
//			n.Class("primary").Text(fmt.Sprint(count.Read(ui)))
//			n.On("click", func(*weft.Event) { _ = count.Update(func(c int) int { return c + 1 }) })
//		})
//	}
//
// Every Children closure is tracked: when a variable it read changes, the
// session re-runs that closure alone, reconciles the result against the
// retained tree, and only restyles, lays out and repaints what changed.
// Frames are committed whole or not at all.
package weft
