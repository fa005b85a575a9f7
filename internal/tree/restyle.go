package tree

import (
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/style"
)

// RestyleStats counts the work of one Restyle.
type RestyleStats struct {
	Restyled      int
	Fallbacks     int
	MissingSheets int
	// Relayout counts restyled nodes whose box properties changed.
	Relayout int
}

type restyler struct {
	t      *Tree
	c      *style.Cascade
	chain  []style.Elem
	sheets [][]string
	st     RestyleStats
}

// Restyle resolves the style of every node marked for restyle. A node
// whose inherited properties changed takes its children along; a node
// whose box properties changed is marked for layout.
func (t *Tree) Restyle(c *style.Cascade) RestyleStats {
	if t.root == NoHandle || !t.NeedsRestyle() {
		return RestyleStats{}
	}
	r := restyler{t: t, c: c}
	r.visit(t.root, nil, false, false)
	return r.st
}

func (r *restyler) visit(h Handle, parent *style.Computed, force, subtree bool) {
	n := r.t.nodes[h]
	r.chain = append(r.chain, n.elem())
	r.sheets = append(r.sheets, n.attrs.Sheets)
	defer func() {
		r.chain = r.chain[:len(r.chain)-1]
		r.sheets = r.sheets[:len(r.sheets)-1]
	}()

	subtree = subtree || n.styleSubtree
	inherited := false
	if force || subtree || n.styleDirty || !n.styled {
		inherited = r.resolve(n, parent)
	}

	if subtree || inherited || n.childStyleDirty {
		for _, c := range n.children {
			r.visit(c, &n.computed, inherited, subtree)
		}
	}
	n.styleDirty = false
	n.styleSubtree = false
	n.childStyleDirty = false
}

// resolve restyles n and reports whether its inherited properties changed.
func (r *restyler) resolve(n *Node, parent *style.Computed) bool {
	res := r.c.Resolve(style.Input{
		Chain:  r.chain,
		Sheets: r.sheets,
		Inline: n.attrs.Inline,
		Parent: parent,
	})
	r.st.Restyled++
	r.st.Fallbacks += res.Fallbacks + n.attrs.BadDecls
	r.st.MissingSheets += res.MissingSheets

	computed := res.Computed
	if n.attrs.OnStyle != nil {
		r.onStyle(n, &computed)
	}

	change := style.ChangeInherited | style.ChangeLayout | style.ChangePaint
	if n.styled {
		change = style.Diff(n.computed, computed)
	}
	n.computed = computed
	n.styled = true

	if change&style.ChangeLayout != 0 {
		r.t.markLayout(n.h)
		r.st.Relayout++
	}
	return change&style.ChangeInherited != 0
}

// onStyle runs n's style callback as its own computation. A callback that
// panics leaves the cascade's result in place.
func (r *restyler) onStyle(n *Node, computed *style.Computed) {
	tr := r.t.g.Track(n.styleID)
	adjusted := *computed
	defer func() {
		if p := recover(); p != nil {
			tr.CommitUnion()
			r.st.Fallbacks++
			debug.Log("style callback for node %016x (%s) panicked: %v", uint64(n.id), n.kind, p)
		}
	}()
	n.attrs.OnStyle(tr, &adjusted)
	tr.Commit()
	*computed = adjusted
}
