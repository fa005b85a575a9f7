package tree

import "slices"

// Diff summarises what a Build changed.
type Diff struct {
	Inserted []NodeID
	Removed  []NodeID
	Mutated  []NodeID
	Moved    []NodeID

	// Rebuilt counts the nodes described again: the rebuilt roots and every
	// node under them.
	Rebuilt int
}

// Empty reports whether the build changed nothing.
func (d Diff) Empty() bool {
	return len(d.Inserted) == 0 && len(d.Removed) == 0 && len(d.Mutated) == 0 && len(d.Moved) == 0
}

type built struct {
	h  Handle
	ui *Ui
}

// Build re-runs the children closures of the shallowest nodes marked for
// rebuild and reconciles the results into the arena. Every closure runs
// before the arena is touched: if one fails, nothing is applied, the marks
// stay, and the error is returned.
func (t *Tree) Build() (Diff, error) {
	var d Diff
	if t.root == NoHandle || !t.NeedsRebuild() {
		return d, nil
	}

	var roots, path []Handle
	t.collect(t.root, &roots, &path)

	results := make([]built, 0, len(roots))
	for _, h := range roots {
		ui, err := t.describe(h)
		if err != nil {
			// Stay subscribed to everything the failed run got to, so a
			// write that fixes it brings the rebuild back.
			ui.all.Bind(t.nodes[h].comp)
			ui.all.CommitUnion()
			return Diff{}, err
		}
		results = append(results, built{h: h, ui: ui})
	}

	for _, r := range results {
		n := t.nodes[r.h]
		n.needsRebuild = false
		n.childNeedsRebuild = false
		r.ui.reads.Bind(n.comp)
		r.ui.reads.Commit()
		d.Rebuilt++
		t.reconcile(r.h, r.ui.descs, &d)
	}
	for _, h := range path {
		t.nodes[h].childNeedsRebuild = false
	}
	return d, nil
}

// collect gathers the shallowest nodes marked for rebuild, and the
// ancestors passed on the way to them.
func (t *Tree) collect(h Handle, roots, path *[]Handle) {
	n := t.nodes[h]
	if n.needsRebuild {
		*roots = append(*roots, h)
		return
	}
	if !n.childNeedsRebuild {
		return
	}
	*path = append(*path, h)
	for _, c := range n.children {
		t.collect(c, roots, path)
	}
}

// describe runs node h's children closure, and transitively the closures
// of what it declares, into descriptors.
func (t *Tree) describe(h Handle) (ui *Ui, err error) {
	n := t.nodes[h]
	ui = t.newUi(n.id, t.g.Track(0))
	defer func() {
		if r := recover(); r != nil {
			err = panicked(r)
		}
	}()
	if n.build != nil {
		n.build(ui)
	}
	return ui, ui.err
}

// reconcile matches descs against the children of parent by (key, kind).
func (t *Tree) reconcile(parent Handle, descs []*Desc, d *Diff) {
	p := t.nodes[parent]
	old := p.children

	byKey := make(map[Key]int, len(old))
	for i, h := range old {
		byKey[t.nodes[h].key] = i
	}

	// match[j] is the old position matched by descs[j], or -1.
	match := make([]int, len(descs))
	used := make([]bool, len(old))
	for j, desc := range descs {
		match[j] = -1
		if i, ok := byKey[desc.Key]; ok && t.nodes[old[i]].kind == desc.Kind {
			match[j] = i
			used[i] = true
		}
	}

	// Tear down first so a replaced node's identity is free for its
	// replacement.
	for i, h := range old {
		if !used[i] {
			t.remove(h, d)
		}
	}

	next := make([]Handle, len(descs))
	var matched []int
	for j, desc := range descs {
		if i := match[j]; i >= 0 {
			next[j] = old[i]
			matched = append(matched, i)
			t.update(old[i], desc, d)
			continue
		}
		next[j] = t.insert(parent, desc, d)
	}

	if len(matched) > 1 {
		keep := lis(matched)
		for j, i := range matched {
			if !keep[j] {
				d.Moved = append(d.Moved, t.nodes[old[i]].id)
			}
		}
	}

	// The parent may have been handed a recycled slice; old is done with.
	if !slices.Equal(old, next) {
		p.children = append(p.children[:0], next...)
		p.lchildren = nil
		t.markLayout(parent)
	}
}

// insert creates a node, and its subtree, for desc under parent.
func (t *Tree) insert(parent Handle, desc *Desc, d *Diff) Handle {
	h := t.alloc()
	p := t.nodes[parent]
	n := t.nodes[h]
	n.id = childID(p.id, desc.Key)
	n.key = desc.Key
	n.kind = desc.Kind
	n.parent = parent
	n.depth = p.depth + 1
	n.memory = desc.memory
	if n.memory == nil {
		n.memory = &Memory{}
	}
	t.index.Put(n.id, h)

	t.setAttrs(n, desc)
	if desc.OnMount != nil {
		t.mounts = append(t.mounts, n.id)
	}
	t.markStyle(h, false)
	t.markLayout(h)
	d.Inserted = append(d.Inserted, n.id)
	d.Rebuilt++

	for _, c := range desc.children {
		n.children = append(n.children, t.insert(h, c, d))
	}
	return h
}

// update applies desc to the matched node h. Style and layout are only
// dirtied when their inputs changed.
func (t *Tree) update(h Handle, desc *Desc, d *Diff) {
	n := t.nodes[h]
	n.needsRebuild = false
	n.childNeedsRebuild = false
	d.Rebuilt++

	prev := n.attrs
	mutated := false
	switch {
	case !slices.Equal(prev.Classes, desc.Classes) || !slices.Equal(prev.Sheets, desc.Sheets):
		// Descendant selectors may depend on either.
		t.markStyle(h, true)
		mutated = true
	case !slices.Equal(prev.Inline, desc.Inline) || prev.BadDecls != desc.BadDecls:
		t.markStyle(h, false)
		mutated = true
	case desc.OnStyle != nil || prev.OnStyle != nil:
		// A new callback may capture new values.
		t.markStyle(h, false)
	}
	if prev.Text != desc.Text {
		t.markLayout(h)
		mutated = true
	}
	if desc.OnMeasure != nil {
		t.markLayout(h)
	}
	if prev.Role != desc.Role || prev.Label != desc.Label || prev.Focusable != desc.Focusable {
		mutated = true
	}

	t.setAttrs(n, desc)
	if mutated {
		d.Mutated = append(d.Mutated, n.id)
	}
	t.reconcile(h, desc.children, d)
}

// setAttrs stores desc on n and brings n's computations in line with it.
func (t *Tree) setAttrs(n *Node, desc *Desc) {
	n.attrs = *desc
	n.attrs.children = nil
	n.attrs.reads = nil
	n.attrs.memory = nil
	n.build = desc.build

	if desc.build != nil {
		if n.comp == 0 {
			n.comp = t.newComp(n.h, n.kind, false)
		}
		if desc.reads != nil {
			desc.reads.Bind(n.comp)
			desc.reads.Commit()
		}
	} else if n.comp != 0 {
		t.dropComp(n.comp)
		n.comp = 0
	}

	if desc.OnStyle != nil {
		if n.styleID == 0 {
			n.styleID = t.newComp(n.h, n.kind+":style", true)
		}
	} else if n.styleID != 0 {
		t.dropComp(n.styleID)
		n.styleID = 0
	}

	if desc.OnAnimationFrame != nil {
		t.animating[n.h] = struct{}{}
	} else {
		delete(t.animating, n.h)
	}
}

// remove tears down h and its subtree: computations are dropped, cleanups
// run, and slots go back on the free list.
func (t *Tree) remove(h Handle, d *Diff) {
	n := t.nodes[h]
	for _, c := range n.children {
		t.remove(c, d)
	}
	t.dropComp(n.comp)
	t.dropComp(n.styleID)
	t.runCleanup(n)
	delete(t.animating, h)
	if cur, ok := t.index.Get(n.id); ok && cur == h {
		t.index.Delete(n.id)
	}
	d.Removed = append(d.Removed, n.id)
	t.release(h)
}

// lis marks the elements of seq that belong to one longest strictly
// increasing subsequence. Matched children outside it are the ones that
// moved.
func lis(seq []int) []bool {
	// tails[k] is the index in seq of the smallest tail of an increasing
	// run of length k+1; prev links each element to its predecessor.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	keep := make([]bool, len(seq))
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}
