package tree

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/reactive"
	"github.com/grindlemire/weft/internal/style"
)

// compRef names the node a computation belongs to and which of its
// computations it is.
type compRef struct {
	h     Handle
	style bool
}

// Tree is the retained node arena for one view.
type Tree struct {
	g     *reactive.Graph
	scope *reactive.Scope

	nodes []*Node
	free  []Handle
	live  int
	root  Handle

	index  swiss.Map[NodeID, Handle]
	byComp swiss.Map[reactive.CompID, compRef]

	animating map[Handle]struct{}
	mounts    []NodeID
}

// New creates a tree whose root's children are declared by view. Nothing
// is built until the first call to Build.
func New(g *reactive.Graph, scope *reactive.Scope, view func(*Ui)) *Tree {
	t := &Tree{
		g:         g,
		scope:     scope,
		root:      NoHandle,
		animating: make(map[Handle]struct{}),
	}
	t.index.Init(64)
	t.byComp.Init(64)

	h := t.alloc()
	n := t.nodes[h]
	n.id = RootID
	n.key = RootKey
	n.kind = "root"
	n.parent = NoHandle
	n.memory = &Memory{}
	n.build = view
	n.attrs.Key = RootKey
	n.attrs.Kind = "root"
	n.comp = t.newComp(h, "root", false)
	n.needsRebuild = true
	n.styleDirty = true
	n.layoutDirty = true
	t.index.Put(n.id, h)
	t.root = h
	return t
}

// AttachSheets attaches named sheets to the root, making their rules
// apply to the whole tree.
func (t *Tree) AttachSheets(names ...string) {
	root := t.nodes[t.root]
	for _, name := range names {
		if !slices.Contains(root.attrs.Sheets, name) {
			root.attrs.Sheets = append(root.attrs.Sheets, name)
		}
	}
	t.markStyle(t.root, true)
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// Len returns the number of live nodes, the root included.
func (t *Tree) Len() int {
	return t.live
}

// Lookup returns the live node with the given id.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	h, ok := t.index.Get(id)
	if !ok {
		return nil, false
	}
	return t.nodes[h], true
}

func (t *Tree) alloc() Handle {
	t.live++
	if n := len(t.free); n > 0 {
		h := t.free[n-1]
		t.free = t.free[:n-1]
		return h
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, &Node{t: t, h: h})
	return h
}

// release clears a slot and puts it on the free list. The children slice
// keeps its storage for the next occupant.
func (t *Tree) release(h Handle) {
	n := t.nodes[h]
	children := n.children[:0]
	*n = Node{t: t, h: h, children: children}
	t.free = append(t.free, h)
	t.live--
}

func (t *Tree) newComp(h Handle, label string, isStyle bool) reactive.CompID {
	id := t.g.NewComputation(t.scope, label)
	t.byComp.Put(id, compRef{h: h, style: isStyle})
	return id
}

func (t *Tree) dropComp(id reactive.CompID) {
	if id == 0 {
		return
	}
	t.g.DropComputation(id)
	t.byComp.Delete(id)
}

// --- dirty marking ---

func (t *Tree) markRebuild(h Handle) {
	n := t.nodes[h]
	n.needsRebuild = true
	for p := n.parent; p != NoHandle && !t.nodes[p].childNeedsRebuild; p = t.nodes[p].parent {
		t.nodes[p].childNeedsRebuild = true
	}
}

func (t *Tree) markStyle(h Handle, subtree bool) {
	n := t.nodes[h]
	n.styleDirty = true
	if subtree {
		n.styleSubtree = true
	}
	for p := n.parent; p != NoHandle && !t.nodes[p].childStyleDirty; p = t.nodes[p].parent {
		t.nodes[p].childStyleDirty = true
	}
}

func (t *Tree) markLayout(h Handle) {
	for ; h != NoHandle; h = t.nodes[h].parent {
		n := t.nodes[h]
		if n.layoutDirty {
			return
		}
		n.layoutDirty = true
	}
}

// Invalidate marks the nodes owning the given computations. A children
// computation marks its node for rebuild; an on-style computation marks
// its node, and only it, for restyle. It returns the number of nodes
// marked for restyle.
func (t *Tree) Invalidate(comps []reactive.CompID) (restyles int) {
	for _, id := range comps {
		ref, ok := t.byComp.Get(id)
		if !ok {
			continue
		}
		if ref.style {
			t.markStyle(ref.h, false)
			restyles++
			continue
		}
		t.markRebuild(ref.h)
	}
	return restyles
}

// NeedsRebuild reports whether any node is marked for rebuild.
func (t *Tree) NeedsRebuild() bool {
	r := t.nodes[t.root]
	return r.needsRebuild || r.childNeedsRebuild
}

// NeedsRestyle reports whether any node is marked for restyle.
func (t *Tree) NeedsRestyle() bool {
	r := t.nodes[t.root]
	return r.styleDirty || r.childStyleDirty
}

// NeedsLayout reports whether any node is marked for layout.
func (t *Tree) NeedsLayout() bool {
	return t.nodes[t.root].layoutDirty
}

// MarkRestyle marks the node id for restyle.
func (t *Tree) MarkRestyle(id NodeID) error {
	h, ok := t.index.Get(id)
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "restyle %016x", uint64(id))
	}
	t.markStyle(h, false)
	return nil
}

// SetPseudo turns interaction state p on or off for node id. A change
// restyles the node's whole subtree, whose selectors may depend on it.
func (t *Tree) SetPseudo(id NodeID, p style.Pseudo, on bool) (changed bool, err error) {
	h, ok := t.index.Get(id)
	if !ok {
		return false, errors.Wrapf(ErrUnknownNode, "set pseudo on %016x", uint64(id))
	}
	n := t.nodes[h]
	next := n.pseudo &^ p
	if on {
		next |= p
	}
	if next == n.pseudo {
		return false, nil
	}
	n.pseudo = next
	t.markStyle(h, true)
	return true, nil
}

// MarkSheet marks every node that attaches the named sheet, with its
// subtree, for restyle. It returns the number of scoping nodes.
func (t *Tree) MarkSheet(name string) int {
	marked := 0
	t.Visit(func(n *Node) bool {
		if slices.Contains(n.attrs.Sheets, name) {
			t.markStyle(n.h, true)
			marked++
			// The subtree is covered already.
			return false
		}
		return true
	}, nil)
	return marked
}

// ScrollTo sets the scroll offset of node id.
func (t *Tree) ScrollTo(id NodeID, x, y float64) error {
	n, ok := t.Lookup(id)
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "scroll %016x", uint64(id))
	}
	n.memory.ScrollOffset.X = x
	n.memory.ScrollOffset.Y = y
	return nil
}

// Visit walks the tree depth first. enter returning false skips the
// node's children; leave, if not nil, runs after them.
func (t *Tree) Visit(enter func(n *Node) bool, leave func(n *Node)) {
	t.visit(t.root, enter, leave)
}

func (t *Tree) visit(h Handle, enter func(*Node) bool, leave func(*Node)) {
	n := t.nodes[h]
	if enter(n) {
		for _, c := range n.children {
			t.visit(c, enter, leave)
		}
	}
	if leave != nil {
		leave(n)
	}
}

// Animating reports whether any node has an animation frame handler.
func (t *Tree) Animating() bool {
	return len(t.animating) > 0
}

// AnimationFrame runs every animation frame handler once, in tree order.
func (t *Tree) AnimationFrame(now time.Time) int {
	if len(t.animating) == 0 {
		return 0
	}
	var fns []func(time.Time)
	t.Visit(func(n *Node) bool {
		if n.attrs.OnAnimationFrame != nil {
			fns = append(fns, n.attrs.OnAnimationFrame)
		}
		return true
	}, nil)
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// RunMounts calls the mount hooks of nodes inserted since the last call.
// It runs after the frame showing them has been committed.
func (t *Tree) RunMounts() {
	mounts := t.mounts
	t.mounts = nil
	for _, id := range mounts {
		n, ok := t.Lookup(id)
		if !ok || n.attrs.OnMount == nil || n.cleanup != nil {
			continue
		}
		n.cleanup = n.attrs.OnMount()
	}
}

// Close tears down every node, running cleanups and dropping computations.
func (t *Tree) Close() {
	if t.root == NoHandle {
		return
	}
	var d Diff
	t.remove(t.root, &d)
	t.root = NoHandle
	t.mounts = nil
}

func (t *Tree) runCleanup(n *Node) {
	if n.cleanup == nil {
		return
	}
	fn := n.cleanup
	n.cleanup = nil
	defer func() {
		if r := recover(); r != nil {
			debug.Log("cleanup for node %016x (%s) panicked: %v", uint64(n.id), n.kind, r)
		}
	}()
	fn()
}
