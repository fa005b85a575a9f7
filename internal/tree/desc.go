package tree

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/layout"
	"github.com/grindlemire/weft/internal/paint"
	"github.com/grindlemire/weft/internal/reactive"
	"github.com/grindlemire/weft/internal/style"
)

// MeasureFunc reports the intrinsic content size of a node laid out within
// maxWidth. ok false means the node has no intrinsic content.
type MeasureFunc func(maxWidth float64) (size layout.Size, ok bool)

// DrawFunc paints custom content for a node after its background, border
// and text.
type DrawFunc func(r *paint.Recorder, box layout.Layout)

// StyleFunc adjusts a node's resolved style. Cells read through r make up
// its own computation: invalidating one restyles only that node.
type StyleFunc func(r reactive.Reader, s *style.Computed)

// Desc describes one node as a view declared it. Descriptors are built
// without touching the arena.
type Desc struct {
	Key     Key
	Kind    string
	Classes []string
	Sheets  []string
	Inline  []style.Decl
	Text    string
	Role    string
	Label   string

	// Focusable puts the node in the focus order.
	Focusable bool

	Handlers         map[string]Handler
	OnStyle          StyleFunc
	OnAnimationFrame func(now time.Time)
	OnMeasure        MeasureFunc
	OnDraw           DrawFunc
	OnMount          func() func()

	// BadDecls counts inline declarations that named no known property.
	BadDecls int

	build    func(*Ui)
	children []*Desc
	reads    *reactive.Tracker
	memory   *Memory
}

// Component is a reusable piece of view.
type Component interface {
	Build(ui *Ui)
}

// Mounter is implemented by components that need setup when they enter
// the tree. The returned function, if any, runs when they leave it.
type Mounter interface {
	Mount() func()
}

// Kinder lets a component name the kind of the node it is mounted as.
type Kinder interface {
	Kind() string
}

// Ui collects the children declared by one Children closure. It is also
// the Reader for cells read while declaring them.
type Ui struct {
	t      *Tree
	parent NodeID
	reads  *reactive.Tracker
	all    *reactive.Tracker
	descs  []*Desc
	seen   map[Key]struct{}
	err    error
}

func (t *Tree) newUi(parent NodeID, all *reactive.Tracker) *Ui {
	return &Ui{
		t:      t,
		parent: parent,
		reads:  t.g.Track(0),
		all:    all,
	}
}

// Observe records a tracked read for the closure being run.
func (ui *Ui) Observe(id reactive.SourceID, gen uint64) {
	ui.reads.Observe(id, gen)
	ui.all.Observe(id, gen)
}

// Err returns the first error hit while declaring, if any.
func (ui *Ui) Err() error {
	return ui.err
}

// Node declares a child of the given kind. fn, if not nil, fills in its
// attributes. Declaring a key twice under one parent fails the rebuild.
func (ui *Ui) Node(key Key, kind string, fn func(n *NodeBuilder)) {
	if ui.err != nil {
		return
	}
	if ui.seen == nil {
		ui.seen = make(map[Key]struct{})
	}
	if _, dup := ui.seen[key]; dup {
		ui.err = errors.Wrapf(ErrDuplicateKey, "key %016x (%s) under node %016x", uint64(key), kind, uint64(ui.parent))
		return
	}
	ui.seen[key] = struct{}{}

	d := &Desc{Key: key, Kind: kind}
	nb := NodeBuilder{d: d, ui: ui, id: childID(ui.parent, key)}
	if fn != nil {
		fn(&nb)
	}
	ui.descs = append(ui.descs, d)

	if d.build == nil {
		return
	}
	child := ui.t.newUi(nb.id, ui.all)
	d.build(child)
	d.children = child.descs
	d.reads = child.reads
	if child.err != nil {
		ui.err = child.err
	}
}

// Text declares a text child.
func (ui *Ui) Text(key Key, text string) {
	ui.Node(key, "text", func(n *NodeBuilder) { n.Text(text) })
}

// Mount declares a child built by c. The node's kind is "component"
// unless c implements Kinder.
func (ui *Ui) Mount(key Key, c Component) {
	kind := "component"
	if k, ok := c.(Kinder); ok {
		kind = k.Kind()
	}
	ui.Node(key, kind, func(n *NodeBuilder) {
		if m, ok := c.(Mounter); ok {
			n.OnMount(m.Mount)
		}
		n.Children(c.Build)
	})
}

// NodeBuilder sets the attributes of one declared node.
type NodeBuilder struct {
	d  *Desc
	ui *Ui
	id NodeID
}

// ID returns the identity the node will have once reconciled.
func (n *NodeBuilder) ID() NodeID {
	return n.id
}

// Observe lets a NodeBuilder stand in for its Ui as a Reader.
func (n *NodeBuilder) Observe(id reactive.SourceID, gen uint64) {
	n.ui.Observe(id, gen)
}

func (n *NodeBuilder) Class(names ...string) *NodeBuilder {
	n.d.Classes = append(n.d.Classes, names...)
	return n
}

// Sheet attaches named sheets to the node. Their rules apply to it and its
// descendants.
func (n *NodeBuilder) Sheet(names ...string) *NodeBuilder {
	n.d.Sheets = append(n.d.Sheets, names...)
	return n
}

// Style adds an inline declaration. Inline declarations win over every
// sheet rule. Unknown properties are counted and ignored.
func (n *NodeBuilder) Style(name, value string) *NodeBuilder {
	decls, err := style.Declare(name, value)
	if err != nil {
		n.d.BadDecls++
		return n
	}
	n.d.Inline = append(n.d.Inline, decls...)
	return n
}

func (n *NodeBuilder) Text(s string) *NodeBuilder {
	n.d.Text = s
	return n
}

// On registers h for events of type typ. Events bubble from the target to
// the root.
func (n *NodeBuilder) On(typ string, h Handler) *NodeBuilder {
	if n.d.Handlers == nil {
		n.d.Handlers = make(map[string]Handler)
	}
	n.d.Handlers[typ] = h
	return n
}

func (n *NodeBuilder) OnStyle(fn StyleFunc) *NodeBuilder {
	n.d.OnStyle = fn
	return n
}

// OnAnimationFrame registers fn to run once per refresh while the node is
// in the tree.
func (n *NodeBuilder) OnAnimationFrame(fn func(now time.Time)) *NodeBuilder {
	n.d.OnAnimationFrame = fn
	return n
}

func (n *NodeBuilder) OnMeasure(fn MeasureFunc) *NodeBuilder {
	n.d.OnMeasure = fn
	return n
}

func (n *NodeBuilder) OnDraw(fn DrawFunc) *NodeBuilder {
	n.d.OnDraw = fn
	return n
}

// OnMount registers fn to run after the frame that first shows the node.
// The function it returns runs when the node is removed.
func (n *NodeBuilder) OnMount(fn func() func()) *NodeBuilder {
	n.d.OnMount = fn
	return n
}

func (n *NodeBuilder) Role(role string) *NodeBuilder {
	n.d.Role = role
	return n
}

func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.d.Label = label
	return n
}

// Focusable puts the node in the focus order, which follows tree order.
func (n *NodeBuilder) Focusable() *NodeBuilder {
	n.d.Focusable = true
	return n
}

// Children sets the closure declaring the node's children. It runs as its
// own computation and is run again, alone, when a cell it read changes.
func (n *NodeBuilder) Children(fn func(ui *Ui)) *NodeBuilder {
	n.d.build = fn
	return n
}

// Memory returns the node's retained state. A node that already exists
// hands back the state it has been keeping.
func (n *NodeBuilder) Memory() *Memory {
	if n.d.memory != nil {
		return n.d.memory
	}
	if node, ok := n.ui.t.Lookup(n.id); ok && node.kind == n.d.Kind {
		n.d.memory = node.memory
	} else {
		n.d.memory = &Memory{}
	}
	return n.d.memory
}
