package layout

// testNode is a minimal Layoutable implementation for testing the layout algorithm.
// It provides the same tree structure and dirty tracking the weft node arena uses.
type testNode struct {
	name     string
	style    Style
	text     string
	children []*testNode
	layout   Layout
	dirty    bool
	parent   *testNode
}

// newTestNode creates a new testNode with the given style.
func newTestNode(style Style) *testNode {
	return &testNode{
		style: style,
		dirty: true,
	}
}

func (n *testNode) LayoutStyle() Style { return n.style }

func (n *testNode) LayoutChildren() []Layoutable {
	result := make([]Layoutable, len(n.children))
	for i, child := range n.children {
		result[i] = child
	}
	return result
}

func (n *testNode) SetLayout(l Layout) { n.layout = l }
func (n *testNode) GetLayout() Layout  { return n.layout }
func (n *testNode) IsDirty() bool      { return n.dirty }
func (n *testNode) SetDirty(d bool)    { n.dirty = d }
func (n *testNode) HasText() bool      { return n.text != "" }

func (n *testNode) IntrinsicSize(float64) (Size, bool) {
	if n.text == "" {
		return Size{}, false
	}
	return MeasureText(n.text, n.style.FontSize, n.style.LineHeight), true
}

// AddChild appends children and marks this node dirty.
func (n *testNode) AddChild(children ...*testNode) {
	for _, child := range children {
		child.parent = n
		n.children = append(n.children, child)
	}
	n.markDirty()
}

// SetStyle replaces the style and marks the node dirty.
func (n *testNode) SetStyle(s Style) {
	n.style = s
	n.markDirty()
}

// markDirty marks this node and all ancestors dirty.
func (n *testNode) markDirty() {
	for node := n; node != nil && !node.dirty; node = node.parent {
		node.dirty = true
	}
}

// row returns a container laid out left-to-right with fixed size.
func row(width, height float64, children ...*testNode) *testNode {
	s := DefaultStyle()
	s.Width = Px(width)
	s.Height = Px(height)
	n := newTestNode(s)
	n.AddChild(children...)
	return n
}

// item returns a child with the given width value and auto height.
func item(width Value) *testNode {
	s := DefaultStyle()
	s.Width = width
	return newTestNode(s)
}

func widths(nodes ...*testNode) []float64 {
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = n.layout.Rect.Width
	}
	return out
}
