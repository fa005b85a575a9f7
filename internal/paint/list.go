package paint

import (
	"github.com/grindlemire/weft/internal/layout"
)

// Op is the kind of a display item.
type Op uint8

const (
	OpRect Op = iota + 1
	OpBorder
	OpText
	OpPushClip
	OpPopClip
	OpScroll
	OpOpacity
)

var opNames = [...]string{
	OpRect:     "rect",
	OpBorder:   "border",
	OpText:     "text",
	OpPushClip: "push-clip",
	OpPopClip:  "pop-clip",
	OpScroll:   "scroll",
	OpOpacity:  "opacity",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "op?"
}

// RGBA is an 8-bit colour with straight alpha.
type RGBA [4]uint8

// Item is one drawing command.
type Item struct {
	Op   Op
	Node uint64
	Rect layout.Rect

	Color RGBA
	// Width is the border width for OpBorder, the corner radius for OpRect
	// and the alpha for OpOpacity.
	Width float64

	Text     string
	FontSize float64

	// Offset is the content offset for OpScroll.
	Offset layout.Point
	// Extent is the scrollable content size for OpScroll.
	Extent layout.Size
}

// List is an ordered display list.
type List struct {
	items []Item
	depth int
}

// Items returns the list's items. The slice must not be modified.
func (l *List) Items() []Item {
	return l.items
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Reset empties the list and keeps its storage.
func (l *List) Reset() {
	clear(l.items)
	l.items = l.items[:0]
	l.depth = 0
}

func (l *List) add(it Item) {
	l.items = append(l.items, it)
}

// Rect fills r with c.
func (l *List) Rect(node uint64, r layout.Rect, c RGBA, radius float64) {
	if c[3] == 0 || r.IsEmpty() {
		return
	}
	l.add(Item{Op: OpRect, Node: node, Rect: r, Color: c, Width: radius})
}

// Border strokes the inside of r with width w.
func (l *List) Border(node uint64, r layout.Rect, c RGBA, w float64) {
	if c[3] == 0 || w <= 0 || r.IsEmpty() {
		return
	}
	l.add(Item{Op: OpBorder, Node: node, Rect: r, Color: c, Width: w})
}

// Text draws s with its first line's box at r.
func (l *List) Text(node uint64, r layout.Rect, s string, c RGBA, fontSize float64) {
	if s == "" {
		return
	}
	l.add(Item{Op: OpText, Node: node, Rect: r, Text: s, Color: c, FontSize: fontSize})
}

// PushClip restricts every following item to r until the matching PopClip.
func (l *List) PushClip(node uint64, r layout.Rect) {
	l.depth++
	l.add(Item{Op: OpPushClip, Node: node, Rect: r})
}

// PopClip ends the innermost clip.
func (l *List) PopClip(node uint64) {
	if l.depth == 0 {
		return
	}
	l.depth--
	l.add(Item{Op: OpPopClip, Node: node})
}

// Scroll marks r as a scroll viewport over content of size extent shown
// at offset.
func (l *List) Scroll(node uint64, r layout.Rect, offset layout.Point, extent layout.Size) {
	l.add(Item{Op: OpScroll, Node: node, Rect: r, Offset: offset, Extent: extent})
}

// Opacity records a group alpha for node's subtree.
func (l *List) Opacity(node uint64, r layout.Rect, alpha float64) {
	if alpha >= 1 {
		return
	}
	l.add(Item{Op: OpOpacity, Node: node, Rect: r, Width: alpha})
}

// Balanced reports whether every clip pushed has been popped.
func (l *List) Balanced() bool {
	return l.depth == 0
}

// Recorder draws on behalf of one node. Custom draw callbacks receive one.
type Recorder struct {
	list *List
	node uint64
}

// NewRecorder returns a recorder that tags items with node.
func NewRecorder(l *List, node uint64) *Recorder {
	return &Recorder{list: l, node: node}
}

func (r *Recorder) Rect(rect layout.Rect, c RGBA, radius float64) {
	r.list.Rect(r.node, rect, c, radius)
}

func (r *Recorder) Border(rect layout.Rect, c RGBA, w float64) {
	r.list.Border(r.node, rect, c, w)
}

func (r *Recorder) Text(rect layout.Rect, s string, c RGBA, fontSize float64) {
	r.list.Text(r.node, rect, s, c, fontSize)
}
