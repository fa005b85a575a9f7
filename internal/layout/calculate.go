package layout

import "math"

// Stats counts the work done by one Calculate call.
type Stats struct {
	LaidOut   int // nodes whose box was recomputed
	Skipped   int // clean subtrees whose slot was unchanged
	Overflows int // nodes whose children did not fit
}

// Calculate performs layout calculation on the tree rooted at root.
// Only dirty nodes, and nodes whose allotted slot moved or resized, are
// recalculated.
//
// availableWidth and availableHeight specify the root constraint
// (typically the viewport size).
func Calculate(root Layoutable, availableWidth, availableHeight float64) Stats {
	var st Stats
	if root == nil {
		return st
	}

	style := root.LayoutStyle()
	if style.Display == DisplayNone {
		hide(root)
		return st
	}

	// The root resolves its own size against the viewport; every other
	// node receives its size from the parent.
	fs := style.fontSize()
	width := style.Width.Resolve(availableWidth, fs, availableWidth)
	height := style.Height.Resolve(availableHeight, fs, availableHeight)
	width = clamp(width,
		style.MinWidth.Resolve(availableWidth, fs, 0),
		style.MaxWidth.Resolve(availableWidth, fs, math.Inf(1)))
	height = clamp(height,
		style.MinHeight.Resolve(availableHeight, fs, 0),
		style.MaxHeight.Resolve(availableHeight, fs, math.Inf(1)))

	calculateNode(root, NewRect(0, 0, width, height), &st)
	return st
}

// calculateNode lays out node within slot, the border box its parent
// allotted after sizing and clamping it.
func calculateNode(node Layoutable, slot Rect, st *Stats) {
	if !node.IsDirty() && node.GetLayout().Slot == slot {
		st.Skipped++
		return
	}
	st.LaidOut++

	style := node.LayoutStyle()

	// 1. Content rect is the border box minus border and padding
	content := slot.Inset(style.Border).Inset(style.Padding)

	l := Layout{
		Slot:        slot,
		Rect:        slot,
		ContentRect: content,
		Baseline:    content.Y,
	}
	if node.HasText() {
		l.Baseline = content.Y + BaselineRatio*style.fontSize()
	}

	// 2. Size and place children, recursing into each
	if children := node.LayoutChildren(); len(children) > 0 {
		res := layoutChildren(style, children, content, st)
		l.Extent = res.extent
		l.Overflow = res.overflow
		if res.hasBaseline && !node.HasText() {
			l.Baseline = res.baseline
		}
	}
	if l.Overflow {
		st.Overflows++
	}

	// 3. Store computed layout and clear dirty flag
	node.SetLayout(l)
	node.SetDirty(false)
}

// hide clears the layout of a node that is not displayed.
func hide(node Layoutable) {
	node.SetLayout(Layout{})
	node.SetDirty(false)
}

// clamp restricts v to the range [minVal, maxVal].
// If minVal > maxVal, minVal wins (matches CSS behavior).
func clamp(v, minVal, maxVal float64) float64 {
	if v > maxVal {
		v = maxVal
	}
	if v < minVal {
		v = minVal
	}
	return v
}
