package layout

import "math"

// overflowEpsilon absorbs float error when checking whether children fit.
const overflowEpsilon = 1e-9

// flexItem holds intermediate calculation state for a child.
// This is allocated per layout call, not stored on nodes.
type flexItem struct {
	node  Layoutable
	style Style

	// Margins along each axis, before and after.
	mainBefore, mainAfter   float64
	crossBefore, crossAfter float64

	base      float64 // size before free space is shared
	minMain   float64
	maxMain   float64
	weight    float64 // stretch weight, 0 for inflexible items
	frozen    bool
	violation float64

	mainSize  float64
	crossSize float64
	mainPos   float64
	crossPos  float64
}

func (it *flexItem) outerMain() float64 {
	return it.mainBefore + it.mainSize + it.mainAfter
}

type childrenResult struct {
	baseline    float64
	hasBaseline bool
	extent      Size
	overflow    bool
}

// layoutChildren arranges children within the parent's content rect and
// recurses into each of them.
func layoutChildren(style Style, children []Layoutable, content Rect, st *Stats) childrenResult {
	var res childrenResult
	isRow := style.Direction.IsRow()

	// Determine main/cross axis dimensions
	mainAvail := content.Width
	crossAvail := content.Height
	if !isRow {
		mainAvail, crossAvail = crossAvail, mainAvail
	}

	// Phase 1: Compute base sizes, bounds and weights
	items := make([]flexItem, 0, len(children))
	for _, child := range children {
		cs := child.LayoutStyle()
		if cs.Display == DisplayNone {
			hide(child)
			continue
		}
		items = append(items, newFlexItem(child, cs, isRow, mainAvail, crossAvail))
	}
	if len(items) == 0 {
		return res
	}

	gap := style.Gap.Resolve(mainAvail, style.fontSize(), 0)
	totalGap := gap * float64(len(items)-1)

	// Phase 2: Share free space among stretch items
	distribute(items, mainAvail-totalGap)

	used := totalGap
	for i := range items {
		used += items[i].outerMain()
	}
	freeSpace := mainAvail - used
	if freeSpace < -overflowEpsilon {
		res.overflow = true
	}

	// Phase 3: Position children along main axis (justify)
	offset := justifyOffset(style.JustifyContent, freeSpace, len(items))
	spacing := justifySpacing(style.JustifyContent, freeSpace, len(items))
	for i := range items {
		it := &items[i]
		pos := offset + it.mainBefore
		if style.Direction.IsReverse() {
			pos = mainAvail - pos - it.mainSize
		}
		it.mainPos = pos
		offset += it.outerMain() + gap + spacing
	}

	// Phase 4: Cross-axis sizing and alignment
	crossExtent := 0.0
	for i := range items {
		it := &items[i]
		align := it.style.AlignSelf
		if align == AlignAuto {
			align = style.AlignItems
		}
		if align == AlignAuto {
			align = AlignStretch
		}
		it.crossSize = crossSize(it, align, isRow, crossAvail)
		outer := it.crossBefore + it.crossSize + it.crossAfter
		crossExtent = max(crossExtent, outer)
		if outer > crossAvail+overflowEpsilon {
			res.overflow = true
		}

		switch align {
		case AlignEnd:
			it.crossPos = crossAvail - it.crossSize - it.crossAfter
		case AlignCenter:
			it.crossPos = it.crossBefore + (crossAvail-it.crossBefore-it.crossAfter-it.crossSize)/2
		default: // AlignStart, AlignStretch
			it.crossPos = it.crossBefore
		}
	}

	if isRow {
		res.extent = Size{Width: used, Height: crossExtent}
	} else {
		res.extent = Size{Width: crossExtent, Height: used}
	}

	// Phase 5: Convert to slots and recurse
	for i := range items {
		it := &items[i]
		var slot Rect
		if isRow {
			slot = Rect{
				X:      content.X + it.mainPos,
				Y:      content.Y + it.crossPos,
				Width:  it.mainSize,
				Height: it.crossSize,
			}
		} else {
			slot = Rect{
				X:      content.X + it.crossPos,
				Y:      content.Y + it.mainPos,
				Width:  it.crossSize,
				Height: it.mainSize,
			}
		}
		calculateNode(it.node, slot, st)
		if i == 0 {
			res.baseline = it.node.GetLayout().Baseline
			res.hasBaseline = true
		}
	}

	return res
}

func newFlexItem(child Layoutable, cs Style, isRow bool, mainAvail, crossAvail float64) flexItem {
	it := flexItem{node: child, style: cs}
	fs := cs.fontSize()

	mainValue, minValue, maxValue := cs.Width, cs.MinWidth, cs.MaxWidth
	if isRow {
		it.mainBefore, it.mainAfter = cs.Margin.Left, cs.Margin.Right
		it.crossBefore, it.crossAfter = cs.Margin.Top, cs.Margin.Bottom
	} else {
		mainValue, minValue, maxValue = cs.Height, cs.MinHeight, cs.MaxHeight
		it.mainBefore, it.mainAfter = cs.Margin.Top, cs.Margin.Bottom
		it.crossBefore, it.crossAfter = cs.Margin.Left, cs.Margin.Right
	}

	it.minMain = minValue.Resolve(mainAvail, fs, 0)
	it.maxMain = maxValue.Resolve(mainAvail, fs, math.Inf(1))

	switch {
	case mainValue.IsStretch() && mainValue.Amount > 0:
		it.weight = mainValue.Amount
		it.base = cs.FlexBasis.Resolve(mainAvail, fs, 0)
	case mainValue.IsAuto() || mainValue.IsStretch():
		it.base = intrinsicMain(child, cs, isRow, mainAvail-it.mainBefore-it.mainAfter, crossAvail-it.crossBefore-it.crossAfter)
	default:
		it.base = mainValue.Resolve(mainAvail, fs, 0)
	}

	if it.weight == 0 {
		it.frozen = true
		it.mainSize = clamp(it.base, it.minMain, it.maxMain)
	}
	return it
}

// distribute sizes the stretch items so that every item's outer size fits
// space, using the iterative freeze rule: share the free space by weight,
// clamp each share to the item's bounds, then freeze the min-clamped items
// if the total clamping added space, the max-clamped items if it removed
// space, or everything if it balanced out. Frozen items keep their clamped
// size and the rest is shared again among the items still flexible.
func distribute(items []flexItem, space float64) {
	for round := 0; round <= len(items); round++ {
		free := space
		weights := 0.0
		for i := range items {
			it := &items[i]
			free -= it.mainBefore + it.mainAfter
			if it.frozen {
				free -= it.mainSize
			} else {
				free -= it.base
				weights += it.weight
			}
		}
		if weights == 0 {
			return
		}
		// Stretch items grow into free space but never shrink below base.
		free = max(0, free)

		total := 0.0
		for i := range items {
			it := &items[i]
			if it.frozen {
				continue
			}
			target := it.base + free*it.weight/weights
			it.mainSize = clamp(target, it.minMain, it.maxMain)
			it.violation = it.mainSize - target
			total += it.violation
		}

		for i := range items {
			it := &items[i]
			if it.frozen {
				continue
			}
			switch {
			case total > 0:
				it.frozen = it.violation > 0
			case total < 0:
				it.frozen = it.violation < 0
			default:
				it.frozen = true
			}
		}
	}
}

// frame returns the border plus padding of s along the horizontal and
// vertical axes.
func frame(s Style) (horizontal, vertical float64) {
	e := s.Border.Add(s.Padding)
	return e.Horizontal(), e.Vertical()
}

// intrinsicMain returns the border-box main size of an Auto child.
func intrinsicMain(child Layoutable, cs Style, isRow bool, mainAvail, crossAvail float64) float64 {
	fh, fv := frame(cs)
	if isRow {
		size, ok := child.IntrinsicSize(max(0, mainAvail-fh))
		if !ok {
			return fh
		}
		return size.Width + fh
	}
	size, ok := child.IntrinsicSize(max(0, crossAvail-fh))
	if !ok {
		return fv
	}
	return size.Height + fv
}

// crossSize resolves an item's border-box size along the cross axis.
func crossSize(it *flexItem, align Align, isRow bool, crossAvail float64) float64 {
	cs := it.style
	fs := cs.fontSize()
	avail := crossAvail - it.crossBefore - it.crossAfter

	value, minValue, maxValue := cs.Height, cs.MinHeight, cs.MaxHeight
	if !isRow {
		value, minValue, maxValue = cs.Width, cs.MinWidth, cs.MaxWidth
	}

	var size float64
	switch {
	case value.IsStretch():
		size = avail
	case value.IsAuto() && align == AlignStretch:
		size = avail
	case value.IsAuto():
		fh, fv := frame(cs)
		if isRow {
			if s, ok := it.node.IntrinsicSize(max(0, it.mainSize-fh)); ok {
				size = s.Height + fv
			} else {
				size = fv
			}
		} else {
			if s, ok := it.node.IntrinsicSize(max(0, avail-fh)); ok {
				size = s.Width + fh
			} else {
				size = fh
			}
		}
	default:
		size = value.Resolve(crossAvail, fs, 0)
	}

	return clamp(size,
		minValue.Resolve(crossAvail, fs, 0),
		maxValue.Resolve(crossAvail, fs, math.Inf(1)))
}

// justifyOffset returns the initial offset for positioning children
// based on the justify mode and available free space.
func justifyOffset(justify Justify, freeSpace float64, itemCount int) float64 {
	if freeSpace <= 0 || itemCount == 0 {
		return 0
	}

	switch justify {
	case JustifyEnd:
		return freeSpace
	case JustifyCenter:
		return freeSpace / 2
	case JustifySpaceAround:
		return freeSpace / float64(itemCount*2)
	case JustifySpaceEvenly:
		return freeSpace / float64(itemCount+1)
	default: // JustifyStart, JustifySpaceBetween
		return 0
	}
}

// justifySpacing returns the extra spacing between children
// based on the justify mode and available free space.
func justifySpacing(justify Justify, freeSpace float64, itemCount int) float64 {
	if freeSpace <= 0 || itemCount <= 1 {
		return 0
	}

	switch justify {
	case JustifySpaceBetween:
		return freeSpace / float64(itemCount-1)
	case JustifySpaceAround:
		return freeSpace / float64(itemCount)
	case JustifySpaceEvenly:
		return freeSpace / float64(itemCount+1)
	default: // JustifyStart, JustifyEnd, JustifyCenter
		return 0
	}
}
