package layout

// Layoutable is the interface for anything that can participate in layout calculation.
// The layout engine works entirely with this interface, enabling custom implementations.
type Layoutable interface {
	// LayoutStyle returns the layout style properties for this element.
	LayoutStyle() Style

	// LayoutChildren returns the children to be laid out.
	LayoutChildren() []Layoutable

	// SetLayout is called by the layout engine to store computed layout.
	SetLayout(Layout)

	// GetLayout returns the last computed layout.
	GetLayout() Layout

	// IsDirty returns whether this element or a descendant needs layout
	// recalculation.
	IsDirty() bool

	// SetDirty marks this element as needing recalculation.
	SetDirty(dirty bool)

	// IntrinsicSize returns the natural content size of this element (border
	// and padding excluded) when laid out within maxWidth. ok is false for
	// elements with no intrinsic content, whose Auto size is then zero.
	IntrinsicSize(maxWidth float64) (size Size, ok bool)

	// HasText reports whether the element's content is a line of text, which
	// gives it a baseline of its own.
	HasText() bool
}
