package layout

// Layout holds the computed position and size after layout calculation.
type Layout struct {
	// Slot is the border box the parent allotted. A clean node whose slot
	// is unchanged is skipped on the next pass.
	Slot Rect

	// Rect is the border box after min/max clamping. Use for hit testing
	// and bounds.
	Rect Rect

	// ContentRect is Rect minus border and padding: the area where
	// children are placed.
	ContentRect Rect

	// Baseline is the absolute y of the first line of text in the node.
	Baseline float64

	// Extent is the size of the children's combined margin boxes, in the
	// content rect's coordinate space. It exceeds ContentRect when the
	// node overflows.
	Extent Size

	// Overflow is set when in-flow children do not fit the content rect.
	Overflow bool
}
