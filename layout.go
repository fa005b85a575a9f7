// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package weft

import "github.com/grindlemire/weft/internal/layout"

// Value is a length: auto, pixels, percent, em or a stretch weight.
type Value = layout.Value

// Unit specifies how a Value is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitPx      = layout.UnitPx
	UnitPercent = layout.UnitPercent
	UnitEm      = layout.UnitEm
	UnitStretch = layout.UnitStretch
)

// Auto sizes a box to its content.
func Auto() Value { return layout.Auto() }

// Px is a length in pixels.
func Px(n float64) Value { return layout.Px(n) }

// Percent is a length relative to the space available.
func Percent(p float64) Value { return layout.Percent(p) }

// Em is a length relative to the node's font size.
func Em(n float64) Value { return layout.Em(n) }

// Stretch shares free space among siblings in proportion to weight.
func Stretch(weight float64) Value { return layout.Stretch(weight) }

// ParseValue parses "auto", "12", "12px", "50%", "1.5em" or "2s".
func ParseValue(s string) (Value, error) { return layout.ParseValue(s) }

// Direction specifies the main axis for laying out children.
type Direction = layout.Direction

const (
	Row           = layout.Row
	Column        = layout.Column
	RowReverse    = layout.RowReverse
	ColumnReverse = layout.ColumnReverse
)

// Justify specifies how children are distributed along the main axis.
type Justify = layout.Justify

const (
	JustifyStart        = layout.JustifyStart
	JustifyEnd          = layout.JustifyEnd
	JustifyCenter       = layout.JustifyCenter
	JustifySpaceBetween = layout.JustifySpaceBetween
	JustifySpaceAround  = layout.JustifySpaceAround
	JustifySpaceEvenly  = layout.JustifySpaceEvenly
)

// Align specifies how children are aligned along the cross axis.
type Align = layout.Align

const (
	AlignAuto    = layout.AlignAuto
	AlignStart   = layout.AlignStart
	AlignEnd     = layout.AlignEnd
	AlignCenter  = layout.AlignCenter
	AlignStretch = layout.AlignStretch
)

// Overflow says what happens to content that does not fit.
type Overflow = layout.Overflow

const (
	OverflowVisible = layout.OverflowVisible
	OverflowClip    = layout.OverflowClip
	OverflowScroll  = layout.OverflowScroll
)

// Display controls whether a node takes part in layout.
type Display = layout.Display

const (
	DisplayFlex = layout.DisplayFlex
	DisplayNone = layout.DisplayNone
)

// LayoutStyle holds the layout properties of a node.
type LayoutStyle = layout.Style

// Layout is a node's computed box.
type Layout = layout.Layout

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Size represents a width/height pair.
type Size = layout.Size

// Point is a position.
type Point = layout.Point
