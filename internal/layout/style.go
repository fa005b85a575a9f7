package layout

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row           Direction = iota // Children laid out left-to-right
	Column                         // Children laid out top-to-bottom
	RowReverse                     // Children laid out right-to-left
	ColumnReverse                  // Children laid out bottom-to-top
)

// IsRow reports whether the main axis is horizontal.
func (d Direction) IsRow() bool {
	return d == Row || d == RowReverse
}

// IsReverse reports whether children are placed from the end of the main
// axis.
func (d Direction) IsReverse() bool {
	return d == RowReverse || d == ColumnReverse
}

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignAuto    Align = iota // Use the parent's AlignItems (AlignSelf only)
	AlignStart                // Align to start of cross axis
	AlignEnd                  // Align to end of cross axis
	AlignCenter               // Center on cross axis
	AlignStretch              // Stretch to fill cross axis
)

// Display controls whether a node takes part in layout.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// Overflow is the policy applied when children do not fit.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowClip
	OverflowScroll
)

// Style contains all layout properties for a node.
type Style struct {
	Display Display

	// Sizing. Sizes are border-box: padding and border are inside.
	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value
	FlexBasis Value // Starting size of a Stretch item before free space is shared

	// Container properties
	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            Value // Space between children along the main axis
	Overflow       Overflow

	// Item properties
	AlignSelf Align

	// Spacing
	Padding Edges
	Margin  Edges
	Border  Edges

	// Text metrics used by Em values, text measurement and baselines.
	FontSize   float64
	LineHeight float64
}

// DefaultFontSize is the font size used when none is set.
const DefaultFontSize = 16

// DefaultLineHeight is the line height, in multiples of the font size, used
// when none is set.
const DefaultLineHeight = 1.2

// DefaultStyle returns a Style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		MinWidth:   Px(0),
		MinHeight:  Px(0),
		MaxWidth:   Auto(), // No maximum
		MaxHeight:  Auto(), // No maximum
		FlexBasis:  Px(0),
		Gap:        Px(0),
		Direction:  Row,
		AlignItems: AlignStretch,
		FontSize:   DefaultFontSize,
		LineHeight: DefaultLineHeight,
	}
}

// fontSize returns s.FontSize or the default if unset.
func (s Style) fontSize() float64 {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}
