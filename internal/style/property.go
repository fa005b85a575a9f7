package style

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/layout"
)

// Property identifies a style property.
type Property uint8

const (
	PropColor Property = iota
	PropFontSize
	PropFontFamily
	PropLineHeight
	PropTextAlign

	PropBackground
	PropBorderColor
	PropOpacity
	PropCornerRadius

	PropDisplay
	PropDirection
	PropWidth
	PropHeight
	PropMinWidth
	PropMinHeight
	PropMaxWidth
	PropMaxHeight
	PropFlexBasis
	PropGap
	PropJustifyContent
	PropAlignItems
	PropAlignSelf
	PropOverflow
	PropMarginTop
	PropMarginRight
	PropMarginBottom
	PropMarginLeft
	PropPaddingTop
	PropPaddingRight
	PropPaddingBottom
	PropPaddingLeft
	PropBorderWidth

	numProps
)

// Class groups properties by what a change to them invalidates.
type Class uint8

const (
	ClassInherited Class = iota // text properties, inherited by descendants
	ClassPaint                  // affect only the display list
	ClassLayout                 // affect boxes
)

type propInfo struct {
	name  string
	class Class
	apply func(c *Computed, raw string, parent *Computed) error
}

var props [numProps]propInfo

var propsByName = map[string]Property{}

// shorthands expand to the listed longhands, CSS box order.
var shorthands = map[string][4]Property{
	"margin":  {PropMarginTop, PropMarginRight, PropMarginBottom, PropMarginLeft},
	"padding": {PropPaddingTop, PropPaddingRight, PropPaddingBottom, PropPaddingLeft},
}

func init() {
	def := func(p Property, name string, class Class, apply func(c *Computed, raw string, parent *Computed) error) {
		props[p] = propInfo{name: name, class: class, apply: apply}
		propsByName[name] = p
	}

	def(PropColor, "color", ClassInherited, colorSetter(func(c *Computed) *Color { return &c.Color }))
	def(PropFontSize, "font-size", ClassInherited, func(c *Computed, raw string, parent *Computed) error {
		v, err := layout.ParseValue(raw)
		if err != nil {
			return err
		}
		base := layout.DefaultFontSize * 1.0
		if parent != nil {
			base = parent.Layout.FontSize
		}
		switch v.Unit {
		case layout.UnitPx:
			c.Layout.FontSize = v.Amount
		case layout.UnitEm:
			c.Layout.FontSize = v.Amount * base
		case layout.UnitPercent:
			c.Layout.FontSize = v.Amount * base / 100
		default:
			return errors.Newf("font-size %q: unsupported unit", raw)
		}
		if c.Layout.FontSize <= 0 {
			return errors.Newf("font-size %q: must be positive", raw)
		}
		return nil
	})
	def(PropFontFamily, "font-family", ClassInherited, func(c *Computed, raw string, _ *Computed) error {
		c.FontFamily = strings.Trim(strings.TrimSpace(raw), `"'`)
		return nil
	})
	def(PropLineHeight, "line-height", ClassInherited, func(c *Computed, raw string, _ *Computed) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || f <= 0 {
			return errors.Newf("line-height %q: want a positive multiplier", raw)
		}
		c.Layout.LineHeight = f
		return nil
	})
	def(PropTextAlign, "text-align", ClassInherited, enumSetter(func(c *Computed) *TextAlign { return &c.TextAlign },
		map[string]TextAlign{"start": TextAlignStart, "center": TextAlignCenter, "end": TextAlignEnd}))

	def(PropBackground, "background", ClassPaint, colorSetter(func(c *Computed) *Color { return &c.Background }))
	def(PropBorderColor, "border-color", ClassPaint, colorSetter(func(c *Computed) *Color { return &c.BorderColor }))
	def(PropOpacity, "opacity", ClassPaint, func(c *Computed, raw string, _ *Computed) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || f < 0 || f > 1 {
			return errors.Newf("opacity %q: want a number in [0, 1]", raw)
		}
		c.Opacity = f
		return nil
	})
	def(PropCornerRadius, "corner-radius", ClassPaint, func(c *Computed, raw string, _ *Computed) error {
		v, err := layout.ParseValue(raw)
		if err != nil {
			return err
		}
		c.CornerRadius = v.Resolve(0, c.Layout.FontSize, 0)
		return nil
	})

	def(PropDisplay, "display", ClassLayout, enumSetter(func(c *Computed) *layout.Display { return &c.Layout.Display },
		map[string]layout.Display{"flex": layout.DisplayFlex, "none": layout.DisplayNone}))
	def(PropDirection, "direction", ClassLayout, enumSetter(func(c *Computed) *layout.Direction { return &c.Layout.Direction },
		map[string]layout.Direction{
			"row": layout.Row, "column": layout.Column,
			"row-reverse": layout.RowReverse, "column-reverse": layout.ColumnReverse,
		}))
	def(PropWidth, "width", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.Width }))
	def(PropHeight, "height", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.Height }))
	def(PropMinWidth, "min-width", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.MinWidth }))
	def(PropMinHeight, "min-height", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.MinHeight }))
	def(PropMaxWidth, "max-width", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.MaxWidth }))
	def(PropMaxHeight, "max-height", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.MaxHeight }))
	def(PropFlexBasis, "flex-basis", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.FlexBasis }))
	def(PropGap, "gap", ClassLayout, lengthSetter(func(c *Computed) *layout.Value { return &c.Layout.Gap }))
	def(PropJustifyContent, "justify-content", ClassLayout, enumSetter(func(c *Computed) *layout.Justify { return &c.Layout.JustifyContent },
		map[string]layout.Justify{
			"start": layout.JustifyStart, "end": layout.JustifyEnd, "center": layout.JustifyCenter,
			"space-between": layout.JustifySpaceBetween, "space-around": layout.JustifySpaceAround,
			"space-evenly": layout.JustifySpaceEvenly,
		}))
	aligns := map[string]layout.Align{
		"auto": layout.AlignAuto, "start": layout.AlignStart, "end": layout.AlignEnd,
		"center": layout.AlignCenter, "stretch": layout.AlignStretch,
	}
	def(PropAlignItems, "align-items", ClassLayout, enumSetter(func(c *Computed) *layout.Align { return &c.Layout.AlignItems }, aligns))
	def(PropAlignSelf, "align-self", ClassLayout, enumSetter(func(c *Computed) *layout.Align { return &c.Layout.AlignSelf }, aligns))
	def(PropOverflow, "overflow", ClassLayout, enumSetter(func(c *Computed) *layout.Overflow { return &c.Layout.Overflow },
		map[string]layout.Overflow{"visible": layout.OverflowVisible, "clip": layout.OverflowClip, "scroll": layout.OverflowScroll}))
	def(PropMarginTop, "margin-top", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Margin.Top }))
	def(PropMarginRight, "margin-right", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Margin.Right }))
	def(PropMarginBottom, "margin-bottom", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Margin.Bottom }))
	def(PropMarginLeft, "margin-left", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Margin.Left }))
	def(PropPaddingTop, "padding-top", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Padding.Top }))
	def(PropPaddingRight, "padding-right", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Padding.Right }))
	def(PropPaddingBottom, "padding-bottom", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Padding.Bottom }))
	def(PropPaddingLeft, "padding-left", ClassLayout, edgeSetter(func(c *Computed) *float64 { return &c.Layout.Padding.Left }))
	def(PropBorderWidth, "border-width", ClassLayout, func(c *Computed, raw string, _ *Computed) error {
		v, err := layout.ParseValue(raw)
		if err != nil {
			return err
		}
		if v.Unit != layout.UnitPx && v.Unit != layout.UnitEm {
			return errors.Newf("border-width %q: want an absolute length", raw)
		}
		c.Layout.Border = layout.EdgeAll(v.Resolve(0, c.Layout.FontSize, 0))
		return nil
	})
}

func (p Property) String() string {
	if p < numProps {
		return props[p].name
	}
	return "property(" + strconv.Itoa(int(p)) + ")"
}

// Class returns what a change to p invalidates.
func (p Property) Class() Class {
	return props[p].class
}

// Inherited reports whether unset values take the parent's value.
func (p Property) Inherited() bool {
	return props[p].class == ClassInherited
}

// LookupProperty returns the property with the given CSS name.
func LookupProperty(name string) (Property, bool) {
	p, ok := propsByName[name]
	return p, ok
}

func colorSetter(field func(*Computed) *Color) func(*Computed, string, *Computed) error {
	return func(c *Computed, raw string, _ *Computed) error {
		col, err := ParseColor(raw)
		if err != nil {
			return err
		}
		*field(c) = col
		return nil
	}
}

func lengthSetter(field func(*Computed) *layout.Value) func(*Computed, string, *Computed) error {
	return func(c *Computed, raw string, _ *Computed) error {
		v, err := layout.ParseValue(raw)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

// edgeSetter resolves spacing to an absolute length at cascade time. Em
// values use the node's own font size.
func edgeSetter(field func(*Computed) *float64) func(*Computed, string, *Computed) error {
	return func(c *Computed, raw string, _ *Computed) error {
		v, err := layout.ParseValue(raw)
		if err != nil {
			return err
		}
		switch v.Unit {
		case layout.UnitPx, layout.UnitEm:
			*field(c) = v.Resolve(0, c.Layout.FontSize, 0)
			return nil
		default:
			return errors.Newf("spacing %q: want an absolute length", raw)
		}
	}
}

func enumSetter[E any](field func(*Computed) *E, values map[string]E) func(*Computed, string, *Computed) error {
	return func(c *Computed, raw string, _ *Computed) error {
		v, ok := values[strings.TrimSpace(raw)]
		if !ok {
			return errors.Newf("unknown keyword %q", raw)
		}
		*field(c) = v
		return nil
	}
}
