package style

import "github.com/grindlemire/weft/internal/layout"

// TextAlign positions lines of text within the content box.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
)

// Computed is the resolved style of one node. It is a value type and safe
// to compare with ==.
type Computed struct {
	// Layout carries every box property plus font size and line height.
	Layout layout.Style

	Color        Color
	FontFamily   string
	TextAlign    TextAlign
	Background   Color
	BorderColor  Color
	Opacity      float64
	CornerRadius float64
}

// Default returns the style of a node that no rule matches and that has no
// parent.
func Default() Computed {
	return Computed{
		Layout:      layout.DefaultStyle(),
		Color:       RGB(0, 0, 0),
		FontFamily:  "sans-serif",
		Background:  Transparent,
		BorderColor: Transparent,
		Opacity:     1,
	}
}

// initial returns the starting point for a node whose parent resolved to
// parent: defaults for every property, with inherited ones copied from the
// parent.
func initial(parent *Computed) Computed {
	c := Default()
	if parent != nil {
		c.inheritFrom(parent)
	}
	return c
}

func (c *Computed) inheritFrom(parent *Computed) {
	c.Color = parent.Color
	c.Layout.FontSize = parent.Layout.FontSize
	c.FontFamily = parent.FontFamily
	c.Layout.LineHeight = parent.Layout.LineHeight
	c.TextAlign = parent.TextAlign
}

// Change is a bit set describing what differs between two resolutions.
type Change uint8

const (
	ChangeInherited Change = 1 << iota // descendants must be restyled
	ChangeLayout                       // boxes must be re-solved
	ChangePaint                        // display list must be re-emitted
)

// Diff classifies the differences between old and next.
func Diff(old, next Computed) Change {
	var ch Change
	if old.Color != next.Color || old.FontFamily != next.FontFamily || old.TextAlign != next.TextAlign ||
		old.Layout.FontSize != next.Layout.FontSize || old.Layout.LineHeight != next.Layout.LineHeight {
		ch |= ChangeInherited | ChangePaint
		// Font metrics move text and Em lengths.
		if old.Layout.FontSize != next.Layout.FontSize || old.Layout.LineHeight != next.Layout.LineHeight {
			ch |= ChangeLayout
		}
	}
	if old.Layout != next.Layout {
		ch |= ChangeLayout
	}
	if old.Background != next.Background || old.BorderColor != next.BorderColor ||
		old.Opacity != next.Opacity || old.CornerRadius != next.CornerRadius {
		ch |= ChangePaint
	}
	return ch
}
