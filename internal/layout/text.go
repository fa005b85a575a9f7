package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CellAdvance is the horizontal advance of one terminal-width cell of text,
// in multiples of the font size.
const CellAdvance = 0.5

// BaselineRatio is the distance from the top of a line box to its
// baseline, in multiples of the font size.
const BaselineRatio = 0.8

// MeasureText returns the size of s set at fontSize with the given line
// height multiplier. Lines are split on '\n' only; wrapping is left to the
// caller.
func MeasureText(s string, fontSize, lineHeight float64) Size {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	if s == "" {
		return Size{}
	}
	widest := 0
	lines := 0
	for line := range strings.SplitSeq(s, "\n") {
		lines++
		widest = max(widest, runewidth.StringWidth(line))
	}
	return Size{
		Width:  float64(widest) * CellAdvance * fontSize,
		Height: float64(lines) * lineHeight * fontSize,
	}
}
