// style.go re-exports style types from internal/style.
package weft

import "github.com/grindlemire/weft/internal/style"

// Sheet is a named, ordered list of rules. A sheet attached to a node
// applies to it and its descendants.
type Sheet = style.Sheet

// Rule pairs a selector with declarations.
type Rule = style.Rule

// Decl is one property declaration.
type Decl = style.Decl

// Computed is a node's resolved style.
type Computed = style.Computed

// Color is an RGB colour with alpha.
type Color = style.Color

// Pseudo is a set of interaction states.
type Pseudo = style.Pseudo

const (
	PseudoHover    = style.PseudoHover
	PseudoFocus    = style.PseudoFocus
	PseudoActive   = style.PseudoActive
	PseudoDisabled = style.PseudoDisabled
)

// NewRule builds a rule from a selector and property/value pairs.
func NewRule(selector string, pairs ...string) (Rule, error) {
	return style.NewRule(selector, pairs...)
}

// MustRule is NewRule that panics on error.
func MustRule(selector string, pairs ...string) Rule {
	return style.MustRule(selector, pairs...)
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return style.RGB(r, g, b)
}

// ParseColor parses a colour name or a #rgb, #rrggbb or #rrggbbaa value.
func ParseColor(s string) (Color, error) {
	return style.ParseColor(s)
}

// ParseSheets decodes sheets in the YAML resource format.
func ParseSheets(data []byte) ([]Sheet, error) {
	return style.ParseSheets(data)
}

// LoadSheetFile reads the sheets in a YAML resource file.
func LoadSheetFile(path string) ([]Sheet, error) {
	return style.LoadSheetFile(path)
}
