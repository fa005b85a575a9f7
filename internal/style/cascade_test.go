package style

import (
	"testing"

	"github.com/grindlemire/weft/internal/layout"
	"github.com/stretchr/testify/require"
)

// resolveChain resolves every node of a root-to-leaf chain in turn and
// returns the leaf's result.
func resolveChain(c *Cascade, chain []Elem, sheets [][]string, inline []Decl) Result {
	var parent *Computed
	var res Result
	for i := range chain {
		in := Input{Chain: chain[:i+1], Sheets: sheets[:min(i+1, len(sheets))], Parent: parent}
		if i == len(chain)-1 {
			in.Inline = inline
		}
		res = c.Resolve(in)
		computed := res.Computed
		parent = &computed
	}
	return res
}

func TestCascade_ScopedOverride(t *testing.T) {
	reg := NewRegistry(
		Sheet{Name: "root", Rules: []Rule{MustRule("*", "color", "red")}},
		Sheet{Name: "child", Rules: []Rule{MustRule("*", "color", "blue")}},
	)
	c := NewCascade(reg)
	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)

	type tc struct {
		chain    []Elem
		sheets   [][]string
		expected Color
	}

	tests := map[string]tc{
		"root itself": {
			chain:    []Elem{{Kind: "app"}},
			sheets:   [][]string{{"root"}},
			expected: red,
		},
		"child carrying the deeper sheet": {
			chain:    []Elem{{Kind: "app"}, {Kind: "panel"}},
			sheets:   [][]string{{"root"}, {"child"}},
			expected: blue,
		},
		"descendant of the child": {
			chain:    []Elem{{Kind: "app"}, {Kind: "panel"}, {Kind: "label"}},
			sheets:   [][]string{{"root"}, {"child"}, nil},
			expected: blue,
		},
		"sibling outside the child's scope": {
			chain:    []Elem{{Kind: "app"}, {Kind: "label"}},
			sheets:   [][]string{{"root"}, nil},
			expected: red,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := resolveChain(c, tt.chain, tt.sheets, nil)
			require.Equal(t, tt.expected, res.Computed.Color)
		})
	}
}

func TestCascade_Precedence(t *testing.T) {
	type tc struct {
		rootRules  []Rule
		childRules []Rule
		inline     []Decl
		expected   string
	}

	green := "#008000"
	tests := map[string]tc{
		"specificity beats depth": {
			rootRules:  []Rule{MustRule("label", "color", "green")},
			childRules: []Rule{MustRule("*", "color", "blue")},
			expected:   green,
		},
		"later rule wins a tie in one sheet": {
			rootRules: []Rule{
				MustRule("label", "color", "blue"),
				MustRule("label", "color", "green"),
			},
			expected: green,
		},
		"class beats kind": {
			rootRules: []Rule{
				MustRule(".title", "color", "green"),
				MustRule("label", "color", "blue"),
			},
			expected: green,
		},
		"child combinator": {
			rootRules: []Rule{
				MustRule("panel > label", "color", "green"),
				MustRule("app > label", "color", "blue"),
			},
			expected: green,
		},
		"inline beats everything": {
			rootRules: []Rule{MustRule("panel label.title", "color", "blue")},
			inline:    MustDeclare("color", "green"),
			expected:  green,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewCascade(NewRegistry(
				Sheet{Name: "root", Rules: tt.rootRules},
				Sheet{Name: "child", Rules: tt.childRules},
			))
			chain := []Elem{{Kind: "app"}, {Kind: "panel"}, {Kind: "label", Classes: []string{"title"}}}
			res := resolveChain(c, chain, [][]string{{"root"}, {"child"}}, tt.inline)
			require.Equal(t, tt.expected, res.Computed.Color.String())
		})
	}
}

func TestCascade_PseudoClasses(t *testing.T) {
	c := NewCascade(NewRegistry(Sheet{Name: "s", Rules: []Rule{
		MustRule("button", "background", "gray"),
		MustRule("button:hover", "background", "blue"),
		MustRule("button:disabled", "opacity", "0.5"),
		MustRule("button:enabled:active", "background", "red"),
	}}))
	resolve := func(p Pseudo) Computed {
		return c.Resolve(Input{
			Chain:  []Elem{{Kind: "button", Pseudo: p}},
			Sheets: [][]string{{"s"}},
		}).Computed
	}

	require.Equal(t, "#808080", resolve(0).Background.String())
	require.Equal(t, "#0000ff", resolve(PseudoHover).Background.String())
	require.Equal(t, "#ff0000", resolve(PseudoActive).Background.String())
	disabled := resolve(PseudoDisabled | PseudoActive)
	require.Equal(t, "#808080", disabled.Background.String())
	require.Equal(t, 0.5, disabled.Opacity)
}

func TestCascade_InheritanceAndDefaults(t *testing.T) {
	c := NewCascade(NewRegistry(Sheet{Name: "s", Rules: []Rule{
		MustRule("app", "font-size", "20px", "background", "white", "padding", "4px"),
		MustRule("label", "font-size", "1.5em", "margin", "1em 0"),
	}}))

	chain := []Elem{{Kind: "app"}, {Kind: "panel"}, {Kind: "label"}}
	sheets := [][]string{{"s"}}

	panel := resolveChain(c, chain[:2], sheets, nil).Computed
	require.Equal(t, 20.0, panel.Layout.FontSize, "font size is inherited")
	require.Equal(t, Transparent, panel.Background, "background is not inherited")
	require.Equal(t, layout.Edges{}, panel.Layout.Padding, "padding is not inherited")

	label := resolveChain(c, chain, sheets, nil).Computed
	require.Equal(t, 30.0, label.Layout.FontSize)
	require.Equal(t, layout.EdgeSymmetric(30, 0), label.Layout.Margin, "em spacing uses the node's own font size")
}

func TestCascade_Fallbacks(t *testing.T) {
	c := NewCascade(NewRegistry(Sheet{Name: "s", Rules: []Rule{
		MustRule("app", "color", "blue"),
		MustRule("label", "color", "not-a-colour", "width", "wide", "opacity", "0.3"),
	}}))

	res := resolveChain(c, []Elem{{Kind: "app"}, {Kind: "label"}}, [][]string{{"s"}}, nil)
	require.Equal(t, 2, res.Fallbacks)
	require.Equal(t, RGB(0, 0, 255), res.Computed.Color, "bad inherited value falls back to the parent's")
	require.Equal(t, layout.Auto(), res.Computed.Layout.Width, "bad box value falls back to the default")
	require.Equal(t, 0.3, res.Computed.Opacity)

	missing := c.Resolve(Input{Chain: []Elem{{Kind: "app"}}, Sheets: [][]string{{"nope"}}})
	require.Equal(t, 1, missing.MissingSheets)
	require.Equal(t, Default(), missing.Computed)
}

func TestDiff(t *testing.T) {
	type tc struct {
		mutate   func(c *Computed)
		expected Change
	}

	tests := map[string]tc{
		"no change": {
			mutate:   func(*Computed) {},
			expected: 0,
		},
		"colour is inherited and paint": {
			mutate:   func(c *Computed) { c.Color = RGB(1, 2, 3) },
			expected: ChangeInherited | ChangePaint,
		},
		"font size also moves boxes": {
			mutate:   func(c *Computed) { c.Layout.FontSize = 30 },
			expected: ChangeInherited | ChangePaint | ChangeLayout,
		},
		"width is layout only": {
			mutate:   func(c *Computed) { c.Layout.Width = layout.Px(10) },
			expected: ChangeLayout,
		},
		"background is paint only": {
			mutate:   func(c *Computed) { c.Background = RGB(9, 9, 9) },
			expected: ChangePaint,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			next := Default()
			tt.mutate(&next)
			if got := Diff(Default(), next); got != tt.expected {
				t.Errorf("Diff() = %03b, want %03b", got, tt.expected)
			}
		})
	}
}

func TestRegistry_Replace(t *testing.T) {
	reg := NewRegistry(Sheet{Name: "app", Rules: []Rule{MustRule("*", "color", "red")}})
	v := reg.Version("app")

	require.NoError(t, reg.Replace("app", []Rule{MustRule("*", "color", "blue")}))
	require.Equal(t, v+1, reg.Version("app"))

	res := NewCascade(reg).Resolve(Input{Chain: []Elem{{Kind: "x"}}, Sheets: [][]string{{"app"}}})
	require.Equal(t, RGB(0, 0, 255), res.Computed.Color)

	err := reg.Replace("missing", nil)
	require.ErrorIs(t, err, ErrUnknownSheet)
	require.Equal(t, []string{"app"}, reg.Names())
}
