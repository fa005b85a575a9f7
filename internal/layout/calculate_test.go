package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCalculate_StretchWeights(t *testing.T) {
	type tc struct {
		container float64
		weights   []float64
		expected  []float64
	}

	tests := map[string]tc{
		"1:1:2 in 400": {
			container: 400,
			weights:   []float64{1, 1, 2},
			expected:  []float64{100, 100, 200},
		},
		"equal weights": {
			container: 300,
			weights:   []float64{1, 1, 1},
			expected:  []float64{100, 100, 100},
		},
		"single item takes everything": {
			container: 250,
			weights:   []float64{3},
			expected:  []float64{250},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var children []*testNode
			for _, w := range tt.weights {
				children = append(children, item(Stretch(w)))
			}
			root := row(tt.container, 100, children...)
			Calculate(root, 1000, 1000)

			if diff := cmp.Diff(tt.expected, widths(children...)); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
			x := 0.0
			for i, c := range children {
				if c.layout.Rect.X != x {
					t.Errorf("child %d X = %v, want %v", i, c.layout.Rect.X, x)
				}
				if c.layout.Rect.Height != 100 {
					t.Errorf("child %d Height = %v, want 100 (stretched)", i, c.layout.Rect.Height)
				}
				x += c.layout.Rect.Width
			}
		})
	}
}

func TestCalculate_FixedAndStretch(t *testing.T) {
	fixed := item(Px(30))
	grow := item(Stretch(1))
	pct := item(Percent(10))
	root := row(200, 20, fixed, grow, pct)
	root.style.Gap = Px(5)

	Calculate(root, 1000, 1000)

	// 200 - 30 - 20 - 2*5 = 140
	require.Equal(t, []float64{30, 140, 20}, widths(fixed, grow, pct))
	require.Equal(t, 35.0, grow.layout.Rect.X)
	require.Equal(t, 180.0, pct.layout.Rect.X)
}

func TestCalculate_FlexBasis(t *testing.T) {
	a := item(Stretch(1))
	a.style.FlexBasis = Px(50)
	b := item(Stretch(1))
	root := row(250, 10, a, b)

	Calculate(root, 1000, 1000)

	// free = 250 - 50 = 200, shared 100/100 on top of the bases
	require.Equal(t, []float64{150, 100}, widths(a, b))
}

func TestCalculate_MinMaxRedistribution(t *testing.T) {
	type tc struct {
		setup    func(items []*testNode)
		expected []float64
	}

	tests := map[string]tc{
		"max clamp gives slack to siblings": {
			setup: func(items []*testNode) {
				items[0].style.MaxWidth = Px(50)
			},
			expected: []float64{50, 125, 125},
		},
		"min clamp takes space from siblings": {
			setup: func(items []*testNode) {
				items[0].style.MinWidth = Px(150)
			},
			expected: []float64{150, 75, 75},
		},
		"net negative violation freezes max violators first": {
			setup: func(items []*testNode) {
				items[0].style.MinWidth = Px(120)
				items[1].style.MaxWidth = Px(40)
			},
			expected: []float64{130, 40, 130},
		},
		"net positive violation freezes min violators first": {
			setup: func(items []*testNode) {
				items[0].style.MinWidth = Px(180)
				items[1].style.MaxWidth = Px(90)
			},
			// Round 1: 100 each, a -> 180 (+80), b -> 90 (-10). Total +70,
			// so a is frozen. Round 2: 120 left, 60 each, b fits.
			expected: []float64{180, 60, 60},
		},
		"every item clamped": {
			setup: func(items []*testNode) {
				for _, it := range items {
					it.style.MaxWidth = Px(20)
				}
			},
			expected: []float64{20, 20, 20},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			items := []*testNode{item(Stretch(1)), item(Stretch(1)), item(Stretch(1))}
			tt.setup(items)
			root := row(300, 10, items...)

			Calculate(root, 1000, 1000)

			if diff := cmp.Diff(tt.expected, widths(items...)); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculate_OverflowPolicy(t *testing.T) {
	type tc struct {
		children func() []*testNode
		overflow bool
		expected []float64
	}

	tests := map[string]tc{
		"fixed children wider than container": {
			children: func() []*testNode { return []*testNode{item(Px(80)), item(Px(80))} },
			overflow: true,
			expected: []float64{80, 80},
		},
		"stretch item never shrinks below min": {
			children: func() []*testNode {
				a := item(Px(90))
				b := item(Stretch(1))
				b.style.MinWidth = Px(30)
				return []*testNode{a, b}
			},
			overflow: true,
			expected: []float64{90, 30},
		},
		"exact fit is not overflow": {
			children: func() []*testNode { return []*testNode{item(Px(50)), item(Px(50))} },
			overflow: false,
			expected: []float64{50, 50},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			children := tt.children()
			root := row(100, 10, children...)
			root.style.Overflow = OverflowClip

			st := Calculate(root, 1000, 1000)

			require.Equal(t, tt.overflow, root.layout.Overflow)
			require.Equal(t, tt.expected, widths(children...))
			if tt.overflow {
				require.Equal(t, 1, st.Overflows)
				require.Greater(t, root.layout.Extent.Width, root.layout.ContentRect.Width)
			}
		})
	}
}

func TestCalculate_Column(t *testing.T) {
	s := DefaultStyle()
	s.Direction = Column
	s.Width = Px(100)
	s.Height = Px(300)
	s.Padding = EdgeAll(10)
	root := newTestNode(s)

	top := newTestNode(DefaultStyle())
	top.style.Height = Px(40)
	rest := newTestNode(DefaultStyle())
	rest.style.Height = Stretch(1)
	root.AddChild(top, rest)

	Calculate(root, 1000, 1000)

	require.Equal(t, NewRect(10, 10, 80, 40), top.layout.Rect)
	require.Equal(t, NewRect(10, 50, 80, 240), rest.layout.Rect)
}

func TestCalculate_Reverse(t *testing.T) {
	a := item(Px(10))
	b := item(Px(20))
	root := row(100, 10, a, b)
	root.style.Direction = RowReverse

	Calculate(root, 1000, 1000)

	require.Equal(t, 90.0, a.layout.Rect.X)
	require.Equal(t, 70.0, b.layout.Rect.X)
}

func TestCalculate_JustifyAndAlign(t *testing.T) {
	type tc struct {
		justify Justify
		align   Align
		x       []float64
		y       float64
	}

	tests := map[string]tc{
		"start": {
			justify: JustifyStart, align: AlignStart,
			x: []float64{0, 20}, y: 0,
		},
		"end": {
			justify: JustifyEnd, align: AlignEnd,
			x: []float64{60, 80}, y: 40,
		},
		"center": {
			justify: JustifyCenter, align: AlignCenter,
			x: []float64{30, 50}, y: 20,
		},
		"space between": {
			justify: JustifySpaceBetween, align: AlignStart,
			x: []float64{0, 80}, y: 0,
		},
		"space evenly": {
			justify: JustifySpaceEvenly, align: AlignStart,
			x: []float64{20, 60}, y: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a, b := item(Px(20)), item(Px(20))
			a.style.Height = Px(10)
			b.style.Height = Px(10)
			root := row(100, 50, a, b)
			root.style.JustifyContent = tt.justify
			root.style.AlignItems = tt.align

			Calculate(root, 1000, 1000)

			require.Equal(t, tt.x, []float64{a.layout.Rect.X, b.layout.Rect.X})
			require.Equal(t, tt.y, a.layout.Rect.Y)
		})
	}
}

func TestCalculate_MarginsAndBorder(t *testing.T) {
	child := item(Stretch(1))
	child.style.Margin = EdgeTRBL(1, 2, 3, 4)
	root := row(100, 50, child)
	root.style.Border = EdgeAll(1)

	Calculate(root, 1000, 1000)

	require.Equal(t, NewRect(1, 1, 98, 48), root.layout.ContentRect)
	require.Equal(t, NewRect(5, 2, 92, 44), child.layout.Rect)
}

func TestCalculate_DisplayNone(t *testing.T) {
	a := item(Stretch(1))
	hidden := item(Px(50))
	hidden.style.Display = DisplayNone
	b := item(Stretch(1))
	root := row(100, 10, a, hidden, b)

	Calculate(root, 1000, 1000)

	require.Equal(t, []float64{50, 0, 50}, widths(a, hidden, b))
	require.Equal(t, 50.0, b.layout.Rect.X)
}

func TestCalculate_IntrinsicText(t *testing.T) {
	label := item(Auto())
	label.text = "hello"
	label.style.FontSize = 10
	label.style.Padding = EdgeSymmetric(0, 2)
	rest := item(Stretch(1))
	root := row(200, 40, label, rest)
	root.style.AlignItems = AlignStart

	Calculate(root, 1000, 1000)

	// 5 cells * 0.5 * 10 + 4 padding
	require.Equal(t, 29.0, label.layout.Rect.Width)
	// one line * 1.2 * 10
	require.InDelta(t, 12.0, label.layout.Rect.Height, 1e-9)
	require.Equal(t, 171.0, rest.layout.Rect.Width)
}

func TestCalculate_Baseline(t *testing.T) {
	s := DefaultStyle()
	s.Direction = Column
	s.Width = Px(100)
	s.Height = Px(100)
	s.Padding = EdgeAll(5)
	root := newTestNode(s)

	first := item(Auto())
	first.text = "abc"
	first.style.FontSize = 10
	second := item(Auto())
	second.text = "def"
	second.style.FontSize = 20
	root.AddChild(first, second)

	Calculate(root, 1000, 1000)

	require.Equal(t, 13.0, first.layout.Baseline)
	require.Equal(t, first.layout.Baseline, root.layout.Baseline)
	// second starts below first's 12-unit line box
	require.InDelta(t, 5+12+16, second.layout.Baseline, 1e-9)
}

func TestCalculate_Incremental(t *testing.T) {
	left := item(Stretch(1))
	right := item(Stretch(1))
	leaf := item(Px(10))
	left.AddChild(leaf)
	root := row(200, 100, left, right)

	st := Calculate(root, 1000, 1000)
	require.Equal(t, Stats{LaidOut: 4}, st)

	// Nothing changed: the root is skipped as a whole.
	st = Calculate(root, 1000, 1000)
	require.Equal(t, Stats{Skipped: 1}, st)

	// Dirty leaf: root, left and leaf are revisited, right is skipped.
	leaf.SetStyle(leaf.style)
	st = Calculate(root, 1000, 1000)
	require.Equal(t, Stats{LaidOut: 3, Skipped: 1}, st)

	// A sibling's weight change moves the other sibling's slot.
	right.style.Width = Stretch(3)
	right.markDirty()
	st = Calculate(root, 1000, 1000)
	require.Equal(t, 50.0, left.layout.Rect.Width)
	require.Equal(t, 150.0, right.layout.Rect.Width)
	require.Equal(t, Stats{LaidOut: 3, Skipped: 1}, st)
}

func TestCalculate_Deterministic(t *testing.T) {
	build := func() (*testNode, []*testNode) {
		items := []*testNode{item(Stretch(1)), item(Stretch(3)), item(Stretch(7))}
		items[1].style.MaxWidth = Px(101.3)
		return row(333.3, 17, items...), items
	}
	r1, a := build()
	r2, b := build()
	Calculate(r1, 1000, 1000)
	Calculate(r2, 1000, 1000)

	for i := range a {
		if a[i].layout != b[i].layout {
			t.Errorf("child %d layouts differ: %+v vs %+v", i, a[i].layout, b[i].layout)
		}
	}
}

func TestParseValue(t *testing.T) {
	type tc struct {
		input    string
		expected Value
		wantErr  bool
	}

	tests := map[string]tc{
		"auto":     {input: "auto", expected: Auto()},
		"bare":     {input: "12", expected: Px(12)},
		"px":       {input: "12.5px", expected: Px(12.5)},
		"percent":  {input: "50%", expected: Percent(50)},
		"em":       {input: "1.5em", expected: Em(1.5)},
		"stretch":  {input: "2s", expected: Stretch(2)},
		"garbage":  {input: "wide", wantErr: true},
		"negative": {input: "-1s", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
			require.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseValue(s)
	require.NoError(t, err)
	return v
}
