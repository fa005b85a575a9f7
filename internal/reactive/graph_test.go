package reactive

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// run executes fn as one tracked run of comp and commits its reads.
func run(g *Graph, comp CompID, fn func(r Reader)) bool {
	t := g.Track(comp)
	fn(t)
	return t.Commit()
}

func TestGraph_MinimalInvalidation(t *testing.T) {
	type tc struct {
		write    string
		expected []string
	}

	tests := map[string]tc{
		"write to x wakes only its reader": {
			write:    "x",
			expected: []string{"readsX", "readsBoth"},
		},
		"write to y wakes only its reader": {
			write:    "y",
			expected: []string{"readsY", "readsBoth"},
		},
		"write to an unread cell wakes nothing": {
			write:    "z",
			expected: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGraph()
			cells := map[string]*Cell[int]{
				"x": NewCell(g, nil, 1),
				"y": NewCell(g, nil, 2),
				"z": NewCell(g, nil, 3),
			}
			comps := map[string]CompID{}
			for _, label := range []string{"readsX", "readsY", "readsBoth"} {
				comps[label] = g.NewComputation(nil, label)
			}
			run(g, comps["readsX"], func(r Reader) { cells["x"].Read(r) })
			run(g, comps["readsY"], func(r Reader) { cells["y"].Read(r) })
			run(g, comps["readsBoth"], func(r Reader) {
				cells["x"].Read(r)
				cells["y"].Read(r)
			})

			inv, err := cells[tt.write].SetInvalidation(10)
			require.NoError(t, err)

			var want []CompID
			for _, label := range tt.expected {
				want = append(want, comps[label])
			}
			require.ElementsMatch(t, want, inv.Comps)
			require.Equal(t, len(want) > 0, g.Pending())
			require.ElementsMatch(t, want, g.TakePending())
			require.False(t, g.Pending())
		})
	}
}

func TestGraph_EdgesReplacedEachRun(t *testing.T) {
	g := NewGraph()
	flag := NewCell(g, nil, true)
	a := NewCell(g, nil, "a")
	b := NewCell(g, nil, "b")
	comp := g.NewComputation(nil, "branch")

	body := func(r Reader) {
		if flag.Read(r) {
			a.Read(r)
		} else {
			b.Read(r)
		}
	}
	run(g, comp, body)
	require.Equal(t, []SourceID{flag.ID(), a.ID()}, g.Dependencies(comp))

	require.NoError(t, flag.Set(false))
	require.Equal(t, []CompID{comp}, g.TakePending())
	run(g, comp, body)
	require.Equal(t, []SourceID{flag.ID(), b.ID()}, g.Dependencies(comp))

	// The branch no longer taken must not wake the computation.
	inv, err := a.SetInvalidation("a2")
	require.NoError(t, err)
	require.True(t, inv.Empty())
	require.False(t, g.Pending())
}

func TestGraph_UntrackedReadRegistersNothing(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, nil, 1)
	comp := g.NewComputation(nil, "untracked")
	run(g, comp, func(Reader) { _ = c.Get() })

	inv, err := c.SetInvalidation(2)
	require.NoError(t, err)
	require.True(t, inv.Empty())
	require.Empty(t, g.Dependents(c.ID()))
}

func TestGraph_GenerationAndWriteCount(t *testing.T) {
	g := NewGraph()
	c := NewCellEq(g, nil, 1)

	require.NoError(t, c.Set(2))
	require.NoError(t, c.Set(2))
	require.NoError(t, c.Update(func(v int) int { return v + 1 }))

	if got := c.Generation(); got != 2 {
		t.Errorf("Generation() = %d, want 2", got)
	}
	if got := g.WriteCount(); got != 2 {
		t.Errorf("WriteCount() = %d, want 2", got)
	}
	if got := c.Get(); got != 3 {
		t.Errorf("Get() = %d, want 3", got)
	}
}

func TestGraph_StaleReadRequeues(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, nil, 1)
	comp := g.NewComputation(nil, "racy")

	tr := g.Track(comp)
	c.Read(tr)
	// A write between the read and the commit cannot see the edge yet.
	inv, err := c.SetInvalidation(2)
	require.NoError(t, err)
	require.True(t, inv.Empty())

	require.True(t, tr.Commit())
	require.Equal(t, []CompID{comp}, g.TakePending())

	// The rerun reads the fresh generation and settles.
	require.False(t, run(g, comp, func(r Reader) { c.Read(r) }))
	require.False(t, g.Pending())
}

func TestGraph_CommitUnionKeepsPreviousEdges(t *testing.T) {
	g := NewGraph()
	a := NewCell(g, nil, 1)
	b := NewCell(g, nil, 2)
	comp := g.NewComputation(nil, "failing")

	run(g, comp, func(r Reader) { a.Read(r) })
	tr := g.Track(comp)
	b.Read(tr)
	tr.CommitUnion()

	require.Equal(t, []SourceID{a.ID(), b.ID()}, g.Dependencies(comp))
}

func TestGraph_NotifyOncePerTransition(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, nil, 0)
	comp := g.NewComputation(nil, "reader")
	run(g, comp, func(r Reader) { c.Read(r) })

	require.NoError(t, c.Set(1))
	require.NoError(t, c.Set(2))

	received := 0
	for done := false; !done; {
		select {
		case <-g.Notify():
			received++
		default:
			done = true
		}
	}
	require.Equal(t, 1, received)

	g.TakePending()
	require.NoError(t, c.Set(3))
	select {
	case <-g.Notify():
	default:
		t.Fatal("Notify() did not fire after the pending set emptied and refilled")
	}
}

func TestGraph_DropComputation(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, nil, 0)
	comp := g.NewComputation(nil, "dropped")
	run(g, comp, func(r Reader) { c.Read(r) })
	require.NoError(t, c.Set(1))
	require.True(t, g.Pending())

	g.DropComputation(comp)
	require.False(t, g.Pending())
	require.Empty(t, g.Dependents(c.ID()))

	// Committing a run of a dropped computation is ignored.
	tr := g.Track(comp)
	c.Read(tr)
	require.False(t, tr.Commit())
	require.Empty(t, g.Dependents(c.ID()))
}

func TestGraph_WriteUnknownSource(t *testing.T) {
	g := NewGraph()
	_, err := g.Write(SourceID(99), func() bool { return true })
	require.True(t, errors.Is(err, ErrUnknownSource), "err = %v", err)
}
