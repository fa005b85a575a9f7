package reactive

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestScope_WriteAfterClose(t *testing.T) {
	type tc struct {
		write func(c *Cell[int]) error
	}

	tests := map[string]tc{
		"set": {
			write: func(c *Cell[int]) error { return c.Set(2) },
		},
		"update": {
			write: func(c *Cell[int]) error { return c.Update(func(v int) int { return v + 1 }) },
		},
		"mutate": {
			write: func(c *Cell[int]) error { return c.Mutate(func(v *int) { *v = 7 }) },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGraph()
			scope := g.NewScope()
			c := NewCell(g, scope, 1)
			scope.Close()

			err := tt.write(c)
			require.True(t, errors.Is(err, ErrScopeEnded), "err = %v", err)
			require.False(t, c.Alive())
			require.Equal(t, 1, c.Get())
		})
	}
}

func TestScope_CloseInvalidatesReaders(t *testing.T) {
	g := NewGraph()
	scope := g.NewScope()
	c := NewCell(g, scope, 1)
	outside := g.NewComputation(nil, "outside")
	run(g, outside, func(r Reader) { c.Read(r) })

	scope.Close()
	require.Equal(t, []CompID{outside}, g.TakePending())
	require.Empty(t, g.Dependencies(outside))
}

func TestScope_CloseDropsComputationsAndChildren(t *testing.T) {
	g := NewGraph()
	root := g.NewScope()
	child := root.Child()
	c := NewCell(g, nil, 0)
	inner := g.NewComputation(child, "inner")
	run(g, inner, func(r Reader) { c.Read(r) })

	root.Close()
	require.True(t, child.Closed())
	require.Empty(t, g.Dependents(c.ID()))

	// Cells created in a closed scope are born dead.
	late := NewCell(g, child, 0)
	require.True(t, errors.Is(late.Set(1), ErrScopeEnded))

	// Idempotent.
	root.Close()
	sources, comps := g.Stats()
	require.Equal(t, 1, sources)
	require.Equal(t, 0, comps)
}
