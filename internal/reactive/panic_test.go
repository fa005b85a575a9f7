package reactive

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestWrite_PanicCommitsInvalidation(t *testing.T) {
	type tc struct {
		write func(c *Cell[int])
		want  int
	}

	tests := map[string]tc{
		"update panics before producing a value": {
			write: func(c *Cell[int]) {
				_ = c.Update(func(int) int { panic("update") })
			},
			want: 1,
		},
		"mutate panics after touching the copy": {
			write: func(c *Cell[int]) {
				_ = c.Mutate(func(v *int) {
					*v = 99
					panic("mutate")
				})
			},
			want: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGraph()
			c := NewCell(g, nil, 1)
			comp := g.NewComputation(nil, "reader")
			run(g, comp, func(r Reader) { c.Read(r) })

			require.Panics(t, func() { tt.write(c) })

			require.Equal(t, tt.want, c.Get())
			require.Equal(t, uint64(1), c.Generation())
			require.Equal(t, []CompID{comp}, g.TakePending())

			// The graph is still usable after the panic.
			require.NoError(t, c.Set(5))
			require.Equal(t, 5, c.Get())
		})
	}
}

// TestWrite_PanicSafetyUnderConcurrency runs writers that randomly panic
// mid-write alongside readers. A reader must never observe a value older
// than the last write that completed before the read started.
func TestWrite_PanicSafetyUnderConcurrency(t *testing.T) {
	const (
		cells   = 8
		writers = 6
		readers = 4
		rounds  = 2000
	)

	g := NewGraph()
	vars := make([]*Cell[int64], cells)
	floors := make([]atomic.Int64, cells)
	for i := range vars {
		vars[i] = NewCell(g, nil, int64(0))
	}
	var attempts atomic.Uint64
	var writing atomic.Int32
	writing.Store(writers)

	var eg errgroup.Group
	for w := 0; w < writers; w++ {
		rng := rand.New(rand.NewPCG(uint64(w), 42))
		eg.Go(func() error {
			defer writing.Add(-1)
			for i := 0; i < rounds; i++ {
				idx := rng.IntN(cells)
				explode := rng.IntN(4) == 0
				var wrote int64
				func() {
					defer func() { _ = recover() }()
					attempts.Add(1)
					_ = vars[idx].Update(func(v int64) int64 {
						if explode {
							panic("writer")
						}
						wrote = v + 1
						return wrote
					})
				}()
				if explode {
					continue
				}
				for {
					cur := floors[idx].Load()
					if cur >= wrote || floors[idx].CompareAndSwap(cur, wrote) {
						break
					}
				}
			}
			return nil
		})
	}
	for r := 0; r < readers; r++ {
		rng := rand.New(rand.NewPCG(uint64(r), 7))
		eg.Go(func() error {
			for writing.Load() > 0 {
				idx := rng.IntN(cells)
				floor := floors[idx].Load()
				if got := vars[idx].Get(); got < floor {
					t.Errorf("cell %d read %d, older than completed write %d", idx, got, floor)
					return nil
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	var gens uint64
	for i := range vars {
		gens += vars[i].Generation()
		require.Equal(t, floors[i].Load(), vars[i].Get())
	}
	// Every attempt, panicking or not, committed exactly once.
	require.Equal(t, attempts.Load(), gens)
	require.Equal(t, attempts.Load(), g.WriteCount())
}
