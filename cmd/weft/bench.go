package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type benchT struct {
	frames      int
	concurrency int
	mode        string
	height      int
}

func newBenchCommand() *cobra.Command {
	b := &benchT{}
	cmd := &cobra.Command{
		Use:   "bench <scene>",
		Short: "measure frame times for a scene",
		Long: `
Run frames of a scene and report frame time percentiles. Each frame is
forced by one kind of change:

  rebuild   a variable the root reads changes, so the whole view rebuilds
  restyle   the root sheets are reloaded, so every node restyles
  layout    the viewport width changes, so every node is laid out again

With --concurrency above one, that many sessions run side by side.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(args[0])
			if err != nil {
				return err
			}
			return b.run(cmd.Context(), cmd.OutOrStdout(), sc)
		},
	}
	cmd.Flags().IntVar(&b.frames, "frames", 1000, "frames to run per session")
	cmd.Flags().IntVar(&b.concurrency, "concurrency", 1, "sessions to run at once")
	cmd.Flags().StringVar(&b.mode, "mode", "rebuild", "change forcing each frame: rebuild, restyle or layout")
	cmd.Flags().IntVar(&b.height, "graph-height", 10, "height of the frame time graph, 0 for none")
	return cmd
}

func (b *benchT) run(ctx context.Context, w io.Writer, sc *scene) error {
	if b.frames < 1 || b.concurrency < 1 {
		return errors.New("frames and concurrency must be at least 1")
	}
	switch b.mode {
	case "rebuild", "restyle", "layout":
	default:
		return errors.Newf("unknown mode %q", b.mode)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([][]time.Duration, b.concurrency)
	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for i := range b.concurrency {
		g.Go(func() error {
			d, err := b.session(ctx, sc)
			results[i] = d
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	hist := hdrhistogram.New(1, int64(10*time.Second/time.Microsecond), 2)
	var first []float64
	for i, r := range results {
		for _, d := range r {
			_ = hist.RecordValue(max(1, d.Microseconds()))
			if i == 0 {
				first = append(first, float64(d.Microseconds()))
			}
		}
	}

	total := b.frames * b.concurrency
	fmt.Fprintf(w, "%d frame(s) of %d node(s), mode %s, %d session(s) in %v (%.0f frames/s)\n",
		total, sc.nodes, b.mode, b.concurrency, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	fmt.Fprintf(w, "mean %6.0fµs  p50 %6dµs  p90 %6dµs  p99 %6dµs  max %6dµs\n",
		hist.Mean(), hist.ValueAtQuantile(50), hist.ValueAtQuantile(90), hist.ValueAtQuantile(99), hist.Max())
	if b.height > 0 && len(first) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(first, asciigraph.Height(b.height), asciigraph.Caption("frame time (µs), session 0")))
	}
	return nil
}

// session runs the benchmark frames on one session and returns their
// durations.
func (b *benchT) session(ctx context.Context, sc *scene) ([]time.Duration, error) {
	scope := weft.NewScope()
	defer scope.Close()
	tick := weft.NewVar(scope, 0)
	s, err := weft.NewSession(sc.view(tick), append(sc.options(), weft.WithScope(scope))...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if _, err := s.Frame(); err != nil {
		return nil, err
	}

	width := s.Viewport().Width
	out := make([]time.Duration, 0, b.frames)
	for i := range b.frames {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := b.change(s, sc, tick, width, i); err != nil {
			return out, err
		}
		f, err := s.Frame()
		if err != nil {
			return out, errors.Wrapf(err, "frame %d", i)
		}
		out = append(out, f.Duration)
	}
	return out, nil
}

func (b *benchT) change(s *weft.Session, sc *scene, tick *weft.Var[int], width float64, i int) error {
	switch b.mode {
	case "restyle":
		if len(sc.RootSheets) == 0 {
			return s.Restyle(weft.RootID)
		}
		for _, sh := range sc.sheets {
			for _, name := range sc.RootSheets {
				if sh.Name == name {
					if err := s.ReloadSheet(sh.Name, sh.Rules); err != nil {
						return err
					}
				}
			}
		}
		return nil
	case "layout":
		return s.SetViewport(width-float64(i%2), s.Viewport().Height)
	default:
		return tick.Set(i + 1)
	}
}
