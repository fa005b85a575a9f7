package weft

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/layout"
	"github.com/grindlemire/weft/internal/metrics"
	"github.com/grindlemire/weft/internal/paint"
	"github.com/grindlemire/weft/internal/style"
	"github.com/grindlemire/weft/internal/tree"
)

// Frame is an immutable snapshot of the UI: a display list and the box of
// every displayed node. It is superseded entirely by the next frame.
type Frame struct {
	Number   uint64
	Viewport Size

	// List holds the drawing commands in paint order.
	List *paint.List

	// Boxes holds the geometry of every displayed node.
	Boxes map[NodeID]Box

	Stats    FrameStats
	Duration time.Duration
}

// Box is the geometry and accessibility hints of one node.
type Box struct {
	ID       NodeID
	Key      Key
	Kind     string
	Rect     Rect
	Content  Rect
	Baseline float64
	Overflow bool
	Role     string
	Label    string
}

// FrameStats counts the work of one frame.
type FrameStats struct {
	Rebuilt   int
	Inserted  int
	Removed   int
	Moved     int
	Restyled  int
	LaidOut   int
	Fallbacks int
	Overflows int

	Build, Style, Layout, Paint time.Duration
}

func (st FrameStats) metrics() metrics.Frame {
	f := metrics.Frame{
		Rebuilt:   st.Rebuilt,
		Restyled:  st.Restyled,
		LaidOut:   st.LaidOut,
		Fallbacks: st.Fallbacks,
		Overflows: st.Overflows,
	}
	f.Phases[metrics.PhaseBuild] = st.Build
	f.Phases[metrics.PhaseStyle] = st.Style
	f.Phases[metrics.PhaseLayout] = st.Layout
	f.Phases[metrics.PhasePaint] = st.Paint
	return f
}

// PerfInfo holds frame time percentiles, overall and per phase.
type PerfInfo = metrics.PerfInfo

// Encode returns the display list's canonical encoding. Two frames that
// look the same encode to the same bytes.
func (f *Frame) Encode() []byte {
	return f.List.Encode()
}

// Digest returns a hash of the display list's encoding.
func (f *Frame) Digest() uint64 {
	return f.List.Digest()
}

// Box returns the box of node id, if it was displayed.
func (f *Frame) Box(id NodeID) (Box, bool) {
	b, ok := f.Boxes[id]
	return b, ok
}

// Release hands the frame's display list back for reuse by a later frame.
// The frame must not be used afterwards.
func (f *Frame) Release() {
	if f == nil || f.List == nil {
		return
	}
	paint.Put(f.List)
	f.List = nil
}

// Frame runs one frame: queued updates, then rebuild, restyle, layout and
// paint of whatever changed since the last frame. It returns the new frame,
// or the last committed frame when nothing changed.
//
// If the view fails (a duplicate key or a panic) nothing is committed: the
// last frame is returned with the error, and the frame is retried once a
// variable the failed view read changes.
func (s *Session) Frame() (*Frame, error) {
	if s.closed.Load() {
		return s.LastFrame(), ErrSessionClosed
	}
	s.drainUpdates()
	prev := s.LastFrame()
	if prev != nil && !s.IsPending() {
		return prev, nil
	}

	start := time.Now()
	s.state.Store(int32(StateBuilding))
	defer s.state.Store(int32(StateIdle))
	s.invalid.Store(false)

	var st FrameStats
	t0 := time.Now()
	s.tree.Invalidate(s.g.TakePending())
	diff, err := s.tree.Build()
	st.Build = time.Since(t0)
	if err != nil {
		err = errors.Wrapf(err, "frame %d", s.frameNo+1)
		s.setErr(err)
		s.metrics.Failed()
		debug.Log("session %s: %v", s.id, err)
		return prev, err
	}
	st.Rebuilt = diff.Rebuilt
	st.Inserted = len(diff.Inserted)
	st.Removed = len(diff.Removed)
	st.Moved = len(diff.Moved)
	if st.Removed > 0 {
		s.Focused() // drops focus held by a removed node
	}

	t0 = time.Now()
	rs := s.tree.Restyle(s.cascade)
	st.Style = time.Since(t0)
	st.Restyled = rs.Restyled
	st.Fallbacks = rs.Fallbacks + rs.MissingSheets

	t0 = time.Now()
	ls := layout.Calculate(s.tree.Root(), s.width, s.height)
	st.Layout = time.Since(t0)
	st.LaidOut = ls.LaidOut
	st.Overflows = ls.Overflows

	t0 = time.Now()
	hint := 0
	if prev != nil && prev.List != nil {
		hint = prev.List.Len()
	}
	f := &Frame{
		Number:   s.frameNo + 1,
		Viewport: s.Viewport(),
		List:     paint.Get(hint),
		Boxes:    make(map[NodeID]Box, s.tree.Len()),
	}
	s.paint(f)
	st.Paint = time.Since(t0)

	if !f.List.Balanced() {
		return prev, errors.AssertionFailedf("frame %d: unbalanced clip stack", f.Number)
	}
	f.Stats = st
	f.Duration = time.Since(start)

	s.frameNo++
	s.last.Store(f)
	s.setErr(nil)
	s.state.Store(int32(StateCommitted))
	s.metrics.Committed(st.metrics())
	s.tree.RunMounts()
	if s.redraw != nil {
		s.redraw()
	}
	debug.Log("session %s: frame %d committed in %v (rebuilt %d, restyled %d, laid out %d)",
		s.id, f.Number, f.Duration, st.Rebuilt, st.Restyled, st.LaidOut)
	return f, nil
}

// paint walks the tree in order and records each displayed node: opacity
// group, background, border, text, custom drawing, then its children
// inside a clip when it does not let them overflow.
func (s *Session) paint(f *Frame) {
	l := f.List
	s.tree.Visit(func(n *tree.Node) bool {
		c := n.Computed()
		if c.Layout.Display == layout.DisplayNone {
			return false
		}
		b := n.Box()
		id := uint64(n.ID())
		f.Boxes[n.ID()] = Box{
			ID:       n.ID(),
			Key:      n.Key(),
			Kind:     n.Kind(),
			Rect:     b.Rect,
			Content:  b.ContentRect,
			Baseline: b.Baseline,
			Overflow: b.Overflow,
			Role:     n.Role(),
			Label:    n.Label(),
		}

		l.Opacity(id, b.Rect, c.Opacity)
		l.Rect(id, b.Rect, rgba(c.Background), c.CornerRadius)
		l.Border(id, b.Rect, rgba(c.BorderColor), widest(c.Layout.Border))
		if text := n.Text(); text != "" {
			l.Text(id, textRect(text, c, b.ContentRect), text, rgba(c.Color), c.Layout.FontSize)
		}
		if draw := n.Draw(); draw != nil {
			s.draw(n, draw, paint.NewRecorder(l, id), b)
		}

		if clips(n, c) {
			l.PushClip(id, b.ContentRect)
			if c.Layout.Overflow == layout.OverflowScroll {
				l.Scroll(id, b.ContentRect, n.Memory().ScrollOffset, b.Extent)
			}
		}
		return true
	}, func(n *tree.Node) {
		c := n.Computed()
		if c.Layout.Display != layout.DisplayNone && clips(n, c) {
			l.PopClip(uint64(n.ID()))
		}
	})
}

func (s *Session) draw(n *tree.Node, fn DrawFunc, r *paint.Recorder, box Layout) {
	defer func() {
		if p := recover(); p != nil {
			debug.Log("session %s: draw callback for node %016x (%s) panicked: %v", s.id, uint64(n.ID()), n.Kind(), p)
		}
	}()
	fn(r, box)
}

func clips(n *tree.Node, c style.Computed) bool {
	return c.Layout.Overflow != layout.OverflowVisible && n.NumChildren() > 0
}

// textRect is the box of a node's first line of text, aligned within its
// content rect.
func textRect(text string, c style.Computed, content Rect) Rect {
	size := layout.MeasureText(text, c.Layout.FontSize, c.Layout.LineHeight)
	r := content
	r.Height = min(r.Height, c.Layout.FontSize*c.Layout.LineHeight)
	if size.Width < r.Width {
		switch c.TextAlign {
		case style.TextAlignCenter:
			r.X += (r.Width - size.Width) / 2
		case style.TextAlignEnd:
			r.X += r.Width - size.Width
		}
		r.Width = size.Width
	}
	return r
}

func rgba(c style.Color) paint.RGBA {
	r, g, b, a := c.RGBA8()
	return paint.RGBA{r, g, b, a}
}

func widest(e Edges) float64 {
	return max(e.Top, e.Right, e.Bottom, e.Left)
}
