package weft

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/style"
	"golang.org/x/sync/errgroup"
)

// Run drives the session until ctx is done or Close is called. It commits
// a frame whenever something changed, at most once per refresh interval,
// and presents it to the renderer. Between frames it sleeps until a
// variable changes, an update is queued, or, while animation handlers are
// registered, the next refresh tick.
//
// Run must be the only goroutine touching the tree while it runs; use
// QueueUpdate to reach it.
func (s *Session) Run(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("session is already running")
	}
	defer func() {
		s.running.Store(false)
		if s.closed.Load() {
			s.teardown()
		}
	}()

	// The helpers stop when the loop does, whichever way it ended.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range s.watchers {
		w.Start(s.updates, gctx.Done())
	}
	if s.reload && len(s.sheetFiles) > 0 {
		if err := s.watchSheets(gctx, g); err != nil {
			return err
		}
	}

	err := s.loop(gctx)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

func (s *Session) loop(ctx context.Context) error {
	ticker := time.NewTicker(s.frameDuration)
	defer ticker.Stop()

	var presented *Frame
	var lastCommit time.Time
	for {
		if s.IsPending() {
			// Wait out the rest of the refresh interval so bursts of writes
			// coalesce into one frame.
			if wait := s.frameDuration - time.Since(lastCommit); wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil
				case <-s.stop:
					return nil
				}
			}
			f, err := s.Frame()
			lastCommit = time.Now()
			if errors.Is(err, ErrSessionClosed) {
				return nil
			}
			if err != nil || f == presented || s.renderer == nil {
				continue
			}
			if err := s.renderer.Present(f); err != nil {
				return errors.Wrapf(err, "present frame %d", f.Number)
			}
			if presented != nil {
				presented.Release()
			}
			presented = f
			continue
		}

		var tick <-chan time.Time
		if s.tree.Animating() {
			tick = ticker.C
		}
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-s.g.Notify():
		case fn := <-s.updates:
			s.runUpdate(fn)
		case now := <-tick:
			s.Animate(now)
		}
	}
}

// watchSheets reloads the session's sheet files when they change on disk.
// A file that fails to parse keeps its previous sheets.
func (s *Session) watchSheets(ctx context.Context, g *errgroup.Group) error {
	w, err := style.NewWatcher(s.sheetFiles...)
	if err != nil {
		return err
	}
	g.Go(func() error {
		return w.Run(ctx, func(path string, sheets []Sheet, err error) {
			if err != nil {
				debug.Log("session %s: reload %s: %v", s.id, path, err)
				return
			}
			fn := func() {
				for _, sh := range sheets {
					if err := s.RegisterSheet(sh); err != nil {
						s.setErr(err)
						debug.Log("session %s: reload sheet %q: %v", s.id, sh.Name, err)
					}
				}
			}
			select {
			case s.updates <- fn:
			case <-ctx.Done():
			}
		})
	})
	return nil
}
