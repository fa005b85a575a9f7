package weft

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/style"
	"github.com/prometheus/client_golang/prometheus"
)

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session) error

// WithViewport sets the size the root is laid out in. Default is 800x600.
func WithViewport(width, height float64) SessionOption {
	return func(s *Session) error {
		if width <= 0 || height <= 0 {
			return errors.Newf("viewport must be positive, got %gx%g", width, height)
		}
		s.width, s.height = width, height
		return nil
	}
}

// WithFrameRate sets the refresh rate of Run: the most frames it commits
// per second and how often animation handlers run. Default is 60 fps.
// Valid range is 1-240 fps.
func WithFrameRate(fps int) SessionOption {
	return func(s *Session) error {
		if fps < 1 {
			return errors.New("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return errors.New("frame rate cannot exceed 240 fps")
		}
		s.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithUpdateQueueSize sets the capacity of the QueueUpdate buffer.
// Default is 256. Must be at least 1.
func WithUpdateQueueSize(size int) SessionOption {
	return func(s *Session) error {
		if size < 1 {
			return errors.New("update queue size must be at least 1")
		}
		s.queueSize = size
		return nil
	}
}

// WithScope makes the session share scope's dependency graph, so
// variables created in scope before the session can be read by the view.
func WithScope(scope *Scope) SessionOption {
	return func(s *Session) error {
		if scope == nil {
			return errors.New("scope must not be nil")
		}
		if scope.Closed() {
			return errors.Wrap(ErrScopeEnded, "session scope")
		}
		s.userScope = scope
		return nil
	}
}

// WithRenderer sets where Run presents committed frames.
func WithRenderer(r Renderer) SessionOption {
	return func(s *Session) error {
		s.renderer = r
		return nil
	}
}

// WithRedrawRequest sets a callback run after every committed frame, for
// platforms that schedule their own redraws.
func WithRedrawRequest(fn func()) SessionOption {
	return func(s *Session) error {
		s.redraw = fn
		return nil
	}
}

// WithMetrics registers the session's frame metrics with reg. They are
// unregistered by Close.
func WithMetrics(reg prometheus.Registerer) SessionOption {
	return func(s *Session) error {
		if reg == nil {
			return errors.New("metrics registerer must not be nil")
		}
		s.registerer = reg
		return nil
	}
}

// WithSheets registers style sheets. Later sheets with the same name
// replace earlier ones.
func WithSheets(sheets ...Sheet) SessionOption {
	return func(s *Session) error {
		for _, sh := range sheets {
			if sh.Name == "" {
				return errors.New("sheet name must not be empty")
			}
		}
		s.sheets = append(s.sheets, sheets...)
		return nil
	}
}

// WithRootSheets attaches registered sheets to the root so their rules
// apply to the whole tree. Sheets not attached here only apply below nodes
// that attach them with NodeBuilder.Sheet.
func WithRootSheets(names ...string) SessionOption {
	return func(s *Session) error {
		s.rootSheets = append(s.rootSheets, names...)
		return nil
	}
}

// WithSheetFiles loads sheets from YAML resource files.
func WithSheetFiles(paths ...string) SessionOption {
	return func(s *Session) error {
		for _, path := range paths {
			sheets, err := style.LoadSheetFile(path)
			if err != nil {
				return err
			}
			s.sheets = append(s.sheets, sheets...)
			s.sheetFiles = append(s.sheetFiles, path)
		}
		return nil
	}
}

// WithSheetReload makes Run watch the files given to WithSheetFiles and
// reload their sheets when they change. Meant for development.
func WithSheetReload() SessionOption {
	return func(s *Session) error {
		s.reload = true
		return nil
	}
}

// WithWatchers starts watchers when Run starts. They stop when it returns.
func WithWatchers(ws ...Watcher) SessionOption {
	return func(s *Session) error {
		s.watchers = append(s.watchers, ws...)
		return nil
	}
}
