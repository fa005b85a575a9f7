package weft

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/grindlemire/weft/internal/debug"
	"github.com/grindlemire/weft/internal/metrics"
	"github.com/grindlemire/weft/internal/reactive"
	"github.com/grindlemire/weft/internal/style"
	"github.com/grindlemire/weft/internal/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// State is where a session is in its frame cycle.
type State int32

const (
	// StateIdle: nothing to do until a variable changes.
	StateIdle State = iota
	// StatePending: a change is waiting for the next frame.
	StatePending
	// StateBuilding: a frame is being built.
	StateBuilding
	// StateCommitted: a frame was just committed; mount hooks and the
	// redraw request are running.
	StateCommitted
)

var stateNames = [...]string{"idle", "pending", "building", "committed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Renderer receives committed frames from Run. A frame handed to Present
// may be recycled once the next frame has been presented.
type Renderer interface {
	Present(f *Frame) error
}

// Session owns a retained tree and turns changes into frames.
//
// The tree belongs to one goroutine, the one calling Frame or Run. The
// methods that touch it (Frame, SetViewport, SetPseudo, ScrollTo, Dispatch,
// Restyle, ReloadSheet, Animate, Close) must be called there; use
// QueueUpdate from anywhere else. Variables may be written from any
// goroutine.
type Session struct {
	id uuid.UUID

	g         *reactive.Graph
	userScope *Scope
	scope     *Scope
	tree      *tree.Tree
	reg       *style.Registry
	cascade   *style.Cascade

	// Configuration (set via options)
	width, height float64
	frameDuration time.Duration
	queueSize     int
	renderer      Renderer
	redraw        func()
	sheets        []Sheet
	sheetFiles    []string
	rootSheets    []string
	reload        bool
	watchers      []Watcher

	metrics    *metrics.Metrics
	registerer prometheus.Registerer

	// Frame loop
	state   atomic.Int32
	updates chan func()
	stop    chan struct{}
	once    sync.Once
	closed  atomic.Bool
	running atomic.Bool
	frameNo uint64
	last    atomic.Pointer[Frame]
	errMu   sync.Mutex
	lastErr error

	hovered NodeID
	focused NodeID
	down    sync.Once

	// invalid is set by changes the graph does not see: viewport, pseudo
	// states, scrolling, sheet reloads and explicit restyles.
	invalid atomic.Bool
}

// NewSession creates a session for view. The first frame is built by the
// first call to Frame or by Run.
func NewSession(view func(ui *Ui), opts ...SessionOption) (*Session, error) {
	if view == nil {
		return nil, errors.New("view must not be nil")
	}
	s := &Session{
		id:            uuid.New(),
		width:         800,
		height:        600,
		frameDuration: time.Second / 60,
		queueSize:     256,
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.Wrap(err, "session option")
		}
	}

	if s.userScope == nil {
		s.userScope = NewScope()
	}
	s.g = s.userScope.Graph()
	s.scope = s.userScope.Child()

	m, err := metrics.New(s.registerer, s.id.String())
	if err != nil {
		return nil, err
	}
	s.metrics = m

	s.reg = style.NewRegistry(s.sheets...)
	s.cascade = style.NewCascade(s.reg)
	s.tree = tree.New(s.g, s.scope, view)
	if len(s.rootSheets) > 0 {
		s.tree.AttachSheets(s.rootSheets...)
	}
	s.updates = make(chan func(), s.queueSize)
	s.invalid.Store(true)

	debug.Log("session %s created: viewport %gx%g, %d sheets", s.id, s.width, s.height, len(s.sheets))
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Scope returns the scope the session's view runs in. Variables created in
// it live as long as the session.
func (s *Session) Scope() *Scope {
	return s.scope
}

// Viewport returns the size the root is laid out in.
func (s *Session) Viewport() Size {
	return Size{Width: s.width, Height: s.height}
}

// State returns the session's position in its frame cycle.
func (s *Session) State() State {
	switch st := State(s.state.Load()); st {
	case StateBuilding, StateCommitted:
		return st
	}
	if s.IsPending() {
		return StatePending
	}
	return StateIdle
}

// IsPending reports whether a frame would have work to do. Platforms can
// use it to decide whether to sleep.
func (s *Session) IsPending() bool {
	if s.closed.Load() {
		return false
	}
	return s.g.Pending() || len(s.updates) > 0 || s.invalid.Load()
}

// QueueUpdate runs fn on the session's goroutine before the next frame. It
// is safe to call from any goroutine and blocks while the queue is full.
// Updates queued after Close are dropped.
func (s *Session) QueueUpdate(fn func()) {
	select {
	case s.updates <- fn:
	case <-s.stop:
	}
}

func (s *Session) drainUpdates() {
	for {
		select {
		case fn := <-s.updates:
			s.runUpdate(fn)
		default:
			return
		}
	}
}

func (s *Session) runUpdate(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf("queued update panicked: %v", r)
			debug.Log("session %s: %v", s.id, err)
			s.setErr(err)
		}
	}()
	fn()
}

// SetViewport changes the size the root is laid out in.
func (s *Session) SetViewport(width, height float64) error {
	if err := WithViewport(width, height)(s); err != nil {
		return err
	}
	s.invalid.Store(true)
	return nil
}

// SetPseudo turns an interaction state of node id on or off. The node and
// its subtree are restyled on the next frame.
func (s *Session) SetPseudo(id NodeID, p Pseudo, on bool) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	changed, err := s.tree.SetPseudo(id, p, on)
	if err != nil {
		return err
	}
	if changed {
		s.invalid.Store(true)
	}
	return nil
}

// Restyle resolves node id's style again on the next frame.
func (s *Session) Restyle(id NodeID) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.tree.MarkRestyle(id); err != nil {
		return err
	}
	s.invalid.Store(true)
	return nil
}

// ScrollTo sets the content offset of a scrolling node.
func (s *Session) ScrollTo(id NodeID, x, y float64) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.tree.ScrollTo(id, x, y); err != nil {
		return err
	}
	s.invalid.Store(true)
	return nil
}

// ReloadSheet replaces the rules of a registered sheet. Every node the
// sheet is attached to is restyled with its subtree on the next frame.
func (s *Session) ReloadSheet(name string, rules []Rule) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.reg.Replace(name, rules); err != nil {
		return errors.Wrapf(err, "reload sheet %q", name)
	}
	n := s.tree.MarkSheet(name)
	s.invalid.Store(true)
	debug.Log("session %s: sheet %q reloaded, %d scoping nodes", s.id, name, n)
	return nil
}

// RegisterSheet adds or replaces a sheet. A new sheet applies below the
// nodes that attach it; see WithRootSheets.
func (s *Session) RegisterSheet(sh Sheet) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if _, ok := s.reg.Rules(sh.Name); ok {
		return s.ReloadSheet(sh.Name, sh.Rules)
	}
	s.reg.Register(sh)
	s.tree.MarkSheet(sh.Name)
	s.invalid.Store(true)
	return nil
}

// LastFrame returns the most recently committed frame, nil before the
// first.
func (s *Session) LastFrame() *Frame {
	return s.last.Load()
}

// LastError returns the error of the most recent failed frame or queued
// update, nil once a frame commits after it.
func (s *Session) LastError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

func (s *Session) setErr(err error) {
	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
}

// Perf returns frame time percentiles.
func (s *Session) Perf() PerfInfo {
	return s.metrics.Perf()
}

// Close tears the tree down, running cleanups, and ends the session's
// scope. It stops Run and is idempotent.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.stop)
		if s.running.Load() {
			// Run tears down on its own goroutine when it returns.
			return
		}
		s.teardown()
	})
	return nil
}

func (s *Session) teardown() {
	s.down.Do(s.shutdown)
}

func (s *Session) shutdown() {
	s.tree.Close()
	s.scope.Close()
	s.metrics.Unregister(s.registerer)
	debug.Log("session %s closed after %d frames", s.id, s.frameNo)
}
