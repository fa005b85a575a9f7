package weft

import (
	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft/internal/reactive"
	"github.com/grindlemire/weft/internal/style"
	"github.com/grindlemire/weft/internal/tree"
)

var (
	// ErrDuplicateKey is returned by Frame when two siblings share a key.
	ErrDuplicateKey = tree.ErrDuplicateKey

	// ErrBuildPanicked is returned by Frame when a view closure panicked.
	ErrBuildPanicked = tree.ErrBuildPanicked

	// ErrUnknownNode is returned for a NodeID not in the current tree.
	ErrUnknownNode = tree.ErrUnknownNode

	// ErrScopeEnded is returned by writes to a variable whose scope closed.
	ErrScopeEnded = reactive.ErrScopeEnded

	// ErrUnknownSheet is returned when reloading a sheet never registered.
	ErrUnknownSheet = style.ErrUnknownSheet

	// ErrSessionClosed is returned by a session after Close.
	ErrSessionClosed = errors.New("session closed")
)

// PanicError carries the value a view closure panicked with.
type PanicError = tree.PanicError
