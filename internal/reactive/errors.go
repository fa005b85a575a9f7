package reactive

import "github.com/cockroachdb/errors"

var (
	// ErrScopeEnded is returned when writing to a source whose owning scope
	// has been closed.
	ErrScopeEnded = errors.New("reactive: write after scope ended")

	// ErrUnknownSource is returned when a source id is not registered with
	// the graph.
	ErrUnknownSource = errors.New("reactive: unknown source")
)
