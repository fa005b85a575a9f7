package tree

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateKey is returned when two siblings are declared with the
	// same key. The rebuild is abandoned and the arena left as it was.
	ErrDuplicateKey = errors.New("duplicate sibling key")

	// ErrBuildPanicked marks a rebuild abandoned because a view closure
	// panicked. errors.As with *PanicError recovers the panic value.
	ErrBuildPanicked = errors.New("view panicked")

	// ErrUnknownNode is returned for a NodeID that is not in the tree.
	ErrUnknownNode = errors.New("unknown node")
)

// PanicError carries the value a view closure panicked with.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("view panicked: %v", e.Value)
}

// Unwrap makes every PanicError match ErrBuildPanicked.
func (e *PanicError) Unwrap() error {
	return ErrBuildPanicked
}

func panicked(r any) error {
	return &PanicError{Value: r}
}
