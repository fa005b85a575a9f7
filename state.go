package weft

import "github.com/grindlemire/weft/internal/reactive"

// Scope owns variables and memos. Closing it ends them: later writes fail
// with ErrScopeEnded, and views that read them are rebuilt.
type Scope = reactive.Scope

// Reader receives tracked reads. *Ui and *NodeBuilder are Readers; reading
// through nil is untracked.
type Reader = reactive.Reader

// Var is a reactive variable.
//
// Get reads without tracking. Read(r) records the read with r, so the
// closure r belongs to is re-run when the variable changes. Set, Update and
// Mutate are safe from any goroutine; a panic inside Update or Mutate still
// invalidates readers before it propagates.
type Var[T any] = reactive.Cell[T]

// Memo is a derived value recomputed lazily after its inputs change.
type Memo[T any] = reactive.Memo[T]

// NewScope creates a root scope with its own dependency graph. Pass it to
// WithScope to share variables created before the session.
func NewScope() *Scope {
	return reactive.NewGraph().NewScope()
}

// NewVar creates a variable owned by scope. Every Set invalidates readers.
func NewVar[T any](scope *Scope, v T) *Var[T] {
	return reactive.NewCell(scope.Graph(), scope, v)
}

// NewVarEq creates a variable whose writes of an equal value are ignored.
func NewVarEq[T comparable](scope *Scope, v T) *Var[T] {
	return reactive.NewCellEq(scope.Graph(), scope, v)
}

// NewVarFunc creates a variable whose writes are ignored when equal
// reports the new value equal to the current one.
func NewVarFunc[T any](scope *Scope, v T, equal func(a, b T) bool) *Var[T] {
	return reactive.NewCellFunc(scope.Graph(), scope, v, equal)
}

// NewMemo creates a memo owned by scope.
func NewMemo[T any](scope *Scope, label string, fn func(r Reader) T) *Memo[T] {
	return reactive.NewMemo(scope.Graph(), scope, label, fn)
}

// NewMemoEq creates a memo that keeps its output generation unchanged when
// a recomputation yields an equal value. Its readers are still invalidated
// by every write upstream of it and run again.
func NewMemoEq[T comparable](scope *Scope, label string, fn func(r Reader) T) *Memo[T] {
	return reactive.NewMemoEq(scope.Graph(), scope, label, fn)
}
