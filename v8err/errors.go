// Package v8err defines the error taxonomy shared by every core
// package: LoadError, QueryError, BudgetExceeded, and
// InternalInvariant. Every fallible entry point in the core returns
// one of these, or nil; no other error type escapes the core.
package v8err

import (
	"errors"
	"fmt"
)

// Kind identifies which of the four error categories an error belongs
// to.
type Kind string

const (
	// KindLoad marks a malformed snapshot: missing field, unknown type
	// tag, an out-of-range to_node, or an inconsistent edge_count sum.
	// Fatal for the run; only ever returned from construction.
	KindLoad Kind = "LOAD_ERROR"

	// KindQuery marks a query that referenced a NodeId outside
	// [0, node_count). Returned to the caller, never escalated.
	KindQuery Kind = "QUERY_ERROR"

	// KindBudgetExceeded marks a path-enumeration query that hit its
	// max_paths limit. Not a failure: the result is a valid partial
	// result marked truncated.
	KindBudgetExceeded Kind = "BUDGET_EXCEEDED"

	// KindInternalInvariant marks a broken contract inside the core
	// (e.g. idom of a reachable non-root node still unset after
	// computation). These represent bugs and are never recovered from
	// inside the core; see Invariant and PanicInvariant below.
	KindInternalInvariant Kind = "INTERNAL_INVARIANT"
)

// Error is a tagged error carrying a Kind, a human message, and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// Pos is an optional file position (byte offset) for LoadError,
	// when the loader was able to determine one.
	Pos int64
	// Node is an optional offending NodeId for QueryError.
	Node int64
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Load constructs a LoadError.
func Load(message string) *Error {
	return &Error{Kind: KindLoad, Message: message}
}

// LoadAt constructs a LoadError with a byte offset.
func LoadAt(pos int64, message string) *Error {
	return &Error{Kind: KindLoad, Message: message, Pos: pos}
}

// WrapLoad wraps err as a LoadError.
func WrapLoad(message string, err error) *Error {
	return &Error{Kind: KindLoad, Message: message, Err: err}
}

// Query constructs a QueryError for the given offending node.
func Query[N NodeIdLike](node N, message string) *Error {
	return &Error{Kind: KindQuery, Message: message, Node: int64(node)}
}

// BudgetExceeded constructs a BudgetExceeded marker error. Callers
// that receive a partial, truncated result alongside this error
// should treat it as success-with-truncation, not failure (spec.md
// §7's propagation policy).
func BudgetExceeded(message string) *Error {
	return &Error{Kind: KindBudgetExceeded, Message: message}
}

// NodeIdLike lets Query accept any integer-like node id type without
// this package importing graph (which would create an import cycle).
type NodeIdLike interface {
	~uint32 | ~uint64 | ~int
}

// IsLoad reports whether err is a LoadError.
func IsLoad(err error) bool { return hasKind(err, KindLoad) }

// IsQuery reports whether err is a QueryError.
func IsQuery(err error) bool { return hasKind(err, KindQuery) }

// IsBudgetExceeded reports whether err is a BudgetExceeded marker.
func IsBudgetExceeded(err error) bool { return hasKind(err, KindBudgetExceeded) }

func hasKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Invariant is panicked when a core invariant is violated — e.g. an
// idom entry missing for a node the DFS marked reachable. It must
// never be caught anywhere except the outermost process boundary
// (see Recover), which prints a diagnostic and re-panics: spec.md §7
// requires that InternalInvariant never be treated as recoverable
// inside the core.
type Invariant struct {
	Message string
}

func (p Invariant) String() string {
	return fmt.Sprintf("[%s] %s", KindInternalInvariant, p.Message)
}

// PanicInvariant panics with an Invariant built from a formatted
// message.
func PanicInvariant(format string, args ...any) {
	panic(Invariant{Message: fmt.Sprintf(format, args...)})
}

// Recover, deferred at a process boundary, logs an Invariant panic via
// the supplied sink and re-panics so the process still aborts —
// spec.md §7: "Abort with diagnostic; these represent bugs."
func Recover(logf func(format string, args ...any)) {
	if r := recover(); r != nil {
		if inv, ok := r.(Invariant); ok {
			logf("internal invariant violated: %s", inv.Message)
		}
		panic(r)
	}
}
