package parsec

import "fmt"

// Result is the outcome of a top-level Parse: either a successfully parsed
// Value, or an Err describing where and why it failed. This is the minimal
// public wrapper spec.md §1 leaves as an external-interface concern beyond
// its constructors (Ok/Failed below) and accessors.
type Result[T any] struct {
	value   T
	err     error
	success bool
}

// Ok builds a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, success: true}
}

// Failed builds a failed Result from any error (typically *ParseError[E]).
func Failed[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsSuccess reports whether the parse succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.success
}

// Value returns the parsed value and true on success, or the zero value and
// false on failure.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.success
}

// Err returns the failure diagnostic, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the parsed value, panicking with r.Err() if the parse
// failed. This is the library's or_die/unwrap convenience (spec.md §7): the
// library itself never panics on a plain mismatch, only a caller opting into
// Unwrap does.
func (r Result[T]) Unwrap() T {
	if !r.success {
		panic(r.err)
	}
	return r.value
}

func (r Result[T]) String() string {
	if r.success {
		return fmt.Sprintf("Success(%v)", r.value)
	}
	return fmt.Sprintf("Failure(%s)", r.err.Error())
}
