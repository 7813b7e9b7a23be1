package parsec

import "fmt"

// ParseError is the structured diagnostic produced when a top-level Parse
// fails to match: the farthest reader position any branch of the grammar
// reached, and the deduplicated, insertion-ordered set of things that were
// expected there (spec.md §3).
type ParseError[E any] struct {
	Farthest Reader[E]
	Expected []string
}

func (e *ParseError[E]) Error() string {
	return e.Farthest.ExpectedError(e.Expected)
}

// RecursionError is the fatal diagnostic raised when a repetition combinator
// (Rep/Rep1/RepSep/Rep1Sep) observes a zero-progress iteration: the grammar,
// not the input, is ill-defined, so this is distinct from ParseError and is
// never silently absorbed by Or or Opt (spec.md §3, §7).
type RecursionError[E any] struct {
	Parser   string
	Position Reader[E]
}

func (e *RecursionError[E]) Error() string {
	return e.Position.RecursionError(e.Parser)
}

// StackOverflowError is a depth-guard diagnostic distinct from both
// ParseError and RecursionError: the grammar recursed deeper than
// State.MaxDepth allows, most often because of an unguarded recursive
// grammar reference. Grounded in the teacher's ErrStackOverflow/
// NewErrStackOverflow (errors.go, tools.go CheckDepthAndIncrement).
type StackOverflowError struct {
	Depth    int
	MaxDepth int
	Position int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("recursion depth %d exceeded maximum %d at position %d", e.Depth, e.MaxDepth, e.Position)
}
