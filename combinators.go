package parsec

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
)

// Opt tries p; on success it returns a one-element slice holding the value,
// on failure an empty slice. Opt itself never fails. Note that an inner
// failure's expected-set still reaches State via RegisterFailure, which is
// how messages like "expected X or end of source" arise even though Opt
// always matches (spec.md §4.5).
func Opt[E, T any](p *Parser[E, T]) *Parser[E, []T] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []T], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status != nil {
			return &Continue[E, []T]{Remainder: status.Remainder, Value: []T{status.Value}}, nil
		}
		return &Continue[E, []T]{Remainder: reader, Value: []T{}}, nil
	})
	out.repr = func() string { return "opt(" + p.nameOrRepr() + ")" }
	return out
}

// Rep matches p zero or more times (subject to min/max), collecting values
// into a slice. Two consecutive successful applications that land at the
// same position raise a RecursionError immediately: the grammar, not the
// input, is at fault (spec.md §4.5, §8).
func Rep[E, T any](p *Parser[E, T], min, max int) *Parser[E, []T] {
	var out *Parser[E, []T]
	out = newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []T], error) {
		output := []T{}
		remainder := reader

		for max < 0 || len(output) < max {
			status, err := p.Consume(state, remainder)
			if err != nil {
				return nil, err
			}
			if status == nil {
				break
			}
			if status.Remainder.Position() == remainder.Position() {
				return nil, &RecursionError[E]{Parser: out.nameOrRepr(), Position: remainder}
			}
			remainder = status.Remainder
			output = append(output, status.Value)
		}

		if len(output) >= min {
			return &Continue[E, []T]{Remainder: remainder, Value: output}, nil
		}
		return nil, nil
	})
	out.repr = func() string {
		s := "rep(" + p.nameOrRepr()
		if min > 0 {
			s += fmt.Sprintf(", min=%d", min)
		}
		if max >= 0 {
			s += fmt.Sprintf(", max=%d", max)
		}
		return s + ")"
	}
	return out
}

// Rep1 matches p one or more times; it is shorthand for Rep(p, 1, -1).
func Rep1[E, T any](p *Parser[E, T]) *Parser[E, []T] {
	out := Rep(p, 1, -1)
	out.repr = func() string { return "rep1(" + p.nameOrRepr() + ")" }
	return out
}

// RepSep matches p zero or more times, separated by sep (subject to
// min/max). Separator values are discarded. When sep matches but the
// following p does not, the position rewinds to before the separator: the
// already-accumulated values are the result (spec.md §4.5).
func RepSep[E, T, S any](p *Parser[E, T], sep *Parser[E, S], min, max int) *Parser[E, []T] {
	var out *Parser[E, []T]
	out = newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []T], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}

		output := []T{}
		remainder := reader
		if status != nil {
			output = append(output, status.Value)
			remainder = status.Remainder

			for max < 0 || len(output) < max {
				sepStatus, err := sep.Consume(state, remainder)
				if err != nil {
					return nil, err
				}
				if sepStatus == nil {
					break
				}
				itemStatus, err := p.Consume(state, sepStatus.Remainder)
				if err != nil {
					return nil, err
				}
				if itemStatus == nil {
					break
				}
				if itemStatus.Remainder.Position() == remainder.Position() {
					return nil, &RecursionError[E]{Parser: out.nameOrRepr(), Position: remainder}
				}
				remainder = itemStatus.Remainder
				output = append(output, itemStatus.Value)
			}
		}

		if len(output) >= min {
			return &Continue[E, []T]{Remainder: remainder, Value: output}, nil
		}
		return nil, nil
	})
	out.repr = func() string {
		s := "repsep(" + p.nameOrRepr() + ", " + sep.nameOrRepr()
		if min > 0 {
			s += fmt.Sprintf(", min=%d", min)
		}
		if max >= 0 {
			s += fmt.Sprintf(", max=%d", max)
		}
		return s + ")"
	}
	return out
}

// Rep1Sep matches p one or more times, separated by sep.
func Rep1Sep[E, T, S any](p *Parser[E, T], sep *Parser[E, S]) *Parser[E, []T] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []T], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, nil
		}

		output := []T{status.Value}
		remainder := status.Remainder

		for {
			sepStatus, err := sep.Consume(state, remainder)
			if err != nil {
				return nil, err
			}
			if sepStatus == nil {
				return &Continue[E, []T]{Remainder: remainder, Value: output}, nil
			}
			itemStatus, err := p.Consume(state, sepStatus.Remainder)
			if err != nil {
				return nil, err
			}
			if itemStatus == nil {
				return &Continue[E, []T]{Remainder: remainder, Value: output}, nil
			}
			if itemStatus.Remainder.Position() == remainder.Position() {
				return nil, &RecursionError[E]{Parser: "rep1sep", Position: remainder}
			}
			remainder = itemStatus.Remainder
			output = append(output, itemStatus.Value)
		}
	})
	out.repr = func() string { return "rep1sep(" + p.nameOrRepr() + ", " + sep.nameOrRepr() + ")" }
	return out
}

// Seq applies parsers left to right, failing if any one of them fails, and
// on full success returns their values in order.
//
// Unlike Or/First/Longest, Seq does not flatten nested unprotected Seq
// operands (spec.md §4.3 "protected" associativity): Seq's output type is
// []T while its operands are T, so a nested Seq node's own operands are
// typed one level below what this level's flat list can hold — there is no
// way to splice them in without breaking the uniform-T list Seq returns.
// Grammars simply list every operand directly in one Seq(...) call, which
// is already the flat form the flattening rule produces in the source this
// spec is drawn from.
func Seq[E, T any](parsers ...*Parser[E, T]) *Parser[E, []T] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []T], error) {
		output := make([]T, 0, len(parsers))
		remainder := reader
		for _, p := range parsers {
			status, err := p.Consume(state, remainder)
			if err != nil {
				return nil, err
			}
			if status == nil {
				return nil, nil
			}
			output = append(output, status.Value)
			remainder = status.Remainder
		}
		return &Continue[E, []T]{Remainder: remainder, Value: output}, nil
	})
	out.kind = kindSeq
	out.repr = func() string {
		s := ""
		for i, p := range parsers {
			if i > 0 {
				s += " & "
			}
			s += p.nameOrRepr()
		}
		return s
	}
	return out
}

// DiscardLeft sequences left then right, keeping only right's value.
func DiscardLeft[E, A, B any](left *Parser[E, A], right *Parser[E, B]) *Parser[E, B] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, B], error) {
		status, err := left.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, nil
		}
		return right.Consume(state, status.Remainder)
	})
	out.repr = func() string { return left.nameOrRepr() + " >> " + right.nameOrRepr() }
	return out
}

// DiscardRight sequences left then right, keeping only left's value.
func DiscardRight[E, A, B any](left *Parser[E, A], right *Parser[E, B]) *Parser[E, A] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, A], error) {
		status1, err := left.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status1 == nil {
			return nil, nil
		}
		status2, err := right.Consume(state, status1.Remainder)
		if err != nil {
			return nil, err
		}
		if status2 == nil {
			return nil, nil
		}
		return &Continue[E, A]{Remainder: status2.Remainder, Value: status1.Value}, nil
	})
	out.repr = func() string { return left.nameOrRepr() + " << " + right.nameOrRepr() }
	return out
}

// Map converts p's value on success using f ("a > f" in spec.md §4.3).
func Map[E, T, U any](p *Parser[E, T], f func(T) U) *Parser[E, U] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, U], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, nil
		}
		return &Continue[E, U]{Remainder: status.Remainder, Value: f(status.Value)}, nil
	})
	out.repr = func() string { return p.nameOrRepr() + " > f" }
	return out
}

// Bind is the library's monadic composition ("a >= f" in spec.md §4.3, §9):
// on success, f is applied to p's value to obtain a second parser, which is
// then applied to the remainder. Because the returned parser is typically
// constructed fresh per call, packrat memoization by identity does not
// amortize across calls to Bind's result parser; that is an accepted cost,
// since Bind is the escape hatch for context-sensitive grammars.
func Bind[E, T, U any](p *Parser[E, T], f func(T) *Parser[E, U]) *Parser[E, U] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, U], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, nil
		}
		return f(status.Value).Consume(state, status.Remainder)
	})
	out.repr = func() string { return p.nameOrRepr() + " >= f" }
	return out
}

// Pred runs p; if it succeeds, predicate is tested against the value. A
// false result registers description as the expected failure at the
// remainder position and fails the whole parser (spec.md §4.5).
func Pred[E, T any](p *Parser[E, T], predicate func(T) bool, description string) *Parser[E, T] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, nil
		}
		if predicate(status.Value) {
			return status, nil
		}
		state.RegisterFailure(description, status.Remainder)
		return nil, nil
	})
	out.repr = func() string { return "pred(" + p.nameOrRepr() + ", " + description + ")" }
	return out
}

// Until advances one element at a time until p matches at the current
// position (or end of source is hit, in which case p's failure surfaces).
// It returns the slice of input consumed, excluding the part matched by p;
// p itself is not consumed from the result, so a typical usage pairs
// Until(t) with DiscardRight(Until(t), t) (spec.md §4.5).
func Until[T any](p *Parser[byte, T]) *Parser[byte, string] {
	out := newParser(func(state *State[byte], reader Reader[byte]) (*Continue[byte, string], error) {
		sr := reader.(*StringReader)
		start := sr.Position()
		cur := reader

		for {
			status, err := p.Consume(state, cur)
			if err != nil {
				return nil, err
			}
			if status != nil {
				break
			}
			if cur.Finished() {
				return nil, nil
			}
			cur = cur.Rest()
		}

		end := cur.(*StringReader).Position()
		return &Continue[byte, string]{Remainder: cur, Value: sr.Source()[start:end]}, nil
	})
	out.repr = func() string { return "until(" + p.nameOrRepr() + ")" }
	return out
}

// Debug wraps p so that, whenever w is non-nil, the upcoming input and p's
// representation are printed before p runs, and the outcome (matched,
// failed, or fatal error) is printed after. It is semantically transparent:
// Debug never changes what p matches or what it returns (spec.md §4.5
// "Debug"). Grounded in the teacher's Trace (tools.go), simplified from a
// State-wide enable flag to an opt-in wrapper around a single parser, since
// spec.md frames Debug as applied per-parser rather than globally.
func Debug[E, T any](p *Parser[E, T], w *os.File) *Parser[E, T] {
	if w == nil {
		return p
	}
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		fmt.Fprintf(w, "%s: trying %s at %s\n", p.nameOrRepr(), p.nameOrRepr(), reader.NextToken())
		status, err := p.Consume(state, reader)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%s: fatal: %v\n", p.nameOrRepr(), err)
		case status != nil:
			fmt.Fprintf(w, "%s: matched %s, remainder at %d\n", p.nameOrRepr(), repr.String(status.Value), status.Remainder.Position())
		default:
			fmt.Fprintf(w, "%s: failed at %d\n", p.nameOrRepr(), reader.Position())
		}
		return status, err
	})
	out.repr = func() string { return "debug(" + p.nameOrRepr() + ")" }
	return out
}

// UntilSeq is Until specialized for general SequenceReader grammars: it
// returns the slice of elements consumed before p matched, instead of the
// string Until returns for text grammars (spec.md §4.5, §4.1 generality).
func UntilSeq[E, T any](p *Parser[E, T]) *Parser[E, []E] {
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []E], error) {
		seqReader, ok := reader.(*SequenceReader[E])
		if !ok {
			return nil, nil
		}
		start := seqReader.Position()
		cur := reader

		for {
			status, err := p.Consume(state, cur)
			if err != nil {
				return nil, err
			}
			if status != nil {
				break
			}
			if cur.Finished() {
				return nil, nil
			}
			cur = cur.Rest()
		}

		end := cur.(*SequenceReader[E]).Position()
		return &Continue[E, []E]{Remainder: cur, Value: seqReader.source[start:end]}, nil
	})
	out.repr = func() string { return "until(" + p.nameOrRepr() + ")" }
	return out
}
