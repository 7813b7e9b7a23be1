package parsec

import (
	"fmt"
	"os"
)

// First tries each alternative in order and returns the first success; if
// all fail, failure (already registered with State by each branch) is
// returned. This is the `first` dialect of spec.md §4.5/§9.
func First[E, T any](parsers ...*Parser[E, T]) *Parser[E, T] {
	flat := flattenAlt(parsers)
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		for _, p := range flat {
			status, err := p.Consume(state, reader)
			if err != nil {
				return nil, err
			}
			if status != nil {
				return status, nil
			}
		}
		return nil, nil
	})
	out.kind = kindAlt
	out.altChildren = flat
	out.repr = func() string { return altRepr(flat) }
	return out
}

// Longest tries every alternative and keeps the one whose remainder reaches
// the farthest position; ties are broken in favor of the first alternative
// that reached that position. This is the `longest` dialect of spec.md
// §4.5/§9.
func Longest[E, T any](parsers ...*Parser[E, T]) *Parser[E, T] {
	flat := flattenAlt(parsers)
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		var best *Continue[E, T]
		for _, p := range flat {
			status, err := p.Consume(state, reader)
			if err != nil {
				return nil, err
			}
			if status == nil {
				continue
			}
			if best == nil || status.Remainder.Position() > best.Remainder.Position() {
				best = status
			}
		}
		return best, nil
	})
	out.kind = kindAlt
	out.altChildren = flat
	out.repr = func() string { return altRepr(flat) }
	return out
}

// Or is the default alternative combinator (spec.md's `|`). Its dialect is
// governed by state.AltMode, configured per-parse on the State or through
// ParseWithMode (Grammar has no alternative-mode setting); the
// preferred default, AltLongest, matches the most recent upstream design per
// spec.md §9. AltWarnOnDivergence runs both dialects and warns to stderr
// when they would choose differently, grounded in the teacher's
// OrModeTryFast (tools.go).
func Or[E, T any](parsers ...*Parser[E, T]) *Parser[E, T] {
	flat := flattenAlt(parsers)
	out := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		switch state.AltMode {
		case AltFirst:
			return runFirst(state, reader, flat)
		case AltWarnOnDivergence:
			return runWarnOnDivergence(state, reader, flat)
		default:
			return runLongest(state, reader, flat)
		}
	})
	out.kind = kindAlt
	out.altChildren = flat
	out.repr = func() string { return altRepr(flat) }
	return out
}

func runFirst[E, T any](state *State[E], reader Reader[E], parsers []*Parser[E, T]) (*Continue[E, T], error) {
	for _, p := range parsers {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status != nil {
			return status, nil
		}
	}
	return nil, nil
}

func runLongest[E, T any](state *State[E], reader Reader[E], parsers []*Parser[E, T]) (*Continue[E, T], error) {
	var best *Continue[E, T]
	for _, p := range parsers {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			continue
		}
		if best == nil || status.Remainder.Position() > best.Remainder.Position() {
			best = status
		}
	}
	return best, nil
}

func runWarnOnDivergence[E, T any](state *State[E], reader Reader[E], parsers []*Parser[E, T]) (*Continue[E, T], error) {
	var first *Continue[E, T]
	var firstIndex int
	var best *Continue[E, T]
	var bestIndex int

	for i, p := range parsers {
		status, err := p.Consume(state, reader)
		if err != nil {
			return nil, err
		}
		if status == nil {
			continue
		}
		if first == nil {
			first = status
			firstIndex = i
		}
		if best == nil || status.Remainder.Position() > best.Remainder.Position() {
			best = status
			bestIndex = i
		}
	}

	if first == nil {
		return nil, nil
	}
	if firstIndex != bestIndex {
		fmt.Fprintf(
			os.Stderr,
			"parsec: Or picked alternative %d (first match) but alternative %d consumes more input (longest match) at position %d\n",
			firstIndex, bestIndex, reader.Position(),
		)
	}
	return first, nil
}

// flattenAlt splices unprotected Or/First/Longest operands into the parent
// operand list (spec.md §4.3). Seq has no counterpart: it never flattens.
func flattenAlt[E, T any](parsers []*Parser[E, T]) []*Parser[E, T] {
	flat := make([]*Parser[E, T], 0, len(parsers))
	for _, p := range parsers {
		if p.kind == kindAlt && !p.protected {
			flat = append(flat, p.altChildren...)
		} else {
			flat = append(flat, p)
		}
	}
	return flat
}

func altRepr[E, T any](parsers []*Parser[E, T]) string {
	s := ""
	for i, p := range parsers {
		if i > 0 {
			s += " | "
		}
		s += p.nameOrRepr()
	}
	return s
}
