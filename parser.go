// Package parsec is a packrat parser combinator engine. Grammars are built by
// composing small Parser values (literals, regexes, repetitions,
// alternatives, sequences...) into larger ones; the result is evaluated
// against a Reader over a string or any indexable sequence, producing either
// a typed value or a ParseError pointing at the farthest position reached.
package parsec

// parserKind tags the small closed family of combinator shapes that need to
// introspect their operands: Or/First/Longest flatten unprotected alternative
// children so that Or(Or(a, b), c) has three alternatives instead of nesting.
// Seq nodes carry kindSeq but Seq never flattens its operands (see Seq), so
// Seq(Seq(a, b), c) yields two elements, not three.
type parserKind int

const (
	kindOpaque parserKind = iota
	kindSeq
	kindAlt
)

// Parser is the abstract recognizer. It is generic over the input element
// type E (byte for text grammars, any element type for sequence grammars)
// and the output value type T it produces on success.
//
// Parser values are shared, immutable graph nodes built once when a grammar
// is assembled; every call to Parse creates a fresh State and Reader, so the
// same grammar can be reused (and parsed concurrently) across many inputs.
type Parser[E, T any] struct {
	name      string
	protected bool
	kind      parserKind

	// altChildren holds the unwrapped operands of an Or/First/Longest node,
	// used only by the flattening rule in those constructors. There is no
	// Seq equivalent: Seq's output type is []T while its operands are T, so
	// a same-struct child field typed for the wrapping node's own T can
	// never hold operand-typed values (see Seq in combinators.go).
	altChildren []*Parser[E, T]

	run func(state *State[E], reader Reader[E]) (*Continue[E, T], error)

	// repr, when set, overrides the default derived representation used in
	// diagnostics and RecursionError messages (spec.md §6 "Repr").
	repr func() string
}

// Continue is the internal success carrier threaded through consume calls:
// the remaining input after a match, and the value produced.
type Continue[E, T any] struct {
	Remainder Reader[E]
	Value     T
}

// Consume matches p at reader, going through the packrat memo table in
// state. A nil Continue with a nil error means failure that has already been
// registered with state.RegisterFailure. A non-nil error is always fatal
// (RecursionError or a depth-guard error) and must be propagated, never
// swallowed, by any combinator built on top of Consume.
func (p *Parser[E, T]) Consume(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
	key := memoKey{parser: p, pos: reader.Position()}

	if cached, ok := state.memoGet(key); ok {
		if cached == nil {
			return nil, nil
		}
		return cached.(*Continue[E, T]), nil
	}

	// Write the in-progress-as-failure sentinel before recursing: a parser
	// that calls itself at the same position (naive left recursion) will
	// see this and fail instead of looping forever.
	state.memoPut(key, (*Continue[E, T])(nil))

	if err := state.enter(reader); err != nil {
		state.memoDelete(key)
		return nil, err
	}
	depth := state.depth - 1
	result, err := p.run(state, reader)
	state.exit()

	if state.traceEnabled {
		matched := err == nil && result != nil
		remainderPos := reader.Position()
		if matched {
			remainderPos = result.Remainder.Position()
		}
		state.recordTrace(depth, p.nameOrRepr(), reader.Position(), remainderPos, matched, err)
	}

	if err != nil {
		// Fatal errors are not cached: the memo key must not remember a
		// stack-overflow/recursion-stall as if it were a normal failure.
		state.memoDelete(key)
		return nil, err
	}

	state.memoPut(key, result)
	return result, nil
}

// Name returns the name assigned to p during grammar binding, or "" if none.
func (p *Parser[E, T]) Name() string {
	return p.name
}

// Protected reports whether p has been bound to a grammar slot. Protected
// parsers are not flattened into the Or/First/Longest operand list of their
// parents (Seq flattens no operand, protected or not).
func (p *Parser[E, T]) Protected() bool {
	return p.protected
}

// String renders p's canonical textual form, used in diagnostics and
// RecursionError messages (spec.md §6 "Repr"). Named parsers render as
// "name = <expr>"; anonymous ones render their expression directly.
func (p *Parser[E, T]) String() string {
	body := "<parser>"
	if p.repr != nil {
		body = p.repr()
	}
	if p.name == "" {
		return body
	}
	return p.name + " = " + body
}

// nameOrRepr is the operand-position rendering: a named parser renders as
// just its name (so "a & b" doesn't expand "a"'s whole definition).
func (p *Parser[E, T]) nameOrRepr() string {
	if p.name != "" {
		return p.name
	}
	if p.repr != nil {
		return p.repr()
	}
	return "<parser>"
}

func newParser[E, T any](run func(*State[E], Reader[E]) (*Continue[E, T], error)) *Parser[E, T] {
	return &Parser[E, T]{run: run}
}
