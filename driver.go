package parsec

// Parse runs p against the whole of source, requiring that it consume every
// element (p is implicitly wrapped as `p << eof`, spec.md §4.8). It returns
// a Result wrapping either the parsed value or the farthest failure
// encountered across every branch tried.
//
// A fresh State is constructed per call, so repeated Parse calls never share
// packrat memo entries or farthest-failure tracking; parsers themselves are
// reusable across many Parse calls.
func Parse[E, T any](p *Parser[E, T], source Reader[E]) Result[T] {
	state := NewState[E]()
	wrapped := DiscardRight(p, Eof[E]())

	status, err := wrapped.Consume(state, source)
	if err != nil {
		return Failed[T](err)
	}
	if status == nil {
		return Failed[T](&ParseError[E]{
			Farthest: state.Farthest(),
			Expected: state.Expected(),
		})
	}
	return Ok(status.Value)
}

// ParseWithMode is Parse, but lets the caller pick the alternative dialect
// (spec.md §9) used by Or within p, overriding the AltLongest default.
func ParseWithMode[E, T any](p *Parser[E, T], source Reader[E], mode AltMode) Result[T] {
	state := NewState[E]()
	state.AltMode = mode
	wrapped := DiscardRight(p, Eof[E]())

	status, err := wrapped.Consume(state, source)
	if err != nil {
		return Failed[T](err)
	}
	if status == nil {
		return Failed[T](&ParseError[E]{
			Farthest: state.Farthest(),
			Expected: state.Expected(),
		})
	}
	return Ok(status.Value)
}

// ParseString is Parse specialized to text grammars: source is wrapped in a
// StringReader before parsing.
func ParseString[T any](p *Parser[byte, T], source string) Result[T] {
	return Parse[byte, T](p, NewStringReader(source))
}

// MustParse runs ParseString and panics with the failure's error value (whose
// Error method renders the diagnostic) if parsing did not succeed. Intended for tests, examples, and one-off
// tooling, not for parsing untrusted input (spec.md §4.8 "a thin convenience
// wrapper, never the primary API").
func MustParse[T any](p *Parser[byte, T], source string) T {
	result := ParseString(p, source)
	return result.Unwrap()
}
