package parsec

import "iter"

// Find scans source one position at a time, trying p at each, and returns
// the length of the skipped prefix, the matched value, and the remainder
// reader starting right after the match. found is false if p never matches
// before source is exhausted; it is also false, with the error dropped, if p
// returns a fatal error. Find is a scanning convenience distinct from Parse: it does not
// require p to match at position zero, nor to consume the rest of source
// (spec.md §5, adapted from the teacher's token-slice Find in easy.go to the
// Reader/State model).
func Find[E, T any](state *State[E], p *Parser[E, T], source Reader[E]) (skippedEnd int, match T, remainder Reader[E], found bool) {
	start := source.Position()
	cur := source
	for {
		status, err := p.Consume(state, cur)
		if err != nil {
			var zero T
			return 0, zero, nil, false
		}
		if status != nil {
			return cur.Position() - start, status.Value, status.Remainder, true
		}
		if cur.Finished() {
			var zero T
			return 0, zero, nil, false
		}
		cur = cur.Rest()
	}
}

// Span pairs a skipped prefix with the reader position it ended at. Split and
// SplitN return plain readers, not Spans.
type Span[E any] struct {
	Skipped Reader[E]
	End     int
}

// Split splits source on every non-overlapping match of sep, returning one
// reader per piece, positioned at the start of that piece: one for each piece
// followed by a separator, plus a final one for the trailing piece. The end
// position of each piece is not returned. Grounded in the teacher's
// Split (easy.go), generalized from tokens to Reader[E].
func Split[E, S any](state *State[E], sep *Parser[E, S], source Reader[E]) []Reader[E] {
	return SplitN(state, sep, source, 0)
}

// SplitN is Split bounded to at most n pieces (n <= 0 means unlimited).
func SplitN[E, S any](state *State[E], sep *Parser[E, S], source Reader[E], n int) []Reader[E] {
	var result []Reader[E]
	rest := source
	count := 1
	for n <= 0 || count < n {
		_, _, remainder, found := Find(state, sep, rest)
		if !found {
			break
		}
		result = append(result, rest)
		rest = remainder
		count++
	}
	result = append(result, rest)
	return result
}

// FindIter yields every non-overlapping match of p in source, in order, as
// (skipped-prefix-reader, matched-value) pairs, stopping early if the range
// function's yield returns false. Grounded in the teacher's FindIter
// (easy.go), which already used range-over-func iterators.
func FindIter[E, T any](state *State[E], p *Parser[E, T], source Reader[E]) iter.Seq2[Reader[E], T] {
	return func(yield func(Reader[E], T) bool) {
		rest := source
		for {
			skippedStart := rest
			_, value, remainder, found := Find(state, p, rest)
			if !found {
				return
			}
			if !yield(skippedStart, value) {
				return
			}
			rest = remainder
		}
	}
}
