package parsec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Lit matches a literal string at the current position of a StringReader.
// When whitespace is non-nil (see Grammar), it is consumed before and after
// the literal; both consumptions are infallible, since Grammar only ever
// hands literal/regex a whitespace parser that always succeeds.
func Lit(pattern string, whitespace *Parser[byte, string]) *Parser[byte, string] {
	p := newParser(func(state *State[byte], reader Reader[byte]) (*Continue[byte, string], error) {
		sr := reader.(*StringReader)

		if whitespace != nil {
			ws, err := whitespace.Consume(state, reader)
			if err != nil {
				return nil, err
			}
			sr = ws.Remainder.(*StringReader)
		}

		if !strings.HasPrefix(sr.source[sr.position:], pattern) {
			state.RegisterFailure(strconv.Quote(pattern), sr)
			return nil, nil
		}
		next := sr.Drop(len(pattern)).(*StringReader)

		if whitespace != nil {
			ws, err := whitespace.Consume(state, next)
			if err != nil {
				return nil, err
			}
			next = ws.Remainder.(*StringReader)
		}

		return &Continue[byte, string]{Remainder: next, Value: pattern}, nil
	})
	p.repr = func() string { return strconv.Quote(pattern) }
	return p
}

// LitSeq matches a literal sequence of elements one at a time against a
// SequenceReader, for non-text grammars (spec.md §4.4 "for general sequence
// readers, matches element-by-element").
func LitSeq[E comparable](pattern []E) *Parser[E, []E] {
	p := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, []E], error) {
		cur := reader
		for _, elem := range pattern {
			if cur.Finished() {
				state.RegisterFailure(elemRepr(elem), cur)
				return nil, nil
			}
			if cur.First() != elem {
				state.RegisterFailure(elemRepr(elem), cur)
				return nil, nil
			}
			cur = cur.Rest()
		}
		return &Continue[E, []E]{Remainder: cur, Value: pattern}, nil
	})
	p.repr = func() string { return elemsRepr(pattern) }
	return p
}

func elemRepr[E any](e E) string {
	if s, ok := any(e).(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", e)
}

func elemsRepr[E any](es []E) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = elemRepr(e)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Reg matches a regular expression at the current position of a
// StringReader. Matching is greedy and does not interact with combinator
// backtracking (spec.md §4.4).
func Reg(pattern string, whitespace *Parser[byte, string]) *Parser[byte, string] {
	re := regexp.MustCompile(pattern)
	p := newParser(func(state *State[byte], reader Reader[byte]) (*Continue[byte, string], error) {
		sr := reader.(*StringReader)

		if whitespace != nil {
			ws, err := whitespace.Consume(state, reader)
			if err != nil {
				return nil, err
			}
			sr = ws.Remainder.(*StringReader)
		}

		loc := re.FindStringIndex(sr.source[sr.position:])
		if loc == nil || loc[0] != 0 {
			state.RegisterFailure("r'"+pattern+"'", sr)
			return nil, nil
		}
		value := sr.source[sr.position+loc[0] : sr.position+loc[1]]
		next := sr.Drop(len(value)).(*StringReader)

		if whitespace != nil {
			ws, err := whitespace.Consume(state, next)
			if err != nil {
				return nil, err
			}
			next = ws.Remainder.(*StringReader)
		}

		return &Continue[byte, string]{Remainder: next, Value: value}, nil
	})
	p.repr = func() string { return "reg(r'" + pattern + "')" }
	return p
}

// Any matches any single element, whatever it is. It can only fail at the
// end of the source.
func Any[E any]() *Parser[E, E] {
	p := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, E], error) {
		if reader.Finished() {
			state.RegisterFailure("anything", reader)
			return nil, nil
		}
		return &Continue[E, E]{Remainder: reader.Rest(), Value: reader.First()}, nil
	})
	p.repr = func() string { return "any" }
	return p
}

// Eof succeeds with no consumption iff reader is finished.
func Eof[E any]() *Parser[E, struct{}] {
	p := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, struct{}], error) {
		if reader.Finished() {
			return &Continue[E, struct{}]{Remainder: reader, Value: struct{}{}}, nil
		}
		state.RegisterFailure("end of source", reader)
		return nil, nil
	})
	p.repr = func() string { return "eof" }
	return p
}

// Succeed always matches, consuming nothing, producing value.
func Succeed[E, T any](value T) *Parser[E, T] {
	p := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		return &Continue[E, T]{Remainder: reader, Value: value}, nil
	})
	p.repr = func() string { return "success(...)" }
	return p
}

// Fail always fails to match, registering msg as the expected description at
// the current position.
func Fail[E, T any](msg string) *Parser[E, T] {
	p := newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		state.RegisterFailure(msg, reader)
		return nil, nil
	})
	p.repr = func() string { return "failure(" + strconv.Quote(msg) + ")" }
	return p
}
