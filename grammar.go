package parsec

import "regexp"

// DefaultWhitespace is the whitespace pattern a new Grammar uses unless a
// different one is requested: zero or more whitespace characters, matching
// the historical default of the library this spec was distilled from
// (spec.md §4.7, original_source/src/parsita/options.py
// `default_whitespace = re.compile(r'\s*')`).
const DefaultWhitespace = `\s*`

// Grammar is the explicit binding-phase context spec.md §4.7 describes in
// host-language-neutral terms: it scopes the whitespace policy consulted by
// Lit/Reg at construction time. Binding a parser to a grammar slot (setting
// its Name and Protected flag, spec.md §4.3/§4.7) is done with the
// package-level Name function, not a Grammar method.
//
// Go has no class-body metaclass magic to auto-create forward declarations
// from as-yet-undefined name references the way the host language this spec
// abstracts over does; grammars built with this package instead declare
// forwards explicitly with Fwd and bind them with its returned define
// function. This is the one deliberate simplification of the "naming and
// forward-declaration binding phase", which spec.md §1 already scopes out
// as host-language sugar with only "a minimal abstract contract" required.
type Grammar struct {
	whitespace *Parser[byte, string]
}

// NewGrammar creates a Grammar whose Lit/Reg consume the given whitespace
// regular expression before and after every match. An empty pattern
// disables whitespace skipping entirely (equivalent to Python's
// ParserContext(whitespace=None)).
func NewGrammar(whitespace string) *Grammar {
	g := &Grammar{}
	if whitespace != "" {
		// Compiled directly, not through g.Reg, so the whitespace parser
		// itself never tries to skip whitespace around itself.
		re := regexp.MustCompile(whitespace)
		ws := newParser(func(state *State[byte], reader Reader[byte]) (*Continue[byte, string], error) {
			sr := reader.(*StringReader)
			loc := re.FindStringIndex(sr.Source()[sr.Position():])
			if loc == nil || loc[0] != 0 {
				return &Continue[byte, string]{Remainder: reader, Value: ""}, nil
			}
			value := sr.Source()[sr.Position()+loc[0] : sr.Position()+loc[1]]
			return &Continue[byte, string]{Remainder: sr.Drop(len(value)), Value: value}, nil
		})
		ws.repr = func() string { return "whitespace" }
		g.whitespace = ws
	}
	return g
}

// NewTextGrammar is NewGrammar(DefaultWhitespace): the common case of a text
// grammar that skips ordinary whitespace between tokens.
func NewTextGrammar() *Grammar {
	return NewGrammar(DefaultWhitespace)
}

// Lit matches a literal string, skipping g's configured whitespace before
// and after (spec.md §4.4, §4.7 "the whitespace parser baked into each
// terminal is fixed once").
func (g *Grammar) Lit(pattern string) *Parser[byte, string] {
	return Lit(pattern, g.whitespace)
}

// Reg matches a regular expression, skipping g's configured whitespace
// before and after.
func (g *Grammar) Reg(pattern string) *Parser[byte, string] {
	return Reg(pattern, g.whitespace)
}

// Whitespace exposes the grammar's configured whitespace parser, or nil if
// whitespace skipping is disabled.
func (g *Grammar) Whitespace() *Parser[byte, string] {
	return g.whitespace
}

// Name binds p to a grammar slot: it sets p's Name (used in diagnostics) and
// marks it Protected, so that Or/First/Longest downstream do not flatten it
// into their operand list the way an anonymous intermediate alternative would
// be (spec.md §4.3, §4.7). Seq never flattens, so Protected has no effect there. Name returns p so it can be used inline:
//
//	expr := Name("expr", Longest(number, parenExpr))
func Name[E, T any](name string, p *Parser[E, T]) *Parser[E, T] {
	p.name = name
	p.protected = true
	return p
}
