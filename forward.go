package parsec

// Fwd creates a forward declaration: a parser placeholder whose concrete
// definition is supplied later via the returned define function. This is
// what makes mutually (or directly) recursive grammars possible — `a`
// referring to `b` referring back to `a` — since Go, unlike the host
// languages this spec is neutral about, requires every value to exist
// before it is referenced (spec.md §4.6).
//
// The returned *Parser[E, T] is the stable node identity used for packrat
// memoization and for repr/name purposes; it survives being Defined, which
// only ever changes what it forwards to, never its identity. Calling
// Consume on a forward declaration before it has been defined is a grammar
// construction error caught by panicking, just as calling an undefined
// Python name would raise (spec.md §4.6: "no consume is legal" before
// binding).
//
// This generalizes the teacher's NewAlias (tools.go), which offered the
// same instance/define split for a single fixed output type.
func Fwd[E, T any]() (fwd *Parser[E, T], define func(*Parser[E, T])) {
	cell := &forwardCell[E, T]{}

	fwd = newParser(func(state *State[E], reader Reader[E]) (*Continue[E, T], error) {
		if cell.target == nil {
			panic("parsec: forward declaration used before being defined")
		}
		return cell.target.Consume(state, reader)
	})
	fwd.repr = func() string {
		if cell.target == nil {
			return "fwd()"
		}
		return cell.target.nameOrRepr()
	}

	define = func(actual *Parser[E, T]) {
		cell.target = actual
	}

	return fwd, define
}

type forwardCell[E, T any] struct {
	target *Parser[E, T]
}
