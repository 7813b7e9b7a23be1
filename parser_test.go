package parsec

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLitWhitespace(t *testing.T) {
	g := NewTextGrammar()
	p := g.Lit("hello")

	result := ParseString(p, "  hello  ")
	assert.True(t, result.IsSuccess())
	value, ok := result.Value()
	assert.True(t, ok)
	assert.Equal(t, "hello", value)
}

func TestSeqDiscardFarthest(t *testing.T) {
	g := NewTextGrammar()
	p := DiscardLeft(g.Lit("("), DiscardRight(g.Lit("x"), g.Lit(")")))

	result := ParseString(p, "(x")
	assert.False(t, result.IsSuccess())
	assert.Contains(t, result.Err().Error(), `")"`)
}

func TestAlternativesFarthestExpectedSet(t *testing.T) {
	g := NewTextGrammar()
	abc := First(g.Lit("abc"), g.Lit("abd"), g.Lit("ax"))

	result := ParseString(abc, "abz")
	assert.False(t, result.IsSuccess())
	msg := result.Err().Error()
	assert.Contains(t, msg, `"abc"`)
	assert.Contains(t, msg, `"abd"`)
}

func TestRepSepTrailingSeparatorNotConsumed(t *testing.T) {
	g := NewTextGrammar()
	item := g.Reg(`[0-9]+`)
	comma := g.Lit(",")
	list := RepSep(item, comma, 0, -1)

	result := ParseString(list, "1,2,3,")
	assert.False(t, result.IsSuccess())

	state := NewState[byte]()
	status, err := list.Consume(state, NewStringReader("1,2,3,"))
	assert.NoError(t, err)
	assert.True(t, status != nil)
	assert.Equal(t, []string{"1", "2", "3"}, status.Value)
	assert.Equal(t, 5, status.Remainder.Position())
}

func TestRepZeroProgressRecursionError(t *testing.T) {
	g := NewGrammar("")
	p := Rep(Opt(g.Lit("a")), 0, -1)

	state := NewState[byte]()
	_, err := p.Consume(state, NewStringReader("aab"))
	assert.Error(t, err)

	var recErr *RecursionError[byte]
	assert.True(t, errors.As(err, &recErr))
}

func TestBindMonadicComposition(t *testing.T) {
	g := NewTextGrammar()
	length := Map(g.Reg(`[0-9]+`), func(s string) int {
		n := 0
		for _, c := range s {
			n = n*10 + int(c-'0')
		}
		return n
	})
	heredoc := Bind(DiscardLeft(g.Lit("<<"), length), func(n int) *Parser[byte, string] {
		return Reg(".{"+itoa(n)+"}", nil)
	})

	result := ParseString(heredoc, "<<5hello")
	assert.True(t, result.IsSuccess())
	value, _ := result.Value()
	assert.Equal(t, "hello", value)
}

func TestMapChangesType(t *testing.T) {
	g := NewTextGrammar()
	digits := Map(g.Reg(`[0-9]+`), func(s string) int { return len(s) })
	result := ParseString(digits, "12345")
	assert.True(t, result.IsSuccess())
	value, _ := result.Value()
	assert.Equal(t, 5, value)
}

func TestForwardDeclarationRecursiveGrammar(t *testing.T) {
	g := NewTextGrammar()
	expr, defineExpr := Fwd[byte, int]()

	atom := Or(
		Map(g.Reg(`[0-9]+`), func(s string) int {
			n := 0
			for _, c := range s {
				n = n*10 + int(c-'0')
			}
			return n
		}),
		DiscardLeft(g.Lit("("), DiscardRight(expr, g.Lit(")"))),
	)
	defineExpr(Name("expr", atom))

	result := ParseString(expr, "((42))")
	assert.True(t, result.IsSuccess())
	value, _ := result.Value()
	assert.Equal(t, 42, value)
}

func TestPredDescribesFailureAtRemainder(t *testing.T) {
	g := NewTextGrammar()
	even := Pred(g.Reg(`[0-9]+`), func(s string) bool {
		return (s[len(s)-1]-'0')%2 == 0
	}, "an even number")

	result := ParseString(even, "7")
	assert.False(t, result.IsSuccess())
	assert.Contains(t, result.Err().Error(), "an even number")
}

func TestUntilExcludesMatchedInnerFromResult(t *testing.T) {
	g := NewTextGrammar()
	comment := DiscardRight(Until(g.Lit("*/")), g.Lit("*/"))
	result := ParseString(comment, "hello world*/")
	assert.True(t, result.IsSuccess())
	value, _ := result.Value()
	assert.Equal(t, "hello world", value)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
