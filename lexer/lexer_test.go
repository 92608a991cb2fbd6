package lexer

import (
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/types"
)

func kinds(toks []types.Token) []types.TokenKind {
	var ret []types.TokenKind
	for _, t := range toks {
		ret = append(ret, t.Kind)
	}
	return ret
}

func sameKinds(a, b []types.TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexerKinds(t *testing.T) {
	cases := []struct {
		src  string
		want []types.TokenKind
	}{
		{"1 + 2", []types.TokenKind{types.INTEGER, types.PLUS, types.INTEGER, types.EOF}},
		{"a == b != c", []types.TokenKind{types.IDENT, types.EQ, types.IDENT, types.NE, types.IDENT, types.EOF}},
		{"a >= b <= c > d < e", []types.TokenKind{types.IDENT, types.GE, types.IDENT, types.LE, types.IDENT, types.GT, types.IDENT, types.LT, types.IDENT, types.EOF}},
		{"| * -> 1", []types.TokenKind{types.PIPE, types.MUL, types.ARROW, types.INTEGER, types.EOF}},
		{"x = - 1", []types.TokenKind{types.IDENT, types.ASSIGN, types.MINUS, types.INTEGER, types.EOF}},
		{"let fn match and or not if elif else while return", []types.TokenKind{
			types.LET, types.FN, types.MATCH, types.AND, types.OR, types.NOT, types.IF,
			types.ELIF, types.ELSE, types.WHILE, types.RETURN, types.EOF,
		}},
		{"true false", []types.TokenKind{types.BOOLEAN, types.BOOLEAN, types.EOF}},
		{"f(a, b):", []types.TokenKind{types.IDENT, types.LPAREN, types.IDENT, types.COMMA, types.IDENT, types.RPAREN, types.COLON, types.EOF}},
		{"1 // comment\n2", []types.TokenKind{types.INTEGER, types.NEWLINE, types.INTEGER, types.EOF}},
		{"10 / 2 % 3", []types.TokenKind{types.INTEGER, types.DIV, types.INTEGER, types.MOD, types.INTEGER, types.EOF}},
		{"\n\n", []types.TokenKind{types.NEWLINE, types.NEWLINE, types.EOF}},
		{"1.5 2", []types.TokenKind{types.FLOAT, types.INTEGER, types.EOF}},
	}

	for _, c := range cases {
		toks, err := Tokenize(c.src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.src, err)
		}
		if got := kinds(toks); !sameKinds(got, c.want) {
			t.Errorf("%q: got %v, want %v", c.src, got, c.want)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	toks, err := Tokenize("let a = 1\n    print(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []types.Position{
		{Line: 0, Column: 0},
		{Line: 0, Column: 4},
		{Line: 0, Column: 6},
		{Line: 0, Column: 8},
		{Line: 0, Column: 9},
		{Line: 1, Column: 4},
		{Line: 1, Column: 9},
		{Line: 1, Column: 10},
		{Line: 1, Column: 11},
		{Line: 1, Column: 12},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %s", len(toks), len(want), repr.String(toks))
	}
	for i, w := range want {
		if toks[i].Pos != w {
			t.Errorf("token %d (%s): got %v, want %v", i, toks[i].Kind, toks[i].Pos, w)
		}
	}
}

func TestLexerValues(t *testing.T) {
	toks, err := Tokenize(`foo 42 3.25 "a\"b\n" true`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"foo", "42", "3.25", "a\"b\n", "true"}
	for i, w := range want {
		if toks[i].Value != w {
			t.Errorf("token %d: got %q, want %q", i, toks[i].Value, w)
		}
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	for _, src := range []string{"1 $ 2", "a ! b", "@"} {
		_, err := Tokenize(src)
		if _, ok := err.(errors.InvalidCharacter); !ok {
			t.Errorf("%q: expected InvalidCharacter, got %#v", src, err)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := Tokenize("\"abc\nx")
	if _, ok := err.(errors.UnterminatedString); !ok {
		t.Fatalf("expected UnterminatedString, got %#v", err)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := NewLexer(strings.NewReader("a b"))
	if !l.PeekIs(types.IDENT) {
		t.Fatalf("expected IDENT")
	}
	first := l.Lex()
	second := l.Lex()
	if first.Value != "a" || second.Value != "b" {
		t.Fatalf("got %s then %s", first, second)
	}
	if l.Lex().Kind != types.EOF {
		t.Fatalf("expected EOF")
	}
}

func TestLexExpectingPanicsWithSyntaxError(t *testing.T) {
	l := NewLexer(strings.NewReader("\n  )"))
	l.Lex()
	defer func() {
		r := recover()
		err, ok := r.(errors.SyntaxError)
		if !ok {
			t.Fatalf("expected SyntaxError, got %#v", r)
		}
		if err.Got != types.RPAREN || err.Pos.Line != 1 || err.Pos.Column != 2 {
			t.Fatalf("unexpected error: %s", repr.String(err))
		}
		if err.Error() != "invalid syntax: got RPAREN, expected one of [IDENT] at (l2:c3)" {
			t.Fatalf("unexpected message: %s", err.Error())
		}
	}()
	l.LexExpecting(types.IDENT)
}
