package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/types"
)

type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	peeked *types.Token
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

// read returns the next rune and the position it was read at.
func (l *Lexer) read() (rune, types.Position, bool) {
	at := l.pos
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, at, false
		}
		panic(err)
	}
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column++
	}
	return r, at, true
}

// peekRune looks at the next rune without consuming it. It returns 0 at EOF.
func (l *Lexer) peekRune() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0
		}
		panic(err)
	}
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	return r
}

// peekBytes returns up to n upcoming bytes.
func (l *Lexer) peekBytes(n int) []byte {
	byt, err := l.reader.Peek(n)
	if err != nil && err != io.EOF {
		panic(err)
	}
	return byt
}

func (l *Lexer) peekByte() byte {
	byt := l.peekBytes(1)
	if len(byt) == 0 {
		return 0
	}
	return byt[0]
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdent(first rune) string {
	var lit strings.Builder
	lit.WriteRune(first)
	for otherChar(l.peekRune()) {
		r, _, _ := l.read()
		lit.WriteRune(r)
	}
	return lit.String()
}

func (l *Lexer) lexNumber(first rune) (types.TokenKind, string) {
	var lit strings.Builder
	lit.WriteRune(first)
	kind := types.INTEGER
	for {
		next := l.peekBytes(2)
		switch {
		case len(next) > 0 && isDigitByte(next[0]):
		case len(next) == 2 && next[0] == '.' && isDigitByte(next[1]) && kind == types.INTEGER:
			kind = types.FLOAT
		default:
			return kind, lit.String()
		}
		r, _, _ := l.read()
		lit.WriteRune(r)
	}
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *Lexer) lexString(start types.Position) string {
	var lit strings.Builder
	for {
		r, _, ok := l.read()
		if !ok || r == '\n' {
			panic(errors.UnterminatedString{Pos: start})
		}
		switch r {
		case '"':
			return lit.String()
		case '\\':
			esc, _, ok := l.read()
			if !ok {
				panic(errors.UnterminatedString{Pos: start})
			}
			switch esc {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			default:
				lit.WriteRune(esc)
			}
		default:
			lit.WriteRune(r)
		}
	}
}

func (l *Lexer) skipComment() {
	for {
		if b := l.peekByte(); b == 0 || b == '\n' {
			return
		}
		l.read()
	}
}

func (l *Lexer) Peek() types.Token {
	if l.peeked != nil {
		return *l.peeked
	}

	tok := l.Lex()
	l.peeked = &tok

	return tok
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) LexExpecting(k ...types.TokenKind) types.Token {
	token := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token
		}
	}

	panic(errors.SyntaxError{
		Expected: k,
		Got:      token.Kind,
		Pos:      token.Pos,
	})
}

var singles = map[rune]types.TokenKind{
	'+': types.PLUS,
	'*': types.MUL,
	'%': types.MOD,
	'/': types.DIV,
	'(': types.LPAREN,
	')': types.RPAREN,
	'|': types.PIPE,
	':': types.COLON,
	',': types.COMMA,
}

// doubles lists the operators that may take a second rune; the longer match wins.
var doubles = map[rune]struct {
	single types.TokenKind
	next   byte
	double types.TokenKind
}{
	'=': {types.ASSIGN, '=', types.EQ},
	'!': {types.ILLEGAL, '=', types.NE},
	'>': {types.GT, '=', types.GE},
	'<': {types.LT, '=', types.LE},
	'-': {types.MINUS, '>', types.ARROW},
}

// Lex returns the next token. It panics with an errors value on bad input.
func (l *Lexer) Lex() types.Token {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked
	}

	for {
		r, at, ok := l.read()
		if !ok {
			return types.Token{Kind: types.EOF, Pos: at}
		}

		if r == '\n' {
			return types.Token{Kind: types.NEWLINE, Pos: at}
		}
		if r == '/' && l.peekByte() == '/' {
			l.skipComment()
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		if d, ok := doubles[r]; ok {
			if l.peekByte() == d.next {
				second, _, _ := l.read()
				return types.Token{Kind: d.double, Value: string([]rune{r, second}), Pos: at}
			}
			if d.single == types.ILLEGAL {
				panic(errors.InvalidCharacter{Char: r, Pos: at})
			}
			return types.Token{Kind: d.single, Value: string(r), Pos: at}
		}

		if kind, ok := singles[r]; ok {
			return types.Token{Kind: kind, Value: string(r), Pos: at}
		}

		switch {
		case r == '"':
			return types.Token{Kind: types.STRING, Value: l.lexString(at), Pos: at}
		case r < unicode.MaxASCII && isDigitByte(byte(r)):
			kind, lit := l.lexNumber(r)
			return types.Token{Kind: kind, Value: lit, Pos: at}
		case firstChar(r):
			lit := l.lexIdent(r)
			if kind, ok := types.Keywords[lit]; ok {
				return types.Token{Kind: kind, Value: lit, Pos: at}
			}
			return types.Token{Kind: types.IDENT, Value: lit, Pos: at}
		}

		panic(errors.InvalidCharacter{Char: r, Pos: at})
	}
}

// Next is the non-panicking form of Lex.
func (l *Lexer) Next() (tok types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = rerr
		}
	}()
	return l.Lex(), nil
}

// Tokenize lexes src up to and including the EOF token.
func Tokenize(src string) ([]types.Token, error) {
	l := NewLexer(strings.NewReader(src))
	var ret []types.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return ret, err
		}
		ret = append(ret, tok)
		if tok.Kind == types.EOF {
			return ret, nil
		}
	}
}
