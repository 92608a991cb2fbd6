package types

import (
	"fmt"
)

// Position is a 0-based line/column pair. It prints 1-based.
type Position struct {
	Line   int
	Column int
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	NEWLINE

	INTEGER
	FLOAT
	STRING
	BOOLEAN
	IDENT

	LET
	FN
	MATCH
	AND
	OR
	NOT
	IF
	ELIF
	ELSE
	WHILE
	RETURN

	PLUS
	MINUS
	MUL
	DIV
	MOD
	LPAREN
	RPAREN
	ASSIGN
	PIPE
	COLON
	COMMA
	GT
	LT

	EQ
	NE
	GE
	LE
	ARROW
)

var kindNames = map[TokenKind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",
	INTEGER: "INTEGER",
	FLOAT:   "FLOAT",
	STRING:  "STRING",
	BOOLEAN: "BOOLEAN",
	IDENT:   "IDENT",
	LET:     "LET",
	FN:      "FN",
	MATCH:   "MATCH",
	AND:     "AND",
	OR:      "OR",
	NOT:     "NOT",
	IF:      "IF",
	ELIF:    "ELIF",
	ELSE:    "ELSE",
	WHILE:   "WHILE",
	RETURN:  "RETURN",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	MUL:     "MUL",
	DIV:     "DIV",
	MOD:     "MOD",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	ASSIGN:  "ASSIGN",
	PIPE:    "PIPE",
	COLON:   "COLON",
	COMMA:   "COMMA",
	GT:      "GT",
	LT:      "LT",
	EQ:      "EQ",
	NE:      "NE",
	GE:      "GE",
	LE:      "LE",
	ARROW:   "ARROW",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words to their kinds. true and false lex as BOOLEAN.
var Keywords = map[string]TokenKind{
	"let":    LET,
	"fn":     FN,
	"match":  MATCH,
	"true":   BOOLEAN,
	"false":  BOOLEAN,
	"and":    AND,
	"or":     OR,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"not":    NOT,
}

func (p Position) String() string {
	return fmt.Sprintf("(l%d:c%d)", p.Line+1, p.Column+1)
}

type Token struct {
	Kind  TokenKind
	Value string
	Pos   Position
}

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("%s %s", t.Kind, t.Pos)
	}
	return fmt.Sprintf("%s(%q) %s", t.Kind, t.Value, t.Pos)
}

var symbols = map[TokenKind]string{
	PLUS:  "+",
	MINUS: "-",
	MUL:   "*",
	DIV:   "/",
	MOD:   "%",
	GT:    ">",
	LT:    "<",
	EQ:    "==",
	NE:    "!=",
	GE:    ">=",
	LE:    "<=",
	AND:   "and",
	OR:    "or",
	NOT:   "not",
}

// Symbol is the source spelling of an operator kind.
func (t TokenKind) Symbol() string {
	if s, ok := symbols[t]; ok {
		return s
	}
	return t.String()
}
