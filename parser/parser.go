package parser

import (
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/evasseure/huil/ast"
	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/lexer"
	"github.com/evasseure/huil/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/evasseure/huil", "parser")

// levels lists binary operators from the loosest binding to the tightest.
var levels = [][]types.TokenKind{
	{types.AND, types.OR, types.EQ, types.NE, types.LT, types.GT, types.LE, types.GE},
	{types.PLUS, types.MINUS},
	{types.MUL, types.DIV, types.MOD},
}

type Parser struct {
	l    *lexer.Lexer
	last types.Token
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// ParseString parses a whole program held in memory.
func ParseString(src string) (*ast.StatementList, error) {
	return NewParser(lexer.NewLexer(strings.NewReader(src))).Parse()
}

// Parse consumes the whole token stream. It returns either a complete tree or
// the first lexical or syntax error.
func (p *Parser) Parse() (root *ast.StatementList, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				root = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	root = &ast.StatementList{}
	for {
		p.skipNewlines()
		if p.l.PeekIs(types.EOF) {
			break
		}
		root.Statements = append(root.Statements, p.parseStatement())
	}
	plog.Debugf("parsed %d top-level statements", len(root.Statements))
	return root, nil
}

func (p *Parser) next() types.Token {
	p.last = p.l.Lex()
	return p.last
}

func (p *Parser) expect(k ...types.TokenKind) types.Token {
	p.last = p.l.LexExpecting(k...)
	return p.last
}

func (p *Parser) skipNewlines() {
	for p.l.PeekIs(types.NEWLINE) {
		p.next()
	}
}

// peekOp reports whether an operator of kind k continues the current
// expression. A nested block that already consumed the end of its line
// closes the expression.
func (p *Parser) peekOp(k ...types.TokenKind) bool {
	if p.last.Kind == types.NEWLINE {
		return false
	}
	return p.l.PeekIs(k...)
}

// endSimple terminates a single-line statement.
func (p *Parser) endSimple() {
	if p.last.Kind == types.NEWLINE || p.l.PeekIs(types.EOF) {
		return
	}
	p.expect(types.NEWLINE)
}

func (p *Parser) parseStatement() ast.Node {
	switch p.l.Peek().Kind {
	case types.FN:
		return p.parseFunctionDef()
	case types.IF:
		return p.parseIf()
	case types.WHILE:
		return p.parseWhile()
	}

	var stmt ast.Node
	switch p.l.Peek().Kind {
	case types.LET:
		stmt = p.parseDeclaration()
	case types.RETURN:
		tok := p.next()
		if p.l.PeekIs(types.NEWLINE, types.EOF) {
			stmt = &ast.Return{Tok: tok, Value: &ast.NilLiteral{Tok: tok}}
		} else {
			stmt = &ast.Return{Tok: tok, Value: p.parseExpression()}
		}
	default:
		stmt = p.parseExpressionStatement()
	}
	p.endSimple()
	return stmt
}

// parseBlock reads `:` NEWLINE and then every following statement that starts
// at the same column as the first one.
func (p *Parser) parseBlock() *ast.StatementList {
	p.expect(types.COLON)
	p.expect(types.NEWLINE)
	p.skipNewlines()

	first := p.l.Peek()
	if first.Kind == types.EOF {
		panic(errors.SyntaxError{Msg: "expected an indented block", Got: first.Kind, Pos: first.Pos})
	}

	block := &ast.StatementList{Tok: first}
	for {
		p.skipNewlines()
		tok := p.l.Peek()
		if tok.Kind == types.EOF || tok.Pos.Column != first.Pos.Column {
			break
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	plog.Tracef("block at %s holds %d statements", first.Pos, len(block.Statements))
	return block
}

func (p *Parser) parseDeclaration() ast.Node {
	tok := p.expect(types.LET)
	name := p.expect(types.IDENT)
	if !p.l.PeekIs(types.ASSIGN) {
		return &ast.Declaration{Tok: tok, Name: name.Value, Value: &ast.NilLiteral{Tok: name}}
	}
	p.next()
	return &ast.Declaration{Tok: tok, Name: name.Value, Value: p.parseExpression()}
}

func (p *Parser) parseFunctionDef() ast.Node {
	tok := p.expect(types.FN)
	name := p.expect(types.IDENT)
	p.expect(types.LPAREN)

	var params []string
	if !p.l.PeekIs(types.RPAREN) {
		for {
			param := p.expect(types.IDENT)
			params = append(params, param.Value)
			if p.l.PeekIs(types.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	p.expect(types.RPAREN)

	return &ast.FunctionDef{
		Tok:    tok,
		Name:   name.Value,
		Params: params,
		Body:   p.parseBlock(),
	}
}

func (p *Parser) parseIf() ast.Node {
	tok := p.expect(types.IF)
	node := &ast.If{Tok: tok}
	node.Conditions = append(node.Conditions, p.parseExpression())
	node.Bodies = append(node.Bodies, p.parseBlock())

	for p.l.PeekIs(types.ELIF) {
		p.next()
		node.Conditions = append(node.Conditions, p.parseExpression())
		node.Bodies = append(node.Bodies, p.parseBlock())
	}

	if p.l.PeekIs(types.ELSE) {
		p.next()
		node.Else = p.parseBlock()
	}
	return node
}

func (p *Parser) parseWhile() ast.Node {
	tok := p.expect(types.WHILE)
	cond := p.parseExpression()
	return &ast.While{Tok: tok, Condition: cond, Body: p.parseBlock()}
}

// parseExpressionStatement parses a full expression first and only then
// decides whether it was the target of an assignment.
func (p *Parser) parseExpressionStatement() ast.Node {
	expr := p.parseExpression()
	if !p.peekOp(types.ASSIGN) {
		return expr
	}

	eq := p.next()
	ref, ok := expr.(*ast.VariableRef)
	if !ok {
		panic(errors.SyntaxError{Msg: "cannot assign to expression", Got: eq.Kind, Pos: eq.Pos})
	}
	return &ast.Assignment{Tok: ref.Tok, Name: ref.Name, Value: p.parseExpression()}
}

func (p *Parser) parseExpression() ast.Node {
	return p.parseLevel(0)
}

func (p *Parser) parseLevel(level int) ast.Node {
	if level == len(levels) {
		return p.parseUnary()
	}

	node := p.parseLevel(level + 1)
	for p.peekOp(levels[level]...) {
		op := p.next()
		node = &ast.BinaryOp{
			Tok:   op,
			Op:    op.Kind,
			Left:  node,
			Right: p.parseLevel(level + 1),
		}
	}
	return node
}

func (p *Parser) parseUnary() ast.Node {
	if p.l.PeekIs(types.PLUS, types.MINUS, types.NOT) {
		op := p.next()
		return &ast.UnaryOp{Tok: op, Op: op.Kind, Operand: p.parseUnary()}
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() ast.Node {
	tok := p.expect(types.INTEGER, types.FLOAT, types.STRING, types.BOOLEAN, types.LPAREN, types.IDENT, types.MATCH)

	switch tok.Kind {
	case types.INTEGER:
		parsed, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			panic(errors.SyntaxError{Msg: "integer literal out of range", Got: tok.Kind, Pos: tok.Pos})
		}
		return &ast.NumberLiteral{Tok: tok, Int: parsed}
	case types.FLOAT:
		parsed, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			panic(errors.SyntaxError{Msg: "malformed float literal", Got: tok.Kind, Pos: tok.Pos})
		}
		return &ast.NumberLiteral{Tok: tok, IsFloat: true, Float: parsed}
	case types.STRING:
		return &ast.StringLiteral{Tok: tok, Value: tok.Value}
	case types.BOOLEAN:
		return &ast.BooleanLiteral{Tok: tok, Value: tok.Value == "true"}
	case types.LPAREN:
		expr := p.parseExpression()
		p.expect(types.RPAREN)
		return expr
	case types.IDENT:
		if !p.l.PeekIs(types.LPAREN) {
			return &ast.VariableRef{Tok: tok, Name: tok.Value}
		}
		return p.parseCall(tok)
	case types.MATCH:
		return p.parseMatch(tok)
	}

	panic("unhandled")
}

func (p *Parser) parseCall(name types.Token) ast.Node {
	p.expect(types.LPAREN)

	var args []ast.Node
	if !p.l.PeekIs(types.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if p.l.PeekIs(types.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	p.expect(types.RPAREN)

	return &ast.FunctionCall{Tok: name, Name: name.Value, Args: args}
}

// parseMatch is called after the match keyword. Arms share the column of the first `|`.
func (p *Parser) parseMatch(tok types.Token) ast.Node {
	node := &ast.Match{Tok: tok, Subject: p.parseExpression()}
	p.expect(types.COLON)
	p.expect(types.NEWLINE)
	p.skipNewlines()

	first := p.l.Peek()
	if first.Kind != types.PIPE {
		panic(errors.SyntaxError{Expected: []types.TokenKind{types.PIPE}, Got: first.Kind, Pos: first.Pos})
	}

	for {
		p.skipNewlines()
		armTok := p.l.Peek()
		if armTok.Kind != types.PIPE || armTok.Pos.Column != first.Pos.Column {
			break
		}
		p.next()

		arm := ast.MatchArm{Tok: armTok}
		if p.l.PeekIs(types.MUL) {
			p.next()
			arm.Wildcard = true
		} else {
			arm.Pattern = p.parseExpression()
		}
		p.expect(types.ARROW)
		arm.Expr = p.parseExpression()
		p.endSimple()

		node.Arms = append(node.Arms, arm)
	}
	return node
}
