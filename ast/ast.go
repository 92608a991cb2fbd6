package ast

import "github.com/evasseure/huil/types"

// Node is the closed set of syntax tree variants. Nodes are never mutated after parsing.
type Node interface {
	is_Node()
	Position() types.Position
}

type StatementList struct {
	Tok        types.Token
	Statements []Node
}

func (v *StatementList) is_Node()                 {}
func (v *StatementList) Position() types.Position { return v.Tok.Pos }

// Declaration is `let Name = Value`. Value is a NilLiteral when no initializer was written.
type Declaration struct {
	Tok   types.Token
	Name  string
	Value Node
}

func (v *Declaration) is_Node()                 {}
func (v *Declaration) Position() types.Position { return v.Tok.Pos }

type Assignment struct {
	Tok   types.Token
	Name  string
	Value Node
}

func (v *Assignment) is_Node()                 {}
func (v *Assignment) Position() types.Position { return v.Tok.Pos }

type VariableRef struct {
	Tok  types.Token
	Name string
}

func (v *VariableRef) is_Node()                 {}
func (v *VariableRef) Position() types.Position { return v.Tok.Pos }

// NumberLiteral holds either an int64 or a float64, as told by IsFloat.
type NumberLiteral struct {
	Tok     types.Token
	IsFloat bool
	Int     int64
	Float   float64
}

func (v *NumberLiteral) is_Node()                 {}
func (v *NumberLiteral) Position() types.Position { return v.Tok.Pos }

type StringLiteral struct {
	Tok   types.Token
	Value string
}

func (v *StringLiteral) is_Node()                 {}
func (v *StringLiteral) Position() types.Position { return v.Tok.Pos }

type BooleanLiteral struct {
	Tok   types.Token
	Value bool
}

func (v *BooleanLiteral) is_Node()                 {}
func (v *BooleanLiteral) Position() types.Position { return v.Tok.Pos }

type NilLiteral struct {
	Tok types.Token
}

func (v *NilLiteral) is_Node()                 {}
func (v *NilLiteral) Position() types.Position { return v.Tok.Pos }

type UnaryOp struct {
	Tok     types.Token
	Op      types.TokenKind
	Operand Node
}

func (v *UnaryOp) is_Node()                 {}
func (v *UnaryOp) Position() types.Position { return v.Tok.Pos }

type BinaryOp struct {
	Tok   types.Token
	Op    types.TokenKind
	Left  Node
	Right Node
}

func (v *BinaryOp) is_Node()                 {}
func (v *BinaryOp) Position() types.Position { return v.Tok.Pos }

type FunctionDef struct {
	Tok    types.Token
	Name   string
	Params []string
	Body   *StatementList
}

func (v *FunctionDef) is_Node()                 {}
func (v *FunctionDef) Position() types.Position { return v.Tok.Pos }

type FunctionCall struct {
	Tok  types.Token
	Name string
	Args []Node
}

func (v *FunctionCall) is_Node()                 {}
func (v *FunctionCall) Position() types.Position { return v.Tok.Pos }

// If holds the if and elif branches pairwise in Conditions and Bodies.
// Else is nil when there is no else branch.
type If struct {
	Tok        types.Token
	Conditions []Node
	Bodies     []*StatementList
	Else       *StatementList
}

func (v *If) is_Node()                 {}
func (v *If) Position() types.Position { return v.Tok.Pos }

type While struct {
	Tok       types.Token
	Condition Node
	Body      *StatementList
}

func (v *While) is_Node()                 {}
func (v *While) Position() types.Position { return v.Tok.Pos }

type Return struct {
	Tok   types.Token
	Value Node
}

func (v *Return) is_Node()                 {}
func (v *Return) Position() types.Position { return v.Tok.Pos }

// MatchArm is one `| Pattern -> Expr` line. Pattern is nil for the `*` wildcard.
type MatchArm struct {
	Tok      types.Token
	Pattern  Node
	Wildcard bool
	Expr     Node
}

type Match struct {
	Tok     types.Token
	Subject Node
	Arms    []MatchArm
}

func (v *Match) is_Node()                 {}
func (v *Match) Position() types.Position { return v.Tok.Pos }
