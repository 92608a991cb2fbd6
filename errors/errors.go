package errors

import (
	"fmt"
	"strings"

	"github.com/evasseure/huil/types"
	"github.com/ztrue/tracerr"
)

// SyntaxError is raised by the parser when a token does not fit the current production.
type SyntaxError struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Pos      types.Position
	Msg      string
}

func (e SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid syntax: %s, got %s at %s", e.Msg, e.Got, e.Pos)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("invalid syntax: unexpected %s at %s", e.Got, e.Pos)
	}
	var names []string
	for _, k := range e.Expected {
		names = append(names, k.String())
	}
	return fmt.Sprintf("invalid syntax: got %s, expected one of [%s] at %s", e.Got, strings.Join(names, ", "), e.Pos)
}

type InvalidCharacter struct {
	Char rune
	Pos  types.Position
}

func (e InvalidCharacter) Error() string {
	return fmt.Sprintf("invalid character: %q at %s", e.Char, e.Pos)
}

type UnterminatedString struct {
	Pos types.Position
}

func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string starting at %s", e.Pos)
}

type DuplicateDeclaration struct {
	Name string
}

func (e DuplicateDeclaration) Error() string {
	return fmt.Sprintf("variable already declared: %s", e.Name)
}

type UndeclaredVariable struct {
	Name string
}

func (e UndeclaredVariable) Error() string {
	return fmt.Sprintf("undeclared variable: %s", e.Name)
}

// TypeOperand reports an operator applied to operands of the wrong kind.
// Right is empty for unary operators.
type TypeOperand struct {
	Op    string
	Left  string
	Right string
	Pos   types.Position
}

func (e TypeOperand) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("unsupported operand kind for %s: %s at %s", e.Op, e.Left, e.Pos)
	}
	return fmt.Sprintf("unsupported operand kinds for %s: %s and %s at %s", e.Op, e.Left, e.Right, e.Pos)
}

type ArityError struct {
	Name string
	Want int
	Got  int
	Pos  types.Position
}

func (e ArityError) Error() string {
	return fmt.Sprintf("%s expects %d arguments, got %d at %s", e.Name, e.Want, e.Got, e.Pos)
}

type NotCallable struct {
	Name string
	Kind string
	Pos  types.Position
}

func (e NotCallable) Error() string {
	return fmt.Sprintf("%s is a %s, not a function at %s", e.Name, e.Kind, e.Pos)
}

type DivisionByZero struct {
	Pos types.Position
}

func (e DivisionByZero) Error() string {
	return fmt.Sprintf("division by zero at %s", e.Pos)
}

// RecursionLimit is raised when nested calls exceed the interpreter's maximum depth.
type RecursionLimit struct {
	Name  string
	Depth int
	Pos   types.Position
}

func (e RecursionLimit) Error() string {
	return fmt.Sprintf("maximum call depth %d exceeded calling %s at %s", e.Depth, e.Name, e.Pos)
}

// Cause strips the tracerr stack wrapper added at Parse and Interpret boundaries.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	return tracerr.Unwrap(err)
}
