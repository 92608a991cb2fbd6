package interpreter

import (
	"math"

	"github.com/evasseure/huil/ast"
	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/runtime"
	"github.com/evasseure/huil/types"
)

func operandError(n *ast.BinaryOp, left, right runtime.Value) error {
	return errors.TypeOperand{
		Op:    n.Op.Symbol(),
		Left:  left.Kind().String(),
		Right: right.Kind().String(),
		Pos:   n.Tok.Pos,
	}
}

func (i *Interpreter) evalUnary(n *ast.UnaryOp, env *runtime.Environment) (runtime.Value, error) {
	v, err := i.eval(n.Operand, env)
	if err != nil {
		return nil, err
	}

	bad := errors.TypeOperand{Op: n.Op.Symbol(), Left: v.Kind().String(), Pos: n.Tok.Pos}
	switch n.Op {
	case types.NOT:
		b, ok := v.(runtime.Bool)
		if !ok {
			return nil, bad
		}
		return !b, nil
	case types.PLUS:
		if !runtime.IsNumeric(v) {
			return nil, bad
		}
		return v, nil
	case types.MINUS:
		switch num := v.(type) {
		case runtime.Int:
			return -num, nil
		case runtime.Float:
			return -num, nil
		}
		return nil, bad
	}

	panic("unhandled unary operator " + n.Op.String())
}

// evalBinary always evaluates both operands first; and/or do not short-circuit.
func (i *Interpreter) evalBinary(n *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case types.AND, types.OR:
		lb, lok := left.(runtime.Bool)
		rb, rok := right.(runtime.Bool)
		if !lok || !rok {
			return nil, operandError(n, left, right)
		}
		if n.Op == types.AND {
			return lb && rb, nil
		}
		return lb || rb, nil
	}

	if !runtime.IsNumeric(left) || !runtime.IsNumeric(right) {
		return nil, operandError(n, left, right)
	}
	li, lInt := left.(runtime.Int)
	ri, rInt := right.(runtime.Int)
	if lInt && rInt {
		return intArith(n, int64(li), int64(ri))
	}
	return floatArith(n, runtime.ToFloat(left), runtime.ToFloat(right))
}

func intArith(n *ast.BinaryOp, l, r int64) (runtime.Value, error) {
	switch n.Op {
	case types.PLUS:
		return runtime.Int(l + r), nil
	case types.MINUS:
		return runtime.Int(l - r), nil
	case types.MUL:
		return runtime.Int(l * r), nil
	case types.DIV:
		if r == 0 {
			return nil, errors.DivisionByZero{Pos: n.Tok.Pos}
		}
		return runtime.Float(float64(l) / float64(r)), nil
	case types.MOD:
		if r == 0 {
			return nil, errors.DivisionByZero{Pos: n.Tok.Pos}
		}
		m := l % r
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return runtime.Int(m), nil
	case types.LT:
		return runtime.Bool(l < r), nil
	case types.GT:
		return runtime.Bool(l > r), nil
	case types.LE:
		return runtime.Bool(l <= r), nil
	case types.GE:
		return runtime.Bool(l >= r), nil
	case types.EQ:
		return runtime.Bool(l == r), nil
	case types.NE:
		return runtime.Bool(l != r), nil
	}

	panic("unhandled binary operator " + n.Op.String())
}

func floatArith(n *ast.BinaryOp, l, r float64) (runtime.Value, error) {
	switch n.Op {
	case types.PLUS:
		return runtime.Float(l + r), nil
	case types.MINUS:
		return runtime.Float(l - r), nil
	case types.MUL:
		return runtime.Float(l * r), nil
	case types.DIV:
		if r == 0 {
			return nil, errors.DivisionByZero{Pos: n.Tok.Pos}
		}
		return runtime.Float(l / r), nil
	case types.MOD:
		if r == 0 {
			return nil, errors.DivisionByZero{Pos: n.Tok.Pos}
		}
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return runtime.Float(m), nil
	case types.LT:
		return runtime.Bool(l < r), nil
	case types.GT:
		return runtime.Bool(l > r), nil
	case types.LE:
		return runtime.Bool(l <= r), nil
	case types.GE:
		return runtime.Bool(l >= r), nil
	case types.EQ:
		return runtime.Bool(l == r), nil
	case types.NE:
		return runtime.Bool(l != r), nil
	}

	panic("unhandled binary operator " + n.Op.String())
}
