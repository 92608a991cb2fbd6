package interpreter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/evasseure/huil/ast"
	"github.com/evasseure/huil/errors"
	"github.com/evasseure/huil/parser"
	"github.com/evasseure/huil/runtime"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/evasseure/huil", "interpreter")

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where print and input prompts write. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithInput sets where input reads lines from. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		i.in = bufio.NewReader(r)
	}
}

// WithEcho makes Interpret return the value of the last top-level statement
// when that statement is an expression. Interactive hosts use it to display results.
func WithEcho(echo bool) Option {
	return func(i *Interpreter) {
		i.echo = echo
	}
}

// DefaultMaxDepth bounds nested function calls.
const DefaultMaxDepth = 10000

// WithMaxDepth sets how deeply calls may nest before RecursionLimit is raised.
func WithMaxDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

// Interpreter evaluates syntax trees against one root environment that lives
// as long as the Interpreter does.
type Interpreter struct {
	out     io.Writer
	in      *bufio.Reader
	echo    bool
	globals *runtime.Environment
	ctx     context.Context

	depth    int
	maxDepth int
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		out:      os.Stdout,
		in:       bufio.NewReader(os.Stdin),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.globals = runtime.NewEnvironment(addBuiltins(i)...)
	return i
}

// Globals exposes the root frame.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Eval parses and interprets src.
func (i *Interpreter) Eval(src string) (runtime.Value, error) {
	root, err := parser.ParseString(src)
	if err != nil {
		return nil, err
	}
	return i.Interpret(root)
}

func (i *Interpreter) Interpret(root *ast.StatementList) (runtime.Value, error) {
	return i.InterpretContext(context.Background(), root)
}

// InterpretContext runs root in the root frame. Its result is Nil unless a
// top-level return is reached, or echo is on and the last statement is an
// expression. Side effects of statements before a failure are kept.
func (i *Interpreter) InterpretContext(ctx context.Context, root *ast.StatementList) (runtime.Value, error) {
	i.ctx = ctx
	defer func() { i.ctx = nil }()

	plog.Debugf("interpreting %d statements", len(root.Statements))
	result := runtime.Nil
	for _, stmt := range root.Statements {
		if ret, ok := stmt.(*ast.Return); ok {
			v, err := i.eval(ret.Value, i.globals)
			if err != nil {
				return nil, tracerr.Wrap(err)
			}
			return v, nil
		}

		v, err := i.eval(stmt, i.globals)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		result = runtime.Nil
		if i.echo && isExpression(stmt) {
			result = v
		}
	}
	plog.Debugf("finished with %s", result.Kind())
	return result, nil
}

func isExpression(n ast.Node) bool {
	switch n.(type) {
	case *ast.VariableRef, *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral,
		*ast.NilLiteral, *ast.UnaryOp, *ast.BinaryOp, *ast.FunctionCall, *ast.Match:
		return true
	}
	return false
}

func (i *Interpreter) interrupted() error {
	if i.ctx == nil {
		return nil
	}
	return i.ctx.Err()
}

// evalBlock runs a statement list. A return ends this list only; returned
// tells whether one was reached.
func (i *Interpreter) evalBlock(list *ast.StatementList, env *runtime.Environment) (v runtime.Value, returned bool, err error) {
	for _, stmt := range list.Statements {
		if ret, ok := stmt.(*ast.Return); ok {
			v, err := i.eval(ret.Value, env)
			return v, err == nil, err
		}
		if _, err := i.eval(stmt, env); err != nil {
			return nil, false, err
		}
	}
	return runtime.Nil, false, nil
}

func (i *Interpreter) eval(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch v := node.(type) {
	case *ast.StatementList:
		val, _, err := i.evalBlock(v, env)
		return val, err
	case *ast.Declaration:
		val, err := i.eval(v.Value, env)
		if err != nil {
			return nil, err
		}
		return runtime.Nil, env.Declare(v.Name, val)
	case *ast.Assignment:
		val, err := i.eval(v.Value, env)
		if err != nil {
			return nil, err
		}
		return runtime.Nil, env.Set(v.Name, val)
	case *ast.VariableRef:
		return env.Get(v.Name)
	case *ast.NumberLiteral:
		if v.IsFloat {
			return runtime.Float(v.Float), nil
		}
		return runtime.Int(v.Int), nil
	case *ast.StringLiteral:
		return runtime.String(v.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Bool(v.Value), nil
	case *ast.NilLiteral:
		return runtime.Nil, nil
	case *ast.UnaryOp:
		return i.evalUnary(v, env)
	case *ast.BinaryOp:
		return i.evalBinary(v, env)
	case *ast.FunctionDef:
		return runtime.Nil, env.Declare(v.Name, &runtime.Function{Def: v})
	case *ast.FunctionCall:
		return i.call(v, env)
	case *ast.If:
		return runtime.Nil, i.evalIf(v, env)
	case *ast.While:
		return runtime.Nil, i.evalWhile(v, env)
	case *ast.Return:
		return i.eval(v.Value, env)
	case *ast.Match:
		return i.evalMatch(v, env)
	}

	panic(fmt.Sprintf("unhandled node %T", node))
}

func (i *Interpreter) evalIf(n *ast.If, env *runtime.Environment) error {
	for idx, cond := range n.Conditions {
		c, err := i.eval(cond, env)
		if err != nil {
			return err
		}
		if runtime.Truthy(c) {
			_, _, err := i.evalBlock(n.Bodies[idx], env)
			return err
		}
	}
	if n.Else != nil {
		_, _, err := i.evalBlock(n.Else, env)
		return err
	}
	return nil
}

func (i *Interpreter) evalWhile(n *ast.While, env *runtime.Environment) error {
	for {
		if err := i.interrupted(); err != nil {
			return err
		}
		c, err := i.eval(n.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(c) {
			return nil
		}
		if _, _, err := i.evalBlock(n.Body, env); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evalMatch(n *ast.Match, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.eval(n.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		if !arm.Wildcard {
			pattern, err := i.eval(arm.Pattern, env)
			if err != nil {
				return nil, err
			}
			if !runtime.Equal(subject, pattern) {
				continue
			}
		}
		return i.eval(arm.Expr, env)
	}
	return runtime.Nil, nil
}

func (i *Interpreter) evalArgs(args []ast.Node, env *runtime.Environment) ([]runtime.Value, error) {
	ret := make([]runtime.Value, 0, len(args))
	for _, a := range args {
		v, err := i.eval(a, env)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// call runs a function in a new frame whose parent is the caller's frame, so
// the body sees the caller's live bindings rather than those of its definition.
func (i *Interpreter) call(n *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if err := i.interrupted(); err != nil {
		return nil, err
	}

	callee, err := env.Get(n.Name)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *runtime.Builtin:
		args, err := i.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return fn.Fn(args)
	case *runtime.Function:
		params := fn.Def.Params
		if len(n.Args) < len(params) {
			return nil, errors.ArityError{Name: n.Name, Want: len(params), Got: len(n.Args), Pos: n.Tok.Pos}
		}
		args, err := i.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		if i.depth >= i.maxDepth {
			return nil, errors.RecursionLimit{Name: n.Name, Depth: i.maxDepth, Pos: n.Tok.Pos}
		}
		i.depth++
		defer func() { i.depth-- }()

		frame := env.Child()
		defer frame.Release()
		for idx, param := range params {
			if err := frame.Declare(param, args[idx]); err != nil {
				return nil, err
			}
		}
		plog.Tracef("call %s with %d arguments at depth %d", n.Name, len(args), frame.Depth())

		v, returned, err := i.evalBlock(fn.Def.Body, frame)
		if err != nil {
			return nil, err
		}
		if !returned {
			return runtime.Nil, nil
		}
		return v, nil
	}

	return nil, errors.NotCallable{Name: n.Name, Kind: callee.Kind().String(), Pos: n.Tok.Pos}
}
