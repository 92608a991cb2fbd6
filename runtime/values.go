package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/evasseure/huil/ast"
)

type Kind int

const (
	NilKind Kind = iota
	IntKind
	FloatKind
	StringKind
	BoolKind
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case FunctionKind:
		return "function"
	default:
		return "unknown"
	}
}

// Value is anything a huil expression can produce.
type Value interface {
	Kind() Kind
	String() string
}

type Int int64

func (v Int) Kind() Kind      { return IntKind }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

type Float float64

func (v Float) Kind() Kind { return FloatKind }

// String always shows a fractional part so floats stay distinguishable from ints.
func (v Float) String() string {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type String string

func (v String) Kind() Kind      { return StringKind }
func (v String) String() string { return string(v) }

type Bool bool

func (v Bool) Kind() Kind      { return BoolKind }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

type NilValue struct{}

func (v NilValue) Kind() Kind      { return NilKind }
func (v NilValue) String() string { return "nil" }

// Nil is the single nil value.
var Nil Value = NilValue{}

// Function is a user definition. It captures no scope: its body resolves free
// names through the frame of whoever calls it.
type Function struct {
	Def *ast.FunctionDef
}

func (v *Function) Kind() Kind      { return FunctionKind }
func (v *Function) String() string { return "<fn " + v.Def.Name + ">" }

// Builtin is a host function installed in the root frame.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (v *Builtin) Kind() Kind      { return FunctionKind }
func (v *Builtin) String() string { return "<builtin " + v.Name + ">" }

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	k := v.Kind()
	return k == IntKind || k == FloatKind
}

// ToFloat promotes a numeric value. It must only be called when IsNumeric(v).
func ToFloat(v Value) float64 {
	switch n := v.(type) {
	case Int:
		return float64(n)
	case Float:
		return float64(n)
	}
	panic("ToFloat on " + v.Kind().String())
}

// Equal is value equality as used by match. Numbers compare across int and
// float; values of other differing kinds are never equal.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		if ai, ok := a.(Int); ok {
			if bi, ok := b.(Int); ok {
				return ai == bi
			}
		}
		return ToFloat(a) == ToFloat(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case String:
		return av == b.(String)
	case Bool:
		return av == b.(Bool)
	case NilValue:
		return true
	default:
		return a == b
	}
}

// Truthy decides if/elif/while conditions.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case NilValue:
		return false
	case Int:
		return t != 0
	case Float:
		return t != 0
	case String:
		return t != ""
	default:
		return true
	}
}
