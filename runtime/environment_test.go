package runtime

import (
	"testing"

	"github.com/evasseure/huil/errors"
)

func TestDeclareGetSet(t *testing.T) {
	env := NewEnvironment()
	if err := env.Declare("a", Int(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Set("a", String("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := env.Get("a")
	if err != nil || v != String("x") {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", Int(1))
	err := env.Declare("a", Int(2))
	if _, ok := err.(errors.DuplicateDeclaration); !ok {
		t.Fatalf("expected DuplicateDeclaration, got %#v", err)
	}
}

func TestUndeclared(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get("nope"); err != (errors.UndeclaredVariable{Name: "nope"}) {
		t.Fatalf("unexpected error from Get: %#v", err)
	}
	if err := env.Set("nope", Nil); err != (errors.UndeclaredVariable{Name: "nope"}) {
		t.Fatalf("unexpected error from Set: %#v", err)
	}
}

func TestShadowingAndOuterSet(t *testing.T) {
	root := NewEnvironment()
	root.Declare("a", Int(1))
	root.Declare("b", Int(1))

	child := root.Child()
	if err := child.Declare("a", Int(10)); err != nil {
		t.Fatalf("shadowing a parent binding must be allowed: %v", err)
	}
	if err := child.Set("b", Int(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !child.Has("a") || child.Has("b") {
		t.Fatalf("Has must only look at the frame itself")
	}

	if v, _ := child.Get("a"); v != Int(10) {
		t.Fatalf("child a = %v", v)
	}
	child.Release()

	if v, _ := root.Get("a"); v != Int(1) {
		t.Fatalf("root a = %v", v)
	}
	if v, _ := root.Get("b"); v != Int(2) {
		t.Fatalf("root b = %v, set through the child must reach the root", v)
	}
}

func TestStackDiscipline(t *testing.T) {
	root := NewEnvironment()
	a := root.Child()
	b := a.Child()
	if root.Depth() != 3 {
		t.Fatalf("depth = %d", root.Depth())
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("releasing a frame below the top must panic")
			}
		}()
		a.Release()
	}()

	b.Release()
	a.Release()
	if root.Depth() != 1 {
		t.Fatalf("depth = %d", root.Depth())
	}

	// A released slot is reused by the next call frame.
	c := root.Child()
	if _, err := c.Get("x"); err == nil {
		t.Fatalf("fresh frame must not see bindings of a released one")
	}
}

func TestBuiltinsInRoot(t *testing.T) {
	p := &Builtin{Name: "print", Fn: func(args []Value) (Value, error) { return Nil, nil }}
	root := NewEnvironment(p)
	v, err := root.Child().Get("print")
	if err != nil || v != Value(p) {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestEqualAndTruthy(t *testing.T) {
	if !Equal(Int(2), Float(2)) || Equal(Int(1), String("1")) || !Equal(Nil, Nil) || Equal(Bool(true), Int(1)) {
		t.Fatalf("unexpected equality results")
	}
	for _, v := range []Value{Bool(false), Nil, Int(0), Float(0), String("")} {
		if Truthy(v) {
			t.Errorf("%v must be falsy", v)
		}
	}
	for _, v := range []Value{Bool(true), Int(-1), Float(0.5), String("a")} {
		if !Truthy(v) {
			t.Errorf("%v must be truthy", v)
		}
	}
	if Float(22).String() != "22.0" || Float(2.5).String() != "2.5" {
		t.Fatalf("float formatting: %s %s", Float(22), Float(2.5))
	}
}
