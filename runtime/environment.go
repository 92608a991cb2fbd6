package runtime

import (
	"fmt"

	"github.com/evasseure/huil/errors"
)

const noParent = -1

type frame struct {
	values map[string]Value
	parent int
}

// arena holds every live frame of one interpreter session. Frames refer to
// their parent by index, and only the topmost frame may be released.
type arena struct {
	frames []frame
}

// Environment is a handle on one frame of an arena.
type Environment struct {
	arena *arena
	id    int
}

// NewEnvironment creates the root frame of a fresh arena and declares the given builtins in it.
func NewEnvironment(builtins ...*Builtin) *Environment {
	a := &arena{}
	a.frames = append(a.frames, frame{values: make(map[string]Value), parent: noParent})
	env := &Environment{arena: a, id: 0}
	for _, b := range builtins {
		if err := env.Declare(b.Name, b); err != nil {
			panic(err)
		}
	}
	return env
}

func (e *Environment) frame() *frame {
	return &e.arena.frames[e.id]
}

// Child pushes a new frame whose parent is e.
func (e *Environment) Child() *Environment {
	e.arena.frames = append(e.arena.frames, frame{values: make(map[string]Value), parent: e.id})
	return &Environment{arena: e.arena, id: len(e.arena.frames) - 1}
}

// Release discards e. It must be the most recently pushed frame still alive.
func (e *Environment) Release() {
	top := len(e.arena.frames) - 1
	if e.id != top || e.id == 0 {
		panic(fmt.Sprintf("release of frame %d while frame %d is on top", e.id, top))
	}
	e.arena.frames[top] = frame{}
	e.arena.frames = e.arena.frames[:top]
}

// Depth is the number of live frames in the arena.
func (e *Environment) Depth() int {
	return len(e.arena.frames)
}

// Has reports whether name is declared in this frame, ignoring parents.
func (e *Environment) Has(name string) bool {
	_, ok := e.frame().values[name]
	return ok
}

func (e *Environment) Declare(name string, value Value) error {
	f := e.frame()
	if _, ok := f.values[name]; ok {
		return errors.DuplicateDeclaration{Name: name}
	}
	f.values[name] = value
	return nil
}

// Set assigns to the nearest frame that declares name.
func (e *Environment) Set(name string, value Value) error {
	for id := e.id; id != noParent; id = e.arena.frames[id].parent {
		f := &e.arena.frames[id]
		if _, ok := f.values[name]; ok {
			f.values[name] = value
			return nil
		}
	}
	return errors.UndeclaredVariable{Name: name}
}

func (e *Environment) Get(name string) (Value, error) {
	for id := e.id; id != noParent; id = e.arena.frames[id].parent {
		if v, ok := e.arena.frames[id].values[name]; ok {
			return v, nil
		}
	}
	return nil, errors.UndeclaredVariable{Name: name}
}
