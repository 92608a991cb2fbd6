package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/evasseure/huil/interpreter"
	"github.com/evasseure/huil/runtime"
)

var selfChecks = []struct {
	src  string
	want runtime.Value
}{
	{"2 * 3 + 1", runtime.Int(7)},
	{"5 * 3 + 4 + 2 % 2 * 8", runtime.Int(19)},
	{"7 + 3 * (10 / (12 / (3 + 1) - 1))", runtime.Int(22)},
	{"7 + 3 * (10 / (12 / (3 + 1) - 1)) / (2 + 3) - 5 - 3 + (8)", runtime.Int(10)},
	{"7 + (((3 + 2)))", runtime.Int(12)},
	{"- 3", runtime.Int(-3)},
	{"+ 3", runtime.Int(3)},
	{"5 - - - + - 3", runtime.Int(8)},
	{"5 - - - + - (3 + 4) - +2", runtime.Int(10)},
}

// selfTest evaluates every check in a fresh interpreter and returns how many failed.
func selfTest(w io.Writer) int {
	failures := 0
	for _, check := range selfChecks {
		ip := interpreter.New(
			interpreter.WithEcho(true),
			interpreter.WithOutput(ioutil.Discard),
			interpreter.WithInput(strings.NewReader("")),
		)
		got, err := ip.Eval(check.src)
		switch {
		case err != nil:
			failures++
			fmt.Fprintf(w, "FAIL %s: %v\n", check.src, err)
		case !runtime.Equal(got, check.want):
			failures++
			fmt.Fprintf(w, "FAIL %s: got %s, want %s\n", check.src, got, check.want)
		default:
			fmt.Fprintf(w, "ok   %s = %s\n", check.src, got)
		}
	}
	return failures
}
