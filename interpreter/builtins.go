package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evasseure/huil/runtime"
)

func addBuiltins(i *Interpreter) []*runtime.Builtin {
	funcs := []func(*Interpreter) *runtime.Builtin{
		addPrint,
		addInput,
	}

	var ret []*runtime.Builtin
	for _, fn := range funcs {
		ret = append(ret, fn(i))
	}
	return ret
}

func addPrint(i *Interpreter) *runtime.Builtin {
	return &runtime.Builtin{
		Name: "print",
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			text := ""
			if len(args) > 0 {
				text = args[0].String()
			}
			if _, err := fmt.Fprintln(i.out, text); err != nil {
				return nil, err
			}
			return runtime.Nil, nil
		},
	}
}

func addInput(i *Interpreter) *runtime.Builtin {
	return &runtime.Builtin{
		Name: "input",
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			if len(args) > 0 {
				if _, err := io.WriteString(i.out, args[0].String()); err != nil {
					return nil, err
				}
			}
			line, err := i.in.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					return nil, err
				}
				if line == "" {
					return runtime.Nil, nil
				}
			}
			return coerceInput(strings.TrimRight(line, "\r\n")), nil
		},
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// coerceInput turns an all-digit line into an int and a line with exactly
// one decimal point and digits otherwise into a float.
func coerceInput(line string) runtime.Value {
	if allDigits(line) {
		if n, err := strconv.ParseInt(line, 10, 64); err == nil {
			return runtime.Int(n)
		}
		if f, err := strconv.ParseFloat(line, 64); err == nil {
			return runtime.Float(f)
		}
	}
	if strings.Count(line, ".") == 1 && allDigits(strings.Replace(line, ".", "", 1)) {
		if f, err := strconv.ParseFloat(line, 64); err == nil {
			return runtime.Float(f)
		}
	}
	return runtime.String(line)
}
