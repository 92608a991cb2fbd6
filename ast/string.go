package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders n as a compact s-expression, mostly for tests and the CLI.
func String(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func writeList(b *strings.Builder, head string, l *StatementList) {
	b.WriteString("(" + head)
	for _, s := range l.Statements {
		b.WriteByte(' ')
		write(b, s)
	}
	b.WriteByte(')')
}

func write(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *StatementList:
		writeList(b, "do", v)
	case *Declaration:
		fmt.Fprintf(b, "(let %s ", v.Name)
		write(b, v.Value)
		b.WriteByte(')')
	case *Assignment:
		fmt.Fprintf(b, "(= %s ", v.Name)
		write(b, v.Value)
		b.WriteByte(')')
	case *VariableRef:
		b.WriteString(v.Name)
	case *NumberLiteral:
		if v.IsFloat {
			b.WriteString(strconv.FormatFloat(v.Float, 'f', -1, 64))
		} else {
			b.WriteString(strconv.FormatInt(v.Int, 10))
		}
	case *StringLiteral:
		b.WriteString(strconv.Quote(v.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(v.Value))
	case *NilLiteral:
		b.WriteString("nil")
	case *UnaryOp:
		fmt.Fprintf(b, "(%s ", v.Op.Symbol())
		write(b, v.Operand)
		b.WriteByte(')')
	case *BinaryOp:
		fmt.Fprintf(b, "(%s ", v.Op.Symbol())
		write(b, v.Left)
		b.WriteByte(' ')
		write(b, v.Right)
		b.WriteByte(')')
	case *FunctionDef:
		fmt.Fprintf(b, "(fn %s (%s) ", v.Name, strings.Join(v.Params, " "))
		writeList(b, "do", v.Body)
		b.WriteByte(')')
	case *FunctionCall:
		fmt.Fprintf(b, "(%s", v.Name)
		for _, a := range v.Args {
			b.WriteByte(' ')
			write(b, a)
		}
		b.WriteString(")")
	case *If:
		b.WriteString("(if")
		for i, c := range v.Conditions {
			b.WriteByte(' ')
			write(b, c)
			b.WriteByte(' ')
			writeList(b, "do", v.Bodies[i])
		}
		if v.Else != nil {
			b.WriteByte(' ')
			writeList(b, "else", v.Else)
		}
		b.WriteByte(')')
	case *While:
		b.WriteString("(while ")
		write(b, v.Condition)
		b.WriteByte(' ')
		writeList(b, "do", v.Body)
		b.WriteByte(')')
	case *Return:
		b.WriteString("(return ")
		write(b, v.Value)
		b.WriteByte(')')
	case *Match:
		b.WriteString("(match ")
		write(b, v.Subject)
		for _, arm := range v.Arms {
			b.WriteString(" (")
			if arm.Wildcard {
				b.WriteByte('*')
			} else {
				write(b, arm.Pattern)
			}
			b.WriteByte(' ')
			write(b, arm.Expr)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("unhandled node %T", n))
	}
}
