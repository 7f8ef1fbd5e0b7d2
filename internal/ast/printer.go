package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders expr in fully parenthesised prefix form, per spec §6's
// "parse" mode and the literal round-trip law in §8
// (AstPrinter(parse("(1 + 2) * -3")) == "(* (group (+ 1.0 2.0)) (- 3.0))"):
// grouping as "(group inner)", unary as "(op right)", binary/logical as
// "(op left right)". Number literals always show a decimal point (the
// canonical AstPrinter's number formatting, distinct from Stringify's
// trailing-.0-stripping rule used for printed program output).
func Print(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return printLiteral(e.Value)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
	case *Get:
		return parenthesize("."+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("="+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super." + e.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

func printLiteral(value interface{}) string {
	if f, ok := value.(float64); ok {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}
	return Stringify(value)
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Print(e))
	}
	b.WriteByte(')')
	return b.String()
}

// Stringify renders a runtime/literal value the way "print" does
// (spec §4.5 Stringification). It lives here, rather than in the
// interpreter package, so both the AST printer and the interpreter
// share one definition.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return s
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
