// Package interpreter is a tree-walking evaluator for the AST produced
// by package parser and annotated by package resolver (spec §4.5).
package interpreter

import (
	"fmt"
	"time"

	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/resolver"
	"github.com/tejas0709/golox/internal/token"
)

// Interpreter executes statements sequentially against a chain of
// Environments, reporting runtime failures to a diag.Sink.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Depths
	sink        *diag.Sink
	processBoot time.Time
}

// New creates an Interpreter with a fresh globals environment carrying
// the clock builtin (spec §4.5).
func New(sink *diag.Sink) *Interpreter {
	globals := NewEnvironment()
	in := &Interpreter{
		globals:     globals,
		environment: globals,
		sink:        sink,
		processBoot: time.Now(),
	}
	globals.define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(args []interface{}) interface{} {
			// Fractional seconds, not truncated to whole seconds: see
			// SPEC_FULL §C.2 for why this departs from a literal
			// reading of "whole seconds". Wall-clock time at boot plus
			// the monotonic time elapsed since then.
			return float64(in.processBoot.UnixNano())/1e9 + time.Since(in.processBoot).Seconds()
		},
	})
	return in
}

// SetLocals installs the resolver's depth table, consumed verbatim by
// Variable/Assign/This/Super evaluation (spec §3 invariant).
func (in *Interpreter) SetLocals(locals resolver.Depths) {
	in.locals = locals
}

// Locals returns the currently installed depth table (used by the REPL
// to merge depths across independently-resolved lines).
func (in *Interpreter) Locals() resolver.Depths {
	return in.locals
}

// Interpret executes a program. A runtime error during any statement
// is reported and remaining statements are abandoned (spec §4.5
// Failure semantics).
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*RuntimeError); ok {
				in.sink.RuntimeError(rerr.Token, rerr.Message)
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		in.execute(stmt)
	}
}

// InterpretExpression evaluates a single expression and returns its
// value, for the "evaluate" CLI mode. ok is false if a runtime error
// occurred (already reported to the sink).
func (in *Interpreter) InterpretExpression(expr ast.Expr) (value interface{}, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok2 := r.(*RuntimeError); ok2 {
				in.sink.RuntimeError(rerr.Token, rerr.Message)
				ok = false
				return
			}
			panic(r)
		}
	}()
	return in.evaluate(expr), true
}

func (in *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case nil:
		// tolerated placeholder from recovered parse errors
	case *ast.Expression:
		in.evaluate(s.Expr)
	case *ast.Print:
		value := in.evaluate(s.Expr)
		fmt.Println(ast.Stringify(value))
	case *ast.Var:
		var value interface{}
		if s.Initializer != nil {
			value = in.evaluate(s.Initializer)
		}
		in.environment.define(s.Name.Lexeme, value)
	case *ast.Block:
		in.executeBlock(s.Statements, in.environment.inner())
	case *ast.If:
		if isTruthy(in.evaluate(s.Condition)) {
			in.execute(s.Then)
		} else if s.Else != nil {
			in.execute(s.Else)
		}
	case *ast.While:
		for isTruthy(in.evaluate(s.Condition)) {
			in.execute(s.Body)
		}
	case *ast.Function:
		fn := &Function{declaration: s, closure: in.environment}
		in.environment.define(s.Name.Lexeme, fn)
	case *ast.Return:
		var value interface{}
		if s.Value != nil {
			value = in.evaluate(s.Value)
		}
		panic(returnSignal{value: value})
	case *ast.Class:
		in.executeClass(s)
	}
}

// executeBlock runs statements against a fresh environment, always
// restoring the previous one on the way out — normal exit, a return
// signal, or a runtime error (spec §5's one scoped-resource invariant).
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) {
	previous := in.environment
	defer func() { in.environment = previous }()

	in.environment = env
	for _, stmt := range statements {
		in.execute(stmt)
	}
}

func (in *Interpreter) executeClass(stmt *ast.Class) {
	var superclass *Class
	if stmt.Superclass != nil {
		value := in.evaluate(stmt.Superclass)
		var ok bool
		superclass, ok = value.(*Class)
		if !ok {
			panic(&RuntimeError{Token: stmt.Superclass.Name, Message: "Superclass must be a class."})
		}
	}

	in.environment.define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		in.environment = in.environment.inner()
		in.environment.define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &Function{
			declaration:   method,
			closure:       in.environment,
			isInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &Class{name: stmt.Name.Lexeme, superclass: superclass, methods: methods}

	if stmt.Superclass != nil {
		in.environment = in.environment.enclosing
	}

	in.environment.assign(stmt.Name, class)
}

func (in *Interpreter) evaluate(expr ast.Expr) interface{} {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value
	case *ast.Grouping:
		return in.evaluate(e.Expression)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)
	case *ast.Assign:
		value := in.evaluate(e.Value)
		if distance, ok := in.locals[e]; ok {
			in.environment.assignAt(distance, e.Name, value)
		} else {
			in.globals.assign(e.Name, value)
		}
		return value
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Get:
		return in.evalGet(e)
	case *ast.Set:
		return in.evalSet(e)
	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)
	case *ast.Super:
		return in.evalSuper(e)
	}
	panic(fmt.Sprintf("interpreter: unknown expression %T", expr))
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) interface{} {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.getAt(distance, name.Lexeme)
	}
	return in.globals.get(name)
}

func (in *Interpreter) evalUnary(e *ast.Unary) interface{} {
	right := in.evaluate(e.Right)
	switch e.Operator.Kind {
	case token.Bang:
		return !isTruthy(right)
	case token.Minus:
		return -checkNumberOperand(e.Operator, right)
	}
	panic(fmt.Sprintf("interpreter: unknown unary operator %v", e.Operator.Kind))
}

func (in *Interpreter) evalLogical(e *ast.Logical) interface{} {
	left := in.evaluate(e.Left)

	if e.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) interface{} {
	left := in.evaluate(e.Left)
	right := in.evaluate(e.Right)

	switch e.Operator.Kind {
	case token.Minus:
		return checkNumberOperand(e.Operator, left) - checkNumberOperand(e.Operator, right)
	case token.Slash:
		return checkNumberOperand(e.Operator, left) / checkNumberOperand(e.Operator, right)
	case token.Star:
		return checkNumberOperand(e.Operator, left) * checkNumberOperand(e.Operator, right)
	case token.Plus:
		return evalPlus(e.Operator, left, right)
	case token.Greater:
		return checkNumberOperand(e.Operator, left) > checkNumberOperand(e.Operator, right)
	case token.GreaterEqual:
		return checkNumberOperand(e.Operator, left) >= checkNumberOperand(e.Operator, right)
	case token.Less:
		return checkNumberOperand(e.Operator, left) < checkNumberOperand(e.Operator, right)
	case token.LessEqual:
		return checkNumberOperand(e.Operator, left) <= checkNumberOperand(e.Operator, right)
	case token.EqualEqual:
		return isEqual(left, right)
	case token.BangEqual:
		return !isEqual(left, right)
	}
	panic(fmt.Sprintf("interpreter: unknown binary operator %v", e.Operator.Kind))
}

func evalPlus(operator token.Token, left, right interface{}) interface{} {
	if ln, ok := left.(float64); ok {
		if rn, ok := right.(float64); ok {
			return ln + rn
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs
		}
	}
	panic(&RuntimeError{Token: operator, Message: "Operands must be two numbers or two strings."})
}

func (in *Interpreter) evalCall(e *ast.Call) interface{} {
	callee := in.evaluate(e.Callee)

	args := make([]interface{}, len(e.Args))
	for i, a := range e.Args {
		args[i] = in.evaluate(a)
	}

	callable, ok := callee.(Callable)
	if !ok {
		panic(&RuntimeError{Token: e.ClosingParen, Message: "Can only call functions and classes."})
	}

	if len(args) != callable.Arity() {
		panic(&RuntimeError{Token: e.ClosingParen, Message: fmt.Sprintf(
			"Expected %d arguments but got %d.", callable.Arity(), len(args))})
	}

	return callable.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) interface{} {
	object := in.evaluate(e.Object)
	instance, ok := object.(*Instance)
	if !ok {
		panic(&RuntimeError{Token: e.Name, Message: "Only instances have properties."})
	}

	if value, ok := instance.fields[e.Name.Lexeme]; ok {
		return value
	}
	if method := instance.class.findMethod(e.Name.Lexeme); method != nil {
		return method.Bind(instance)
	}
	panic(&RuntimeError{Token: e.Name, Message: "Undefined property '" + e.Name.Lexeme + "'."})
}

func (in *Interpreter) evalSet(e *ast.Set) interface{} {
	object := in.evaluate(e.Object)
	instance, ok := object.(*Instance)
	if !ok {
		panic(&RuntimeError{Token: e.Name, Message: "Only instances have properties."})
	}

	value := in.evaluate(e.Value)
	instance.fields[e.Name.Lexeme] = value
	return value
}

func (in *Interpreter) evalSuper(e *ast.Super) interface{} {
	distance := in.locals[e]
	superclass := in.environment.getAt(distance, "super").(*Class)
	object := in.environment.getAt(distance-1, "this").(*Instance)

	method := superclass.findMethod(e.Method.Lexeme)
	if method == nil {
		panic(&RuntimeError{Token: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."})
	}
	return method.Bind(object)
}

func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual never fails: NaN compares unequal to itself, by IEEE rules
// (spec §9 Open Questions: this is intentional and observable).
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func checkNumberOperand(operator token.Token, value interface{}) float64 {
	if n, ok := value.(float64); ok {
		return n
	}
	panic(&RuntimeError{Token: operator, Message: "Operand must be a number."})
}
