package interpreter

import (
	"fmt"

	"github.com/tejas0709/golox/internal/ast"
)

// Callable is the polymorphic call target: a user function, a native
// function, or a class (spec §4.5 Callable contracts).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) interface{}
	String() string
}

// NativeFunction wraps a builtin such as clock.
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []interface{}) interface{}
}

func (f *NativeFunction) Arity() int { return f.arity }

func (f *NativeFunction) Call(in *Interpreter, args []interface{}) interface{} {
	return f.fn(args)
}

func (f *NativeFunction) String() string {
	return "<native fn " + f.name + ">"
}

// Function is a user-defined function or method: its declaration plus
// the environment captured at the fun/method site (its closure).
type Function struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// Call binds parameters by position in a child of closure and executes
// the body there. A return signal escaping the body supplies the
// result, except for an initializer, whose result is always the bound
// instance (spec §3 invariant, §4.5 Callable contracts).
func (f *Function) Call(in *Interpreter, args []interface{}) (result interface{}) {
	env := f.closure.inner()
	for i, param := range f.declaration.Params {
		env.define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			ret, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.isInitializer {
				result = f.closure.getAt(0, "this")
				return
			}
			result = ret.value
			return
		}
	}()

	in.executeBlock(f.declaration.Body, env)

	if f.isInitializer {
		return f.closure.getAt(0, "this")
	}
	return nil
}

// Bind returns a new Function whose closure is a fresh child of f's
// closure with "this" defined at depth 0 (spec §4.5).
func (f *Function) Bind(instance *Instance) *Function {
	env := f.closure.inner()
	env.define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Class is a runtime class value with single inheritance.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

func (c *Class) String() string { return c.name }

func (c *Class) findMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

// Arity is the arity of init, searched through the superclass chain,
// or 0 if there is none.
func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs an Instance and, if init exists, binds and calls it.
func (c *Class) Call(in *Interpreter, args []interface{}) interface{} {
	instance := &Instance{class: c, fields: make(map[string]interface{})}
	if init := c.findMethod("init"); init != nil {
		init.Bind(instance).Call(in, args)
	}
	return instance
}

// Instance is a single instance of a Class, owning its own field map.
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.name)
}
