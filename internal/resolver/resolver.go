// Package resolver performs the static pre-interpretation pass that
// annotates every variable reference with its lexical depth and
// enforces scope-sensitive semantic rules (spec §4.4).
package resolver

import (
	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/token"
)

// functionKind tracks what kind of function body is being resolved, so
// "return" can be validated contextually.
type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classKind tracks whether the current class has a superclass, so
// "super" can be validated.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Depths is the resolver's output: a side-table from expression
// identity (pointer identity, since every ast.Expr is a pointer type)
// to lexical depth, consumed verbatim by the interpreter.
type Depths map[ast.Expr]int

// Resolver walks a parsed program once, before interpretation.
type Resolver struct {
	sink    *diag.Sink
	scopes  []map[string]bool
	depths  Depths
	currFn  functionKind
	currCls classKind
}

// New returns a Resolver reporting errors to sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{sink: sink, depths: make(Depths)}
}

// Resolve walks statements and returns the accumulated depth table.
func (r *Resolver) Resolve(statements []ast.Stmt) Depths {
	r.resolveStmts(statements)
	return r.depths
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case nil:
		// tolerated: a placeholder left by parser panic-mode recovery
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.currFn == fnNone {
			r.sink.ErrorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currFn == fnInitializer {
				r.sink.ErrorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Class:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveClass(stmt *ast.Class) {
	enclosingClass := r.currCls
	r.currCls = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.sink.ErrorAt(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currCls = classSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currCls = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFn := r.currFn
	r.currFn = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currFn = enclosingFn
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Expression)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.sink.ErrorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currCls == classNone {
			r.sink.ErrorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currCls {
		case classNone:
			r.sink.ErrorAt(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.sink.ErrorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	}
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Unresolved: implicitly global, deliberately not recorded.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.sink.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
