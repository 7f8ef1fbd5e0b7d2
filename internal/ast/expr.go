// Package ast defines the expression and statement node types produced
// by the parser. Nodes are plain data: tagged variants dispatched with
// type switches rather than a visitor hierarchy, since the node set is
// closed and the language has cheap pointer identity for node keys.
package ast

import "github.com/tejas0709/golox/internal/token"

// Expr is implemented by every expression node. Each concrete type is a
// pointer type, so two expressions are the same node iff they are the
// same pointer — this is the identity the resolver's depth table keys on
// (spec §9: "do not key by structural equality").
type Expr interface {
	exprNode()
}

// Literal is a nil, boolean, number or string constant.
type Literal struct {
	Value interface{}
}

func (*Literal) exprNode() {}

// Grouping is a parenthesised sub-expression.
type Grouping struct {
	Expression Expr
}

func (*Grouping) exprNode() {}

// Unary is a prefix operator application: "!" or "-".
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (*Unary) exprNode() {}

// Binary is an infix operator application.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Binary) exprNode() {}

// Logical is "and"/"or", kept distinct from Binary because it short-circuits.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Logical) exprNode() {}

// Variable is a bare name reference.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode() {}

// Assign is "name = value".
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}

// Call is "callee(args...)". ClosingParen is kept for error line context.
type Call struct {
	Callee       Expr
	ClosingParen token.Token
	Args         []Expr
}

func (*Call) exprNode() {}

// Get is a property read: "object.name".
type Get struct {
	Object Expr
	Name   token.Token
}

func (*Get) exprNode() {}

// Set is a property write: "object.name = value".
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (*Set) exprNode() {}

// This is the "this" keyword used inside a method body.
type This struct {
	Keyword token.Token
}

func (*This) exprNode() {}

// Super is "super.method".
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Super) exprNode() {}
