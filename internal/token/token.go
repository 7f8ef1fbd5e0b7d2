// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser, resolver and interpreter.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind uint8

// Kind constants, grouped the way the grammar groups them in spec §6.
const (
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	Identifier
	String
	Number

	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var names = map[Kind]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	Semicolon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Equal: "EQUAL", EqualEqual: "EQUAL_EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE",
	Fun: "FUN", For: "FOR", If: "IF", Nil: "NIL", Or: "OR",
	Print: "PRINT", Return: "RETURN", Super: "SUPER", This: "THIS",
	True: "TRUE", Var: "VAR", While: "WHILE",
	EOF: "EOF",
}

// String renders the Kind using the closed token-kind vocabulary of spec §6.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved identifiers to their Kind.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While,
}

// Token is a single lexical unit: kind, exact source slice, optional
// literal, and the line it was scanned on.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Kind, t.Lexeme, t.Literal)
}
