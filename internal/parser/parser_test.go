package parser

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/scanner"
	"github.com/tejas0709/golox/internal/token"
)

func parseExpr(t *testing.T, source string) (ast.Expr, *diag.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New(source, sink).ScanTokens()
	return New(tokens, sink).ParseExpression(), sink
}

func parseProgram(t *testing.T, source string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New(source, sink).ScanTokens()
	return New(tokens, sink).ParseProgram(), sink
}

// cmpOpts ignores Token.Line so fixtures don't need to track exact
// source positions; it still compares Kind/Lexeme/Literal.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b token.Token) bool {
		return a.Kind == b.Kind && a.Lexeme == b.Lexeme && a.Literal == b.Literal
	}),
}

func TestParser_PrecedenceClimbing(t *testing.T) {
	expr, sink := parseExpr(t, "1 + 2 * 3")
	require.False(t, sink.HadError())

	want := &ast.Binary{
		Left:     &ast.Literal{Value: 1.0},
		Operator: token.Token{Kind: token.Plus, Lexeme: "+"},
		Right: &ast.Binary{
			Left:     &ast.Literal{Value: 2.0},
			Operator: token.Token{Kind: token.Star, Lexeme: "*"},
			Right:    &ast.Literal{Value: 3.0},
		},
	}
	if diff := cmp.Diff(want, expr, cmpOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_AssignmentRewritesVariableToAssign(t *testing.T) {
	expr, sink := parseExpr(t, "a = 1")
	require.False(t, sink.HadError())

	assign, ok := expr.(*ast.Assign)
	require.True(t, ok, "expected *ast.Assign, got %T", expr)
	require.Equal(t, "a", assign.Name.Lexeme)
}

func TestParser_AssignmentRewritesGetToSet(t *testing.T) {
	expr, sink := parseExpr(t, "obj.field = 1")
	require.False(t, sink.HadError())

	set, ok := expr.(*ast.Set)
	require.True(t, ok, "expected *ast.Set, got %T", expr)
	require.Equal(t, "field", set.Name.Lexeme)
}

func TestParser_InvalidAssignmentTarget(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("1 = 2", sink).ScanTokens()
	New(tokens, sink).ParseExpression()

	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Invalid assignment target.")
}

func TestParser_ForDesugarsToBlockWhile(t *testing.T) {
	stmts, sink := parseProgram(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.Block)
	require.True(t, ok, "expected outer Block, got %T", stmts[0])
	require.Len(t, outer.Statements, 2)

	_, ok = outer.Statements[0].(*ast.Var)
	require.True(t, ok, "expected initializer Var, got %T", outer.Statements[0])

	whileStmt, ok := outer.Statements[1].(*ast.While)
	require.True(t, ok, "expected While, got %T", outer.Statements[1])

	body, ok := whileStmt.Body.(*ast.Block)
	require.True(t, ok, "expected While body Block, got %T", whileStmt.Body)
	require.Len(t, body.Statements, 2)

	_, ok = body.Statements[0].(*ast.Print)
	require.True(t, ok, "expected original body first, got %T", body.Statements[0])
	_, ok = body.Statements[1].(*ast.Expression)
	require.True(t, ok, "expected increment appended, got %T", body.Statements[1])
}

func TestParser_ForWithoutConditionDefaultsToTrue(t *testing.T) {
	stmts, sink := parseProgram(t, "for (;;) print 1;")
	require.False(t, sink.HadError())

	whileStmt := stmts[0].(*ast.While)
	lit, ok := whileStmt.Condition.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, true, lit.Value)
}

func TestParser_ClassWithSuperclassAndMethods(t *testing.T) {
	stmts, sink := parseProgram(t, `
		class A {
			hi() { print "A"; }
		}
		class B < A {
			hi() { super.hi(); }
		}
	`)
	require.False(t, sink.HadError())
	require.Len(t, stmts, 2)

	a := stmts[0].(*ast.Class)
	require.Nil(t, a.Superclass)
	require.Len(t, a.Methods, 1)
	require.Equal(t, "hi", a.Methods[0].Name.Lexeme)

	b := stmts[1].(*ast.Class)
	require.NotNil(t, b.Superclass)
	require.Equal(t, "A", b.Superclass.Name.Lexeme)
}

func TestParser_ClassCanSyntacticallyInheritFromItself(t *testing.T) {
	// The grammar allows this; only the resolver rejects it (spec §9
	// Open Questions — keep that layering).
	stmts, sink := parseProgram(t, "class A < A {}")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)
}

func TestParser_FunctionParamCountLimit(t *testing.T) {
	source := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			source += ", "
		}
		source += "a" + string(rune('0'+i%10))
	}
	source += ") {}"

	_, sink := parseProgram(t, source)
	require.True(t, sink.HadError())
}

func TestParser_ReturnOutsideFunctionIsAcceptedSyntactically(t *testing.T) {
	// spec §9 Open Questions: parse-time does not reject this; only
	// the resolver does, later.
	stmts, sink := parseProgram(t, "return 1;")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.Return)
	require.True(t, ok)
}

func TestParser_PanicModeRecoversAtStatementBoundary(t *testing.T) {
	stmts, sink := parseProgram(t, `
		var a = ;
		var b = 2;
	`)
	require.True(t, sink.HadError())

	// The first declaration is dropped (nil placeholder is filtered by
	// declarationSafe's ok flag), the second still parses.
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	require.Equal(t, "b", v.Name.Lexeme)
}

func TestParser_GroupingAndCallChain(t *testing.T) {
	expr, sink := parseExpr(t, "(a).b(1, 2).c")
	require.False(t, sink.HadError())

	get, ok := expr.(*ast.Get)
	require.True(t, ok, "expected outer Get, got %T", expr)
	require.Equal(t, "c", get.Name.Lexeme)

	call, ok := get.Object.(*ast.Call)
	require.True(t, ok, "expected Call, got %T", get.Object)
	require.Len(t, call.Args, 2)
}
