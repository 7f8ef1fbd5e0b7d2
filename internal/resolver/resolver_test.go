package resolver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/scanner"
)

func resolveSource(t *testing.T, source string) ([]ast.Stmt, Depths, *diag.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New(source, sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError(), "unexpected parse error: %s", buf.String())

	depths := New(sink).Resolve(stmts)
	return stmts, depths, sink
}

func TestResolver_LocalReadInOwnInitializerIsAnError(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("{ var a = a; }", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't read local variable in its own initializer.")
}

func TestResolver_GlobalSelfReadIsNotAnError(t *testing.T) {
	// spec §8 scenario 7: accepted at global scope (resolver doesn't
	// even record a depth — it's implicitly global).
	_, depths, sink := resolveSource(t, "var a = a;")
	require.False(t, sink.HadError())
	require.Empty(t, depths)
}

func TestResolver_DuplicateDeclarationInSameScope(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("{ var a = 1; var a = 2; }", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Already a variable with this name in this scope.")
}

func TestResolver_ShadowingInNestedBlockIsAllowed(t *testing.T) {
	_, _, sink := resolveSource(t, "var a = 1; { var a = 2; }")
	require.False(t, sink.HadError())
}

func TestResolver_DepthsForNestedBlocks(t *testing.T) {
	stmts, depths, sink := resolveSource(t, "{ var a = 1; { print a; } }")
	require.False(t, sink.HadError())

	outer := stmts[0].(*ast.Block)
	inner := outer.Statements[1].(*ast.Block)
	printStmt := inner.Statements[0].(*ast.Print)
	varExpr := printStmt.Expr.(*ast.Variable)

	require.Equal(t, 1, depths[varExpr])
}

func TestResolver_ReturnOutsideFunction(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("return 1;", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't return from top-level code.")
}

func TestResolver_ReturnValueInInitializer(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	source := `class C { init() { return 1; } }`
	tokens := scanner.New(source, sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't return a value from an initializer.")
}

func TestResolver_BareReturnInInitializerIsAllowed(t *testing.T) {
	_, _, sink := resolveSource(t, `class C { init() { return; } }`)
	require.False(t, sink.HadError())
}

func TestResolver_ThisOutsideClass(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("print this;", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't use 'this' outside of a class.")
}

func TestResolver_SuperOutsideClass(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("print super.x;", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't use 'super' outside of a class.")
}

func TestResolver_SuperInClassWithNoSuperclass(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	source := `class C { m() { super.m(); } }`
	tokens := scanner.New(source, sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "Can't use 'super' in a class with no superclass.")
}

func TestResolver_ClassCannotInheritFromItself(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("class A < A {}", sink).ScanTokens()
	stmts := parser.New(tokens, sink).ParseProgram()
	require.False(t, sink.HadError())

	New(sink).Resolve(stmts)
	require.True(t, sink.HadError())
	require.Contains(t, buf.String(), "A class can't inherit from itself.")
}

func TestResolver_FunctionParamsScopedToBody(t *testing.T) {
	_, depths, sink := resolveSource(t, "fun f(a) { print a; }")
	require.False(t, sink.HadError())
	require.Len(t, depths, 1)
}
