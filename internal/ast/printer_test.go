package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/scanner"
)

func TestPrint_ParenthesizedPrefixForm(t *testing.T) {
	// spec §8 round-trip law.
	var buf bytes.Buffer
	sink := diag.New(&buf, false)
	tokens := scanner.New("(1 + 2) * -3", sink).ScanTokens()
	expr := parser.New(tokens, sink).ParseExpression()
	require.False(t, sink.HadError())

	got := ast.Print(expr)
	require.Equal(t, "(* (group (+ 1.0 2.0)) (- 3.0))", got)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{3.0, "3"},
		{3.5, "3.5"},
		{"hi", "hi"},
	}
	for _, tt := range tests {
		if got := ast.Stringify(tt.value); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStringify_IdempotentOnStrings(t *testing.T) {
	// spec §8 invariant: stringify is idempotent on string inputs.
	s := "already a string"
	require.Equal(t, s, ast.Stringify(s))
	require.Equal(t, ast.Stringify(s), ast.Stringify(ast.Stringify(s)))
}
