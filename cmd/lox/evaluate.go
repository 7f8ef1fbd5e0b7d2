package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/interpreter"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/scanner"
)

func evaluateCmd(wantColor func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <filename>",
		Short: "Parse and evaluate a single expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			sink := diag.New(os.Stderr, wantColor())
			tokens := scanner.New(source, sink).ScanTokens()
			expr := parser.New(tokens, sink).ParseExpression()

			if sink.HadError() {
				os.Exit(exitCode(sink, true))
			}

			in := interpreter.New(sink)
			if value, ok := in.InterpretExpression(expr); ok {
				fmt.Println(ast.Stringify(value))
			}

			os.Exit(exitCode(sink, true))
			return nil
		},
	}
}
