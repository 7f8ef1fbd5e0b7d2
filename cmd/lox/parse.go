package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/scanner"
)

func parseCmd(wantColor func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <filename>",
		Short: "Parse a single expression and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			sink := diag.New(os.Stderr, wantColor())
			tokens := scanner.New(source, sink).ScanTokens()
			expr := parser.New(tokens, sink).ParseExpression()

			if !sink.HadError() {
				fmt.Println(ast.Print(expr))
			}

			os.Exit(exitCode(sink, false))
			return nil
		},
	}
}
