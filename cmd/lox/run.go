package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/interpreter"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/resolver"
	"github.com/tejas0709/golox/internal/scanner"
)

func runCmd(wantColor func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run <filename>",
		Short: "Parse, resolve and execute a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			sink := diag.New(os.Stderr, wantColor())
			statements := parser.New(scanner.New(source, sink).ScanTokens(), sink).ParseProgram()

			// The interpreter never runs when the compile-error flag is
			// set at end of pipeline (spec §7.1).
			if sink.HadError() {
				os.Exit(exitCode(sink, false))
			}

			locals := resolver.New(sink).Resolve(statements)
			if sink.HadError() {
				os.Exit(exitCode(sink, false))
			}

			in := interpreter.New(sink)
			in.SetLocals(locals)
			in.Interpret(statements)

			os.Exit(exitCode(sink, true))
			return nil
		},
	}
}
