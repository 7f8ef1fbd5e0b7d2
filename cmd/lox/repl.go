package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/tejas0709/golox/internal/ast"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/interpreter"
	"github.com/tejas0709/golox/internal/parser"
	"github.com/tejas0709/golox/internal/resolver"
	"github.com/tejas0709/golox/internal/scanner"
)

// replCmd is a supplemented feature (SPEC_FULL §C.1): an interactive
// prompt sharing one globals environment and one diagnostic sink
// across lines, so top-level declarations persist between inputs.
func replCmd(wantColor func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lox prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.New("> ")
			if err != nil {
				return err
			}
			defer rl.Close()

			sink := diag.New(os.Stderr, wantColor())
			in := interpreter.New(sink)

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				if line == "" {
					continue
				}

				replEval(line, sink, in)
				// One bad line does not end the session (SPEC_FULL §C.1),
				// a deliberate deviation from batch "run" mode's
				// errors-are-terminal rule.
				sink.Reset()
			}
		},
	}
}

// replEval tries line as a bare expression (printing its value) first,
// falling back silently to full statement parsing if that fails.
func replEval(line string, sink *diag.Sink, in *interpreter.Interpreter) {
	tokens := scanner.New(line, sink).ScanTokens()
	if sink.HadError() {
		return
	}

	// The expression attempt reports to a throwaway sink, so a line that
	// is a statement list falls back without printing a syntax error.
	probe := diag.New(io.Discard, false)
	if expr := parser.New(tokens, probe).ParseExpression(); !probe.HadError() {
		// Bare expressions skip resolution, same as the "evaluate" CLI
		// mode: variable references resolve directly against globals.
		if value, ok := in.InterpretExpression(expr); ok {
			fmt.Println(ast.Stringify(value))
		}
		return
	}

	statements := parser.New(tokens, sink).ParseProgram()
	if sink.HadError() {
		return
	}

	locals := resolver.New(sink).Resolve(statements)
	if sink.HadError() {
		return
	}

	in.SetLocals(mergeLocals(in, locals))
	in.Interpret(statements)
}

// mergeLocals keeps depth entries from earlier lines alive alongside
// the newly resolved ones, since each line is resolved independently
// but they all run against the same long-lived interpreter.
func mergeLocals(in *interpreter.Interpreter, fresh resolver.Depths) resolver.Depths {
	merged := in.Locals()
	if merged == nil {
		merged = make(resolver.Depths)
	}
	for k, v := range fresh {
		merged[k] = v
	}
	return merged
}
