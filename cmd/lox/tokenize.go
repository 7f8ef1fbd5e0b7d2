package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tejas0709/golox/internal/diag"
	"github.com/tejas0709/golox/internal/scanner"
	"github.com/tejas0709/golox/internal/token"
)

func tokenizeCmd(wantColor func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <filename>",
		Short: "Print the token stream for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			sink := diag.New(os.Stderr, wantColor())
			tokens := scanner.New(source, sink).ScanTokens()

			for _, tok := range tokens {
				fmt.Println(tok.Kind.String() + " " + tok.Lexeme + " " + tokenLiteral(tok))
			}

			os.Exit(exitCode(sink, false))
			return nil
		},
	}
}

// tokenLiteral formats a token's literal per spec §6's "tokenize" mode:
// the literal's printed form, or "null" if absent. Numbers always show
// at least one decimal digit (e.g. "42.0"), distinct from Stringify's
// trailing-.0-stripping rule used elsewhere.
func tokenLiteral(tok token.Token) string {
	switch v := tok.Literal.(type) {
	case nil:
		return "null"
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		for _, c := range s {
			if c == '.' {
				return s
			}
		}
		return s + ".0"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
