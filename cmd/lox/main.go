// Command lox is the front-end that chooses a pipeline mode and
// dispatches source into it (spec §1: out of scope for the core, but
// specified via its CLI interface in §6).
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	var noColor bool

	root := &cobra.Command{
		Use:           "lox",
		Short:         "A tree-walking interpreter for Lox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	wantColor := func() bool {
		return !noColor && isatty.IsTerminal(os.Stderr.Fd())
	}

	root.AddCommand(
		tokenizeCmd(wantColor),
		parseCmd(wantColor),
		evaluateCmd(wantColor),
		runCmd(wantColor),
		replCmd(wantColor),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(bytes), nil
}
