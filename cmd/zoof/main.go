// Command zoof is Zoof's CLI entry point: `zoof [script]`. With no
// positional argument it launches the interactive REPL; given a script
// path it lexes, parses, resolves, and interprets the file and exits
// with the code matching whichever error class (if any) fired.
//
// Grounded on Eloquence main.go's script-vs-REPL dispatch, restructured
// onto a cobra.Command the way opal-lang-opal/cli/main.go wires its
// root command: RunE returns an error for cobra to report, and the
// real exit code travels out-of-band (cobra's Execute doesn't let
// RunE choose the process exit code directly).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zoof/errors"
	"zoof/interpreter"
	"zoof/lexer"
	"zoof/parser"
	"zoof/repl"
	"zoof/resolver"
	"zoof/source"
)

const (
	exitSuccess = 0
	exitUsage   = 64
	exitDataErr = 65
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run builds and executes the root command, translating its outcome
// into one of the four exit codes spec.md §6 names. Kept separate from
// main so os.Exit never short-circuits deferred cleanup mid-execution.
func run(args []string) int {
	exitCode := exitSuccess

	root := &cobra.Command{
		Use:           "zoof [script]",
		Short:         "Zoof language interpreter",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if len(cmdArgs) == 0 {
				repl.Start(os.Stdin, os.Stdout)
				return nil
			}
			code, err := runFile(cmdArgs[0])
			exitCode = code
			return err
		},
	}
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == exitSuccess {
			exitCode = exitUsage
		}
	}
	return exitCode
}

// runFile executes one script file to completion, returning the exit
// code its diagnostics class selects (0/65/70) and an error for cobra
// to print, if opening the file itself failed (a usage error).
func runFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return exitUsage, fmt.Errorf("reading %s: %w", path, err)
	}

	src := source.New(path, 0, string(data))
	handler := errors.NewHandler(src)

	toks := lexer.New(src).Tokenize()
	prog := parser.New(toks, handler).Parse()

	if !handler.HadSyntaxError {
		resolver.New(handler).Resolve(prog)
	}

	if handler.HadSyntaxError || handler.HadAnalysisError {
		printDiagnostics(handler)
		return exitDataErr, nil
	}

	interp := interpreter.New(handler, func(s string) { fmt.Println(s) })
	interp.Run(prog)

	if handler.HadRuntimeError {
		printDiagnostics(handler)
		return exitRuntime, nil
	}
	return exitSuccess, nil
}

func printDiagnostics(handler *errors.Handler) {
	for _, report := range handler.Reports() {
		fmt.Fprintln(os.Stderr, report)
	}
}
