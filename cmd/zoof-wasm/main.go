// Command zoof-wasm builds to GOOS=js GOARCH=wasm and exposes Zoof's
// pipeline to the browser as a single global function, runZoof(source).
// Adapted from Eloquence's wasm/wasm_main.go: that bridge captured
// "show()" output into a strings.Builder and returned {logs,result,error}
// to JS; this one captures the interpreter's out-sink callback the same
// way, since Zoof's `print` has no return value to report separately.
package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"zoof/errors"
	"zoof/interpreter"
	"zoof/lexer"
	"zoof/parser"
	"zoof/resolver"
	"zoof/source"
)

func main() {
	c := make(chan struct{})
	js.Global().Set("runZoof", js.FuncOf(runCode))
	fmt.Println("Zoof WASM engine loaded.")
	<-c
}

// runCode is the JS-callable bridge: p[0] is the script source text.
// It runs the full lexer/parser/resolver/interpreter pipeline against
// a fresh module-global environment per call (the WASM demo has no
// REPL-style persistent session) and returns a JS object shaped
// {logs: string, errors: []string}.
func runCode(this js.Value, p []js.Value) interface{} {
	if len(p) == 0 {
		return map[string]interface{}{"logs": "", "errors": []interface{}{"runZoof requires a source string argument"}}
	}
	code := p[0].String()

	var out strings.Builder
	src := source.New("wasm", 0, code)
	handler := errors.NewHandler(src)

	toks := lexer.New(src).Tokenize()
	prog := parser.New(toks, handler).Parse()
	if !handler.HadSyntaxError {
		resolver.New(handler).Resolve(prog)
	}
	if handler.HadSyntaxError || handler.HadAnalysisError {
		return map[string]interface{}{
			"logs":   out.String(),
			"errors": reportsToJS(handler),
		}
	}

	interp := interpreter.New(handler, func(s string) { out.WriteString(s + "\n") })
	interp.Run(prog)

	if handler.HadRuntimeError {
		return map[string]interface{}{
			"logs":   out.String(),
			"errors": reportsToJS(handler),
		}
	}

	return map[string]interface{}{
		"logs":   out.String(),
		"errors": []interface{}{},
	}
}

func reportsToJS(handler *errors.Handler) []interface{} {
	reports := handler.Reports()
	out := make([]interface{}, len(reports))
	for i, r := range reports {
		out[i] = r
	}
	return out
}
