// Package repl implements Zoof's interactive session: a line-oriented
// reader that assembles one top-level statement (possibly spanning
// several physical lines, for `do`/struct/trait/impl blocks) per
// iteration and runs it through the lexer/parser/resolver/interpreter
// pipeline against a persistent module-global environment. Grounded on
// Eloquence repl/repl.go (Start(io.Reader, io.Writer) signature, the
// ".command" handling idiom, printTokens/printAST debug helpers)
// generalized to Zoof's indentation-significant grammar — where
// Eloquence evaluates one line per Eval call, a Zoof statement can open
// an indented block that spans several lines, so input collection
// continues until a blank line closes the block.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"zoof/ast"
	"zoof/errors"
	"zoof/interpreter"
	"zoof/lexer"
	"zoof/parser"
	"zoof/resolver"
	"zoof/source"
	"zoof/token"
)

const promptFmt = "in[%d]> "
const continuePrompt = "...> "

// session holds the REPL's persistent state across statements: the
// running logical line count (so each chunk's Source carries the right
// LineOffset for diagnostics) and the shared interpreter/handler pair,
// the way zoofc1's Module keeps one environment alive across
// Module.execute calls.
type session struct {
	out     io.Writer
	handler *errors.Handler
	interp  *interpreter.Interpreter
	lineNo  int
	debug   bool
	exit    bool
}

func newSession(out io.Writer) *session {
	h := errors.NewHandler(nil)
	return &session{
		out:     out,
		handler: h,
		interp:  interpreter.New(h, func(s string) { fmt.Fprintln(out, s) }),
	}
}

// Start launches the Read-Eval-Print Loop: it reads from in, writes
// prompts/output/diagnostics to out, and keeps running until in is
// exhausted or the user types `.exit`.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	sess := newSession(out)
	count := 1

	fmt.Fprintln(out, "Zoof interactive session. Type .help for commands.")

	for !sess.exit {
		fmt.Fprintf(out, promptFmt, count)
		lines, ok := sess.readStatement(scanner)
		if !ok {
			return
		}
		if lines == nil {
			continue // blank input or a handled `.command`
		}
		sess.run(strings.Join(lines, "\n")+"\n", count)
		count++
	}
}

// readStatement reads one logical statement: a single line, or — when
// the first line opens an indented block — further lines up to a
// blank-line terminator. Returns ok=false at end of input; returns a
// nil slice (but ok=true) for blank input or a handled `.command`.
func (sess *session) readStatement(scanner *bufio.Scanner) ([]string, bool) {
	if !scanner.Scan() {
		return nil, false
	}
	first := scanner.Text()
	trimmed := strings.TrimSpace(first)

	if strings.HasPrefix(trimmed, ".") {
		sess.command(trimmed)
		return nil, true
	}
	if trimmed == "" {
		return nil, true
	}

	lines := []string{first}
	if !opensBlock(trimmed) {
		return lines, true
	}

	for {
		fmt.Fprint(sess.out, continuePrompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines, true
}

// opensBlock reports whether a trimmed first line needs further
// indented lines before it forms a complete statement: the `do`-form
// of if/for/while/func, and struct/trait/impl declarations (which have
// no trailing `do` keyword of their own).
func opensBlock(trimmed string) bool {
	if trimmed == "do" || strings.HasSuffix(trimmed, " do") {
		return true
	}
	firstWord := trimmed
	if i := strings.IndexAny(trimmed, " ("); i >= 0 {
		firstWord = trimmed[:i]
	}
	switch firstWord {
	case "struct", "trait", "impl":
		return true
	}
	return false
}

func (sess *session) command(cmd string) {
	switch cmd {
	case ".exit":
		fmt.Fprintln(sess.out, "Goodbye!")
		sess.exit = true
	case ".help":
		fmt.Fprintln(sess.out, "Commands:")
		fmt.Fprintln(sess.out, "  .exit   quit the session")
		fmt.Fprintln(sess.out, "  .debug  toggle token/AST dump before execution")
		fmt.Fprintln(sess.out, "  .help   show this message")
	case ".debug":
		sess.debug = !sess.debug
		fmt.Fprintf(sess.out, "debug mode: %v\n", sess.debug)
	default:
		fmt.Fprintf(sess.out, "unknown command %q (try .help)\n", cmd)
	}
}

func (sess *session) run(text string, count int) {
	src := source.New(fmt.Sprintf("in[%d]", count), sess.lineNo, text)
	sess.lineNo += len(src.Lines)
	sess.handler.ResetErrors()
	sess.handler.Source = src

	toks := lexer.New(src).Tokenize()
	if sess.debug {
		sess.printTokens(toks)
	}

	prog := parser.New(toks, sess.handler).Parse()
	if sess.handler.HadSyntaxError {
		sess.printErrors()
		return
	}
	if sess.debug {
		sess.printAST(prog.Stmts)
	}

	resolver.New(sess.handler).Resolve(prog)
	if sess.handler.HadAnalysisError {
		sess.printErrors()
		return
	}

	sess.interp.Run(prog)
	if sess.handler.HadRuntimeError {
		sess.printErrors()
	}
}

func (sess *session) printErrors() {
	for _, report := range sess.handler.Reports() {
		fmt.Fprintln(sess.out, report)
	}
}

func (sess *session) printTokens(toks []token.Token) {
	fmt.Fprintln(sess.out, "-- tokens --")
	for _, t := range toks {
		if t.Type == token.EOF {
			continue
		}
		fmt.Fprintf(sess.out, "  %-20s %q\n", t.Type, t.Lexeme)
	}
}

func (sess *session) printAST(stmts []ast.Stmt) {
	fmt.Fprintln(sess.out, "-- ast --")
	for _, s := range stmts {
		fmt.Fprintf(sess.out, "  %+v\n", s)
	}
}
