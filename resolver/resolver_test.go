package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoof/ast"
	"zoof/errors"
	"zoof/lexer"
	"zoof/parser"
	"zoof/source"
)

func resolve(t *testing.T, text string) (*ast.Program, *errors.Handler) {
	t.Helper()
	src := source.New("test.zf", 0, text)
	toks := lexer.New(src).Tokenize()
	h := errors.NewHandler(src)
	prog := parser.New(toks, h).Parse()
	require.False(t, h.HadSyntaxError, "unexpected parse errors: %v", h.Reports())
	New(h).Resolve(prog)
	return prog, h
}

func findVariable(t *testing.T, stmts []ast.Stmt, name string) *ast.VariableExpr {
	t.Helper()
	var found *ast.VariableExpr
	var walkExpr func(ast.Expr)
	var walkStmts func([]ast.Stmt)

	walkExpr = func(e ast.Expr) {
		if found != nil || e == nil {
			return
		}
		switch n := e.(type) {
		case *ast.VariableExpr:
			if n.Name == name {
				found = n
			}
		case *ast.AssignExpr:
			walkExpr(n.Value)
		case *ast.BinaryExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.LogicalExpr:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.UnaryExpr:
			walkExpr(n.Right)
		case *ast.GroupingExpr:
			walkExpr(n.Inner)
		case *ast.RangeExpr:
			walkExpr(n.Start)
			walkExpr(n.Stop)
			walkExpr(n.Step)
		case *ast.CallExpr:
			walkExpr(n.Callee)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *ast.GetExpr:
			walkExpr(n.Object)
		case *ast.SetExpr:
			walkExpr(n.Object)
			walkExpr(n.Value)
		case *ast.IfExpr:
			walkExpr(n.Cond)
			walkExpr(n.Then)
			walkExpr(n.Else)
		case *ast.FunctionExpr:
			walkExpr(n.Body)
		}
	}
	walkStmts = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			if found != nil {
				return
			}
			switch n := s.(type) {
			case *ast.DoStmt:
				walkStmts(n.Body)
			case *ast.IfStmt:
				walkExpr(n.Cond)
				walkStmts(n.Then)
				for _, ei := range n.ElseIfs {
					walkExpr(ei.Cond)
					walkStmts(ei.Body)
				}
				walkStmts(n.Else)
			case *ast.ForStmt:
				walkExpr(n.Iterable)
				walkStmts(n.Body)
			case *ast.WhileStmt:
				walkExpr(n.Cond)
				walkStmts(n.Body)
			case *ast.ReturnStmt:
				walkExpr(n.Value)
			case *ast.PrintStmt:
				walkExpr(n.Value)
			case *ast.FunctionStmt:
				walkStmts(n.Body)
				walkExpr(n.ExprBody)
			case *ast.ExpressionStmt:
				walkExpr(n.Expr)
			}
		}
	}
	walkStmts(stmts)
	return found
}

func TestResolve_VariableResolvesToDeclaringScopeDepth(t *testing.T) {
	prog, h := resolve(t, "x = 1\nprint x\n")
	assert.False(t, h.HadError())
	v := findVariable(t, prog.Stmts, "x")
	require.NotNil(t, v)
	assert.Equal(t, 1, v.Depth) // scope 1 is module globals
}

func TestResolve_BuiltinResolvesToDepthZero(t *testing.T) {
	prog, h := resolve(t, "print clock()\n")
	assert.False(t, h.HadError())
	v := findVariable(t, prog.Stmts, "clock")
	require.NotNil(t, v)
	assert.Equal(t, 0, v.Depth) // scope 0 is builtins
}

func TestResolve_UndefinedVariableIsNameError(t *testing.T) {
	_, h := resolve(t, "print y\n")
	assert.True(t, h.HadAnalysisError)
	assert.Equal(t, "E2002", h.Diagnostics[0].Code)
}

func TestResolve_ShadowAfterUseInSameScopeIsError(t *testing.T) {
	text := "x = 1\nfunc f() do\n    print x\n    x = 2\nprint f()\n"
	_, h := resolve(t, text)
	assert.True(t, h.HadAnalysisError)
	assert.Equal(t, "E2001", h.Diagnostics[0].Code)
}

func TestResolve_DoBlockDoesNotIntroduceNewScope(t *testing.T) {
	text := "do\n    x = 1\nprint x\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "x declared inside do must be visible after it: %v", h.Reports())
}

func TestResolve_IfDoesNotIntroduceNewScope(t *testing.T) {
	text := "cond = true\nif cond do\n    y = 1\nprint y\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}

func TestResolve_ForLoopVariableIsDeclaredAndVisibleAfter(t *testing.T) {
	text := "for i in 0:3 do\n    print i\nprint i\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}

func TestResolve_MutualRecursionResolvesViaLazyFunctionQueue(t *testing.T) {
	text := "func isEven(n) do\n    return isOdd(n)\nfunc isOdd(n) do\n    return isEven(n)\nprint isEven(4)\n"
	prog, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())

	var isEven *ast.FunctionStmt
	for _, s := range prog.Stmts {
		if fs, ok := s.(*ast.FunctionStmt); ok && fs.Name == "isEven" {
			isEven = fs
		}
	}
	require.NotNil(t, isEven)
	assert.Contains(t, isEven.FreeVars, "isOdd")
}

func TestResolve_FunctionCapturesFreeVariableFromEnclosingScope(t *testing.T) {
	text := "total = 0\nfunc addToTotal(n) do\n    return n + total\nprint addToTotal(1)\n"
	prog, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())

	var fn *ast.FunctionStmt
	for _, s := range prog.Stmts {
		if fs, ok := s.(*ast.FunctionStmt); ok {
			fn = fs
		}
	}
	require.NotNil(t, fn)
	assert.Contains(t, fn.FreeVars, "total")
}

func TestResolve_FunctionExprIsResolvedEagerly(t *testing.T) {
	text := "add = func(a, b) its a + b\nprint add(1, 2)\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}

func TestResolve_FunctionExprFreeVarsRecorded(t *testing.T) {
	text := "base = 10\nbump = func(n) its n + base\nprint bump(1)\n"
	prog, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())

	var fnExpr *ast.FunctionExpr
	for _, s := range prog.Stmts {
		if es, ok := s.(*ast.ExpressionStmt); ok {
			if assign, ok := es.Expr.(*ast.AssignExpr); ok && assign.Name == "bump" {
				fnExpr, _ = assign.Value.(*ast.FunctionExpr)
			}
		}
	}
	require.NotNil(t, fnExpr)
	assert.Contains(t, fnExpr.FreeVars, "base")
}

func TestResolve_StructDeclarationRegistersName(t *testing.T) {
	text := "struct Vector\n    x\n    y\nprint Vector\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}

func TestResolve_ImplMethodBindsThisAndThis(t *testing.T) {
	text := "struct Vector\n    x\n    y\nimpl Vector\n    method length() do\n        return this..x\nprint Vector\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}

func TestResolve_BreakOutsideLoopStillResolves(t *testing.T) {
	// The resolver does not enforce loop-nesting legality (that's an
	// interpreter/runtime concern, per spec.md's break rule), so a bare
	// break resolves without error here even outside a loop.
	text := "break\n"
	_, h := resolve(t, text)
	assert.False(t, h.HadError(), "%v", h.Reports())
}
