// Package resolver performs Zoof's static name-resolution pass: one
// walk over the parsed AST that annotates every variable reference with
// a lexical-scope depth and validates declaration order. Grounded
// directly on zoofc1 resolver.py — the teacher (Eloquence) has no
// resolver of its own, so this package is new, written in the
// teacher's pattern-matching-over-generated-visitor idiom used
// throughout the rest of this tree.
package resolver

import (
	"zoof/ast"
	"zoof/errors"
	"zoof/source"
)

// scope holds the names declared directly in it, plus the free-variable
// uses recorded against it: identifiers read in this scope that
// resolved to an outer one, kept so declare() can catch a variable used
// before its later, shadowing declaration in the same scope.
type scope struct {
	names    map[string]bool
	freeVars map[string]*ast.VariableExpr
}

func newScope() *scope {
	return &scope{names: make(map[string]bool), freeVars: make(map[string]*ast.VariableExpr)}
}

func (s *scope) contains(name string) bool { return s.names[name] }

// Resolver walks a *ast.Program exactly once, mutating VariableExpr.Depth,
// AssignExpr.Depth, and FunctionStmt/FunctionExpr.FreeVars in place.
type Resolver struct {
	handler    *errors.Handler
	scopes     []*scope
	unresolved map[string]*ast.FunctionStmt
}

// builtinNames seeds scope 0, the read-only builtins scope, per
// spec.md §4.3 ("Scope 0 is builtins"). Mirrors zoofc1's BUILTINS keys.
var builtinNames = []string{"clock", "arbitraryNumber"}

// New returns a Resolver bound to handler, with scope 0 (builtins)
// already pushed.
func New(handler *errors.Handler) *Resolver {
	builtins := newScope()
	for _, name := range builtinNames {
		builtins.names[name] = true
	}
	return &Resolver{
		handler:    handler,
		scopes:     []*scope{builtins},
		unresolved: make(map[string]*ast.FunctionStmt),
	}
}

// Resolve resolves an entire program: scope 1 (module globals) is
// pushed for the duration of the walk and popped at the end, which also
// drains any FunctionStmt bodies still queued for lazy resolution.
func (r *Resolver) Resolve(prog *ast.Program) {
	r.beginScope()
	r.resolveStmts(prog.Stmts)
	r.endScope()
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, newScope())
}

// endScope first resolves any FunctionStmt bodies still queued from this
// scope (mutual recursion support, per spec.md §4.3), then pops.
func (r *Resolver) endScope() {
	for name := range r.unresolved {
		r.checkFunction(name)
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) current() *scope { return r.scopes[len(r.scopes)-1] }

func (r *Resolver) spanAt(pos source.Pos) errors.Span {
	return errors.Span{Start: pos, End: source.Pos{Line: pos.Line, Column: pos.Column + 1}}
}

// declare adds name to the innermost scope. If name was already read in
// this same scope as a free variable (an outer reference recorded
// before this declaration), that use is now ambiguous: a later
// assignment shadows the outer binding the earlier read relied on.
func (r *Resolver) declare(name string, at source.Pos) {
	cur := r.current()
	if _, ok := cur.freeVars[name]; ok {
		r.handler.NameError("E2001",
			"variable is used before it's defined in this scope", r.spanAt(at),
			"A variable cannot be read from an outer scope and then shadowed by a "+
				"local declaration of the same name later in the same scope.")
	}
	cur.names[name] = true
}

// resolveLocal implements the reference rule: search scopes innermost
// outward, record the depth where found, and — if the name resolved to
// an outer scope — record the read in the current scope's free-variable
// map so declare() can catch a later shadowing declaration.
func (r *Resolver) resolveLocal(v *ast.VariableExpr) {
	v.Depth = -1
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i].contains(v.Name) {
			v.Depth = i
			break
		}
	}
	if v.Depth == -1 {
		start, _ := v.Span()
		r.handler.NameError("E2002", "undefined variable '"+v.Name+"'", r.spanAt(start),
			"No enclosing scope declares this name before this point.")
		return
	}
	if v.Depth != len(r.scopes)-1 {
		cur := r.current()
		if _, ok := cur.freeVars[v.Name]; !ok {
			cur.freeVars[v.Name] = v
		}
	}
}

// checkFunction resolves a queued FunctionStmt's body: a new scope holds
// its parameters (and, for method/getter/setter, the synthetic `this`/
// `This` bindings per spec.md §4.3), then the free variables it read
// from outside that scope (excluding builtins at depth 0) are recorded
// onto the declaration for the interpreter's closure-capture check.
func (r *Resolver) checkFunction(name string) {
	stmt, ok := r.unresolved[name]
	if !ok {
		return
	}
	delete(r.unresolved, name)

	r.beginScope()
	if stmt.Kind != ast.KindFunc {
		start, _ := stmt.Span()
		r.declare("this", start)
		r.declare("This", start)
	}
	for _, p := range stmt.Params {
		start, _ := stmt.Span()
		r.declare(p, start)
	}
	switch {
	case stmt.Body != nil:
		r.resolveStmts(stmt.Body)
	case stmt.ExprBody != nil:
		r.resolveExpr(stmt.ExprBody)
	}
	stmt.FreeVars = r.collectFreeVars()
	r.endScope()
}

// collectFreeVars returns the names read from outside the current
// (innermost, about-to-close) scope, excluding builtins (depth 0).
func (r *Resolver) collectFreeVars() []string {
	cur := r.current()
	var free []string
	for name, v := range cur.freeVars {
		if v.Depth >= 1 {
			free = append(free, name)
		}
	}
	return free
}

// resolveFunctionLiteral resolves a FunctionExpr's body eagerly: unlike
// a named FunctionStmt it has no name to key lazy resolution on, so its
// body is walked immediately in its own scope.
func (r *Resolver) resolveFunctionLiteral(fn *ast.FunctionExpr) {
	r.beginScope()
	for _, p := range fn.Params {
		start, _ := fn.Span()
		r.declare(p, start)
	}
	r.resolveExpr(fn.Body)
	fn.FreeVars = r.collectFreeVars()
	r.endScope()
}

// resolveMethodBody resolves one trait/impl method with `this`/`This`
// bound in its own scope, the same shape checkFunction uses for queued
// FunctionStmts — but eager, since trait/impl methods aren't looked up
// by a bare CallExpr the way top-level functions are.
func (r *Resolver) resolveMethodBody(fn *ast.FunctionStmt) {
	r.beginScope()
	start, _ := fn.Span()
	r.declare("this", start)
	r.declare("This", start)
	for _, p := range fn.Params {
		r.declare(p, start)
	}
	switch {
	case fn.Body != nil:
		r.resolveStmts(fn.Body)
	case fn.ExprBody != nil:
		r.resolveExpr(fn.ExprBody)
	}
	fn.FreeVars = r.collectFreeVars()
	r.endScope()
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.DoStmt:
		// No new scope: blocks don't introduce one, only function calls do.
		r.resolveStmts(n.Body)

	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmts(n.Then)
		for _, ei := range n.ElseIfs {
			r.resolveExpr(ei.Cond)
			r.resolveStmts(ei.Body)
		}
		if n.Else != nil {
			r.resolveStmts(n.Else)
		}

	case *ast.ForStmt:
		r.resolveExpr(n.Iterable)
		start, _ := n.Span()
		r.declare(n.Var, start)
		r.resolveStmts(n.Body)

	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmts(n.Body)

	case *ast.BreakStmt:
		// No references to resolve.

	case *ast.ReturnStmt:
		if n.Value != nil {
			r.resolveExpr(n.Value)
		}

	case *ast.PrintStmt:
		r.resolveExpr(n.Value)

	case *ast.FunctionStmt:
		start, _ := n.Span()
		r.declare(n.Name, start)
		r.unresolved[n.Name] = n

	case *ast.StructStmt:
		start, _ := n.Span()
		r.declare(n.Name, start)

	case *ast.TraitStmt:
		start, _ := n.Span()
		r.declare(n.Name, start)
		for _, m := range n.Methods {
			if m.Body != nil || m.ExprBody != nil {
				r.resolveMethodBody(m)
			}
		}

	case *ast.ImplStmt:
		for _, m := range n.Methods {
			r.resolveMethodBody(m)
		}

	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expr)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		// Nothing to resolve.

	case *ast.VariableExpr:
		r.resolveLocal(n)

	case *ast.AssignExpr:
		r.resolveExpr(n.Value)
		start, _ := n.Span()
		r.declare(n.Name, start)
		// Assignment is always local: Zoof has no separate declaration
		// keyword, so the depth is simply the current innermost scope.
		n.Depth = len(r.scopes) - 1

	case *ast.UnaryExpr:
		r.resolveExpr(n.Right)

	case *ast.BinaryExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.GroupingExpr:
		r.resolveExpr(n.Inner)

	case *ast.RangeExpr:
		r.resolveExpr(n.Start)
		r.resolveExpr(n.Stop)
		if n.Step != nil {
			r.resolveExpr(n.Step)
		}

	case *ast.CallExpr:
		r.resolveExpr(n.Callee)
		if v, ok := n.Callee.(*ast.VariableExpr); ok {
			r.checkFunction(v.Name)
		}
		for _, a := range n.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(n.Object)

	case *ast.SetExpr:
		r.resolveExpr(n.Object)
		r.resolveExpr(n.Value)

	case *ast.IfExpr:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)

	case *ast.FunctionExpr:
		r.resolveFunctionLiteral(n)

	default:
		panic("resolver: unhandled expression type")
	}
}
