// Package interpreter is Zoof's tree-walking evaluator: it executes a
// resolved *ast.Program against a persistent module-global environment,
// dispatching statements and expressions by Go type switch. Grounded on
// zoofc1 interpreter.py (environment depth walk, Callable protocol,
// closure-capture rejection, struct/trait/impl dispatch) combined with
// Eloquence evaluator/evaluator.go's dispatch shape (Eval(node, env)
// returning a sentinel on error) and object/environment.go's
// parent-chain idiom. Control flow (return/break) is modeled as
// explicit Go error values propagated up the call stack rather than
// panics, per the teacher's isError-sentinel style generalized to
// Go's native error return.
package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"zoof/ast"
	"zoof/errors"
	"zoof/object"
	"zoof/source"
	"zoof/token"
)

// returnSignal unwinds a function call with its return value.
type returnSignal struct{ Value object.Value }

func (returnSignal) Error() string { return "return outside a function" }

// breakSignal unwinds the innermost loop.
type breakSignal struct{}

func (breakSignal) Error() string { return "break outside a loop" }

// stopSignal marks that a runtime error was already reported to the
// handler; it only tells callers to stop evaluating, never to report
// anything themselves.
type stopSignal struct{}

func (stopSignal) Error() string { return "runtime error" }

// Interpreter holds the state that persists across top-level
// executions: the module-global environment (so a REPL session's later
// input can see earlier bindings) and the shared diagnostics handler.
type Interpreter struct {
	handler *errors.Handler
	globals *object.Environment
	env     *object.Environment
	out     func(string)

	// openFunctions tracks, per call depth, the Functions declared
	// during that call whose defining scope hasn't closed yet — mirrors
	// zoofc1's maybeClosures stack, used to run popEnvironment/capture
	// detection when a call returns.
	openFunctions [][]*object.Function
}

// builtins constructs the immutable depth-0 environment, per spec.md
// §4.4 ("clock() -> Number", "arbitraryNumber() -> Number").
func builtins() *object.Environment {
	env := object.NewEnvironment()
	// clock reads Go's monotonic clock: seconds since this environment
	// was built.
	start := time.Now()
	env.Set("clock", &object.NativeFunction{
		Name: "clock",
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(time.Since(start).Seconds()), nil
		},
	})
	env.Set("arbitraryNumber", &object.NativeFunction{
		Name: "arbitraryNumber",
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(7.0), nil
		},
	})
	return env
}

// New returns an Interpreter whose module-global environment sits at
// depth 1, above the depth-0 builtins. out receives one stringified
// line per Print statement, plus one for the value of the program's
// last top-level statement when that statement is an expression.
func New(handler *errors.Handler, out func(string)) *Interpreter {
	globals := object.NewEnclosed(builtins())
	return &Interpreter{handler: handler, globals: globals, env: globals, out: out}
}

// Run executes prog against i's persistent environment. It returns
// (lastValue, true) when execution completed without a runtime error;
// the handler already holds the diagnostic on failure.
func (i *Interpreter) Run(prog *ast.Program) (object.Value, bool) {
	i.env = i.globals
	var last object.Value
	var hadValue bool

	for _, stmt := range prog.Stmts {
		if es, ok := stmt.(*ast.ExpressionStmt); ok {
			v, err := i.evalExpr(es.Expr)
			if err != nil {
				return nil, false
			}
			last, hadValue = v, true
			continue
		}
		hadValue = false
		if err := i.execStmt(stmt); err != nil {
			return nil, false
		}
	}
	if hadValue && last != nil {
		i.out(last.Inspect())
	}
	return last, true
}

func (i *Interpreter) spanOf(n interface {
	Span() (source.Pos, source.Pos)
}) errors.Span {
	start, end := n.Span()
	return errors.Span{Start: start, End: end}
}

func (i *Interpreter) runtimeError(code, message string, n interface {
	Span() (source.Pos, source.Pos)
}, explanation string) error {
	i.handler.RuntimeError(code, message, i.spanOf(n), explanation)
	return stopSignal{}
}

// typeName renders a Value's Kind capitalized, matching zoofc1's
// value.__class__.__name__ used in its "Cannot convert X to bool."
// message (e.g. Number, String, Nil).
func typeName(v object.Value) string {
	k := string(v.Kind())
	if k == "" {
		return k
	}
	return strings.ToUpper(k[:1]) + k[1:]
}

func notBoolError(i *Interpreter, v object.Value, n interface {
	Span() (source.Pos, source.Pos)
}) error {
	return i.runtimeError("E8295", fmt.Sprintf("Cannot convert %s to bool.", typeName(v)), n, "")
}

// ---- statements ----

func (i *Interpreter) execStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.DoStmt:
		return i.execStmts(n.Body)

	case *ast.IfStmt:
		return i.execIfStmt(n)

	case *ast.ForStmt:
		return i.execForStmt(n)

	case *ast.WhileStmt:
		return i.execWhileStmt(n)

	case *ast.BreakStmt:
		if !i.env.InLoop() {
			return i.runtimeError("E8311", "can only break inside a for-loop or while-loop", n, "")
		}
		return breakSignal{}

	case *ast.ReturnStmt:
		var val object.Value = object.NilValue
		if n.Value != nil {
			v, err := i.evalExpr(n.Value)
			if err != nil {
				return err
			}
			val = v
		}
		return returnSignal{Value: val}

	case *ast.PrintStmt:
		v, err := i.evalExpr(n.Value)
		if err != nil {
			return err
		}
		i.out(v.Inspect())
		return nil

	case *ast.FunctionStmt:
		fn := i.newFunction(n.Name, n.Params, n.Body, n.ExprBody, n.FreeVars)
		i.env.Set(n.Name, fn)
		i.trackOpenFunction(fn)
		return nil

	case *ast.StructStmt:
		i.env.Set(n.Name, object.NewStruct(n.Name, n.Fields))
		return nil

	case *ast.TraitStmt:
		return i.execTraitStmt(n)

	case *ast.ImplStmt:
		return i.execImplStmt(n)

	case *ast.ExpressionStmt:
		_, err := i.evalExpr(n.Expr)
		return err

	default:
		panic("interpreter: unhandled statement type")
	}
}

func (i *Interpreter) execIfStmt(n *ast.IfStmt) error {
	cond, err := i.evalExpr(n.Cond)
	if err != nil {
		return err
	}
	b, ok := object.IsTruthy(cond)
	if !ok {
		return notBoolError(i, cond, n)
	}
	if b {
		return i.execStmts(n.Then)
	}
	for _, ei := range n.ElseIfs {
		c, err := i.evalExpr(ei.Cond)
		if err != nil {
			return err
		}
		bb, ok := object.IsTruthy(c)
		if !ok {
			return notBoolError(i, c, n)
		}
		if bb {
			return i.execStmts(ei.Body)
		}
	}
	if n.Else != nil {
		return i.execStmts(n.Else)
	}
	return nil
}

func (i *Interpreter) execWhileStmt(n *ast.WhileStmt) error {
	i.env.PushLoop()
	defer i.env.PopLoop()
	for {
		cond, err := i.evalExpr(n.Cond)
		if err != nil {
			return err
		}
		b, ok := object.IsTruthy(cond)
		if !ok {
			return notBoolError(i, cond, n)
		}
		if !b {
			return nil
		}
		if err := i.execStmts(n.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			return err
		}
	}
}

func (i *Interpreter) execForStmt(n *ast.ForStmt) error {
	iterV, err := i.evalExpr(n.Iterable)
	if err != nil {
		return err
	}
	rng, ok := iterV.(*object.Range)
	if !ok {
		return i.runtimeError("E8296", "for-loop iterable must be a range", n, "")
	}

	i.env.PushLoop()
	defer i.env.PopLoop()
	for v := rng.Start; v < rng.Stop; v += rng.Step {
		i.env.Set(n.Var, object.Number(v))
		if err := i.execStmts(n.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			return err
		}
	}
	return nil
}

func (i *Interpreter) execTraitStmt(n *ast.TraitStmt) error {
	methods := make(map[string]*ast.FunctionStmt)
	for _, m := range n.Methods {
		methods[m.Name] = m
	}
	i.env.Set(n.Name, &object.Trait{Name: n.Name, Methods: methods, Implementations: make(map[string]*object.Impl)})
	return nil
}

func (i *Interpreter) execImplStmt(n *ast.ImplStmt) error {
	structVal, err := i.lookupByName(n.Struct)
	if err != nil {
		return i.runtimeError("E8297", "unknown struct '"+n.Struct+"'", n, "")
	}
	strct, ok := structVal.(*object.Struct)
	if !ok {
		return i.runtimeError("E8298", "'"+n.Struct+"' is not a struct", n, "")
	}

	var trait *object.Trait
	if n.Trait != "" {
		traitVal, err := i.lookupByName(n.Trait)
		if err != nil {
			return i.runtimeError("E8299", "unknown trait '"+n.Trait+"'", n, "")
		}
		t, ok := traitVal.(*object.Trait)
		if !ok {
			return i.runtimeError("E8300", "'"+n.Trait+"' is not a trait", n, "")
		}
		trait = t
		for _, m := range trait.Methods {
			if m.Body != nil || m.ExprBody != nil {
				i.installMethod(strct, m)
			}
		}
	}

	for _, m := range n.Methods {
		i.installMethod(strct, m)
	}

	if trait != nil {
		if err := i.checkNoAbstractMembersRemain(strct, trait, n); err != nil {
			return err
		}
	}

	impl := &object.Impl{Trait: trait, Struct: strct}
	if trait != nil {
		if trait.Implementations == nil {
			trait.Implementations = make(map[string]*object.Impl)
		}
		trait.Implementations[strct.Name] = impl
	}

	i.env.Set(strct.Name, strct)
	return nil
}

// lookupByName is for environment reads whose depth the resolver never
// annotated (trait/struct names referenced from ImplStmt, which carries
// bare strings rather than a resolved VariableExpr) — it walks from the
// current environment outward, the one place the interpreter falls back
// to a chain scan instead of depth-indexed lookup, since ImplStmt names
// aren't run through the resolver's VariableExpr machinery.
func (i *Interpreter) lookupByName(name string) (object.Value, error) {
	for env := i.env; env != nil; env = env.Parent {
		if v, ok := env.Get(name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("undefined name %q", name)
}

func (i *Interpreter) installMethod(strct *object.Struct, m *ast.FunctionStmt) {
	fn := i.newFunction(m.Name, m.Params, m.Body, m.ExprBody, m.FreeVars)
	switch m.Kind {
	case ast.KindGetter:
		strct.Getters[m.Name] = fn
	case ast.KindSetter:
		strct.Setters[m.Name] = fn
	default:
		strct.Methods[m.Name] = fn
	}
}

// checkNoAbstractMembersRemain verifies every abstract signature trait
// declares (nil Body and ExprBody) now has a concrete entry on strct,
// either merged from the trait's own default or supplied by the impl
// block itself. Per spec.md §4.4: a struct implementing a trait must
// fill in every abstract member, or the impl is a runtime error.
func (i *Interpreter) checkNoAbstractMembersRemain(strct *object.Struct, trait *object.Trait, n *ast.ImplStmt) error {
	for name, m := range trait.Methods {
		if m.Body != nil || m.ExprBody != nil {
			continue
		}
		var table map[string]*object.Function
		switch m.Kind {
		case ast.KindGetter:
			table = strct.Getters
		case ast.KindSetter:
			table = strct.Setters
		default:
			table = strct.Methods
		}
		if _, ok := table[name]; !ok {
			return i.runtimeError("E8326",
				fmt.Sprintf("%s does not implement abstract member '%s' from trait '%s'", strct.Name, name, trait.Name), n, "")
		}
	}
	return nil
}

// ---- expressions ----

func (i *Interpreter) evalExpr(e ast.Expr) (object.Value, error) {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return i.evalLiteral(n)

	case *ast.VariableExpr:
		return i.lookupVariable(n)

	case *ast.AssignExpr:
		return i.evalAssign(n)

	case *ast.UnaryExpr:
		return i.evalUnary(n)

	case *ast.BinaryExpr:
		return i.evalBinary(n)

	case *ast.LogicalExpr:
		return i.evalLogical(n)

	case *ast.GroupingExpr:
		return i.evalExpr(n.Inner)

	case *ast.RangeExpr:
		return i.evalRange(n)

	case *ast.CallExpr:
		return i.evalCall(n)

	case *ast.GetExpr:
		return i.evalGet(n)

	case *ast.SetExpr:
		return i.evalSet(n)

	case *ast.IfExpr:
		return i.evalIfExpr(n)

	case *ast.FunctionExpr:
		fn := i.newFunction("", n.Params, nil, n.Body, n.FreeVars)
		i.trackOpenFunction(fn)
		return fn, nil

	default:
		panic("interpreter: unhandled expression type")
	}
}

func (i *Interpreter) evalLiteral(n *ast.LiteralExpr) (object.Value, error) {
	switch n.Token.Type {
	case token.Nil:
		return object.NilValue, nil
	case token.True:
		return object.Bool(true), nil
	case token.False:
		return object.Bool(false), nil
	case token.Number:
		f, err := strconv.ParseFloat(n.Token.Lexeme, 64)
		if err != nil {
			return nil, i.runtimeError("E8301", "invalid number literal '"+n.Token.Lexeme+"'", n, "")
		}
		return object.Number(f), nil
	case token.String:
		lex := n.Token.Lexeme
		if len(lex) >= 2 {
			lex = lex[1 : len(lex)-1]
		}
		return object.String(lex), nil
	default:
		return nil, i.runtimeError("E8302", "unexpected literal '"+n.Token.Lexeme+"'", n, "")
	}
}

// lookupVariable walks exactly Index-Depth parent hops, per the
// resolver's Depth annotation (spec.md invariant (a): depth >= 0).
func (i *Interpreter) lookupVariable(n *ast.VariableExpr) (object.Value, error) {
	env := i.env.AtDepth(n.Depth)
	v, ok := env.Get(n.Name)
	if !ok {
		return nil, i.runtimeError("E8303", "undefined variable '"+n.Name+"'", n, "")
	}
	return v, nil
}

// evalAssign binds in the current environment only — Zoof has no
// walking-assignment; the resolver already set Depth to the innermost
// scope.
func (i *Interpreter) evalAssign(n *ast.AssignExpr) (object.Value, error) {
	v, err := i.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	i.env.Set(n.Name, v)
	return v, nil
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpr) (object.Value, error) {
	right, err := i.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	num, ok := right.(object.Number)
	if !ok {
		return nil, i.runtimeError("E8304", fmt.Sprintf("unary operand must be a number, not '%s'", right.Kind()), n, "")
	}
	switch n.Op {
	case token.Minus:
		return -num, nil
	case token.Plus:
		return num, nil
	default:
		return nil, i.runtimeError("E8305", "unexpected unary operator", n, "")
	}
}

func (i *Interpreter) evalLogical(n *ast.LogicalExpr) (object.Value, error) {
	left, err := i.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := object.IsTruthy(left)
	if !ok {
		return nil, notBoolError(i, left, n)
	}
	if n.Op == "or" {
		if lb {
			return left, nil
		}
	} else if !lb { // "and"
		return left, nil
	}
	right, err := i.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if _, ok := object.IsTruthy(right); !ok {
		return nil, notBoolError(i, right, n)
	}
	return right, nil
}

func (i *Interpreter) evalBinary(n *ast.BinaryExpr) (object.Value, error) {
	left, err := i.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.Minus, token.Slash, token.Star, token.Caret:
		return i.evalNumericBinary(n, left, right)
	case token.Plus:
		return i.evalPlus(n, left, right)
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return i.evalComparison(n, left, right)
	case token.EqualEqual:
		return object.Bool(i.valuesEqual(left, right)), nil
	case token.BangEqual:
		return object.Bool(!i.valuesEqual(left, right)), nil
	default:
		return nil, i.runtimeError("E8306", "unexpected binary operator", n, "")
	}
}

func (i *Interpreter) checkNumberOperands(n *ast.BinaryExpr, left, right object.Value) (object.Number, object.Number, error) {
	l, ok := left.(object.Number)
	if !ok {
		return 0, 0, i.runtimeError("E8307", fmt.Sprintf("left operand must be a number, not '%s'", left.Kind()), n, "")
	}
	r, ok := right.(object.Number)
	if !ok {
		return 0, 0, i.runtimeError("E8308", fmt.Sprintf("right operand must be a number, not '%s'", right.Kind()), n, "")
	}
	return l, r, nil
}

func (i *Interpreter) evalNumericBinary(n *ast.BinaryExpr, left, right object.Value) (object.Value, error) {
	l, r, err := i.checkNumberOperands(n, left, right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.Minus:
		return l - r, nil
	case token.Slash:
		return l / r, nil
	case token.Star:
		return l * r, nil
	case token.Caret:
		return object.Number(math.Pow(float64(l), float64(r))), nil
	default:
		return nil, i.runtimeError("E8306", "unexpected binary operator", n, "")
	}
}

func (i *Interpreter) evalPlus(n *ast.BinaryExpr, left, right object.Value) (object.Value, error) {
	if l, ok := left.(object.Number); ok {
		if r, ok := right.(object.Number); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(object.String); ok {
		if r, ok := right.(object.String); ok {
			return l + r, nil
		}
	}
	return nil, i.runtimeError("E8309",
		fmt.Sprintf("cannot add '%s' and '%s'", left.Kind(), right.Kind()), n, "")
}

func (i *Interpreter) evalComparison(n *ast.BinaryExpr, left, right object.Value) (object.Value, error) {
	l, r, err := i.checkNumberOperands(n, left, right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.Greater:
		return object.Bool(l > r), nil
	case token.GreaterEqual:
		return object.Bool(l >= r), nil
	case token.Less:
		return object.Bool(l < r), nil
	case token.LessEqual:
		return object.Bool(l <= r), nil
	default:
		return nil, i.runtimeError("E8306", "unexpected comparison operator", n, "")
	}
}

// valuesEqual implements spec.md's equality rule: value-equality for
// primitives, identity otherwise, except nil == nil is true.
func (i *Interpreter) valuesEqual(left, right object.Value) bool {
	_, lNil := left.(object.Nil)
	_, rNil := right.(object.Nil)
	if lNil && rNil {
		return true
	}
	if lNil != rNil {
		return false
	}
	switch l := left.(type) {
	case object.Number:
		r, ok := right.(object.Number)
		return ok && l == r
	case object.String:
		r, ok := right.(object.String)
		return ok && l == r
	case object.Bool:
		r, ok := right.(object.Bool)
		return ok && l == r
	default:
		return left == right
	}
}

func (i *Interpreter) evalRange(n *ast.RangeExpr) (object.Value, error) {
	startV, err := i.evalExpr(n.Start)
	if err != nil {
		return nil, err
	}
	stopV, err := i.evalExpr(n.Stop)
	if err != nil {
		return nil, err
	}
	start, ok := startV.(object.Number)
	if !ok {
		return nil, i.runtimeError("E8310", "range bounds must be numbers", n, "")
	}
	stop, ok := stopV.(object.Number)
	if !ok {
		return nil, i.runtimeError("E8310", "range bounds must be numbers", n, "")
	}
	step := object.Number(1)
	if n.Step != nil {
		stepV, err := i.evalExpr(n.Step)
		if err != nil {
			return nil, err
		}
		step, ok = stepV.(object.Number)
		if !ok || step <= 0 {
			return nil, i.runtimeError("E8310", "range step must be a positive number", n, "")
		}
	}
	return &object.Range{Start: float64(start), Stop: float64(stop), Step: float64(step)}, nil
}

func (i *Interpreter) evalIfExpr(n *ast.IfExpr) (object.Value, error) {
	cond, err := i.evalExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := object.IsTruthy(cond)
	if !ok {
		return nil, notBoolError(i, cond, n)
	}
	if b {
		return i.evalExpr(n.Then)
	}
	return i.evalExpr(n.Else)
}
