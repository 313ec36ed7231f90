package object

// Environment is one lexical scope. Index counts parent hops from the
// outermost scope (builtins sit at 0, globals at 1, and so on); the
// resolver annotates every VariableExpr/AssignExpr with the absolute
// depth it resolved to, so lookup walks exactly Index-Depth parents
// instead of Eloquence's scan-every-enclosing-scope Get. This is the one
// load-bearing departure from the teacher's Environment.
//
// LoopMarkers tracks lexical loop nesting on this Environment rather
// than on the Interpreter, so that `break`'s legality follows the loop
// a statement is lexically inside, which keeps working once function
// calls can appear inside loop bodies.
type Environment struct {
	Parent      *Environment
	Index       int
	Bindings    map[string]Value
	LoopMarkers []bool
}

// NewEnvironment creates the outermost (builtins) environment.
func NewEnvironment() *Environment {
	return &Environment{Index: 0, Bindings: make(map[string]Value)}
}

// NewEnclosed creates a child scope one level deeper than parent.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{Parent: parent, Index: parent.Index + 1, Bindings: make(map[string]Value)}
}

// Set binds name in THIS environment only. Zoof has no separate
// declaration keyword: every assignment both declares and writes in the
// innermost scope, per spec.md's assignment semantics.
func (e *Environment) Set(name string, val Value) {
	e.Bindings[name] = val
}

// Get retrieves name from this exact environment (no parent scan — the
// resolver's Depth annotation is what selects the right environment
// before Get is ever called).
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.Bindings[name]
	return v, ok
}

// AtDepth walks parent links until reaching the environment whose Index
// equals depth, per the resolver's VariableExpr.Depth/AssignExpr.Depth.
func (e *Environment) AtDepth(depth int) *Environment {
	env := e
	for env.Index > 0 && env.Index > depth {
		env = env.Parent
	}
	return env
}

// PushLoop marks entry into a new for/while loop body.
func (e *Environment) PushLoop() {
	e.LoopMarkers = append(e.LoopMarkers, true)
}

// PopLoop marks exit from the innermost loop body.
func (e *Environment) PopLoop() {
	e.LoopMarkers = e.LoopMarkers[:len(e.LoopMarkers)-1]
}

// InLoop reports whether break is legal in the current environment.
func (e *Environment) InLoop() bool {
	return len(e.LoopMarkers) > 0
}
