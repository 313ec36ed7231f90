// Package object defines Zoof's runtime value system: the closed set of
// types an evaluated expression can produce, plus the Struct/Trait/Impl
// archetypes the interpreter dispatches method calls against.
package object

import (
	"fmt"
	"strconv"
	"strings"

	"zoof/ast"
	"zoof/source"
)

// Kind identifies a value's runtime type, for error messages and
// isTruthy/type-check diagnostics.
type Kind string

const (
	NilKind      Kind = "nil"
	BoolKind     Kind = "bool"
	NumberKind   Kind = "number"
	StringKind   Kind = "string"
	RangeKind    Kind = "range"
	FunctionKind Kind = "function"
	StructKind   Kind = "struct"
	TraitKind    Kind = "trait"
	ImplKind     Kind = "impl"
	InstanceKind Kind = "instance"
)

// Value is implemented by every runtime value. Zoof has no numeric
// tower and no user-extensible type system beyond struct/trait/impl, so
// this is a closed sum rather than an open interface meant for embedding.
type Value interface {
	Kind() Kind
	Inspect() string
}

// ---- primitives ----

// Nil is Zoof's single null value.
type Nil struct{}

func (Nil) Kind() Kind      { return NilKind }
func (Nil) Inspect() string { return "nil" }

// NilValue is the shared Nil instance; all nils are interchangeable.
var NilValue = Nil{}

type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (b Bool) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is Zoof's only numeric type: a float64, per spec.md's "no
// integer/float split" non-goal.
type Number float64

func (Number) Kind() Kind { return NumberKind }

// Inspect always shows a decimal point, matching zoofc1's stringify
// (Python's repr(float) on a value like 11.0 prints "11.0", not "11") —
// Zoof has no integer literal form, so every Number should read as one.
func (n Number) Inspect() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type String string

func (String) Kind() Kind      { return StringKind }
func (s String) Inspect() string { return string(s) }

// Range is produced by the `start:stop` or `start:stop:step` form. Step
// defaults to 1 when the source only supplied start:stop.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

func (*Range) Kind() Kind { return RangeKind }
func (r *Range) Inspect() string {
	if r.Step == 1 {
		return fmt.Sprintf("%g:%g", r.Start, r.Stop)
	}
	return fmt.Sprintf("%g:%g:%g", r.Start, r.Stop, r.Step)
}

// ---- callables ----

// Callable is implemented by every value that CallExpr can invoke.
type Callable interface {
	Value
	Arity() int
}

// NativeFunction wraps a Go function as a zero-overhead builtin, the way
// zoofc1's BUILTINS table wraps clock()/arbitraryNumber() as Callables.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*NativeFunction) Kind() Kind        { return FunctionKind }
func (n *NativeFunction) Inspect() string { return "<native fn " + n.Name + ">" }
func (*NativeFunction) Arity() int        { return 0 }

// Function is a user-declared func/method/getter/setter or a func(...)
// its... lambda. Exactly one of Body or ExprBody is set, mirroring
// ast.FunctionStmt/ast.FunctionExpr. Closure is the defining environment;
// Source is the defining *source.Source, swapped into the diagnostics
// handler for the duration of a call so errors inside the body point at
// the function's own source/line rather than the caller's.
type Function struct {
	Name     string
	Params   []string
	Body     []ast.Stmt
	ExprBody ast.Expr
	FreeVars []string
	Closure  *Environment
	Source   *source.Source

	// Captured records free variables found bound in the defining call's
	// environment when that call returned. A non-empty Captured makes
	// every later call fail: Zoof does not support closures.
	Captured []string
}

func (*Function) Kind() Kind  { return FunctionKind }
func (f *Function) Arity() int { return len(f.Params) }

// PopEnvironmentCheck runs when the environment f was declared in
// closes: any of f's free variables actually bound in that environment
// get moved into Captured, which makes a later call to f fail (Zoof
// does not support closures). Grounded on zoofc1 ZoofFunction.popEnvironment.
func (f *Function) PopEnvironmentCheck(env *Environment) {
	var remaining []string
	for _, name := range f.FreeVars {
		if _, ok := env.Bindings[name]; ok {
			f.Captured = append(f.Captured, name)
		} else {
			remaining = append(remaining, name)
		}
	}
	f.FreeVars = remaining
}

func (f *Function) Inspect() string {
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	return "<fn " + name + "(" + strings.Join(f.Params, ", ") + ")>"
}

// BoundMethod pairs a Function with the receiver its `this`/`This`
// bindings should resolve to. This is either a *Struct — a "static
// function" fetched via `.` on the archetype itself, used by a
// constructor-style method that calls This(...) to build an Instance —
// or an *Instance, the ordinary case of `.` access on a value binding
// This to the instance and this to its data. Grounded on spec.md §4.4's
// method/getter dispatch description; zoofc1 has no struct system to
// draw on here, so the shape follows Eloquence's closure-over-receiver
// idiom in its own (classless) method values.
type BoundMethod struct {
	Fn   *Function
	This Value
}

func (*BoundMethod) Kind() Kind { return FunctionKind }
func (b *BoundMethod) Arity() int { return len(b.Fn.Params) }
func (b *BoundMethod) Inspect() string {
	return "<bound method " + b.Fn.Name + ">"
}

// ---- struct / trait / impl ----

// Struct is a declared archetype: its field names plus whatever methods,
// getters, and setters have been installed on it by Impl blocks.
// Grounded on Eloquence's StructDefinition/StructInstance split.
type Struct struct {
	Name    string
	Fields  []string
	Methods map[string]*Function
	Getters map[string]*Function
	Setters map[string]*Function
}

func (*Struct) Kind() Kind      { return StructKind }
func (s *Struct) Inspect() string { return "struct " + s.Name }

func NewStruct(name string, fields []string) *Struct {
	return &Struct{
		Name:    name,
		Fields:  fields,
		Methods: make(map[string]*Function),
		Getters: make(map[string]*Function),
		Setters: make(map[string]*Function),
	}
}

// Trait is a named table of method/getter/setter signatures, some of
// which may be abstract (nil Body and ExprBody on the ast.FunctionStmt).
// Implementations records every Impl built against this trait, keyed
// by the implementing struct's name, so `trait.implementations[struct]`
// (spec.md's phrasing) is a real, queryable table rather than a fact
// only observable via the struct's merged method set.
type Trait struct {
	Name            string
	Methods         map[string]*ast.FunctionStmt
	Implementations map[string]*Impl
}

func (*Trait) Kind() Kind        { return TraitKind }
func (t *Trait) Inspect() string { return "trait " + t.Name }

// Impl is the value produced by `impl Trait for Struct` (or bare
// `impl Struct`): a record of which trait, if any, was merged onto
// which struct. It carries no further runtime behavior once installed
// — ImplStmt execution installs methods onto the Struct eagerly and
// constructs Impl only to file under trait.Implementations[struct].
type Impl struct {
	Trait  *Trait
	Struct *Struct
}

func (*Impl) Kind() Kind { return ImplKind }
func (i *Impl) Inspect() string {
	if i.Trait == nil {
		return "impl " + i.Struct.Name
	}
	return "impl " + i.Trait.Name + " for " + i.Struct.Name
}

// Instance is a concrete value of a Struct archetype. Fields holds its
// data, which is reachable directly only with `..` (the interpreter
// requires a `This` binding matching the instance's struct); `.` access
// goes through the struct's getters, setters and methods instead.
type Instance struct {
	Struct *Struct
	Fields map[string]Value
}

func (*Instance) Kind() Kind      { return InstanceKind }
func (i *Instance) Inspect() string {
	var parts []string
	for k, v := range i.Fields {
		parts = append(parts, k+": "+v.Inspect())
	}
	return i.Struct.Name + "{" + strings.Join(parts, ", ") + "}"
}

// IsTruthy implements Zoof's strict boolean coercion: only Bool values
// participate in and/or/if/while conditions, per zoofc1's isTruethy.
func IsTruthy(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}
