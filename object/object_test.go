package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_Inspect(t *testing.T) {
	assert.Equal(t, "3.14", Number(3.14).Inspect())
	assert.Equal(t, "3.0", Number(3).Inspect())
}

func TestBool_Inspect(t *testing.T) {
	assert.Equal(t, "true", Bool(true).Inspect())
	assert.Equal(t, "false", Bool(false).Inspect())
}

func TestNil_Inspect(t *testing.T) {
	assert.Equal(t, "nil", NilValue.Inspect())
}

func TestIsTruthy_RejectsNonBool(t *testing.T) {
	_, ok := IsTruthy(Number(1))
	assert.False(t, ok)
	b, ok := IsTruthy(Bool(true))
	assert.True(t, ok)
	assert.True(t, b)
}

func TestStruct_NewStruct_InitializesMethodTables(t *testing.T) {
	s := NewStruct("Point", []string{"x", "y"})
	assert.NotNil(t, s.Methods)
	assert.NotNil(t, s.Getters)
	assert.NotNil(t, s.Setters)
	assert.Equal(t, []string{"x", "y"}, s.Fields)
}

func TestImpl_Inspect_TraitForm(t *testing.T) {
	trait := &Trait{Name: "Shape", Implementations: make(map[string]*Impl)}
	s := NewStruct("Square", []string{"side"})
	impl := &Impl{Trait: trait, Struct: s}
	trait.Implementations[s.Name] = impl

	assert.Equal(t, "impl Shape for Square", impl.Inspect())
	assert.Same(t, impl, trait.Implementations["Square"])
}

func TestImpl_Inspect_TraitlessForm(t *testing.T) {
	s := NewStruct("Square", []string{"side"})
	impl := &Impl{Struct: s}
	assert.Equal(t, "impl Square", impl.Inspect())
}

func TestInstance_Inspect_IncludesStructName(t *testing.T) {
	s := NewStruct("Point", []string{"x"})
	inst := &Instance{Struct: s, Fields: map[string]Value{"x": Number(1)}}
	assert.Contains(t, inst.Inspect(), "Point")
}

func TestFunction_Arity(t *testing.T) {
	f := &Function{Params: []string{"a", "b", "c"}}
	assert.Equal(t, 3, f.Arity())
}

func TestFunction_AnonymousInspect(t *testing.T) {
	f := &Function{Params: []string{"x"}}
	assert.Contains(t, f.Inspect(), "lambda")
}

func TestBoundMethod_ArityDelegatesToFunction(t *testing.T) {
	fn := &Function{Name: "length", Params: []string{}}
	inst := &Instance{Struct: NewStruct("Vector", []string{"x", "y"}), Fields: map[string]Value{}}
	bm := &BoundMethod{Fn: fn, This: inst}
	assert.Equal(t, 0, bm.Arity())
	assert.Contains(t, bm.Inspect(), "length")
}
