package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zoof/source"
)

func TestLoc_Span(t *testing.T) {
	loc := NewLoc(source.Pos{Line: 1, Column: 0}, source.Pos{Line: 1, Column: 5})
	start, end := loc.Span()
	assert.Equal(t, source.Pos{Line: 1, Column: 0}, start)
	assert.Equal(t, source.Pos{Line: 1, Column: 5}, end)
}

func TestNodes_SatisfyStmtInterface(t *testing.T) {
	var stmts []Stmt = []Stmt{
		&DoStmt{},
		&IfStmt{},
		&ForStmt{},
		&WhileStmt{},
		&BreakStmt{},
		&ReturnStmt{},
		&PrintStmt{},
		&FunctionStmt{},
		&StructStmt{},
		&TraitStmt{},
		&ImplStmt{},
		&ExpressionStmt{},
	}
	assert.Len(t, stmts, 12)
}

func TestNodes_SatisfyExprInterface(t *testing.T) {
	var exprs []Expr = []Expr{
		&LiteralExpr{},
		&VariableExpr{Depth: -1},
		&AssignExpr{},
		&UnaryExpr{},
		&BinaryExpr{},
		&LogicalExpr{},
		&GroupingExpr{},
		&RangeExpr{},
		&CallExpr{},
		&GetExpr{},
		&SetExpr{},
		&IfExpr{},
		&FunctionExpr{},
	}
	assert.Len(t, exprs, 13)
}

func TestVariableExpr_UnresolvedDepthIsNegativeOne(t *testing.T) {
	v := &VariableExpr{Name: "x", Depth: -1}
	assert.Equal(t, -1, v.Depth)
}

func TestFunctionStmt_KindDistinguishesDeclarationForms(t *testing.T) {
	assert.NotEqual(t, KindFunc, KindMethod)
	assert.NotEqual(t, KindMethod, KindGetter)
	assert.NotEqual(t, KindGetter, KindSetter)
}
