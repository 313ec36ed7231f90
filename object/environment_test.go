package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_SetGet_LocalOnly(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", Number(1))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	child := NewEnclosed(env)
	_, ok = child.Get("x")
	assert.False(t, ok, "Get does not scan parents; callers must use AtDepth first")
}

func TestEnvironment_IndexIncrementsPerEnclosure(t *testing.T) {
	root := NewEnvironment()
	assert.Equal(t, 0, root.Index)
	child := NewEnclosed(root)
	assert.Equal(t, 1, child.Index)
	grandchild := NewEnclosed(child)
	assert.Equal(t, 2, grandchild.Index)
}

func TestEnvironment_AtDepth_WalksToCorrectAncestor(t *testing.T) {
	root := NewEnvironment()
	root.Set("g", Number(1))
	mid := NewEnclosed(root)
	leaf := NewEnclosed(mid)

	found := leaf.AtDepth(0)
	assert.Same(t, root, found)
	v, ok := found.Get("g")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)
}

func TestEnvironment_LoopMarkers(t *testing.T) {
	env := NewEnvironment()
	assert.False(t, env.InLoop())
	env.PushLoop()
	assert.True(t, env.InLoop())
	env.PushLoop()
	env.PopLoop()
	assert.True(t, env.InLoop())
	env.PopLoop()
	assert.False(t, env.InLoop())
}
