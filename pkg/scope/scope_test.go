package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := NewTable()
	sym, err := tbl.Declare("x", "int", false, false)
	require.NoError(t, err)
	assert.Equal(t, "x", sym.Name)
	assert.Equal(t, "int", sym.Type)
	assert.False(t, sym.Initialized)

	found := tbl.Lookup("x")
	require.NotNil(t, found)
	assert.Same(t, sym, found)
	assert.Nil(t, tbl.Lookup("y"))
}

func TestDuplicateInSameFrame(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Declare("x", "int", false, false)
	require.NoError(t, err)

	_, err = tbl.Declare("x", "String", false, false)
	require.Error(t, err)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
}

func TestShadowingAcrossFrames(t *testing.T) {
	tbl := NewTable()
	outer, err := tbl.Declare("x", "int", false, false)
	require.NoError(t, err)

	tbl.Enter("block_1_1")
	inner, err := tbl.Declare("x", "String", false, false)
	require.NoError(t, err, "shadowing an outer name is not an error")
	assert.Same(t, inner, tbl.Lookup("x"), "innermost wins")

	tbl.Exit()
	assert.Same(t, outer, tbl.Lookup("x"), "popping restores the outer symbol")
}

func TestExitGlobalIsNoOp(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Declare("x", "int", false, false)
	require.NoError(t, err)

	tbl.Exit()
	tbl.Exit()
	assert.NotNil(t, tbl.Lookup("x"), "the global frame is never popped")
	assert.Equal(t, 1, tbl.Depth())
}

func TestFramePopDiscardsSymbols(t *testing.T) {
	tbl := NewTable()
	tbl.Enter("method")
	_, err := tbl.Declare("local", "int", false, false)
	require.NoError(t, err)
	tbl.Exit()
	assert.Nil(t, tbl.Lookup("local"))
}

func TestKnownTypes(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"int", "boolean", "String", "Integer", "ArrayList", "HashMap"} {
		assert.True(t, tbl.IsKnownType(name), name)
	}
	assert.False(t, tbl.IsKnownType("Widget"))

	tbl.DeclareType("Widget")
	assert.True(t, tbl.IsKnownType("Widget"))
	assert.True(t, tbl.IsKnownType("Widget[]"), "array forms of known types are known")
}
