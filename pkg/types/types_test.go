package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var numericNames = []string{"byte", "short", "char", "int", "long", "float", "double"}

func TestPromoteCommutative(t *testing.T) {
	for _, t1 := range numericNames {
		for _, t2 := range numericNames {
			assert.Equal(t, Promote(t1, t2), Promote(t2, t1), "promote(%s, %s)", t1, t2)
		}
	}
}

func TestPromote(t *testing.T) {
	tests := []struct {
		t1, t2, want string
	}{
		{"byte", "short", "short"},
		{"int", "long", "long"},
		{"int", "double", "double"},
		{"float", "double", "double"},
		{"char", "int", "int"},
		{"short", "char", "char"},
		{"int", "int", "int"},
		{"boolean", "int", Unknown},
		{"String", "int", Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Promote(tt.t1, tt.t2), "promote(%s, %s)", tt.t1, tt.t2)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"int", "int", true},
		{"int", "long", true},
		{"long", "int", false},
		{"byte", "double", true},
		{"double", "float", false},
		{"char", "int", true},
		{"String", "String", true},
		{"null", "String", true},
		{"null", "int", false},
		{"String", "null", true},
		{"boolean", "int", false},
		{Unknown, "int", true},
		{"int", Unknown, true},
		{"Integer", "int", true},
		{"int", "Integer", true},
		{"String", "Object", true},
		{"int", "Object", false},
		{"ArrayList<>", "ArrayList<String>", true},
		{"ArrayList<String>", "HashMap<String>", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compatible(tt.from, tt.to), "compatible(%s, %s)", tt.from, tt.to)
	}
}

func TestCanCast(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"byte", "int", true},
		{"int", "byte", false},
		{"anything", "Object", true},
		{"int", "Integer", true},
		{"Integer", "int", true},
		{"boolean", "int", false},
		{"int", "boolean", false},
		{"boolean", "boolean", true},
		{"double", "Integer", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanCast(tt.from, tt.to), "canCast(%s, %s)", tt.from, tt.to)
	}
}

func TestCollectionHeuristics(t *testing.T) {
	assert.True(t, IsCollectionType("int[]"))
	assert.True(t, IsCollectionType("ArrayList<String>"))
	assert.True(t, IsCollectionType("HashSet<Integer>"))
	assert.True(t, IsCollectionType("HashMap<String, Integer>"))
	assert.False(t, IsCollectionType("int"))
	assert.False(t, IsCollectionType("String"))

	assert.Equal(t, "int", ElementType("int[]"))
	assert.Equal(t, "String", ElementType("ArrayList<String>"))
	assert.Equal(t, Unknown, ElementType("int"))

	assert.Equal(t, "ArrayList", Erase("ArrayList<String>"))
	assert.Equal(t, "int", Erase("int"))
}

func TestFitsIn(t *testing.T) {
	assert.True(t, FitsIn("byte", 127))
	assert.False(t, FitsIn("byte", 128))
	assert.True(t, FitsIn("short", -32768))
	assert.False(t, FitsIn("short", 32768))
	assert.True(t, FitsIn("int", 2147483647))
	assert.False(t, FitsIn("int", 2147483648))
	assert.True(t, FitsIn("long", 9223372036854775807))
	assert.True(t, FitsIn("String", 1<<40)) // non-integral targets pass
}
