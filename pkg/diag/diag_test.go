package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kashinulala/j2py/pkg/token"
)

func TestBagOrdering(t *testing.T) {
	bag := NewBag()
	bag.Warnf(token.Token{Line: 1, Column: 1}, "style issue")
	bag.Errorf(token.Token{Line: 2, Column: 5}, "bad type")
	bag.Errorf(token.Token{Line: 3, Column: 1}, "worse type")

	assert.True(t, bag.HasErrors())
	assert.Len(t, bag.Errors(), 2)
	assert.Len(t, bag.Warnings(), 1)

	all := bag.All()
	assert.Equal(t, "bad type", all[0].Message, "errors come first")
	assert.Equal(t, "style issue", all[2].Message)
}

func TestBagMerge(t *testing.T) {
	a := NewBag()
	a.Errorf(token.Token{Line: 1, Column: 1}, "first")
	b := NewBag()
	b.Errorf(token.Token{Line: 2, Column: 1}, "second")
	b.Warnf(token.Token{Line: 3, Column: 1}, "note")

	a.Merge(b)
	a.Merge(nil)
	assert.Len(t, a.Errors(), 2)
	assert.Equal(t, "first", a.Errors()[0].Message)
	assert.Equal(t, "second", a.Errors()[1].Message)
	assert.Len(t, a.Warnings(), 1)
}

func TestFprint(t *testing.T) {
	bag := NewBag()
	bag.Errorf(token.Token{Line: 1, Column: 5}, "expected ';'")

	var buf bytes.Buffer
	Fprint(&buf, "Main.java", "int x = 5", bag.All(), false)
	out := buf.String()
	assert.Contains(t, out, "Main.java:1:5: error: expected ';'")
	assert.Contains(t, out, "int x = 5")
	assert.Contains(t, out, "    ^")
}
