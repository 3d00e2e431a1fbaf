package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSet(t *testing.T) {
	entries := []Identifier{
		{Owner: "a", Name: "one"},
		{Owner: "a", Name: "two"},
		{Owner: "a", Name: "three"},
	}

	s := NewSelectionSet(len(entries))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Count())

	s.Toggle(1)
	assert.True(t, s.IsSelected(1))
	assert.Equal(t, []Identifier{{Owner: "a", Name: "two"}}, s.Selected(entries))

	s.Toggle(1)
	assert.False(t, s.IsSelected(1))

	s.SelectAll()
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, entries, s.Selected(entries))

	s.SelectNone()
	assert.Equal(t, 0, s.Count())
}

func TestSelectionSetReset(t *testing.T) {
	s := NewSelectionSet(3)
	s.SelectAll()

	// A filter change shrinks the displayed catalog; stale flags must be
	// discarded, never carried over by index.
	s.Reset(2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.Count())
}

func TestSelectionSetOutOfRange(t *testing.T) {
	s := NewSelectionSet(2)
	s.Toggle(-1)
	s.Toggle(5)
	s.Set(9, true)
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.IsSelected(5))
}
