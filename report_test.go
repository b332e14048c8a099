package aoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	cliques := []Clique[string]{
		{"x", "y"},
		{"b", "c", "d"},
		{"q"},
		{"a", "c", "z"},
		{"a", "b", "c"},
	}
	r := NewReport(cliques)
	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 3, r.MaxSize)
	assert.Equal(t, 3, r.MaxCount())
	assert.Equal(t, []Clique[string]{{"a", "b", "c"}, {"a", "c", "z"}, {"b", "c", "d"}}, r.Maximum)

	best, ok := r.Best()
	assert.True(t, ok)
	assert.Equal(t, Clique[string]{"a", "b", "c"}, best)
	assert.Equal(t, "a,b,c", r.Key(","))
	assert.Equal(t, "3 clique(s) of 3 nodes out of 5 maximal cliques", r.String())

	// Best hands out a copy.
	best[0] = "mutated"
	assert.Equal(t, "a,b,c", r.Key(","))
}

func TestReportEmpty(t *testing.T) {
	r := NewReport[int](nil)
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 0, r.MaxSize)
	assert.Equal(t, 0, r.MaxCount())
	_, ok := r.Best()
	assert.False(t, ok)
	assert.Equal(t, "", r.Key(","))
}
