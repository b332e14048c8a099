package aoc

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNetwork(t testing.TB) *Graph[string] {
	t.Helper()
	f, err := os.Open("testdata/sample.txt")
	require.NoError(t, err)
	defer f.Close()
	g, err := ParseNetwork(f, "-")
	require.NoError(t, err)
	return g
}

func mustGraph(t testing.TB, edges []Edge[string], isolated ...string) *Graph[string] {
	t.Helper()
	g, err := NewGraph(edges, isolated...)
	require.NoError(t, err)
	return g
}

// checkSymmetric verifies b ∈ adj(a) ⟺ a ∈ adj(b) through the public API.
func checkSymmetric[K interface{ ~string | ~int }](t *testing.T, g *Graph[K]) {
	t.Helper()
	for _, a := range g.Nodes() {
		for _, b := range g.Neighbors(a) {
			if !g.Adjacent(b, a) {
				t.Errorf("%v-%v is not symmetric", a, b)
			}
		}
		for _, b := range g.Nodes() {
			if g.Adjacent(a, b) != g.Adjacent(b, a) {
				t.Errorf("Adjacent(%v, %v) != Adjacent(%v, %v)", a, b, b, a)
			}
		}
	}
}

func TestBuilder(t *testing.T) {
	var b Builder[string]
	require.NoError(t, b.AddEdge("b", "a"))
	require.NoError(t, b.AddEdge("a", "b")) // duplicate, reversed
	require.NoError(t, b.AddEdge("b", "c"))
	b.AddNode("z")
	b.AddNode("a")
	err := b.AddEdge("c", "c")
	require.ErrorIs(t, err, ErrSelfLoop)

	g := b.Build()
	assert.Equal(t, []string{"a", "b", "c", "z"}, g.Nodes())
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 2, g.NumEdges())
	assert.Equal(t, []string{"a", "c"}, g.Neighbors("b"))
	assert.Equal(t, 2, g.Degree("b"))
	assert.Equal(t, 0, g.Degree("z"))
	assert.Equal(t, 0, g.Degree("missing"))
	assert.Nil(t, g.Neighbors("missing"))
	assert.True(t, g.Adjacent("a", "b"))
	assert.True(t, g.Adjacent("b", "a"))
	assert.False(t, g.Adjacent("a", "c"))
	assert.False(t, g.Adjacent("a", "missing"))
	assert.True(t, g.Has("z"))
	assert.False(t, g.Has("missing"))
	require.NoError(t, g.Validate())
	checkSymmetric(t, g)

	// Building again must not share state with the first graph.
	require.NoError(t, b.AddEdge("a", "z"))
	assert.False(t, g.Adjacent("a", "z"))
	assert.True(t, b.Build().Adjacent("a", "z"))
}

func TestNewGraphIntNodes(t *testing.T) {
	g, err := NewGraph([]Edge[int]{{3, 1}, {1, 2}, {70, 3}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 70}, g.Nodes())
	checkSymmetric(t, g)

	_, err = NewGraph([]Edge[int]{{1, 1}})
	assert.ErrorIs(t, err, ErrSelfLoop)
}

func TestNodesIsACopy(t *testing.T) {
	g := mustGraph(t, []Edge[string]{{"a", "b"}})
	nodes := g.Nodes()
	nodes[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestValidate(t *testing.T) {
	g := mustGraph(t, []Edge[string]{{"a", "b"}, {"b", "c"}})
	require.NoError(t, g.Validate())

	breakIt := []struct {
		name   string
		mutate func(g *Graph[string])
	}{
		{"asymmetric", func(g *Graph[string]) {
			g.adj[0].set(2)
			g.nbrs[0] = append(g.nbrs[0], 2)
		}},
		{"self-loop", func(g *Graph[string]) { g.adj[1].set(1) }},
		{"dangling", func(g *Graph[string]) { g.nbrs[0] = []int{7} }},
		{"stale neighbor list", func(g *Graph[string]) { g.nbrs[1] = g.nbrs[1][:1] }},
	}
	for _, tt := range breakIt {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, []Edge[string]{{"a", "b"}, {"b", "c"}})
			tt.mutate(g)
			err := g.Validate()
			var ie *InvariantError
			require.True(t, errors.As(err, &ie), "got %v", err)
		})
	}
}

func TestStats(t *testing.T) {
	g := mustGraph(t, []Edge[string]{{"a", "b"}, {"b", "c"}, {"x", "y"}}, "lonely")
	assert.Equal(t, Stats{Nodes: 6, Edges: 3, MaxDegree: 2, Components: 3}, g.Stats())
	assert.Equal(t, []string{"a", "b", "c"}, g.ReachableNodes("c"))
	assert.Equal(t, []string{"lonely"}, g.ReachableNodes("lonely"))
	assert.Nil(t, g.ReachableNodes("missing"))

	assert.Equal(t, Stats{Nodes: 16, Edges: 32, MaxDegree: 4, Components: 1}, sampleNetwork(t).Stats())
	assert.Equal(t, Stats{}, (&Builder[string]{}).Build().Stats())
}

func TestQueue(t *testing.T) {
	q := NewQueue(1, 2)
	q.Push(3, 4)
	var got []int
	q.While(func(v int) bool {
		got = append(got, v)
		if v == 1 {
			q.Push(5)
		}
		return v != 4
	})
	assert.Equal(t, []int{1, 2, 3, 4}, got)
	assert.Equal(t, 1, q.Len())
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	_, ok = q.Pop()
	assert.False(t, ok)
}
