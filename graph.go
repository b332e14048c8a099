package aoc

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Edge is an unordered pair of nodes.
type Edge[T comparable] struct {
	A, B T
}

// Graph is an undirected, unweighted, simple graph. It is immutable once
// built, so any number of goroutines may query it.
//
// Nodes are kept in ascending order and addressed internally by their
// position in that order.
type Graph[K constraints.Ordered] struct {
	nodes []K
	index map[K]int
	adj   []bitset
	nbrs  [][]int // ascending
	edges int
}

// Builder accumulates nodes and edges for a Graph. The zero value is ready
// to use.
type Builder[K constraints.Ordered] struct {
	edges map[K]map[K]bool
}

func (b *Builder[K]) AddNode(a K) {
	InitMap(&b.edges)
	if b.edges[a] == nil {
		b.edges[a] = make(map[K]bool)
	}
}

// AddEdge records an edge between a and b. Repeated or reversed edges are
// collapsed.
func (b *Builder[K]) AddEdge(a, c K) error {
	if a == c {
		return fmt.Errorf("%w: %v", ErrSelfLoop, a)
	}
	b.AddNode(a)
	b.AddNode(c)
	b.edges[a][c] = true
	b.edges[c][a] = true
	return nil
}

// Build returns the Graph. The Builder may keep being used afterwards; the
// returned Graph does not share state with it.
func (b *Builder[K]) Build() *Graph[K] {
	nodes := maps.Keys(b.edges)
	slices.Sort(nodes)
	g := &Graph[K]{
		nodes: nodes,
		index: make(map[K]int, len(nodes)),
		adj:   make([]bitset, len(nodes)),
		nbrs:  make([][]int, len(nodes)),
	}
	for i, k := range nodes {
		g.index[k] = i
	}
	for i, k := range nodes {
		g.adj[i] = newBitset(len(nodes))
		for n := range b.edges[k] {
			g.adj[i].set(g.index[n])
		}
		g.nbrs[i] = g.adj[i].members()
		g.edges += len(g.nbrs[i])
	}
	g.edges /= 2
	if err := g.Validate(); err != nil {
		panic(err)
	}
	return g
}

// NewGraph builds a Graph from edges plus any isolated nodes.
func NewGraph[K constraints.Ordered](edges []Edge[K], isolated ...K) (*Graph[K], error) {
	var b Builder[K]
	for _, e := range edges {
		if err := b.AddEdge(e.A, e.B); err != nil {
			return nil, err
		}
	}
	for _, k := range isolated {
		b.AddNode(k)
	}
	return b.Build(), nil
}

// Validate checks that adjacency is symmetric, loop free and only refers to
// known nodes.
func (g *Graph[K]) Validate() error {
	n := len(g.nodes)
	if len(g.adj) != n || len(g.nbrs) != n {
		return &InvariantError{Node: -1, Other: -1, Reason: "adjacency size mismatch"}
	}
	for i := 0; i < n; i++ {
		if len(g.adj[i]) != len(newBitset(n)) {
			return &InvariantError{Node: i, Other: -1, Reason: "adjacency row has wrong width"}
		}
		if g.adj[i].has(i) {
			return &InvariantError{Node: i, Other: i, Reason: "self-loop"}
		}
		for _, j := range g.nbrs[i] {
			if j < 0 || j >= n {
				return &InvariantError{Node: i, Other: j, Reason: "dangling neighbor"}
			}
			if !g.adj[i].has(j) {
				return &InvariantError{Node: i, Other: j, Reason: "neighbor list disagrees with adjacency"}
			}
			if !g.adj[j].has(i) {
				return &InvariantError{Node: i, Other: j, Reason: "asymmetric adjacency"}
			}
		}
		if len(g.nbrs[i]) != g.adj[i].count() {
			return &InvariantError{Node: i, Other: -1, Reason: "neighbor list disagrees with adjacency"}
		}
	}
	return nil
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.nodes) }

// NumEdges returns the number of edges.
func (g *Graph[K]) NumEdges() int { return g.edges }

// Nodes returns the nodes in ascending order.
func (g *Graph[K]) Nodes() []K { return slices.Clone(g.nodes) }

func (g *Graph[K]) Has(a K) bool {
	_, ok := g.index[a]
	return ok
}

// Neighbors returns the neighbors of a in ascending order.
func (g *Graph[K]) Neighbors(a K) []K {
	i, ok := g.index[a]
	if !ok {
		return nil
	}
	out := make([]K, len(g.nbrs[i]))
	for j, n := range g.nbrs[i] {
		out[j] = g.nodes[n]
	}
	return out
}

func (g *Graph[K]) Degree(a K) int {
	i, ok := g.index[a]
	if !ok {
		return 0
	}
	return len(g.nbrs[i])
}

// Adjacent reports whether a and b share an edge.
func (g *Graph[K]) Adjacent(a, b K) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	return g.adj[i].has(j)
}

// ReachableNodes returns every node connected to a, including a.
func (g *Graph[K]) ReachableNodes(a K) []K {
	i, ok := g.index[a]
	if !ok {
		return nil
	}
	seen := newBitset(len(g.nodes))
	g.reach(i, seen)
	out := make([]K, 0, seen.count())
	seen.forEach(func(j int) bool {
		out = append(out, g.nodes[j])
		return true
	})
	return out
}

func (g *Graph[K]) reach(start int, seen bitset) {
	q := NewQueue(start)
	q.While(func(v int) bool {
		if seen.has(v) {
			return true
		}
		seen.set(v)
		for _, n := range g.nbrs[v] {
			if !seen.has(n) {
				q.Push(n)
			}
		}
		return true
	})
}

// Stats summarizes the shape of a Graph.
type Stats struct {
	Nodes      int `yaml:"nodes"`
	Edges      int `yaml:"edges"`
	MaxDegree  int `yaml:"max_degree"`
	Components int `yaml:"components"`
}

func (g *Graph[K]) Stats() Stats {
	st := Stats{Nodes: len(g.nodes), Edges: g.edges}
	seen := newBitset(len(g.nodes))
	for i := range g.nodes {
		st.MaxDegree = max(st.MaxDegree, len(g.nbrs[i]))
		if !seen.has(i) {
			st.Components++
			g.reach(i, seen)
		}
	}
	return st
}

// InitMap allocates *m if it is nil.
func InitMap[K comparable, V any](m *map[K]V) {
	if *m == nil {
		*m = make(map[K]V)
	}
}
