package aoc

import (
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
)

// Triangle is a 3-clique in ascending order.
type Triangle[K constraints.Ordered] [3]K

// ForEachClique calls fn once for every clique of exactly k nodes, maximal
// or not. Cliques are grown only through higher-ordered common neighbors,
// so each is found once, already in ascending order.
func (g *Graph[K]) ForEachClique(k int, fn func(Clique[K])) {
	if k <= 0 || k > g.Len() {
		return
	}
	var grow func(r []int, cand bitset)
	grow = func(r []int, cand bitset) {
		if len(r) == k {
			c := make(Clique[K], k)
			for i, v := range r {
				c[i] = g.nodes[v]
			}
			fn(c)
			return
		}
		cand.forEach(func(v int) bool {
			next := cand.and(g.adj[v])
			next.clearThrough(v)
			if next.count() < k-len(r)-1 {
				return true
			}
			grow(append(r[:len(r):len(r)], v), next)
			return true
		})
	}
	grow(nil, fullBitset(g.Len()))
}

// Triangles returns every triangle with at least one member matching pred.
// A nil pred matches all nodes. The result is sorted.
func (g *Graph[K]) Triangles(pred func(K) bool) []Triangle[K] {
	var out []Triangle[K]
	g.ForEachClique(3, func(c Clique[K]) {
		if pred == nil || slices.ContainsFunc(c, pred) {
			out = append(out, Triangle[K](c))
		}
	})
	slices.SortFunc(out, func(a, b Triangle[K]) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

// HasPrefix returns a predicate matching node names that start with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(s string) bool {
		return strings.HasPrefix(s, prefix)
	}
}
