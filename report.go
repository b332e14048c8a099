package aoc

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Report summarizes a set of maximal cliques.
type Report[K constraints.Ordered] struct {
	// Total is the number of maximal cliques.
	Total int
	// MaxSize is the size of the largest clique.
	MaxSize int
	// Maximum holds every clique of MaxSize, in canonical order.
	Maximum []Clique[K]
}

// NewReport builds a Report. The order of cliques does not matter.
func NewReport[K constraints.Ordered](cliques []Clique[K]) Report[K] {
	r := Report[K]{Total: len(cliques)}
	for _, c := range cliques {
		switch {
		case len(c) > r.MaxSize:
			r.MaxSize = len(c)
			r.Maximum = append(r.Maximum[:0], c)
		case len(c) == r.MaxSize && r.MaxSize > 0:
			r.Maximum = append(r.Maximum, c)
		}
	}
	SortCliques(r.Maximum)
	return r
}

// MaxCount returns the number of cliques tied at MaxSize.
func (r Report[K]) MaxCount() int { return len(r.Maximum) }

// Best returns a single maximum clique. When several tie, the one whose
// ascending member list is lexicographically smallest wins.
func (r Report[K]) Best() (Clique[K], bool) {
	if len(r.Maximum) == 0 {
		return nil, false
	}
	return slices.Clone(r.Maximum[0]), true
}

// Key returns Best joined by delim, or "" if there are no cliques.
func (r Report[K]) Key(delim string) string {
	c, _ := r.Best()
	return c.Key(delim)
}

func (r Report[K]) String() string {
	return fmt.Sprintf("%d clique(s) of %d nodes out of %d maximal cliques", r.MaxCount(), r.MaxSize, r.Total)
}
