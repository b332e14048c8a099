package aoc

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
	"tailscale.com/util/deephash"
)

// Clique is a set of pairwise adjacent nodes in ascending order.
type Clique[K constraints.Ordered] []K

// Key joins the members with delim, e.g. "co,de,ka,ta".
func (c Clique[K]) Key(delim string) string {
	parts := make([]string, len(c))
	for i, k := range c {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, delim)
}

func (c Clique[K]) Contains(k K) bool {
	_, ok := slices.BinarySearch(c, k)
	return ok
}

// SortCliques puts cliques in canonical order: largest first, then
// lexicographically by members.
func SortCliques[K constraints.Ordered](cliques []Clique[K]) {
	slices.SortFunc(cliques, func(a, b Clique[K]) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return slices.Compare(a, b)
	})
}

// Fingerprint hashes a canonically ordered clique list. Fingerprints are only
// comparable within a single process.
func Fingerprint[K constraints.Ordered](cliques []Clique[K]) deephash.Sum {
	return deephash.Hash(&cliques)
}

// SearchOptions tunes MaximalCliques.
type SearchOptions struct {
	// Parallel runs the top-level branches of the search concurrently. The
	// result is identical to a sequential search.
	Parallel bool

	// Workers bounds the number of concurrent branches. Zero means
	// GOMAXPROCS.
	Workers int
}

// MaximalCliques returns every maximal clique of g in canonical order (see
// SortCliques). An isolated node is a maximal clique of size 1; an empty
// graph has none.
//
// The search checks ctx periodically. If ctx is done before the search
// finishes, MaximalCliques returns an error wrapping both ErrSearchAborted
// and ctx.Err(), and no cliques.
func (g *Graph[K]) MaximalCliques(ctx context.Context, opts SearchOptions) ([]Clique[K], error) {
	log := Logger(ctx)
	t0 := time.Now()
	log.Debug("clique search started", "nodes", g.Len(), "edges", g.NumEdges(), "parallel", opts.Parallel)

	var (
		out []Clique[K]
		err error
	)
	if opts.Parallel {
		out, err = g.maximalCliquesParallel(ctx, opts.Workers)
	} else {
		err = g.ForEachMaximalClique(ctx, func(c Clique[K]) {
			out = append(out, c)
		})
	}
	if err != nil {
		log.Warn("clique search aborted", "err", err, "elapsed", time.Since(t0))
		return nil, err
	}
	SortCliques(out)
	log.Debug("clique search finished",
		"cliques", len(out),
		"elapsed", time.Since(t0),
		"fingerprint", Fingerprint(out).String())
	return out, nil
}

// ForEachMaximalClique calls fn once for every maximal clique of g, in
// discovery order.
func (g *Graph[K]) ForEachMaximalClique(ctx context.Context, fn func(Clique[K])) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if g.Len() == 0 {
		return nil
	}
	s := g.newSearcher(ctx, fn)
	return s.expand(nil, fullBitset(g.Len()), newBitset(g.Len()))
}

// branch is the state handed to one top-level iteration of the search.
type branch struct {
	v    int
	p, x bitset
}

// topBranches unrolls the outermost search level. Each branch carries the
// P and X it would see in the sequential search, already restricted to the
// neighbors of v.
func (g *Graph[K]) topBranches() []branch {
	n := g.Len()
	p, x := fullBitset(n), newBitset(n)
	s := &searcher{adj: g.adj}
	var out []branch
	p.andNot(g.adj[s.pivot(p, x)]).forEach(func(v int) bool {
		out = append(out, branch{v: v, p: p.and(g.adj[v]), x: x.and(g.adj[v])})
		p.clear(v)
		x.set(v)
		return true
	})
	return out
}

func (g *Graph[K]) maximalCliquesParallel(ctx context.Context, workers int) ([]Clique[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	if g.Len() == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	branches := g.topBranches()
	results := make([][]Clique[K], len(branches))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, br := range branches {
		eg.Go(func() error {
			s := g.newSearcher(egCtx, func(c Clique[K]) {
				results[i] = append(results[i], c)
			})
			return s.expand([]int{br.v}, br.p, br.x)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	var out []Clique[K]
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (g *Graph[K]) newSearcher(ctx context.Context, fn func(Clique[K])) *searcher {
	return &searcher{
		adj: g.adj,
		ctx: ctx,
		emit: func(r []int) {
			idx := slices.Clone(r)
			slices.Sort(idx)
			c := make(Clique[K], len(idx))
			for i, v := range idx {
				c[i] = g.nodes[v]
			}
			fn(c)
		},
	}
}

// pollEvery is how many expansions run between context checks.
const pollEvery = 256

// searcher runs Bron–Kerbosch with pivoting over dense node indices.
type searcher struct {
	adj   []bitset
	ctx   context.Context
	calls int
	emit  func(r []int)
}

// expand grows the clique r. p holds the candidates adjacent to all of r and
// x the nodes already explored at this level. p and x belong to this call;
// children get fresh intersections, so the only state that carries over
// between siblings is v moving from p to x.
func (s *searcher) expand(r []int, p, x bitset) error {
	if p.empty() {
		if x.empty() {
			s.emit(r)
		}
		return nil
	}
	s.calls++
	if s.calls%pollEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrSearchAborted, err)
		}
	}

	// Any maximal clique through p contains the pivot or one of its
	// non-neighbors, so only those need to be tried.
	cand := p.andNot(s.adj[s.pivot(p, x)])
	var err error
	cand.forEach(func(v int) bool {
		err = s.expand(append(r[:len(r):len(r)], v), p.and(s.adj[v]), x.and(s.adj[v]))
		if err != nil {
			return false
		}
		p.clear(v)
		x.set(v)
		return true
	})
	return err
}

// pivot returns the node of p ∪ x with the most neighbors in p. p must be
// non-empty.
func (s *searcher) pivot(p, x bitset) int {
	best, bestN := -1, -1
	pick := func(u int) bool {
		if n := p.andCount(s.adj[u]); n > bestN {
			best, bestN = u, n
		}
		return true
	}
	p.forEach(pick)
	x.forEach(pick)
	return best
}
