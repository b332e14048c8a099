// Command day23 solves the LAN party puzzle: count the triangles of
// computers with a "t" member, and find the password for the largest
// fully connected group.
package main

import (
	_ "embed"

	"github.com/lanparty/aoc"
)

func main() {
	aoc.Run(2024, source, &solver{})
}

//go:embed day23.go
var source []byte

type solver struct {
	*aoc.Puzzle
}

func (s solver) network() *aoc.Graph[string] {
	g := aoc.MustGet(aoc.ParseNetwork(s.Reader(), "-"))
	s.Debug("network loaded", "nodes", g.Len(), "edges", g.NumEdges())
	return g
}

/*
want=7

kh-tc
qp-kh
de-cg
ka-co
yn-aq
qp-ub
cg-tb
vc-aq
tb-ka
wh-tc
yn-cg
kh-ub
ta-co
de-co
tc-td
tb-wq
wh-td
ta-ka
td-qp
aq-cg
wq-ub
ub-vc
de-ta
wq-aq
wq-vc
wh-yn
ka-de
kh-ta
co-tc
wh-qp
tb-vc
td-yn
*/
func (s solver) D23p1() any {
	return len(s.network().Triangles(aoc.HasPrefix("t")))
}

// want=co,de,ka,ta
func (s solver) D23p2() any {
	cliques := aoc.MustGet(s.network().MaximalCliques(s.Context(), aoc.SearchOptions{}))
	r := aoc.NewReport(cliques)
	s.Debug("cliques", "summary", r.String())
	return r.Key(",")
}
