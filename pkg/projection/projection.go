// Package projection derives same-type co-affiliation graphs from the
// bipartite membership index.
package projection

import (
	"cmp"
	"iter"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/membership"
)

// Project links every pair of nodes that share at least one opposite-type
// node. The edge weight is the number of distinct opposite-type nodes the
// pair shares.
//
// nodes must be distinct; opposite(n) yields the opposite-type neighbors of
// n and members(o) the same-type members of o, each without repeats. Only
// peers ordered after n are tallied, so each unordered pair is counted from
// its smaller end exactly once and self-pairs never arise. The tally map is
// reused across nodes; memory beyond the result is bounded by the largest
// single neighborhood.
func Project[K comparable, O any](
	nodes []K,
	opposite func(K) iter.Seq[O],
	members func(O) iter.Seq[K],
	compare func(a, b K) int,
) *graph.Graph[K] {
	edges := make([]graph.Edge[K], 0)
	tally := make(map[K]int)

	for _, n := range nodes {
		clear(tally)
		for o := range opposite(n) {
			for m := range members(o) {
				if compare(n, m) < 0 {
					tally[m]++
				}
			}
		}
		for m, weight := range tally {
			edges = append(edges, graph.Edge[K]{Source: n, Target: m, Weight: weight})
		}
	}

	return graph.New(compare, edges)
}

// Officers projects the index onto officers: two officers are linked by the
// number of companies they both serve.
func Officers(idx *membership.Index) *graph.Graph[identity.OfficerKey] {
	return Project(idx.Officers(), idx.EachCompany, idx.EachOfficer, identity.CompareKeys)
}

// Companies projects the index onto companies: two companies are linked by
// the number of officers they share.
func Companies(idx *membership.Index) *graph.Graph[string] {
	return Project(idx.Companies(), idx.EachOfficer, idx.EachCompany, cmp.Compare[string])
}
