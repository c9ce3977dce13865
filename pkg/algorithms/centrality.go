package algorithms

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
)

// RankedNode pairs a node with a score
type RankedNode[K any] struct {
	Node  K
	Score float64
}

// DegreeCentrality computes degree centrality for every node: its number
// of neighbors divided by n-1.
func DegreeCentrality[K comparable](g *graph.Graph[K]) map[K]float64 {
	nodes := g.Nodes()
	degree := make(map[K]float64, len(nodes))

	for _, node := range nodes {
		if len(nodes) > 1 {
			degree[node] = float64(g.Degree(node)) / float64(len(nodes)-1)
		} else {
			degree[node] = 0.0
		}
	}
	return degree
}

// TopNodes returns the n highest scores, ties broken by node order. Nodes
// of g missing from scores count as zero.
func TopNodes[K comparable](g *graph.Graph[K], scores map[K]float64, n int) []RankedNode[K] {
	ranked := make([]RankedNode[K], 0, g.NodeCount())
	for _, node := range g.Nodes() {
		ranked = append(ranked, RankedNode[K]{Node: node, Score: scores[node]})
	}

	slices.SortStableFunc(ranked, func(a, b RankedNode[K]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return g.Compare(a.Node, b.Node)
	})
	return ranked[:min(max(n, 0), len(ranked))]
}
