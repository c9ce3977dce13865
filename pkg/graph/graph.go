// Package graph is an immutable undirected weighted graph over any totally
// ordered node key. Each undirected edge is stored once, Source < Target.
package graph

import (
	"slices"
)

// Edge is an undirected weighted edge with Source ordered before Target.
type Edge[K any] struct {
	Source K
	Target K
	Weight int
}

type neighbor[K any] struct {
	node   K
	weight int
}

// Graph holds sorted nodes, sorted edges and an adjacency index.
type Graph[K comparable] struct {
	compare func(a, b K) int
	nodes   []K
	edges   []Edge[K]
	adj     map[K][]neighbor[K]
}

// New builds a graph from edges. Orientation is normalized so Source sorts
// before Target; self-loops and edges with weight < 1 are dropped; a pair
// given more than once keeps its first weight. Only endpoints of surviving
// edges become nodes.
func New[K comparable](compare func(a, b K) int, edges []Edge[K]) *Graph[K] {
	normalized := make([]Edge[K], 0, len(edges))
	for _, e := range edges {
		c := compare(e.Source, e.Target)
		if c == 0 || e.Weight < 1 {
			continue
		}
		if c > 0 {
			e.Source, e.Target = e.Target, e.Source
		}
		normalized = append(normalized, e)
	}

	slices.SortStableFunc(normalized, func(a, b Edge[K]) int {
		if c := compare(a.Source, b.Source); c != 0 {
			return c
		}
		return compare(a.Target, b.Target)
	})
	normalized = slices.CompactFunc(normalized, func(a, b Edge[K]) bool {
		return compare(a.Source, b.Source) == 0 && compare(a.Target, b.Target) == 0
	})

	g := &Graph[K]{
		compare: compare,
		edges:   normalized,
		adj:     make(map[K][]neighbor[K]),
	}
	for _, e := range normalized {
		g.adj[e.Source] = append(g.adj[e.Source], neighbor[K]{node: e.Target, weight: e.Weight})
		g.adj[e.Target] = append(g.adj[e.Target], neighbor[K]{node: e.Source, weight: e.Weight})
	}

	g.nodes = make([]K, 0, len(g.adj))
	for node, ns := range g.adj {
		g.nodes = append(g.nodes, node)
		slices.SortFunc(ns, func(a, b neighbor[K]) int { return compare(a.node, b.node) })
	}
	slices.SortFunc(g.nodes, compare)

	return g
}

// Empty returns a graph with no nodes.
func Empty[K comparable](compare func(a, b K) int) *Graph[K] {
	return New(compare, nil)
}

// Compare orders two keys with the graph's ordering.
func (g *Graph[K]) Compare(a, b K) int {
	return g.compare(a, b)
}

// Nodes returns the nodes in ascending order. The slice must not be modified.
func (g *Graph[K]) Nodes() []K {
	return g.nodes
}

// Edges returns the edges ordered by (Source, Target). The slice must not
// be modified.
func (g *Graph[K]) Edges() []Edge[K] {
	return g.edges
}

func (g *Graph[K]) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph[K]) EdgeCount() int {
	return len(g.edges)
}

// Neighbors returns the neighbors of node in ascending order.
func (g *Graph[K]) Neighbors(node K) []K {
	ns := g.adj[node]
	out := make([]K, len(ns))
	for i, n := range ns {
		out[i] = n.node
	}
	return out
}

// Degree is the number of neighbors of node.
func (g *Graph[K]) Degree(node K) int {
	return len(g.adj[node])
}

// Weight returns the weight of the edge between a and b in either
// orientation.
func (g *Graph[K]) Weight(a, b K) (int, bool) {
	ns := g.adj[a]
	i, found := slices.BinarySearchFunc(ns, b, func(n neighbor[K], target K) int {
		return g.compare(n.node, target)
	})
	if !found {
		return 0, false
	}
	return ns[i].weight, true
}

// TotalWeight sums all edge weights.
func (g *Graph[K]) TotalWeight() int {
	total := 0
	for _, e := range g.edges {
		total += e.Weight
	}
	return total
}

// Induced returns the subgraph made of the edges whose endpoints are both
// in keep. Nodes of keep left without edges do not appear.
func (g *Graph[K]) Induced(keep []K) *Graph[K] {
	set := make(map[K]struct{}, len(keep))
	for _, k := range keep {
		set[k] = struct{}{}
	}

	edges := make([]Edge[K], 0)
	for _, e := range g.edges {
		_, okSource := set[e.Source]
		_, okTarget := set[e.Target]
		if okSource && okTarget {
			edges = append(edges, e)
		}
	}
	return New(g.compare, edges)
}
