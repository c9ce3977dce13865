package algorithms

import "slices"

// Component is one connected component
type Component[K comparable] struct {
	ID        int
	Nodes     []K // ascending
	Size      int
	EdgeCount int
	Density   float64 // Edge density within component
}

// ComponentResult contains every component of a graph
type ComponentResult[K comparable] struct {
	Components    []*Component[K] // ordered by smallest node
	NodeComponent map[K]int       // Node -> Component ID
}

// SizeHistogram maps component size to the number of components that size.
func (r *ComponentResult[K]) SizeHistogram() map[int]int {
	hist := make(map[int]int)
	for _, c := range r.Components {
		hist[c.Size]++
	}
	return hist
}

func sortNodes[K comparable](nodes []K, compare func(a, b K) int) {
	slices.SortFunc(nodes, compare)
}
