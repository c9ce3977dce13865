package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
)

// ConnectedComponents finds all connected components of g. Nodes are visited
// in ascending order, so components come out ordered by their smallest node
// and component IDs are stable for a given edge set.
func ConnectedComponents[K comparable](g *graph.Graph[K]) *ComponentResult[K] {
	visited := make(map[K]bool, g.NodeCount())
	nodeComponent := make(map[K]int, g.NodeCount())
	components := make([]*Component[K], 0)
	componentID := 0

	// BFS to find each component
	for _, startNode := range g.Nodes() {
		if visited[startNode] {
			continue
		}

		component := &Component[K]{
			ID:    componentID,
			Nodes: make([]K, 0),
		}

		queue := list.New()
		queue.PushBack(startNode)
		visited[startNode] = true

		degreeSum := 0
		for queue.Len() > 0 {
			node, ok := queue.Remove(queue.Front()).(K)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, node)
			nodeComponent[node] = componentID
			degreeSum += g.Degree(node)

			for _, next := range g.Neighbors(node) {
				if !visited[next] {
					visited[next] = true
					queue.PushBack(next)
				}
			}
		}

		sortNodes(component.Nodes, g.Compare)
		component.Size = len(component.Nodes)
		component.EdgeCount = degreeSum / 2
		component.Density = density(component.Size, component.EdgeCount)
		components = append(components, component)
		componentID++
	}

	return &ComponentResult[K]{
		Components:    components,
		NodeComponent: nodeComponent,
	}
}

// Largest returns the component with the most nodes. Among equal sizes the
// one with the smallest node wins. It returns nil when there are none.
func (r *ComponentResult[K]) Largest() *Component[K] {
	var best *Component[K]
	for _, c := range r.Components {
		if best == nil || c.Size > best.Size {
			best = c
		}
	}
	return best
}

// LargestComponent restricts g to its largest connected component and also
// returns the components it chose from. An empty graph yields an empty graph.
func LargestComponent[K comparable](g *graph.Graph[K]) (*graph.Graph[K], *ComponentResult[K]) {
	result := ConnectedComponents(g)
	largest := result.Largest()
	if largest == nil {
		return graph.Empty(g.Compare), result
	}
	return g.Induced(largest.Nodes), result
}

func density(nodes, edges int) float64 {
	if nodes < 2 {
		return 0
	}
	return 2 * float64(edges) / float64(nodes*(nodes-1))
}
