package algorithms

import "github.com/dd0wney/cluso-leaknet/pkg/graph"

// ClusteringCoefficient computes local clustering coefficient for all nodes
// Measures how close a node's neighbors are to being a complete graph
func ClusteringCoefficient[K comparable](g *graph.Graph[K]) map[K]float64 {
	coefficients := make(map[K]float64, g.NodeCount())

	for _, node := range g.Nodes() {
		neighbors := g.Neighbors(node)
		k := len(neighbors)
		if k < 2 {
			coefficients[node] = 0.0
			continue
		}

		triangles := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if _, ok := g.Weight(neighbors[i], neighbors[j]); ok {
					triangles++
				}
			}
		}

		// actual triangles / possible triangles
		coefficients[node] = float64(triangles) / float64(k*(k-1)/2)
	}

	return coefficients
}

// AverageClusteringCoefficient computes the average clustering coefficient
func AverageClusteringCoefficient[K comparable](g *graph.Graph[K]) float64 {
	coefficients := ClusteringCoefficient(g)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, node := range g.Nodes() {
		sum += coefficients[node]
	}
	return sum / float64(len(coefficients))
}
