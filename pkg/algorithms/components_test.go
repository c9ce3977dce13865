package algorithms

import (
	"cmp"
	"slices"
	"testing"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
)

func chain(nodes ...string) []graph.Edge[string] {
	edges := make([]graph.Edge[string], 0, len(nodes))
	for i := 1; i < len(nodes); i++ {
		edges = append(edges, graph.Edge[string]{Source: nodes[i-1], Target: nodes[i], Weight: i})
	}
	return edges
}

func newGraph(edges ...[]graph.Edge[string]) *graph.Graph[string] {
	return graph.New(cmp.Compare[string], slices.Concat(edges...))
}

// TestConnectedComponents_EmptyGraph tests connected components on empty graph
func TestConnectedComponents_EmptyGraph(t *testing.T) {
	result := ConnectedComponents(newGraph())

	if len(result.Components) != 0 {
		t.Errorf("Expected 0 components for empty graph, got %d", len(result.Components))
	}
	if result.Largest() != nil {
		t.Error("Largest() of empty result should be nil")
	}
	got, all := LargestComponent(newGraph())
	if got.NodeCount() != 0 || len(all.Components) != 0 {
		t.Errorf("LargestComponent(empty) has %d nodes", got.NodeCount())
	}
}

// TestConnectedComponents_SingleComponent tests fully connected graph
func TestConnectedComponents_SingleComponent(t *testing.T) {
	result := ConnectedComponents(newGraph(chain("a", "b", "c")))

	if len(result.Components) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(result.Components))
	}
	c := result.Components[0]
	if c.Size != 3 || c.EdgeCount != 2 {
		t.Errorf("component size %d edges %d, want 3 and 2", c.Size, c.EdgeCount)
	}
	if want := 2.0 / 3.0; c.Density != want {
		t.Errorf("Density = %v, want %v", c.Density, want)
	}
}

// TestConnectedComponents_MultipleComponents tests disconnected graph
func TestConnectedComponents_MultipleComponents(t *testing.T) {
	g := newGraph(
		chain("p", "q"),
		chain("m", "n", "o"),
		chain("e", "a", "c", "b", "d"),
	)

	result := ConnectedComponents(g)

	if len(result.Components) != 3 {
		t.Fatalf("Expected 3 components, got %d", len(result.Components))
	}

	// Ordered by smallest node, nodes ascending inside each
	if !slices.Equal(result.Components[0].Nodes, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("component 0 nodes = %v", result.Components[0].Nodes)
	}
	if !slices.Equal(result.Components[1].Nodes, []string{"m", "n", "o"}) {
		t.Errorf("component 1 nodes = %v", result.Components[1].Nodes)
	}
	if result.NodeComponent["q"] != 2 {
		t.Errorf("q in component %d, want 2", result.NodeComponent["q"])
	}

	hist := result.SizeHistogram()
	if hist[5] != 1 || hist[3] != 1 || hist[2] != 1 {
		t.Errorf("SizeHistogram() = %v", hist)
	}
}

func TestLargestComponent_ReturnsInducedEdges(t *testing.T) {
	five := chain("k1", "k2", "k3", "k4", "k5")
	five = append(five, graph.Edge[string]{Source: "k1", Target: "k5", Weight: 9})
	g := newGraph(chain("a", "b", "c"), five, chain("x", "y"))

	largest, all := LargestComponent(g)

	if len(all.Components) != 3 {
		t.Errorf("chose among %d components, want 3", len(all.Components))
	}
	if largest.NodeCount() != 5 {
		t.Fatalf("largest has %d nodes, want 5", largest.NodeCount())
	}
	if largest.EdgeCount() != 5 {
		t.Errorf("largest has %d edges, want all 5 induced edges", largest.EdgeCount())
	}
	if w, ok := largest.Weight("k5", "k1"); !ok || w != 9 {
		t.Errorf("closing edge weight = %d, %v", w, ok)
	}
	for _, n := range largest.Nodes() {
		if n == "a" || n == "x" {
			t.Errorf("node %s from a smaller component leaked in", n)
		}
	}
}

func TestLargestComponent_TieGoesToSmallestNode(t *testing.T) {
	g := newGraph(chain("d", "e", "f"), chain("b", "z", "y"), chain("c", "a"))

	largest, _ := LargestComponent(g)

	if !slices.Equal(largest.Nodes(), []string{"b", "y", "z"}) {
		t.Errorf("largest nodes = %v, want the size-3 component containing b", largest.Nodes())
	}

	// Determinism across repeated runs
	for i := 0; i < 5; i++ {
		again, _ := LargestComponent(g)
		if !slices.Equal(again.Edges(), largest.Edges()) {
			t.Fatal("LargestComponent is not deterministic")
		}
	}
}
