// Package visualization holds the layout model shared by the GEXF codec and
// the layout report: seed positions for exported graphs and the per-class
// summary of an externally laid-out officer graph.
package visualization

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width   float64 // Canvas width
	Height  float64 // Canvas height
	Padding float64 // Padding from edges
}

// NodeLayout is one node of a laid-out graph.
type NodeLayout struct {
	ID       string
	Label    string
	Position Position
	Size     float64
	Class    int  // modularity class
	HasClass bool // false when the node carried no class value
}

// EdgeLayout is one edge of a laid-out graph.
type EdgeLayout struct {
	Source string
	Target string
	Weight float64
}

// Layout is a graph as positioned by an external layout tool.
type Layout struct {
	Nodes []NodeLayout
	Edges []EdgeLayout
}

// Extents is the bounding box of a set of positions.
type Extents struct {
	MinX, MinY float64
	MaxX, MaxY float64
}
