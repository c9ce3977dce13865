package gexf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-leaknet/pkg/visualization"
)

// ErrMissingPosition reports a layout node without viz:position.
var ErrMissingPosition = errors.New("node has no position")

// ClassAttribute is the id Gephi gives the modularity class column.
const ClassAttribute = "modularity_class"

// Elements are matched by local name so any GEXF version and any prefix
// for the viz namespace is accepted.
type layoutDoc struct {
	Graph struct {
		Attributes []struct {
			Class     string `xml:"class,attr"`
			Attribute []struct {
				ID    string `xml:"id,attr"`
				Title string `xml:"title,attr"`
			} `xml:"attribute"`
		} `xml:"attributes"`
		Nodes []layoutNode `xml:"nodes>node"`
		Edges []struct {
			Source string  `xml:"source,attr"`
			Target string  `xml:"target,attr"`
			Weight float64 `xml:"weight,attr"`
		} `xml:"edges>edge"`
	} `xml:"graph"`
}

type layoutNode struct {
	ID        string `xml:"id,attr"`
	Label     string `xml:"label,attr"`
	AttValues []struct {
		For   string `xml:"for,attr"`
		Value string `xml:"value,attr"`
	} `xml:"attvalues>attvalue"`
	Position *struct {
		X float64 `xml:"x,attr"`
		Y float64 `xml:"y,attr"`
	} `xml:"position"`
	Size *struct {
		Value float64 `xml:"value,attr"`
	} `xml:"size"`
}

// ReadLayoutFile reads a laid-out GEXF file.
func ReadLayoutFile(path string) (*visualization.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	layout, err := ReadLayout(f)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return layout, nil
}

// ReadLayout decodes node positions, sizes and modularity classes. Every
// node must carry a position; size and class are optional.
func ReadLayout(r io.Reader) (*visualization.Layout, error) {
	var doc layoutDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode gexf: %w", err)
	}

	classID := classAttributeID(&doc)
	layout := &visualization.Layout{
		Nodes: make([]visualization.NodeLayout, 0, len(doc.Graph.Nodes)),
		Edges: make([]visualization.EdgeLayout, 0, len(doc.Graph.Edges)),
	}

	for _, n := range doc.Graph.Nodes {
		if n.Position == nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, ErrMissingPosition)
		}
		node := visualization.NodeLayout{
			ID:       n.ID,
			Label:    n.Label,
			Position: visualization.Position{X: n.Position.X, Y: n.Position.Y},
		}
		if n.Size != nil {
			node.Size = n.Size.Value
		}
		for _, av := range n.AttValues {
			if av.For != classID {
				continue
			}
			class, err := strconv.Atoi(strings.TrimSpace(av.Value))
			if err != nil {
				return nil, fmt.Errorf("node %q: modularity class: %w", n.ID, err)
			}
			node.Class, node.HasClass = class, true
		}
		layout.Nodes = append(layout.Nodes, node)
	}

	for _, e := range doc.Graph.Edges {
		layout.Edges = append(layout.Edges, visualization.EdgeLayout{
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return layout, nil
}

// classAttributeID finds the node attribute holding the modularity class,
// by id or by title.
func classAttributeID(doc *layoutDoc) string {
	for _, attrs := range doc.Graph.Attributes {
		if attrs.Class != "" && attrs.Class != "node" {
			continue
		}
		for _, a := range attrs.Attribute {
			if strings.EqualFold(a.ID, ClassAttribute) || strings.EqualFold(a.Title, "Modularity Class") {
				return a.ID
			}
		}
	}
	return ClassAttribute
}
