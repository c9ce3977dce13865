// Package gexf writes projection graphs as GEXF 1.3 documents and reads
// layouts produced by external tools such as Gephi.
package gexf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
	"github.com/dd0wney/cluso-leaknet/pkg/visualization"
)

const (
	namespace    = "http://gexf.net/1.3"
	vizNamespace = "http://gexf.net/1.3/viz"
	version      = "1.3"
	creator      = "leaknet"
)

type document struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	VizNS   string    `xml:"xmlns:viz,attr"`
	Version string    `xml:"version,attr"`
	Meta    meta      `xml:"meta"`
	Graph   graphElem `xml:"graph"`
}

type meta struct {
	Creator     string `xml:"creator"`
	Description string `xml:"description,omitempty"`
}

type graphElem struct {
	Mode            string     `xml:"mode,attr"`
	DefaultEdgeType string     `xml:"defaultedgetype,attr"`
	Nodes           []nodeElem `xml:"nodes>node"`
	Edges           []edgeElem `xml:"edges>edge"`
}

type nodeElem struct {
	ID       string    `xml:"id,attr"`
	Label    string    `xml:"label,attr"`
	Position *position `xml:"viz:position,omitempty"`
}

type position struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

type edgeElem struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight int    `xml:"weight,attr"`
}

// ErrUnrepresentableID is returned for a node id XML 1.0 cannot carry
// unchanged, such as one holding control characters or invalid UTF-8.
var ErrUnrepresentableID = errors.New("node id cannot be written to XML unchanged")

// Options controls how nodes are rendered.
type Options[K comparable] struct {
	ID          func(K) string // node id, required
	Label       func(K) string // node label, defaults to the id
	Positions   map[string]visualization.Position
	Description string
}

// Write encodes g as an undirected GEXF document. Nodes and edges keep the
// graph's order so equal graphs give equal bytes. Positions are keyed by
// node id; nodes without one get no viz:position.
//
// Ids must survive the round trip so layouts join back to the tables:
// an id XML would alter fails with ErrUnrepresentableID before anything is
// written. Labels are display only, and characters XML cannot carry become
// U+FFFD.
func Write[K comparable](w io.Writer, g *graph.Graph[K], opts Options[K]) error {
	label := opts.Label
	if label == nil {
		label = opts.ID
	}

	doc := document{
		XMLNS:   namespace,
		VizNS:   vizNamespace,
		Version: version,
		Meta:    meta{Creator: creator, Description: opts.Description},
		Graph:   graphElem{Mode: "static", DefaultEdgeType: "undirected"},
	}

	for _, n := range g.Nodes() {
		id := opts.ID(n)
		if !representable(id) {
			return fmt.Errorf("%w: %q", ErrUnrepresentableID, id)
		}
		node := nodeElem{ID: id, Label: label(n)}
		if pos, ok := opts.Positions[id]; ok {
			node.Position = &position{X: pos.X, Y: pos.Y}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for i, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, edgeElem{
			ID:     strconv.Itoa(i),
			Source: opts.ID(e.Source),
			Target: opts.ID(e.Target),
			Weight: e.Weight,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// representable reports whether s is valid UTF-8 made only of characters
// allowed by the XML 1.0 Char production.
func representable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
