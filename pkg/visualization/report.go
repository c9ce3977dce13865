package visualization

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-leaknet/pkg/summary"
)

// ClassSummary describes one modularity class of a laid-out officer graph.
type ClassSummary struct {
	Class           int
	Nodes           int
	InternalEdges   int    // edges with both endpoints in the class
	TopCompany      string // most common leading company among members
	TopCompanyNodes int
}

// Report joins a layout with the officer attribute table.
type Report struct {
	Nodes        int
	Edges        int
	Matched      int // nodes with an attribute row
	Unclassified int // nodes without a modularity class
	Extents      Extents
	Classes      []ClassSummary // largest class first, ties by class number
}

// Summarize groups the classified nodes of layout by modularity class. Node
// ids are matched against the text form of the attribute keys.
func Summarize(layout *Layout, attrs []summary.OfficerAttributes) *Report {
	byID := make(map[string]summary.OfficerAttributes, len(attrs))
	for _, a := range attrs {
		byID[a.Key.String()] = a
	}

	report := &Report{
		Nodes:   len(layout.Nodes),
		Edges:   len(layout.Edges),
		Extents: layout.Bounds(),
	}

	classOf := make(map[string]int, len(layout.Nodes))
	classes := make(map[int]*ClassSummary)
	companies := make(map[int]map[string]int)

	for _, n := range layout.Nodes {
		a, matched := byID[n.ID]
		if matched {
			report.Matched++
		}
		if !n.HasClass {
			report.Unclassified++
			continue
		}

		classOf[n.ID] = n.Class
		cs, ok := classes[n.Class]
		if !ok {
			cs = &ClassSummary{Class: n.Class}
			classes[n.Class] = cs
			companies[n.Class] = make(map[string]int)
		}
		cs.Nodes++
		if matched && a.Companies[0] != "" {
			companies[n.Class][a.Companies[0]]++
		}
	}

	for _, e := range layout.Edges {
		src, ok1 := classOf[e.Source]
		dst, ok2 := classOf[e.Target]
		if ok1 && ok2 && src == dst {
			classes[src].InternalEdges++
		}
	}

	for class, cs := range classes {
		cs.TopCompany, cs.TopCompanyNodes = mostCommon(companies[class])
		report.Classes = append(report.Classes, *cs)
	}
	slices.SortFunc(report.Classes, func(a, b ClassSummary) int {
		if c := cmp.Compare(b.Nodes, a.Nodes); c != 0 {
			return c
		}
		return cmp.Compare(a.Class, b.Class)
	})
	return report
}

// mostCommon returns the highest count, ties broken by the smaller name.
func mostCommon(counts map[string]int) (string, int) {
	var best string
	var bestCount int
	for name, n := range counts {
		if n > bestCount || (n == bestCount && name < best) {
			best, bestCount = name, n
		}
	}
	return best, bestCount
}
