package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-leaknet/pkg/pipeline"
	"github.com/dd0wney/cluso-leaknet/pkg/visualization"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderBuild(res *pipeline.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("leaknet build " + res.RunID))
	b.WriteString("\n")

	rejected := 0
	for _, n := range res.Rejected {
		rejected += n
	}
	fmt.Fprintf(&b, "%d files, %d records, %d accepted, %d rejected\n",
		res.Files, res.Records, res.Accepted, rejected)

	graphs := newTable("graph", "nodes", "edges", "components", "sizes",
		"kept nodes", "kept edges", "weight", "density", "clustering", "hubs")
	for _, g := range []struct {
		name  string
		stats pipeline.GraphStats
	}{
		{"officers", res.Officers},
		{"corporations", res.Companies},
	} {
		graphs.Row(g.name,
			strconv.Itoa(g.stats.ProjectedNodes),
			strconv.Itoa(g.stats.ProjectedEdges),
			strconv.Itoa(g.stats.Components),
			componentSizes(g.stats.ComponentSizes),
			strconv.Itoa(g.stats.FilteredNodes),
			strconv.Itoa(g.stats.FilteredEdges),
			strconv.Itoa(g.stats.TotalWeight),
			strconv.FormatFloat(g.stats.Density, 'f', 3, 64),
			strconv.FormatFloat(g.stats.AverageClustering, 'f', 3, 64),
			strings.Join(g.stats.Hubs, ", "),
		)
	}
	b.WriteString(graphs.Render())
	b.WriteString("\n")

	artifacts := newTable("artifact", "file", "rows")
	for _, a := range res.Artifacts {
		artifacts.Row(a.Name, a.File, strconv.Itoa(a.Rows))
	}
	b.WriteString(artifacts.Render())
	b.WriteString("\n")

	if len(res.Published) > 0 {
		b.WriteString(helpStyle.Render("published to " + strings.Join(res.Published, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("manifest: " + res.Manifest))
	return b.String()
}

// componentSizes formats a size histogram as "size x count" pairs, largest
// size first.
func componentSizes(hist map[int]int) string {
	sizes := slices.Sorted(maps.Keys(hist))
	slices.Reverse(sizes)

	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		parts = append(parts, fmt.Sprintf("%dx%d", size, hist[size]))
	}
	return strings.Join(parts, ", ")
}

func renderLayout(r *visualization.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("layout"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d nodes (%d with attributes, %d unclassified), %d edges\n",
		r.Nodes, r.Matched, r.Unclassified, r.Edges)
	fmt.Fprintf(&b, "extents x [%g, %g] y [%g, %g]\n",
		r.Extents.MinX, r.Extents.MaxX, r.Extents.MinY, r.Extents.MaxY)

	classes := newTable("class", "nodes", "internal edges", "top company", "officers")
	for _, c := range r.Classes {
		classes.Row(
			strconv.Itoa(c.Class),
			strconv.Itoa(c.Nodes),
			strconv.Itoa(c.InternalEdges),
			c.TopCompany,
			strconv.Itoa(c.TopCompanyNodes),
		)
	}
	b.WriteString(classes.Render())
	return b.String()
}
