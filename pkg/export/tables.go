package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dd0wney/cluso-leaknet/pkg/graph"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/summary"
)

// ErrHeader reports a table whose header row is not the expected one.
var ErrHeader = errors.New("unexpected table header")

var (
	EdgeHeader             = []string{"source", "target", "weight"}
	OfficerAttributeHeader = []string{"OfficerUnique", "FullName", "IdNumber", "Company1", "Company2", "Company3"}
	CompanyAttributeHeader = []string{"CorpId", "CompanyName", "AltName", "Officer1", "Officer2", "Officer3"}
)

// EdgeRow is one line of an edge table.
type EdgeRow struct {
	Source string
	Target string
	Weight int
}

// EdgeRows renders the edges of g in stored order using format for the
// node columns.
func EdgeRows[K comparable](g *graph.Graph[K], format func(K) string) [][]string {
	edges := g.Edges()
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{format(e.Source), format(e.Target), strconv.Itoa(e.Weight)})
	}
	return rows
}

// OfficerEdgeRows renders an officer graph with keys in their text form.
func OfficerEdgeRows(g *graph.Graph[identity.OfficerKey]) [][]string {
	return EdgeRows(g, identity.OfficerKey.String)
}

// CompanyEdgeRows renders a company graph.
func CompanyEdgeRows(g *graph.Graph[string]) [][]string {
	return EdgeRows(g, func(id string) string { return id })
}

// OfficerAttributeRows renders officer attribute rows.
func OfficerAttributeRows(attrs []summary.OfficerAttributes) [][]string {
	rows := make([][]string, 0, len(attrs))
	for _, a := range attrs {
		row := []string{a.Key.String(), a.FullName, a.IDNumber}
		rows = append(rows, append(row, a.Companies[:]...))
	}
	return rows
}

// CompanyAttributeRows renders company attribute rows.
func CompanyAttributeRows(attrs []summary.CompanyAttributes) [][]string {
	rows := make([][]string, 0, len(attrs))
	for _, a := range attrs {
		row := []string{a.CorpID, a.CompanyName, a.AltName}
		rows = append(rows, append(row, a.Officers[:]...))
	}
	return rows
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// readCSV reads a whole table and checks its header.
func readCSV(path string, header []string) ([][]string, error) {
	rc, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = len(header)

	got, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !slices.Equal(got, header) {
		return nil, fmt.Errorf("read %s: %w: %v", path, ErrHeader, got)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadEdges reads an edge table.
func ReadEdges(path string) ([]EdgeRow, error) {
	rows, err := readCSV(path, EdgeHeader)
	if err != nil {
		return nil, err
	}

	edges := make([]EdgeRow, 0, len(rows))
	for i, row := range rows {
		weight, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: weight: %w", path, i+1, err)
		}
		edges = append(edges, EdgeRow{Source: row[0], Target: row[1], Weight: weight})
	}
	return edges, nil
}

// ReadOfficerAttributes reads an officer attribute table.
func ReadOfficerAttributes(path string) ([]summary.OfficerAttributes, error) {
	rows, err := readCSV(path, OfficerAttributeHeader)
	if err != nil {
		return nil, err
	}

	attrs := make([]summary.OfficerAttributes, 0, len(rows))
	for i, row := range rows {
		key, err := identity.ParseOfficerKey(row[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: %w", path, i+1, err)
		}
		a := summary.OfficerAttributes{Key: key, FullName: row[1], IDNumber: row[2]}
		copy(a.Companies[:], row[3:])
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// ReadCompanyAttributes reads a company attribute table.
func ReadCompanyAttributes(path string) ([]summary.CompanyAttributes, error) {
	rows, err := readCSV(path, CompanyAttributeHeader)
	if err != nil {
		return nil, err
	}

	attrs := make([]summary.CompanyAttributes, 0, len(rows))
	for _, row := range rows {
		a := summary.CompanyAttributes{CorpID: row[0], CompanyName: row[1], AltName: row[2]}
		copy(a.Officers[:], row[3:])
		attrs = append(attrs, a)
	}
	return attrs, nil
}
