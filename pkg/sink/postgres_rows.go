package sink

import "github.com/dd0wney/cluso-leaknet/pkg/summary"

func officerAttributeRows(attrs []summary.OfficerAttributes) [][]any {
	rows := make([][]any, 0, len(attrs))
	for _, a := range attrs {
		rows = append(rows, []any{
			a.Key.Name, a.Key.IDNumber, a.FullName,
			a.Companies[0], a.Companies[1], a.Companies[2],
		})
	}
	return rows
}

func companyAttributeRows(attrs []summary.CompanyAttributes) [][]any {
	rows := make([][]any, 0, len(attrs))
	for _, a := range attrs {
		rows = append(rows, []any{
			a.CorpID, a.CompanyName, a.AltName,
			a.Officers[0], a.Officers[1], a.Officers[2],
		})
	}
	return rows
}
