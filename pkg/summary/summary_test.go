package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/membership"
	"github.com/dd0wney/cluso-leaknet/pkg/records"
)

type row struct {
	corpID, company, alt string
	name, display, id    string
}

func build(t *testing.T, rows ...row) (*membership.Index, *identity.Resolver) {
	t.Helper()

	recs := make([]records.OfficerRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, records.OfficerRecord{
			CompanyRecord:      records.CompanyRecord{CorpID: r.corpID, CompanyName: r.company, AltName: r.alt},
			FullNameNormalized: r.name,
			FullName:           r.display,
			IDNumber:           r.id,
		})
	}
	idx, resolver, stats := membership.Build(recs, logging.NewNopLogger())
	require.Zero(t, stats.Rejected)
	return idx, resolver
}

func TestOfficers_RanksCompaniesByOfficerCount(t *testing.T) {
	idx, resolver := build(t,
		row{corpID: "BIG", company: "Big Co", name: "A", display: "Aung", id: "1"},
		row{corpID: "BIG", company: "Big Co", name: "B", display: "Bo"},
		row{corpID: "BIG", company: "Big Co", name: "C", display: "Chit"},
		row{corpID: "MID", company: "Mid Co", name: "A", display: "Aung", id: "1"},
		row{corpID: "MID", company: "Mid Co", name: "B", display: "Bo"},
		row{corpID: "TIE1", company: "Tie One", name: "A", display: "Aung", id: "1"},
		row{corpID: "TIE0", company: "Tie Zero", name: "A", display: "Aung", id: "1"},
	)

	a := identity.OfficerKey{Name: "A", IDNumber: "1"}
	rows := Officers([]identity.OfficerKey{a}, idx, resolver)

	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].Key)
	assert.Equal(t, "Aung", rows[0].FullName)
	assert.Equal(t, "1", rows[0].IDNumber)
	// BIG(3) > MID(2) > TIE0(1) = TIE1(1); ties broken by corp ID
	assert.Equal(t, [TopN]string{"Big Co", "Mid Co", "Tie Zero"}, rows[0].Companies)
}

func TestCompanies_RanksOfficersByCompanyCount(t *testing.T) {
	idx, resolver := build(t,
		row{corpID: "C1", company: "One", alt: "တစ်", name: "HUB", display: " Hub "},
		row{corpID: "C1", company: "One", alt: "တစ်", name: "ZED", display: "Zed"},
		row{corpID: "C1", company: "One", alt: "တစ်", name: "AYE", display: "Aye"},
		row{corpID: "C1", company: "One", alt: "တစ်", name: "MOE", display: "Moe"},
		row{corpID: "C2", company: "Two", name: "HUB", display: "Hub"},
		row{corpID: "C3", company: "Three", name: "HUB", display: "Hub"},
		row{corpID: "C2", company: "Two", name: "ZED", display: "Zed"},
	)

	rows := Companies([]string{"C1"}, idx, resolver)

	require.Len(t, rows, 1)
	assert.Equal(t, "One", rows[0].CompanyName)
	assert.Equal(t, "တစ်", rows[0].AltName)
	// HUB(3) > ZED(2) > AYE(1) = MOE(1); AYE wins the tie on key order
	assert.Equal(t, [TopN]string{"Hub", "Zed", "Aye"}, rows[0].Officers)
}

func TestOfficers_PadsWithEmptyStrings(t *testing.T) {
	idx, resolver := build(t,
		row{corpID: "ONLY", company: "Only Co", name: "SOLO", display: "Solo"},
	)

	rows := Officers([]identity.OfficerKey{{Name: "SOLO"}}, idx, resolver)

	require.Len(t, rows, 1)
	assert.Equal(t, [TopN]string{"Only Co", "", ""}, rows[0].Companies)

	nonEmpty := 0
	for _, c := range rows[0].Companies {
		if c != "" {
			nonEmpty++
		}
	}
	assert.Equal(t, 1, nonEmpty)
}

func TestCompanies_KeepsInputOrder(t *testing.T) {
	idx, resolver := build(t,
		row{corpID: "A", company: "A Co", name: "X", display: "X"},
		row{corpID: "B", company: "B Co", name: "X", display: "X"},
	)

	rows := Companies([]string{"B", "A"}, idx, resolver)

	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].CorpID)
	assert.Equal(t, "A", rows[1].CorpID)
	assert.Equal(t, [TopN]string{"X", "", ""}, rows[1].Officers)
}

func TestRankTop_Deterministic(t *testing.T) {
	pop := map[string]int{"d": 2, "b": 2, "a": 1, "c": 2, "e": 5}
	got := rankTop([]string{"a", "b", "c", "d", "e"}, func(k string) int { return pop[k] }, func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	assert.Equal(t, []string{"e", "b", "c"}, got)

	assert.Empty(t, rankTop(nil, func(string) int { return 0 }, func(a, b string) int { return 0 }))
}
