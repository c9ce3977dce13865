// Package summary computes the per-node attribute rows written next to each
// filtered graph: display fields plus the three most popular affiliations of
// the opposite type.
package summary

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/membership"
)

// TopN is the number of ranked affiliations per node.
const TopN = 3

// OfficerAttributes is one row of the officer attribute table.
type OfficerAttributes struct {
	Key       identity.OfficerKey
	FullName  string
	IDNumber  string
	Companies [TopN]string // most popular companies, "" when fewer exist
}

// CompanyAttributes is one row of the company attribute table.
type CompanyAttributes struct {
	CorpID      string
	CompanyName string
	AltName     string
	Officers    [TopN]string // most connected officers, "" when fewer exist
}

// Officers builds attribute rows for officers, in the order given. Each
// officer's companies are ranked by how many officers they have.
func Officers(officers []identity.OfficerKey, idx *membership.Index, resolver *identity.Resolver) []OfficerAttributes {
	rows := make([]OfficerAttributes, 0, len(officers))
	for _, officer := range officers {
		top := rankTop(idx.CompaniesOf(officer), idx.OfficerCount, cmp.Compare[string])
		rows = append(rows, OfficerAttributes{
			Key:       officer,
			FullName:  resolver.DisplayName(officer),
			IDNumber:  resolver.IDNumber(officer),
			Companies: names(top, resolver.CompanyName),
		})
	}
	return rows
}

// Companies builds attribute rows for companies, in the order given. Each
// company's officers are ranked by how many companies they serve.
func Companies(corpIDs []string, idx *membership.Index, resolver *identity.Resolver) []CompanyAttributes {
	rows := make([]CompanyAttributes, 0, len(corpIDs))
	for _, corpID := range corpIDs {
		top := rankTop(idx.OfficersOf(corpID), idx.CompanyCount, identity.CompareKeys)
		rows = append(rows, CompanyAttributes{
			CorpID:      corpID,
			CompanyName: resolver.CompanyName(corpID),
			AltName:     resolver.AltName(corpID),
			Officers:    names(top, resolver.DisplayName),
		})
	}
	return rows
}

// rankTop orders candidates by popularity descending, ties by key ascending,
// and keeps the first TopN.
func rankTop[K any](candidates []K, popularity func(K) int, compare func(a, b K) int) []K {
	type scored struct {
		key   K
		score int
	}

	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{key: c, score: popularity(c)}
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return compare(a.key, b.key)
	})

	out := make([]K, 0, TopN)
	for _, r := range ranked[:min(TopN, len(ranked))] {
		out = append(out, r.key)
	}
	return out
}

func names[K any](keys []K, resolve func(K) string) [TopN]string {
	var out [TopN]string
	for i, k := range keys {
		out[i] = resolve(k)
	}
	return out
}
