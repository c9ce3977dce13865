// Package membership builds the bipartite officer/company index that both
// projections and the attribute summaries read from.
package membership

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/records"
)

// Index maps officers to the companies they serve and companies to their
// officers. It is immutable once Build returns.
type Index struct {
	companiesOf map[identity.OfficerKey]map[string]struct{}
	officersOf  map[string]map[identity.OfficerKey]struct{}
}

// Rejection explains why a record was left out of the index.
type Rejection string

const (
	RejectEmptyCorpID   Rejection = "empty corp id"
	RejectEmptyIdentity Rejection = "empty officer identity"
)

// BuildStats summarizes one Build.
type BuildStats struct {
	Records  int // records offered
	Accepted int
	Rejected int
	ByReason map[Rejection]int
}

// Build groups records by corp ID and by officer identity in a single pass
// and fills a Resolver from the same records. Records with an empty corp ID
// or a wholly empty identity are skipped, logged and counted.
func Build(recs []records.OfficerRecord, logger logging.Logger) (*Index, *identity.Resolver, BuildStats) {
	idx := &Index{
		companiesOf: make(map[identity.OfficerKey]map[string]struct{}),
		officersOf:  make(map[string]map[identity.OfficerKey]struct{}),
	}
	resolver := identity.NewResolver()
	stats := BuildStats{Records: len(recs), ByReason: make(map[Rejection]int)}

	for _, rec := range recs {
		if reason, ok := reject(rec); ok {
			stats.Rejected++
			stats.ByReason[reason]++
			logger.Warn("record rejected",
				logging.File(rec.SourceFile),
				logging.Record(rec.Index),
				logging.CorpID(rec.CorpID),
				logging.String("reason", string(reason)),
			)
			continue
		}

		key := identity.Key(rec)
		resolver.Observe(rec)

		companies, ok := idx.companiesOf[key]
		if !ok {
			companies = make(map[string]struct{})
			idx.companiesOf[key] = companies
		}
		companies[rec.CorpID] = struct{}{}

		officers, ok := idx.officersOf[rec.CorpID]
		if !ok {
			officers = make(map[identity.OfficerKey]struct{})
			idx.officersOf[rec.CorpID] = officers
		}
		officers[key] = struct{}{}

		stats.Accepted++
	}

	if stats.Rejected > 0 {
		logger.Warn("records rejected during indexing",
			logging.Int("rejected", stats.Rejected),
			logging.Int("empty_corp_id", stats.ByReason[RejectEmptyCorpID]),
			logging.Int("empty_identity", stats.ByReason[RejectEmptyIdentity]),
		)
	}
	logger.Info("membership index built",
		logging.Int("officers", len(idx.companiesOf)),
		logging.Int("companies", len(idx.officersOf)),
		logging.Int("accepted", stats.Accepted),
		logging.Int("rejected", stats.Rejected),
	)

	return idx, resolver, stats
}

func reject(rec records.OfficerRecord) (Rejection, bool) {
	if strings.TrimSpace(rec.CorpID) == "" {
		return RejectEmptyCorpID, true
	}
	if identity.Key(rec).IsEmpty() {
		return RejectEmptyIdentity, true
	}
	return "", false
}

// CompaniesOf returns the corp IDs officer serves, ascending.
func (idx *Index) CompaniesOf(officer identity.OfficerKey) []string {
	set := idx.companiesOf[officer]
	out := make([]string, 0, len(set))
	for corpID := range set {
		out = append(out, corpID)
	}
	slices.Sort(out)
	return out
}

// OfficersOf returns the officers of corpID, ascending.
func (idx *Index) OfficersOf(corpID string) []identity.OfficerKey {
	set := idx.officersOf[corpID]
	out := make([]identity.OfficerKey, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	slices.SortFunc(out, identity.CompareKeys)
	return out
}

// EachCompany yields the corp IDs officer serves in no particular order.
func (idx *Index) EachCompany(officer identity.OfficerKey) iter.Seq[string] {
	return maps.Keys(idx.companiesOf[officer])
}

// EachOfficer yields the officers of corpID in no particular order.
func (idx *Index) EachOfficer(corpID string) iter.Seq[identity.OfficerKey] {
	return maps.Keys(idx.officersOf[corpID])
}

// CompanyCount is the number of companies officer serves.
func (idx *Index) CompanyCount(officer identity.OfficerKey) int {
	return len(idx.companiesOf[officer])
}

// OfficerCount is the number of officers corpID has.
func (idx *Index) OfficerCount(corpID string) int {
	return len(idx.officersOf[corpID])
}

// Officers returns every indexed officer, ascending.
func (idx *Index) Officers() []identity.OfficerKey {
	out := make([]identity.OfficerKey, 0, len(idx.companiesOf))
	for key := range idx.companiesOf {
		out = append(out, key)
	}
	slices.SortFunc(out, identity.CompareKeys)
	return out
}

// Companies returns every indexed corp ID, ascending.
func (idx *Index) Companies() []string {
	out := make([]string, 0, len(idx.officersOf))
	for corpID := range idx.officersOf {
		out = append(out, corpID)
	}
	slices.Sort(out)
	return out
}
