package identity

import (
	"strings"

	"github.com/dd0wney/cluso-leaknet/pkg/records"
)

// Resolver holds the lookup tables that turn officer keys and corp IDs back
// into display values. The first value observed for a key wins.
type Resolver struct {
	displayNames map[OfficerKey]string
	companyNames map[string]string
	altNames     map[string]string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		displayNames: make(map[OfficerKey]string),
		companyNames: make(map[string]string),
		altNames:     make(map[string]string),
	}
}

// Observe records the display values carried by rec unless they are
// already known.
func (r *Resolver) Observe(rec records.OfficerRecord) {
	key := Key(rec)
	if _, ok := r.displayNames[key]; !ok {
		r.displayNames[key] = strings.TrimSpace(rec.FullName)
	}
	if _, ok := r.companyNames[rec.CorpID]; !ok {
		r.companyNames[rec.CorpID] = rec.CompanyName
		r.altNames[rec.CorpID] = rec.AltName
	}
}

// DisplayName returns the trimmed full name first seen for key, or "".
func (r *Resolver) DisplayName(key OfficerKey) string {
	return r.displayNames[key]
}

// IDNumber returns the ID number of key. It is part of the key itself, so
// every observed officer resolves.
func (r *Resolver) IDNumber(key OfficerKey) string {
	return key.IDNumber
}

// CompanyName returns the company name first seen for corpID, or "".
func (r *Resolver) CompanyName(corpID string) string {
	return r.companyNames[corpID]
}

// AltName returns the alternative (usually Burmese) name first seen for
// corpID, or "".
func (r *Resolver) AltName(corpID string) string {
	return r.altNames[corpID]
}

// Officers returns the number of distinct officer keys observed.
func (r *Resolver) Officers() int {
	return len(r.displayNames)
}

// Companies returns the number of distinct corp IDs observed.
func (r *Resolver) Companies() int {
	return len(r.companyNames)
}
