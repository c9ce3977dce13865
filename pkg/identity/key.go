// Package identity resolves officer records to stable identity keys and
// keeps the display lookups used when writing node attributes.
package identity

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-leaknet/pkg/records"
)

// OfficerKey identifies a real-world officer by normalized name and ID
// number. An absent ID number is the empty string, so two officers sharing a
// normalized name and both lacking an ID are the same key.
type OfficerKey struct {
	Name     string
	IDNumber string
}

// Key derives the identity of a record.
func Key(rec records.OfficerRecord) OfficerKey {
	return OfficerKey{Name: rec.FullNameNormalized, IDNumber: rec.IDNumber}
}

// Compare orders keys by name, then ID number.
func (k OfficerKey) Compare(other OfficerKey) int {
	if c := cmp.Compare(k.Name, other.Name); c != 0 {
		return c
	}
	return cmp.Compare(k.IDNumber, other.IDNumber)
}

// CompareKeys is Compare in function form for generic callers.
func CompareKeys(a, b OfficerKey) int {
	return a.Compare(b)
}

// IsEmpty reports whether both components are blank.
func (k OfficerKey) IsEmpty() bool {
	return strings.TrimSpace(k.Name) == "" && strings.TrimSpace(k.IDNumber) == ""
}

// String returns the key as a two-element JSON array, e.g.
// ["U AUNG","12/ABC(N)123456"]. ParseOfficerKey reverses it exactly.
func (k OfficerKey) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a [2]string cannot fail.
	_ = enc.Encode([2]string{k.Name, k.IDNumber})
	return strings.TrimSuffix(buf.String(), "\n")
}

// ParseOfficerKey parses the text form produced by String.
func ParseOfficerKey(s string) (OfficerKey, error) {
	var parts []string
	if err := json.Unmarshal([]byte(s), &parts); err != nil {
		return OfficerKey{}, fmt.Errorf("parse officer key %q: %w", s, err)
	}
	if len(parts) != 2 {
		return OfficerKey{}, fmt.Errorf("parse officer key %q: want 2 components, got %d", s, len(parts))
	}
	return OfficerKey{Name: parts[0], IDNumber: parts[1]}, nil
}
