// Package model defines the compared-record and job types returned by the
// compare backend, plus the normalization helpers every view derives from.
package model

import "strings"

// Match statuses assigned by the server-side comparison.
const (
	StatusFound     = "Found"
	StatusUnmatched = "Unmatched"
)

// Placeholder shown for fields that normalize to empty.
const Placeholder = "—"

// Record is one row of a compared dataset. All free-text fields may be
// empty; callers must go through the normalizing accessors rather than
// reading struct fields directly. Records carry no identity beyond their
// field values — duplicates are legal and count toward circuit totals.
type Record struct {
	ID              int64  `json:"id,omitempty"`
	Customer        string `json:"customer"`
	Project         string `json:"project,omitempty"`
	Branch          string `json:"branch,omitempty"`
	Province        string `json:"province"`
	ServiceCategory string `json:"service_category,omitempty"`
	Type            string `json:"type,omitempty"`
	CircuitNumber   string `json:"circuit_number,omitempty"`
	CircuitNorm     string `json:"circuit_norm,omitempty"`
	CircuitRaw      string `json:"circuit,omitempty"`
	SLA             string `json:"sla,omitempty"`
	Status          string `json:"status"`
}

// NormString trims surrounding whitespace. Missing values stay empty.
func NormString(s string) string {
	return strings.TrimSpace(s)
}

// Display returns the normalized value, or the em-dash placeholder when
// the value normalizes to empty.
func Display(s string) string {
	if v := NormString(s); v != "" {
		return v
	}
	return Placeholder
}

// ServiceLabel returns the raw service label, preferring service_category
// over the legacy type field.
func (r Record) ServiceLabel() string {
	if v := NormString(r.ServiceCategory); v != "" {
		return v
	}
	return NormString(r.Type)
}

// Circuit resolves the circuit identifier through the fallback chain
// circuit_number → circuit_norm → circuit, with the placeholder as the
// last resort.
func (r Record) Circuit() string {
	if v := NormString(r.CircuitNumber); v != "" {
		return v
	}
	if v := NormString(r.CircuitNorm); v != "" {
		return v
	}
	if v := NormString(r.CircuitRaw); v != "" {
		return v
	}
	return Placeholder
}

// BranchName returns the branch, falling back to the project name.
func (r Record) BranchName() string {
	if v := NormString(r.Branch); v != "" {
		return v
	}
	return NormString(r.Project)
}

// IsUnmatched reports whether the record's status normalizes to
// "unmatched", case-insensitively. The summary view keys off this rather
// than an exact status match.
func (r Record) IsUnmatched() bool {
	return strings.EqualFold(NormString(r.Status), StatusUnmatched)
}

// Field returns a named field's normalized value for targeted free-text
// search. The "type" field reads the service label. Unknown names return
// the empty string.
func (r Record) Field(name string) string {
	switch name {
	case "customer":
		return NormString(r.Customer)
	case "project":
		return NormString(r.Project)
	case "branch":
		return NormString(r.Branch)
	case "province":
		return NormString(r.Province)
	case "type":
		return r.ServiceLabel()
	case "circuit_number":
		return NormString(r.CircuitNumber)
	case "sla":
		return NormString(r.SLA)
	}
	return ""
}

// SearchFields lists the fields the all-field free-text search inspects.
var SearchFields = []string{"customer", "project", "province", "type", "circuit_number", "branch", "sla"}

// MatchesQuery reports whether the record matches a free-text query,
// case-insensitively. An empty query always matches. When field is empty
// or "all", the query is checked against every search field plus the
// normalized circuit code.
func (r Record) MatchesQuery(query, field string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if field != "" && field != "all" {
		return strings.Contains(strings.ToLower(r.Field(field)), q)
	}
	for _, f := range SearchFields {
		if strings.Contains(strings.ToLower(r.Field(f)), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(NormString(r.CircuitNorm)), q)
}
