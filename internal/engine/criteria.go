// Package engine holds the pure derivation pipeline: record filtering,
// summary aggregation, report building, and pagination. Every function
// here takes a state snapshot as arguments and has no side effects, so
// the views and exports can re-derive on demand.
package engine

import (
	"encoding/json"
	"sort"
)

// StringSet is a set of exact-match filter values. An empty set places no
// constraint on its dimension. It marshals to and from a JSON array.
type StringSet map[string]struct{}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	values := s.Values()
	sort.Strings(values)
	return json.Marshal(values)
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// NewStringSet builds a set from values, skipping empties.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add inserts a value, ignoring empties.
func (s StringSet) Add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

// Remove deletes a value.
func (s StringSet) Remove(v string) {
	delete(s, v)
}

// Values returns the members in unspecified order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Criteria are the record-table filter settings. Values within one
// dimension are OR'd; dimensions are AND'd. Empty string or set means no
// constraint.
type Criteria struct {
	Query      string    `json:"query"`
	QueryField string    `json:"query_field"` // "" or "all" searches every field
	Status     string    `json:"status"`      // "", "Found", "Unmatched"
	TypeSelect string    `json:"type_select"` // single-select raw service label
	Customers  StringSet `json:"customers"`
	Provinces  StringSet `json:"provinces"`
	Types      StringSet `json:"types"`
}

// NewCriteria returns empty criteria with allocated sets.
func NewCriteria() Criteria {
	return Criteria{
		Customers: NewStringSet(),
		Provinces: NewStringSet(),
		Types:     NewStringSet(),
	}
}

// SummaryCriteria are the summary view's filter settings, tracked
// independently from the record table's Criteria so the two views never
// leak filters into each other. The summary has no status toggle:
// unmatched records are always excluded.
type SummaryCriteria struct {
	Query     string    `json:"query"`
	Customers StringSet `json:"customers"`
	Provinces StringSet `json:"provinces"`
	Types     StringSet `json:"types"`
}

// NewSummaryCriteria returns empty summary criteria with allocated sets.
func NewSummaryCriteria() SummaryCriteria {
	return SummaryCriteria{
		Customers: NewStringSet(),
		Provinces: NewStringSet(),
		Types:     NewStringSet(),
	}
}
