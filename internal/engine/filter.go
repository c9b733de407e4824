package engine

import (
	"github.com/nt-noc/comparedash/internal/model"
)

// Filter returns the records passing every active criterion, preserving
// input order. Predicates run cheapest-first and short-circuit on the
// first miss: status, single-select type, membership sets, free-text
// query.
func Filter(records []model.Record, c Criteria) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if c.Status != "" && r.Status != c.Status {
			continue
		}
		if c.TypeSelect != "" && r.ServiceLabel() != c.TypeSelect {
			continue
		}
		if len(c.Customers) > 0 && !c.Customers.Has(model.NormString(r.Customer)) {
			continue
		}
		if len(c.Provinces) > 0 && !c.Provinces.Has(model.NormString(r.Province)) {
			continue
		}
		if len(c.Types) > 0 && !c.Types.Has(r.ServiceLabel()) {
			continue
		}
		if !r.MatchesQuery(c.Query, c.QueryField) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// KPICounts are the record-table headline counts over a filtered view.
type KPICounts struct {
	All       int `json:"all"`
	Found     int `json:"found"`
	Unmatched int `json:"unmatched"`
}

// Counts tallies the KPI cards for a filtered record list.
func Counts(records []model.Record) KPICounts {
	k := KPICounts{All: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusFound:
			k.Found++
		case model.StatusUnmatched:
			k.Unmatched++
		}
	}
	return k
}

// Lookups are the distinct normalized values per filter dimension,
// sorted, used to populate facet pickers.
type Lookups struct {
	Customers []string `json:"customers"`
	Provinces []string `json:"provinces"`
	Types     []string `json:"types"`
}

// BuildLookups collects the distinct customers, provinces, and raw
// service labels present in records.
func BuildLookups(records []model.Record) Lookups {
	custs := NewStringSet()
	provs := NewStringSet()
	types := NewStringSet()
	for _, r := range records {
		custs.Add(model.NormString(r.Customer))
		provs.Add(model.NormString(r.Province))
		types.Add(r.ServiceLabel())
	}
	lk := Lookups{
		Customers: custs.Values(),
		Provinces: provs.Values(),
		Types:     types.Values(),
	}
	model.SortStrings(lk.Customers)
	model.SortStrings(lk.Provinces)
	model.SortStrings(lk.Types)
	return lk
}
