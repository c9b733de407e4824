package engine

import (
	"sort"
	"strings"

	"github.com/nt-noc/comparedash/internal/model"
)

// SummaryRow is one aggregated line of the summary view, uniquely keyed
// by (Customer, Province, ServiceType) after normalization.
type SummaryRow struct {
	Customer        string `json:"customer"`
	Province        string `json:"province"`
	ServiceType     string `json:"service_type"`
	CircuitCount    int    `json:"circuit_count"`
	CircuitListText string `json:"circuit_list_text"`
}

type summaryGroup struct {
	customer string
	province string
	svcType  string
	circuits StringSet
}

// Summarize groups matched records by (customer, province, service type)
// and rolls up distinct circuit identifiers per group. Records whose
// status normalizes to "unmatched" are always excluded, regardless of
// criteria — the summary counts circuits that exist, not the filter
// toggle. CircuitCount is distinct-circuit cardinality, never a row
// count: duplicate circuit rows within a group collapse to one.
func Summarize(records []model.Record, c SummaryCriteria) []SummaryRow {
	q := strings.ToLower(strings.TrimSpace(c.Query))

	groups := make(map[string]*summaryGroup)
	order := make([]string, 0)

	for _, r := range records {
		if r.IsUnmatched() {
			continue
		}

		cust := model.Display(r.Customer)
		prov := model.Display(r.Province)
		svc := r.ServiceLabel()
		svcType := model.Placeholder
		if svc != "" {
			svcType = string(model.Categorize(svc))
		}

		if len(c.Customers) > 0 && !c.Customers.Has(cust) {
			continue
		}
		if len(c.Provinces) > 0 && !c.Provinces.Has(prov) {
			continue
		}
		if len(c.Types) > 0 && !c.Types.Has(svcType) {
			continue
		}
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{
				cust, prov, svcType, r.Circuit(),
				model.NormString(r.Project), model.NormString(r.Branch),
				model.NormString(r.SLA), model.NormString(r.Status),
			}, " "))
			if !strings.Contains(hay, q) {
				continue
			}
		}

		key := cust + "|" + prov + "|" + svcType
		g, ok := groups[key]
		if !ok {
			g = &summaryGroup{customer: cust, province: prov, svcType: svcType, circuits: NewStringSet()}
			groups[key] = g
			order = append(order, key)
		}
		g.circuits.Add(r.Circuit())
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		circuits := g.circuits.Values()
		model.SortStrings(circuits)
		rows = append(rows, SummaryRow{
			Customer:        g.customer,
			Province:        g.province,
			ServiceType:     g.svcType,
			CircuitCount:    len(circuits),
			CircuitListText: strings.Join(circuits, ", "),
		})
	}

	sort.SliceStable(rows, func(i, k int) bool {
		a, b := rows[i], rows[k]
		if a.Customer != b.Customer {
			return model.Less(a.Customer, b.Customer)
		}
		if a.Province != b.Province {
			return model.Less(a.Province, b.Province)
		}
		return model.Less(a.ServiceType, b.ServiceType)
	})

	return rows
}

// SummaryLookups collects facet values for the summary view. Unlike the
// record table's lookups, the type dimension carries categorized labels
// and unmatched records are skipped entirely.
func SummaryLookups(records []model.Record) Lookups {
	custs := NewStringSet()
	provs := NewStringSet()
	types := NewStringSet()
	for _, r := range records {
		if r.IsUnmatched() {
			continue
		}
		custs.Add(model.NormString(r.Customer))
		provs.Add(model.NormString(r.Province))
		if svc := r.ServiceLabel(); svc != "" {
			types.Add(string(model.Categorize(svc)))
		}
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
