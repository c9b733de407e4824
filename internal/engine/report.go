package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/nt-noc/comparedash/internal/model"
)

// HotspotLimit caps the hotspot ranking.
const HotspotLimit = 5

// ProvinceCount is one entry of the per-province ranking.
type ProvinceCount struct {
	Province string `json:"province"`
	Count    int    `json:"count"`
}

// ServiceCounts are the global per-category totals. Other-classified
// records are not tallied here; they still count toward Circuits and the
// per-province totals. Kept as-is from the dashboard's categorization
// rule.
type ServiceCounts struct {
	Data      int `json:"data"`
	Broadband int `json:"broadband"`
	Voice     int `json:"voice"`
}

// Total sums the three tallied categories.
func (s ServiceCounts) Total() int {
	return s.Data + s.Broadband + s.Voice
}

// Hotspot is a province ranked by total affected volume with its service
// breakdown.
type Hotspot struct {
	Province  string `json:"province"`
	Total     int    `json:"total"`
	Data      int    `json:"data"`
	Broadband int    `json:"broadband"`
	Voice     int    `json:"voice"`
}

// ReportModel is the derived input for the report view, charts, and
// exports. It is built only from records with status "Found".
type ReportModel struct {
	Customers      int             `json:"customers"`
	Circuits       int             `json:"circuits"`
	Provinces      int             `json:"provinces"`
	ProvinceCounts []ProvinceCount `json:"province_counts"`
	ProvincesList  []string        `json:"provinces_list"`
	Services       ServiceCounts   `json:"services"`
	Hotspots       []Hotspot       `json:"hotspots"`
}

// BuildReport derives the report model from records with status "Found",
// optionally restricted to a province allow-set. Single pass; all
// rankings are computed afterward.
func BuildReport(records []model.Record, selectedProvinces StringSet) ReportModel {
	customers := NewStringSet()
	provinces := NewStringSet()
	provCounts := make(map[string]int)
	provSvc := make(map[string]*Hotspot)
	provOrder := make([]string, 0)

	var rep ReportModel

	for _, r := range records {
		if r.Status != model.StatusFound {
			continue
		}
		prov := model.Display(r.Province)
		if len(selectedProvinces) > 0 && !selectedProvinces.Has(prov) {
			continue
		}

		rep.Circuits++

		if cust := model.NormString(r.Customer); cust != "" {
			customers.Add(cust)
		}

		provinces.Add(prov)
		provCounts[prov]++
		h, ok := provSvc[prov]
		if !ok {
			h = &Hotspot{Province: prov}
			provSvc[prov] = h
			provOrder = append(provOrder, prov)
		}
		h.Total++

		switch r.Category() {
		case model.ServiceData:
			rep.Services.Data++
			h.Data++
		case model.ServiceBroadband:
			rep.Services.Broadband++
			h.Broadband++
		case model.ServiceVoice:
			rep.Services.Voice++
			h.Voice++
		}
	}

	rep.Customers = len(customers)
	rep.Provinces = len(provinces)

	rep.ProvinceCounts = make([]ProvinceCount, 0, len(provCounts))
	for prov, n := range provCounts {
		rep.ProvinceCounts = append(rep.ProvinceCounts, ProvinceCount{Province: prov, Count: n})
	}
	sort.SliceStable(rep.ProvinceCounts, func(i, k int) bool {
		a, b := rep.ProvinceCounts[i], rep.ProvinceCounts[k]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return model.Less(a.Province, b.Province)
	})

	rep.ProvincesList = provinces.Values()
	model.SortStrings(rep.ProvincesList)

	// Hotspots keep first-seen order on equal totals.
	rep.Hotspots = make([]Hotspot, 0, len(provOrder))
	for _, prov := range provOrder {
		rep.Hotspots = append(rep.Hotspots, *provSvc[prov])
	}
	sort.SliceStable(rep.Hotspots, func(i, k int) bool {
		return rep.Hotspots[i].Total > rep.Hotspots[k].Total
	})
	if len(rep.Hotspots) > HotspotLimit {
		rep.Hotspots = rep.Hotspots[:HotspotLimit]
	}

	return rep
}

// Percent rounds part/total to the nearest whole percent, with a
// zero-total guard.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// TopService returns the largest tallied category and its share of the
// tallied total. Ties resolve in Data, Broadband, Voice order.
func (m ReportModel) TopService() (name string, count, pct int) {
	pairs := []struct {
		name  string
		count int
	}{
		{string(model.ServiceData), m.Services.Data},
		{string(model.ServiceBroadband), m.Services.Broadband},
		{string(model.ServiceVoice), m.Services.Voice},
	}
	sort.SliceStable(pairs, func(i, k int) bool { return pairs[i].count > pairs[k].count })
	top := pairs[0]
	return top.name, top.count, Percent(top.count, m.Services.Total())
}

// TopProvince returns the leading province and its share of all surviving
// circuits, or ok=false when the report is empty.
func (m ReportModel) TopProvince() (pc ProvinceCount, pct int, ok bool) {
	if len(m.ProvinceCounts) == 0 {
		return ProvinceCount{}, 0, false
	}
	pc = m.ProvinceCounts[0]
	return pc, Percent(pc.Count, m.Circuits), true
}

// Narrative is the one-line report footer shown under the charts.
func (m ReportModel) Narrative() string {
	svcName, _, svcPct := m.TopService()
	s := fmt.Sprintf("Top Service: %s (%d%%)", svcName, svcPct)
	if pc, pct, ok := m.TopProvince(); ok {
		s += fmt.Sprintf(" • Top Province: %s (%d) • %d%%", pc.Province, pc.Count, pct)
	} else {
		s += " • Top Province: " + model.Placeholder
	}
	return s
}
