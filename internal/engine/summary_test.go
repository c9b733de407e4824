package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nt-noc/comparedash/internal/model"
)

func TestSummarizeExcludesUnmatchedAlways(t *testing.T) {
	records := []model.Record{
		{Customer: "A", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C1", Status: "Found"},
		{Customer: "A", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C2", Status: "Unmatched"},
		{Customer: "A", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C3", Status: "UNMATCHED"},
		{Customer: "A", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C4", Status: " unmatched "},
	}

	rows := Summarize(records, NewSummaryCriteria())
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].CircuitCount)
	assert.Equal(t, "C1", rows[0].CircuitListText)
}

func TestSummarizeDistinctCircuitCount(t *testing.T) {
	// Two rows sharing a circuit id in the same group collapse to one.
	records := []model.Record{
		{Customer: "A", Province: "BKK", ServiceCategory: "Data Service", CircuitNumber: "C1", Status: "Found"},
		{Customer: "A", Province: "BKK", ServiceCategory: "Data Service", CircuitNumber: "C1", Status: "Found"},
		{Customer: "A", Province: "BKK", ServiceCategory: "Data Service", CircuitNumber: "C2", Status: "Found"},
	}

	rows := Summarize(records, NewSummaryCriteria())
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].CircuitCount)
	assert.Equal(t, "C1, C2", rows[0].CircuitListText)
}

func TestSummarizeGroupingAndPlaceholders(t *testing.T) {
	records := []model.Record{
		{Customer: "A", Province: "BKK", ServiceCategory: "Data Service", CircuitNumber: "C1", Status: "Found"},
		{Customer: "A", Province: "CM", ServiceCategory: "Data Service", CircuitNumber: "C2", Status: "Found"},
		{Province: "BKK", ServiceCategory: "Voice", CircuitNumber: "C3", Status: "Found"},
		{Customer: "A", Province: "BKK", CircuitNumber: "C4", Status: "Found"},
	}

	rows := Summarize(records, NewSummaryCriteria())
	require.Len(t, rows, 4)

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Customer+"|"+row.Province+"|"+row.ServiceType)
	}
	assert.ElementsMatch(t, []string{
		"A|BKK|Data",
		"A|CM|Data",
		model.Placeholder + "|BKK|Voice",
		"A|BKK|" + model.Placeholder,
	}, keys)

	// Within a customer the province ordering is stable and ascending.
	var aProvinces []string
	for _, row := range rows {
		if row.Customer == "A" && row.ServiceType == "Data" {
			aProvinces = append(aProvinces, row.Province)
		}
	}
	assert.Equal(t, []string{"BKK", "CM"}, aProvinces)
}

func TestSummarizeCriteriaSets(t *testing.T) {
	records := []model.Record{
		{Customer: "A", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C1", Status: "Found"},
		{Customer: "B", Province: "BKK", ServiceCategory: "Voice", CircuitNumber: "C2", Status: "Found"},
		{Customer: "A", Province: "CM", ServiceCategory: "Data", CircuitNumber: "C3", Status: "Found"},
	}

	c := NewSummaryCriteria()
	c.Customers = NewStringSet("A")
	c.Provinces = NewStringSet("BKK")

	rows := Summarize(records, c)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Customer)
	assert.Equal(t, "BKK", rows[0].Province)

	// Type filter keys on categorized labels.
	c = NewSummaryCriteria()
	c.Types = NewStringSet("Voice")
	rows = Summarize(records, c)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Customer)
}

func TestSummarizeQuery(t *testing.T) {
	records := []model.Record{
		{Customer: "Acme", Province: "BKK", ServiceCategory: "Data", CircuitNumber: "C1", Status: "Found"},
		{Customer: "Beta", Province: "CM", ServiceCategory: "Data", CircuitNumber: "C2", Status: "Found"},
	}

	c := NewSummaryCriteria()
	c.Query = "acme"

	rows := Summarize(records, c)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Customer)
}

func TestSummarizeScenario(t *testing.T) {
	records := []model.Record{
		{Customer: "A", Province: "BKK", Type: "Data Service", Status: "Found", CircuitRaw: "1"},
		{Customer: "A", Province: "BKK", Type: "Data Service", Status: "Found", CircuitRaw: "1"},
		{Customer: "B", Province: "CM", Type: "Voice", Status: "Unmatched", CircuitRaw: "2"},
	}

	rows := Summarize(records, NewSummaryCriteria())
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Customer)
	assert.Equal(t, "BKK", rows[0].Province)
	assert.Equal(t, "Data", rows[0].ServiceType)
	assert.Equal(t, 1, rows[0].CircuitCount)
}

func TestSummaryLookups(t *testing.T) {
	records := []model.Record{
		{Customer: "A", Province: "BKK", ServiceCategory: "Data Service", Status: "Found"},
		{Customer: "B", Province: "CM", ServiceCategory: "Voice", Status: "Unmatched"},
	}

	lk := SummaryLookups(records)
	assert.Equal(t, []string{"A"}, lk.Customers)
	assert.Equal(t, []string{"BKK"}, lk.Provinces)
	assert.Equal(t, []string{"Data"}, lk.Types)
}
