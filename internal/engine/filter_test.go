package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nt-noc/comparedash/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Customer: "Acme", Province: "Bangkok", ServiceCategory: "Data Service", CircuitNumber: "C1", Status: "Found"},
		{Customer: "Beta", Province: "Chiang Mai", ServiceCategory: "Broadband", CircuitNumber: "C2", Status: "Found"},
		{Customer: "Acme", Province: "Bangkok", ServiceCategory: "Voice Trunk", CircuitNumber: "C3", Status: "Unmatched"},
		{Customer: "Gamma", Province: "Phuket", ServiceCategory: "Data Service", CircuitNumber: "C4", Status: "Unmatched"},
		{Customer: "Delta", Province: "Bangkok", ServiceCategory: "Colocation", CircuitNumber: "C5", Status: "Pending"},
	}
}

func TestFilterEmptyCriteriaReturnsAll(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, NewCriteria())
	assert.Equal(t, records, got)
}

func TestFilterPreservesOrderAndSubset(t *testing.T) {
	records := sampleRecords()
	c := NewCriteria()
	c.Provinces = NewStringSet("Bangkok")

	got := Filter(records, c)
	require.Len(t, got, 3)
	assert.Equal(t, "C1", got[0].CircuitNumber)
	assert.Equal(t, "C3", got[1].CircuitNumber)
	assert.Equal(t, "C5", got[2].CircuitNumber)
}

func TestFilterIdempotent(t *testing.T) {
	records := sampleRecords()
	c := NewCriteria()
	c.Status = "Found"
	c.Query = "a"

	once := Filter(records, c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestFilterStatus(t *testing.T) {
	records := sampleRecords()

	c := NewCriteria()
	c.Status = "Found"
	got := Filter(records, c)
	require.Len(t, got, 2)

	// Unknown statuses never match an active status filter...
	c.Status = "Unmatched"
	got = Filter(records, c)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "Unmatched", r.Status)
	}

	// ...but are included when the filter is inactive.
	c.Status = ""
	assert.Len(t, Filter(records, c), 5)
}

func TestFilterDimensionsANDedValuesORed(t *testing.T) {
	records := sampleRecords()

	c := NewCriteria()
	c.Provinces = NewStringSet("Bangkok", "Phuket")
	got := Filter(records, c)
	assert.Len(t, got, 4)

	// Adding a customer constraint ANDs across dimensions.
	c.Customers = NewStringSet("Acme")
	got = Filter(records, c)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "Acme", r.Customer)
	}
}

func TestFilterTypeSingleSelect(t *testing.T) {
	c := NewCriteria()
	c.TypeSelect = "Data Service"
	got := Filter(sampleRecords(), c)
	require.Len(t, got, 2)
	assert.Equal(t, "C1", got[0].CircuitNumber)
	assert.Equal(t, "C4", got[1].CircuitNumber)
}

func TestFilterQuery(t *testing.T) {
	c := NewCriteria()
	c.Query = "chiang"
	got := Filter(sampleRecords(), c)
	require.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Customer)

	c.Query = "beta"
	c.QueryField = "province"
	assert.Empty(t, Filter(sampleRecords(), c))
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, NewCriteria()))
}

func TestCounts(t *testing.T) {
	k := Counts(sampleRecords())
	assert.Equal(t, 5, k.All)
	assert.Equal(t, 2, k.Found)
	assert.Equal(t, 2, k.Unmatched)
}

func TestBuildLookups(t *testing.T) {
	lk := BuildLookups(sampleRecords())
	assert.Equal(t, []string{"Acme", "Beta", "Delta", "Gamma"}, lk.Customers)
	assert.Equal(t, []string{"Bangkok", "Chiang Mai", "Phuket"}, lk.Provinces)
	assert.Len(t, lk.Types, 4)
}
