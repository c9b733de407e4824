package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSetBasics(t *testing.T) {
	s := NewStringSet("a", "b", "", "a")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	s.Add("")
	assert.True(t, s.Has("c"))
	assert.Len(t, s, 3)

	s.Remove("a")
	assert.False(t, s.Has("a"))
	assert.ElementsMatch(t, []string{"b", "c"}, s.Values())
}

func TestStringSetJSONRoundTrip(t *testing.T) {
	s := NewStringSet("BKK", "CM", "Phuket")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["BKK","CM","Phuket"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

func TestStringSetUnmarshalRejectsNonArray(t *testing.T) {
	var s StringSet
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestCriteriaJSON(t *testing.T) {
	body := `{
		"query": "acme",
		"query_field": "customer",
		"status": "Found",
		"customers": ["Acme"],
		"provinces": [],
		"types": ["Data", "Voice"]
	}`

	var c Criteria
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, "acme", c.Query)
	assert.Equal(t, "customer", c.QueryField)
	assert.Equal(t, "Found", c.Status)
	assert.True(t, c.Customers.Has("Acme"))
	assert.Empty(t, c.Provinces)
	assert.Len(t, c.Types, 2)
}

func TestNewCriteriaSetsAllocated(t *testing.T) {
	c := NewCriteria()
	c.Customers.Add("A")
	assert.True(t, c.Customers.Has("A"))

	sc := NewSummaryCriteria()
	sc.Types.Add("Data")
	assert.True(t, sc.Types.Has("Data"))
}
