package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPITime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "iso8601 with Z",
			input: "2025-06-01T10:30:00Z",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "space separated naive treated as UTC",
			input: "2025-06-01 10:30:00",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "explicit offset",
			input: "2025-06-01T17:30:00+07:00",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAPITime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestCreatedDisplayBangkok(t *testing.T) {
	j := Job{CreatedAt: "2025-06-01T10:30:00Z"}
	assert.Equal(t, "2025-06-01 17:30:00", j.CreatedDisplay())

	assert.Equal(t, "-", Job{CreatedAt: "invalid"}.CreatedDisplay())
}

func TestFilterJobsByRange(t *testing.T) {
	jobs := []Job{
		{JobID: 1, CreatedAt: "2025-06-01T00:00:00Z"},
		{JobID: 2, CreatedAt: "2025-06-15T00:00:00Z"},
		{JobID: 3, CreatedAt: "2025-06-30T00:00:00Z"},
		{JobID: 4, CreatedAt: "bogus"},
	}

	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	got := FilterJobsByRange(jobs, from, to)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].JobID)

	// Open bounds keep everything, including unparseable timestamps.
	assert.Len(t, FilterJobsByRange(jobs, time.Time{}, time.Time{}), 4)

	// Any active bound drops unparseable timestamps.
	got = FilterJobsByRange(jobs, from, time.Time{})
	assert.Len(t, got, 2)
}

func TestSortJobs(t *testing.T) {
	jobs := []Job{
		{JobID: 1, CreatedAt: "2025-06-10T00:00:00Z", Pinned: false},
		{JobID: 2, CreatedAt: "2025-06-20T00:00:00Z", Pinned: false},
		{JobID: 3, CreatedAt: "2025-06-05T00:00:00Z", Pinned: true},
		{JobID: 4, CreatedAt: "2025-06-20T00:00:00Z", Pinned: false},
		{JobID: 5, CreatedAt: "bogus", Pinned: false},
	}

	SortJobs(jobs)

	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.JobID)
	}

	// Pinned first regardless of age; then newest first; equal timestamps
	// break by larger job id; unparseable timestamps sort last.
	assert.Equal(t, []int64{3, 4, 2, 1, 5}, ids)
}
