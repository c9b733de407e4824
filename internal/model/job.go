package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Bangkok is the display timezone for job timestamps.
var Bangkok = time.FixedZone("ICT", 7*60*60)

// Job is one server-side comparison run between a master and a compare
// dataset.
type Job struct {
	JobID          int64  `json:"job_id"`
	CreatedAt      string `json:"created_at"`
	Pinned         bool   `json:"pinned"`
	TotalRecords   int    `json:"total_records"`
	MatchedTotal   int    `json:"matched_total"`
	UnmatchedTotal int    `json:"unmatched_total"`
}

// ParseAPITime parses a backend timestamp. The API normally emits ISO8601
// with a trailing Z, but older rows come back as "2006-01-02 15:04:05"
// with no zone; naive timestamps are taken as UTC.
func ParseAPITime(s string) (time.Time, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if len(t) >= 19 && t[10] == ' ' {
		t = t[:10] + "T" + t[11:]
	}
	if ts, err := time.Parse(time.RFC3339, t); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", t); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Created returns the parsed creation time and whether it was valid.
func (j Job) Created() (time.Time, bool) {
	ts, err := ParseAPITime(j.CreatedAt)
	return ts, err == nil
}

// CreatedDisplay formats the creation time in Bangkok local time, or a
// dash when the timestamp is unparseable.
func (j Job) CreatedDisplay() string {
	ts, ok := j.Created()
	if !ok {
		return "-"
	}
	return ts.In(Bangkok).Format("2006-01-02 15:04:05")
}

// FilterJobsByRange keeps jobs created within [from, to]. Zero bounds are
// open. Jobs with unparseable timestamps are dropped whenever a bound is
// active.
func FilterJobsByRange(jobs []Job, from, to time.Time) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		ts, ok := j.Created()
		if !from.IsZero() && (!ok || ts.Before(from)) {
			continue
		}
		if !to.IsZero() && (!ok || ts.After(to)) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// SortJobs orders jobs pinned-first, then newest-first, with ties broken
// by larger job id. Unparseable timestamps sort last within their pin
// group.
func SortJobs(jobs []Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		a, b := jobs[i], jobs[k]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		at, aok := a.Created()
		bt, bok := b.Created()
		switch {
		case aok && !bok:
			return true
		case !aok && bok:
			return false
		case aok && bok && !at.Equal(bt):
			return at.After(bt)
		}
		return a.JobID > b.JobID
	})
}
