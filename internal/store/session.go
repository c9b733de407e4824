// Package store holds the in-memory working set for the currently
// selected comparison job: the full record list, the independently
// tracked filter-criteria slices, and the view pagers. Derivations read
// snapshots of this state; nothing is persisted.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/model"
	"github.com/nt-noc/comparedash/pkg/compareapi"
)

// Default page steps for the incremental views.
const (
	JobsStep    = 50
	RecordsStep = 100
	SummaryStep = 100
)

// Session is the working state for one selected job. The record table and
// the summary view carry separate criteria on purpose: they are distinct
// state slices and must never share filter objects.
type Session struct {
	mu sync.Mutex

	client compareapi.Client

	jobID   int64
	hasJob  bool
	loadGen uint64
	records []model.Record

	recordCriteria  engine.Criteria
	summaryCriteria engine.SummaryCriteria
	reportProvinces engine.StringSet

	filteredCache []model.Record
	summaryCache  []engine.SummaryRow

	recordsPager *engine.Pager
	summaryPager *engine.Pager
}

// NewSession creates an empty session backed by the given API client.
func NewSession(client compareapi.Client) *Session {
	return &Session{
		client:          client,
		recordCriteria:  engine.NewCriteria(),
		summaryCriteria: engine.NewSummaryCriteria(),
		reportProvinces: engine.NewStringSet(),
		recordsPager:    engine.NewPager(RecordsStep),
		summaryPager:    engine.NewPager(SummaryStep),
	}
}

// Client exposes the backend client for operations outside the working
// set (job listing, admin).
func (s *Session) Client() compareapi.Client {
	return s.client
}

// CurrentJob returns the selected job id, or false when none is loaded.
func (s *Session) CurrentJob() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID, s.hasJob
}

// Records returns a snapshot of the full record list.
func (s *Session) Records() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// LoadJob fetches every record page for jobID and replaces the working
// set. The load is tagged with a generation: if another job is selected
// while pages are still in flight, the stale result is discarded instead
// of overwriting the newer job's state. On failure the previous working
// set is kept untouched.
func (s *Session) LoadJob(ctx context.Context, jobID int64) error {
	s.mu.Lock()
	s.jobID = jobID
	s.hasJob = true
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	records, err := s.client.RecordsAll(ctx, jobID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		zap.L().Warn("discarding stale record load",
			zap.Int64("job_id", jobID),
		)
		return nil
	}

	s.records = records
	s.recordCriteria = engine.NewCriteria()
	s.summaryCriteria = engine.NewSummaryCriteria()
	s.reportProvinces = engine.NewStringSet()
	s.recomputeLocked()

	zap.L().Info("job loaded",
		zap.Int64("job_id", jobID),
		zap.Int("records", len(records)),
	)
	return nil
}

// recomputeLocked re-derives both cached row sets and rewinds the pagers.
// Full recompute each time; the dataset is bounded and rendering is
// incremental.
func (s *Session) recomputeLocked() {
	s.filteredCache = engine.Filter(s.records, s.recordCriteria)
	s.summaryCache = engine.Summarize(s.records, s.summaryCriteria)
	s.recordsPager.Reset()
	s.summaryPager.Reset()
}

// SetRecordCriteria replaces the record-table criteria and re-derives the
// filtered view.
func (s *Session) SetRecordCriteria(c engine.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordCriteria = c
	s.filteredCache = engine.Filter(s.records, s.recordCriteria)
	s.recordsPager.Reset()
}

// SetSummaryCriteria replaces the summary criteria and re-derives the
// summary rows.
func (s *Session) SetSummaryCriteria(c engine.SummaryCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaryCriteria = c
	s.summaryCache = engine.Summarize(s.records, s.summaryCriteria)
	s.summaryPager.Reset()
}

// SetReportProvinces replaces the report's province allow-set.
func (s *Session) SetReportProvinces(provinces engine.StringSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportProvinces = provinces
}

// RecordCriteria returns the active record-table criteria.
func (s *Session) RecordCriteria() engine.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordCriteria
}

// SummaryCriteria returns the active summary criteria.
func (s *Session) SummaryCriteria() engine.SummaryCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryCriteria
}

// Filtered returns the cached filtered record list.
func (s *Session) Filtered() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredCache
}

// Summary returns the cached summary rows.
func (s *Session) Summary() []engine.SummaryRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryCache
}

// Report derives the report model from the full working set and the
// report province filter.
func (s *Session) Report() engine.ReportModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.BuildReport(s.records, s.reportProvinces)
}

// NextRecordsPage advances the records pager.
func (s *Session) NextRecordsPage() (rows []model.Record, shown, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows = engine.Next(s.recordsPager, s.filteredCache)
	return rows, s.recordsPager.Shown, len(s.filteredCache)
}

// NextSummaryPage advances the summary pager.
func (s *Session) NextSummaryPage() (rows []engine.SummaryRow, shown, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows = engine.Next(s.summaryPager, s.summaryCache)
	return rows, s.summaryPager.Shown, len(s.summaryCache)
}

// KPIs returns the headline counts over the filtered view.
func (s *Session) KPIs() engine.KPICounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Counts(s.filteredCache)
}

// Lookups returns the facet values for the record table.
func (s *Session) Lookups() engine.Lookups {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.BuildLookups(s.records)
}
