package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nt-noc/comparedash/internal/engine"
	"github.com/nt-noc/comparedash/internal/export"
	"github.com/nt-noc/comparedash/internal/model"
	"github.com/nt-noc/comparedash/internal/store"
)

// serveState wires the shared session to the HTTP handlers. Filter
// updates land in pending slots and are applied by per-view debouncers;
// view reads flush first, so the debounce only bounds recompute
// frequency and never serves stale criteria.
type serveState struct {
	session *store.Session

	pendingRecords  chan engine.Criteria
	pendingSummary  chan engine.SummaryCriteria
	recordsDebounce *store.Debouncer
	summaryDebounce *store.Debouncer
}

func newServeState(session *store.Session) *serveState {
	s := &serveState{
		session:        session,
		pendingRecords: make(chan engine.Criteria, 1),
		pendingSummary: make(chan engine.SummaryCriteria, 1),
	}
	s.recordsDebounce = store.NewDebouncer(store.DebounceInterval, s.applyPendingRecords)
	s.summaryDebounce = store.NewDebouncer(store.DebounceInterval, s.applyPendingSummary)
	return s
}

func (s *serveState) applyPendingRecords() {
	select {
	case c := <-s.pendingRecords:
		s.session.SetRecordCriteria(c)
	default:
	}
}

func (s *serveState) applyPendingSummary() {
	select {
	case c := <-s.pendingSummary:
		s.session.SetSummaryCriteria(c)
	default:
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *serveState) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *serveState) handleJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.session.Client().ListJobs(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	from, to, err := parseJobRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	jobs = model.FilterJobsByRange(jobs, from, to)
	model.SortJobs(jobs)

	writeJSON(w, http.StatusOK, jobs)
}

func (s *serveState) handleSelectJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	// Load asynchronously; the session's generation tag discards this
	// result if another job is selected before it completes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.session.LoadJob(ctx, jobID); err != nil {
			zap.L().Error("job load failed",
				zap.Int64("job_id", jobID),
				zap.Error(err),
			)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"status": "loading", "job_id": jobID})
}

func (s *serveState) handleSetRecordFilters(w http.ResponseWriter, r *http.Request) {
	c := engine.NewCriteria()
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid criteria body")
		return
	}
	select {
	case s.pendingRecords <- c:
	default:
		<-s.pendingRecords
		s.pendingRecords <- c
	}
	s.recordsDebounce.Trigger()
	writeJSON(w, http.StatusOK, map[string]string{"status": "scheduled"})
}

func (s *serveState) handleSetSummaryFilters(w http.ResponseWriter, r *http.Request) {
	c := engine.NewSummaryCriteria()
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid criteria body")
		return
	}
	select {
	case s.pendingSummary <- c:
	default:
		<-s.pendingSummary
		s.pendingSummary <- c
	}
	s.summaryDebounce.Trigger()
	writeJSON(w, http.StatusOK, map[string]string{"status": "scheduled"})
}

func (s *serveState) handleSetReportFilters(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provinces engine.StringSet `json:"provinces"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid provinces body")
		return
	}
	if body.Provinces == nil {
		body.Provinces = engine.NewStringSet()
	}
	s.session.SetReportProvinces(body.Provinces)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *serveState) handleRecordsView(w http.ResponseWriter, r *http.Request) {
	s.recordsDebounce.Flush()

	rows, shown, total := s.session.NextRecordsPage()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"shown": shown,
		"total": total,
		"done":  shown >= total,
		"kpis":  s.session.KPIs(),
	})
}

func (s *serveState) handleSummaryView(w http.ResponseWriter, r *http.Request) {
	s.summaryDebounce.Flush()

	rows, shown, total := s.session.NextSummaryPage()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"shown": shown,
		"total": total,
		"done":  shown >= total,
	})
}

func (s *serveState) handleReportView(w http.ResponseWriter, r *http.Request) {
	rep := s.session.Report()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"report":    rep,
		"narrative": rep.Narrative(),
	})
}

func (s *serveState) handleLookups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": s.session.Lookups(),
		"summary": engine.SummaryLookups(s.session.Records()),
	})
}

// handleExportXLSX streams the spreadsheet for ?view=report|summary|records.
func (s *serveState) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.recordsDebounce.Flush()
	s.summaryDebounce.Flush()

	jobID, hasJob := s.session.CurrentJob()
	jobTag := export.JobTag(jobID, hasJob)
	now := time.Now()

	var buf bytes.Buffer
	var name string
	var err error
	switch r.URL.Query().Get("view") {
	case "report":
		name = export.Filename(export.PrefixReportSummary, jobTag, now, ".xlsx")
		err = export.WriteReportXLSX(&buf, s.session.Report())
	case "summary":
		name = export.Filename(export.PrefixSummaryWeb, jobTag, now, ".xlsx")
		err = export.WriteSummaryXLSX(&buf, s.session.Summary())
	default:
		name = export.Filename(export.PrefixRecords, jobTag, now, ".xlsx")
		err = export.WriteRecordsXLSX(&buf, s.session.Filtered())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *serveState) renderRaster() ([]byte, error) {
	var buf bytes.Buffer
	if err := export.RenderReportPNG(&buf, s.session.Report(), export.GoChartRenderer{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *serveState) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	raster, err := s.renderRaster()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jobID, hasJob := s.session.CurrentJob()
	name := export.Filename("report", export.JobTag(jobID, hasJob), time.Now(), ".png")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(raster)
}

func (s *serveState) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	raster, err := s.renderRaster()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := export.WriteReportPDF(&buf, raster); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jobID, hasJob := s.session.CurrentJob()
	name := export.Filename("report", export.JobTag(jobID, hasJob), time.Now(), ".pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(buf.Bytes())
}
