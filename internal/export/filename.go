// Package export produces the client-side export artifacts: view-specific
// spreadsheets, the report raster (PNG), and its PDF wrapper.
package export

import (
	"fmt"
	"time"
)

// Spreadsheet filename prefixes, one per exported view.
const (
	PrefixReportSummary = "compare_report_summary"
	PrefixSummaryWeb    = "compare_summary_web"
	PrefixRecords       = "compare_records"
)

// TimeTag formats a timestamp for export filenames (YYYYMMDD_HHMM).
func TimeTag(t time.Time) string {
	return t.Format("20060102_1504")
}

// JobTag renders the job id for filenames, "latest" when no job is
// selected.
func JobTag(jobID int64, hasJob bool) string {
	if !hasJob {
		return "latest"
	}
	return fmt.Sprintf("%d", jobID)
}

// Filename assembles {prefix}_{job}_{timestamp}{ext}.
func Filename(prefix, jobTag string, t time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s%s", prefix, jobTag, TimeTag(t), ext)
}
