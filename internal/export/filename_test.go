package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeTag(t *testing.T) {
	ts := time.Date(2025, 6, 1, 17, 30, 45, 0, time.UTC)
	assert.Equal(t, "20250601_1730", TimeTag(ts))
}

func TestJobTag(t *testing.T) {
	assert.Equal(t, "42", JobTag(42, true))
	assert.Equal(t, "latest", JobTag(42, false))
	assert.Equal(t, "latest", JobTag(0, false))
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "compare_report_summary_7_20250601_0905.xlsx",
		Filename(PrefixReportSummary, "7", ts, ".xlsx"))
	assert.Equal(t, "compare_records_latest_20250601_0905.xlsx",
		Filename(PrefixRecords, JobTag(0, false), ts, ".xlsx"))
}
