// Package compareapi wraps the comparison backend's REST API: job listing,
// paged record retrieval, uploads, pinning, and admin operations.
package compareapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/nt-noc/comparedash/internal/model"
)

// DefaultPageSize is the record page size used by the sequential fetch
// loop. Matches the dashboard's request size.
const DefaultPageSize = 10000

// BulkDeleteResult reports the outcome of an admin bulk delete.
type BulkDeleteResult struct {
	Deleted []int64                  `json:"deleted"`
	Skipped []map[string]interface{} `json:"skipped"`
}

// Client defines the backend operations the dashboard consumes.
type Client interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	Records(ctx context.Context, jobID int64, page, pageSize int) ([]model.Record, error)
	RecordsAll(ctx context.Context, jobID int64) ([]model.Record, error)
	UploadCompare(ctx context.Context, masterPath, comparePath string) error
	AdminCheck(ctx context.Context, token string) (bool, error)
	TogglePin(ctx context.Context, jobID int64, pinned bool) error
	BulkDelete(ctx context.Context, token string, jobIDs []int64) (*BulkDeleteResult, error)
	SummaryExportURL(jobID int64) string
}

// ClientOption configures the HTTP client.
type ClientOption func(*httpClient)

// WithTimeout overrides the default 60s request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithPageSize overrides the record page size for RecordsAll.
func WithPageSize(n int) ClientOption {
	return func(c *httpClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRateLimit overrides the default request throttle (10 req/s).
func WithRateLimit(rps float64) ClientOption {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// WithHTTPClient swaps the underlying *http.Client (tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *httpClient) { c.http = h }
}

// httpClient implements Client against a base URL.
type httpClient struct {
	base     string
	http     *http.Client
	limiter  *rate.Limiter
	pageSize int
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) Client {
	c := &httpClient{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 60 * time.Second},
		limiter:  rate.NewLimiter(10, 10),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// apiError extracts the backend's failure message: JSON {detail} when
// present, raw body text otherwise, "HTTP <status>" as the last resort.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		msg = payload.Detail
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return eris.New(msg)
}

// doJSON issues a request and decodes a 2xx JSON response into out.
func (c *httpClient) doJSON(ctx context.Context, method, path string, headers map[string]string, body io.Reader, contentType string, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "compareapi: rate limit")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return eris.Wrap(err, "compareapi: build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("compareapi: %s %s", method, path))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrap(err, fmt.Sprintf("compareapi: decode %s", path))
	}
	return nil
}

func (c *httpClient) ListJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.doJSON(ctx, http.MethodGet, "/jobs", nil, nil, "", &jobs); err != nil {
		return nil, eris.Wrap(err, "compareapi: list jobs")
	}
	return jobs, nil
}

func (c *httpClient) Records(ctx context.Context, jobID int64, page, pageSize int) ([]model.Record, error) {
	path := fmt.Sprintf("/jobs/%d/records?page=%d&page_size=%d", jobID, page, pageSize)
	var records []model.Record
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, "", &records); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("compareapi: records page %d", page))
	}
	return records, nil
}

// RecordsAll fetches every record page for a job in a strict sequential
// loop, stopping on the first short or empty page. A failed page fetch
// aborts the whole load; nothing partial is returned.
func (c *httpClient) RecordsAll(ctx context.Context, jobID int64) ([]model.Record, error) {
	var all []model.Record
	for page := 1; ; page++ {
		records, err := c.Records(ctx, jobID, page, c.pageSize)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
		if len(records) < c.pageSize {
			break
		}
	}
	return all, nil
}

// UploadCompare posts the compare dataset (and optionally a master
// dataset) as multipart form files, triggering a server-side comparison.
func (c *httpClient) UploadCompare(ctx context.Context, masterPath, comparePath string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	addFile := func(field, path string) error {
		f, err := os.Open(path)
		if err != nil {
			return eris.Wrap(err, fmt.Sprintf("compareapi: open %s", path))
		}
		defer f.Close()
		part, err := w.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			return eris.Wrap(err, "compareapi: create form file")
		}
		if _, err := io.Copy(part, f); err != nil {
			return eris.Wrap(err, fmt.Sprintf("compareapi: read %s", path))
		}
		return nil
	}

	if masterPath != "" {
		if err := addFile("master_file", masterPath); err != nil {
			return err
		}
	}
	if err := addFile("compare_file", comparePath); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return eris.Wrap(err, "compareapi: finalize multipart")
	}

	if err := c.doJSON(ctx, http.MethodPost, "/compare-upload", nil, &buf, w.FormDataContentType(), nil); err != nil {
		return eris.Wrap(err, "compareapi: upload")
	}
	return nil
}

// AdminCheck validates an admin token. Any failure reports false without
// an error: admin mode silently stays off.
func (c *httpClient) AdminCheck(ctx context.Context, token string) (bool, error) {
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/admin/check", map[string]string{"X-Admin-Token": token}, nil, "", &out)
	if err != nil {
		return false, nil
	}
	return out.OK, nil
}

func (c *httpClient) TogglePin(ctx context.Context, jobID int64, pinned bool) error {
	body, _ := json.Marshal(map[string]bool{"pinned": pinned})
	path := fmt.Sprintf("/jobs/%d/pin", jobID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("compareapi: pin job %d", jobID))
	}
	return nil
}

func (c *httpClient) BulkDelete(ctx context.Context, token string, jobIDs []int64) (*BulkDeleteResult, error) {
	body, _ := json.Marshal(map[string][]int64{"job_ids": jobIDs})
	var out BulkDeleteResult
	headers := map[string]string{"X-Admin-Token": token}
	if err := c.doJSON(ctx, http.MethodDelete, "/admin/jobs/bulk", headers, bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, eris.Wrap(err, "compareapi: bulk delete")
	}
	return &out, nil
}

// SummaryExportURL returns the server-side summary export address; the
// file is fetched by navigation, not by this client.
func (c *httpClient) SummaryExportURL(jobID int64) string {
	return c.base + "/export/summary?job_id=" + url.QueryEscape(fmt.Sprintf("%d", jobID))
}
