// Package client implements the engine's persistence adapter over the
// page store's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pagegrid/pagegrid/internal/grid"
)

// Client talks to the page store API and satisfies grid.Adapter.
// Transport and non-2xx failures are reported as *grid.FetchError so
// the engine can degrade instead of crashing.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ grid.Adapter = (*Client)(nil)

// New creates a client for the API at baseURL (no trailing slash needed).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client,
// for tests and callers that need custom transports.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// snapshotPayload mirrors the server's dataset wire form.
type snapshotPayload struct {
	Rows    []grid.Row `json:"rows"`
	Columns []string   `json:"columns"`
}

type createFileResponse struct {
	FileID string `json:"fileId"`
}

type columnValuesRequest struct {
	Column  string              `json:"column"`
	Cascade map[string][]string `json:"cascade,omitempty"`
}

type columnValuesResponse struct {
	Values []string `json:"values"`
}

// CreateFile registers a snapshot as a new file and returns its ID.
func (c *Client) CreateFile(ctx context.Context, snap grid.Snapshot) (string, error) {
	body, err := json.Marshal(snapshotPayload{Rows: snap.Rows, Columns: snap.Columns})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files", bytes.NewReader(body))
	if err != nil {
		return "", grid.NewFetchError("create file", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out createFileResponse
	if err := c.do(req, "create file", &out); err != nil {
		return "", err
	}
	return out.FileID, nil
}

// GetPage fetches one page of the dataset.
func (c *Client) GetPage(ctx context.Context, fileID string, pr grid.PageRequest) (*grid.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pr.Page))
	q.Set("pageSize", strconv.Itoa(pr.PageSize))
	if pr.Search != "" {
		q.Set("search", pr.Search)
	} else if pr.FilterColumn != "" {
		q.Set("filterColumn", pr.FilterColumn)
		// One parameter per value: values may themselves contain commas.
		for _, v := range pr.FilterValues {
			q.Add("filterValues", v)
		}
	}

	u := fmt.Sprintf("%s/api/files/%s/data?%s", c.baseURL, url.PathEscape(fileID), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, grid.NewFetchError("get page", err)
	}

	var page grid.Page
	if err := c.do(req, "get page", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetColumnValues lists the selectable values for a column filter.
func (c *Client) GetColumnValues(ctx context.Context, fileID, column string, cascade map[string][]string) ([]string, error) {
	body, err := json.Marshal(columnValuesRequest{Column: column, Cascade: cascade})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	u := fmt.Sprintf("%s/api/files/%s/column-values", c.baseURL, url.PathEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, grid.NewFetchError("column values", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out columnValuesResponse
	if err := c.do(req, "column values", &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

// Save replaces the remote dataset with snap.
func (c *Client) Save(ctx context.Context, fileID string, snap grid.Snapshot) error {
	body, err := json.Marshal(snapshotPayload{Rows: snap.Rows, Columns: snap.Columns})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	u := fmt.Sprintf("%s/api/files/%s", c.baseURL, url.PathEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return grid.NewFetchError("save", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "save", nil)
}

// Download exports the dataset in the given format. Formats the server
// does not produce come back as a *grid.FetchError, which the engine
// answers with a local export.
func (c *Client) Download(ctx context.Context, fileID, format string) ([]byte, error) {
	u := fmt.Sprintf("%s/api/files/%s/export?format=%s",
		c.baseURL, url.PathEscape(fileID), url.QueryEscape(format))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, grid.NewFetchError("download", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, grid.NewFetchError("download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, grid.NewFetchError("download", statusError(resp))
	}
	return io.ReadAll(resp.Body)
}

// do executes a JSON round trip and decodes the response into out when
// out is non-nil. All failures come back as *grid.FetchError.
func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return grid.NewFetchError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return grid.NewFetchError(op, statusError(resp))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return grid.NewFetchError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// statusError builds an error from a non-2xx response, preferring the
// API's JSON error message when one is present.
func statusError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
