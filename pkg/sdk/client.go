package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a capacita API server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search runs a relevance search over published courses.
func (c *Client) Search(ctx context.Context, query string, filters SearchFilters) (SearchResponse, error) {
	var resp SearchResponse
	err := c.do(ctx, http.MethodPost, "/v1/search", map[string]any{
		"query":   query,
		"filters": filters,
	}, &resp)
	return resp, err
}

// CreateCourse creates a course record.
func (c *Client) CreateCourse(ctx context.Context, course Course) (Course, error) {
	var created Course
	err := c.do(ctx, http.MethodPost, "/v1/courses", course, &created)
	return created, err
}

// GetCourse returns one course.
func (c *Client) GetCourse(ctx context.Context, id string) (Course, error) {
	var course Course
	err := c.do(ctx, http.MethodGet, "/v1/courses/"+url.PathEscape(id), nil, &course)
	return course, err
}

// ListCoursesOptions filters ListCourses.
type ListCoursesOptions struct {
	PublishedOnly bool
	Company       string
	Category      string
}

// ListCourses returns courses, optionally filtered.
func (c *Client) ListCourses(ctx context.Context, opts ListCoursesOptions) ([]Course, error) {
	q := url.Values{}
	if opts.PublishedOnly {
		q.Set("published", "true")
	}
	if opts.Company != "" {
		q.Set("company", opts.Company)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	path := "/v1/courses"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Items []Course `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// UpdateCourse overwrites a course's editable fields.
func (c *Client) UpdateCourse(ctx context.Context, id string, course Course) (Course, error) {
	var updated Course
	err := c.do(ctx, http.MethodPut, "/v1/courses/"+url.PathEscape(id), course, &updated)
	return updated, err
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/courses/"+url.PathEscape(id), nil, nil)
}

// PublishCourse toggles a course's published flag.
func (c *Client) PublishCourse(ctx context.Context, id string, published bool) (Course, error) {
	var course Course
	err := c.do(ctx, http.MethodPost, "/v1/courses/"+url.PathEscape(id)+"/publish",
		map[string]bool{"published": published}, &course)
	return course, err
}

// UploadDocument sends a PDF for ingestion and returns the upload record.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Upload{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return Upload{}, fmt.Errorf("copy upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Upload{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploads", &buf)
	if err != nil {
		return Upload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var upload Upload
	if err := c.send(req, &upload); err != nil {
		return Upload{}, err
	}
	return upload, nil
}

// GetUpload returns one upload record.
func (c *Client) GetUpload(ctx context.Context, id string) (Upload, error) {
	var upload Upload
	err := c.do(ctx, http.MethodGet, "/v1/uploads/"+url.PathEscape(id), nil, &upload)
	return upload, err
}

// Taxonomy returns the current catalog taxonomy.
func (c *Client) Taxonomy(ctx context.Context) (Taxonomy, error) {
	var tax Taxonomy
	err := c.do(ctx, http.MethodGet, "/v1/taxonomy", nil, &tax)
	return tax, err
}

// SetTaxonomy replaces the catalog taxonomy.
func (c *Client) SetTaxonomy(ctx context.Context, tax Taxonomy) error {
	return c.do(ctx, http.MethodPut, "/v1/taxonomy", tax, nil)
}

// Dashboard returns the aggregated analytics report.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	err := c.do(ctx, http.MethodGet, "/v1/analytics/dashboard", nil, &d)
	return d, err
}

// do runs one JSON request/response round-trip.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
