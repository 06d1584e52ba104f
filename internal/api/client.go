// Package api implements the HTTP client for the career assistant service.
// This package centralizes request building, response decoding, and the
// mapping of failures onto the transport/service error model.
package api

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

	"github.com/tidwall/gjson"

	"github.com/dhrumil1128/career-ai-agent/internal/types"
)

// DefaultBaseURL is where a locally run service listens.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "CareerAgent/1.0"

// Options configures the client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	SessionID string

	// HTTPClient overrides the built client when set. Timeout and header
	// stamping are the caller's responsibility in that case.
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for talking to a local service.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to one career assistant service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New validates the base URL and builds a client.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &headerTransport{
				rt:        http.DefaultTransport,
				userAgent: userAgent,
				sessionID: opts.SessionID,
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the service address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat sends one user utterance and returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, userInput string) (string, error) {
	form := url.Values{}
	form.Set("user_input", userInput)

	env, err := c.postForm(ctx, "chat", "/api/chat", form)
	if err != nil {
		return "", err
	}
	return env.Response, nil
}

// UploadResume sends the file at path as a multipart upload and returns the
// server's confirmation.
func (c *Client) UploadResume(ctx context.Context, path string) (*types.UploadResult, error) {
	const op = "upload-resume"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/upload-resume"), &buf)
	if err != nil {
		return nil, &TransportError{Op: op, URL: c.endpoint("/api/upload-resume"), Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	env, err := c.do(req, op)
	if err != nil {
		return nil, err
	}
	return &types.UploadResult{
		Message:   env.Message,
		Details:   env.Details,
		Filename:  env.Filename,
		HasResume: env.HasResume,
	}, nil
}

// AnalyzeMatch scores the stored resume against a job description.
func (c *Client) AnalyzeMatch(ctx context.Context, jobDescription string) (string, error) {
	return c.analysis(ctx, "analyze-match", "/api/analyze-match", jobDescription)
}

// SkillGaps lists the skills a job description asks for that the stored
// resume does not show.
func (c *Client) SkillGaps(ctx context.Context, jobDescription string) (string, error) {
	return c.analysis(ctx, "skill-gaps", "/api/skill-gaps", jobDescription)
}

// Heatmap produces a section-by-section relevance report for the stored
// resume against a job description.
func (c *Client) Heatmap(ctx context.Context, jobDescription string) (string, error) {
	return c.analysis(ctx, "heatmap", "/api/heatmap", jobDescription)
}

func (c *Client) analysis(ctx context.Context, op, path, jobDescription string) (string, error) {
	form := url.Values{}
	form.Set("job_description", jobDescription)

	env, err := c.postForm(ctx, op, path, form)
	if err != nil {
		return "", err
	}
	return env.Result, nil
}

// AlternativeRoles suggests roles adjacent to the stored resume.
func (c *Client) AlternativeRoles(ctx context.Context) (string, error) {
	env, err := c.get(ctx, "alternative-roles", "/api/alternative-roles", nil)
	if err != nil {
		return "", err
	}
	return env.Result, nil
}

// InterviewQuestions generates practice questions for a company. An empty
// role is omitted from the request so the service default applies.
func (c *Client) InterviewQuestions(ctx context.Context, company, role string) (string, error) {
	form := url.Values{}
	form.Set("company", company)
	if role != "" {
		form.Set("role", role)
	}

	env, err := c.postForm(ctx, "interview-questions", "/api/interview-questions", form)
	if err != nil {
		return "", err
	}
	return env.Result, nil
}

// SearchJobs queries the service's job listings.
func (c *Client) SearchJobs(ctx context.Context, query string) (*types.JobSearchResult, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}

	env, err := c.get(ctx, "jobs", "/api/jobs", q)
	if err != nil {
		return nil, err
	}
	return &types.JobSearchResult{
		Jobs:   env.Jobs,
		Source: env.Source,
		Count:  env.Count,
	}, nil
}

// Memory fetches the current session memory and projects it onto
// MemoryStatus. The memory payload shape varies between service versions
// (flat, or nested under a per-session key), so fields are extracted
// tolerantly rather than decoded strictly.
func (c *Client) Memory(ctx context.Context) (*types.MemoryStatus, error) {
	const op = "memory"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/memory"), nil)
	if err != nil {
		return nil, &TransportError{Op: op, URL: c.endpoint("/api/memory"), Cause: err}
	}

	body, code, err := c.send(req, op)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{
			Op:    op,
			URL:   req.URL.String(),
			Cause: fmt.Errorf("malformed response body"),
		}
	}

	root := gjson.ParseBytes(body)
	if !root.Get("success").Bool() {
		msg := root.Get("error").String()
		if msg == "" {
			msg = fmt.Sprintf("HTTP status %d", code)
		}
		return nil, &ServiceError{Op: op, StatusCode: code, Message: msg}
	}

	mem := root.Get("memory")
	if nested := mem.Get("default"); nested.IsObject() && !mem.Get("resume_uploaded").Exists() {
		mem = nested
	}

	status := &types.MemoryStatus{
		ResumeUploaded: mem.Get("resume_uploaded").Bool(),
		ResumeFile:     mem.Get("resume_file").String(),
	}
	if text := mem.Get("resume_text"); text.Type == gjson.String {
		status.ResumeTextLength = len(text.String())
	} else if n := root.Get("summary.resume_length"); n.Exists() {
		status.ResumeTextLength = int(n.Int())
	}
	return status, nil
}

// ClearMemory wipes the server-side session memory and returns the
// confirmation text.
func (c *Client) ClearMemory(ctx context.Context) (string, error) {
	env, err := c.postForm(ctx, "clear-memory", "/api/clear-memory", url.Values{})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ClearResume removes the stored resume while keeping the rest of the
// session memory, and returns the confirmation text.
func (c *Client) ClearResume(ctx context.Context) (string, error) {
	env, err := c.postForm(ctx, "clear-resume", "/api/clear-resume", url.Values{})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Health checks that the service is up and reporting healthy.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/health"), nil)
	if err != nil {
		return &TransportError{Op: op, URL: c.endpoint("/api/health"), Cause: err}
	}

	body, code, err := c.send(req, op)
	if err != nil {
		return err
	}

	var health healthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return &TransportError{
			Op:    op,
			URL:   req.URL.String(),
			Cause: fmt.Errorf("malformed response body: %w", err),
		}
	}
	if code != http.StatusOK || health.Status != "healthy" {
		return &ServiceError{
			Op:         op,
			StatusCode: code,
			Message:    fmt.Sprintf("service reported status %q", health.Status),
		}
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// postForm sends a form-encoded POST and decodes the success envelope.
func (c *Client) postForm(ctx context.Context, op, path string, form url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Op: op, URL: c.endpoint(path), Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, op)
}

// get sends a GET with optional query parameters and decodes the success
// envelope.
func (c *Client) get(ctx context.Context, op, path string, query url.Values) (*envelope, error) {
	target := c.endpoint(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Op: op, URL: target, Cause: err}
	}
	return c.do(req, op)
}

// do executes the request and maps the response onto the failure model:
// anything that prevents a parseable body is a transport failure, a parsed
// body with success=false is a service failure.
func (c *Client) do(req *http.Request, op string) (*envelope, error) {
	body, code, err := c.send(req, op)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{
			Op:    op,
			URL:   req.URL.String(),
			Cause: fmt.Errorf("malformed response body: %w", err),
		}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP status %d", code)
		}
		return nil, &ServiceError{Op: op, StatusCode: code, Message: msg}
	}
	return &env, nil
}

// send executes the request and reads the full response body.
func (c *Client) send(req *http.Request, op string) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: op, URL: req.URL.String(), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{
			Op:    op,
			URL:   req.URL.String(),
			Cause: fmt.Errorf("failed to read response body: %w", err),
		}
	}
	return body, resp.StatusCode, nil
}
