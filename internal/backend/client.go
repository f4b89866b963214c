package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	planPath      = "/generate-learning-plan"
	resourcesPath = "/resources"

	opPlan      = "generate-learning-plan"
	opResources = "resources"
)

// RequestIDHeader carries a per-request UUID so client logs can be matched
// against backend logs.
const RequestIDHeader = "X-Request-ID"

// Client talks to the learning-plan backend over HTTP.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		newID:      newRequestID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeneratePlan asks the backend to break topic into subtopics.
// A response without a subtopics field yields an empty plan.
func (c *Client) GeneratePlan(ctx context.Context, topic string) (Plan, error) {
	body, err := json.Marshal(struct {
		Topics string `json:"topics"`
	}{Topics: strings.TrimSpace(topic)})
	if err != nil {
		return Plan{}, &RequestError{Op: opPlan, Err: err}
	}

	var plan Plan
	if err := c.do(ctx, opPlan, http.MethodPost, c.baseURL+planPath, body, &plan); err != nil {
		return Plan{}, err
	}
	if plan.Subtopics == nil {
		plan.Subtopics = []Subtopic{}
	}
	return plan, nil
}

// FetchResources looks up courses and videos for a single subtopic.
func (c *Client) FetchResources(ctx context.Context, subtopic string) (ResourceBundle, error) {
	q := url.Values{}
	q.Set("subtopic", subtopic)
	endpoint := c.baseURL + resourcesPath + "?" + q.Encode()

	var bundle ResourceBundle
	if err := c.do(ctx, opResources, http.MethodGet, endpoint, nil, &bundle); err != nil {
		return ResourceBundle{}, err
	}
	return bundle, nil
}

// do sends one request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, RequestID: reqID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResp(resp); err != nil {
		err.Op = op
		err.RequestID = reqID
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, RequestID: reqID, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// checkResp returns a RequestError for non-2xx responses, keeping the
// backend's "detail" message when the body is shaped like {"detail": "..."}.
func checkResp(resp *http.Response) *RequestError {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	rerr := &RequestError{Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			rerr.Detail = s
		} else {
			// FastAPI validation errors carry a list instead of a string.
			rerr.Detail = truncate(string(payload.Detail))
		}
		return rerr
	}
	rerr.Detail = truncate(string(raw))
	return rerr
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
