package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/muurk/scheduledevents/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed response is kept
	maxErrorBody = 4096
)

// Client talks to the scheduled events service at a discovered endpoint.
// Requests are sent once; there is no retry.
type Client struct {
	// Endpoint is the full document URI, e.g.
	// "http://10.0.0.4:8080/metadata/latest/scheduledevents"
	Endpoint string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for endpoint with DefaultTimeout
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// GetDocument retrieves the current scheduled events document
func (c *Client) GetDocument(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, newNetworkError("failed to create GET request", err)
	}
	req.Header.Set("Metadata", "true")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, newParseError("failed to parse scheduled events document", err)
	}
	return &doc, nil
}

// Approve asks the service to start the events in approval now
func (c *Client) Approve(ctx context.Context, approval *Approval) error {
	payload, err := json.Marshal(approval)
	if err != nil {
		return newParseError("failed to encode approval", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return newNetworkError("failed to create POST request", err)
	}
	req.Header.Set("Metadata", "true")
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	logging.LogHTTPRequest(req.Method, req.URL.String(), map[string]string{
		"Metadata":     req.Header.Get("Metadata"),
		"Content-Type": req.Header.Get("Content-Type"),
	})

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(req.Method+" request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError("failed to read response body", err)
	}
	logging.LogHTTPResponse(req.URL.String(), resp.StatusCode, len(body))
	logging.LogRawBytes("Scheduled events response body", body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, newHTTPError(resp.StatusCode, string(body))
	}
	return body, nil
}
