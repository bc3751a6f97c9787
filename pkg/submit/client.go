package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/model"
)

// DefaultEndpoint is the production onboarding backend.
const DefaultEndpoint = "https://kfinformtask.onrender.com/submit"

const defaultUserAgent = "go-joinform/1.0"

// Sender transmits a validated record to the backend.
type Sender interface {
	Send(ctx context.Context, record model.EmployeeSubmission) (Receipt, error)
}

// PayloadGuard checks an outgoing JSON object before it is sent.
type PayloadGuard interface {
	CheckPayload(payload map[string]any) error
}

// Receipt describes a completed exchange with the backend.
type Receipt struct {
	RequestID  string
	StatusCode int
	Duration   time.Duration
}

// Client posts submissions to the onboarding endpoint. A request is sent at
// most once; failures are never retried.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	guard      PayloadGuard
	logger     *zap.Logger
	newID      func() string
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Zero leaves the caller's context in charge.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) ClientOption {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithPayloadGuard checks every payload before it leaves the process.
func WithPayloadGuard(guard PayloadGuard) ClientOption {
	return func(c *Client) {
		c.guard = guard
	}
}

// WithClientLogger sets the logger used for request diagnostics.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDFunc overrides request id generation.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient builds a client for endpoint.
func NewClient(endpoint string, options ...ClientOption) *Client {
	c := &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts record as a JSON object. Any 2xx status is success and the
// response body is discarded unread.
func (c *Client) Send(ctx context.Context, record model.EmployeeSubmission) (Receipt, error) {
	receipt := Receipt{RequestID: c.newID()}
	if c.endpoint == "" {
		return receipt, &TransportError{Op: "build request", Err: ErrNoEndpoint}
	}

	payload := record.Payload()
	if c.guard != nil {
		if err := c.guard.CheckPayload(payload); err != nil {
			return receipt, &TransportError{Op: "check payload", Err: err}
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return receipt, &TransportError{Op: "marshal payload", Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return receipt, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", receipt.RequestID)

	c.logger.Debug("sending submission",
		zap.String("request_id", receipt.RequestID),
		zap.String("endpoint", c.endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	receipt.Duration = time.Since(start)
	if err != nil {
		return receipt, &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	receipt.StatusCode = resp.StatusCode
	c.logger.Debug("submission completed",
		zap.String("request_id", receipt.RequestID),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", receipt.Duration))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return receipt, &RejectionError{StatusCode: resp.StatusCode}
	}
	return receipt, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
