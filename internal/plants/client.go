package plants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Backend is the pair of operations the list core needs from the server.
// *Client implements it; tests substitute fakes.
type Backend interface {
	FetchToday(ctx context.Context) ([]Item, error)
	MarkWatered(ctx context.Context, ids []int64) (WaterResult, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// ErrNoPlants is returned by MarkWatered when called without identifiers.
var ErrNoPlants = errors.New("no plants to mark watered")

// Client talks to the PlantBuddy HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	authHeader string
	token      string
	logger     *slog.Logger
}

const (
	defaultAPIURL     = "127.0.0.1:8000"
	defaultUserAgent  = "plantbuddy/0.1"
	defaultAuthHeader = "X-Telegram-InitData"
	requestTimeout    = 10 * time.Second
	maxBodyBytes      = 4 << 20

	todayPath = "/api/today"
	waterPath = "/api/water"
)

// Option customises a Client.
type Option func(*Client)

// WithToken attaches token to every request under header. An empty header
// uses X-Telegram-InitData.
func WithToken(header, token string) Option {
	return func(c *Client) {
		if h := strings.TrimSpace(header); h != "" {
			c.authHeader = h
		}
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger routes request failures to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for apiURL, which may be a full URL or host:port.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent:  defaultUserAgent,
		authHeader: defaultAuthHeader,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchToday retrieves today's plant list. Empty or malformed bodies yield an
// empty list rather than an error.
func (c *Client) FetchToday(ctx context.Context) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodGet, todayPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeTodayItems(body), nil
}

// MarkWatered records a watering event for every id in one request.
func (c *Client) MarkWatered(ctx context.Context, ids []int64) (WaterResult, error) {
	if c == nil {
		return WaterResult{}, fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return WaterResult{}, ErrNoPlants
	}
	payload, err := json.Marshal(WaterRequest{PlantIDs: ids})
	if err != nil {
		return WaterResult{}, fmt.Errorf("encode request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, waterPath, payload)
	if err != nil {
		return WaterResult{}, err
	}
	var result WaterResult
	if err := json.Unmarshal(body, &result); err != nil {
		return WaterResult{}, &RequestError{
			Op:      http.MethodPost + " " + waterPath,
			Message: "Invalid response from server",
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	op := method + " " + path
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, &RequestError{Op: op, Message: FallbackMessage, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(c.authHeader, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "error", err)
		return nil, &RequestError{Op: op, Message: transportMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("read response failed", "op", op, "status", resp.StatusCode, "error", err)
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Message: transportMessage(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := statusError(op, resp.StatusCode, body)
		c.logger.Warn("api returned error status", "op", op, "status", resp.StatusCode, "message", rerr.Message)
		return nil, rerr
	}
	return body, nil
}

// transportMessage trims the url.Error wrapping so the banner shows the cause
// ("connection refused") rather than the full request line.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		err = uerr.Err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	return Message(err)
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
