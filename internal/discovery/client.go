// Package discovery is the HTTP client for the upstream event-intelligence
// API. Each discovery is a single request/response cycle: no retries, no
// backoff. Identical requests inside the cache TTL are answered from memory
// without touching the upstream.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aaliyatanseeq-hub/events/internal/models"
	"github.com/aaliyatanseeq-hub/events/internal/normalize"
)

const (
	eventsPath    = "/api/discover-events"
	attendeesPath = "/api/discover-attendees"
)

// UpstreamError is a discovery call the upstream answered but rejected:
// either a non-2xx status or a success:false body. Message carries the
// server-supplied error when one was present.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("discovery API request failed (HTTP %d)", e.Status)
}

// EventsRequest is the request body for event discovery.
type EventsRequest struct {
	Location   string   `json:"location"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Categories []string `json:"categories"`
	MaxResults int      `json:"max_results"`
}

// AttendeesRequest is the request body for attendee discovery.
type AttendeesRequest struct {
	EventName  string `json:"event_name"`
	MaxResults int    `json:"max_results"`
}

type eventsResponse struct {
	Success        bool              `json:"success"`
	Events         []models.RawEvent `json:"events"`
	TotalEvents    int               `json:"total_events"`
	RequestedLimit int               `json:"requested_limit"`
	APICallsUsed   int               `json:"api_calls_used"`
	Location       string            `json:"location"`
	Error          string            `json:"error"`
}

type attendeesResponse struct {
	Success        bool                 `json:"success"`
	Attendees      []models.RawAttendee `json:"attendees"`
	TotalAttendees int                  `json:"total_attendees"`
	RequestedLimit int                  `json:"requested_limit"`
	APICallsUsed   int                  `json:"api_calls_used"`
	EventName      string               `json:"event_name"`
	Error          string               `json:"error"`
}

// EventsResult is a normalized, display-ready event discovery outcome.
type EventsResult struct {
	Events []models.Event
	Meta   models.Metadata
	Cached bool
}

// AttendeesResult is a normalized, display-ready attendee discovery outcome.
type AttendeesResult struct {
	Attendees []models.Attendee
	Meta      models.Metadata
	Cached    bool
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	logger  *slog.Logger
}

// NewClient builds a discovery client for the given upstream base URL.
// A nil cache disables response caching.
func NewClient(baseURL string, timeout time.Duration, cache *Cache, logger *slog.Logger) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout, Transport: tr},
		cache:   cache,
		logger:  logger,
	}
}

// DiscoverEvents runs one event discovery call and returns the normalized
// records plus response metadata.
func (c *Client) DiscoverEvents(ctx context.Context, req EventsRequest) (*EventsResult, error) {
	key := cacheKey(eventsPath, req)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			res := cached.(*EventsResult)
			c.logger.Info("discovery cache hit", "kind", "events", "location", req.Location)
			return &EventsResult{Events: res.Events, Meta: cachedMeta(res.Meta), Cached: true}, nil
		}
	}

	var resp eventsResponse
	if err := c.post(ctx, eventsPath, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &UpstreamError{Status: http.StatusOK, Message: resp.Error}
	}

	res := &EventsResult{
		Events: normalize.Events(resp.Events),
		Meta: models.Metadata{
			Success:        true,
			Total:          resp.TotalEvents,
			RequestedLimit: resp.RequestedLimit,
			APICallsUsed:   resp.APICallsUsed,
			Subject:        resp.Location,
		},
	}
	if c.cache != nil {
		c.cache.Set(key, res)
	}
	return res, nil
}

// DiscoverAttendees runs one attendee discovery call and returns the
// normalized records plus response metadata.
func (c *Client) DiscoverAttendees(ctx context.Context, req AttendeesRequest) (*AttendeesResult, error) {
	key := cacheKey(attendeesPath, req)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			res := cached.(*AttendeesResult)
			c.logger.Info("discovery cache hit", "kind", "attendees", "event", req.EventName)
			return &AttendeesResult{Attendees: res.Attendees, Meta: cachedMeta(res.Meta), Cached: true}, nil
		}
	}

	var resp attendeesResponse
	if err := c.post(ctx, attendeesPath, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &UpstreamError{Status: http.StatusOK, Message: resp.Error}
	}

	res := &AttendeesResult{
		Attendees: normalize.Attendees(resp.Attendees),
		Meta: models.Metadata{
			Success:        true,
			Total:          resp.TotalAttendees,
			RequestedLimit: resp.RequestedLimit,
			APICallsUsed:   resp.APICallsUsed,
			Subject:        resp.EventName,
		},
	}
	if c.cache != nil {
		c.cache.Set(key, res)
	}
	return res, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discovery: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discovery: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("discovery: %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Info("discovery API call",
		"path", path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("discovery: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("discovery: decode response: %w", err)
	}
	return nil
}

// serverMessage pulls the error field out of a failure body, if there is one.
func serverMessage(raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}

// cachedMeta marks a metadata copy as served from cache: the upstream was
// not called, so the call counter reads zero.
func cachedMeta(m models.Metadata) models.Metadata {
	m.APICallsUsed = 0
	return m
}

func cacheKey(path string, payload any) string {
	b, _ := json.Marshal(payload)
	return path + "?" + string(b)
}
