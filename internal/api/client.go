package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/cache"
	"github.com/orrs-rail/orrs-cli/internal/models"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 5 * time.Minute

	userAgent = "orrs-cli"
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Client is the API client for the reservation backend
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      Cache
	logger     *zap.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables caching with a file cache in dir.
// An empty dir means the default cache directory, a zero ttl the default TTL.
func WithDefaultCache(dir string, ttl time.Duration) ClientOption {
	return func(c *Client) {
		if dir == "" {
			dir = cache.DefaultCacheDir()
		}
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fc, err := cache.NewFileCache(dir, ttl)
		if err != nil {
			c.logger.Warn("file cache disabled", zap.String("dir", dir), zap.Error(err))
			return
		}
		c.cache = fc
	}
}

// WithBaseURL points the client at another backend
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken sends the token as a bearer credential on every request
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    BaseURL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", c.baseURL)
	}

	return c, nil
}

// BaseURL returns the backend the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetStations fetches the public station list used by the station pickers
func (c *Client) GetStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.GetStationsRaw(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStations(body)
}

// GetStationsRaw fetches the station list and returns raw JSON
func (c *Client) GetStationsRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, request{method: http.MethodGet, path: EndpointStations, cacheable: true})
}

// InvalidateStations drops the cached station list so the next GetStations
// asks the backend.
func (c *Client) InvalidateStations() {
	if c.cache == nil {
		return
	}
	key := c.baseURL + EndpointStations
	if err := c.cache.Delete(key); err != nil {
		c.logger.Debug("failed to drop cached stations", zap.String("url", key), zap.Error(err))
	}
}

// SearchTrains searches schedules between two stations on a date
func (c *Client) SearchTrains(ctx context.Context, req models.SearchRequest) ([]models.TrainResult, error) {
	body, err := c.SearchTrainsRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	trains, err := models.DecodeList[models.TrainResult](body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if len(trains) == 0 {
		return nil, ErrNoResults
	}
	return trains, nil
}

// SearchTrainsRaw searches schedules and returns raw JSON
func (c *Client) SearchTrainsRaw(ctx context.Context, req models.SearchRequest) (json.RawMessage, error) {
	switch {
	case strings.TrimSpace(req.FromStation) == "":
		return nil, ErrMissingField("fromStation")
	case strings.TrimSpace(req.ToStation) == "":
		return nil, ErrMissingField("toStation")
	case strings.TrimSpace(req.JourneyDate) == "":
		return nil, ErrMissingField("journeyDate")
	}
	return c.doRequest(ctx, request{method: http.MethodPost, path: EndpointSearch, body: req})
}

// ListAdminStations fetches the station list as the admin screens see it
func (c *Client) ListAdminStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.doRequest(ctx, request{method: http.MethodGet, path: EndpointAdminStations})
	if err != nil {
		return nil, err
	}
	return decodeStations(body)
}

// AddStation creates a station
func (c *Client) AddStation(ctx context.Context, in models.StationInput) Result {
	if _, err := c.doRequest(ctx, request{method: http.MethodPost, path: EndpointAdminStations, body: in}); err != nil {
		return failure("Failed to add station", err)
	}
	c.InvalidateStations()
	return success("Station added successfully!")
}

// UpdateStation replaces the fields of an existing station
func (c *Client) UpdateStation(ctx context.Context, id int64, in models.StationInput) Result {
	if id <= 0 {
		return failure("Failed to update station", ErrInvalidValue("id", id))
	}
	if _, err := c.doRequest(ctx, request{method: http.MethodPut, path: adminStationPath(id), body: in}); err != nil {
		return failure("Failed to update station", err)
	}
	c.InvalidateStations()
	return success("Station updated successfully!")
}

// UpdateStationStatus activates or deactivates a station
func (c *Client) UpdateStationStatus(ctx context.Context, id int64, status string) Result {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.StatusActive && status != models.StatusInactive {
		return failure("Failed to update station status", ErrInvalidValue("status", status))
	}
	if id <= 0 {
		return failure("Failed to update station status", ErrInvalidValue("id", id))
	}
	body := models.StatusUpdate{Status: status}
	if _, err := c.doRequest(ctx, request{method: http.MethodPatch, path: adminStationStatusPath(id), body: body}); err != nil {
		return failure("Failed to update station status", err)
	}
	c.InvalidateStations()
	return success("Station status updated successfully!")
}

// DeleteStation removes a station
func (c *Client) DeleteStation(ctx context.Context, id int64) Result {
	if id <= 0 {
		return failure("Failed to delete station", ErrInvalidValue("id", id))
	}
	if _, err := c.doRequest(ctx, request{method: http.MethodDelete, path: adminStationPath(id)}); err != nil {
		return failure("Failed to delete station", err)
	}
	c.InvalidateStations()
	return success("Station deleted successfully!")
}

func decodeStations(body []byte) ([]models.Station, error) {
	resp, err := models.DecodeList[models.StationResponse](body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}

	stations := make([]models.Station, 0, len(resp))
	for i := range resp {
		stations = append(stations, *resp[i].ToStation())
	}
	return stations, nil
}

// request describes one backend call
type request struct {
	method    string
	path      string
	body      any
	cacheable bool
}

// doRequest performs an HTTP request; cacheable GETs go through the cache
func (c *Client) doRequest(ctx context.Context, r request) ([]byte, error) {
	reqURL := c.baseURL + r.path
	useCache := c.cache != nil && r.cacheable && r.method == http.MethodGet

	if useCache {
		if data, ok := c.cache.Get(reqURL); ok {
			c.logger.Debug("cache hit", zap.String("url", reqURL))
			return data, nil
		}
	}

	var payload io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	correlationID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Correlation-ID", correlationID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.logger.With(
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.String("correlation_id", correlationID),
		zap.Bool("token", c.token != ""),
	)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		// the client's own timeout does not touch ctx
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug("response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp, r.path, body)
		if resp.StatusCode == http.StatusUnauthorized {
			log.Warn("unauthorized, token missing or expired")
		}
		return nil, apiErr
	}

	if useCache {
		_ = c.cache.Set(reqURL, body)
	}

	return body, nil
}

// errorFromResponse builds an APIError, keeping the backend message when there is one
func errorFromResponse(resp *http.Response, endpoint string, body []byte) *APIError {
	var eb models.ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && strings.TrimSpace(eb.Message) != "" {
		e := NewAPIErrorWithMessage(resp.StatusCode, endpoint, strings.TrimSpace(eb.Message))
		e.Status = resp.Status
		return e
	}
	return NewAPIError(resp.StatusCode, resp.Status, endpoint)
}
