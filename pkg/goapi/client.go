// Package goapi provides the IFRC GO API HTTP client with token
// authentication, error classification, and optional page caching.
package goapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ifrc-go/localunits-report/pkg/cache"
)

// Prometheus metrics for GO API client operations.
var (
	goapiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goapi_requests_total",
		Help: "Total GO API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	goapiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "goapi_request_duration_seconds",
		Help:    "GO API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"endpoint"})

	goapiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goapi_errors_total",
		Help: "Total GO API errors by class",
	}, []string{"class"})
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 60 * time.Second

// Client is the IFRC GO API client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Token is the API token sent as "Authorization: Token <value>".
	// An empty token still works for endpoints that allow anonymous reads.
	Token string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// UserAgent header, optional.
	UserAgent string

	// Cache is the optional Redis page cache. Nil disables caching.
	Cache *cache.Manager
}

// DefaultConfig returns a default configuration for the given token.
func DefaultConfig(token string) Config {
	return Config{
		Token:   token,
		Timeout: DefaultTimeout,
	}
}

// New creates a new GO API client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := log.With().Str("component", "goapi-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: logger,
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetJSON performs a GET request against rawURL with the given query
// parameters and decodes the JSON response body into v.
//
// A transport failure or non-2xx status returns an *APIError carrying the
// error class; callers treat any error as "this environment is unreachable".
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	endpoint := u.Host + u.Path

	startTime := time.Now()
	defer func() {
		goapiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	key := cache.Key{Endpoint: endpoint, QueryParams: params}

	// Cache errors degrade to a direct request.
	if c.cache != nil {
		payload, cacheErr := c.cache.Get(ctx, key)
		if cacheErr == nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Str("cache_key", key.String()).
				Msg("Page cache hit")
			if err := json.Unmarshal(payload, v); err != nil {
				return fmt.Errorf("decode cached page: %w", err)
			}
			return nil
		}
		if cacheErr != cache.ErrCacheMiss {
			c.logger.Warn().Err(cacheErr).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Token "+c.config.Token)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", u.RawQuery).
		Msg("Executing GO API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		goapiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		goapiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return &APIError{
			Class: ErrorClassNetwork,
			URL:   u.String(),
			Err:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		class := classifyStatus(resp.StatusCode)
		goapiErrorsTotal.WithLabelValues(string(class)).Inc()
		goapiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("GO API request error")

		return &APIError{
			StatusCode: resp.StatusCode,
			Class:      class,
			URL:        u.String(),
			Message:    resp.Status,
		}
	}

	goapiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		goapiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return &APIError{
			Class: ErrorClassNetwork,
			URL:   u.String(),
			Err:   fmt.Errorf("read response body: %w", err),
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache page")
		} else {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Str("cache_key", key.String()).
				Msg("Cached page")
		}
	}

	return nil
}

// NewPageCache builds a Redis-backed page cache for the given address.
// It pings Redis once so an unreachable server is reported up front.
func NewPageCache(ctx context.Context, addr string, ttl time.Duration) (*cache.Manager, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return cache.NewManager(redisClient, ttl), nil
}
