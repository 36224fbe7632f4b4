package pagination

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 50

// Config holds fetcher configuration.
type Config struct {
	// Limit is the number of records requested per page.
	Limit int

	// Label names the fetch in progress logs (e.g. "production/local-units").
	Label string
}

// DefaultConfig returns the standard fetcher configuration.
func DefaultConfig() Config {
	return Config{
		Limit: DefaultLimit,
	}
}

// Client is the interface the GO API client must implement for page fetching.
type Client interface {
	// GetJSON performs a GET request and decodes the JSON response into v.
	GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error
}

// Page is the GO API listing envelope.
type Page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// FetchAll retrieves the complete ordered record list behind baseURL.
//
// Pages are fetched strictly one after another: offset starts at 0 and
// advances by the page limit. Fetching stops once offset reaches the count
// reported by the endpoint, or as soon as a page returns zero results. Any
// request error aborts the fetch and is returned to the caller.
func FetchAll[T any](ctx context.Context, c Client, baseURL string, cfg Config) ([]T, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	start := time.Now()

	var all []T
	offset := 0

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(cfg.Limit))
		params.Set("offset", strconv.Itoa(offset))

		log.Debug().
			Str("label", cfg.Label).
			Str("url", baseURL).
			Int("offset", offset).
			Msg("Fetching page")

		var page Page[T]
		if err := c.GetJSON(ctx, baseURL, params, &page); err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}

		all = append(all, page.Results...)
		offset += cfg.Limit

		log.Debug().
			Str("label", cfg.Label).
			Int("page_size", len(page.Results)).
			Int("fetched", len(all)).
			Int("count", page.Count).
			Msg("Page received")

		// Natural termination: all records retrieved, or the endpoint
		// delivered fewer records than its count promised.
		if offset >= page.Count || len(page.Results) == 0 {
			break
		}
	}

	log.Info().
		Str("label", cfg.Label).
		Str("url", baseURL).
		Int("records", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return all, nil
}
