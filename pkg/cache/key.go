package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached GO API page.
type Key struct {
	// Endpoint is the request host and path (e.g. "goadmin.ifrc.org/api/v2/local-units/")
	Endpoint string

	// QueryParams are the query parameters (e.g. {"limit": "50", "offset": "0"})
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: goapi:endpoint:param1=val1:param2=val2
//
// Example:
//
//	goapi:goadmin.ifrc.org/api/v2/local-units:limit=50:offset=0
func (k Key) String() string {
	parts := []string{"goapi"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
