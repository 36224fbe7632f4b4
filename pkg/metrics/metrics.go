// Package metrics provides the centralized Prometheus metrics registry for
// the GO API reporting tool. All metrics are defined in their respective
// packages (goapi, cache) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the reporting tool.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/goapi):
//   - goapi_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - goapi_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - goapi_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Cache Metrics (pkg/cache):
//   - goapi_cache_hits_total{layer="redis"} (Counter): Page cache hits by layer
//   - goapi_cache_misses_total (Counter): Page cache misses
//   - goapi_cache_errors_total{operation} (Counter): Cache operation errors
