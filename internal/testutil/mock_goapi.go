// Package testutil provides testing utilities for the GO API reporting tool.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockGoAPI is a configurable mock GO API server serving offset/limit
// paginated listings.
type MockGoAPI struct {
	server *httptest.Server
	mu     sync.RWMutex

	datasets map[string][]any
	counts   map[string]int // reported count override per path
	statuses map[string]int // forced HTTP status per path
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount int
	LastAuth     string
}

// NewMockGoAPI creates a new mock GO API server.
func NewMockGoAPI() *MockGoAPI {
	mock := &MockGoAPI{
		datasets: make(map[string][]any),
		counts:   make(map[string]int),
		statuses: make(map[string]int),
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastAuth = r.Header.Get("Authorization")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, hasHandler := mock.handlers[r.URL.Path]
		status, hasStatus := mock.statuses[r.URL.Path]
		mock.mu.RUnlock()

		if hasHandler {
			handler(w, r)
			return
		}
		if hasStatus {
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"detail": "forced status %d"}`, status)
			return
		}

		mock.pageHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockGoAPI) URL() string {
	return m.server.URL
}

// Endpoint returns the full URL for a listing path.
func (m *MockGoAPI) Endpoint(path string) string {
	return m.server.URL + path
}

// Close shuts down the mock server.
func (m *MockGoAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockGoAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastAuth = ""
}

// SetDataset configures the records served for a listing path.
func (m *MockGoAPI) SetDataset(path string, items []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[path] = items
}

// SetCountOverride forces the reported count for a path, regardless of how
// many records the dataset actually holds.
func (m *MockGoAPI) SetCountOverride(path string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[path] = count
}

// SetStatus forces an HTTP status for a path.
func (m *MockGoAPI) SetStatus(path string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[path] = status
}

// SetHandler sets a custom handler for a specific path.
func (m *MockGoAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockGoAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// pageHandler serves the {"count": N, "results": [...]} envelope for the
// configured dataset, sliced by the limit/offset query parameters.
func (m *MockGoAPI) pageHandler(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	items, ok := m.datasets[r.URL.Path]
	count, hasCount := m.counts[r.URL.Path]
	m.mu.RUnlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	if !hasCount {
		count = len(items)
	}

	results := []any{}
	if offset < len(items) {
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		results = items[offset:end]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"count":   count,
		"results": results,
	})
}

// LocalUnit builds a local-unit record for mock datasets.
func LocalUnit(id int, typeName string, country *int) map[string]any {
	record := map[string]any{"id": id}
	if typeName != "" {
		record["type_details"] = map[string]any{"name": typeName}
	} else {
		record["type_details"] = nil
	}
	if country != nil {
		record["country"] = *country
	} else {
		record["country"] = nil
	}
	return record
}

// Country builds a country record for mock datasets.
func Country(id, region int) map[string]any {
	return map[string]any{"id": id, "region": region}
}
