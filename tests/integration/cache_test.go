package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ifrc-go/localunits-report/internal/config"
	"github.com/ifrc-go/localunits-report/internal/testutil"
	"github.com/ifrc-go/localunits-report/pkg/cache"
	"github.com/ifrc-go/localunits-report/pkg/goapi"
	"github.com/ifrc-go/localunits-report/pkg/pipeline"
	"github.com/ifrc-go/localunits-report/pkg/report"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Could not start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	t.Cleanup(func() {
		redisClient.Close()
		container.Terminate(ctx)
	})

	return redisClient
}

func intPtr(n int) *int { return &n }

// TestSummaryRun_PageCache runs the summary pipeline twice with the page
// cache enabled and verifies the second run is served entirely from Redis.
func TestSummaryRun_PageCache(t *testing.T) {
	redisClient := setupRedis(t)

	mock := testutil.NewMockGoAPI()
	defer mock.Close()

	units := make([]any, 0, 60)
	for i := 0; i < 60; i++ {
		units = append(units, testutil.LocalUnit(i+1, "Hospital", intPtr(14)))
	}
	mock.SetDataset("/prod/local-units/", units)

	cfg := goapi.DefaultConfig("test-token")
	cfg.Cache = cache.NewManager(redisClient, time.Minute)
	client := goapi.New(cfg)

	envs := []config.Environment{
		{
			Name:          "production",
			LocalUnitsURL: mock.Endpoint("/prod/local-units/"),
			CountryURL:    mock.Endpoint("/prod/country/"),
		},
	}

	dir := t.TempDir()

	firstOut := filepath.Join(dir, "first.xlsx")
	if err := pipeline.RunSummary(context.Background(), client, pipeline.Options{
		Environments: envs,
		Limit:        50,
		OutputPath:   firstOut,
	}); err != nil {
		t.Fatalf("first RunSummary() failed: %v", err)
	}

	afterFirst := mock.GetRequestCount()
	if afterFirst != 2 {
		t.Fatalf("requests after first run = %d, want 2", afterFirst)
	}

	secondOut := filepath.Join(dir, report.SummaryFile)
	if err := pipeline.RunSummary(context.Background(), client, pipeline.Options{
		Environments: envs,
		Limit:        50,
		OutputPath:   secondOut,
	}); err != nil {
		t.Fatalf("second RunSummary() failed: %v", err)
	}

	if got := mock.GetRequestCount(); got != afterFirst {
		t.Errorf("requests after second run = %d, want %d (cache should serve all pages)", got, afterFirst)
	}
}

// TestGetJSON_CacheExpiry verifies an expired page is fetched again.
func TestGetJSON_CacheExpiry(t *testing.T) {
	redisClient := setupRedis(t)

	mock := testutil.NewMockGoAPI()
	defer mock.Close()

	mock.SetDataset("/prod/local-units/", []any{
		testutil.LocalUnit(1, "Hospital", intPtr(14)),
	})

	cfg := goapi.DefaultConfig("test-token")
	cfg.Cache = cache.NewManager(redisClient, 100*time.Millisecond)
	client := goapi.New(cfg)

	var page map[string]any
	url := mock.Endpoint("/prod/local-units/")

	if err := client.GetJSON(context.Background(), url, nil, &page); err != nil {
		t.Fatalf("GetJSON() failed: %v", err)
	}
	if err := client.GetJSON(context.Background(), url, nil, &page); err != nil {
		t.Fatalf("GetJSON() from cache failed: %v", err)
	}
	if got := mock.GetRequestCount(); got != 1 {
		t.Fatalf("requests = %d, want 1 (second call cached)", got)
	}

	time.Sleep(200 * time.Millisecond)

	if err := client.GetJSON(context.Background(), url, nil, &page); err != nil {
		t.Fatalf("GetJSON() after expiry failed: %v", err)
	}
	if got := mock.GetRequestCount(); got != 2 {
		t.Errorf("requests = %d, want 2 (expired page refetched)", got)
	}
}
