package authkit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBuildRequiresBaseURL(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected error without API.BaseURL")
	}
}

func TestBuildRejectsReuse(t *testing.T) {
	b := New().WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}})

	manager, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer manager.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}

func TestBuildWithRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}}).
		WithRedis(client).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()

	ctx := context.Background()
	access := signedToken(t, "alice", time.Now().Add(time.Hour), "ROLE_USER")
	if err := manager.SetTokens(ctx, access, "refresh-1"); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	// The session landed in Redis, not in process memory.
	if !mr.Exists("authkit:tokens") {
		t.Fatal("no session hash in redis")
	}

	ok, err := manager.IsAuthenticated(ctx)
	if err != nil || !ok {
		t.Fatalf("IsAuthenticated = %v, %v; want true", ok, err)
	}
}

func TestBuildDefaultsHTTPClientTimeout(t *testing.T) {
	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()

	if manager.api == nil {
		t.Fatal("rest client not built")
	}
}

func TestBuildWithCustomHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}

	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}}).
		WithHTTPClient(custom).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()
}

func TestMetricsDisabled(t *testing.T) {
	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}}).
		WithMetricsEnabled(false).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()

	if manager.Metrics() != nil {
		t.Fatal("metrics registry built despite being disabled")
	}

	snap := manager.MetricsSnapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("snapshot = %+v, want empty", snap)
	}
}

func TestWithConfigKeepsObservabilityDefaults(t *testing.T) {
	// A sparse Config handed to WithConfig must not switch off the
	// audit dispatcher or the metrics registry.
	sink := NewChannelSink(8)
	manager, err := New().
		WithConfig(Config{API: APIConfig{BaseURL: "https://api.example.com"}}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer manager.Close()

	if manager.Metrics() == nil {
		t.Fatal("metrics registry off after WithConfig")
	}

	ctx := context.Background()
	if err := manager.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	event := waitForAudit(t, sink, AuditLogout)
	if !event.Success {
		t.Fatalf("audit event = %+v, want success", event)
	}

	if got := manager.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Fatalf("logout counter = %d, want 1", got)
	}
}
