package http_test

import (
	"context"
	"testing"
	"time"

	"phishguard/internal/platform/config"
	phttp "phishguard/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("CORE_API_")).Addr(); got != ":4000" {
		t.Fatalf("default addr %q", got)
	}
	t.Setenv("CORE_API_ADDR", "127.0.0.1:8081")
	if got := phttp.NewServer(config.New().Prefix("CORE_API_")).Addr(); got != "127.0.0.1:8081" {
		t.Fatalf("env addr %q", got)
	}
}

func TestServer_RunListenError(t *testing.T) {
	t.Setenv("CORE_API_ADDR", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New().Prefix("CORE_API_")).Run(context.Background()); err == nil {
		t.Fatal("invalid port should fail")
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("CORE_API_ADDR", "127.0.0.1:0")
	t.Setenv("CORE_API_SHUTDOWN_GRACE", "1s")
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
