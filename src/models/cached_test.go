package models

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type countingModel struct {
	CallCount int32
	Response  string
}

func (m *countingModel) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.Response != "" {
		return m.Response, nil
	}
	return "mock response", nil
}

func TestCachedModel_Generate(t *testing.T) {
	mock := &countingModel{}
	cached := NewCachedModel(mock, 10, time.Minute, "")

	ctx := context.Background()
	prompt := "hello"

	// First call - should hit the model
	if _, err := cached.Generate(ctx, prompt); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if count := atomic.LoadInt32(&mock.CallCount); count != 1 {
		t.Errorf("expected 1 call, got %d", count)
	}

	// Second call - should hit the cache
	if _, err := cached.Generate(ctx, prompt); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if count := atomic.LoadInt32(&mock.CallCount); count != 1 {
		t.Errorf("expected 1 call (cached), got %d", count)
	}

	// Different prompt - should hit the model
	if _, err := cached.Generate(ctx, "world"); err != nil {
		t.Fatalf("third call failed: %v", err)
	}
	if count := atomic.LoadInt32(&mock.CallCount); count != 2 {
		t.Errorf("expected 2 calls, got %d", count)
	}
}

func TestCachedModel_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	first := NewCachedModel(&countingModel{Response: "persisted"}, 10, time.Hour, path)
	if _, err := first.Generate(context.Background(), "stable prompt"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected cache file to be written: %v", err)
	}

	// A fresh instance backed by the same file must answer from cache.
	mock := &countingModel{Response: "fresh"}
	second := NewCachedModel(mock, 10, time.Hour, path)
	got, err := second.Generate(context.Background(), "stable prompt")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "persisted" {
		t.Fatalf("expected persisted response, got %q", got)
	}
	if count := atomic.LoadInt32(&mock.CallCount); count != 0 {
		t.Errorf("expected 0 model calls after restore, got %d", count)
	}
}

func TestTryWrapCachedDisabledByDefault(t *testing.T) {
	t.Setenv("STYLIST_CACHE_SIZE", "")

	inner := &countingModel{}
	if got := TryWrapCached(inner); got != Model(inner) {
		t.Fatalf("expected passthrough when cache size unset")
	}
}

func TestTryWrapCachedEnabled(t *testing.T) {
	t.Setenv("STYLIST_CACHE_SIZE", "16")
	t.Setenv("STYLIST_CACHE_TTL", "60")
	t.Setenv("STYLIST_CACHE_PATH", filepath.Join(t.TempDir(), "cache.json"))

	wrapped := TryWrapCached(&countingModel{})
	if _, ok := wrapped.(*CachedModel); !ok {
		t.Fatalf("expected *CachedModel, got %T", wrapped)
	}
}
