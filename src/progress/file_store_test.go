package progress

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileStoreLoadAbsentReturnsNil(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))

	cp, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cp != nil {
		t.Fatalf("expected nil checkpoint for absent file, got %#v", cp)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))
	ctx := context.Background()

	want := &Checkpoint{
		CurrentLine:     750,
		StyleContent:    "## Tone\nDirect and friendly.",
		CompactionCount: 2,
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected checkpoint, got nil")
	}
	if got.CurrentLine != want.CurrentLine || got.CompactionCount != want.CompactionCount {
		t.Fatalf("counters mismatch: %#v", got)
	}
	if got.StyleContent != want.StyleContent {
		t.Fatalf("content mismatch: %q", got.StyleContent)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp mismatch: %s", got.Timestamp)
	}
}

func TestFileStoreUsesReferenceFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewFileStore(path)

	cp := &Checkpoint{CurrentLine: 50, StyleContent: "body", CompactionCount: 1, Timestamp: time.Now()}
	if err := store.Save(context.Background(), cp); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read checkpoint file: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("checkpoint is not valid JSON: %v", err)
	}
	for _, name := range []string{"current_line", "style_content", "compaction_count", "timestamp"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("missing field %q in %s", name, raw)
		}
	}
	if !strings.Contains(string(raw), "\n  \"") {
		t.Fatalf("expected two-space indentation, got %s", raw)
	}
}

func TestFileStoreCorruptCheckpointIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt checkpoint")
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "progress.json"))

	for i := 0; i < 3; i++ {
		cp := &Checkpoint{CurrentLine: i, Timestamp: time.Now()}
		if err := store.Save(context.Background(), cp); err != nil {
			t.Fatalf("Save %d returned error: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the checkpoint file, found %v", names)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if cp, err := store.Load(ctx); err != nil || cp != nil {
		t.Fatalf("expected empty store, got %#v, %v", cp, err)
	}

	saved := &Checkpoint{CurrentLine: 10, StyleContent: "doc"}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Mutating the original must not leak into the store.
	saved.StyleContent = "mutated"

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.StyleContent != "doc" {
		t.Fatalf("store aliased caller state: %q", got.StyleContent)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", store.Saves())
	}
}
