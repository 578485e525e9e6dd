package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPublishWritesHeaderAndBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.md")
	pub := NewPublisher(path, "")
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	if err := pub.Publish("## Tone\nConcise and direct.", 1250, 2, at); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "# GitHub Comment Style Guide\n\n" +
		"Generated from 1250 comments on 2025-03-14 09:26:53\n" +
		"Compactions performed: 2\n\n---\n\n" +
		"## Tone\nConcise and direct."
	if string(raw) != want {
		t.Fatalf("unexpected artifact:\n%s", raw)
	}
}

func TestPublishOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.md")
	pub := NewPublisher(path, "Team Style Guide")
	at := time.Now()

	if err := pub.Publish(strings.Repeat("long body\n", 100), 10, 0, at); err != nil {
		t.Fatalf("first Publish returned error: %v", err)
	}
	if err := pub.Publish("short body", 20, 1, at); err != nil {
		t.Fatalf("second Publish returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(raw), "long body") {
		t.Fatal("expected old content to be fully replaced")
	}
	if !strings.HasPrefix(string(raw), "# Team Style Guide\n") {
		t.Fatalf("expected configured title, got %q", string(raw[:30]))
	}
	if !strings.Contains(string(raw), "Generated from 20 comments") {
		t.Fatalf("expected updated record count:\n%s", raw)
	}
}

func TestPublishLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	pub := NewPublisher(filepath.Join(dir, "style.md"), "")

	if err := pub.Publish("body", 1, 0, time.Now()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single artifact file, found %d entries", len(entries))
	}
}
