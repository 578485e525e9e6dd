package comments

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comments.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestReadBatchSkipsMalformedLines(t *testing.T) {
	path := writeLog(t,
		`{"repository":"a/b","comment_body":"first"}`,
		`{not json at all`,
		`{"repository":"a/b","comment_body":"second"}`,
		`{"repository":"a/b","comment_body":"third"}`,
	)
	var logged bytes.Buffer
	reader := NewReader(path, log.New(&logged, "", 0))

	records, scanned, err := reader.ReadBatch(0, 10)
	if err != nil {
		t.Fatalf("ReadBatch returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if scanned != 4 {
		t.Fatalf("expected 4 lines scanned, got %d", scanned)
	}
	if records[0].CommentBody != "first" || records[2].CommentBody != "third" {
		t.Fatalf("records out of order: %#v", records)
	}
	if !strings.Contains(logged.String(), "line 2") {
		t.Fatalf("expected diagnostic naming line 2, got %q", logged.String())
	}
}

func TestReadBatchHonorsCursorAndSize(t *testing.T) {
	path := writeLog(t,
		`{"comment_body":"c0"}`,
		`{"comment_body":"c1"}`,
		`{"comment_body":"c2"}`,
		`{"comment_body":"c3"}`,
	)
	reader := NewReader(path, nil)

	records, scanned, err := reader.ReadBatch(1, 2)
	if err != nil {
		t.Fatalf("ReadBatch returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if scanned != 2 {
		t.Fatalf("expected 2 lines scanned, got %d", scanned)
	}
	if records[0].CommentBody != "c1" || records[1].CommentBody != "c2" {
		t.Fatalf("unexpected batch contents: %#v", records)
	}
}

func TestReadBatchPastEndReturnsEmpty(t *testing.T) {
	path := writeLog(t, `{"comment_body":"only"}`)
	reader := NewReader(path, nil)

	records, scanned, err := reader.ReadBatch(5, 10)
	if err != nil {
		t.Fatalf("ReadBatch returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty batch, got %d records", len(records))
	}
	if scanned != 0 {
		t.Fatalf("expected 0 lines scanned, got %d", scanned)
	}
}

func TestTotalLines(t *testing.T) {
	path := writeLog(t, `{"a":1}`, `{"b":2}`, `not json`)
	reader := NewReader(path, nil)

	total, err := reader.TotalLines()
	if err != nil {
		t.Fatalf("TotalLines returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 lines, got %d", total)
	}
}

func TestFormatFillsMissingFields(t *testing.T) {
	got := Record{CommentBody: "hello"}.Format()
	want := "Repository: unknown\nDate: unknown\nComment: hello\nContext: Issue #N/A - N/A\n---"
	if got != want {
		t.Fatalf("unexpected format:\n%s", got)
	}
}

func TestFormatBatchJoinsRecords(t *testing.T) {
	n := int64(7)
	records := []Record{
		{Repository: "octo/repo", CreatedAt: "2024-01-01", CommentBody: "lgtm", IssueNumber: &n, IssueTitle: "Fix race"},
		{CommentBody: "needs tests"},
	}
	got := FormatBatch(records)
	if !strings.Contains(got, "Repository: octo/repo") {
		t.Fatalf("missing first record: %q", got)
	}
	if !strings.Contains(got, "Issue #7 - Fix race") {
		t.Fatalf("missing issue context: %q", got)
	}
	if !strings.HasSuffix(got, "---") {
		t.Fatalf("expected trailing delimiter, got %q", got)
	}
	if FormatBatch(nil) != "" {
		t.Fatalf("expected empty string for empty batch")
	}
}
