package prompts

import (
	"strings"
	"testing"
)

func TestWithPreambleLeadsWithSystemBlock(t *testing.T) {
	got := WithPreamble("do the thing")
	if !strings.HasPrefix(got, "<system>\n") {
		t.Fatalf("expected system block first, got %q", got[:20])
	}
	if !strings.HasSuffix(got, "\n\ndo the thing") {
		t.Fatalf("task prompt not appended: %q", got)
	}
	if !strings.Contains(got, "automated script") {
		t.Fatalf("preamble text missing")
	}
}

func TestAnalysisEmbedsBatchText(t *testing.T) {
	got := Analysis("Repository: a/b\nComment: hi\n---")
	for _, want := range []string{
		"1. Communication tone and approach",
		"6. Code review patterns",
		"Comments to analyze:\nRepository: a/b",
		"specific, actionable style guidelines",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("analysis prompt missing %q", want)
		}
	}
}

func TestMergeEmbedsBothDocuments(t *testing.T) {
	got := Merge("OLD DOC", "NEW INSIGHTS")
	if !strings.Contains(got, "EXISTING STYLE DOCUMENT:\nOLD DOC") {
		t.Fatalf("existing document missing: %q", got)
	}
	if !strings.Contains(got, "NEW ANALYSIS TO INTEGRATE:\nNEW INSIGHTS") {
		t.Fatalf("analysis missing: %q", got)
	}
	if !strings.Contains(got, "never shrink") {
		t.Fatalf("growth requirement missing")
	}
	if !strings.Contains(got, "OUTPUT ONLY") {
		t.Fatalf("bare-output instruction missing")
	}
}

func TestCompactionFormatsTargetBand(t *testing.T) {
	got := Compaction("the document", 3000, 4000)
	if !strings.Contains(got, "Target around 3000-4000 lines") {
		t.Fatalf("target band missing: %q", got)
	}
	if !strings.Contains(got, "Current style document:\nthe document") {
		t.Fatalf("document body missing")
	}
}
