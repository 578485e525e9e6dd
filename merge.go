package stylist

import (
	"context"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/go-stylist/src/prompts"
)

// Strategy selects how a batch analysis is combined into the accumulated
// document. Both behaviors existed across the system's history; they are a
// named configuration choice here rather than an implicit version
// difference.
type Strategy string

const (
	// StrategyAppend concatenates each analysis onto the document with a
	// blank-line separator. Lossless and monotonically growing; redundancy
	// is handled solely by compaction.
	StrategyAppend Strategy = "append"

	// StrategyGuided asks the oracle to rewrite the whole document with
	// the new analysis integrated, falling back to append when the result
	// looks like a regression.
	StrategyGuided Strategy = "guided"
)

// ParseStrategy maps a configuration string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyGuided:
		return StrategyGuided, nil
	case StrategyAppend:
		return StrategyAppend, nil
	default:
		return "", fmt.Errorf("unknown merge strategy: %s", s)
	}
}

// shrinkFloor is the fraction of the prior document's character length a
// guided-merge result must reach to be accepted. The oracle is not a
// verified component: an apology, refusal, or truncated completion shows
// up as a short result, and the floor catches it.
const shrinkFloor = 0.9

// CountLines reports how many lines a document holds. Empty text is zero
// lines; otherwise the count of newline-separated segments.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

// merge folds a batch analysis into the accumulated document according to
// the configured strategy. The first analysis becomes the document
// directly; afterwards guided merges that fail or shrink past the floor
// fall back to appending.
func (e *Engine) merge(ctx context.Context, analysis string) {
	if e.doc == "" {
		e.logger.Printf("[stylist] first batch - setting initial content")
		e.doc = analysis
		return
	}

	if e.opts.Strategy == StrategyAppend {
		e.appendAnalysis(analysis)
		return
	}

	mctx, cancel := context.WithTimeout(ctx, e.opts.MergeTimeout)
	defer cancel()

	before := len(e.doc)
	merged, err := e.model.Generate(mctx, prompts.WithPreamble(prompts.Merge(e.doc, analysis)))
	if err != nil {
		if ctx.Err() != nil {
			// The run itself was cancelled, not the merge deadline. The
			// caller is shutting down; the in-flight result is discarded
			// and the document must stay at its pre-merge state so the
			// resumed run reprocesses the batch cleanly.
			e.logger.Printf("[stylist] merge cancelled, discarding result")
			return
		}
		e.logger.Printf("[stylist] merge failed (%v), appending instead", err)
		e.metrics.IncMergesRejected()
		e.appendAnalysis(analysis)
		return
	}
	if strings.TrimSpace(merged) == "" {
		e.logger.Printf("[stylist] merge returned empty content, appending instead")
		e.metrics.IncMergesRejected()
		e.appendAnalysis(analysis)
		return
	}
	if float64(len(merged)) < float64(before)*shrinkFloor {
		e.logger.Printf("[stylist] merge shrank document (%d -> %d chars), appending instead",
			before, len(merged))
		e.metrics.IncMergesRejected()
		e.appendAnalysis(analysis)
		return
	}

	e.logger.Printf("[stylist] merge accepted: %d -> %d chars", before, len(merged))
	e.metrics.IncMergesAccepted()
	e.doc = merged
}

func (e *Engine) appendAnalysis(analysis string) {
	e.doc += "\n\n" + analysis
	e.metrics.IncAppends()
}
