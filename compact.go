package stylist

import (
	"context"
	"strings"

	"github.com/Protocol-Lattice/go-stylist/src/prompts"
)

// compact asks the oracle to shrink the accumulated document into the
// configured target band. On success the document is replaced and the
// compaction count advances; on failure the document is left alone and
// the run continues oversized. A stuck compaction must never halt
// ingestion.
func (e *Engine) compact(ctx context.Context) {
	if e.doc == "" {
		return
	}
	before := CountLines(e.doc)
	e.logger.Printf("[compact] compacting style document (current: %d lines)", before)
	e.metrics.IncCompactionsAttempted()

	cctx, cancel := context.WithTimeout(ctx, e.opts.CompactionTimeout)
	defer cancel()

	prompt := prompts.Compaction(e.doc, e.opts.CompactFloor, e.opts.CompactCeiling)
	compacted, err := e.model.Generate(cctx, prompts.WithPreamble(prompt))
	if err != nil {
		e.logger.Printf("[compact] compaction failed (%v), continuing anyway", err)
		return
	}
	if strings.TrimSpace(compacted) == "" {
		e.logger.Printf("[compact] compaction returned empty content, continuing anyway")
		return
	}

	e.doc = compacted
	e.compactions++
	e.metrics.IncCompactionsSucceeded()
	e.logger.Printf("[compact] compaction complete: %d -> %d lines (compaction #%d)",
		before, CountLines(e.doc), e.compactions)
}
