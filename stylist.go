// Package stylist accumulates a style-profile document from an ordered log
// of GitHub comments. It pulls batches from the comment log, asks a
// text-generation oracle to analyze each batch, merges the analysis into a
// single accumulated document, compacts the document when it grows past a
// line ceiling, and checkpoints after every batch so an interrupted run
// resumes where it stopped.
package stylist

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Protocol-Lattice/go-stylist/src/comments"
	"github.com/Protocol-Lattice/go-stylist/src/document"
	"github.com/Protocol-Lattice/go-stylist/src/models"
	"github.com/Protocol-Lattice/go-stylist/src/progress"
	"github.com/Protocol-Lattice/go-stylist/src/prompts"
)

// Options configure a new Engine.
type Options struct {
	Reader    *comments.Reader
	Model     models.Model
	Store     progress.Store
	Publisher *document.Publisher
	Logger    *log.Logger

	BatchSize      int
	MaxLines       int
	CompactFloor   int
	CompactCeiling int
	Strategy       Strategy

	AnalysisTimeout   time.Duration
	MergeTimeout      time.Duration
	CompactionTimeout time.Duration
	Pause             time.Duration

	Clock func() time.Time
}

// DefaultOptions returns the knob defaults: 250-comment batches, a
// 5000-line ceiling compacted into a 3000-4000 band, guided merging, and
// a one-second courtesy pause between batches.
func DefaultOptions() Options {
	return Options{
		BatchSize:         250,
		MaxLines:          5000,
		CompactFloor:      3000,
		CompactCeiling:    4000,
		Strategy:          StrategyGuided,
		AnalysisTimeout:   60 * time.Second,
		MergeTimeout:      120 * time.Second,
		CompactionTimeout: 600 * time.Second,
		Pause:             time.Second,
		Clock:             time.Now,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.BatchSize <= 0 {
		o.BatchSize = defaults.BatchSize
	}
	if o.MaxLines <= 0 {
		o.MaxLines = defaults.MaxLines
	}
	if o.CompactFloor <= 0 {
		o.CompactFloor = defaults.CompactFloor
	}
	if o.CompactCeiling <= 0 {
		o.CompactCeiling = defaults.CompactCeiling
	}
	if o.Strategy == "" {
		o.Strategy = defaults.Strategy
	}
	if o.AnalysisTimeout <= 0 {
		o.AnalysisTimeout = defaults.AnalysisTimeout
	}
	if o.MergeTimeout <= 0 {
		o.MergeTimeout = defaults.MergeTimeout
	}
	if o.CompactionTimeout <= 0 {
		o.CompactionTimeout = defaults.CompactionTimeout
	}
	if o.Pause <= 0 {
		o.Pause = defaults.Pause
	}
	if o.Clock == nil {
		o.Clock = defaults.Clock
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Engine owns the accumulation run: the cursor into the comment log, the
// accumulated document, and the compaction count. It is single-threaded;
// nothing here is safe for concurrent use except Metrics().
type Engine struct {
	opts      Options
	reader    *comments.Reader
	model     models.Model
	store     progress.Store
	publisher *document.Publisher
	logger    *log.Logger
	metrics   *Metrics

	state       State
	cursor      int
	doc         string
	compactions int
	batches     int
	records     int
}

// New creates an Engine with the provided options.
func New(opts Options) (*Engine, error) {
	if opts.Reader == nil {
		return nil, errors.New("stylist requires a comment reader")
	}
	if opts.Model == nil {
		return nil, errors.New("stylist requires an oracle model")
	}
	if opts.Store == nil {
		return nil, errors.New("stylist requires a checkpoint store")
	}
	if opts.Publisher == nil {
		return nil, errors.New("stylist requires a document publisher")
	}
	opts = opts.withDefaults()
	return &Engine{
		opts:      opts,
		reader:    opts.Reader,
		model:     opts.Model,
		store:     opts.Store,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		metrics:   &Metrics{},
		state:     StateLoading,
	}, nil
}

// State reports where the engine is in its lifecycle.
func (e *Engine) State() State { return e.state }

// Cursor reports how many input lines have been consumed.
func (e *Engine) Cursor() int { return e.cursor }

// Document returns the accumulated style document.
func (e *Engine) Document() string { return e.doc }

// Compactions reports how many compaction passes have succeeded.
func (e *Engine) Compactions() int { return e.compactions }

// Metrics exposes the engine's runtime counters.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Run drives the accumulation loop until the comment log is exhausted, the
// context is cancelled, or a durable-storage write fails. Cancellation is
// not an error: the run checkpoints and reports StateInterrupted with a
// nil error. Only unrecoverable failures return a non-nil error, after a
// best-effort final checkpoint.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	e.state = StateLoading
	e.logger.Printf("[stylist] starting style document generation from %s", e.reader.Path())
	e.load(ctx)

	total, err := e.reader.TotalLines()
	if err != nil {
		return e.fail(ctx, err)
	}
	e.logger.Printf("[stylist] total comments to process: %d", total)
	e.logger.Printf("[stylist] starting from line: %d", e.cursor)

	for {
		if ctx.Err() != nil {
			return e.interrupt(ctx)
		}
		e.state = StateIterating
		if e.cursor >= total {
			break
		}

		batch, _, err := e.reader.ReadBatch(e.cursor, e.opts.BatchSize)
		if err != nil {
			e.logger.Printf("[stylist] error reading comments: %v", err)
			break
		}
		if len(batch) == 0 {
			break
		}
		e.logger.Printf("[stylist] processing batch: lines %d-%d (%.1f%%)",
			e.cursor, e.cursor+len(batch), float64(e.cursor)/float64(total)*100)

		analysis, ok := e.analyze(ctx, batch)
		if ctx.Err() != nil {
			return e.interrupt(ctx)
		}
		if ok {
			e.merge(ctx, analysis)
			if ctx.Err() != nil {
				return e.interrupt(ctx)
			}
		} else {
			e.logger.Printf("[stylist] no analysis returned from batch processing")
		}

		lines := CountLines(e.doc)
		e.logger.Printf("[stylist] style document now has %d lines", lines)
		if lines > e.opts.MaxLines {
			e.state = StateCompacting
			e.compact(ctx)
			if ctx.Err() != nil {
				return e.interrupt(ctx)
			}
		}

		e.state = StateCheckpointing
		e.cursor += len(batch)
		e.batches++
		e.records += len(batch)
		e.metrics.IncBatches()
		e.metrics.IncRecords(len(batch))
		if err := e.flush(ctx); err != nil {
			return e.fail(ctx, err)
		}

		if !e.pause(ctx) {
			return e.interrupt(ctx)
		}
	}

	e.state = StateDone
	e.logger.Printf("[stylist] processing complete: %d lines, %d compactions",
		CountLines(e.doc), e.compactions)
	return e.summary(), nil
}

// load restores the previous checkpoint. A missing checkpoint starts
// fresh; so does a corrupt or unreadable one, with a logged warning, so a
// damaged progress file never blocks a run.
func (e *Engine) load(ctx context.Context) {
	cp, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Printf("[stylist] error loading progress: %v", err)
		e.logger.Printf("[stylist] starting fresh")
		return
	}
	if cp == nil {
		return
	}
	e.cursor = cp.CurrentLine
	e.doc = cp.StyleContent
	e.compactions = cp.CompactionCount
	e.logger.Printf("[stylist] resuming from line %d, compactions: %d",
		e.cursor, e.compactions)
}

// analyze formats a batch into the analysis prompt and asks the oracle for
// style insights. A failed or empty response is absent, not fatal.
func (e *Engine) analyze(ctx context.Context, batch []comments.Record) (string, bool) {
	if len(batch) == 0 {
		return "", false
	}
	prompt := prompts.WithPreamble(prompts.Analysis(comments.FormatBatch(batch)))

	actx, cancel := context.WithTimeout(ctx, e.opts.AnalysisTimeout)
	defer cancel()

	e.metrics.IncAnalysisCalls()
	analysis, err := e.model.Generate(actx, prompt)
	if err != nil {
		e.metrics.IncAnalysisFailures()
		e.logger.Printf("[stylist] batch analysis failed: %v", err)
		return "", false
	}
	if strings.TrimSpace(analysis) == "" {
		e.metrics.IncAnalysisFailures()
		return "", false
	}
	e.logger.Printf("[stylist] got analysis: %d characters", len(analysis))
	return analysis, true
}

// flush writes the checkpoint and the published document. Either write
// failing means resumability is gone, so the caller treats the error as
// fatal.
func (e *Engine) flush(ctx context.Context) error {
	now := e.opts.Clock()
	cp := &progress.Checkpoint{
		CurrentLine:     e.cursor,
		StyleContent:    e.doc,
		CompactionCount: e.compactions,
		Timestamp:       now,
	}
	if err := e.store.Save(ctx, cp); err != nil {
		return err
	}
	e.metrics.IncCheckpointSaves()
	return e.publisher.Publish(e.doc, e.cursor, e.compactions, now)
}

// pause waits out the inter-batch courtesy delay. Returns false when the
// context is cancelled first.
func (e *Engine) pause(ctx context.Context) bool {
	timer := time.NewTimer(e.opts.Pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// interrupt handles external cancellation: flush state as-is and stop.
// The detached context lets the final writes go through even though the
// run context is already cancelled.
func (e *Engine) interrupt(ctx context.Context) (Summary, error) {
	e.state = StateInterrupted
	e.logger.Printf("[stylist] interrupted, saving progress")
	if err := e.flush(context.WithoutCancel(ctx)); err != nil {
		e.logger.Printf("[stylist] error saving progress: %v", err)
	}
	return e.summary(), nil
}

// fail handles unrecoverable errors: one best-effort flush, then surface
// the error.
func (e *Engine) fail(ctx context.Context, err error) (Summary, error) {
	e.state = StateFailed
	e.logger.Printf("[stylist] error during processing: %v", err)
	if ferr := e.flush(context.WithoutCancel(ctx)); ferr != nil {
		e.logger.Printf("[stylist] error saving progress: %v", ferr)
	}
	return e.summary(), err
}

func (e *Engine) summary() Summary {
	return Summary{
		Status:      e.state,
		Batches:     e.batches,
		Records:     e.records,
		FinalLines:  CountLines(e.doc),
		Compactions: e.compactions,
	}
}
