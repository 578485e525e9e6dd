// stylist — incremental style-profile generation from a GitHub comment log.
//
// Reads newline-delimited JSON comments, batches them through a
// text-generation oracle, and accumulates the analyses into a single style
// document with checkpointed, resumable progress.
//
// Examples:
//
//	stylist -comments gwbischof_comments.jsonl -output style_document.md
//
//	# resume is automatic: rerun the same command after an interrupt
//	stylist -comments comments.jsonl -checkpoint progress.json
//
//	# API provider instead of the claude CLI
//	export ANTHROPIC_API_KEY=...
//	stylist -provider anthropic -model claude-sonnet-4-20250514 -comments comments.jsonl
//
//	# keep checkpoints in sqlite instead of a JSON file
//	stylist -store sqlite -dsn stylist.db -comments comments.jsonl
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	stylist "github.com/Protocol-Lattice/go-stylist"
	"github.com/Protocol-Lattice/go-stylist/src/comments"
	"github.com/Protocol-Lattice/go-stylist/src/config"
	"github.com/Protocol-Lattice/go-stylist/src/document"
	"github.com/Protocol-Lattice/go-stylist/src/models"
	"github.com/Protocol-Lattice/go-stylist/src/progress"
)

const version = "1.0.0"

var (
	flagComments   = flag.String("comments", "", "Path to the JSONL comment log")
	flagOutput     = flag.String("output", "", "Output style document file")
	flagCheckpoint = flag.String("checkpoint", "", "Checkpoint file (file store) or row name (db stores)")
	flagBatchSize  = flag.Int("batch-size", 0, "Comments to process per batch")
	flagMaxLines   = flag.Int("max-lines", 0, "Document line ceiling before compaction")
	flagStore      = flag.String("store", "", "Checkpoint store: file|sqlite|postgres|mongo|memory")
	flagDSN        = flag.String("dsn", "", "DSN/URI for the sqlite, postgres, or mongo store")
	flagProvider   = flag.String("provider", "", "Oracle provider: command|ollama|openai|anthropic|gemini|dummy")
	flagModel      = flag.String("model", "", "Command to run (command provider) or model ID (API providers)")
	flagMerge      = flag.String("merge", "", "Merge strategy: append|guided")
	flagTitle      = flag.String("title", "", "Title for the output document header")
	flagConfig     = flag.String("config", "", "Optional YAML config file")
	flagMetrics    = flag.Bool("metrics", false, "Print the metrics snapshot as JSON when the run ends")
	flagVersion    = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	flag.Parse()
	if *flagVersion {
		fmt.Println("stylist", version)
		return
	}

	cfg, err := resolveConfig()
	if err != nil {
		fail(err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := progress.NewStore(ctx, cfg.Store, cfg.Checkpoint, cfg.StoreDSN)
	if err != nil {
		fail(err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Printf("[stylist] error closing checkpoint store: %v", err)
		}
	}()

	model, err := models.NewModel(ctx, cfg.Provider, cfg.Model)
	if err != nil {
		fail(err)
	}
	model = models.TryWrapCached(model)

	strategy, err := stylist.ParseStrategy(cfg.MergeStrategy)
	if err != nil {
		fail(err)
	}

	engine, err := stylist.New(stylist.Options{
		Reader:            comments.NewReader(cfg.Input, logger),
		Model:             model,
		Store:             store,
		Publisher:         document.NewPublisher(cfg.Output, cfg.Title),
		Logger:            logger,
		BatchSize:         cfg.BatchSize,
		MaxLines:          cfg.MaxLines,
		CompactFloor:      cfg.CompactFloor,
		CompactCeiling:    cfg.CompactCeilingTarget,
		Strategy:          strategy,
		AnalysisTimeout:   cfg.AnalysisTimeout.Std(),
		MergeTimeout:      cfg.MergeTimeout.Std(),
		CompactionTimeout: cfg.CompactionTimeout.Std(),
		Pause:             cfg.Pause.Std(),
	})
	if err != nil {
		fail(err)
	}

	summary, runErr := engine.Run(ctx)
	fmt.Printf("status: %s, batches: %d, records: %d, lines: %d, compactions: %d\n",
		summary.Status, summary.Batches, summary.Records, summary.FinalLines, summary.Compactions)
	if *flagMetrics {
		if data, err := json.MarshalIndent(engine.Metrics().Snapshot(), "", "  "); err == nil {
			fmt.Println(string(data))
		}
	}
	if runErr != nil {
		fail(runErr)
	}
}

// resolveConfig layers defaults, the optional config file, and explicitly
// set flags, in that order of precedence (lowest first).
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if explicit["comments"] {
		cfg.Input = *flagComments
	}
	if explicit["output"] {
		cfg.Output = *flagOutput
	}
	if explicit["checkpoint"] {
		cfg.Checkpoint = *flagCheckpoint
	}
	if explicit["batch-size"] {
		cfg.BatchSize = *flagBatchSize
	}
	if explicit["max-lines"] {
		cfg.MaxLines = *flagMaxLines
	}
	if explicit["store"] {
		cfg.Store = *flagStore
	}
	if explicit["dsn"] {
		cfg.StoreDSN = *flagDSN
	}
	if explicit["provider"] {
		cfg.Provider = *flagProvider
	}
	if explicit["model"] {
		cfg.Model = *flagModel
	}
	if explicit["merge"] {
		cfg.MergeStrategy = *flagMerge
	}
	if explicit["title"] {
		cfg.Title = *flagTitle
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "stylist:", err)
	os.Exit(1)
}
