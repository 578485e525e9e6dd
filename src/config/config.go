// Package config loads the stylist run configuration from a YAML file and
// fills in defaults. Command-line flags override file values; the file
// overrides the built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "60s" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config models the stylist YAML configuration file. All fields are
// optional; zero values fall back to Default().
type Config struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Checkpoint string `yaml:"checkpoint"`

	Store    string `yaml:"store"`
	StoreDSN string `yaml:"store_dsn"`

	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`

	MergeStrategy string `yaml:"merge_strategy"`
	Title         string `yaml:"title"`

	BatchSize            int `yaml:"batch_size"`
	MaxLines             int `yaml:"max_lines"`
	CompactFloor         int `yaml:"compact_floor"`
	CompactCeilingTarget int `yaml:"compact_ceiling_target"`

	AnalysisTimeout   Duration `yaml:"analysis_timeout"`
	MergeTimeout      Duration `yaml:"merge_timeout"`
	CompactionTimeout Duration `yaml:"compaction_timeout"`
	Pause             Duration `yaml:"pause"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:                "comments.jsonl",
		Output:               "style_document.md",
		Checkpoint:           "progress.json",
		Store:                "file",
		Provider:             "command",
		Model:                "claude",
		MergeStrategy:        "guided",
		Title:                "GitHub Comment Style Guide",
		BatchSize:            250,
		MaxLines:             5000,
		CompactFloor:         3000,
		CompactCeilingTarget: 4000,
		AnalysisTimeout:      Duration(60 * time.Second),
		MergeTimeout:         Duration(120 * time.Second),
		CompactionTimeout:    Duration(600 * time.Second),
		Pause:                Duration(time.Second),
	}
}

// Load reads a YAML config file, applies defaults to unset fields, and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// WithDefaults fills zero-valued fields from Default().
func (c Config) WithDefaults() Config {
	defaults := Default()
	if c.Input == "" {
		c.Input = defaults.Input
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if c.Checkpoint == "" {
		c.Checkpoint = defaults.Checkpoint
	}
	if c.Store == "" {
		c.Store = defaults.Store
	}
	if c.Provider == "" {
		c.Provider = defaults.Provider
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.MergeStrategy == "" {
		c.MergeStrategy = defaults.MergeStrategy
	}
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.BatchSize == 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.MaxLines == 0 {
		c.MaxLines = defaults.MaxLines
	}
	if c.CompactFloor == 0 {
		c.CompactFloor = defaults.CompactFloor
	}
	if c.CompactCeilingTarget == 0 {
		c.CompactCeilingTarget = defaults.CompactCeilingTarget
	}
	if c.AnalysisTimeout == 0 {
		c.AnalysisTimeout = defaults.AnalysisTimeout
	}
	if c.MergeTimeout == 0 {
		c.MergeTimeout = defaults.MergeTimeout
	}
	if c.CompactionTimeout == 0 {
		c.CompactionTimeout = defaults.CompactionTimeout
	}
	if c.Pause == 0 {
		c.Pause = defaults.Pause
	}
	return c
}

var knownStores = map[string]bool{
	"file": true, "sqlite": true, "postgres": true, "postgresql": true,
	"mongo": true, "mongodb": true, "memory": true,
}

var knownProviders = map[string]bool{
	"command": true, "cli": true, "ollama": true, "openai": true,
	"anthropic": true, "claude": true, "gemini": true, "google": true,
	"dummy": true,
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxLines <= 0 {
		return fmt.Errorf("max_lines must be positive, got %d", c.MaxLines)
	}
	if c.CompactFloor > c.CompactCeilingTarget {
		return fmt.Errorf("compact_floor %d exceeds compact_ceiling_target %d",
			c.CompactFloor, c.CompactCeilingTarget)
	}
	if c.CompactCeilingTarget >= c.MaxLines {
		return fmt.Errorf("compact_ceiling_target %d must stay below max_lines %d",
			c.CompactCeilingTarget, c.MaxLines)
	}
	if !knownStores[strings.ToLower(c.Store)] {
		return fmt.Errorf("unknown store: %s", c.Store)
	}
	if !knownProviders[strings.ToLower(c.Provider)] {
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	switch strings.ToLower(c.MergeStrategy) {
	case "append", "guided":
	default:
		return fmt.Errorf("unknown merge_strategy: %s", c.MergeStrategy)
	}
	return nil
}
