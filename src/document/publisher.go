// Package document renders the accumulated style profile to its output
// artifact.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTitle heads the output artifact unless configured otherwise.
const DefaultTitle = "GitHub Comment Style Guide"

const headerTimeFormat = "2006-01-02 15:04:05"

// Publisher writes the style document, a fixed metadata header followed by
// the accumulated body, overwritten wholesale on every publish.
type Publisher struct {
	Path  string
	Title string
}

func NewPublisher(path, title string) *Publisher {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return &Publisher{Path: path, Title: title}
}

// Header renders the metadata block: title, number of comments processed,
// generation time, compaction count, separator.
func (p *Publisher) Header(records, compactions int, at time.Time) string {
	return fmt.Sprintf("# %s\n\nGenerated from %d comments on %s\nCompactions performed: %d\n\n---\n\n",
		p.Title, records, at.Format(headerTimeFormat), compactions)
}

// Publish writes header plus body atomically: temp file in the target
// directory, then rename.
func (p *Publisher) Publish(body string, records, compactions int, at time.Time) error {
	dir := filepath.Dir(p.Path)
	tmp, err := os.CreateTemp(dir, ".document-*.tmp")
	if err != nil {
		return fmt.Errorf("create document temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(p.Header(records, compactions, at) + body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close document temp file: %w", err)
	}
	if err := os.Rename(tmpName, p.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document %s: %w", p.Path, err)
	}
	return nil
}
