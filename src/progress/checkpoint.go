// Package progress persists the resumable state of an accumulation run:
// how far into the comment log it got, the accumulated document, and how
// many compactions have happened.
package progress

import (
	"context"
	"time"
)

// Checkpoint is the complete recoverable state of a run. It is overwritten
// wholesale after every batch; there is no partial update.
type Checkpoint struct {
	CurrentLine     int       `json:"current_line"`
	StyleContent    string    `json:"style_content"`
	CompactionCount int       `json:"compaction_count"`
	Timestamp       time.Time `json:"timestamp"`
}

// Clone returns a deep copy so stores can retain a checkpoint without
// aliasing the engine's mutable state.
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Store is a durable checkpoint backend. Load reports (nil, nil) when no
// checkpoint exists yet; Save overwrites atomically with respect to
// readers of the same backend.
type Store interface {
	Load(ctx context.Context) (*Checkpoint, error)
	Save(ctx context.Context, cp *Checkpoint) error
	Close(ctx context.Context) error
}
