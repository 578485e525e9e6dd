package models

import "context"

// Model is the oracle boundary: one prompt in, generated text out. A
// failed invocation (launch error, non-zero exit, timeout, API error) is
// reported as an error value, never a panic. Implementations must honor
// context cancellation and clean up any in-flight work.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
