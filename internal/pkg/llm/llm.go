// Package llm wraps the external text-generation model behind a small
// client interface so the pipeline can be tested against a fake.
package llm

import (
	"context"
	"errors"
)

// ErrNoContent is returned when the model produced no usable text.
// Callers treat it as "zero questions available", never as fatal.
var ErrNoContent = errors.New("model returned no content")

// Client sends a prompt to a text-generation model and returns the raw
// response text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
