// Package llm abstracts the reasoning service behind a small interface so
// the agent loop and the assistant verbs can be tested without a network.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyReply is returned when the service answers with no usable text.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Client produces a completion for a system preamble plus user prompt.
type Client interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Func adapts a function to the Client interface, used in tests.
type Func func(ctx context.Context, system, prompt string) (string, error)

// Generate implements Client.
func (f Func) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}
