package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// GenerationClient invokes a Text Generation Service with a bounded wait.
type GenerationClient struct {
	timeout time.Duration
}

// NewGenerationClient returns a client that stops waiting after timeout
// (0 = wait for as long as ctx allows).
func NewGenerationClient(timeout time.Duration) *GenerationClient {
	return &GenerationClient{timeout: timeout}
}

type completionResult struct {
	c   Completion
	err error
}

// Generate runs prompt against model. Any fault, including the timeout, is a
// GenerationFailed error. On timeout the in-flight call is not cancelled; its
// result is discarded when it arrives.
func (g *GenerationClient) Generate(ctx context.Context, gen TextGenerator, model, prompt string) (GenerationResult, error) {
	metrics.GenerationCalls.Add(1)

	done := make(chan completionResult, 1)
	go func() {
		c, err := gen.Generate(ctx, model, prompt)
		done <- completionResult{c: c, err: err}
	}()

	var timer <-chan time.Time
	if g.timeout > 0 {
		t := time.NewTimer(g.timeout)
		defer t.Stop()
		timer = t.C
	}

	var res completionResult
	select {
	case res = <-done:
	case <-timer:
		metrics.GenerationTimeouts.Add(1)
		metrics.GenerationErrors.Add(1)
		return GenerationResult{}, newError(KindGenerationFailed, fmt.Errorf("no reply from model %q within %s", model, g.timeout))
	case <-ctx.Done():
		metrics.GenerationErrors.Add(1)
		return GenerationResult{}, newError(KindGenerationFailed, ctx.Err())
	}

	if res.err != nil {
		metrics.GenerationErrors.Add(1)
		return GenerationResult{}, newError(KindGenerationFailed, res.err)
	}
	if res.c.Text == nil {
		return GenerationResult{Text: missingSummaryText}, nil
	}
	return GenerationResult{Text: strings.TrimSpace(*res.c.Text)}, nil
}
