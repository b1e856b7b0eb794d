package negotiate

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ──────────────────────────────────────────────
// Text Generation — injected collaborator with timeout + retry
// ──────────────────────────────────────────────

// TextGenerator is the injected natural-language capability. It may be slow
// and may fail; the engine always has a deterministic fallback and never
// lets a generation failure abort a session.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextGeneratorFunc adapts a plain function to TextGenerator.
type TextGeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements TextGenerator.
func (f TextGeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GenerationClient wraps a TextGenerator with a mandatory per-call timeout
// and a bounded retry. A nil underlying generator is valid and always
// reports unavailability, which routes callers onto their deterministic
// fallback.
type GenerationClient struct {
	gen     TextGenerator
	timeout time.Duration
	retries int
	metrics *EngineMetrics
}

// NewGenerationClient builds the wrapper. timeout must be positive; retries
// is the number of additional attempts after the first (0 or 1 expected).
func NewGenerationClient(gen TextGenerator, timeout time.Duration, retries int, metrics *EngineMetrics) *GenerationClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &GenerationClient{gen: gen, timeout: timeout, retries: retries, metrics: metrics}
}

// Generate runs one generation call under the configured timeout, retrying
// once on failure when configured. Returns GenerationUnavailableError after
// the final attempt fails.
func (c *GenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.gen == nil {
		c.countFallback()
		return "", &GenerationUnavailableError{Err: errNoGenerator}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.gen.Generate(callCtx, prompt)
		cancel()
		if err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed, nil
			}
			lastErr = errEmptyGeneration
			continue
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < c.retries {
			log.Printf("[Generation] attempt %d failed: %v, retrying", attempt+1, err)
		}
	}
	c.countFallback()
	log.Printf("[Generation] unavailable after %d attempt(s): %v", c.retries+1, lastErr)
	return "", &GenerationUnavailableError{Err: lastErr}
}

func (c *GenerationClient) countFallback() {
	if c.metrics != nil {
		c.metrics.GenerationFallbacks.Inc()
	}
}

var (
	errEmptyGeneration = errors.New("generator returned empty text")
	errNoGenerator     = errors.New("no text generator configured")
)
