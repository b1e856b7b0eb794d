package negotiate

import (
	"errors"
	"fmt"
)

// Only session-creation problems surface to callers as errors. Everything
// that goes wrong mid-turn is absorbed into a conversational fallback; a
// negotiation in progress must never crash mid-conversation.

// ErrSessionNotFound is returned by stores and engine lookups for unknown
// session ids.
var ErrSessionNotFound = errors.New("negotiate: session not found")

// InvalidBudgetError rejects session creation when the campaign budget is
// not strictly positive.
type InvalidBudgetError struct {
	Budget Money
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("negotiate: campaign budget must be positive, got %s", e.Budget)
}

// EmptyRequirementsError rejects session creation when the campaign carries
// no deliverables (or only zero quantities).
type EmptyRequirementsError struct{}

func (e *EmptyRequirementsError) Error() string {
	return "negotiate: campaign has no content requirements"
}

// GenerationUnavailableError wraps a failed or timed-out text-generation
// call. It never escapes the engine; callers of GenerationClient decide the
// deterministic fallback.
type GenerationUnavailableError struct {
	Err error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("negotiate: text generation unavailable: %v", e.Err)
}

func (e *GenerationUnavailableError) Unwrap() error { return e.Err }
