package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoStructuredData signals that a page carried no schema.org Recipe
// markup. It is not a generic failure: callers should retry the same URL in
// model-assisted mode.
var ErrNoStructuredData = errors.New("no structured recipe data found")

// ErrUnparseableReply signals that the model responded but no JSON could be
// recovered from its reply. Retryable; the caller may re-prompt.
var ErrUnparseableReply = errors.New("no JSON found in model reply")

// TransportError wraps a fetch or model-call failure. It is retryable and
// carries a sanitized operation label rather than raw request detail.
type TransportError struct {
	Op  string // "fetch" or "model"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError rejects bad input at the transport boundary, before the
// pipeline runs. Field-level coercion inside record never produces one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
