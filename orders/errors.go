package orders

import "time"

// Submission failures form a closed set of variants; the HTTP layer
// maps each one to a status, the core never does.

// ValidationError means the payload broke a schema or delivery rule,
// or referenced an unknown product. Detected before any side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RateLimitError means the client submitted too often; RetryAfter says
// how long until the rolling window has room again.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "too many requests, please retry shortly"
}

// ProcessingError means a sink failed after validation succeeded. Some
// side effects may already have happened; there is no cross-sink
// rollback.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "order processing failed: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
