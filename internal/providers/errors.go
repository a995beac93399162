package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has no inner provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrEmptyPayload is returned when the upstream responds successfully but
// carries no usable schedule or scoreboard. Runs abort on it with no
// partial writes.
var ErrEmptyPayload = errors.New("upstream returned empty payload")

// ShapeError marks a response that decoded but did not match the upstream
// contract (missing events, missing competitors). It fails the run fast
// instead of letting zero values flow through the pipeline.
type ShapeError struct {
	Provider string
	Detail   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: upstream shape changed: %s", e.Provider, e.Detail)
}

// AsShapeError attempts to unwrap an error into a ShapeError.
func AsShapeError(err error) (*ShapeError, bool) {
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		return shapeErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
