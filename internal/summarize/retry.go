package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// initialBackoff is the wait before the first retry; it doubles on each attempt.
var initialBackoff = time.Second

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.statusCode, e.body)
}

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var target *authError
	return errors.As(err, &target)
}

func isRetryable(err error) bool {
	var rl *rateLimitError
	var se *serverError
	return errors.As(err, &rl) || errors.As(err, &se)
}

// statusError maps a non-success HTTP status to the error retryWithBackoff understands.
func statusError(statusCode int, body string) error {
	switch {
	case statusCode == 429:
		return &rateLimitError{}
	case statusCode == 401 || statusCode == 403:
		return &authError{message: body}
	case statusCode >= 500:
		return &serverError{statusCode: statusCode, body: body}
	default:
		return fmt.Errorf("API error (status %d): %s", statusCode, body)
	}
}

func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := initialBackoff << uint(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
