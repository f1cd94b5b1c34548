package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JakeFAU/areapages/internal/content"
)

var (
	// ErrRateLimited marks a call rejected with HTTP 429 (or the SDK equivalent).
	ErrRateLimited = errors.New("generative api rate limited")
	// ErrMalformedResponse marks a response whose payload could not be parsed.
	ErrMalformedResponse = errors.New("malformed generative api response")
)

// APIError is a non-success response from the generative API. The response body is kept
// so the final failure reason is visible in logs.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("generative api returned status %d: %s", e.StatusCode, e.Body)
}

// Is reports a 429 as ErrRateLimited.
func (e *APIError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// TaskError is returned once a task has exhausted its attempt budget (or was canceled).
// It unwraps to the last failure.
type TaskError struct {
	Key      content.Key
	Attempts int
	Err      error
}

// Error implements error.
func (e *TaskError) Error() string {
	return fmt.Sprintf("generate %s: gave up after %d attempt(s): %v", e.Key, e.Attempts, e.Err)
}

// Unwrap returns the last failure.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// Outcome labels an attempt for logs and metrics.
type Outcome string

// Attempt outcomes.
const (
	OutcomeSuccess     Outcome = "success"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeAPIError    Outcome = "api_error"
	OutcomeTransport   Outcome = "transport_error"
	OutcomeMalformed   Outcome = "malformed"
	OutcomeIncomplete  Outcome = "incomplete"
	OutcomeCanceled    Outcome = "canceled"
)

// Classify maps an attempt error onto an Outcome.
func Classify(err error) Outcome {
	var apiErr *APIError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeMalformed
	case errors.Is(err, content.ErrIncompleteRecord):
		return OutcomeIncomplete
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeTransport
	}
}
