// Package tools provides the uniform executor every external tool call passes
// through, plus the provider contracts and their real implementations.
package tools

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors providers wrap to signal a failure class.
var (
	// ErrAuth signals misconfigured or rejected credentials. Fatal, never retried.
	ErrAuth = errors.New("authentication failed")
	// ErrRateLimited signals provider throttling. Callers may retry once with backoff.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFound signals a missing resource. Treated as a skip, not an error.
	ErrNotFound = errors.New("not found")
)

// ErrorKind classifies a tool invocation failure.
type ErrorKind string

// Failure classes, per the executor policy: auth is fatal, rate_limited is
// retryable once, everything else is a per-item skip.
const (
	KindNone        ErrorKind = ""
	KindTimeout     ErrorKind = "timeout"
	KindAuth        ErrorKind = "auth"
	KindRateLimited ErrorKind = "rate_limited"
	KindNotFound    ErrorKind = "not_found"
	KindUnknown     ErrorKind = "unknown"
)

// Classify maps an error to its failure class.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrAuth):
		return KindAuth
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

// ToolError wraps a provider failure with the tool that produced it.
type ToolError struct {
	Tool    string
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}
