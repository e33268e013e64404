package tools

import (
	"context"
	"time"

	"github.com/jonathan/prep-coach/internal/observability"
)

const (
	// DefaultTimeout bounds a single tool invocation.
	DefaultTimeout = 30 * time.Second
	// DefaultBackoff is the pause before the single rate-limit retry.
	DefaultBackoff = 2 * time.Second
)

// InvokeFunc performs one external call under the executor's context.
type InvokeFunc func(ctx context.Context) (any, error)

// Result is the uniform envelope every tool invocation returns.
type Result struct {
	OK       bool
	Data     any
	Kind     ErrorKind
	Err      error
	Duration time.Duration
}

// Fatal reports whether the failure must terminate the run.
func (r Result) Fatal() bool {
	return r.Kind == KindAuth
}

// ExecutorOptions configures invocation behavior.
type ExecutorOptions struct {
	Timeout time.Duration
	Backoff time.Duration
}

// DefaultExecutorOptions returns the standard per-call budgets.
func DefaultExecutorOptions() *ExecutorOptions {
	return &ExecutorOptions{
		Timeout: DefaultTimeout,
		Backoff: DefaultBackoff,
	}
}

// Executor is the single choke point for external tool calls. It applies a
// per-call timeout, classifies failures, and logs every invocation so
// failures are uniformly observable and skipped or retried consistently.
type Executor struct {
	log     *observability.EventLogger
	timeout time.Duration
	backoff time.Duration
}

// NewExecutor creates an executor logging through log.
func NewExecutor(log *observability.EventLogger, opts *ExecutorOptions) *Executor {
	if opts == nil {
		opts = DefaultExecutorOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Executor{
		log:     log,
		timeout: opts.Timeout,
		backoff: opts.Backoff,
	}
}

// Invoke runs fn under the per-call timeout and returns the uniform envelope.
// No retries happen at this layer.
func (e *Executor) Invoke(ctx context.Context, step, tool string, fn InvokeFunc) Result {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	data, err := fn(callCtx)
	duration := time.Since(start)

	if err != nil {
		kind := Classify(err)
		e.log.Event(step, tool, string(kind), duration, map[string]any{"error": err.Error()})
		return Result{
			Kind:     kind,
			Err:      &ToolError{Tool: tool, Message: "invocation failed", Cause: err},
			Duration: duration,
		}
	}

	e.log.Event(step, tool, "ok", duration, nil)
	return Result{
		OK:       true,
		Data:     data,
		Duration: duration,
	}
}

// InvokeWithRetry invokes fn and, only when the failure is rate limiting,
// backs off once and retries. Auth failures are never retried.
func (e *Executor) InvokeWithRetry(ctx context.Context, step, tool string, fn InvokeFunc) Result {
	result := e.Invoke(ctx, step, tool, fn)
	if result.OK || result.Kind != KindRateLimited {
		return result
	}

	select {
	case <-time.After(e.backoff):
	case <-ctx.Done():
		return result
	}

	return e.Invoke(ctx, step+":retry", tool, fn)
}
