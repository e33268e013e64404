// Package observability provides structured run telemetry and formatted
// output utilities for verbose CLI mode.
package observability

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventLogger emits one JSON line per tool invocation, tagged with the run ID.
// Fields: run_id, step, tool, outcome, duration_ms, plus optional extras.
type EventLogger struct {
	log   *logrus.Logger
	runID string
}

// NewEventLogger creates a logger writing JSON lines to out.
func NewEventLogger(out io.Writer) *EventLogger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{})
	return &EventLogger{
		log:   log,
		runID: uuid.NewString(),
	}
}

// NewEventLoggerWithRunID creates a logger with a fixed run ID (for tests).
func NewEventLoggerWithRunID(out io.Writer, runID string) *EventLogger {
	l := NewEventLogger(out)
	l.runID = runID
	return l
}

// RunID returns the identifier stamped on every event of this run.
func (l *EventLogger) RunID() string {
	return l.runID
}

// SetLevel adjusts the minimum emitted level (debug mode lowers it).
func (l *EventLogger) SetLevel(level logrus.Level) {
	l.log.SetLevel(level)
}

// Event logs a single tool invocation outcome.
func (l *EventLogger) Event(step, tool, outcome string, duration time.Duration, extra map[string]any) {
	fields := logrus.Fields{
		"run_id":      l.runID,
		"step":        step,
		"tool":        tool,
		"outcome":     outcome,
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	entry := l.log.WithFields(fields)
	if outcome == "ok" {
		entry.Info("tool call")
	} else {
		entry.Warn("tool call")
	}
}

// Debug logs a free-form debug message tagged with the run ID.
func (l *EventLogger) Debug(step string, extra map[string]any) {
	fields := logrus.Fields{"run_id": l.runID, "step": step}
	for k, v := range extra {
		fields[k] = v
	}
	l.log.WithFields(fields).Debug("event")
}
