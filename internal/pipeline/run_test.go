package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/prep-coach/internal/observability"
	"github.com/jonathan/prep-coach/internal/tools"
)

func TestSaveReport_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	opts := RunOptions{Company: "stripe.com", OutputDir: dir}
	log := observability.NewEventLoggerWithRunID(&bytes.Buffer{}, "test-run")
	exec := tools.NewExecutor(log, nil)

	path, err := saveReport(context.Background(), opts, exec, "# report body")
	require.NoError(t, err)
	require.NotEmpty(t, path)

	assert.Equal(t, dir, filepath.Dir(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# report body", string(content))
}

func TestSaveReport_DocsRequestedWithoutToken(t *testing.T) {
	// Docs export without a token warns and keeps the local copy.
	dir := t.TempDir()
	opts := RunOptions{Company: "stripe.com", OutputDir: dir, SaveToDocs: true}
	log := observability.NewEventLoggerWithRunID(&bytes.Buffer{}, "test-run")
	exec := tools.NewExecutor(log, nil)

	path, err := saveReport(context.Background(), opts, exec, "report")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestUnavailableSearcher_FailsNonFatally(t *testing.T) {
	_, err := unavailableSearcher{}.Search(context.Background(), "query", 5)
	require.Error(t, err)
	assert.Equal(t, tools.KindUnknown, tools.Classify(err))
}
