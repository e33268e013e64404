package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/prep-coach/internal/tools"
)

// DefaultOutputDir is where reports land unless --output-dir overrides it.
const DefaultOutputDir = "output/prep_reports"

// SaveLocal writes the report to <outputDir>/<company>_prep_<timestamp>.md,
// with dots in the company domain replaced by underscores, and returns the
// file path.
func SaveLocal(company, content, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_prep_%s.md", strings.ReplaceAll(company, ".", "_"), timestamp)
	path := filepath.Join(outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// SaveToDocs exports the report through the docs provider via the executor.
func SaveToDocs(ctx context.Context, saver tools.DocsSaver, exec *tools.Executor, company, content string) (*tools.DocInfo, error) {
	title := fmt.Sprintf("Interview Prep: %s (%s)", company, time.Now().Format("2006-01-02"))

	res := exec.InvokeWithRetry(ctx, "report:save_docs", "docs.save_document", func(ctx context.Context) (any, error) {
		return saver.SaveDocument(ctx, title, content)
	})
	if !res.OK {
		return nil, res.Err
	}

	info, ok := res.Data.(*tools.DocInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected docs provider response")
	}
	return info, nil
}
