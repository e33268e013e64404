package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/prep-coach/internal/observability"
	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
)

// fakeScraper serves canned per-URL outcomes.
type fakeScraper struct {
	texts map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*tools.ScrapeResult, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return &tools.ScrapeResult{URL: url, Text: f.texts[url], StatusCode: 200}, nil
}

func testExecutor() *tools.Executor {
	log := observability.NewEventLoggerWithRunID(&bytes.Buffer{}, "test-run")
	return tools.NewExecutor(log, nil)
}

func TestFetchAll_InOrder(t *testing.T) {
	scraper := &fakeScraper{texts: map[string]string{
		"https://x.com/about":   "about text",
		"https://x.com/careers": "careers text",
	}}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(), []string{"https://x.com/about", "https://x.com/careers"}, types.FullMode())
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, "https://x.com/about", pages[0].URL)
	assert.Equal(t, types.FetchOK, pages[0].Outcome)
	assert.Equal(t, "about text", pages[0].Content)
	assert.Equal(t, "https://x.com/careers", pages[1].URL)
}

func TestFetchAll_StopsAtSuccessTarget(t *testing.T) {
	urls := make([]string, 6)
	texts := make(map[string]string, 6)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://x.com/page-%d", i)
		texts[urls[i]] = "content"
	}
	scraper := &fakeScraper{texts: texts}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(), urls, types.FastMode())
	require.NoError(t, err)

	// Fast mode stops after two successful pages.
	assert.Len(t, pages, 2)
	assert.Len(t, scraper.calls, 2)
}

func TestFetchAll_SkipsAndKeepsGoing(t *testing.T) {
	scraper := &fakeScraper{
		texts: map[string]string{
			"https://x.com/ok-1": "text 1",
			"https://x.com/ok-2": "text 2",
		},
		errs: map[string]error{
			"https://x.com/gone": fmt.Errorf("fetch: %w", tools.ErrNotFound),
		},
	}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(),
		[]string{"https://x.com/ok-1", "https://x.com/gone", "https://x.com/ok-2"}, types.FullMode())
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, types.FetchOK, pages[0].Outcome)
	assert.Equal(t, types.FetchSkipped, pages[1].Outcome)
	assert.Equal(t, string(tools.KindNotFound), pages[1].Reason)
	assert.Equal(t, types.FetchOK, pages[2].Outcome)
}

func TestFetchAll_UnknownFailureMarkedFailed(t *testing.T) {
	scraper := &fakeScraper{
		errs: map[string]error{"https://x.com/broken": errors.New("boom")},
	}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(), []string{"https://x.com/broken"}, types.FullMode())
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Equal(t, types.FetchFailed, pages[0].Outcome)
	assert.Equal(t, string(tools.KindUnknown), pages[0].Reason)
}

func TestFetchAll_EmptyContentSkipped(t *testing.T) {
	scraper := &fakeScraper{texts: map[string]string{"https://x.com/empty": "   \n  "}}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(), []string{"https://x.com/empty"}, types.FullMode())
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Equal(t, types.FetchSkipped, pages[0].Outcome)
	assert.Equal(t, "empty content", pages[0].Reason)
}

func TestFetchAll_AuthAbortsWithPartialPages(t *testing.T) {
	scraper := &fakeScraper{
		texts: map[string]string{"https://x.com/ok": "text"},
		errs:  map[string]error{"https://x.com/blocked": tools.ErrAuth},
	}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(),
		[]string{"https://x.com/ok", "https://x.com/blocked", "https://x.com/never"}, types.FullMode())

	require.Error(t, err)
	assert.ErrorIs(t, err, tools.ErrAuth)
	require.Len(t, pages, 1)
	assert.Equal(t, types.FetchOK, pages[0].Outcome)
	assert.NotContains(t, scraper.calls, "https://x.com/never")
}

func TestFetchAll_RespectsPageCap(t *testing.T) {
	// Every fetch is skipped, so the success target is never reached and the
	// page cap is the binding limit.
	errs := make(map[string]error)
	urls := make([]string, 10)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://x.com/missing-%d", i)
		errs[urls[i]] = tools.ErrNotFound
	}
	scraper := &fakeScraper{errs: errs}

	orch := NewOrchestrator(scraper, testExecutor())
	pages, err := orch.FetchAll(context.Background(), urls, types.FastMode())
	require.NoError(t, err)

	assert.Len(t, pages, types.FastMode().PageCap)
}

func TestFetchAll_NoURLs(t *testing.T) {
	orch := NewOrchestrator(&fakeScraper{}, testExecutor())
	pages, err := orch.FetchAll(context.Background(), nil, types.FullMode())
	require.NoError(t, err)
	assert.Empty(t, pages)
}
