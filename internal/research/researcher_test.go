package research

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/prep-coach/internal/discovery"
	"github.com/jonathan/prep-coach/internal/observability"
	"github.com/jonathan/prep-coach/internal/scrape"
	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
)

type stubMapper struct{ urls []string }

func (s *stubMapper) Map(ctx context.Context, domain string, limit int) ([]string, error) {
	return s.urls, nil
}

type stubSearcher struct{ results []types.SearchResult }

func (s stubSearcher) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	return s.results, nil
}

type stubScraper struct{ texts map[string]string }

func (s *stubScraper) Scrape(ctx context.Context, url string) (*tools.ScrapeResult, error) {
	return &tools.ScrapeResult{URL: url, Text: s.texts[url], StatusCode: 200}, nil
}

func newTestResearcher(mapper tools.SiteMapper, searcher tools.Searcher, scraper tools.Scraper) *Researcher {
	log := observability.NewEventLoggerWithRunID(&bytes.Buffer{}, "test-run")
	exec := tools.NewExecutor(log, nil)
	engine := discovery.NewEngine(mapper, searcher, nil, nil, exec)
	return NewResearcher(engine, scrape.NewOrchestrator(scraper, exec))
}

func TestResearch_EndToEnd(t *testing.T) {
	mapper := &stubMapper{urls: []string{
		"https://stripe.com/about",
		"https://stripe.com/careers",
	}}
	scraper := &stubScraper{texts: map[string]string{
		"https://stripe.com/about":   "we build payment infrastructure",
		"https://stripe.com/careers": "join us",
	}}

	r := newTestResearcher(mapper, stubSearcher{}, scraper)
	artifact, err := r.Research(context.Background(), "stripe.com", types.FastMode())
	require.NoError(t, err)

	assert.Equal(t, "Stripe", artifact.CompanyName)
	assert.Equal(t, 2, artifact.Succeeded)
	require.Len(t, artifact.Pages, 2)
	assert.Equal(t, "we build payment infrastructure", artifact.Pages[0].Content)
}

func TestResearch_MergedSourcesAllScraped(t *testing.T) {
	// Map and search overlap on /about; the merged candidate set dedupes to
	// three URLs across three intent buckets, and all three scrape cleanly.
	// Full mode, so the success target does not cut the batch short.
	mapper := &stubMapper{urls: []string{
		"stripe.com/about",
		"stripe.com/careers",
	}}
	searcher := stubSearcher{results: []types.SearchResult{
		{URL: "https://stripe.com/about"},
		{URL: "https://stripe.com/team"},
	}}
	scraper := &stubScraper{texts: map[string]string{
		"https://stripe.com/about":   "about content",
		"https://stripe.com/careers": "careers content",
		"https://stripe.com/team":    "team content",
	}}

	r := newTestResearcher(mapper, searcher, scraper)
	artifact, err := r.Research(context.Background(), "stripe.com", types.FullMode())
	require.NoError(t, err)

	assert.Equal(t, 3, artifact.Attempted)
	assert.Equal(t, 3, artifact.Succeeded)
	require.Len(t, artifact.Pages, 3)
	assert.Equal(t, "https://stripe.com/about", artifact.Pages[0].URL)
	assert.Equal(t, "https://stripe.com/careers", artifact.Pages[1].URL)
	assert.Equal(t, "https://stripe.com/team", artifact.Pages[2].URL)
}

func TestResearch_RejectsUnsafeDomain(t *testing.T) {
	r := newTestResearcher(&stubMapper{}, stubSearcher{}, &stubScraper{})

	for _, domain := range []string{"", "stripe", `stripe.com"; drop`, "stripe com"} {
		_, err := r.Research(context.Background(), domain, types.FastMode())
		assert.Error(t, err, "domain: %q", domain)
	}
}

func TestResearch_EmptyDiscoveryYieldsEmptyArtifact(t *testing.T) {
	r := newTestResearcher(&stubMapper{}, stubSearcher{}, &stubScraper{})

	artifact, err := r.Research(context.Background(), "stripe.com", types.FastMode())
	require.NoError(t, err)
	assert.True(t, artifact.Empty())
	assert.Equal(t, "stripe.com", artifact.Domain)
}
