// Package scrape fetches the selected pages under the mode's budgets,
// recording per-page outcomes without ever aborting the batch.
package scrape

import (
	"context"
	"strings"

	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
)

// Orchestrator fetches pages through the tool executor.
type Orchestrator struct {
	scraper tools.Scraper
	exec    *tools.Executor
}

// NewOrchestrator creates an orchestrator over the given scraper.
func NewOrchestrator(scraper tools.Scraper, exec *tools.Executor) *Orchestrator {
	return &Orchestrator{
		scraper: scraper,
		exec:    exec,
	}
}

// FetchAll fetches urls in order up to the mode's page cap. A NotFound or
// extraction failure marks that page skipped/failed and fetching continues.
// Fetching stops early once the number of ok pages reaches the mode's
// success target. Pages are returned in fetch order; ok pages need not be
// contiguous. Only an auth failure is returned as an error.
func (o *Orchestrator) FetchAll(ctx context.Context, urls []string, mode types.RunMode) ([]types.ScrapedPage, error) {
	pages := make([]types.ScrapedPage, 0, len(urls))
	succeeded := 0

	for _, u := range urls {
		if len(pages) >= mode.PageCap {
			break
		}
		if succeeded >= mode.SuccessTarget {
			break
		}
		if ctx.Err() != nil {
			// Cancelled mid-batch: already-fetched pages stay usable.
			break
		}

		res := o.exec.Invoke(ctx, "scrape:fetch", "scraper.scrape", func(ctx context.Context) (any, error) {
			return o.scraper.Scrape(ctx, u)
		})
		if res.Fatal() {
			return pages, res.Err
		}

		pages = append(pages, o.toPage(u, res))
		if pages[len(pages)-1].Outcome == types.FetchOK {
			succeeded++
		}
	}

	return pages, nil
}

// toPage converts one executor result into a page record.
func (o *Orchestrator) toPage(url string, res tools.Result) types.ScrapedPage {
	if !res.OK {
		outcome := types.FetchFailed
		if res.Kind == tools.KindNotFound || res.Kind == tools.KindTimeout {
			outcome = types.FetchSkipped
		}
		return types.ScrapedPage{
			URL:     url,
			Outcome: outcome,
			Reason:  string(res.Kind),
		}
	}

	scraped, ok := res.Data.(*tools.ScrapeResult)
	if !ok || strings.TrimSpace(scraped.Text) == "" {
		return types.ScrapedPage{
			URL:     url,
			Outcome: types.FetchSkipped,
			Reason:  "empty content",
		}
	}

	return types.ScrapedPage{
		URL:     url,
		Content: scraped.Text,
		Outcome: types.FetchOK,
	}
}
