package discovery

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
	"github.com/jonathan/prep-coach/internal/urlutil"
)

// maxPerBucket caps how many URLs one intent bucket may contribute.
const maxPerBucket = 2

// Engine combines the site-map and search calls into a deduplicated candidate
// list, buckets candidates by intent, and selects the best few URLs per
// bucket. All external calls go through the executor.
type Engine struct {
	mapper   tools.SiteMapper
	searcher tools.Searcher
	crawler  tools.Crawler
	oracle   Oracle
	exec     *tools.Executor
}

// NewEngine wires the discovery sources. crawler and oracle may be nil; a nil
// crawler disables the fallback, a nil oracle forces deterministic selection.
func NewEngine(mapper tools.SiteMapper, searcher tools.Searcher, crawler tools.Crawler, oracle Oracle, exec *tools.Executor) *Engine {
	return &Engine{
		mapper:   mapper,
		searcher: searcher,
		crawler:  crawler,
		oracle:   oracle,
		exec:     exec,
	}
}

// Discover produces the candidate set and per-intent selections for a domain.
// A failure of one source never aborts the other; both sources failing yields
// an empty result, not an error. Only an auth failure is returned as an error.
func (e *Engine) Discover(ctx context.Context, domain string, mode types.RunMode) (*types.DiscoveryResult, error) {
	result := &types.DiscoveryResult{Mode: mode.Name}

	seen := make(map[string]bool)
	mapOK, searchOK := false, false

	// Site-map call
	mapRes := e.exec.Invoke(ctx, "discover:map", "sitemap.map", func(ctx context.Context) (any, error) {
		return e.mapper.Map(ctx, domain, mode.MapLimit)
	})
	if mapRes.Fatal() {
		return nil, mapRes.Err
	}
	if mapRes.OK {
		mapOK = true
		urls, _ := mapRes.Data.([]string)
		e.merge(result, seen, urls, nil, types.SourceMap)
	}

	// Search call, independent of the map outcome
	query := fmt.Sprintf("%s about OR team OR leadership OR careers", domain)
	searchRes := e.exec.InvokeWithRetry(ctx, "discover:search", "websearch.search", func(ctx context.Context) (any, error) {
		return e.searcher.Search(ctx, query, mode.SearchLimit)
	})
	if searchRes.Fatal() {
		return nil, searchRes.Err
	}
	if searchRes.OK {
		searchOK = true
		hits, _ := searchRes.Data.([]types.SearchResult)
		result.SearchResults = hits
		var urls []string
		titles := make(map[string]string, len(hits))
		for _, h := range hits {
			urls = append(urls, h.URL)
			titles[h.URL] = h.Title
		}
		e.merge(result, seen, urls, titles, types.SourceSearch)
	}

	// No web signal at all is a valid, empty result.
	if !mapOK && !searchOK {
		return result, nil
	}

	// Crawl fallback, full mode only, when discovery came up thin. Merged
	// output is deduped against the whole candidate set gathered so far.
	if len(result.Candidates) < mode.MinCandidates && mode.CrawlFallback && e.crawler != nil {
		crawlRes := e.exec.Invoke(ctx, "discover:crawl", "crawler.crawl", func(ctx context.Context) (any, error) {
			return e.crawler.Crawl(ctx, domain, mode.MapLimit)
		})
		if crawlRes.Fatal() {
			return nil, crawlRes.Err
		}
		if crawlRes.OK {
			urls, _ := crawlRes.Data.([]string)
			e.merge(result, seen, urls, nil, types.SourceCrawl)
		}
	}

	e.selectBuckets(ctx, domain, mode, result)
	return result, nil
}

// merge normalizes, tags, and appends URLs not already in the candidate set.
// First occurrence wins, so source order determines the surviving tag.
func (e *Engine) merge(result *types.DiscoveryResult, seen map[string]bool, urls []string, titles map[string]string, source types.Source) {
	for _, raw := range urls {
		canonical, err := urlutil.Normalize(raw)
		if err != nil {
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		result.Candidates = append(result.Candidates, types.CandidateURL{
			URL:    canonical,
			Source: source,
			Intent: ClassifyIntent(canonical),
			Title:  titles[raw],
		})
	}
}

// selectBuckets fills result.Selections and result.Selected: oracle-ranked
// URLs per non-other bucket with a deterministic first-candidate fallback,
// then a final union in bucket priority order capped at the mode's page cap.
func (e *Engine) selectBuckets(ctx context.Context, domain string, mode types.RunMode, result *types.DiscoveryResult) {
	buckets := bucketize(result.Candidates)

	for _, intent := range types.BucketPriority() {
		candidates := buckets[intent]
		if len(candidates) == 0 {
			continue
		}

		var urls []string
		method := types.SelectionFallback

		if intent != types.IntentOther && e.oracle != nil {
			oracleRes := e.exec.Invoke(ctx, "discover:rank:"+string(intent), "oracle.select_best", func(ctx context.Context) (any, error) {
				return e.oracle.SelectBest(ctx, domain, intent, candidates)
			})
			if oracleRes.OK {
				if picked, ok := oracleRes.Data.([]string); ok && len(picked) > 0 {
					urls = picked
					method = types.SelectionOracle
				}
			}
			// Any oracle failure, auth included, degrades to the fallback:
			// selection must never block the run on the LLM.
		}

		if len(urls) == 0 {
			if intent == types.IntentOther {
				continue // unclassified pages are never worth a scrape slot
			}
			urls = []string{candidates[0].URL}
		}

		result.Selections = append(result.Selections, types.BucketSelection{
			Intent: intent,
			URLs:   urls,
			Method: method,
		})
	}

	// Union across buckets in priority order, capped at the page budget.
	for _, sel := range result.Selections {
		for _, u := range sel.URLs {
			if len(result.Selected) >= mode.PageCap {
				return
			}
			result.Selected = append(result.Selected, u)
		}
	}
}
