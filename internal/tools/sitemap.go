package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/prep-coach/internal/fetch"
	"github.com/jonathan/prep-coach/internal/urlutil"
)

// keyPagePatterns are path fragments that mark likely company pages. Links
// matching one of these are surfaced first by the mapper and crawler.
var keyPagePatterns = []string{
	"about", "about-us", "our-story", "company", "team", "people", "leadership",
	"careers", "jobs", "culture", "values", "mission",
}

func matchesKeyPage(u string) bool {
	lower := strings.ToLower(u)
	for _, p := range keyPagePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// statusError maps a non-2xx fetch status onto the executor's failure taxonomy.
func statusError(url string, code int) error {
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("fetch %s: status %d: %w", url, code, ErrNotFound)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("fetch %s: status %d: %w", url, code, ErrAuth)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("fetch %s: status %d: %w", url, code, ErrRateLimited)
	default:
		return fmt.Errorf("fetch %s: unexpected status %d", url, code)
	}
}

// LinkMapper implements SiteMapper by fetching the domain root and extracting
// its same-domain links, likely company pages first.
type LinkMapper struct {
	opts *fetch.Options
}

// NewLinkMapper creates a mapper with the given fetch options (nil for defaults).
func NewLinkMapper(opts *fetch.Options) *LinkMapper {
	return &LinkMapper{opts: opts}
}

// Map returns at most limit same-domain URLs found on the domain's homepage.
func (m *LinkMapper) Map(ctx context.Context, domain string, limit int) ([]string, error) {
	root := urlutil.EnsureHTTPS(domain)

	result, err := fetch.URL(ctx, root, m.opts)
	if err != nil {
		if result != nil && result.StatusCode != 0 && result.StatusCode != http.StatusOK {
			return nil, statusError(root, result.StatusCode)
		}
		return nil, err
	}

	links, err := fetch.ExtractLinks(result.HTML, root)
	if err != nil {
		return nil, err
	}

	// Key pages first, then the rest, preserving document order within each group.
	var keyed, other []string
	for _, l := range links {
		if matchesKeyPage(l.URL) {
			keyed = append(keyed, l.URL)
		} else {
			other = append(other, l.URL)
		}
	}

	out := append(keyed, other...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LinkCrawler implements Crawler with a bounded depth-1 walk: it fetches the
// domain root plus a few likely company pages and merges their links.
type LinkCrawler struct {
	opts      *fetch.Options
	pageLimit int // pages fetched beyond the root
}

// NewLinkCrawler creates a crawler with the given fetch options (nil for defaults).
func NewLinkCrawler(opts *fetch.Options) *LinkCrawler {
	return &LinkCrawler{opts: opts, pageLimit: 3}
}

// Crawl returns at most limit URLs discovered within one hop of the root.
func (c *LinkCrawler) Crawl(ctx context.Context, domain string, limit int) ([]string, error) {
	root := urlutil.EnsureHTTPS(domain)

	result, err := fetch.URL(ctx, root, c.opts)
	if err != nil {
		if result != nil && result.StatusCode != 0 && result.StatusCode != http.StatusOK {
			return nil, statusError(root, result.StatusCode)
		}
		return nil, err
	}

	rootLinks, err := fetch.ExtractLinks(result.HTML, root)
	if err != nil {
		return nil, err
	}

	merged := make([]string, 0, len(rootLinks))
	for _, l := range rootLinks {
		merged = append(merged, l.URL)
	}

	// One hop: follow the first few key pages and collect their links too.
	fetched := 0
	for _, l := range rootLinks {
		if fetched >= c.pageLimit {
			break
		}
		if !matchesKeyPage(l.URL) {
			continue
		}
		fetched++

		pageResult, err := fetch.URL(ctx, l.URL, c.opts)
		if err != nil {
			continue // one bad page never aborts the crawl
		}
		pageLinks, err := fetch.ExtractLinks(pageResult.HTML, l.URL)
		if err != nil {
			continue
		}
		for _, pl := range pageLinks {
			merged = append(merged, pl.URL)
		}
	}

	deduped := urlutil.Dedupe(merged)
	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped, nil
}
