package tools

import (
	"context"
	"net/http"

	"github.com/jonathan/prep-coach/internal/fetch"
)

// HTTPScraper implements Scraper with a plain HTTP fetch and goquery text
// extraction. When UseBrowser is set and the extracted text looks like an
// unrendered SPA shell, it retries with a headless browser.
type HTTPScraper struct {
	opts       *fetch.Options
	useBrowser bool
}

// NewHTTPScraper creates a scraper with the given fetch options (nil for defaults).
func NewHTTPScraper(opts *fetch.Options, useBrowser bool) *HTTPScraper {
	return &HTTPScraper{
		opts:       opts,
		useBrowser: useBrowser,
	}
}

// Scrape fetches url and returns its main text content.
func (s *HTTPScraper) Scrape(ctx context.Context, url string) (*ScrapeResult, error) {
	result, err := fetch.URL(ctx, url, s.opts)
	if err != nil {
		if result != nil && result.StatusCode != 0 && result.StatusCode != http.StatusOK {
			return nil, statusError(url, result.StatusCode)
		}
		return nil, err
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.CompanyPageSelectors())
	if err != nil {
		return nil, err
	}

	if s.useBrowser && fetch.ShouldUseBrowser(text) {
		html, browserErr := fetch.WithBrowser(ctx, url, fetch.DefaultBrowserTimeout)
		if browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(html, fetch.CompanyPageSelectors()); extractErr == nil {
				text = rendered
			}
		}
		// Browser failures fall back to the HTTP content.
	}

	return &ScrapeResult{
		URL:        url,
		Text:       text,
		StatusCode: result.StatusCode,
	}, nil
}
