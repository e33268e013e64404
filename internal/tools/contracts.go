package tools

import (
	"context"

	"github.com/jonathan/prep-coach/internal/types"
)

// ScrapeResult is the outcome of scraping a single page.
type ScrapeResult struct {
	URL        string
	Text       string
	StatusCode int
}

// MailThread is one email thread summary from the mail provider.
type MailThread struct {
	ID      string
	Subject string
	Sender  string
	Date    string
	Snippet string
}

// DocInfo describes a saved external document.
type DocInfo struct {
	ID    string
	Title string
	URL   string
}

// SiteMapper lists known URLs for a domain, bounded by limit.
type SiteMapper interface {
	Map(ctx context.Context, domain string, limit int) ([]string, error)
}

// Searcher runs a bounded web search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// Crawler discovers URLs by following links from the domain root.
// Used only as the full-mode discovery fallback.
type Crawler interface {
	Crawl(ctx context.Context, domain string, limit int) ([]string, error)
}

// Scraper fetches one page and returns its extracted text.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)
}

// MailProvider searches the user's mailbox for threads from a company domain.
type MailProvider interface {
	SearchThreads(ctx context.Context, domain, userID string, lookbackDays, maxResults int) ([]MailThread, error)
}

// DocsSaver exports a report to an external document store.
type DocsSaver interface {
	SaveDocument(ctx context.Context, title, body string) (*DocInfo, error)
}
