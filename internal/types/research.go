// Package types defines shared domain types passed between pipeline stages.
package types

// Source identifies which discovery call proposed a candidate URL.
type Source string

// Discovery source tags
const (
	// SourceMap marks URLs returned by the site-map call
	SourceMap Source = "map"
	// SourceSearch marks URLs returned by the web search call
	SourceSearch Source = "search"
	// SourceCrawl marks URLs returned by the crawl fallback
	SourceCrawl Source = "crawl"
)

// Intent is the presumed purpose of a candidate page.
type Intent string

// Intent buckets, in selection priority order (about > careers > team > other)
const (
	IntentAbout   Intent = "about"
	IntentCareers Intent = "careers"
	IntentTeam    Intent = "team"
	IntentOther   Intent = "other"
)

// BucketPriority returns intent buckets in selection priority order.
func BucketPriority() []Intent {
	return []Intent{IntentAbout, IntentCareers, IntentTeam, IntentOther}
}

// CandidateURL is a URL proposed by one discovery source.
// URL is always absolute HTTPS in canonical form.
type CandidateURL struct {
	URL    string `json:"url"`
	Source Source `json:"source"`
	Intent Intent `json:"intent"`
	Title  string `json:"title,omitempty"` // anchor text / search result title, if available
}

// SelectionMethod records how a bucket's URLs were chosen.
type SelectionMethod string

// Selection methods
const (
	// SelectionOracle means the LLM ranking call picked the URLs
	SelectionOracle SelectionMethod = "oracle"
	// SelectionFallback means the deterministic first-candidate fallback was used
	SelectionFallback SelectionMethod = "fallback"
)

// BucketSelection holds the URLs selected for one intent bucket.
type BucketSelection struct {
	Intent Intent          `json:"intent"`
	URLs   []string        `json:"urls"`
	Method SelectionMethod `json:"method"`
}

// SearchResult is one web search hit (title/url/snippet), kept for reporting.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// DiscoveryResult is the output of the discovery engine.
// Selected URLs are a subset of the deduplicated candidate set; each selected
// URL appears in exactly one bucket.
type DiscoveryResult struct {
	Candidates    []CandidateURL    `json:"candidates"`
	Selections    []BucketSelection `json:"selections"`
	Selected      []string          `json:"selected"`
	SearchResults []SearchResult    `json:"search_results,omitempty"`
	Mode          string            `json:"mode"`
}

// Empty reports whether discovery produced no candidates at all.
func (d *DiscoveryResult) Empty() bool {
	return len(d.Candidates) == 0
}

// FetchOutcome classifies the result of one page fetch.
type FetchOutcome string

// Fetch outcomes
const (
	FetchOK      FetchOutcome = "ok"
	FetchSkipped FetchOutcome = "skipped"
	FetchFailed  FetchOutcome = "failed"
)

// ScrapedPage is one attempted page fetch. Content is extracted text and is
// only meaningful when Outcome is FetchOK.
type ScrapedPage struct {
	URL     string       `json:"url"`
	Content string       `json:"content,omitempty"`
	Outcome FetchOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// ResearchArtifact is the aggregated web research handed to report generation.
// Pages contains ok pages only. Succeeded <= Attempted <= the mode's page cap.
type ResearchArtifact struct {
	Domain      string         `json:"domain"`
	CompanyName string         `json:"company_name"`
	Pages       []ScrapedPage  `json:"pages"`
	Attempted   int            `json:"attempted"`
	Succeeded   int            `json:"succeeded"`
	Skipped     int            `json:"skipped"`
	Search      []SearchResult `json:"search_results,omitempty"`
	Mode        string         `json:"mode"`
}

// Empty reports whether no web signal was gathered.
func (a *ResearchArtifact) Empty() bool {
	return a.Succeeded == 0
}
