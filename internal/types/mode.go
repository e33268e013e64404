package types

// RunMode bounds external call counts and page-fetch targets for one run.
// A mode is immutable for the run's duration.
type RunMode struct {
	Name          string `json:"name"`
	MapLimit      int    `json:"map_limit"`      // max links requested from the site-map call
	SearchLimit   int    `json:"search_limit"`   // max results requested from the search call
	PageCap       int    `json:"page_cap"`       // max URLs handed to the scrape orchestrator
	SuccessTarget int    `json:"success_target"` // scraping stops early after this many ok pages
	MinCandidates int    `json:"min_candidates"` // below this, full mode triggers the crawl fallback
	CrawlFallback bool   `json:"crawl_fallback"` // whether the crawl fallback is permitted
}

// FastMode returns the reduced-budget profile selected by --fast-web.
// Every fast budget is <= the corresponding full budget.
func FastMode() RunMode {
	return RunMode{
		Name:          "fast",
		MapLimit:      10,
		SearchLimit:   5,
		PageCap:       3,
		SuccessTarget: 2,
		MinCandidates: 3,
		CrawlFallback: false,
	}
}

// FullMode returns the default full-budget profile.
func FullMode() RunMode {
	return RunMode{
		Name:          "full",
		MapLimit:      25,
		SearchLimit:   10,
		PageCap:       6,
		SuccessTarget: 5,
		MinCandidates: 5,
		CrawlFallback: true,
	}
}
