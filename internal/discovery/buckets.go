// Package discovery merges bounded site-map, search, and crawl signals into a
// ranked, deduplicated set of company page URLs worth scraping.
package discovery

import (
	"net/url"
	"strings"

	"github.com/jonathan/prep-coach/internal/types"
)

// intentPatterns maps path fragments to intent buckets. Checked in bucket
// priority order; first match wins.
var intentPatterns = []struct {
	intent   types.Intent
	patterns []string
}{
	{types.IntentAbout, []string{"about", "company", "our-story", "mission"}},
	{types.IntentCareers, []string{"careers", "jobs"}},
	{types.IntentTeam, []string{"team", "leadership", "people"}},
}

// ClassifyIntent buckets a candidate URL by its path. Unmatched paths,
// including blog and press pages, land in IntentOther.
func ClassifyIntent(rawURL string) types.Intent {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return types.IntentOther
	}
	path := strings.ToLower(parsed.Path)

	for _, ip := range intentPatterns {
		for _, p := range ip.patterns {
			if strings.Contains(path, p) {
				return ip.intent
			}
		}
	}
	return types.IntentOther
}

// bucketize groups candidates by intent, preserving discovery order within
// each bucket.
func bucketize(candidates []types.CandidateURL) map[types.Intent][]types.CandidateURL {
	buckets := make(map[types.Intent][]types.CandidateURL)
	for _, c := range candidates {
		buckets[c.Intent] = append(buckets[c.Intent], c)
	}
	return buckets
}
