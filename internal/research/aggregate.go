// Package research combines discovery and scrape output into the single
// artifact consumed by report generation.
package research

import (
	"github.com/jonathan/prep-coach/internal/types"
	"github.com/jonathan/prep-coach/internal/urlutil"
)

// Aggregate filters pages to ok-only, computes counts, and stamps the mode.
// Pure combination: no external calls. A run with zero successful pages
// yields a valid empty artifact, never an error.
func Aggregate(domain string, discovery *types.DiscoveryResult, pages []types.ScrapedPage, mode types.RunMode) types.ResearchArtifact {
	artifact := types.ResearchArtifact{
		Domain:      domain,
		CompanyName: urlutil.CompanyName(domain),
		Pages:       make([]types.ScrapedPage, 0, len(pages)),
		Attempted:   len(pages),
		Mode:        mode.Name,
	}

	for _, p := range pages {
		switch p.Outcome {
		case types.FetchOK:
			artifact.Pages = append(artifact.Pages, p)
			artifact.Succeeded++
		default:
			artifact.Skipped++
		}
	}

	if discovery != nil {
		artifact.Search = discovery.SearchResults
	}

	return artifact
}
