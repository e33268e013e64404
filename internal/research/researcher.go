package research

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-coach/internal/discovery"
	"github.com/jonathan/prep-coach/internal/scrape"
	"github.com/jonathan/prep-coach/internal/types"
	"github.com/jonathan/prep-coach/internal/urlutil"
)

// Researcher runs the full web-research stage for one company domain:
// discovery -> scrape -> aggregate. One-shot per run; the artifact is handed
// to the caller by value and no reference is retained.
type Researcher struct {
	engine *discovery.Engine
	scrape *scrape.Orchestrator
}

// NewResearcher wires the discovery engine and scrape orchestrator.
func NewResearcher(engine *discovery.Engine, orchestrator *scrape.Orchestrator) *Researcher {
	return &Researcher{
		engine: engine,
		scrape: orchestrator,
	}
}

// Research produces the research artifact for a domain under the given mode.
// Degraded sources shrink the artifact; only invalid input and auth failures
// are returned as errors.
func (r *Researcher) Research(ctx context.Context, domain string, mode types.RunMode) (types.ResearchArtifact, error) {
	if !urlutil.IsSafeDomain(domain) {
		return types.ResearchArtifact{}, fmt.Errorf("invalid company domain: %q", domain)
	}

	disc, err := r.engine.Discover(ctx, domain, mode)
	if err != nil {
		return types.ResearchArtifact{}, err
	}

	pages, err := r.scrape.FetchAll(ctx, disc.Selected, mode)
	if err != nil {
		// Keep whatever was fetched before the fatal failure aggregated
		// alongside the error so partial state stays usable.
		return Aggregate(domain, disc, pages, mode), err
	}

	return Aggregate(domain, disc, pages, mode), nil
}
