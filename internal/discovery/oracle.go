package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/prep-coach/internal/llm"
	"github.com/jonathan/prep-coach/internal/prompts"
	"github.com/jonathan/prep-coach/internal/schemas"
	"github.com/jonathan/prep-coach/internal/types"
)

// Oracle ranks a bucket's candidate URLs and returns the best 1-2. A failing
// oracle never blocks discovery; the engine falls back deterministically.
type Oracle interface {
	SelectBest(ctx context.Context, domain string, intent types.Intent, candidates []types.CandidateURL) ([]string, error)
}

// selectionSchema is the embedded schema the oracle response must satisfy.
const selectionSchema = "selection.schema.json"

// LLMOracle implements Oracle with an LLM ranking call. The response is
// schema-validated and filtered to the candidate set before it is trusted.
type LLMOracle struct {
	client llm.Client
}

// NewLLMOracle creates an oracle backed by the given LLM client.
func NewLLMOracle(client llm.Client) *LLMOracle {
	return &LLMOracle{client: client}
}

// SelectBest asks the model for the best URLs in one intent bucket.
func (o *LLMOracle) SelectBest(ctx context.Context, domain string, intent types.Intent, candidates []types.CandidateURL) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var lines []string
	for _, c := range candidates {
		if c.Title != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", c.URL, c.Title))
		} else {
			lines = append(lines, c.URL)
		}
	}

	template := prompts.MustGet("discovery.json", "select-best-urls")
	prompt := prompts.Format(template, map[string]string{
		"Domain":     domain,
		"Intent":     string(intent),
		"Candidates": strings.Join(lines, "\n"),
	})

	raw, err := o.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("oracle generation failed: %w", err)
	}

	cleaned := []byte(llm.CleanJSONBlock(raw))
	if err := schemas.Validate(selectionSchema, cleaned); err != nil {
		return nil, fmt.Errorf("oracle response rejected: %w", err)
	}

	var parsed struct {
		URLs []string `json:"urls"`
	}
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse oracle response: %w", err)
	}

	// Only candidate URLs are accepted; the oracle may not invent pages.
	allowed := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		allowed[c.URL] = true
	}
	var selected []string
	for _, u := range parsed.URLs {
		u = strings.TrimSuffix(strings.TrimSpace(u), "/")
		if allowed[u] && len(selected) < maxPerBucket {
			selected = append(selected, u)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("oracle returned no usable URLs")
	}
	return selected, nil
}
