package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/prep-coach/internal/types"
)

// GoogleSearch implements Searcher with the Google Custom Search API.
type GoogleSearch struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearch creates a search client for the given API key and engine ID.
func NewGoogleSearch(ctx context.Context, apiKey, cx string) (*GoogleSearch, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearch{
		svc: svc,
		cx:  cx,
	}, nil
}

// Search runs one query and returns at most limit results.
func (g *GoogleSearch) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	call := g.svc.Cse.List().Cx(g.cx).Q(query).Context(ctx)
	if limit > 0 {
		if limit > 10 {
			limit = 10 // API page size ceiling
		}
		call = call.Num(int64(limit))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapGoogleError("customsearch", err)
	}

	results := make([]types.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, types.SearchResult{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// mapGoogleError folds googleapi status codes into the executor taxonomy.
func mapGoogleError(tool string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %v: %w", tool, apiErr, ErrAuth)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %v: %w", tool, apiErr, ErrRateLimited)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %v: %w", tool, apiErr, ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", tool, err)
}
