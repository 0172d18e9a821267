package research

import (
	"context"

	"meeting-scribe/internal/logger"
)

// SearchResult is one hit returned by a web-search provider.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Result pairs a research request with the provider's answers.
type Result struct {
	TS      string         `json:"ts"`
	Speaker string         `json:"speaker"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// Provider is the web-search contract.
type Provider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type noneProvider struct{}

func (noneProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return nil, nil
}

// NewProvider selects a search provider by name. "none" (or an unknown
// name, or a missing credential) yields the explicit no-op provider.
func NewProvider(name, apiKey string, maxResults int, log logger.Logger) Provider {
	switch name {
	case "tavily":
		if apiKey == "" {
			log.Warn(context.Background(), "tavily provider selected without api key; research disabled")
			return noneProvider{}
		}
		return newTavilyProvider(apiKey, maxResults, log)
	default:
		return noneProvider{}
	}
}

// Run executes every request against the provider. Per-query failures
// are logged and yield an entry with empty results; the first error is
// returned so the caller can mark the stage degraded.
func Run(ctx context.Context, provider Provider, requests []Request, log logger.Logger) ([]Result, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	var firstErr error
	results := make([]Result, 0, len(requests))
	for _, req := range requests {
		hits, err := provider.Search(ctx, req.Query)
		if err != nil {
			log.Warn(ctx, "research query %q failed: %v", req.Query, err)
			if firstErr == nil {
				firstErr = err
			}
			hits = nil
		}
		results = append(results, Result{
			TS:      req.TS,
			Speaker: req.Speaker,
			Query:   req.Query,
			Results: hits,
		})
	}

	return results, firstErr
}
