package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"meeting-scribe/internal/logger"
)

const tavilyEndpoint = "https://api.tavily.com/search"

type tavilyProvider struct {
	apiKey     string
	maxResults int
	endpoint   string
	client     *http.Client
	logger     logger.Logger
}

func newTavilyProvider(apiKey string, maxResults int, log logger.Logger) Provider {
	return &tavilyProvider{
		apiKey:     apiKey,
		maxResults: maxResults,
		endpoint:   tavilyEndpoint,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     log,
	}
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
		Snippet string `json:"snippet"`
	} `json:"results"`
}

func (t *tavilyProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"api_key":        t.apiKey,
		"query":          query,
		"max_results":    t.maxResults,
		"include_answer": false,
		"include_images": false,
	})
	if err != nil {
		return nil, err
	}

	var parsed tavilyResponse
	var lastErr error

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("tavily server error: %s", body)
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("tavily request failed: %d %s", resp.StatusCode, body)
			return backoff.Permanent(lastErr)
		}

		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("tavily decode error: %w", err)
			return lastErr
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, lastErr
	}

	results := make([]SearchResult, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		snippet := item.Content
		if snippet == "" {
			snippet = item.Snippet
		}
		results = append(results, SearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: snippet,
		})
	}

	return results, nil
}
