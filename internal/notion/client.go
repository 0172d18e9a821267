package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	notionVersion  = "2022-06-28"
)

type client struct {
	token      string
	databaseID string
	baseURL    string
	http       *http.Client
	logger     logger.Logger
}

// New creates a document-store Uploader backed by the Notion API.
func New(cfg config.NotionConfig, log logger.Logger) Uploader {
	return &client{
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		baseURL:    defaultBaseURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		logger:     log,
	}
}

// Upload creates the page with schema-filtered properties and appends
// the fixed body structure in batches.
func (c *client) Upload(ctx context.Context, page Page) (string, error) {
	titleProp, dbProps, err := c.retrieveDatabase(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieve database: %w", err)
	}

	properties := c.buildProperties(page, titleProp, dbProps)

	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	payload := map[string]interface{}{
		"parent":     map[string]string{"database_id": c.databaseID},
		"properties": properties,
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/pages", payload, &created); err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}

	for _, chunk := range chunkBlocks(buildBlocks(page), appendBatchSize) {
		body := map[string]interface{}{"children": chunk}
		if err := c.doJSON(ctx, http.MethodPatch, c.baseURL+"/blocks/"+created.ID+"/children", body, nil); err != nil {
			return "", fmt.Errorf("append blocks: %w", err)
		}
	}

	return created.URL, nil
}

// retrieveDatabase fetches the target schema so properties can be
// filtered to the fields the database actually declares.
func (c *client) retrieveDatabase(ctx context.Context) (string, map[string]bool, error) {
	var parsed struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/databases/"+c.databaseID, nil, &parsed); err != nil {
		return "", nil, err
	}

	titleProp := "Name"
	declared := make(map[string]bool, len(parsed.Properties))
	for name, prop := range parsed.Properties {
		declared[name] = true
		if prop.Type == "title" {
			titleProp = name
		}
	}

	return titleProp, declared, nil
}

func (c *client) buildProperties(page Page, titleProp string, declared map[string]bool) map[string]interface{} {
	attendees := make([]map[string]string, 0, len(page.Attendees))
	for _, name := range page.Attendees {
		attendees = append(attendees, map[string]string{"name": name})
	}

	desired := map[string]interface{}{
		"Date":      map[string]interface{}{"date": map[string]string{"start": page.Date}},
		"Status":    map[string]interface{}{"select": map[string]string{"name": page.Status}},
		"Actions":   map[string]interface{}{"number": page.ActionsCount},
		"Decisions": map[string]interface{}{"number": page.DecisionsCount},
		"Attendees": map[string]interface{}{"multi_select": attendees},
	}
	desired[titleProp] = map[string]interface{}{
		"title": []map[string]interface{}{
			{"text": map[string]string{"content": page.Title}},
		},
	}

	if page.Project != "" {
		desired["Project"] = map[string]interface{}{"select": map[string]string{"name": page.Project}}
	}
	if page.MeetingType != "" {
		desired["Type"] = map[string]interface{}{"select": map[string]string{"name": page.MeetingType}}
	}
	if page.RecordingURL != "" {
		desired["Recording"] = map[string]interface{}{"url": page.RecordingURL}
	}

	filtered := make(map[string]interface{})
	for key, value := range desired {
		if declared[key] {
			filtered[key] = value
		}
	}
	return filtered
}

func (c *client) doJSON(ctx context.Context, method, url string, payload, target interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	var lastErr error
	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", notionVersion)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("notion server error: %d %s", resp.StatusCode, respBody)
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("notion request failed: %d %s", resp.StatusCode, respBody)
			return backoff.Permanent(lastErr)
		}

		if target != nil {
			if err := json.Unmarshal(respBody, target); err != nil {
				lastErr = fmt.Errorf("notion decode error: %w", err)
				return backoff.Permanent(lastErr)
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return lastErr
	}
	return nil
}
