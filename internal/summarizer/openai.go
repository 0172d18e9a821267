package summarizer

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
	"meeting-scribe/internal/transcript"
)

type openAIEngine struct {
	cfg    config.OpenAIConfig
	client *http.Client
	logger logger.Logger
}

// NewOpenAIEngine creates an Engine backed by the OpenAI chat
// completions API in JSON mode. Calls try the configured model first
// and fall back to the fallback model on failure.
func NewOpenAIEngine(cfg config.OpenAIConfig, log logger.Logger) Engine {
	return &openAIEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
		logger: log,
	}
}

func (e *openAIEngine) SummarizeMeeting(ctx context.Context, req MeetingRequest) (*MeetingSummary, error) {
	content, err := e.completeJSON(ctx, meetingSystemPrompt, buildMeetingPrompt(req))
	if err != nil {
		return nil, err
	}
	return decodeMeetingSummary(content)
}

func (e *openAIEngine) SummarizeTimeline(ctx context.Context, windows []transcript.Window) ([]TimelineEntry, error) {
	if len(windows) == 0 {
		return nil, nil
	}
	content, err := e.completeJSON(ctx, timelineSystemPrompt, buildTimelinePrompt(windows))
	if err != nil {
		return nil, err
	}
	return decodeTimeline(content)
}

// completeJSON runs a JSON-mode chat completion, trying the primary
// model and then the fallback.
func (e *openAIEngine) completeJSON(ctx context.Context, system, user string) ([]byte, error) {
	models := []string{e.cfg.Model}
	if e.cfg.FallbackModel != "" && e.cfg.FallbackModel != e.cfg.Model {
		models = append(models, e.cfg.FallbackModel)
	}

	var lastErr error
	for _, model := range models {
		content, err := e.chatCompletion(ctx, model, system, user)
		if err == nil {
			return content, nil
		}
		lastErr = err
		e.logger.Warn(ctx, "summarization with model %s failed: %v", model, err)
	}

	return nil, lastErr
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *openAIEngine) chatCompletion(ctx context.Context, model, system, user string) ([]byte, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.2,
	})
	if err != nil {
		return nil, err
	}

	var content string
	var lastErr error

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)

		resp, err := e.client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("openai server error: %d %s", resp.StatusCode, body)
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("openai request failed: %d %s", resp.StatusCode, body)
			return backoff.Permanent(lastErr)
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("openai decode error: %w", err)
			return backoff.Permanent(lastErr)
		}
		if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
			lastErr = fmt.Errorf("empty response from openai")
			return backoff.Permanent(lastErr)
		}

		content = parsed.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 60 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, lastErr
	}

	return []byte(content), nil
}
