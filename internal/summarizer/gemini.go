package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/transcript"
)

type geminiEngine struct {
	cfg    config.GeminiConfig
	logger logger.Logger
}

// NewGeminiEngine creates an Engine backed by the Gemini API.
func NewGeminiEngine(cfg config.GeminiConfig, log logger.Logger) Engine {
	return &geminiEngine{cfg: cfg, logger: log}
}

func (e *geminiEngine) SummarizeMeeting(ctx context.Context, req MeetingRequest) (*MeetingSummary, error) {
	content, err := e.generateJSON(ctx, meetingSystemPrompt+"\n\n"+buildMeetingPrompt(req))
	if err != nil {
		return nil, err
	}
	return decodeMeetingSummary(content)
}

func (e *geminiEngine) SummarizeTimeline(ctx context.Context, windows []transcript.Window) ([]TimelineEntry, error) {
	if len(windows) == 0 {
		return nil, nil
	}
	content, err := e.generateJSON(ctx, timelineSystemPrompt+"\n\n"+buildTimelinePrompt(windows))
	if err != nil {
		return nil, err
	}
	return decodeTimeline(content)
}

func (e *geminiEngine) generateJSON(ctx context.Context, prompt string) ([]byte, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, e.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return []byte(text), nil
}
