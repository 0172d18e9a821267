package summarizer

import (
	"fmt"

	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
)

// New selects a summarization engine from configuration.
func New(cfg config.SummarizerConfig, log logger.Logger) (Engine, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIEngine(cfg.OpenAI, log), nil
	case "gemini":
		return NewGeminiEngine(cfg.Gemini, log), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider: %s", cfg.Provider)
	}
}
