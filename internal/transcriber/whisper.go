package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meeting-scribe/internal/config"
	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/transcript"
	"meeting-scribe/pkg/executor"
)

type whisperEngine struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperEngine creates an Engine backed by the whisper.cpp CLI.
func NewWhisperEngine(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Engine {
	return &whisperEngine{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// modelFile maps the configured model tier onto a ggml model path.
func (w *whisperEngine) modelFile() string {
	return filepath.Join(w.cfg.ModelDir, "ggml-"+w.cfg.Model+".bin")
}

// Transcribe runs whisper.cpp over a normalized WAV file and parses its
// JSON output into segments.
func (w *whisperEngine) Transcribe(ctx context.Context, audioPath, language string) ([]transcript.Segment, error) {
	if language == "" {
		language = w.cfg.Language
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	// -oj: JSON output with per-segment offsets
	// -l: force language (prevents hallucination)
	// -bo: best of 5 for better accuracy
	args := []string{
		"-m", w.modelFile(),
		"-f", audioPath,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	w.logger.Debug(ctx, "whisper transcribe: %s (model %s, %d threads)",
		filepath.Base(audioPath), w.cfg.Model, w.cfg.Threads)

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(jsonPath)

	segments, err := parseWhisperOutput(data)
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	return segments, nil
}

// whisperOutput mirrors the whisper.cpp JSON file layout. Offsets are
// milliseconds from the start of the recording.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseWhisperOutput(data []byte) ([]transcript.Segment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	var segments []transcript.Segment
	for _, entry := range out.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Start: float64(entry.Offsets.From) / 1000.0,
			End:   float64(entry.Offsets.To) / 1000.0,
			Text:  text,
		})
	}

	return segments, nil
}
