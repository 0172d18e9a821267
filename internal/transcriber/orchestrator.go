package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"meeting-scribe/internal/catalog"
	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/transcript"
	"meeting-scribe/pkg/executor"
)

// Orchestrator drives the engine over every recording in a directory,
// in catalog order, reporting progress and honoring cancellation
// between files.
type Orchestrator struct {
	engine   Engine
	executor executor.Executor
	logger   logger.Logger
	language string
}

// NewOrchestrator creates an Orchestrator around a speech-to-text engine.
func NewOrchestrator(engine Engine, exec executor.Executor, log logger.Logger, language string) *Orchestrator {
	return &Orchestrator{
		engine:   engine,
		executor: exec,
		logger:   log,
		language: language,
	}
}

// TranscribeDirectory transcribes every supported recording in dir.
// Speaker identity comes from the filename stem. The returned bool is
// true when a cancellation request stopped the run early; the results
// completed so far are still returned.
func (o *Orchestrator) TranscribeDirectory(ctx context.Context, dir string, obs ProgressObserver, token CancelToken) ([]transcript.SpeakerTranscript, bool, error) {
	files, err := catalog.ListAudioFiles(dir)
	if err != nil {
		return nil, false, err
	}
	if len(files) == 0 {
		return nil, false, nil
	}

	workDir, err := os.MkdirTemp("", "scribe-audio-*")
	if err != nil {
		return nil, false, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	total := len(files)
	var results []transcript.SpeakerTranscript

	for i, path := range files {
		if token != nil && token.Cancelled() {
			o.logger.Info(ctx, "Transcription cancelled after %d/%d files", len(results), total)
			return results, true, nil
		}

		speaker := catalog.SpeakerFromPath(path)
		start := time.Now()

		normalized, err := normalizeAudio(ctx, o.executor, path, workDir)
		if err != nil {
			return results, false, err
		}

		segments, err := o.engine.Transcribe(ctx, normalized, o.language)
		if err != nil {
			return results, false, fmt.Errorf("transcribe %s: %w", speaker, err)
		}

		kept := make([]transcript.Segment, 0, len(segments))
		for _, seg := range segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			seg.Speaker = speaker
			kept = append(kept, seg)
		}

		results = append(results, transcript.SpeakerTranscript{
			Speaker:  speaker,
			Segments: kept,
			Text:     transcript.RenderSpeaker(kept),
		})

		elapsed := time.Since(start)
		o.logger.Info(ctx, "Transcribed %s (%d/%d) in %s: %d segments",
			speaker, i+1, total, elapsed.Round(time.Millisecond), len(kept))
		if obs != nil {
			obs.FileCompleted(i+1, total, speaker, elapsed)
		}
	}

	return results, false, nil
}
