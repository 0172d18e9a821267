package transcriber

import (
	"context"
	"time"

	"meeting-scribe/internal/transcript"
)

// Engine is the speech-to-text contract. Given a normalized audio file
// and a language hint it produces ordered segments with start/end times
// and text; speaker identity is attached by the orchestrator.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) ([]transcript.Segment, error)
}

// ProgressObserver is notified after each completed file.
type ProgressObserver interface {
	FileCompleted(index, total int, speaker string, elapsed time.Duration)
}

// CancelToken is polled at whole-file boundaries. A file already in
// progress always completes before cancellation takes effect.
type CancelToken interface {
	Cancelled() bool
}
