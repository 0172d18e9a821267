package summarizer

import (
	"context"

	"meeting-scribe/internal/transcript"
)

// MeetingRequest carries the inputs for a whole-meeting summary.
type MeetingRequest struct {
	Transcript string
	Attendees  []string
	Date       string
	TitleHint  string
}

// Engine is the summarization contract: structured meeting notes from a
// transcript, and a per-window timeline from chunked segments.
type Engine interface {
	SummarizeMeeting(ctx context.Context, req MeetingRequest) (*MeetingSummary, error)
	SummarizeTimeline(ctx context.Context, windows []transcript.Window) ([]TimelineEntry, error)
}
