package notion

import (
	"context"

	"meeting-scribe/internal/research"
	"meeting-scribe/internal/summarizer"
)

// Page carries everything the uploader writes into the document store.
type Page struct {
	Title            string
	Date             string
	Project          string
	MeetingType      string
	Attendees        []string
	ActionsCount     int
	DecisionsCount   int
	Status           string
	RecordingURL     string
	Summary          []string
	Decisions        []string
	Actions          []summarizer.ActionItem
	Highlights       []summarizer.Highlight
	Timeline         []summarizer.TimelineEntry
	ResearchRequests []research.Request
	ResearchResults  []research.Result
	Transcript       string
}

// Uploader creates a meeting-notes record and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, page Page) (string, error)
}
