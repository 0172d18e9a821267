package pipeline

import (
	"strings"

	"meeting-scribe/internal/research"
	"meeting-scribe/internal/summarizer"
)

// MeetingNotes is the aggregate record assembled over one pipeline run
// and persisted as the JSON artifact.
type MeetingNotes struct {
	Title            string                     `json:"title"`
	Date             string                     `json:"date"`
	Attendees        []string                   `json:"attendees"`
	Topics           []string                   `json:"topics"`
	Summary          []string                   `json:"summary"`
	Decisions        []string                   `json:"decisions"`
	Actions          []summarizer.ActionItem    `json:"actions"`
	Highlights       []summarizer.Highlight     `json:"highlights"`
	Timeline         []summarizer.TimelineEntry `json:"timeline"`
	KeyDiscussion    []string                   `json:"key_discussion"`
	OpenQuestions    []string                   `json:"open_questions"`
	ResearchRequests []research.Request         `json:"research_requests"`
	ResearchResults  []research.Result          `json:"research_results"`
}

func newMeetingNotes(title, date string, attendees []string) *MeetingNotes {
	if title == "" {
		title = "Team Sync"
	}
	return &MeetingNotes{
		Title:            title,
		Date:             date,
		Attendees:        attendees,
		Topics:           []string{},
		Summary:          []string{},
		Decisions:        []string{},
		Actions:          []summarizer.ActionItem{},
		Highlights:       []summarizer.Highlight{},
		Timeline:         []summarizer.TimelineEntry{},
		KeyDiscussion:    []string{},
		OpenQuestions:    []string{},
		ResearchRequests: []research.Request{},
		ResearchResults:  []research.Result{},
	}
}

func (n *MeetingNotes) applySummary(s *summarizer.MeetingSummary) {
	if s == nil {
		return
	}
	if s.Title != "" {
		n.Title = s.Title
	}
	n.Topics = s.Topics
	n.Summary = s.Summary
	n.Decisions = s.Decisions
	n.Actions = s.Actions
	n.Highlights = s.Highlights
	n.KeyDiscussion = s.KeyDiscussion
	n.OpenQuestions = s.OpenQuestions
}

// inferMeetingType guesses the document-store Type property from the
// meeting title.
func inferMeetingType(title string) string {
	lowered := strings.ToLower(title)
	switch {
	case strings.Contains(lowered, "standup"):
		return "Standup"
	case strings.Contains(lowered, "retro"):
		return "Retro"
	case strings.Contains(lowered, "planning"):
		return "Planning"
	case strings.Contains(lowered, "brainstorm"):
		return "Brainstorm"
	case strings.Contains(lowered, "sync"):
		return "Sync"
	default:
		return ""
	}
}
