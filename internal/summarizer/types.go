package summarizer

import "encoding/json"

// ActionItem is one task the engine recognized in the transcript.
type ActionItem struct {
	Owner string `json:"owner"`
	Task  string `json:"task"`
	Due   string `json:"due"`
}

// Highlight is one timestamped notable moment.
type Highlight struct {
	TS   string `json:"ts"`
	Text string `json:"text"`
}

// TimelineEntry summarizes one time window.
type TimelineEntry struct {
	Range   string   `json:"range"`
	Label   string   `json:"label"`
	Bullets []string `json:"bullets"`
}

// MeetingSummary is the structured result of a whole-meeting
// summarization call. Fields the engine omitted, or returned with the
// wrong shape, are empty rather than failing the run.
type MeetingSummary struct {
	Title         string       `json:"title"`
	Topics        []string     `json:"topics"`
	Summary       []string     `json:"summary"`
	Decisions     []string     `json:"decisions"`
	Actions       []ActionItem `json:"actions"`
	Highlights    []Highlight  `json:"highlights"`
	KeyDiscussion []string     `json:"key_discussion"`
	OpenQuestions []string     `json:"open_questions"`
}

// rawSummary defers per-field decoding so a malformed field degrades to
// empty instead of rejecting the whole response.
type rawSummary struct {
	Title         json.RawMessage `json:"title"`
	Topics        json.RawMessage `json:"topics"`
	Summary       json.RawMessage `json:"summary"`
	Decisions     json.RawMessage `json:"decisions"`
	Actions       json.RawMessage `json:"actions"`
	Highlights    json.RawMessage `json:"highlights"`
	KeyDiscussion json.RawMessage `json:"key_discussion"`
	OpenQuestions json.RawMessage `json:"open_questions"`
}

func coerceString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func coerceStrings(raw json.RawMessage) []string {
	var out []string
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil {
		return []string{}
	}
	return out
}

func coerceActions(raw json.RawMessage) []ActionItem {
	// Owner and due may come back as JSON null.
	var wire []struct {
		Owner *string `json:"owner"`
		Task  *string `json:"task"`
		Due   *string `json:"due"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &wire) != nil {
		return []ActionItem{}
	}

	out := make([]ActionItem, 0, len(wire))
	for _, a := range wire {
		item := ActionItem{}
		if a.Owner != nil {
			item.Owner = *a.Owner
		}
		if a.Task != nil {
			item.Task = *a.Task
		}
		if a.Due != nil {
			item.Due = *a.Due
		}
		out = append(out, item)
	}
	return out
}

func coerceHighlights(raw json.RawMessage) []Highlight {
	var out []Highlight
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil {
		return []Highlight{}
	}
	return out
}

// decodeMeetingSummary parses an engine response into a MeetingSummary,
// coercing absent or wrong-shaped fields to empty values.
func decodeMeetingSummary(data []byte) (*MeetingSummary, error) {
	var raw rawSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return &MeetingSummary{
		Title:         coerceString(raw.Title),
		Topics:        coerceStrings(raw.Topics),
		Summary:       coerceStrings(raw.Summary),
		Decisions:     coerceStrings(raw.Decisions),
		Actions:       coerceActions(raw.Actions),
		Highlights:    coerceHighlights(raw.Highlights),
		KeyDiscussion: coerceStrings(raw.KeyDiscussion),
		OpenQuestions: coerceStrings(raw.OpenQuestions),
	}, nil
}

// decodeTimeline parses an engine response holding a timeline list,
// coercing a missing or malformed list to empty.
func decodeTimeline(data []byte) ([]TimelineEntry, error) {
	var raw struct {
		Timeline json.RawMessage `json:"timeline"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var entries []TimelineEntry
	if len(raw.Timeline) == 0 || json.Unmarshal(raw.Timeline, &entries) != nil {
		return []TimelineEntry{}, nil
	}

	for i := range entries {
		if entries[i].Bullets == nil {
			entries[i].Bullets = []string{}
		}
	}
	return entries, nil
}
