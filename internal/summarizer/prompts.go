package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"meeting-scribe/internal/transcript"
)

const meetingSystemPrompt = "You produce accurate meeting notes from transcripts. " +
	"Only use content that appears in the transcript. " +
	"Do not invent decisions or actions. " +
	"Return strict JSON only."

const timelineSystemPrompt = "You generate timeline summaries for meeting transcripts. " +
	"Only use the provided text. Return strict JSON only."

func buildMeetingPrompt(req MeetingRequest) string {
	attendees := "Unknown"
	if len(req.Attendees) > 0 {
		attendees = strings.Join(req.Attendees, ", ")
	}

	return fmt.Sprintf(`Create structured meeting notes from this transcript.

Date: %s
Attendees (from file names): %s
Meeting title hint (may be blank): %s

JSON schema to output:
{
  "title": string,
  "topics": [string],
  "summary": [string],
  "decisions": [string],
  "actions": [{"owner": string|null, "task": string, "due": string|null}],
  "highlights": [{"ts": string, "text": string}],
  "key_discussion": [string],
  "open_questions": [string]
}

Rules:
- If meeting title hint is blank, generate a short 3-7 word title based on the dominant theme.
- If title hint is provided, use it verbatim.
- Highlights must be 5-8 items, each with timestamp like mm:ss or hh:mm:ss and one sentence.
- Actions must only include tasks clearly stated in transcript.
- Decisions should be explicit.
- Keep summary and key discussion concise.

Transcript:
%s`, req.Date, attendees, req.TitleHint, req.Transcript)
}

type windowPayload struct {
	Range string `json:"range"`
	Text  string `json:"text"`
}

func buildTimelinePrompt(windows []transcript.Window) string {
	payload := make([]windowPayload, 0, len(windows))
	for _, win := range windows {
		var lines []string
		for _, seg := range win.Segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			speaker := seg.Speaker
			if speaker == "" {
				speaker = "Speaker"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", speaker, text))
		}
		payload = append(payload, windowPayload{
			Range: win.Range,
			Text:  strings.Join(lines, "\n"),
		})
	}

	encoded, _ := json.Marshal(payload)

	return fmt.Sprintf(`Summarise each time window into a short chapter label and 3-6 bullets.

Return JSON:
{
  "timeline": [
    {"range": string, "label": string, "bullets": [string]}
  ]
}

Rules:
- Keep labels short and descriptive.
- Bullets must be grounded in the text.

Windows:
%s`, encoded)
}
