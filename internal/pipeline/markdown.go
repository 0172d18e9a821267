package pipeline

import (
	"fmt"
	"strings"
)

// buildMarkdown renders the notes document with its fixed section
// order: title, date, attendees, summary, decisions, action items,
// highlights, timeline, research requests, research results,
// transcript.
func buildMarkdown(notes *MeetingNotes, transcript string) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s", notes.Title))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Date: %s", notes.Date))
	if len(notes.Attendees) > 0 {
		lines = append(lines, fmt.Sprintf("Attendees: %s", strings.Join(notes.Attendees, ", ")))
	}
	lines = append(lines, "")

	addSection := func(title string, items []string) {
		lines = append(lines, fmt.Sprintf("## %s", title))
		if len(items) > 0 {
			for _, item := range items {
				lines = append(lines, fmt.Sprintf("- %s", item))
			}
		} else {
			lines = append(lines, "- None")
		}
		lines = append(lines, "")
	}

	addSection("Summary", notes.Summary)
	addSection("Decisions", notes.Decisions)

	lines = append(lines, "## Action items")
	if len(notes.Actions) > 0 {
		for _, action := range notes.Actions {
			owner := action.Owner
			if owner == "" {
				owner = "Unassigned"
			}
			suffix := ""
			if action.Due != "" {
				suffix = fmt.Sprintf(" (due %s)", action.Due)
			}
			lines = append(lines, fmt.Sprintf("- %s: %s%s", owner, action.Task, suffix))
		}
	} else {
		lines = append(lines, "- None")
	}
	lines = append(lines, "")

	lines = append(lines, "## Top highlights")
	if len(notes.Highlights) > 0 {
		for _, item := range notes.Highlights {
			lines = append(lines, fmt.Sprintf("- [%s] %s", item.TS, item.Text))
		}
	} else {
		lines = append(lines, "- None")
	}
	lines = append(lines, "")

	lines = append(lines, "## Timeline summary")
	if len(notes.Timeline) > 0 {
		for _, window := range notes.Timeline {
			header := strings.Trim(fmt.Sprintf("%s - %s", window.Range, window.Label), " -")
			lines = append(lines, fmt.Sprintf("**%s**", header))
			for _, bullet := range window.Bullets {
				lines = append(lines, fmt.Sprintf("- %s", bullet))
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "- None")
		lines = append(lines, "")
	}

	lines = append(lines, "## Research requests")
	if len(notes.ResearchRequests) > 0 {
		for _, item := range notes.ResearchRequests {
			lines = append(lines, strings.TrimSpace(fmt.Sprintf("- [%s] %s: %s", item.TS, item.Speaker, item.Query)))
		}
	} else {
		lines = append(lines, "- None")
	}
	lines = append(lines, "")

	lines = append(lines, "## Research results")
	if len(notes.ResearchResults) > 0 {
		for _, item := range notes.ResearchResults {
			lines = append(lines, fmt.Sprintf("**%s**", item.Query))
			for _, res := range item.Results {
				title := res.Title
				if title == "" {
					title = "Result"
				}
				lines = append(lines, strings.TrimSpace(fmt.Sprintf("- %s %s", title, res.URL)))
				if res.Snippet != "" {
					lines = append(lines, fmt.Sprintf("  %s", res.Snippet))
				}
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "- None")
		lines = append(lines, "")
	}

	lines = append(lines, "## Transcript")
	lines = append(lines, "")
	lines = append(lines, transcript)
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}
