package transcript

import (
	"fmt"
	"sort"
	"strings"
)

// FormatTimestamp renders seconds as hh:mm:ss, or mm:ss when alwaysHours
// is false and the value is under one hour.
func FormatTimestamp(seconds float64, alwaysHours bool) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if alwaysHours || h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Merge fuses all per-speaker segment lists into one sequence ordered by
// (start ascending, speaker ascending). The sort is stable, so segments
// with identical start and speaker keep their input order.
func Merge(results []SpeakerTranscript) []Segment {
	var merged []Segment
	for _, r := range results {
		merged = append(merged, r.Segments...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].Speaker < merged[j].Speaker
	})

	return merged
}

// Render produces the speaker-labeled text form of a fused sequence, one
// line per segment. Segments whose text is empty after trimming are
// dropped from the render.
func Render(segments []Segment) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		speaker := seg.Speaker
		if speaker == "" {
			speaker = "Speaker"
		}
		ts := FormatTimestamp(seg.Start, true)
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", ts, speaker, text))
	}
	return strings.Join(lines, "\n")
}

// RenderSpeaker produces the per-speaker text form, timestamped but
// without speaker labels.
func RenderSpeaker(segments []Segment) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		ts := FormatTimestamp(seg.Start, true)
		lines = append(lines, fmt.Sprintf("[%s] %s", ts, text))
	}
	return strings.Join(lines, "\n")
}
