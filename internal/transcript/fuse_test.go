package transcript

import (
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds    float64
		alwaysHour bool
		want       string
	}{
		{0, true, "00:00:00"},
		{65, true, "00:01:05"},
		{65, false, "01:05"},
		{3725, false, "01:02:05"},
		{3725, true, "01:02:05"},
		{-3, true, "00:00:00"},
		{59.9, false, "00:59"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds, tt.alwaysHour); got != tt.want {
			t.Errorf("FormatTimestamp(%v, %v) = %v, want %v", tt.seconds, tt.alwaysHour, got, tt.want)
		}
	}
}

func TestMergeOrdering(t *testing.T) {
	results := []SpeakerTranscript{
		{
			Speaker: "bob",
			Segments: []Segment{
				{Start: 30, End: 33, Speaker: "bob", Text: "second"},
				{Start: 70, End: 72, Speaker: "bob", Text: "fourth"},
			},
		},
		{
			Speaker: "alice",
			Segments: []Segment{
				{Start: 0, End: 4, Speaker: "alice", Text: "first"},
				{Start: 65, End: 68, Speaker: "alice", Text: "third"},
			},
		},
	}

	merged := Merge(results)
	if len(merged) != 4 {
		t.Fatalf("got %d segments, want 4", len(merged))
	}

	wantOrder := []string{"first", "second", "third", "fourth"}
	for i, want := range wantOrder {
		if merged[i].Text != want {
			t.Errorf("merged[%d].Text = %v, want %v", i, merged[i].Text, want)
		}
	}
}

func TestMergeTieBreakBySpeaker(t *testing.T) {
	results := []SpeakerTranscript{
		{Speaker: "zoe", Segments: []Segment{{Start: 10, End: 12, Speaker: "zoe", Text: "z"}}},
		{Speaker: "amy", Segments: []Segment{{Start: 10, End: 11, Speaker: "amy", Text: "a"}}},
	}

	merged := Merge(results)
	if merged[0].Speaker != "amy" || merged[1].Speaker != "zoe" {
		t.Errorf("tie-break order = [%s %s], want [amy zoe]", merged[0].Speaker, merged[1].Speaker)
	}
}

func TestMergeStable(t *testing.T) {
	// Identical (start, speaker) keys must keep input order.
	results := []SpeakerTranscript{
		{Speaker: "alice", Segments: []Segment{
			{Start: 5, End: 6, Speaker: "alice", Text: "one"},
			{Start: 5, End: 7, Speaker: "alice", Text: "two"},
		}},
	}

	merged := Merge(results)
	if merged[0].Text != "one" || merged[1].Text != "two" {
		t.Errorf("stable order lost: [%s %s]", merged[0].Text, merged[1].Text)
	}
}

func TestMergeNoLossNoDuplication(t *testing.T) {
	results := []SpeakerTranscript{
		{Speaker: "a", Segments: []Segment{
			{Start: 3, End: 4, Speaker: "a", Text: "a1"},
			{Start: 9, End: 10, Speaker: "a", Text: "a2"},
		}},
		{Speaker: "b", Segments: []Segment{
			{Start: 1, End: 2, Speaker: "b", Text: "b1"},
		}},
	}

	merged := Merge(results)
	seen := map[string]int{}
	for _, seg := range merged {
		seen[seg.Text]++
	}
	for _, text := range []string{"a1", "a2", "b1"} {
		if seen[text] != 1 {
			t.Errorf("segment %q appears %d times, want 1", text, seen[text])
		}
	}
}

func TestRender(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Speaker: "alice", Text: "Hello there"},
		{Start: 30, End: 31, Speaker: "bob", Text: "   "},
		{Start: 65, End: 67, Speaker: "alice", Text: "  Still here  "},
	}

	got := Render(segments)
	want := "[00:00:00] alice: Hello there\n[00:01:05] alice: Still here"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderForcesHours(t *testing.T) {
	got := Render([]Segment{{Start: 12, End: 13, Speaker: "bob", Text: "hi"}})
	if !strings.HasPrefix(got, "[00:00:12]") {
		t.Errorf("Render() = %q, want hh:mm:ss timestamp", got)
	}
}

func TestRenderSpeaker(t *testing.T) {
	segments := []Segment{
		{Start: 5, End: 6, Speaker: "alice", Text: "First"},
		{Start: 70, End: 71, Speaker: "alice", Text: "Second"},
	}

	got := RenderSpeaker(segments)
	want := "[00:00:05] First\n[00:01:10] Second"
	if got != want {
		t.Errorf("RenderSpeaker() = %q, want %q", got, want)
	}
}
