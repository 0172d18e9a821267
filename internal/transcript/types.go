package transcript

// Segment is one transcribed utterance. Immutable once produced.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}

// SpeakerTranscript holds one speaker's own segments, chronological
// within the speaker, plus the rendered per-speaker text.
type SpeakerTranscript struct {
	Speaker  string
	Segments []Segment
	Text     string
}

// Window is one fixed-duration bucket of the fused transcript.
type Window struct {
	Index    int       `json:"index"`
	Range    string    `json:"range"`
	Segments []Segment `json:"segments"`
}
