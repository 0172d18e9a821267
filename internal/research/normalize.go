package research

import "regexp"

// TriggerKeyword is the canonical activation keyword.
const TriggerKeyword = "craig"

// misspellingRe matches whole-word, case-insensitive occurrences of the
// near-miss spellings the transcription engine tends to produce. Word
// boundaries keep longer words containing these substrings untouched.
var misspellingRe = regexp.MustCompile(`(?i)\b(quag|crag|graig|craiq|creg)\b`)

// NormalizeTriggerText replaces near-miss spellings of the activation
// keyword with its canonical form, leaving all other text unchanged.
func NormalizeTriggerText(text string) string {
	return misspellingRe.ReplaceAllString(text, TriggerKeyword)
}
