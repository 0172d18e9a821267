package research

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTriggers is the built-in activation vocabulary, canonical
// spelling plus near-misses that survive normalization boundaries.
var DefaultTriggers = []string{
	"craig",
	"quag",
	"crag",
	"graig",
	"craig.",
}

// DefaultVerbs is the built-in command verb vocabulary.
var DefaultVerbs = []string{
	"google",
	"googl",
	"goodgle",
	"search",
	"research",
	"find",
	"lookup",
	"look up",
	"check",
}

// Request is one detected in-meeting research command. Read-only after
// extraction.
type Request struct {
	TS      string `json:"ts"`
	Speaker string `json:"speaker"`
	Query   string `json:"query"`
	RawLine string `json:"-"`
}

// lineRe matches the rendered transcript line shape the extractor
// operates on: [hh:mm:ss] Speaker: text.
var lineRe = regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]\s+([^:]+):\s+(.+)$`)

// defaultCommandRe is the command grammar for the built-in vocabularies;
// custom vocabularies compile their own.
var defaultCommandRe = compileCommandRe(DefaultTriggers, DefaultVerbs)

func alternation(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return strings.Join(quoted, "|")
}

func compileCommandRe(triggers, verbs []string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)\b(%s)\b\s*[,:\-]?\s*(%s)\s+(.+)$`,
		alternation(triggers), alternation(verbs)))
}

// Extract scans a speaker-labeled transcript for research commands of
// the form "<trigger> <verb> <query>". Lines that do not match the
// labeled-line shape, or whose command grammar does not match, are
// silently skipped. Empty trigger or verb lists fall back to the
// defaults.
func Extract(transcript string, triggers, verbs []string) []Request {
	if transcript == "" {
		return nil
	}

	commandRe := defaultCommandRe
	if len(triggers) > 0 || len(verbs) > 0 {
		if len(triggers) == 0 {
			triggers = DefaultTriggers
		}
		if len(verbs) == 0 {
			verbs = DefaultVerbs
		}
		commandRe = compileCommandRe(triggers, verbs)
	}

	var results []Request
	for _, rawLine := range strings.Split(transcript, "\n") {
		match := lineRe.FindStringSubmatch(strings.TrimSpace(rawLine))
		if match == nil {
			continue
		}

		ts := match[1]
		speaker := strings.TrimSpace(match[2])
		text := NormalizeTriggerText(match[3])

		cmd := commandRe.FindStringSubmatch(text)
		if cmd == nil {
			continue
		}

		query := strings.TrimSpace(cmd[3])
		if query == "" {
			continue
		}

		results = append(results, Request{
			TS:      ts,
			Speaker: speaker,
			Query:   query,
			RawLine: rawLine,
		})
	}

	return results
}
