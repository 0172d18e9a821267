package notion

import (
	"fmt"
	"strings"
)

// transcriptChunkSize bounds each transcript paragraph block; Notion
// rejects rich text runs over 2000 characters.
const transcriptChunkSize = 1800

// appendBatchSize is the Notion API limit on children per append call.
const appendBatchSize = 50

type block = map[string]interface{}

func richText(text string, bold bool) []block {
	return []block{
		{
			"type":        "text",
			"text":        block{"content": text},
			"annotations": block{"bold": bold},
		},
	}
}

func heading(text string) block {
	return block{
		"object":    "block",
		"type":      "heading_2",
		"heading_2": block{"rich_text": richText(text, false)},
	}
}

func paragraph(text string) block {
	return block{
		"object":    "block",
		"type":      "paragraph",
		"paragraph": block{"rich_text": richText(text, false)},
	}
}

func bulleted(text string) block {
	return block{
		"object":             "block",
		"type":               "bulleted_list_item",
		"bulleted_list_item": block{"rich_text": richText(text, false)},
	}
}

func todo(text string) block {
	return block{
		"object": "block",
		"type":   "to_do",
		"to_do":  block{"rich_text": richText(text, false), "checked": false},
	}
}

func callout(text string) block {
	return block{
		"object":  "block",
		"type":    "callout",
		"callout": block{"rich_text": richText(text, false)},
	}
}

func toggle(title string, children []block) block {
	return block{
		"object": "block",
		"type":   "toggle",
		"toggle": block{"rich_text": richText(title, false), "children": children},
	}
}

// chunkText splits text into paragraph-sized pieces no longer than
// maxChars, splitting on newlines first.
func chunkText(text string, maxChars int) []string {
	if text == "" {
		return nil
	}

	var parts []string
	for _, paragraph := range strings.Split(text, "\n") {
		para := strings.TrimSpace(paragraph)
		if para == "" {
			continue
		}
		for len(para) > maxChars {
			parts = append(parts, para[:maxChars])
			para = para[maxChars:]
		}
		parts = append(parts, para)
	}

	return parts
}

func chunkBlocks(blocks []block, size int) [][]block {
	var chunks [][]block
	for i := 0; i < len(blocks); i += size {
		end := i + size
		if end > len(blocks) {
			end = len(blocks)
		}
		chunks = append(chunks, blocks[i:end])
	}
	return chunks
}

// buildBlocks renders the fixed page body: callout, then the labeled
// sections in their documented order, ending with the collapsible
// transcript.
func buildBlocks(page Page) []block {
	var blocks []block
	blocks = append(blocks, callout("Auto-generated meeting notes. Transcript stored below."))

	blocks = append(blocks, heading("Summary"))
	if len(page.Summary) > 0 {
		for _, item := range page.Summary {
			blocks = append(blocks, bulleted(item))
		}
	} else {
		blocks = append(blocks, bulleted("No summary generated."))
	}

	blocks = append(blocks, heading("Decisions"))
	if len(page.Decisions) > 0 {
		for _, item := range page.Decisions {
			blocks = append(blocks, bulleted(item))
		}
	} else {
		blocks = append(blocks, bulleted("No explicit decisions recorded."))
	}

	blocks = append(blocks, heading("Action items"))
	if len(page.Actions) > 0 {
		for _, item := range page.Actions {
			owner := item.Owner
			if owner == "" {
				owner = "Unassigned"
			}
			suffix := ""
			if item.Due != "" {
				suffix = fmt.Sprintf(" (due %s)", item.Due)
			}
			blocks = append(blocks, todo(strings.TrimSpace(fmt.Sprintf("%s - %s%s", owner, item.Task, suffix))))
		}
	} else {
		blocks = append(blocks, todo("No action items captured."))
	}

	blocks = append(blocks, heading("Top highlights"))
	if len(page.Highlights) > 0 {
		for _, item := range page.Highlights {
			blocks = append(blocks, bulleted(strings.TrimSpace(fmt.Sprintf("[%s] %s", item.TS, item.Text))))
		}
	} else {
		blocks = append(blocks, bulleted("No highlights generated."))
	}

	blocks = append(blocks, heading("Timeline summary"))
	if len(page.Timeline) > 0 {
		for _, window := range page.Timeline {
			title := strings.Trim(fmt.Sprintf("%s - %s", window.Range, window.Label), " -")
			blocks = append(blocks, paragraph(title))
			for _, bullet := range window.Bullets {
				blocks = append(blocks, bulleted(bullet))
			}
		}
	} else {
		blocks = append(blocks, bulleted("No timeline summary generated."))
	}

	blocks = append(blocks, heading("Research requests"))
	if len(page.ResearchRequests) > 0 {
		for _, item := range page.ResearchRequests {
			blocks = append(blocks, bulleted(strings.TrimSpace(fmt.Sprintf("[%s] %s: %s", item.TS, item.Speaker, item.Query))))
		}
	} else {
		blocks = append(blocks, bulleted("No research requests recorded."))
	}

	blocks = append(blocks, heading("Research results"))
	if len(page.ResearchResults) > 0 {
		for _, item := range page.ResearchResults {
			blocks = append(blocks, paragraph(item.Query))
			for _, res := range item.Results {
				title := res.Title
				if title == "" {
					title = "Result"
				}
				blocks = append(blocks, bulleted(strings.TrimSpace(fmt.Sprintf("%s %s", title, res.URL))))
				if res.Snippet != "" {
					blocks = append(blocks, paragraph(res.Snippet))
				}
			}
		}
	} else {
		blocks = append(blocks, bulleted("No research results available."))
	}

	blocks = append(blocks, heading("Transcript"))
	var transcriptChildren []block
	for _, part := range chunkText(page.Transcript, transcriptChunkSize) {
		transcriptChildren = append(transcriptChildren, paragraph(part))
	}
	blocks = append(blocks, toggle("Full transcript (speaker-labelled)", transcriptChildren))

	return blocks
}
