package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meeting-scribe/internal/logger"
	"meeting-scribe/internal/research"
	"meeting-scribe/internal/summarizer"
)

func TestChunkText(t *testing.T) {
	long := strings.Repeat("a", 4000)
	parts := chunkText(long, 1800)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	if len(parts[0]) != 1800 || len(parts[2]) != 400 {
		t.Errorf("part sizes = %d %d %d", len(parts[0]), len(parts[1]), len(parts[2]))
	}
}

func TestChunkTextSplitsOnNewlines(t *testing.T) {
	parts := chunkText("first\n\nsecond\nthird", 1800)
	if len(parts) != 3 {
		t.Fatalf("parts = %v", parts)
	}
	if parts[0] != "first" || parts[2] != "third" {
		t.Errorf("parts = %v", parts)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	if parts := chunkText("", 1800); parts != nil {
		t.Errorf("parts = %v, want nil", parts)
	}
}

func TestChunkBlocks(t *testing.T) {
	blocks := make([]block, 120)
	chunks := chunkBlocks(blocks, 50)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 50 || len(chunks[2]) != 20 {
		t.Errorf("chunk sizes = %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func blockTypes(blocks []block) []string {
	var types []string
	for _, b := range blocks {
		types = append(types, b["type"].(string))
	}
	return types
}

func TestBuildBlocksOrder(t *testing.T) {
	page := Page{
		Summary:    []string{"we met"},
		Transcript: "[00:00:00] alice: hi",
	}

	blocks := buildBlocks(page)
	types := blockTypes(blocks)

	if types[0] != "callout" {
		t.Errorf("first block = %v, want callout", types[0])
	}
	if types[len(types)-1] != "toggle" {
		t.Errorf("last block = %v, want toggle", types[len(types)-1])
	}

	// Eight heading_2 blocks: summary, decisions, action items,
	// highlights, timeline, research requests, research results,
	// transcript.
	headings := 0
	for _, typ := range types {
		if typ == "heading_2" {
			headings++
		}
	}
	if headings != 8 {
		t.Errorf("got %d headings, want 8", headings)
	}
}

func TestBuildBlocksPlaceholders(t *testing.T) {
	blocks := buildBlocks(Page{})

	var texts []string
	for _, b := range blocks {
		data, _ := json.Marshal(b)
		texts = append(texts, string(data))
	}
	joined := strings.Join(texts, "\n")

	for _, want := range []string{
		"No summary generated.",
		"No explicit decisions recorded.",
		"No action items captured.",
		"No highlights generated.",
		"No timeline summary generated.",
		"No research requests recorded.",
		"No research results available.",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("placeholder %q missing", want)
		}
	}
}

func TestUpload(t *testing.T) {
	var createdProps map[string]interface{}
	appendCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/databases/db-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"properties": map[string]interface{}{
				"Title":     map[string]string{"type": "title"},
				"Date":      map[string]string{"type": "date"},
				"Status":    map[string]string{"type": "select"},
				"Attendees": map[string]string{"type": "multi_select"},
				// No Actions/Decisions/Project/Type/Recording columns.
			},
		})
	})
	mux.HandleFunc("/pages", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Properties map[string]interface{} `json:"properties"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		createdProps = payload.Properties
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "page-1",
			"url": "https://notion.so/page-1",
		})
	})
	mux.HandleFunc("/blocks/page-1/children", func(w http.ResponseWriter, r *http.Request) {
		appendCalls++
		var payload struct {
			Children []json.RawMessage `json:"children"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		if len(payload.Children) > 50 {
			t.Errorf("append batch = %d blocks, want <= 50", len(payload.Children))
		}
		w.Write([]byte("{}"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c := &client{
		token:      "secret",
		databaseID: "db-1",
		baseURL:    server.URL,
		http:       &http.Client{Timeout: 5 * time.Second},
		logger:     logger.New("error", "text"),
	}

	page := Page{
		Title:          "2024-03-01 - Team Sync",
		Date:           "2024-03-01",
		Project:        "Apollo",
		Attendees:      []string{"alice", "bob"},
		ActionsCount:   2,
		DecisionsCount: 1,
		Status:         "Draft",
		Summary:        []string{"we met"},
		Actions:        []summarizer.ActionItem{{Owner: "alice", Task: "ship it"}},
		ResearchResults: []research.Result{
			{Query: "pizza", Results: []research.SearchResult{{Title: "Best", URL: "https://x"}}},
		},
		Transcript: "[00:00:00] alice: hi",
	}

	url, err := c.Upload(context.Background(), page)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://notion.so/page-1" {
		t.Errorf("url = %v", url)
	}
	if appendCalls == 0 {
		t.Error("no block append calls made")
	}

	// Properties filtered to the declared schema.
	if _, ok := createdProps["Title"]; !ok {
		t.Error("Title property missing")
	}
	if _, ok := createdProps["Project"]; ok {
		t.Error("Project should be filtered out (not in schema)")
	}
	if _, ok := createdProps["Actions"]; ok {
		t.Error("Actions should be filtered out (not in schema)")
	}
}
