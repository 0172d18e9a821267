package research

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meeting-scribe/internal/logger"
)

func TestNormalizeTriggerText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single misspelling", "hey quag over here", "hey craig over here"},
		{"case insensitive", "Crag, search for it", "craig, search for it"},
		{"multiple", "graig then creg spoke", "craig then craig spoke"},
		{"inside longer word untouched", "the quagmire deepened", "the quagmire deepened"},
		{"crags untouched", "we climbed the crags", "we climbed the crags"},
		{"no match", "nothing to fix here", "nothing to fix here"},
		{"canonical untouched", "craig already fine", "craig already fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTriggerText(tt.in); got != tt.want {
				t.Errorf("NormalizeTriggerText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	transcript := "[00:05:10] Alice: craig, search best pizza place"

	requests := Extract(transcript, nil, nil)
	if len(requests) != 1 {
		t.Fatalf("got %d requests, want 1", len(requests))
	}

	req := requests[0]
	if req.TS != "00:05:10" {
		t.Errorf("TS = %v, want 00:05:10", req.TS)
	}
	if req.Speaker != "Alice" {
		t.Errorf("Speaker = %v, want Alice", req.Speaker)
	}
	if req.Query != "best pizza place" {
		t.Errorf("Query = %q, want %q", req.Query, "best pizza place")
	}
}

func TestExtractMisspelledTrigger(t *testing.T) {
	transcript := "[00:01:00] Bob: quag look up golang generics"

	requests := Extract(transcript, nil, nil)
	if len(requests) != 1 {
		t.Fatalf("got %d requests, want 1", len(requests))
	}
	if requests[0].Query != "golang generics" {
		t.Errorf("Query = %q, want %q", requests[0].Query, "golang generics")
	}
}

func TestExtractSkipsUnlabeledLines(t *testing.T) {
	transcript := "craig search something important\n" +
		"[5:10] Alice: craig search short timestamp\n" +
		"Alice: craig search no timestamp"

	if requests := Extract(transcript, nil, nil); len(requests) != 0 {
		t.Errorf("got %d requests, want 0 for unlabeled lines", len(requests))
	}
}

func TestExtractSkipsNonCommands(t *testing.T) {
	transcript := "[00:02:00] Alice: let's circle back on that\n" +
		"[00:03:00] Bob: craig is a great name\n" +
		"[00:04:00] Carol: craig search "

	if requests := Extract(transcript, nil, nil); len(requests) != 0 {
		t.Errorf("got %d requests, want 0", len(requests))
	}
}

func TestExtractCustomVocabulary(t *testing.T) {
	transcript := "[00:01:30] Dana: jarvis fetch quarterly numbers"

	requests := Extract(transcript, []string{"jarvis"}, []string{"fetch"})
	if len(requests) != 1 {
		t.Fatalf("got %d requests, want 1", len(requests))
	}
	if requests[0].Query != "quarterly numbers" {
		t.Errorf("Query = %q", requests[0].Query)
	}

	// Default vocabulary must not fire for the custom trigger.
	if requests := Extract(transcript, nil, nil); len(requests) != 0 {
		t.Errorf("default vocab matched custom trigger: %v", requests)
	}
}

func TestExtractMultipleLines(t *testing.T) {
	transcript := "[00:00:05] Alice: good morning\n" +
		"[00:05:10] Alice: craig, search best pizza place\n" +
		"[00:09:00] Bob: crag check train schedule to utrecht\n" +
		"[00:12:00] Carol: nothing else"

	requests := Extract(transcript, nil, nil)
	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}
	if requests[1].Query != "train schedule to utrecht" {
		t.Errorf("Query = %q", requests[1].Query)
	}
}

type fakeProvider struct {
	hits map[string][]SearchResult
	errs map[string]error
}

func (f *fakeProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.hits[query], nil
}

func TestRun(t *testing.T) {
	log := logger.New("error", "text")
	provider := &fakeProvider{
		hits: map[string][]SearchResult{
			"pizza": {{Title: "Best pizza", URL: "https://example.com", Snippet: "top list"}},
		},
		errs: map[string]error{
			"broken": errors.New("provider down"),
		},
	}

	requests := []Request{
		{TS: "00:01:00", Speaker: "Alice", Query: "pizza"},
		{TS: "00:02:00", Speaker: "Bob", Query: "broken"},
	}

	results, err := Run(context.Background(), provider, requests, log)
	if err == nil {
		t.Error("Run() error = nil, want degradation error")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(results[0].Results) != 1 || results[0].Results[0].Title != "Best pizza" {
		t.Errorf("results[0] = %v", results[0])
	}
	if len(results[1].Results) != 0 {
		t.Errorf("failed query should have empty results, got %v", results[1].Results)
	}
}

func TestRunEmptyRequests(t *testing.T) {
	results, err := Run(context.Background(), noneProvider{}, nil, logger.New("error", "text"))
	if err != nil || results != nil {
		t.Errorf("Run() = %v, %v; want nil, nil", results, err)
	}
}

func TestNewProviderSelection(t *testing.T) {
	log := logger.New("error", "text")

	if _, ok := NewProvider("none", "", 5, log).(noneProvider); !ok {
		t.Error("none should select the no-op provider")
	}
	if _, ok := NewProvider("tavily", "", 5, log).(noneProvider); !ok {
		t.Error("tavily without key should fall back to the no-op provider")
	}
	if _, ok := NewProvider("tavily", "key", 5, log).(*tavilyProvider); !ok {
		t.Error("tavily with key should select the tavily provider")
	}
	if _, ok := NewProvider("unknown", "key", 5, log).(noneProvider); !ok {
		t.Error("unknown provider should select the no-op provider")
	}
}

func TestTavilySearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload["query"] != "pizza" {
			t.Errorf("query = %v", payload["query"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"title": "Best pizza", "url": "https://example.com", "content": "a snippet"},
			},
		})
	}))
	defer server.Close()

	provider := &tavilyProvider{
		apiKey:     "key",
		maxResults: 5,
		endpoint:   server.URL,
		client:     &http.Client{Timeout: 5 * time.Second},
		logger:     logger.New("error", "text"),
	}

	results, err := provider.Search(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Snippet != "a snippet" {
		t.Errorf("results = %v", results)
	}
}
