package capability

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRemoteRank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
			TopN int    `json:"top_n"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.TopN != 5 {
			t.Errorf("top_n: got %d, want 5", req.TopN)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"keywords": []RankedPhrase{{Phrase: "seo", Score: 0.9}},
		})
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, "", time.Second, discardLogger())
	phrases, err := client.Rank(context.Background(), "seo text", 5)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(phrases) != 1 || phrases[0].Phrase != "seo" {
		t.Errorf("phrases: got %+v", phrases)
	}
}

func TestRemoteRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, "", time.Second, discardLogger())
	start := time.Now()
	_, err := client.Rank(context.Background(), "text", 3)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error from failing service")
	}
	if got := calls.Load(); got != maxRetries {
		t.Errorf("attempts: got %d, want %d", got, maxRetries)
	}
	// Two backoff waits between three attempts (500ms + 1s). A wait after
	// the final attempt would push this past 3s.
	if elapsed >= 3*time.Second {
		t.Errorf("took %v, backoff should not follow the last attempt", elapsed)
	}
}

func TestRemoteClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, server.URL, time.Second, discardLogger())
	if _, err := client.Rank(context.Background(), "text", 3); err == nil {
		t.Error("expected error for 4xx status")
	}
	if _, err := client.Analyze(context.Background(), "text"); err == nil {
		t.Error("expected error for 4xx status")
	}
}
