package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seo-intel/backend/pipeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(id string, createdAt time.Time) *pipeline.AnalysisReport {
	return &pipeline.AnalysisReport{
		ID:        id,
		Source:    "https://example.com/post",
		Kind:      pipeline.SourceURL,
		WordCount: 42,
		Keywords: []pipeline.KeywordCandidate{
			{Phrase: "seo", Score: 0.9, Rank: 1},
		},
		Readability: pipeline.ReadabilityScore{Ease: 70.1, GradeLevel: 5.5},
		CreatedAt:   createdAt,
	}
}

func TestSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleReport("report-1", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "report-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != want.ID || got.Source != want.Source || got.WordCount != want.WordCount {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Keywords) != 1 || got.Keywords[0].Phrase != "seo" {
		t.Errorf("keywords lost in round trip: %+v", got.Keywords)
	}
}

func TestGetMissingReport(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := sampleReport("older", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	newer := sampleReport("newer", time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC))
	for _, r := range []*pipeline.AnalysisReport{older, newer} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	summaries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].ID != "newer" || summaries[1].ID != "older" {
		t.Errorf("wrong order: %+v", summaries)
	}
}

func TestRecentOrdersSubsecondTimestamps(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// 500ms and 550ms fractions sort wrongly as decimal strings; the
	// integer column must still order them by actual time.
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	early := sampleReport("early", base.Add(500*time.Millisecond))
	late := sampleReport("late", base.Add(550*time.Millisecond))
	for _, r := range []*pipeline.AnalysisReport{early, late} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	summaries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(summaries) != 2 || summaries[0].ID != "late" || summaries[1].ID != "early" {
		t.Errorf("wrong order: %+v", summaries)
	}
	if !summaries[0].CreatedAt.Equal(base.Add(550 * time.Millisecond)) {
		t.Errorf("created_at lost precision: %v", summaries[0].CreatedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := sampleReport(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	summaries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(summaries) != 3 {
		t.Errorf("got %d summaries, want 3", len(summaries))
	}
}
