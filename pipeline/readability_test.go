package pipeline

import "testing"

func TestReadabilityDeterministic(t *testing.T) {
	text := "SEO helps websites rank higher. SEO is important for visibility."
	first := Readability(text)
	second := Readability(text)
	if first != second {
		t.Errorf("not deterministic: %+v vs %+v", first, second)
	}
}

func TestReadabilitySimplerTextScoresEasier(t *testing.T) {
	simple := Readability("The cat sat. The dog ran. We had fun.")
	dense := Readability("Extraordinarily sophisticated methodologies necessitate comprehensive organizational restructuring initiatives.")

	if simple.Ease <= dense.Ease {
		t.Errorf("simple ease %.2f should exceed dense ease %.2f", simple.Ease, dense.Ease)
	}
	if simple.GradeLevel >= dense.GradeLevel {
		t.Errorf("simple grade %.2f should be below dense grade %.2f", simple.GradeLevel, dense.GradeLevel)
	}
}

func TestReadabilityEmptyText(t *testing.T) {
	if got := Readability(""); got != (ReadabilityScore{}) {
		t.Errorf("got %+v, want zero value for empty text", got)
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"make", 1},
		{"little", 2},
		{"rhythm", 1},
		{"visibility", 5},
		{"a", 1},
		{"xyz", 1},
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word); got != tc.want {
			t.Errorf("countSyllables(%q): got %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one! Third one? ")
	if len(got) != 3 {
		t.Fatalf("got %d sentences, want 3: %v", len(got), got)
	}
	if got[0] != "First one" {
		t.Errorf("got %q, want %q", got[0], "First one")
	}
}
