package pipeline

import (
	"reflect"
	"testing"
)

func reportWithKeywords(ease float64, phrases ...string) *AnalysisReport {
	r := &AnalysisReport{Readability: ReadabilityScore{Ease: ease}}
	for i, p := range phrases {
		r.Keywords = append(r.Keywords, KeywordCandidate{Phrase: p, Rank: i + 1})
	}
	return r
}

func TestCompareKeywordSets(t *testing.T) {
	a := reportWithKeywords(50, "seo", "content")
	b := reportWithKeywords(60, "seo", "marketing")

	result := Compare(a, b)

	if !reflect.DeepEqual(result.SharedKeywords, []string{"seo"}) {
		t.Errorf("shared: got %v, want [seo]", result.SharedKeywords)
	}
	if !reflect.DeepEqual(result.UniqueToA, []string{"content"}) {
		t.Errorf("unique to A: got %v, want [content]", result.UniqueToA)
	}
	if !reflect.DeepEqual(result.UniqueToB, []string{"marketing"}) {
		t.Errorf("unique to B: got %v, want [marketing]", result.UniqueToB)
	}
}

func TestCompareCaseInsensitive(t *testing.T) {
	a := reportWithKeywords(50, "SEO")
	b := reportWithKeywords(50, "seo")

	result := Compare(a, b)
	if len(result.SharedKeywords) != 1 || len(result.UniqueToA) != 0 || len(result.UniqueToB) != 0 {
		t.Errorf("case-insensitive sets wrong: %+v", result)
	}
}

func TestCompareDeltas(t *testing.T) {
	a := reportWithKeywords(40.5, "one")
	b := reportWithKeywords(55.25, "one", "two", "three")

	result := Compare(a, b)
	if result.ReadabilityDelta != 14.75 {
		t.Errorf("readability delta: got %.2f, want 14.75", result.ReadabilityDelta)
	}
	if result.KeywordCountDelta != 2 {
		t.Errorf("keyword count delta: got %d, want 2", result.KeywordCountDelta)
	}
}

func TestCompareDeltaAntisymmetric(t *testing.T) {
	a := reportWithKeywords(30, "x", "y")
	b := reportWithKeywords(70, "z")

	ab := Compare(a, b)
	ba := Compare(b, a)

	if ab.ReadabilityDelta != -ba.ReadabilityDelta {
		t.Errorf("readability deltas not antisymmetric: %.2f vs %.2f", ab.ReadabilityDelta, ba.ReadabilityDelta)
	}
	if ab.KeywordCountDelta != -ba.KeywordCountDelta {
		t.Errorf("keyword count deltas not antisymmetric: %d vs %d", ab.KeywordCountDelta, ba.KeywordCountDelta)
	}
}
