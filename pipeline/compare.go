package pipeline

import (
	"sort"
	"strings"
)

// Compare produces the structured diff of two reports. Set operations run on
// the lowercase keyword phrases; the readability delta is B.ease - A.ease and
// the keyword-count delta is len(B) - len(A). Total function, never fails.
func Compare(a, b *AnalysisReport) ComparisonResult {
	setA := keywordSet(a)
	setB := keywordSet(b)

	var shared, uniqueA, uniqueB []string
	for kw := range setA {
		if setB[kw] {
			shared = append(shared, kw)
		} else {
			uniqueA = append(uniqueA, kw)
		}
	}
	for kw := range setB {
		if !setA[kw] {
			uniqueB = append(uniqueB, kw)
		}
	}
	sort.Strings(shared)
	sort.Strings(uniqueA)
	sort.Strings(uniqueB)

	return ComparisonResult{
		SharedKeywords:    shared,
		UniqueToA:         uniqueA,
		UniqueToB:         uniqueB,
		ReadabilityDelta:  round2(b.Readability.Ease - a.Readability.Ease),
		KeywordCountDelta: len(b.Keywords) - len(a.Keywords),
	}
}

func keywordSet(r *AnalysisReport) map[string]bool {
	set := make(map[string]bool, len(r.Keywords))
	for _, kw := range r.Keywords {
		set[strings.ToLower(kw.Phrase)] = true
	}
	return set
}
