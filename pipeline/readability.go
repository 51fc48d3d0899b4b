package pipeline

// Readability computes the Flesch Reading Ease score and the Flesch-Kincaid
// grade level from sentence, word, and syllable counts. Pure function of the
// normalized text; results are not clamped, so very dense text can score
// below zero.
func Readability(normalized string) ReadabilityScore {
	words := Tokens(normalized)
	sentences := Sentences(normalized)

	wordCount := float64(len(words))
	sentenceCount := float64(len(sentences))
	if wordCount == 0 || sentenceCount == 0 {
		return ReadabilityScore{}
	}

	syllableCount := 0.0
	for _, w := range words {
		syllableCount += float64(countSyllables(w))
	}

	wordsPerSentence := wordCount / sentenceCount
	syllablesPerWord := syllableCount / wordCount

	return ReadabilityScore{
		Ease:       round2(206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord),
		GradeLevel: round2(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59),
	}
}
