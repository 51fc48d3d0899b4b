package pipeline

import "github.com/jonreiter/govader"

const sentimentThreshold = 0.20

// scoreSentiment runs VADER polarity scoring over the normalized text and
// attaches a coarse label from the compound score.
func scoreSentiment(analyzer *govader.SentimentIntensityAnalyzer, normalized string) SentimentSummary {
	scores := analyzer.PolarityScores(normalized)

	label := "neutral"
	if scores.Compound >= sentimentThreshold {
		label = "positive"
	} else if scores.Compound <= -sentimentThreshold {
		label = "negative"
	}

	return SentimentSummary{
		Compound: round2(scores.Compound),
		Positive: round2(scores.Positive),
		Negative: round2(scores.Negative),
		Neutral:  round2(scores.Neutral),
		Label:    label,
	}
}
