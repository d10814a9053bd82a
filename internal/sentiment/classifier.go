package sentiment

import (
	"github.com/jonreiter/govader"

	"reviewpipe/internal/review"
)

// Label thresholds over the compound polarity score. These are the
// standard VADER cut-offs and must not drift: downstream consumers and
// the store CHECK constraint depend on the three labels.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Classifier assigns a compound polarity score and a label to a clean
// review. Scoring is lexicon-and-rule based (negation, intensifiers,
// punctuation emphasis), deterministic, and requires no training step.
type Classifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewClassifier() *Classifier {
	return &Classifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score computes the compound polarity of the normalized text. It is a
// pure function: the analyzer's lexicon is read-only after construction.
func (c *Classifier) Score(r review.CleanReview) review.ScoredReview {
	scored := review.ScoredReview{CleanReview: r}

	// Should not occur after preprocessing, but scoring must not panic
	// on an empty span.
	if r.NormalizedText == "" {
		scored.SentimentScore = 0.0
		scored.SentimentLabel = review.SentimentNeutral
		return scored
	}

	scores := c.analyzer.PolarityScores(r.NormalizedText)
	scored.SentimentScore = scores.Compound
	scored.SentimentLabel = LabelFor(scores.Compound)
	return scored
}

// LabelFor maps a compound score to its sentiment label:
// score >= 0.05 is positive, score <= -0.05 is negative, else neutral.
func LabelFor(score float64) string {
	switch {
	case score >= PositiveThreshold:
		return review.SentimentPositive
	case score <= NegativeThreshold:
		return review.SentimentNegative
	default:
		return review.SentimentNeutral
	}
}
