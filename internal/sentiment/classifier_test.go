package sentiment

import (
	"testing"

	"reviewpipe/internal/review"
)

func cleanReview(normalized string) review.CleanReview {
	return review.CleanReview{
		BankName:       "Dashen Bank",
		Text:           normalized,
		NormalizedText: normalized,
		Rating:         3,
	}
}

func TestLabelFor_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0.05, review.SentimentPositive},  // boundary is inclusive
		{-0.05, review.SentimentNegative}, // boundary is inclusive
		{0.0, review.SentimentNeutral},
		{0.0499, review.SentimentNeutral},
		{-0.0499, review.SentimentNeutral},
		{0.93, review.SentimentPositive},
		{-0.93, review.SentimentNegative},
		{1.0, review.SentimentPositive},
		{-1.0, review.SentimentNegative},
	}

	for _, tt := range tests {
		if got := LabelFor(tt.score); got != tt.expected {
			t.Errorf("LabelFor(%v) = %q, expected %q", tt.score, got, tt.expected)
		}
	}
}

func TestClassifier_Score_Pure(t *testing.T) {
	c := NewClassifier()
	r := cleanReview("the transfer was slow but support was excellent")

	first := c.Score(r)
	for i := 0; i < 10; i++ {
		again := c.Score(r)
		if again.SentimentScore != first.SentimentScore {
			t.Fatalf("Score is not pure: call %d gave %v, first gave %v",
				i, again.SentimentScore, first.SentimentScore)
		}
		if again.SentimentLabel != first.SentimentLabel {
			t.Fatalf("Label is not pure: call %d gave %q, first gave %q",
				i, again.SentimentLabel, first.SentimentLabel)
		}
	}
}

func TestClassifier_Score_Polarity(t *testing.T) {
	c := NewClassifier()

	positive := c.Score(cleanReview("excellent app, very easy and smooth to use"))
	if positive.SentimentScore <= 0 {
		t.Errorf("Expected positive score for clearly positive text, got %v", positive.SentimentScore)
	}
	if positive.SentimentLabel != review.SentimentPositive {
		t.Errorf("Expected positive label, got %q", positive.SentimentLabel)
	}

	negative := c.Score(cleanReview("terrible app, the transaction failed and it keeps crashing"))
	if negative.SentimentScore >= 0 {
		t.Errorf("Expected negative score for clearly negative text, got %v", negative.SentimentScore)
	}
	if negative.SentimentLabel != review.SentimentNegative {
		t.Errorf("Expected negative label, got %q", negative.SentimentLabel)
	}
}

func TestClassifier_Score_RangeAndConsistency(t *testing.T) {
	c := NewClassifier()

	texts := []string{
		"great transaction speed",
		"excellent app",
		"transaction failed crash",
		"good ui",
		"okay experience",
		"the login screen is blocked again",
	}

	for _, text := range texts {
		scored := c.Score(cleanReview(text))
		if scored.SentimentScore < -1 || scored.SentimentScore > 1 {
			t.Errorf("Score for %q out of [-1,1]: %v", text, scored.SentimentScore)
		}
		// Label must always be consistent with the thresholds
		if scored.SentimentLabel != LabelFor(scored.SentimentScore) {
			t.Errorf("Label %q inconsistent with score %v for %q",
				scored.SentimentLabel, scored.SentimentScore, text)
		}
	}
}

func TestClassifier_Score_NegationHandling(t *testing.T) {
	c := NewClassifier()

	plain := c.Score(cleanReview("this app is good"))
	negated := c.Score(cleanReview("this app is not good"))

	if negated.SentimentScore >= plain.SentimentScore {
		t.Errorf("Expected negation to lower the score: plain=%v negated=%v",
			plain.SentimentScore, negated.SentimentScore)
	}
}

func TestClassifier_Score_EmptyText(t *testing.T) {
	c := NewClassifier()

	scored := c.Score(cleanReview(""))
	if scored.SentimentScore != 0.0 {
		t.Errorf("Expected score 0.0 for empty text, got %v", scored.SentimentScore)
	}
	if scored.SentimentLabel != review.SentimentNeutral {
		t.Errorf("Expected neutral label for empty text, got %q", scored.SentimentLabel)
	}
}
