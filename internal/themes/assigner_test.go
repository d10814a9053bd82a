package themes

import (
	"reflect"
	"testing"

	"reviewpipe/internal/review"
)

func testConfig() *Config {
	return &Config{Themes: []Theme{
		{Name: "Account Access Issues", Keywords: []string{"login", "password", "otp"}},
		{Name: "Transaction Performance", Keywords: []string{"transfer", "transaction", "slow", "crash"}},
		{Name: "User Interface & Experience", Keywords: []string{"ui", "design", "easy"}},
	}}
}

func scoredReview(normalized string) review.ScoredReview {
	return review.ScoredReview{
		CleanReview: review.CleanReview{
			BankName:       "Dashen Bank",
			ReviewID:       "r1",
			Text:           normalized,
			NormalizedText: normalized,
			Rating:         3,
		},
		SentimentScore: 0.0,
		SentimentLabel: review.SentimentNeutral,
	}
}

func TestAssigner_Assign_SingleTheme(t *testing.T) {
	a := NewAssigner(testConfig())

	enriched := a.Assign(scoredReview("the transfer took forever"))

	if !reflect.DeepEqual(enriched.Themes, []string{"Transaction Performance"}) {
		t.Errorf("Expected only Transaction Performance, got %v", enriched.Themes)
	}
	if !reflect.DeepEqual(enriched.KeywordsMatched, []string{"transfer"}) {
		t.Errorf("Expected matched keywords [transfer], got %v", enriched.KeywordsMatched)
	}
}

func TestAssigner_Assign_MultiLabel(t *testing.T) {
	a := NewAssigner(testConfig())

	// Both the transaction and crash keywords occur: both themes apply
	enriched := a.Assign(scoredReview("transaction crash right after login"))

	expected := []string{"Account Access Issues", "Transaction Performance"}
	if !reflect.DeepEqual(enriched.Themes, expected) {
		t.Errorf("Expected themes %v, got %v", expected, enriched.Themes)
	}
}

func TestAssigner_Assign_KeywordOrderIsStable(t *testing.T) {
	a := NewAssigner(testConfig())

	// Keywords must be recorded in theme-map order, then keyword order,
	// regardless of where they occur in the text
	enriched := a.Assign(scoredReview("slow transfer after entering my password and otp"))

	expected := []string{"password", "otp", "transfer", "slow"}
	if !reflect.DeepEqual(enriched.KeywordsMatched, expected) {
		t.Errorf("Expected matched keywords %v, got %v", expected, enriched.KeywordsMatched)
	}

	// And the result is reproducible across calls
	for i := 0; i < 5; i++ {
		again := a.Assign(scoredReview("slow transfer after entering my password and otp"))
		if !reflect.DeepEqual(again.KeywordsMatched, enriched.KeywordsMatched) {
			t.Fatalf("Keyword order not reproducible on call %d: %v", i, again.KeywordsMatched)
		}
	}
}

func TestAssigner_Assign_NoMatchKeepsEmptySet(t *testing.T) {
	a := NewAssigner(testConfig())

	enriched := a.Assign(scoredReview("nothing relevant here"))

	if len(enriched.Themes) != 0 {
		t.Errorf("Expected empty theme set, got %v", enriched.Themes)
	}
	if len(enriched.KeywordsMatched) != 0 {
		t.Errorf("Expected no matched keywords, got %v", enriched.KeywordsMatched)
	}
	// The review itself is retained, not dropped or defaulted
	if enriched.NormalizedText != "nothing relevant here" {
		t.Errorf("Review content should be untouched")
	}
}

func TestAssigner_Assign_PhraseKeyword(t *testing.T) {
	config := &Config{Themes: []Theme{
		{Name: "Transaction Performance", Keywords: []string{"send money", "not working"}},
	}}
	a := NewAssigner(config)

	enriched := a.Assign(scoredReview("i tried to send money and the app was not working"))

	if len(enriched.Themes) != 1 {
		t.Fatalf("Expected phrase keywords to match, got themes %v", enriched.Themes)
	}
	if !reflect.DeepEqual(enriched.KeywordsMatched, []string{"send money", "not working"}) {
		t.Errorf("Expected both phrases matched, got %v", enriched.KeywordsMatched)
	}
}

func TestAssigner_Assign_ContentHash(t *testing.T) {
	a := NewAssigner(testConfig())

	first := a.Assign(scoredReview("slow transfer"))
	same := a.Assign(scoredReview("slow transfer"))
	different := a.Assign(scoredReview("fast transfer"))

	if first.ContentHash == "" {
		t.Fatal("Expected non-empty content hash")
	}
	if first.ContentHash != same.ContentHash {
		t.Errorf("Identical records should hash identically")
	}
	if first.ContentHash == different.ContentHash {
		t.Errorf("Different records should hash differently")
	}
}
