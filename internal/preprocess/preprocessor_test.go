package preprocess

import (
	"errors"
	"fmt"
	"testing"

	"reviewpipe/internal/review"
)

func validRaw(id, text string) review.RawReview {
	return review.RawReview{
		ReviewID:   id,
		BankName:   "Dashen Bank",
		Text:       text,
		Rating:     "4",
		ReviewDate: "2024-03-15",
	}
}

func TestPreprocessor_Run_DropsEmptyText(t *testing.T) {
	p := NewPreprocessor()

	batch := []review.RawReview{
		validRaw("r1", "Great app"),
		validRaw("r2", ""),
		validRaw("r3", "   \t\n  "),
	}

	cleaned, stats, err := p.Run(batch)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(cleaned) != 1 {
		t.Errorf("Expected 1 clean record, got %d", len(cleaned))
	}
	if stats.Dropped[review.DropEmptyText] != 2 {
		t.Errorf("Expected 2 empty_text drops, got %d", stats.Dropped[review.DropEmptyText])
	}
}

func TestPreprocessor_Run_InvalidRatingAccounting(t *testing.T) {
	p := NewPreprocessor()

	// 10 records, 2 with malformed ratings
	var batch []review.RawReview
	for i := 0; i < 8; i++ {
		batch = append(batch, validRaw(fmt.Sprintf("r%d", i), fmt.Sprintf("review number %d", i)))
	}
	bad1 := validRaw("r8", "rating out of range")
	bad1.Rating = "6"
	bad2 := validRaw("r9", "rating not an integer")
	bad2.Rating = "4.5"
	batch = append(batch, bad1, bad2)

	cleaned, stats, err := p.Run(batch)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.Input != 10 {
		t.Errorf("Expected input 10, got %d", stats.Input)
	}
	if len(cleaned) != 8 || stats.Cleaned != 8 {
		t.Errorf("Expected cleaned 8, got %d (stats %d)", len(cleaned), stats.Cleaned)
	}
	if stats.Dropped[review.DropInvalidRating] != 2 {
		t.Errorf("Expected dropped invalid_rating 2, got %d", stats.Dropped[review.DropInvalidRating])
	}
	if stats.DroppedTotal() != 2 {
		t.Errorf("Expected total dropped 2, got %d", stats.DroppedTotal())
	}
}

func TestPreprocessor_Run_InvalidDate(t *testing.T) {
	p := NewPreprocessor()

	bad := validRaw("r1", "no usable date")
	bad.ReviewDate = "not-a-date"
	missing := validRaw("r2", "date missing entirely")
	missing.ReviewDate = ""

	_, stats, err := p.Run([]review.RawReview{validRaw("r3", "fine"), bad, missing})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.Dropped[review.DropInvalidDate] != 2 {
		t.Errorf("Expected 2 invalid_date drops, got %d", stats.Dropped[review.DropInvalidDate])
	}
}

func TestPreprocessor_Run_AcceptsCommonDateFormats(t *testing.T) {
	p := NewPreprocessor()

	formats := []string{
		"2024-03-15",
		"2024-03-15 10:30:00",
		"2024-03-15T10:30:00Z",
		"03/15/2024",
	}

	var batch []review.RawReview
	for i, f := range formats {
		r := validRaw(fmt.Sprintf("r%d", i), fmt.Sprintf("dated review %d", i))
		r.ReviewDate = f
		batch = append(batch, r)
	}

	cleaned, _, err := p.Run(batch)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cleaned) != len(formats) {
		t.Fatalf("Expected %d clean records, got %d", len(formats), len(cleaned))
	}

	for i, c := range cleaned {
		if c.ReviewDate.Year() != 2024 || c.ReviewDate.Month() != 3 || c.ReviewDate.Day() != 15 {
			t.Errorf("Record %d: expected 2024-03-15, got %v", i, c.ReviewDate)
		}
	}
}

func TestPreprocessor_Run_DedupByReviewID(t *testing.T) {
	p := NewPreprocessor()

	first := validRaw("dup", "first occurrence")
	second := validRaw("dup", "second occurrence should be discarded")
	otherBank := validRaw("dup", "same id, different bank")
	otherBank.BankName = "Bank of Abyssinia"

	cleaned, stats, err := p.Run([]review.RawReview{first, second, otherBank})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(cleaned) != 2 {
		t.Fatalf("Expected 2 clean records, got %d", len(cleaned))
	}
	// First occurrence wins, not last
	if cleaned[0].Text != "first occurrence" {
		t.Errorf("Expected first occurrence to be retained, got %q", cleaned[0].Text)
	}
	if stats.Dropped[review.DropDuplicate] != 1 {
		t.Errorf("Expected 1 duplicate drop, got %d", stats.Dropped[review.DropDuplicate])
	}
}

func TestPreprocessor_Run_DedupWithoutReviewID(t *testing.T) {
	p := NewPreprocessor()

	a := validRaw("", "Same Review Text")
	b := validRaw("", "same   review text") // same after normalization
	c := validRaw("", "same review text")
	c.Rating = "2" // different rating, different composite key

	cleaned, stats, err := p.Run([]review.RawReview{a, b, c})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(cleaned) != 2 {
		t.Errorf("Expected 2 clean records, got %d", len(cleaned))
	}
	if stats.Dropped[review.DropDuplicate] != 1 {
		t.Errorf("Expected 1 duplicate drop, got %d", stats.Dropped[review.DropDuplicate])
	}
}

func TestPreprocessor_Run_NaturalKeyUniqueness(t *testing.T) {
	p := NewPreprocessor()

	var batch []review.RawReview
	for i := 0; i < 20; i++ {
		// Half the ids collide on purpose
		batch = append(batch, validRaw(fmt.Sprintf("r%d", i%10), fmt.Sprintf("text %d", i)))
	}

	cleaned, _, err := p.Run(batch)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range cleaned {
		if c.ReviewID == "" {
			continue
		}
		key := c.BankName + "/" + c.ReviewID
		if seen[key] {
			t.Errorf("Duplicate natural key in clean batch: %s", key)
		}
		seen[key] = true
	}
}

func TestPreprocessor_Run_EmptyBatch(t *testing.T) {
	p := NewPreprocessor()

	_, _, err := p.Run(nil)
	var confErr *review.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("Expected ConfigurationError for empty batch, got %v", err)
	}
}

func TestPreprocessor_Run_AllMalformed(t *testing.T) {
	p := NewPreprocessor()

	bad := validRaw("r1", "")
	_, stats, err := p.Run([]review.RawReview{bad})

	var confErr *review.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("Expected ConfigurationError when whole batch is malformed, got %v", err)
	}
	if stats == nil || stats.DroppedTotal() != 1 {
		t.Errorf("Expected stats to still account for the dropped record")
	}
}

func TestPreprocessor_Run_PreservesOriginalCasing(t *testing.T) {
	p := NewPreprocessor()

	raw := validRaw("r1", "  Great APP,   very\tFast!  ")
	cleaned, _, err := p.Run([]review.RawReview{raw})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cleaned[0].Text != "Great APP, very Fast!" {
		t.Errorf("Expected original casing preserved with collapsed whitespace, got %q", cleaned[0].Text)
	}
	if cleaned[0].NormalizedText != "great app, very fast!" {
		t.Errorf("Expected lower-cased normalized text, got %q", cleaned[0].NormalizedText)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello world"},
		{"  spaced   out \n text ", "spaced out text"},
		{"ＦＵＬＬＷＩＤＴＨ", "fullwidth"}, // NFKC folds fullwidth forms
		{"MiXeD CaSe", "mixed case"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
