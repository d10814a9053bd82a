package review

import (
	"time"
)

// Sentiment labels assigned by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Drop reasons recorded by the preprocessor.
const (
	DropEmptyText     = "empty_text"
	DropInvalidRating = "invalid_rating"
	DropInvalidDate   = "invalid_date"
	DropDuplicate     = "duplicate"
)

// RawReview is a single row as produced by the app-store scraper.
// Values are kept as read; nothing is validated at this stage.
type RawReview struct {
	ReviewID   string // source-assigned, may be empty or duplicated
	BankName   string
	AppID      string
	Text       string
	Rating     string // unparsed, validated by the preprocessor
	ReviewDate string // unparsed, validated by the preprocessor
	Extra      map[string]string
}

// CleanReview is a validated, normalized review.
type CleanReview struct {
	ReviewID       string
	BankName       string
	AppID          string
	Text           string // original casing, trimmed, whitespace collapsed
	NormalizedText string // NFKC, lower-cased; used for all matching
	Rating         int    // guaranteed in [1,5]
	ReviewDate     time.Time
}

// ScoredReview is a clean review with sentiment attached.
type ScoredReview struct {
	CleanReview
	SentimentScore float64 // compound polarity in [-1,1]
	SentimentLabel string
}

// EnrichedReview is the unit persisted to the store.
type EnrichedReview struct {
	ScoredReview
	Themes          []string // stable order, possibly empty
	KeywordsMatched []string // in theme map iteration order
	ContentHash     string
}
