package database

import (
	"time"
)

// Review is a persisted bank_reviews row.
type Review struct {
	ID              int64
	ReviewID        *string // nullable: sources without stable ids
	BankName        string
	AppID           string
	ReviewDate      *time.Time
	Rating          int
	Sentiment       string
	SentimentScore  float64
	Themes          []string
	KeywordsMatched []string
	ContentHash     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RowFailure identifies one record that could not be loaded and why.
type RowFailure struct {
	Index    int // position in the batch
	ReviewID string
	BankName string
	Reason   string
}

// LoadResult summarizes one load run. Inserted counts rows written (new
// or replaced), Skipped counts rows whose stored content was already
// identical, Failed lists per-row errors.
type LoadResult struct {
	Inserted int
	Skipped  int
	Failed   []RowFailure
}

// RunRecord is a pipeline_runs audit row.
type RunRecord struct {
	ID         string
	InputPath  string
	InputCount int
	Cleaned    int
	Dropped    map[string]int
	Loaded     int
	Skipped    int
	LoadFailed int
	StartedAt  time.Time
	FinishedAt time.Time
}

// SentimentCount is one cell of the per-bank sentiment breakdown.
type SentimentCount struct {
	BankName  string
	Sentiment string
	Count     int
}

// ThemeCount is one cell of the per-bank theme breakdown.
type ThemeCount struct {
	BankName string
	Theme    string
	Count    int
}

// ReviewFilter narrows analyst queries; zero values mean "any".
type ReviewFilter struct {
	BankName  string
	Sentiment string
	Theme     string
	Limit     int
}
