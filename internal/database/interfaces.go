package database

import (
	"context"

	"reviewpipe/internal/review"
)

// ReviewLoader is the persistence contract the pipeline depends on.
type ReviewLoader interface {
	Load(ctx context.Context, batch []review.EnrichedReview) (*LoadResult, error)
}

// RunRecorder persists run summaries for observability.
type RunRecorder interface {
	Record(ctx context.Context, run RunRecord) error
}

// StatsReader serves the analyst API.
type StatsReader interface {
	SentimentByBank(ctx context.Context) ([]SentimentCount, error)
	ThemesByBank(ctx context.Context) ([]ThemeCount, error)
	QueryReviews(ctx context.Context, filter ReviewFilter) ([]Review, error)
	ReviewCount(ctx context.Context) (int, error)
}
