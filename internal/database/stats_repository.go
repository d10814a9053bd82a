package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// StatsRepository serves aggregate queries for the analyst API.
type StatsRepository struct {
	db *DB
}

func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// SentimentByBank returns review counts grouped by bank and sentiment.
func (r *StatsRepository) SentimentByBank(ctx context.Context) ([]SentimentCount, error) {
	query, args, err := psql.
		Select("bank_name", "sentiment", "COUNT(*)").
		From("bank_reviews").
		Where(sq.NotEq{"sentiment": nil}).
		GroupBy("bank_name", "sentiment").
		OrderBy("bank_name", "sentiment").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sentiment query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment counts: %w", err)
	}
	defer rows.Close()

	var counts []SentimentCount
	for rows.Next() {
		var c SentimentCount
		if err := rows.Scan(&c.BankName, &c.Sentiment, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment counts: %w", err)
	}

	return counts, nil
}

// ThemesByBank returns review counts grouped by bank and theme, with the
// themes array unnested so each theme counts once per review.
func (r *StatsRepository) ThemesByBank(ctx context.Context) ([]ThemeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT bank_name, theme, COUNT(*)
		FROM bank_reviews, UNNEST(themes) AS theme
		GROUP BY bank_name, theme
		ORDER BY bank_name, theme
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query theme counts: %w", err)
	}
	defer rows.Close()

	var counts []ThemeCount
	for rows.Next() {
		var c ThemeCount
		if err := rows.Scan(&c.BankName, &c.Theme, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan theme count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme counts: %w", err)
	}

	return counts, nil
}

// QueryReviews returns reviews matching the filter, newest first.
func (r *StatsRepository) QueryReviews(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	builder := psql.
		Select("id", "review_id", "bank_name", "COALESCE(app_id, '')",
			"review_date", "rating", "COALESCE(sentiment, '')",
			"COALESCE(sentiment_score, 0)", "themes", "keywords_matched",
			"content_hash", "created_at", "updated_at").
		From("bank_reviews").
		OrderBy("review_date DESC NULLS LAST", "id DESC")

	if filter.BankName != "" {
		builder = builder.Where(sq.Eq{"bank_name": filter.BankName})
	}
	if filter.Sentiment != "" {
		builder = builder.Where(sq.Eq{"sentiment": filter.Sentiment})
	}
	if filter.Theme != "" {
		builder = builder.Where("? = ANY(themes)", filter.Theme)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build review query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rec Review
		err := rows.Scan(&rec.ID, &rec.ReviewID, &rec.BankName, &rec.AppID,
			&rec.ReviewDate, &rec.Rating, &rec.Sentiment, &rec.SentimentScore,
			pq.Array(&rec.Themes), pq.Array(&rec.KeywordsMatched),
			&rec.ContentHash, &rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

// ReviewCount returns the total number of persisted reviews.
func (r *StatsRepository) ReviewCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bank_reviews").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
