package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"reviewpipe/internal/review"
)

// ReviewRepository loads enriched reviews into bank_reviews.
type ReviewRepository struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Load writes a whole batch within one transaction. Each row gets its
// own savepoint, so a constraint violation on one row is reported and
// rolled back without poisoning the rest of the batch. On any fatal
// error the transaction is rolled back and nothing from this run is
// committed.
func (r *ReviewRepository) Load(ctx context.Context, batch []review.EnrichedReview) (*LoadResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &review.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	result := &LoadResult{}
	for i, rec := range batch {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT load_row"); err != nil {
			return nil, &review.PersistenceError{Op: "create savepoint", Err: err}
		}

		written, err := r.upsertOne(ctx, tx, rec)
		if err != nil {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT load_row"); rbErr != nil {
				return nil, &review.PersistenceError{Op: "rollback to savepoint", Err: rbErr}
			}
			result.Failed = append(result.Failed, RowFailure{
				Index:    i,
				ReviewID: rec.ReviewID,
				BankName: rec.BankName,
				Reason:   err.Error(),
			})
			log.Printf("Warning: failed to load row %d (%s/%s): %v", i, rec.BankName, rec.ReviewID, err)
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT load_row"); err != nil {
			return nil, &review.PersistenceError{Op: "release savepoint", Err: err}
		}

		if written {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &review.PersistenceError{Op: "commit", Err: err}
	}

	return result, nil
}

// upsertOne writes a single review. Rows with a stable review_id are
// upserted on the natural key (bank_name, review_id); the hash guard
// turns an identical re-load into a no-op. Rows without a review_id are
// inserted as new rows: they cannot be deduplicated at load time.
func (r *ReviewRepository) upsertOne(ctx context.Context, tx *sql.Tx, rec review.EnrichedReview) (bool, error) {
	if rec.ReviewID == "" {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bank_reviews (
				review_id, bank_name, app_id, review_date, rating,
				sentiment, sentiment_score, themes, keywords_matched, content_hash
			) VALUES (NULL, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, rec.BankName, nullIfEmpty(rec.AppID), rec.ReviewDate, rec.Rating,
			rec.SentimentLabel, rec.SentimentScore,
			pq.Array(orEmpty(rec.Themes)), pq.Array(orEmpty(rec.KeywordsMatched)), rec.ContentHash)
		if err != nil {
			return false, fmt.Errorf("failed to insert review: %w", err)
		}
		return true, nil
	}

	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO bank_reviews (
			review_id, bank_name, app_id, review_date, rating,
			sentiment, sentiment_score, themes, keywords_matched, content_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (bank_name, review_id) DO UPDATE SET
			app_id = EXCLUDED.app_id,
			review_date = EXCLUDED.review_date,
			rating = EXCLUDED.rating,
			sentiment = EXCLUDED.sentiment,
			sentiment_score = EXCLUDED.sentiment_score,
			themes = EXCLUDED.themes,
			keywords_matched = EXCLUDED.keywords_matched,
			content_hash = EXCLUDED.content_hash,
			updated_at = NOW()
		WHERE bank_reviews.content_hash IS DISTINCT FROM EXCLUDED.content_hash
		RETURNING id
	`, rec.ReviewID, rec.BankName, nullIfEmpty(rec.AppID), rec.ReviewDate, rec.Rating,
		rec.SentimentLabel, rec.SentimentScore,
		pq.Array(orEmpty(rec.Themes)), pq.Array(orEmpty(rec.KeywordsMatched)), rec.ContentHash).Scan(&id)

	if err == sql.ErrNoRows {
		// Conflict with identical content: nothing written.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert review: %w", err)
	}

	return true, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// orEmpty keeps nil slices out of NOT NULL array columns.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
