package ingest

// Column names of the raw dataset produced by the app-store scraper.
// Anything outside this set is preserved in RawReview.Extra.
const (
	ColReviewID   = "review_id"
	ColReviewText = "review_text"
	ColRating     = "rating"
	ColReviewDate = "review_date"
	ColBankName   = "bank_name"
	ColAppID      = "app_id"
)

// requiredColumns must be present in a raw dataset header; a missing
// column is a configuration error, not a per-record one.
var requiredColumns = []string{ColReviewText, ColRating, ColReviewDate, ColBankName}

// cleanHeader is the column layout of a preprocessed dataset.
var cleanHeader = []string{
	"review_id", "bank_name", "app_id", "review_text",
	"normalized_text", "rating", "review_date",
}

// enrichedHeader is the column layout of an analyzed dataset. Multi-value
// fields (themes, keywords_matched) are pipe-joined in CSV form.
var enrichedHeader = []string{
	"review_id", "bank_name", "app_id", "review_text",
	"normalized_text", "rating", "review_date",
	"sentiment_score", "sentiment_label",
	"themes", "keywords_matched", "content_hash",
}

// DateLayout is the canonical date format used in processed datasets.
const DateLayout = "2006-01-02"

// MultiValueSep joins themes and matched keywords in CSV columns.
const MultiValueSep = "|"
