package themes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"reviewpipe/internal/review"
)

// Assigner tags scored reviews with themes from the configured keyword
// map. Multi-label: every theme whose keywords occur in the normalized
// text is assigned; a review matching nothing keeps an empty theme set.
type Assigner struct {
	config *Config
}

func NewAssigner(config *Config) *Assigner {
	return &Assigner{config: config}
}

// Assign evaluates the theme map against one review. Matched keywords
// are recorded in theme-map order for traceability.
func (a *Assigner) Assign(r review.ScoredReview) review.EnrichedReview {
	enriched := review.EnrichedReview{ScoredReview: r}

	for _, theme := range a.config.Themes {
		matched := false
		for _, kw := range theme.Keywords {
			if strings.Contains(r.NormalizedText, kw) {
				matched = true
				enriched.KeywordsMatched = append(enriched.KeywordsMatched, kw)
			}
		}
		if matched {
			enriched.Themes = append(enriched.Themes, theme.Name)
		}
	}

	enriched.ContentHash = generateContentHash(enriched)
	return enriched
}

// generateContentHash fingerprints the enriched record. The persister
// uses it to skip rows whose stored content is already identical, which
// is what makes re-loading the same batch a no-op.
func generateContentHash(r review.EnrichedReview) string {
	content := fmt.Sprintf("%s|%s|%s|%d|%s|%.4f|%s|%s|%s",
		r.BankName,
		r.ReviewID,
		r.NormalizedText,
		r.Rating,
		r.ReviewDate.Format("2006-01-02"),
		r.SentimentScore,
		r.SentimentLabel,
		strings.Join(r.Themes, ","),
		strings.Join(r.KeywordsMatched, ","))

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
