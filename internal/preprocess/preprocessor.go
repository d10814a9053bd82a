package preprocess

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"

	"reviewpipe/internal/review"
)

// Preprocessor cleans and validates raw review records. Malformed
// records are dropped and counted, never propagated as errors.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Stats accumulates rejection counts by reason for a single batch.
type Stats struct {
	Input   int
	Cleaned int
	Dropped map[string]int
}

func newStats(input int) *Stats {
	return &Stats{Input: input, Dropped: make(map[string]int)}
}

func (s *Stats) drop(reason string) {
	s.Dropped[reason]++
}

// DroppedTotal returns the number of records rejected for any reason.
func (s *Stats) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// Run validates and normalizes a raw batch. The returned batch contains
// no duplicates: records sharing (bank_name, review_id) are collapsed to
// the first occurrence, as are records lacking a review_id that share
// (bank_name, normalized text, rating).
func (p *Preprocessor) Run(batch []review.RawReview) ([]review.CleanReview, *Stats, error) {
	if len(batch) == 0 {
		return nil, nil, &review.ConfigurationError{Msg: "raw batch is empty"}
	}

	stats := newStats(len(batch))
	seen := make(map[string]bool, len(batch))
	records := make([]review.CleanReview, 0, len(batch))

	for i, raw := range batch {
		clean, verr := p.cleanOne(raw)
		if verr != nil {
			stats.drop(verr.Reason)
			log.Printf("Dropped record %d (%s/%s): %s", i, raw.BankName, raw.ReviewID, verr)
			continue
		}

		key := dedupKey(clean)
		if seen[key] {
			stats.drop(review.DropDuplicate)
			log.Printf("Dropped record %d (%s/%s): duplicate", i, clean.BankName, clean.ReviewID)
			continue
		}
		seen[key] = true

		records = append(records, clean)
	}

	stats.Cleaned = len(records)

	if stats.Cleaned == 0 {
		return nil, stats, &review.ConfigurationError{Msg: fmt.Sprintf("all %d records in the batch are malformed", stats.Input)}
	}

	return records, stats, nil
}

func (p *Preprocessor) cleanOne(raw review.RawReview) (review.CleanReview, *review.ValidationError) {
	text := collapseWhitespace(raw.Text)
	if text == "" {
		return review.CleanReview{}, &review.ValidationError{Reason: review.DropEmptyText}
	}

	rating, err := strconv.Atoi(strings.TrimSpace(raw.Rating))
	if err != nil || rating < 1 || rating > 5 {
		return review.CleanReview{}, &review.ValidationError{
			Reason: review.DropInvalidRating,
			Detail: fmt.Sprintf("rating %q not an integer in [1,5]", raw.Rating),
		}
	}

	dateStr := strings.TrimSpace(raw.ReviewDate)
	if dateStr == "" {
		return review.CleanReview{}, &review.ValidationError{Reason: review.DropInvalidDate, Detail: "missing review_date"}
	}
	date, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return review.CleanReview{}, &review.ValidationError{
			Reason: review.DropInvalidDate,
			Detail: fmt.Sprintf("unparseable review_date %q", raw.ReviewDate),
		}
	}

	return review.CleanReview{
		ReviewID:       strings.TrimSpace(raw.ReviewID),
		BankName:       collapseWhitespace(raw.BankName),
		AppID:          strings.TrimSpace(raw.AppID),
		Text:           text,
		NormalizedText: Normalize(text),
		Rating:         rating,
		ReviewDate:     date,
	}, nil
}

// dedupKey prefers the source-assigned review id; records without one
// fall back to a content key. The fallback is an inferred convention:
// the source system never documented it.
func dedupKey(r review.CleanReview) string {
	if r.ReviewID != "" {
		return r.BankName + "\x00" + r.ReviewID
	}
	return r.BankName + "\x00" + r.NormalizedText + "\x00" + strconv.Itoa(r.Rating)
}

// Normalize produces the matching form of a text span: NFKC-folded,
// lower-cased, whitespace-collapsed. Original casing is preserved
// separately for display.
func Normalize(text string) string {
	folded := norm.NFKC.String(text)
	return collapseWhitespace(strings.ToLower(folded))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
