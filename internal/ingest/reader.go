package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"reviewpipe/internal/review"
)

// Reader loads review datasets from CSV files.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadRaw reads a raw scraper dataset. The header is validated up front:
// missing required columns abort the run before any processing.
func (r *Reader) ReadRaw(path string) ([]review.RawReview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &review.ConfigurationError{Msg: fmt.Sprintf("cannot open raw dataset %s", path), Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // scraper output is not always rectangular

	header, err := cr.Read()
	if err != nil {
		return nil, &review.ConfigurationError{Msg: "cannot read dataset header", Err: err}
	}

	index, err := indexHeader(header, requiredColumns)
	if err != nil {
		return nil, err
	}

	known := map[string]bool{
		ColReviewID: true, ColReviewText: true, ColRating: true,
		ColReviewDate: true, ColBankName: true, ColAppID: true,
	}

	var records []review.RawReview
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		raw := review.RawReview{
			ReviewID:   field(row, index, ColReviewID),
			BankName:   field(row, index, ColBankName),
			AppID:      field(row, index, ColAppID),
			Text:       field(row, index, ColReviewText),
			Rating:     field(row, index, ColRating),
			ReviewDate: field(row, index, ColReviewDate),
		}

		for name, pos := range index {
			if known[name] || pos >= len(row) {
				continue
			}
			if raw.Extra == nil {
				raw.Extra = make(map[string]string)
			}
			raw.Extra[name] = row[pos]
		}

		records = append(records, raw)
	}

	if len(records) == 0 {
		return nil, &review.ConfigurationError{Msg: fmt.Sprintf("raw dataset %s contains no records", path)}
	}

	return records, nil
}

// ReadClean reads a preprocessed dataset back into memory. Values were
// validated when the file was written, so a malformed row here is a
// hard error rather than a droppable record.
func (r *Reader) ReadClean(path string) ([]review.CleanReview, error) {
	rows, index, err := r.readProcessed(path, cleanHeader)
	if err != nil {
		return nil, err
	}

	records := make([]review.CleanReview, 0, len(rows))
	for i, row := range rows {
		clean, err := scanClean(row, index)
		if err != nil {
			return nil, fmt.Errorf("malformed clean dataset row %d: %w", i+2, err)
		}
		records = append(records, clean)
	}

	return records, nil
}

// ReadEnriched reads an analyzed dataset, the input of the load command.
func (r *Reader) ReadEnriched(path string) ([]review.EnrichedReview, error) {
	rows, index, err := r.readProcessed(path, enrichedHeader)
	if err != nil {
		return nil, err
	}

	records := make([]review.EnrichedReview, 0, len(rows))
	for i, row := range rows {
		clean, err := scanClean(row, index)
		if err != nil {
			return nil, fmt.Errorf("malformed enriched dataset row %d: %w", i+2, err)
		}

		score, err := strconv.ParseFloat(field(row, index, "sentiment_score"), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed enriched dataset row %d: bad sentiment_score: %w", i+2, err)
		}

		enriched := review.EnrichedReview{
			ScoredReview: review.ScoredReview{
				CleanReview:    clean,
				SentimentScore: score,
				SentimentLabel: field(row, index, "sentiment_label"),
			},
			Themes:          splitMulti(field(row, index, "themes")),
			KeywordsMatched: splitMulti(field(row, index, "keywords_matched")),
			ContentHash:     field(row, index, "content_hash"),
		}
		records = append(records, enriched)
	}

	return records, nil
}

func (r *Reader) readProcessed(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &review.ConfigurationError{Msg: fmt.Sprintf("cannot open dataset %s", path), Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, &review.ConfigurationError{Msg: "cannot read dataset header", Err: err}
	}

	index, err := indexHeader(header, required)
	if err != nil {
		return nil, nil, err
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset rows: %w", err)
	}

	return rows, index, nil
}

func scanClean(row []string, index map[string]int) (review.CleanReview, error) {
	rating, err := strconv.Atoi(field(row, index, "rating"))
	if err != nil {
		return review.CleanReview{}, fmt.Errorf("bad rating: %w", err)
	}

	date, err := time.Parse(DateLayout, field(row, index, "review_date"))
	if err != nil {
		return review.CleanReview{}, fmt.Errorf("bad review_date: %w", err)
	}

	return review.CleanReview{
		ReviewID:       field(row, index, "review_id"),
		BankName:       field(row, index, "bank_name"),
		AppID:          field(row, index, "app_id"),
		Text:           field(row, index, "review_text"),
		NormalizedText: field(row, index, "normalized_text"),
		Rating:         rating,
		ReviewDate:     date,
	}, nil
}

// indexHeader maps column names to positions and verifies required ones.
func indexHeader(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &review.ConfigurationError{Msg: fmt.Sprintf("dataset is missing required columns: %s", strings.Join(missing, ", "))}
	}

	return index, nil
}

func field(row []string, index map[string]int, name string) string {
	pos, ok := index[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

func splitMulti(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, MultiValueSep)
}
