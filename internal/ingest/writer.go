package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reviewpipe/internal/review"
)

// Writer persists processed datasets as CSV files.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteClean writes a preprocessed dataset.
func (w *Writer) WriteClean(path string, records []review.CleanReview) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, cleanRow(r))
	}
	return w.write(path, cleanHeader, rows)
}

// WriteEnriched writes an analyzed dataset.
func (w *Writer) WriteEnriched(path string, records []review.EnrichedReview) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := cleanRow(r.CleanReview)
		row = append(row,
			strconv.FormatFloat(r.SentimentScore, 'f', 4, 64),
			r.SentimentLabel,
			strings.Join(r.Themes, MultiValueSep),
			strings.Join(r.KeywordsMatched, MultiValueSep),
			r.ContentHash,
		)
		rows = append(rows, row)
	}
	return w.write(path, enrichedHeader, rows)
}

func cleanRow(r review.CleanReview) []string {
	return []string{
		r.ReviewID,
		r.BankName,
		r.AppID,
		r.Text,
		r.NormalizedText,
		strconv.Itoa(r.Rating),
		r.ReviewDate.Format(DateLayout),
	}
}

func (w *Writer) write(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return f.Close()
}
