package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"reviewpipe/internal/database"
	"reviewpipe/internal/preprocess"
	"reviewpipe/internal/review"
	"reviewpipe/internal/sentiment"
	"reviewpipe/internal/themes"
)

// Pipeline wires the four stages together: preprocess, score, assign
// themes, persist. Stages hold no state across batches.
type Pipeline struct {
	preprocessor *preprocess.Preprocessor
	classifier   *sentiment.Classifier
	assigner     *themes.Assigner
	loader       database.ReviewLoader
	recorder     database.RunRecorder // optional
}

func New(p *preprocess.Preprocessor, c *sentiment.Classifier, a *themes.Assigner,
	loader database.ReviewLoader, recorder database.RunRecorder) *Pipeline {
	return &Pipeline{
		preprocessor: p,
		classifier:   c,
		assigner:     a,
		loader:       loader,
		recorder:     recorder,
	}
}

// Summary is the user-visible accounting of one run. Every dropped or
// failed record is attributable to a reason; silent loss is a bug.
type Summary struct {
	RunID      string
	InputPath  string
	Input      int
	Cleaned    int
	Dropped    map[string]int
	Scored     int
	Loaded     int
	Skipped    int
	LoadFailed int
	Failures   []database.RowFailure
	StartedAt  time.Time
	FinishedAt time.Time
}

// Preprocess runs the cleaning stage only.
func (p *Pipeline) Preprocess(batch []review.RawReview) ([]review.CleanReview, *preprocess.Stats, error) {
	return p.preprocessor.Run(batch)
}

// Analyze scores sentiment and assigns themes to a clean batch.
func (p *Pipeline) Analyze(records []review.CleanReview) []review.EnrichedReview {
	enriched := make([]review.EnrichedReview, 0, len(records))
	for _, r := range records {
		scored := p.classifier.Score(r)
		enriched = append(enriched, p.assigner.Assign(scored))
	}
	return enriched
}

// Run executes the full pipeline on a raw batch and persists the result.
// A connection or transaction failure aborts the run with nothing
// committed; per-row failures are reported in the summary.
func (p *Pipeline) Run(ctx context.Context, inputPath string, raws []review.RawReview) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		InputPath: inputPath,
		Input:     len(raws),
		Dropped:   map[string]int{},
		StartedAt: time.Now().UTC(),
	}

	cleaned, stats, err := p.preprocessor.Run(raws)
	if err != nil {
		return nil, err
	}
	summary.Cleaned = stats.Cleaned
	summary.Dropped = stats.Dropped

	enriched := p.Analyze(cleaned)
	summary.Scored = len(enriched)

	result, err := p.loader.Load(ctx, enriched)
	if err != nil {
		return nil, err
	}
	summary.Loaded = result.Inserted
	summary.Skipped = result.Skipped
	summary.LoadFailed = len(result.Failed)
	summary.Failures = result.Failed
	summary.FinishedAt = time.Now().UTC()

	if p.recorder != nil {
		if err := p.recorder.Record(ctx, database.RunRecord{
			ID:         summary.RunID,
			InputPath:  summary.InputPath,
			InputCount: summary.Input,
			Cleaned:    summary.Cleaned,
			Dropped:    summary.Dropped,
			Loaded:     summary.Loaded,
			Skipped:    summary.Skipped,
			LoadFailed: summary.LoadFailed,
			StartedAt:  summary.StartedAt,
			FinishedAt: summary.FinishedAt,
		}); err != nil {
			log.Printf("Warning: failed to record run summary: %v", err)
		}
	}

	return summary, nil
}

// Log prints the run summary, one line per drop reason and row failure.
func (s *Summary) Log() {
	log.Printf("Run %s: input=%d cleaned=%d dropped=%d scored=%d loaded=%d skipped=%d failed=%d in %v",
		s.RunID, s.Input, s.Cleaned, s.Input-s.Cleaned, s.Scored,
		s.Loaded, s.Skipped, s.LoadFailed, s.FinishedAt.Sub(s.StartedAt))
	for reason, n := range s.Dropped {
		log.Printf("  dropped %s: %d", reason, n)
	}
	for _, f := range s.Failures {
		log.Printf("  load failed row %d (%s/%s): %s", f.Index, f.BankName, f.ReviewID, f.Reason)
	}
}
