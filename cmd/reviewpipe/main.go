package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"reviewpipe/internal/api"
	"reviewpipe/internal/cfg"
	"reviewpipe/internal/database"
	"reviewpipe/internal/ingest"
	"reviewpipe/internal/pipeline"
	"reviewpipe/internal/preprocess"
	"reviewpipe/internal/sentiment"
	"reviewpipe/internal/themes"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	var runErr error
	switch appCfg.Command {
	case "preprocess":
		runErr = runPreprocess(appCfg)
	case "analyze":
		runErr = runAnalyze(appCfg)
	case "load":
		runErr = runLoad(appCfg)
	case "run":
		runErr = runFull(appCfg)
	case "serve":
		runErr = runServe(appCfg)
	}

	if runErr != nil {
		log.Printf("Error: %v", runErr)
		os.Exit(1)
	}
}

// runPreprocess cleans a raw dataset and writes the clean dataset.
func runPreprocess(appCfg *cfg.Cfg) error {
	log.Printf("Preprocessing %s...", appCfg.Input)

	raws, err := ingest.NewReader().ReadRaw(appCfg.Input)
	if err != nil {
		return err
	}

	cleaned, stats, err := preprocess.NewPreprocessor().Run(raws)
	if err != nil {
		return err
	}

	if err := ingest.NewWriter().WriteClean(appCfg.Output, cleaned); err != nil {
		return err
	}

	log.Printf("Preprocessed %s: input=%d cleaned=%d dropped=%d -> %s",
		appCfg.Input, stats.Input, stats.Cleaned, stats.DroppedTotal(), appCfg.Output)
	for reason, n := range stats.Dropped {
		log.Printf("  dropped %s: %d", reason, n)
	}

	return nil
}

// runAnalyze scores sentiment and assigns themes to a clean dataset.
func runAnalyze(appCfg *cfg.Cfg) error {
	themeConfig, err := themes.NewLoader(appCfg.ThemesFile).Load()
	if err != nil {
		return err
	}

	records, err := ingest.NewReader().ReadClean(appCfg.Input)
	if err != nil {
		return err
	}

	log.Printf("Analyzing %d reviews from %s...", len(records), appCfg.Input)

	p := pipeline.New(preprocess.NewPreprocessor(), sentiment.NewClassifier(),
		themes.NewAssigner(themeConfig), nil, nil)
	enriched := p.Analyze(records)

	if err := ingest.NewWriter().WriteEnriched(appCfg.Output, enriched); err != nil {
		return err
	}

	log.Printf("Analyzed %d reviews -> %s", len(enriched), appCfg.Output)
	return nil
}

// runLoad loads an enriched dataset into the store. Exit is non-zero if
// any row failed.
func runLoad(appCfg *cfg.Cfg) error {
	records, err := ingest.NewReader().ReadEnriched(appCfg.Input)
	if err != nil {
		return err
	}

	db, err := connect(appCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	started := time.Now().UTC()
	result, err := database.NewReviewRepository(db).Load(context.Background(), records)
	if err != nil {
		return err
	}

	log.Printf("Loaded %s: %d written, %d unchanged, %d failed",
		appCfg.Input, result.Inserted, result.Skipped, len(result.Failed))
	for _, f := range result.Failed {
		log.Printf("  load failed row %d (%s/%s): %s", f.Index, f.BankName, f.ReviewID, f.Reason)
	}

	if err := database.NewRunRepository(db).Record(context.Background(), database.RunRecord{
		ID:         uuid.NewString(),
		InputPath:  appCfg.Input,
		InputCount: len(records),
		Cleaned:    len(records),
		Dropped:    map[string]int{},
		Loaded:     result.Inserted,
		Skipped:    result.Skipped,
		LoadFailed: len(result.Failed),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("Warning: failed to record run summary: %v", err)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d rows failed to load", len(result.Failed))
	}

	return nil
}

// runFull executes the whole pipeline: preprocess, analyze, load.
func runFull(appCfg *cfg.Cfg) error {
	themeConfig, err := themes.NewLoader(appCfg.ThemesFile).Load()
	if err != nil {
		return err
	}

	raws, err := ingest.NewReader().ReadRaw(appCfg.Input)
	if err != nil {
		return err
	}

	db, err := connect(appCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	p := pipeline.New(
		preprocess.NewPreprocessor(),
		sentiment.NewClassifier(),
		themes.NewAssigner(themeConfig),
		database.NewReviewRepository(db),
		database.NewRunRepository(db),
	)

	summary, err := p.Run(context.Background(), appCfg.Input, raws)
	if err != nil {
		return err
	}
	summary.Log()

	if summary.LoadFailed > 0 {
		return fmt.Errorf("%d rows failed to load", summary.LoadFailed)
	}

	return nil
}

// runServe starts the analyst stats API.
func runServe(appCfg *cfg.Cfg) error {
	db, err := connect(appCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	handler := api.NewHandler(database.NewStatsRepository(db), appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)
		log.Printf("  Reviews:       http://localhost:%s/reviews", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		return err
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	return nil
}

// connect opens the store connection and ensures the schema exists.
func connect(appCfg *cfg.Cfg) (*database.DB, error) {
	log.Println("Connecting to database...")
	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName, appCfg.DBSSLMode)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Printf("Database schema at version %d (dirty: %v)", version, dirty)

	return db, nil
}
