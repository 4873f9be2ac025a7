package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yudhistira-dev/orgintel/internal/imagefetch"
	"github.com/yudhistira-dev/orgintel/internal/jobs"
	"github.com/yudhistira-dev/orgintel/internal/jobs/inmemory"
	"github.com/yudhistira-dev/orgintel/internal/logger"
	"github.com/yudhistira-dev/orgintel/internal/ocr"
	"github.com/yudhistira-dev/orgintel/internal/receipt"
)

func main() {
	_ = godotenv.Load()

	var (
		workers   = flag.Int("workers", 5, "concurrent extraction workers")
		useGemini = flag.Bool("gemini", os.Getenv("GEMINI_API_KEY") != "", "enable the Gemini fallback provider")
		refs      = flag.String("refs", "", "optional file with one image reference per line to enqueue at startup")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	// Initialize job store and queue
	// In production, this would be replaced with Cloud Tasks or Pub/Sub
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	log.Info().Int("workers", *workers).Bool("gemini", *useGemini).Msg("Starting extraction worker")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the provider chain: local heuristic pipeline first, optional
	// Gemini fallback second.
	providers := []receipt.Provider{
		receipt.NewExtractor(ocr.NewTesseractRecognizer(), log),
	}
	if *useGemini {
		providers = append(providers, receipt.NewGeminiProvider(""))
	}
	chain := receipt.NewChain(receipt.ReviewFloor, log, providers...)

	// Create job handler that runs the extraction chain
	handler := func(ctx context.Context, job jobs.Job) error {
		extractJob, ok := job.(*jobs.ExtractReceiptJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", extractJob.JobID).
			Str("image_ref", extractJob.ImageRef).
			Msg("Processing extraction job")

		image, err := imagefetch.Load(ctx, extractJob.ImageRef)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", extractJob.JobID).
				Msg("Failed to load image")
			return err
		}

		result := chain.Extract(ctx, image)
		extractJob.Result = &result

		out, _ := json.Marshal(result)
		log.Info().
			Str("job_id", extractJob.JobID).
			RawJSON("result", out).
			Msg("Extraction completed")

		return nil
	}

	// Start consuming jobs
	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	if *refs != "" {
		if err := enqueueFromFile(ctx, jobQueue, *refs); err != nil {
			log.Error().Err(err).Str("file", *refs).Msg("Failed to enqueue startup jobs")
		}
	}

	log.Info().Msg("Worker started, waiting for jobs...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker...")

	// Cancel context to stop workers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("Worker exited")
}

// enqueueFromFile publishes one job per non-empty line of the given file.
func enqueueFromFile(ctx context.Context, queue jobs.Publisher, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read refs file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := queue.PublishExtractReceipt(ctx, &jobs.ExtractReceiptJob{ImageRef: line}); err != nil {
			return err
		}
	}
	return nil
}
