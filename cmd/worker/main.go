package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dvloznov/statement-reconciler/internal/archive"
	"github.com/dvloznov/statement-reconciler/internal/config"
	"github.com/dvloznov/statement-reconciler/internal/export"
	"github.com/dvloznov/statement-reconciler/internal/logger"
	"github.com/dvloznov/statement-reconciler/internal/pipeline"
	"github.com/dvloznov/statement-reconciler/internal/report"
	"github.com/dvloznov/statement-reconciler/internal/status"
	"github.com/dvloznov/statement-reconciler/internal/transcribe"
	"github.com/dvloznov/statement-reconciler/internal/worker"
)

func main() {
	// Local development keeps credentials in .env; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.LogLevel)

	provider := transcribe.NewGemini(cfg.GeminiModel, cfg.GeminiFallbackModel, log)
	sink := status.NewFileSink(cfg.StatusFile)

	var archiver archive.Archiver = archive.Discard{}
	if cfg.GCSBucket != "" {
		archiver = archive.NewGCS(cfg.GCSBucket, cfg.GCSPrefix)
		log.Info().Str("bucket", cfg.GCSBucket).Msg("GCS archiving enabled")
	}

	var exporter pipeline.Exporter
	if cfg.BigQueryProject != "" {
		exporter = export.NewExporter(cfg.BigQueryProject, cfg.BigQueryDataset)
		log.Info().Str("project", cfg.BigQueryProject).Str("dataset", cfg.BigQueryDataset).Msg("BigQuery export enabled")
	}

	proc := pipeline.New(provider, report.Excel{}, exporter, archiver, cfg.OutputDir, log)
	w := worker.New(cfg, proc, sink, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting worker service")
	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Worker failed")
	}
	log.Info().Msg("Worker service exited")
}
