// Package worker runs the continuous document-processing loop: watch
// the input folders, move each new PDF through the pipeline one at a
// time, and sort the source file into processed/rejected folders.
// Processing is strictly sequential; the reconciliation pass has a data
// dependency on the previous row and there is nothing to parallelize
// within a document.
package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-reconciler/internal/config"
	"github.com/dvloznov/statement-reconciler/internal/pipeline"
	"github.com/dvloznov/statement-reconciler/internal/status"
	"github.com/dvloznov/statement-reconciler/internal/transcribe"
)

// Worker owns the polling loop.
type Worker struct {
	cfg  *config.Config
	proc *pipeline.Processor
	sink status.Sink
	log  zerolog.Logger
}

// New creates a worker.
func New(cfg *config.Config, proc *pipeline.Processor, sink status.Sink, log zerolog.Logger) *Worker {
	return &Worker{cfg: cfg, proc: proc, sink: sink, log: log}
}

// Run polls until the context is cancelled. Errors on individual
// documents are logged and never stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	dirs := []string{
		w.cfg.StatementInputDir, w.cfg.CapitalGainsInputDir,
		w.cfg.InProcessDir, w.cfg.ProcessedDir, w.cfg.RejectedDir, w.cfg.OutputDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("worker: create folder %q: %w", dir, err)
		}
	}

	w.updateStatus(status.Idle, "")
	w.log.Info().Msg("Worker started, watching input folders")

	for {
		processed := w.pollOnce(ctx)
		if ctx.Err() != nil {
			w.log.Info().Msg("Worker stopping")
			return nil
		}
		if processed {
			continue
		}

		w.updateStatus(status.Idle, "")
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return nil
		case <-time.After(w.cfg.PollInterval):
		}
	}
}

// pollOnce handles at most one pending document and reports whether it
// found any work.
func (w *Worker) pollOnce(ctx context.Context) bool {
	type source struct {
		dir  string
		kind transcribe.Kind
	}
	sources := []source{
		{w.cfg.StatementInputDir, transcribe.KindBankStatement},
		{w.cfg.CapitalGainsInputDir, transcribe.KindCapitalGains},
	}

	for _, src := range sources {
		pending, err := listPDFs(src.dir)
		if err != nil {
			w.log.Error().Err(err).Str("dir", src.dir).Msg("Cannot list input folder")
			continue
		}
		if len(pending) == 0 {
			continue
		}
		w.handle(ctx, filepath.Join(src.dir, pending[0]), src.dir, src.kind)
		return true
	}
	return false
}

// handle runs one document through the pipeline with the atomic-move
// protocol: input -> in-process -> processed on success, back to the
// input queue on failure, rejected when the file itself is unusable. A
// file is never left stuck in the in-process folder.
func (w *Worker) handle(ctx context.Context, sourcePath, inputDir string, kind transcribe.Kind) {
	filename := filepath.Base(sourcePath)
	log := w.log.With().Str("filename", filename).Logger()

	info, err := os.Stat(sourcePath)
	if err != nil {
		log.Error().Err(err).Msg("Cannot stat pending file")
		return
	}
	if info.Size() > w.cfg.FileSizeLimit {
		log.Warn().Int64("bytes", info.Size()).Msg("Rejected: file is too large")
		w.reject(sourcePath, "TOO-LARGE")
		return
	}

	log.Info().Msg("Found new file, moving to process")
	w.updateStatus(status.Processing, filename)

	processingPath := filepath.Join(w.cfg.InProcessDir, filename)
	if err := os.Rename(sourcePath, processingPath); err != nil {
		log.Error().Err(err).Msg("Cannot move file to in-process folder")
		return
	}

	outcome, err := w.proc.Process(ctx, processingPath, kind)
	if err != nil {
		log.Error().Err(err).Msg("Processing failed, moving file back to input queue")
		w.requeue(processingPath, inputDir, err)
		w.updateStatus(status.Idle, "")
		return
	}

	if outcome.DocumentStatus != "" {
		log.Warn().Str("document_status", outcome.DocumentStatus).Msg("Document processed with a document-level annotation")
	}

	if err := os.Rename(processingPath, filepath.Join(w.cfg.ProcessedDir, filename)); err != nil {
		log.Error().Err(err).Msg("Cannot move file to processed folder")
	}
	log.Info().Str("output", outcome.OutputPath).Msg("Processing complete")
	w.updateStatus(status.Idle, "")
}

// requeue returns a failed file to its input queue so a later run can
// retry it, except when the file itself can never work: a read failure
// means the PDF is unreadable and retrying is pointless.
func (w *Worker) requeue(processingPath, inputDir string, procErr error) {
	var pe *pipeline.ProcessError
	if errors.As(procErr, &pe) && pe.Stage == pipeline.StageRead {
		w.reject(processingPath, "UNREADABLE")
		return
	}
	if err := os.Rename(processingPath, filepath.Join(inputDir, filepath.Base(processingPath))); err != nil {
		w.log.Error().Err(err).Str("path", processingPath).Msg("Cannot move file back to input queue")
	}
}

// reject moves a file to the rejected folder with a reason suffix, e.g.
// "statement_REJECTED-TOO-LARGE.pdf".
func (w *Worker) reject(path, reason string) {
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	target := filepath.Join(w.cfg.RejectedDir, fmt.Sprintf("%s_REJECTED-%s%s", stem, reason, ext))
	if err := os.Rename(path, target); err != nil {
		w.log.Error().Err(err).Str("path", path).Msg("Cannot move file to rejected folder")
	}
}

func (w *Worker) updateStatus(state, filename string) {
	if err := w.sink.Update(state, filename); err != nil {
		w.log.Error().Err(err).Msg("Cannot write status file")
	}
}

// listPDFs returns the PDF filenames in dir, sorted so the oldest-named
// file is picked first deterministically.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("worker: read dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
