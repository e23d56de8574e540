// Package pipeline processes one document end to end: transcribe,
// normalize, coerce, reconcile or classify, report. Each document is
// handled fully and in isolation before the next begins; no state
// crosses documents.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/statement-reconciler/internal/archive"
	"github.com/dvloznov/statement-reconciler/internal/capitalgains"
	"github.com/dvloznov/statement-reconciler/internal/ledger"
	"github.com/dvloznov/statement-reconciler/internal/schema"
	"github.com/dvloznov/statement-reconciler/internal/transcribe"
)

// Exporter streams processed rows to an analytics store. Optional.
type Exporter interface {
	ExportStatement(ctx context.Context, documentID string, res ledger.Result) error
	ExportCapitalGains(ctx context.Context, documentID string, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error
}

// ReportWriter renders the processed table into an output workbook.
type ReportWriter interface {
	WriteStatement(path string, res ledger.Result) error
	WriteCapitalGains(path string, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error
}

// Outcome summarizes one successfully processed document.
type Outcome struct {
	DocumentID     string
	OutputPath     string
	RowCount       int
	DocumentStatus string // set when the document carries a single document-level annotation
}

// Processor owns the per-document flow. The provider, writer, exporter
// and archiver are collaborators; only the steps between them are this
// package's logic.
type Processor struct {
	provider transcribe.Provider
	writer   ReportWriter
	exporter Exporter // nil disables export
	archiver archive.Archiver
	outDir   string
	log      zerolog.Logger
}

// New creates a Processor. exporter may be nil; archiver may be
// archive.Discard{}.
func New(provider transcribe.Provider, writer ReportWriter, exporter Exporter, archiver archive.Archiver, outDir string, log zerolog.Logger) *Processor {
	return &Processor{
		provider: provider,
		writer:   writer,
		exporter: exporter,
		archiver: archiver,
		outDir:   outDir,
		log:      log,
	}
}

// Process runs one document through the pipeline and writes its
// workbook. Row-level anomalies never fail the document; only
// structural failures (unreadable file, empty transcription,
// unparseable table, unwritable report) abort it, and they surface as a
// *ProcessError so the worker can decide what to do with the source
// file.
func (p *Processor) Process(ctx context.Context, inputPath string, kind transcribe.Kind) (*Outcome, error) {
	documentID := uuid.NewString()
	filename := filepath.Base(inputPath)
	log := p.log.With().Str("document_id", documentID).Str("filename", filename).Logger()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, &ProcessError{Stage: StageRead, Reason: "cannot read source file", Err: err}
	}

	log.Info().Int("bytes", len(data)).Msg("Starting transcription")
	raw, err := p.provider.Transcribe(ctx, transcribe.Document{
		Filename: filename,
		Data:     data,
		Kind:     kind,
	})
	if err != nil {
		return nil, &ProcessError{Stage: StageTranscribe, Reason: "transcription failed", Err: err}
	}

	table, err := schema.Parse(raw)
	if err != nil {
		return nil, &ProcessError{Stage: StageParse, Reason: "transcription is not parseable", Err: err}
	}
	log.Info().Int("rows", len(table.Rows)).Int("columns", len(table.Headers)).Msg("Parsed transcription")

	outPath := filepath.Join(p.outDir, workbookName(filename))

	var outcome *Outcome
	switch kind {
	case transcribe.KindCapitalGains:
		outcome, err = p.processCapitalGains(ctx, documentID, table, outPath)
	default:
		outcome, err = p.processStatement(ctx, documentID, table, outPath)
	}
	if err != nil {
		return nil, err
	}
	outcome.DocumentID = documentID
	outcome.OutputPath = outPath

	if err := p.archiver.Store(ctx, outPath); err != nil {
		// Retention is best-effort; the workbook is already on disk.
		log.Warn().Err(err).Msg("Failed to archive workbook")
	}

	log.Info().Str("output", outPath).Int("rows", outcome.RowCount).Msg("Document processed")
	return outcome, nil
}

// processStatement reconciles a bank statement table. A missing expected
// column is converted into a document-level critical status here, at the
// reconciliation boundary: the workbook still gets written and the
// worker keeps running.
func (p *Processor) processStatement(ctx context.Context, documentID string, table *schema.Table, outPath string) (*Outcome, error) {
	ledger.RepairColumnShift(table)

	var res ledger.Result
	txs, err := ledger.FromTable(table)
	if err != nil {
		doc := ledger.Critical(err.Error())
		res = ledger.Result{Document: &doc}
	} else {
		res = ledger.Reconcile(txs)
	}

	if err := p.writer.WriteStatement(outPath, res); err != nil {
		return nil, &ProcessError{Stage: StageReport, Reason: "cannot write workbook", Err: err}
	}

	if p.exporter != nil {
		if err := p.exporter.ExportStatement(ctx, documentID, res); err != nil {
			p.log.Warn().Err(err).Str("document_id", documentID).Msg("Statement export failed")
		}
	}

	outcome := &Outcome{RowCount: len(res.Rows)}
	if res.Document != nil {
		outcome.DocumentStatus = res.Document.String()
	}
	return outcome, nil
}

// processCapitalGains classifies and computes a capital-gains table.
func (p *Processor) processCapitalGains(ctx context.Context, documentID string, table *schema.Table, outPath string) (*Outcome, error) {
	disposals, err := capitalgains.FromTable(table)
	if err != nil {
		return nil, &ProcessError{Stage: StageBind, Reason: "capital-gains table is unusable", Err: err}
	}
	if len(disposals) == 0 {
		return nil, &ProcessError{Stage: StageBind, Reason: "no disposal rows extracted"}
	}

	comps := make([]capitalgains.Computation, len(disposals))
	for i, d := range disposals {
		comps[i] = capitalgains.Compute(d)
	}

	if err := p.writer.WriteCapitalGains(outPath, disposals, comps); err != nil {
		return nil, &ProcessError{Stage: StageReport, Reason: "cannot write workbook", Err: err}
	}

	if p.exporter != nil {
		if err := p.exporter.ExportCapitalGains(ctx, documentID, disposals, comps); err != nil {
			p.log.Warn().Err(err).Str("document_id", documentID).Msg("Capital-gains export failed")
		}
	}

	return &Outcome{RowCount: len(disposals)}, nil
}

// workbookName maps "statement.pdf" to "statement.xlsx".
func workbookName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return fmt.Sprintf("%s.xlsx", stem)
}
