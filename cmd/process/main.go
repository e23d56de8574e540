// process runs a single PDF through the pipeline and writes its
// workbook, without the folder-watching worker. Useful for re-running
// one document or trying out prompt changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dvloznov/statement-reconciler/internal/archive"
	"github.com/dvloznov/statement-reconciler/internal/config"
	"github.com/dvloznov/statement-reconciler/internal/logger"
	"github.com/dvloznov/statement-reconciler/internal/pipeline"
	"github.com/dvloznov/statement-reconciler/internal/report"
	"github.com/dvloznov/statement-reconciler/internal/transcribe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	kindFlag := flag.String("kind", "statement", "document kind: statement or capital-gains")
	outDir := flag.String("out", "", "output directory (default: directory of the input file)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: process [-kind statement|capital-gains] [-out dir] <file.pdf>")
	}
	inputPath := flag.Arg(0)

	var kind transcribe.Kind
	switch *kindFlag {
	case "statement":
		kind = transcribe.KindBankStatement
	case "capital-gains":
		kind = transcribe.KindCapitalGains
	default:
		return fmt.Errorf("unknown kind %q", *kindFlag)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	provider := transcribe.NewGemini(cfg.GeminiModel, cfg.GeminiFallbackModel, log)
	proc := pipeline.New(provider, report.Excel{}, nil, archive.Discard{}, dir, log)

	outcome, err := proc.Process(context.Background(), inputPath, kind)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d rows)\n", outcome.OutputPath, outcome.RowCount)
	if outcome.DocumentStatus != "" {
		fmt.Printf("document status: %s\n", outcome.DocumentStatus)
	}
	return nil
}
