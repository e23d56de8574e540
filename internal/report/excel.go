package report

import (
	"github.com/dvloznov/statement-reconciler/internal/capitalgains"
	"github.com/dvloznov/statement-reconciler/internal/ledger"
)

// Excel is the workbook-backed report writer handed to the pipeline.
type Excel struct{}

// WriteStatement implements pipeline.ReportWriter.
func (Excel) WriteStatement(path string, res ledger.Result) error {
	return WriteStatement(path, res)
}

// WriteCapitalGains implements pipeline.ReportWriter.
func (Excel) WriteCapitalGains(path string, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	return WriteCapitalGains(path, disposals, comps)
}
