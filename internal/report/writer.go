// Package report renders annotated tables into Excel workbooks. It is
// the output collaborator of the engine: it receives the canonical
// column sets plus the derived/validation columns and writes one sheet
// per projection. Styling is deliberately minimal.
package report

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// formatDate renders DD-MM-YYYY, the day-first convention used across
// all sheets. Invalid (absent) dates render blank.
func formatDate(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

func amountCell(d decimal.Decimal) interface{} {
	f, _ := d.Float64()
	return f
}

func nullableCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return ""
	}
	return amountCell(d.Decimal)
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report: cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("report: set row %d on %q: %w", row, sheet, err)
	}
	return nil
}
