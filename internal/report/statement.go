package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/statement-reconciler/internal/ledger"
)

const statementSheet = "Transactions"

var statementHeader = []interface{}{
	"Date", "ChequeNo", "Narration", "ValueDate",
	"WithdrawalAmount", "DepositAmount", "ClosingBalance", "Validation Status",
}

// WriteStatement renders a reconciled bank statement into a single-sheet
// workbook: the canonical columns plus the per-row validation verdict.
// A document-level annotation (empty table, no balance anchor) is
// written next to the header instead of being repeated on every row.
func WriteStatement(path string, res ledger.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return fmt.Errorf("report.WriteStatement: rename sheet: %w", err)
	}
	if err := setRow(f, statementSheet, 1, statementHeader); err != nil {
		return err
	}
	if res.Document != nil {
		cell, _ := excelize.CoordinatesToCellName(len(statementHeader)+1, 1)
		if err := f.SetCellValue(statementSheet, cell, res.Document.String()); err != nil {
			return fmt.Errorf("report.WriteStatement: document status: %w", err)
		}
	}

	for i, tx := range res.Rows {
		statusText := tx.Status.String()
		if res.Document != nil {
			// Row-level checking was not performed.
			statusText = ""
		}
		row := []interface{}{
			formatDate(tx.Date),
			tx.ChequeRef,
			tx.Narration,
			formatDate(tx.ValueDate),
			amountCell(tx.Withdrawal),
			amountCell(tx.Deposit),
			nullableCell(tx.ClosingBalance),
			statusText,
		}
		if err := setRow(f, statementSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report.WriteStatement: save %q: %w", path, err)
	}
	return nil
}
