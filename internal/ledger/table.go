package ledger

import (
	"fmt"

	"github.com/dvloznov/statement-reconciler/internal/coerce"
	"github.com/dvloznov/statement-reconciler/internal/schema"
)

// RepairColumnShift fixes a common transcription artifact: when the
// narration overflows, the true closing-balance value lands one column
// to the right of the declared ClosingBalance field. Per row, if the
// declared balance cell does not parse as a number but the immediately
// following column's cell does, the value is moved into the balance
// field and the source cell is cleared. The repair is applied at most
// once per row and never when the declared balance is already present.
// It runs once, before the balance-consistency pass.
func RepairColumnShift(t *schema.Table) {
	balCol := t.ColumnIndex(ColClosingBalance)
	if balCol < 0 || balCol+1 >= len(t.Headers) {
		return
	}

	for i := range t.Rows {
		if coerce.NullableAmount(t.Cell(i, balCol)).Valid {
			continue
		}
		next := t.Cell(i, balCol+1)
		if !coerce.NullableAmount(next).Valid {
			continue
		}
		t.SetCell(i, balCol, next)
		t.SetCell(i, balCol+1, "")
	}
}

// FromTable binds the canonical statement columns and coerces each row
// into a Transaction. Rows whose date cannot be parsed are dropped; a
// row without a date cannot be placed in the sorted sequence. A missing
// expected column is an error for the caller to convert into a critical
// status.
func FromTable(t *schema.Table) ([]Transaction, error) {
	if err := t.RequireColumns(ColDate, ColWithdrawal, ColDeposit, ColClosingBalance); err != nil {
		return nil, fmt.Errorf("ledger.FromTable: %w", err)
	}

	dateCol := t.ColumnIndex(ColDate)
	chequeCol := t.ColumnIndex(ColChequeNo)
	narrCol := t.ColumnIndex(ColNarration)
	valueDateCol := t.ColumnIndex(ColValueDate)
	wdCol := t.ColumnIndex(ColWithdrawal)
	depCol := t.ColumnIndex(ColDeposit)
	balCol := t.ColumnIndex(ColClosingBalance)

	txs := make([]Transaction, 0, len(t.Rows))
	for i := range t.Rows {
		date, ok := coerce.Date(t.Cell(i, dateCol))
		if !ok {
			continue
		}

		tx := Transaction{
			Date:           date,
			Withdrawal:     coerce.Amount(t.Cell(i, wdCol)),
			Deposit:        coerce.Amount(t.Cell(i, depCol)),
			ClosingBalance: coerce.NullableAmount(t.Cell(i, balCol)),
		}
		if chequeCol >= 0 {
			tx.ChequeRef = t.Cell(i, chequeCol)
		}
		if narrCol >= 0 {
			tx.Narration = t.Cell(i, narrCol)
		}
		if valueDateCol >= 0 {
			if vd, ok := coerce.Date(t.Cell(i, valueDateCol)); ok {
				tx.ValueDate = vd
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
