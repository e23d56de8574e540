package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// tolerance absorbs floating-point noise in transcribed amounts. A
// discrepancy at or below one paisa is treated as exact.
var tolerance = decimal.New(1, -2) // 0.01

// Reconcile sorts the rows by date (stable; ties preserve source order)
// and runs the balance-consistency pass, annotating every row. The pass
// is a single forward scan: each row's reported balance is checked
// against the previous row's balance adjusted by this row's withdrawal
// and deposit.
//
// The pass never fails: anomalies become row annotations, and conditions
// that make row-level checking meaningless (no rows, no readable balance
// anywhere) collapse into a single document-level annotation.
//
// Reconcile is idempotent: re-running it over already-annotated rows
// yields identical annotations.
func Reconcile(txs []Transaction) Result {
	if len(txs) == 0 {
		doc := Critical("no transactions extracted")
		return Result{Document: &doc}
	}

	rows := make([]Transaction, len(txs))
	copy(rows, txs)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	anyBalance := false
	for i := range rows {
		if rows[i].ClosingBalance.Valid {
			anyBalance = true
			break
		}
	}
	if !anyBalance {
		// Row-by-row checking is meaningless without a single balance
		// anchor; one critical annotation instead of per-row noise.
		doc := Critical("no closing balance could be read")
		return Result{Rows: rows, Document: &doc}
	}

	// Row 0 is never compared to anything; it can only be checked for
	// having a readable opening balance.
	if rows[0].ClosingBalance.Valid {
		rows[0].Status = OK
	} else {
		rows[0].Status = Critical("opening balance missing or invalid")
	}

	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].ClosingBalance
		cur := rows[i].ClosingBalance

		// A missing balance propagates forward exactly one row: this
		// row cannot be verified, but its own balance (if present)
		// re-anchors the chain for row i+1.
		if !prev.Valid {
			rows[i].Status = ValidationStatus{Kind: StatusMissingPrevious}
			continue
		}
		if !cur.Valid {
			rows[i].Status = ValidationStatus{Kind: StatusMissingCurrent}
			continue
		}

		expected := prev.Decimal.Sub(rows[i].Withdrawal).Add(rows[i].Deposit)
		discrepancy := expected.Sub(cur.Decimal)
		if discrepancy.Abs().Cmp(tolerance) > 0 {
			rows[i].Status = Mismatch(discrepancy)
		} else {
			rows[i].Status = OK
		}
	}

	return Result{Rows: rows}
}
