// Package ledger verifies the running-balance identity of a transcribed
// bank statement and annotates every row with a validation verdict. The
// model that produced the rows is non-deterministic; this package is the
// arithmetic backstop that decides whether its output can be trusted.
package ledger

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Canonical statement columns. These names are part of the transcription
// contract: the model is prompted to emit exactly this header.
const (
	ColDate           = "Date"
	ColChequeNo       = "ChequeNo"
	ColNarration      = "Narration"
	ColValueDate      = "ValueDate"
	ColWithdrawal     = "WithdrawalAmount"
	ColDeposit        = "DepositAmount"
	ColClosingBalance = "ClosingBalance"
)

// StatusKind discriminates the validation verdict of a row.
type StatusKind int

const (
	// StatusOK means the balance identity holds within tolerance.
	StatusOK StatusKind = iota
	// StatusMismatch means both balances were present but the identity
	// failed; Delta carries the discrepancy.
	StatusMismatch
	// StatusMissingPrevious means the previous row's balance is missing,
	// so this row cannot be verified. Not an error about this row itself.
	StatusMissingPrevious
	// StatusMissingCurrent means this row's own balance is missing.
	StatusMissingCurrent
	// StatusCritical is a document- or row-level condition that makes
	// balance checking meaningless; Reason carries the detail.
	StatusCritical
)

// ValidationStatus is the tagged verdict attached to each row.
type ValidationStatus struct {
	Kind   StatusKind
	Delta  decimal.Decimal // mismatch amount, rounded to 2 decimals
	Reason string          // critical detail
}

// OK is the zero verdict.
var OK = ValidationStatus{Kind: StatusOK}

// Mismatch builds a mismatch verdict with the delta rounded to 2
// decimals at the point of derivation.
func Mismatch(delta decimal.Decimal) ValidationStatus {
	return ValidationStatus{Kind: StatusMismatch, Delta: delta.Round(2)}
}

// Critical builds a critical verdict.
func Critical(reason string) ValidationStatus {
	return ValidationStatus{Kind: StatusCritical, Reason: reason}
}

// String renders the verdict the way it appears in the output workbook.
func (s ValidationStatus) String() string {
	switch s.Kind {
	case StatusOK:
		return "OK"
	case StatusMismatch:
		return fmt.Sprintf("Mismatch by %s", s.Delta.StringFixed(2))
	case StatusMissingPrevious:
		return "Skipped: Previous balance is missing"
	case StatusMissingCurrent:
		return "Error: Closing Balance is missing or invalid"
	case StatusCritical:
		return fmt.Sprintf("Critical: %s", s.Reason)
	default:
		return fmt.Sprintf("Unknown(%d)", int(s.Kind))
	}
}

// Transaction is one coerced statement row. Withdrawal and Deposit
// default to zero when absent; ClosingBalance keeps an explicit missing
// marker because a missing balance must block verification.
type Transaction struct {
	Date           civil.Date
	ChequeRef      string
	Narration      string
	ValueDate      civil.Date // zero value when the source has none
	Withdrawal     decimal.Decimal
	Deposit        decimal.Decimal
	ClosingBalance decimal.NullDecimal
	Status         ValidationStatus
}

// Result is the outcome of one reconciliation pass. When row-by-row
// checking was meaningless (empty table, no readable balance anywhere,
// missing expected column), Document carries a single annotation instead
// of per-row noise.
type Result struct {
	Rows     []Transaction
	Document *ValidationStatus
}
