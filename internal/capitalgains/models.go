// Package capitalgains classifies disposal rows from a transcribed
// capital-gains report into tax treatment categories and computes the
// category-specific derived figures (deductible cost, short/long-term
// gain). Classification is a closed enum and every category's rule is a
// pure function dispatched on the tag, so each branch of the tax law is
// independently testable.
package capitalgains

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Canonical capital-gains columns. Part of the transcription contract;
// the model is prompted to emit exactly this header.
const (
	ColTransactionType = "Transaction_Type"
	ColParticulars     = "Particulars"
	ColISIN            = "ISIN_Code"
	ColQuantity        = "Quantity"
	ColPurchaseDate    = "Date_of_Purchase"
	ColTransferDate    = "Date_of_Transfer"
	ColSale            = "Sale_Consideration"
	ColSellingExpenses = "Selling_Expenses"
	ColNetSale         = "Net_Sale_Consideration"
	ColActualCost      = "Actual_Cost_of_Acquisition"
	ColIndexedCost     = "Indexed_Cost"
	ColFMV             = "FMV_on_31012018"
	ColExtractedGain   = "Abs_Gain_Loss"
	ColExtractedDays   = "Holding_Days"
)

// Category is the closed set of tax treatment categories.
type Category int

const (
	// EquityMF: equity shares and equity mutual funds (STT paid).
	EquityMF Category = iota
	// DebtMFIndexed: debt funds purchased before 2023-04-01, eligible
	// for indexation on long-term gains.
	DebtMFIndexed
	// DebtMFSlabRate: debt funds purchased on or after 2023-04-01,
	// always taxed at slab rate as short-term.
	DebtMFSlabRate
	// OtherNonEquity: gold funds, international funds and other
	// non-equity instruments.
	OtherNonEquity
	// VDA: crypto and other virtual digital assets.
	VDA
)

// String returns the wire name used in transcriptions and reports.
func (c Category) String() string {
	switch c {
	case EquityMF:
		return "EQUITY_MF"
	case DebtMFIndexed:
		return "DEBT_MF_INDEXED"
	case DebtMFSlabRate:
		return "DEBT_MF_SLAB_RATE"
	case OtherNonEquity:
		return "OTHER_NON_EQUITY"
	case VDA:
		return "VDA"
	default:
		return "UNKNOWN"
	}
}

// TaxationLabel is the human-readable treatment shown on the non-equity
// sheet of the report.
func (c Category) TaxationLabel() string {
	switch c {
	case DebtMFIndexed:
		return "Debt (Indexation)"
	case DebtMFSlabRate:
		return "Debt (Slab Rate)"
	case OtherNonEquity:
		return "Other (Indexation)"
	default:
		return c.String()
	}
}

// Disposal is one coerced row from a capital-gains report. Amount
// columns default to zero when absent; the extracted gain and holding
// days stay nullable so the validation sheet can show them as missing
// instead of a fabricated zero.
type Disposal struct {
	ExtractedType string // Transaction_Type as emitted by the model
	Particulars   string
	ISIN          string
	Quantity      decimal.Decimal

	PurchaseDate    civil.Date
	HasPurchaseDate bool
	TransferDate    civil.Date
	HasTransferDate bool

	SaleConsideration decimal.Decimal
	SellingExpenses   decimal.Decimal
	NetSale           decimal.Decimal
	ActualCost        decimal.Decimal
	IndexedCost       decimal.Decimal
	FMVOn31012018     decimal.Decimal

	ExtractedGainLoss    decimal.NullDecimal
	ExtractedHoldingDays decimal.NullDecimal
}

// Computation holds the derived figures for one disposal. Fields that do
// not apply to the category are zero; VDA rows carry no long/short
// distinction at all.
type Computation struct {
	Category    Category
	HoldingDays int
	DatesValid  bool

	// GainLoss is the plain gain (net sale minus actual cost), computed
	// for every category as the validation figure.
	GainLoss decimal.Decimal

	IsLongTerm     bool
	DeductibleCost decimal.Decimal // equity only
	ShortTermGain  decimal.Decimal
	LongTermGain   decimal.Decimal
	VDAIncome      decimal.Decimal // VDA only, never negative
}
