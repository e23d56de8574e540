package capitalgains

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	// equityLongTermDays: equity holdings become long-term past one year.
	equityLongTermDays = 365
	// nonEquityLongTermDays: non-equity holdings become long-term past
	// three years.
	nonEquityLongTermDays = 1095
)

// grandfatherCutoff: long-term equity purchased before this date uses
// the 31-01-2018 fair market value to compute deductible cost.
var grandfatherCutoff = civil.Date{Year: 2018, Month: 2, Day: 1}

// Compute classifies the disposal and derives its category-specific
// figures. All monetary derivations are rounded to 2 decimals at the
// point of derivation so chained calculations stay reproducible.
func Compute(d Disposal) Computation {
	c := Computation{
		Category: Classify(d),
		GainLoss: d.NetSale.Sub(d.ActualCost).Round(2),
	}

	if d.HasPurchaseDate && d.HasTransferDate {
		c.DatesValid = true
		c.HoldingDays = d.TransferDate.DaysSince(d.PurchaseDate)
	}

	switch c.Category {
	case EquityMF:
		computeEquity(d, &c)
	case DebtMFIndexed, OtherNonEquity:
		computeIndexed(d, &c)
	case DebtMFSlabRate:
		computeSlabRate(d, &c)
	case VDA:
		computeVDA(d, &c)
	}
	return c
}

// computeEquity applies the STT-paid equity rules: short-term gain under
// s.111A up to one year, LTCG under s.112A past it, with the 2018
// grandfathering clause on the deductible cost.
func computeEquity(d Disposal, c *Computation) {
	c.IsLongTerm = c.DatesValid && c.HoldingDays > equityLongTermDays

	c.DeductibleCost = d.ActualCost
	if c.IsLongTerm && d.HasPurchaseDate && d.PurchaseDate.Before(grandfatherCutoff) {
		lowerOfFMVAndSale := decimal.Min(d.FMVOn31012018, d.NetSale)
		c.DeductibleCost = decimal.Max(d.ActualCost, lowerOfFMVAndSale)
	}
	c.DeductibleCost = c.DeductibleCost.Round(2)

	if c.IsLongTerm {
		c.LongTermGain = d.NetSale.Sub(c.DeductibleCost).Round(2)
	} else {
		c.ShortTermGain = d.NetSale.Sub(d.ActualCost).Round(2)
	}
}

// computeIndexed applies the pre-2023 debt and other non-equity rules:
// plain gain up to three years, indexed gain past them.
func computeIndexed(d Disposal, c *Computation) {
	c.IsLongTerm = c.DatesValid && c.HoldingDays > nonEquityLongTermDays
	if c.IsLongTerm {
		c.LongTermGain = d.NetSale.Sub(d.IndexedCost).Round(2)
	} else {
		c.ShortTermGain = d.NetSale.Sub(d.ActualCost).Round(2)
	}
}

// computeSlabRate: post-cutoff debt funds are short-term regardless of
// holding period, with the plain gain taxed at slab rate.
func computeSlabRate(d Disposal, c *Computation) {
	c.ShortTermGain = d.NetSale.Sub(d.ActualCost).Round(2)
}

// computeVDA: income is floored at zero. Losses on virtual digital
// assets are never allowed to net against other gains, and the category
// carries no long/short distinction.
func computeVDA(d Disposal, c *Computation) {
	income := d.SaleConsideration.Sub(d.ActualCost).Round(2)
	if income.IsNegative() {
		income = decimal.Zero
	}
	c.VDAIncome = income
}
