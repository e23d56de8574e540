package capitalgains

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equityDisposal(purchase, transfer civil.Date) Disposal {
	return Disposal{
		Particulars:     "ABC Equity Fund",
		PurchaseDate:    purchase,
		HasPurchaseDate: true,
		TransferDate:    transfer,
		HasTransferDate: true,
	}
}

func TestCompute_EquityShortTerm(t *testing.T) {
	d := equityDisposal(
		civil.Date{Year: 2024, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 6, Day: 1},
	)
	d.NetSale = amt("1200.00")
	d.ActualCost = amt("1000.00")

	c := Compute(d)

	if c.Category != EquityMF {
		t.Fatalf("Category = %s, want EQUITY_MF", c.Category)
	}
	if c.IsLongTerm {
		t.Error("IsLongTerm = true, want false for a 5-month holding")
	}
	if !c.ShortTermGain.Equal(amt("200.00")) {
		t.Errorf("ShortTermGain = %s, want 200", c.ShortTermGain)
	}
	if !c.LongTermGain.IsZero() {
		t.Errorf("LongTermGain = %s, want 0", c.LongTermGain)
	}
}

func TestCompute_EquityLongTermBoundary(t *testing.T) {
	tests := []struct {
		name     string
		transfer civil.Date
		wantLT   bool
	}{
		// Exactly 365 days is still short-term; long-term starts past it.
		{"exactly one year", civil.Date{Year: 2024, Month: 3, Day: 31}, false},
		{"one day past", civil.Date{Year: 2024, Month: 4, Day: 1}, true},
	}

	purchase := civil.Date{Year: 2023, Month: 4, Day: 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := equityDisposal(purchase, tt.transfer)
			d.NetSale = amt("100")
			c := Compute(d)
			if c.IsLongTerm != tt.wantLT {
				t.Errorf("IsLongTerm = %v (holding %d days), want %v", c.IsLongTerm, c.HoldingDays, tt.wantLT)
			}
		})
	}
}

func TestCompute_EquityGrandfathering(t *testing.T) {
	// Purchased before 2018-02-01: the deductible cost is the higher of
	// actual cost and min(FMV on 31-01-2018, net sale).
	d := equityDisposal(
		civil.Date{Year: 2017, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 1, Day: 1},
	)
	d.ActualCost = amt("100.00")
	d.FMVOn31012018 = amt("150.00")
	d.NetSale = amt("200.00")

	c := Compute(d)

	if !c.IsLongTerm {
		t.Fatal("IsLongTerm = false, want true")
	}
	if !c.DeductibleCost.Equal(amt("150.00")) {
		t.Errorf("DeductibleCost = %s, want 150", c.DeductibleCost)
	}
	if !c.LongTermGain.Equal(amt("50.00")) {
		t.Errorf("LongTermGain = %s, want 50", c.LongTermGain)
	}
}

func TestCompute_EquityGrandfatheringCappedBySale(t *testing.T) {
	// FMV above the sale price: the deductible cost is capped at the sale,
	// so the grandfathered gain bottoms out at zero instead of negative.
	d := equityDisposal(
		civil.Date{Year: 2017, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 1, Day: 1},
	)
	d.ActualCost = amt("100.00")
	d.FMVOn31012018 = amt("300.00")
	d.NetSale = amt("200.00")

	c := Compute(d)

	if !c.DeductibleCost.Equal(amt("200.00")) {
		t.Errorf("DeductibleCost = %s, want 200 (capped at net sale)", c.DeductibleCost)
	}
	if !c.LongTermGain.IsZero() {
		t.Errorf("LongTermGain = %s, want 0", c.LongTermGain)
	}
}

func TestCompute_EquityGrandfatheringKeepsHigherActualCost(t *testing.T) {
	d := equityDisposal(
		civil.Date{Year: 2017, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 1, Day: 1},
	)
	d.ActualCost = amt("180.00")
	d.FMVOn31012018 = amt("150.00")
	d.NetSale = amt("200.00")

	c := Compute(d)

	if !c.DeductibleCost.Equal(amt("180.00")) {
		t.Errorf("DeductibleCost = %s, want actual cost 180", c.DeductibleCost)
	}
}

func TestCompute_EquityNoGrandfatheringAfterCutoff(t *testing.T) {
	d := equityDisposal(
		civil.Date{Year: 2018, Month: 2, Day: 1},
		civil.Date{Year: 2024, Month: 1, Day: 1},
	)
	d.ActualCost = amt("100.00")
	d.FMVOn31012018 = amt("150.00")
	d.NetSale = amt("200.00")

	c := Compute(d)

	if !c.DeductibleCost.Equal(amt("100.00")) {
		t.Errorf("DeductibleCost = %s, want plain actual cost 100", c.DeductibleCost)
	}
	if !c.LongTermGain.Equal(amt("100.00")) {
		t.Errorf("LongTermGain = %s, want 100", c.LongTermGain)
	}
}

func TestCompute_IndexedLongTerm(t *testing.T) {
	d := Disposal{
		Particulars:     "ABC Gilt Fund",
		PurchaseDate:    civil.Date{Year: 2020, Month: 1, Day: 1},
		HasPurchaseDate: true,
		TransferDate:    civil.Date{Year: 2024, Month: 6, Day: 1},
		HasTransferDate: true,
		NetSale:         amt("1500.00"),
		ActualCost:      amt("1000.00"),
		IndexedCost:     amt("1250.00"),
	}

	c := Compute(d)

	if c.Category != DebtMFIndexed {
		t.Fatalf("Category = %s, want DEBT_MF_INDEXED", c.Category)
	}
	if !c.IsLongTerm {
		t.Fatal("IsLongTerm = false, want true past 3 years")
	}
	if !c.LongTermGain.Equal(amt("250.00")) {
		t.Errorf("LongTermGain = %s, want 250 (against indexed cost)", c.LongTermGain)
	}
	if !c.ShortTermGain.IsZero() {
		t.Errorf("ShortTermGain = %s, want 0", c.ShortTermGain)
	}
}

func TestCompute_IndexedThreeYearBoundary(t *testing.T) {
	purchase := civil.Date{Year: 2020, Month: 1, Day: 1}
	tests := []struct {
		name     string
		transfer civil.Date
		wantLT   bool
	}{
		// 2020 is a leap year: 2022-12-31 is exactly 1095 days out.
		{"exactly 1095 days", civil.Date{Year: 2022, Month: 12, Day: 31}, false},
		{"1096 days", civil.Date{Year: 2023, Month: 1, Day: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Disposal{
				Particulars:     "ABC Gilt Fund",
				PurchaseDate:    purchase,
				HasPurchaseDate: true,
				TransferDate:    tt.transfer,
				HasTransferDate: true,
				NetSale:         amt("100"),
				ActualCost:      amt("90"),
				IndexedCost:     amt("95"),
			}
			c := Compute(d)
			if c.IsLongTerm != tt.wantLT {
				t.Errorf("IsLongTerm = %v (holding %d days), want %v", c.IsLongTerm, c.HoldingDays, tt.wantLT)
			}
		})
	}
}

func TestCompute_SlabRateIgnoresHoldingPeriod(t *testing.T) {
	// Purchased after the 2023 cutoff: short-term at slab rate no matter
	// how long it was held.
	d := Disposal{
		Particulars:     "ABC Liquid Fund",
		PurchaseDate:    civil.Date{Year: 2023, Month: 4, Day: 1},
		HasPurchaseDate: true,
		TransferDate:    civil.Date{Year: 2028, Month: 9, Day: 22},
		HasTransferDate: true,
		NetSale:         amt("2000.00"),
		ActualCost:      amt("1500.00"),
	}

	c := Compute(d)

	if c.Category != DebtMFSlabRate {
		t.Fatalf("Category = %s, want DEBT_MF_SLAB_RATE", c.Category)
	}
	if c.HoldingDays <= nonEquityLongTermDays {
		t.Fatalf("test setup: holding %d days should exceed %d", c.HoldingDays, nonEquityLongTermDays)
	}
	if c.IsLongTerm {
		t.Error("IsLongTerm = true, want false regardless of holding period")
	}
	if !c.ShortTermGain.Equal(amt("500.00")) {
		t.Errorf("ShortTermGain = %s, want 500", c.ShortTermGain)
	}
}

func TestCompute_VDA(t *testing.T) {
	tests := []struct {
		name string
		sale string
		cost string
		want string
	}{
		{"gain", "1000.00", "600.00", "400.00"},
		{"loss floored at zero", "600.00", "1000.00", "0"},
		{"break even", "500.00", "500.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Disposal{
				Particulars:       "Bitcoin",
				ExtractedType:     "VDA",
				SaleConsideration: amt(tt.sale),
				ActualCost:        amt(tt.cost),
			}
			c := Compute(d)
			if c.Category != VDA {
				t.Fatalf("Category = %s, want VDA", c.Category)
			}
			if !c.VDAIncome.Equal(amt(tt.want)) {
				t.Errorf("VDAIncome = %s, want %s", c.VDAIncome, tt.want)
			}
			if c.VDAIncome.IsNegative() {
				t.Error("VDAIncome is negative, must never be")
			}
		})
	}
}

func TestCompute_GainLossComputedForEveryCategory(t *testing.T) {
	d := Disposal{
		Particulars: "ABC Liquid Fund",
		NetSale:     amt("110.555"),
		ActualCost:  amt("100.00"),
	}

	c := Compute(d)

	if !c.GainLoss.Equal(amt("10.56")) {
		t.Errorf("GainLoss = %s, want 10.56 (rounded to 2 decimals)", c.GainLoss)
	}
}

func TestCompute_MissingDates(t *testing.T) {
	d := Disposal{
		Particulars: "ABC Equity Fund",
		NetSale:     amt("200.00"),
		ActualCost:  amt("100.00"),
	}

	c := Compute(d)

	if c.DatesValid {
		t.Error("DatesValid = true, want false")
	}
	if c.IsLongTerm {
		t.Error("IsLongTerm = true, want false when dates are unreadable")
	}
	if !c.ShortTermGain.Equal(amt("100.00")) {
		t.Errorf("ShortTermGain = %s, want 100 (short-term by default)", c.ShortTermGain)
	}
}
