package capitalgains

import (
	"testing"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/statement-reconciler/internal/schema"
)

func TestFromTable(t *testing.T) {
	table := &schema.Table{
		Headers: []string{
			ColTransactionType, ColParticulars, ColISIN, ColQuantity,
			ColPurchaseDate, ColTransferDate, ColSale, ColSellingExpenses,
			ColNetSale, ColActualCost, ColIndexedCost, ColFMV,
			ColExtractedGain, ColExtractedDays,
		},
		Rows: [][]string{
			{
				"EQUITY_MF", "ABC Equity Fund", "INF123456789", "100.000",
				"01-01-2020", "01-06-2024", "50,000.00", "50.00",
				"49,950.00", "30,000.00", "", "35,000.00",
				"19950.00", "1613",
			},
			{
				"DEBT_MF_INDEXED", "XYZ Gilt Fund", "", "50",
				"not-a-date", "15-06-2024", "10,000.00", "0",
				"10,000.00", "8,000.00", "9,000.00", "",
				"", "",
			},
		},
	}

	disposals, err := FromTable(table)
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if len(disposals) != 2 {
		t.Fatalf("len(disposals) = %d, want 2", len(disposals))
	}

	first := disposals[0]
	if first.ExtractedType != "EQUITY_MF" {
		t.Errorf("ExtractedType = %q, want EQUITY_MF", first.ExtractedType)
	}
	if first.ISIN != "INF123456789" {
		t.Errorf("ISIN = %q", first.ISIN)
	}
	if !first.HasPurchaseDate || first.PurchaseDate != (civil.Date{Year: 2020, Month: 1, Day: 1}) {
		t.Errorf("PurchaseDate = %v valid=%v", first.PurchaseDate, first.HasPurchaseDate)
	}
	if !first.NetSale.Equal(amt("49950")) {
		t.Errorf("NetSale = %s, want 49950", first.NetSale)
	}
	if !first.ExtractedGainLoss.Valid || !first.ExtractedGainLoss.Decimal.Equal(amt("19950")) {
		t.Errorf("ExtractedGainLoss = %+v, want valid 19950", first.ExtractedGainLoss)
	}

	second := disposals[1]
	if second.HasPurchaseDate {
		t.Error("HasPurchaseDate = true, want false for unreadable date")
	}
	if !second.HasTransferDate {
		t.Error("HasTransferDate = false, want true")
	}
	if second.ExtractedGainLoss.Valid {
		t.Error("ExtractedGainLoss.Valid = true, want false for empty cell")
	}
}

func TestFromTable_KeepsRowsWithUnreadableDates(t *testing.T) {
	// Statement rows without dates are dropped; disposal rows are not.
	table := &schema.Table{
		Headers: []string{ColParticulars, ColNetSale, ColActualCost},
		Rows: [][]string{
			{"ABC Equity Fund", "200.00", "100.00"},
		},
	}

	disposals, err := FromTable(table)
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if len(disposals) != 1 {
		t.Errorf("len(disposals) = %d, want 1", len(disposals))
	}
}

func TestFromTable_MissingColumn(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColParticulars, ColNetSale},
		Rows:    [][]string{{"ABC Fund", "200.00"}},
	}

	_, err := FromTable(table)
	if err == nil {
		t.Fatal("FromTable() expected error for missing cost column")
	}
}
