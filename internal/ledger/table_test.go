package ledger

import (
	"testing"

	"github.com/dvloznov/statement-reconciler/internal/schema"
)

func statementTable(rows [][]string) *schema.Table {
	return &schema.Table{
		Headers: []string{ColDate, ColNarration, ColWithdrawal, ColDeposit, ColClosingBalance, "Unnamed_1"},
		Rows:    rows,
	}
}

func TestRepairColumnShift_MovesShiftedBalance(t *testing.T) {
	table := statementTable([][]string{
		{"01-04-2024", "UPI PAYMENT", "200.00", "0", "", "800.00"},
	})

	RepairColumnShift(table)

	if got := table.Cell(0, 4); got != "800.00" {
		t.Errorf("balance cell = %q, want %q", got, "800.00")
	}
	if got := table.Cell(0, 5); got != "" {
		t.Errorf("overflow cell = %q, want cleared", got)
	}
}

func TestRepairColumnShift_NeverWhenBalancePresent(t *testing.T) {
	table := statementTable([][]string{
		{"01-04-2024", "UPI PAYMENT", "200.00", "0", "800.00", "999.00"},
	})

	RepairColumnShift(table)

	if got := table.Cell(0, 4); got != "800.00" {
		t.Errorf("balance cell = %q, want untouched %q", got, "800.00")
	}
	if got := table.Cell(0, 5); got != "999.00" {
		t.Errorf("neighbour cell = %q, want untouched %q", got, "999.00")
	}
}

func TestRepairColumnShift_OnlyAdjacentColumn(t *testing.T) {
	// The numeric value two columns over must not be pulled in.
	table := &schema.Table{
		Headers: []string{ColDate, ColClosingBalance, "Unnamed_1", "Unnamed_2"},
		Rows: [][]string{
			{"01-04-2024", "", "garbage", "800.00"},
		},
	}

	RepairColumnShift(table)

	if got := table.Cell(0, 1); got != "" {
		t.Errorf("balance cell = %q, want still empty", got)
	}
	if got := table.Cell(0, 3); got != "800.00" {
		t.Errorf("far cell = %q, want untouched", got)
	}
}

func TestRepairColumnShift_Idempotent(t *testing.T) {
	table := statementTable([][]string{
		{"01-04-2024", "UPI PAYMENT", "200.00", "0", "", "800.00"},
	})

	RepairColumnShift(table)
	RepairColumnShift(table)

	if got := table.Cell(0, 4); got != "800.00" {
		t.Errorf("balance cell = %q, want %q after second run", got, "800.00")
	}
	if got := table.Cell(0, 5); got != "" {
		t.Errorf("overflow cell = %q, want still cleared", got)
	}
}

func TestRepairColumnShift_NoBalanceColumn(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColDate, ColNarration},
		Rows:    [][]string{{"01-04-2024", "x"}},
	}

	// Must not panic or change anything.
	RepairColumnShift(table)

	if table.Cell(0, 1) != "x" {
		t.Error("table changed without a balance column")
	}
}

func TestRepairColumnShift_BalanceIsLastColumn(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColDate, ColClosingBalance},
		Rows:    [][]string{{"01-04-2024", ""}},
	}

	RepairColumnShift(table)

	if table.Cell(0, 1) != "" {
		t.Error("last-column balance must stay as is")
	}
}

func TestFromTable(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColDate, ColChequeNo, ColNarration, ColValueDate, ColWithdrawal, ColDeposit, ColClosingBalance},
		Rows: [][]string{
			{"01-04-2024", "123456", "CHEQUE DEPOSIT", "02-04-2024", "0.00", "1,000.00", "5,000.00"},
			{"03-04-2024", "", "ATM WITHDRAWAL", "", "500.00", "0.00", ""},
		},
	}

	txs, err := FromTable(table)
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("len(txs) = %d, want 2", len(txs))
	}

	first := txs[0]
	if first.ChequeRef != "123456" {
		t.Errorf("ChequeRef = %q, want %q", first.ChequeRef, "123456")
	}
	if first.Narration != "CHEQUE DEPOSIT" {
		t.Errorf("Narration = %q, want %q", first.Narration, "CHEQUE DEPOSIT")
	}
	if first.ValueDate != date(2) {
		t.Errorf("ValueDate = %v, want %v", first.ValueDate, date(2))
	}
	if !first.Deposit.Equal(amt("1000")) {
		t.Errorf("Deposit = %s, want 1000", first.Deposit)
	}
	if !first.ClosingBalance.Valid || !first.ClosingBalance.Decimal.Equal(amt("5000")) {
		t.Errorf("ClosingBalance = %+v, want valid 5000", first.ClosingBalance)
	}

	second := txs[1]
	if second.ClosingBalance.Valid {
		t.Error("ClosingBalance.Valid = true, want false for empty cell")
	}
	if !second.Withdrawal.Equal(amt("500")) {
		t.Errorf("Withdrawal = %s, want 500", second.Withdrawal)
	}
}

func TestFromTable_DropsRowsWithoutDate(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColDate, ColWithdrawal, ColDeposit, ColClosingBalance},
		Rows: [][]string{
			{"01-04-2024", "0", "100.00", "100.00"},
			{"TOTAL", "0", "0", "100.00"},
			{"", "0", "0", ""},
		},
	}

	txs, err := FromTable(table)
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("len(txs) = %d, want 1 (dateless rows dropped)", len(txs))
	}
}

func TestFromTable_MissingColumn(t *testing.T) {
	table := &schema.Table{
		Headers: []string{ColDate, ColWithdrawal, ColDeposit},
		Rows:    [][]string{{"01-04-2024", "0", "100.00"}},
	}

	_, err := FromTable(table)
	if err == nil {
		t.Fatal("FromTable() expected error for missing balance column")
	}
}
