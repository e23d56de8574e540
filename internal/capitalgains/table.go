package capitalgains

import (
	"fmt"

	"github.com/dvloznov/statement-reconciler/internal/coerce"
	"github.com/dvloznov/statement-reconciler/internal/schema"
)

// FromTable binds the canonical capital-gains columns and coerces each
// row into a Disposal. Unlike bank statements, rows are kept even when
// their dates are unreadable; the computation marks them instead of
// dropping them, since a disposal row is still reportable without a
// holding period.
func FromTable(t *schema.Table) ([]Disposal, error) {
	if err := t.RequireColumns(ColParticulars, ColNetSale, ColActualCost); err != nil {
		return nil, fmt.Errorf("capitalgains.FromTable: %w", err)
	}

	col := func(name string) int { return t.ColumnIndex(name) }
	typeCol := col(ColTransactionType)
	partCol := col(ColParticulars)
	isinCol := col(ColISIN)
	qtyCol := col(ColQuantity)
	purchCol := col(ColPurchaseDate)
	transfCol := col(ColTransferDate)
	saleCol := col(ColSale)
	expCol := col(ColSellingExpenses)
	netCol := col(ColNetSale)
	costCol := col(ColActualCost)
	idxCol := col(ColIndexedCost)
	fmvCol := col(ColFMV)
	gainCol := col(ColExtractedGain)
	daysCol := col(ColExtractedDays)

	disposals := make([]Disposal, 0, len(t.Rows))
	for i := range t.Rows {
		d := Disposal{
			Particulars:          t.Cell(i, partCol),
			Quantity:             coerce.Amount(t.Cell(i, qtyCol)),
			SaleConsideration:    coerce.Amount(t.Cell(i, saleCol)),
			SellingExpenses:      coerce.Amount(t.Cell(i, expCol)),
			NetSale:              coerce.Amount(t.Cell(i, netCol)),
			ActualCost:           coerce.Amount(t.Cell(i, costCol)),
			IndexedCost:          coerce.Amount(t.Cell(i, idxCol)),
			FMVOn31012018:        coerce.Amount(t.Cell(i, fmvCol)),
			ExtractedGainLoss:    coerce.NullableAmount(t.Cell(i, gainCol)),
			ExtractedHoldingDays: coerce.NullableAmount(t.Cell(i, daysCol)),
		}
		if typeCol >= 0 {
			d.ExtractedType = t.Cell(i, typeCol)
		}
		if isinCol >= 0 {
			d.ISIN = t.Cell(i, isinCol)
		}
		if purchCol >= 0 {
			d.PurchaseDate, d.HasPurchaseDate = coerce.Date(t.Cell(i, purchCol))
		}
		if transfCol >= 0 {
			d.TransferDate, d.HasTransferDate = coerce.Date(t.Cell(i, transfCol))
		}
		disposals = append(disposals, d)
	}
	return disposals, nil
}
