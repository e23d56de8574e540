package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/statement-reconciler/internal/capitalgains"
)

// Sheet names follow the layout the tax preparers expect.
const (
	validationSheet = "Validation"
	equitySheet     = "Gains on STT paid shares"
	nonEquitySheet  = "Non-Equity & Debt Funds"
	vdaSheet        = "Virtual Digital Assets"
)

// WriteCapitalGains renders a computed capital-gains report: a
// validation sheet putting extracted and calculated figures side by
// side, then one sheet per tax treatment. Category sheets are only
// created when they have rows. disposals and comps are parallel slices.
func WriteCapitalGains(path string, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	if len(disposals) != len(comps) {
		return fmt.Errorf("report.WriteCapitalGains: %d disposals but %d computations", len(disposals), len(comps))
	}
	if len(disposals) == 0 {
		return fmt.Errorf("report.WriteCapitalGains: no disposals to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", validationSheet); err != nil {
		return fmt.Errorf("report.WriteCapitalGains: rename sheet: %w", err)
	}
	if err := writeValidationSheet(f, disposals, comps); err != nil {
		return err
	}
	if err := writeEquitySheet(f, disposals, comps); err != nil {
		return err
	}
	if err := writeNonEquitySheet(f, disposals, comps); err != nil {
		return err
	}
	if err := writeVDASheet(f, disposals, comps); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report.WriteCapitalGains: save %q: %w", path, err)
	}
	return nil
}

func writeValidationSheet(f *excelize.File, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	header := []interface{}{
		"Particulars", "Extracted_Gain_Loss", "Calculated_Gain_Loss",
		"Extracted_Holding_Days", "Calculated_Holding_Days",
		"Date_of_Purchase", "Date_of_Transfer",
	}
	if err := setRow(f, validationSheet, 1, header); err != nil {
		return err
	}

	for i, d := range disposals {
		c := comps[i]
		var calcDays interface{} = c.HoldingDays
		if !c.DatesValid {
			calcDays = "Date Error"
		}
		row := []interface{}{
			d.Particulars,
			nullableCell(d.ExtractedGainLoss),
			amountCell(c.GainLoss),
			nullableCell(d.ExtractedHoldingDays),
			calcDays,
			formatDate(d.PurchaseDate),
			formatDate(d.TransferDate),
		}
		if err := setRow(f, validationSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeEquitySheet(f *excelize.File, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	header := []interface{}{
		"Particulars", "Quantity", "Date_of_Purchase", "Date_of_Transfer",
		"Sale_Consideration", "Selling_Expenses", "Net_Sale_Consideration",
		"Actual_Cost_of_Acquisition", "Cost of Acquisition deductible",
		"Short term gain u/s 111A", "LTCG u/s 112A",
		"Loss ignored u/s 94(7)/(8)", "ISIN_Code",
	}

	written := 0
	for i, d := range disposals {
		c := comps[i]
		if c.Category != capitalgains.EquityMF {
			continue
		}
		if written == 0 {
			if _, err := f.NewSheet(equitySheet); err != nil {
				return fmt.Errorf("report: create %q: %w", equitySheet, err)
			}
			if err := setRow(f, equitySheet, 1, header); err != nil {
				return err
			}
		}
		written++
		row := []interface{}{
			d.Particulars,
			amountCell(d.Quantity),
			formatDate(d.PurchaseDate),
			formatDate(d.TransferDate),
			amountCell(d.SaleConsideration),
			amountCell(d.SellingExpenses),
			amountCell(d.NetSale),
			amountCell(d.ActualCost),
			amountCell(c.DeductibleCost),
			amountCell(c.ShortTermGain),
			amountCell(c.LongTermGain),
			"", // loss ignored u/s 94(7)/(8): filled in by the preparer
			d.ISIN,
		}
		if err := setRow(f, equitySheet, written+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeNonEquitySheet(f *excelize.File, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	header := []interface{}{
		"Particulars", "Quantity", "Date_of_Purchase", "Date_of_Transfer",
		"Sale_Consideration", "Indexed_Cost", "Short term gain", "LTCG",
		"Loss ignored u/s 94(7)/(8)", "Taxation_Type",
	}

	written := 0
	for i, d := range disposals {
		c := comps[i]
		switch c.Category {
		case capitalgains.DebtMFIndexed, capitalgains.DebtMFSlabRate, capitalgains.OtherNonEquity:
		default:
			continue
		}
		if written == 0 {
			if _, err := f.NewSheet(nonEquitySheet); err != nil {
				return fmt.Errorf("report: create %q: %w", nonEquitySheet, err)
			}
			if err := setRow(f, nonEquitySheet, 1, header); err != nil {
				return err
			}
		}
		written++
		row := []interface{}{
			d.Particulars,
			amountCell(d.Quantity),
			formatDate(d.PurchaseDate),
			formatDate(d.TransferDate),
			amountCell(d.SaleConsideration),
			amountCell(d.IndexedCost),
			amountCell(c.ShortTermGain),
			amountCell(c.LongTermGain),
			"",
			c.Category.TaxationLabel(),
		}
		if err := setRow(f, nonEquitySheet, written+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeVDASheet(f *excelize.File, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	header := []interface{}{
		"Particulars", "Date_of_Purchase", "Date_of_Transfer",
		"Sale_Consideration", "Actual_Cost_of_Acquisition",
		"Income (loss ignored)", "Head of Income",
	}

	written := 0
	for i, d := range disposals {
		c := comps[i]
		if c.Category != capitalgains.VDA {
			continue
		}
		if written == 0 {
			if _, err := f.NewSheet(vdaSheet); err != nil {
				return fmt.Errorf("report: create %q: %w", vdaSheet, err)
			}
			if err := setRow(f, vdaSheet, 1, header); err != nil {
				return err
			}
		}
		written++
		row := []interface{}{
			d.Particulars,
			formatDate(d.PurchaseDate),
			formatDate(d.TransferDate),
			amountCell(d.SaleConsideration),
			amountCell(d.ActualCost),
			amountCell(c.VDAIncome),
			"Capital Gains u/s 115BBH",
		}
		if err := setRow(f, vdaSheet, written+1, row); err != nil {
			return err
		}
	}
	return nil
}
