package capitalgains

import (
	"strings"

	"cloud.google.com/go/civil"
)

// equityKeywords mark a scheme name as an equity fund. Substring match,
// case-insensitive, first rule checked.
var equityKeywords = []string{
	"equity", "cap", "contra", "value", "thematic", "dividend", "focused", "opportunities",
}

// debtIndexationCutoff splits debt funds into indexed vs slab-rate
// treatment by purchase date (Finance Act 2023).
var debtIndexationCutoff = civil.Date{Year: 2023, Month: 4, Day: 1}

// Classify maps a disposal to exactly one category. First match wins:
//
//  1. Scheme name contains an equity keyword -> EquityMF.
//  2. Instrument flagged as crypto/virtual asset -> VDA.
//  3. Instrument flagged as gold/international/other non-equity -> OtherNonEquity.
//  4. Otherwise it is a debt fund, split on the purchase date against
//     the 2023-04-01 indexation cutoff.
//
// The flags in rules 2 and 3 come from the Transaction_Type the model
// extracted; the keyword rule deliberately overrides them, since scheme
// names are more reliable than the model's own classification. A debt
// fund with no readable purchase date gets slab-rate treatment: without
// a date there is no basis for claiming indexation.
func Classify(d Disposal) Category {
	name := strings.ToLower(d.Particulars)
	for _, kw := range equityKeywords {
		if strings.Contains(name, kw) {
			return EquityMF
		}
	}

	switch strings.ToUpper(strings.TrimSpace(d.ExtractedType)) {
	case "VDA":
		return VDA
	case "OTHER_NON_EQUITY":
		return OtherNonEquity
	}

	if d.HasPurchaseDate && d.PurchaseDate.Before(debtIndexationCutoff) {
		return DebtMFIndexed
	}
	return DebtMFSlabRate
}
