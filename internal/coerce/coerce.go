// Package coerce converts textual cells from a transcribed table into
// numeric and date values. Cells are never trusted: anything that fails
// to convert becomes an explicit missing value rather than an error, so
// a single garbage cell cannot abort a document.
package coerce

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// currencyTokens are stripped from amount cells before parsing. The
// model is instructed to clean amounts, but does not always comply.
var currencyTokens = []string{"₹", "Rs.", "Rs", "INR", "$", "£", "€", ","}

// dateLayouts are tried in order. Source documents use day-first
// conventions; ISO is accepted last since the model is prompted for it
// in some flows.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"02.01.2006",
	"2006-01-02",
}

// Amount parses an amount cell. Missing or unparseable cells coerce to
// zero: an absent withdrawal or deposit means "no transaction".
func Amount(s string) decimal.Decimal {
	if d, ok := parseDecimal(s); ok {
		return d
	}
	return decimal.Zero
}

// NullableAmount parses a balance or cost cell. Missing or unparseable
// cells coerce to an invalid NullDecimal, never to zero: a missing
// balance must block reconciliation, not falsely validate it.
func NullableAmount(s string) decimal.NullDecimal {
	if d, ok := parseDecimal(s); ok {
		return decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return decimal.NullDecimal{}
}

// Date parses a date cell with day-first convention. The second return
// is false when the cell is empty or matches no known layout.
func Date(s string) (civil.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), true
		}
	}
	return civil.Date{}, false
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	// Accounting-style negatives: (1,234.56)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}

	// Trailing credit/debit markers: "1234.56 Cr", "500Dr".
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"CR", "DR"} {
		if strings.HasSuffix(upper, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
