package negotiate

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Currency Table — static exchange rates and display formatting
// ──────────────────────────────────────────────

// ReferenceCurrency is the currency all internal rate math is anchored to.
const ReferenceCurrency = "USD"

// CurrencyTable converts between supported currencies through a fixed
// units-per-USD table and formats amounts with currency-specific
// conventions. It is immutable after construction and safe for concurrent
// use.
type CurrencyTable struct {
	unitsPerUSD map[string]decimal.Decimal
	symbols     map[string]string
	zeroDecimal map[string]bool
}

// NewCurrencyTable builds the table with the built-in rate set.
func NewCurrencyTable() *CurrencyTable {
	return &CurrencyTable{
		unitsPerUSD: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.NewFromFloat(0.85),
			"GBP": decimal.NewFromFloat(0.79),
			"CAD": decimal.NewFromFloat(1.35),
			"AUD": decimal.NewFromFloat(1.52),
			"JPY": decimal.NewFromFloat(150.0),
			"INR": decimal.NewFromFloat(83.0),
			"BRL": decimal.NewFromFloat(5.0),
			"MXN": decimal.NewFromFloat(18.0),
			"CHF": decimal.NewFromFloat(0.91),
			"CNY": decimal.NewFromFloat(7.2),
			"KRW": decimal.NewFromFloat(1320.0),
		},
		symbols: map[string]string{
			"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥",
			"CAD": "C$", "AUD": "A$", "CHF": "CHF ", "CNY": "¥",
			"INR": "₹", "BRL": "R$", "MXN": "MX$", "KRW": "₩",
		},
		zeroDecimal: map[string]bool{"JPY": true, "KRW": true},
	}
}

// rate returns units-per-USD for code. Unknown codes get the reference
// identity rate so a bad code degrades to "no conversion" instead of
// failing a live negotiation turn.
func (t *CurrencyTable) rate(code string) decimal.Decimal {
	if r, ok := t.unitsPerUSD[strings.ToUpper(code)]; ok {
		return r
	}
	log.Printf("[CurrencyTable] unknown currency %q, using %s identity rate", code, ReferenceCurrency)
	return decimal.NewFromInt(1)
}

// Supported reports whether code has a real entry in the rate table.
func (t *CurrencyTable) Supported(code string) bool {
	_, ok := t.unitsPerUSD[strings.ToUpper(code)]
	return ok
}

// Convert re-denominates amount from one currency to another. Amounts pass
// through unchanged when from == to. Unknown codes are treated as the
// reference currency.
func (t *CurrencyTable) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount
	}
	usd := amount.Div(t.rate(from))
	return usd.Mul(t.rate(to))
}

// ConvertMoney converts m into the target currency.
func (t *CurrencyTable) ConvertMoney(m Money, to string) Money {
	return Money{Amount: t.Convert(m.Amount, m.Currency, to), Currency: strings.ToUpper(to)}
}

// Format renders m for display: currency symbol, thousands grouping, and
// the currency's decimal convention. INR additionally abbreviates large
// magnitudes in lakh/crore units, matching how counterparties in that
// market quote prices.
func (t *CurrencyTable) Format(m Money) string {
	code := strings.ToUpper(m.Currency)
	symbol, ok := t.symbols[code]
	if !ok {
		symbol = code + " "
	}

	if code == "INR" {
		if s, ok := formatIndianAbbrev(m.Amount); ok {
			return symbol + s
		}
	}

	places := int32(2)
	if t.zeroDecimal[code] {
		places = 0
	}
	return symbol + groupThousands(m.Amount.Round(places).StringFixed(places))
}

// formatIndianAbbrev renders amounts of one lakh and above in lakh/crore
// units. Returns ok=false below the lakh threshold.
func formatIndianAbbrev(amount decimal.Decimal) (string, bool) {
	crore := decimal.NewFromInt(10_000_000)
	lakh := decimal.NewFromInt(100_000)
	switch {
	case amount.GreaterThanOrEqual(crore):
		return fmt.Sprintf("%s crore", amount.Div(crore).Round(2).String()), true
	case amount.GreaterThanOrEqual(lakh):
		return fmt.Sprintf("%s lakh", amount.Div(lakh).Round(2).String()), true
	}
	return "", false
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string ("1234567.89" -> "1,234,567.89").
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func logMixedCurrency(op, a, b string) {
	log.Printf("[Money] %s across currencies %s/%s without conversion", op, a, b)
}
