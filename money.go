package negotiate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount paired with an ISO 4217 currency code.
// All pricing arithmetic in the SDK goes through decimal.Decimal so that
// per-item breakdowns sum exactly to their totals.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney creates a Money from a float amount. Convenience for callers;
// internal code prefers building from decimal directly.
func NewMoney(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

// Mul returns m scaled by factor, rounded to 2 decimal places.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor).Round(2), Currency: m.Currency}
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency {
		// Mixed-currency addition is a programming error upstream; keep the
		// receiver's currency and log rather than panic mid-negotiation.
		logMixedCurrency("Add", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	if m.Currency != other.Currency {
		logMixedCurrency("Sub", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

// Cmp compares amounts: -1 if m < other, 0 if equal, +1 if m > other.
// Currencies are not converted here; compare like with like.
func (m Money) Cmp(other Money) int {
	return m.Amount.Cmp(other.Amount)
}

// String renders the raw amount with its code, e.g. "1150 USD".
// For user-facing text use CurrencyTable.Format instead.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}
