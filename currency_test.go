package negotiate

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════
// CurrencyTable
// ══════════════════════════════════════════════

func TestCurrency_ConvertIdentity(t *testing.T) {
	table := NewCurrencyTable()
	amount := decimal.NewFromFloat(1234.56)
	got := table.Convert(amount, "USD", "USD")
	if !got.Equal(amount) {
		t.Fatalf("same-currency convert changed amount: %s", got)
	}
}

func TestCurrency_ConvertKnownRate(t *testing.T) {
	table := NewCurrencyTable()
	got := table.Convert(decimal.NewFromInt(100), "USD", "INR")
	if !got.Equal(decimal.NewFromInt(8300)) {
		t.Fatalf("expected 8300 INR, got %s", got)
	}
}

func TestCurrency_RoundTrip(t *testing.T) {
	table := NewCurrencyTable()
	currencies := []string{"USD", "EUR", "GBP", "INR", "JPY", "BRL", "KRW", "CAD"}
	amount := decimal.NewFromFloat(1234.56)
	epsilon := decimal.NewFromFloat(1e-6)

	for _, from := range currencies {
		for _, to := range currencies {
			back := table.Convert(table.Convert(amount, from, to), to, from)
			if back.Sub(amount).Abs().GreaterThan(epsilon) {
				t.Errorf("%s->%s->%s: got %s, want %s", from, to, from, back, amount)
			}
		}
	}
}

func TestCurrency_UnknownCodeFallsBackToIdentity(t *testing.T) {
	table := NewCurrencyTable()
	amount := decimal.NewFromInt(500)
	if got := table.Convert(amount, "XYZ", "USD"); !got.Equal(amount) {
		t.Fatalf("unknown from-currency should pass through, got %s", got)
	}
	if table.Supported("XYZ") {
		t.Fatal("XYZ should not be supported")
	}
}

func TestCurrency_Format(t *testing.T) {
	table := NewCurrencyTable()
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.5, "USD", "$1,234.50"},
		{999999.99, "EUR", "€999,999.99"},
		{150000, "JPY", "¥150,000"},
		{1320000, "KRW", "₩1,320,000"},
		{50000, "INR", "₹50,000.00"},
		{250000, "INR", "₹2.5 lakh"},
		{12500000, "INR", "₹1.25 crore"},
		{10, "XYZ", "XYZ 10.00"},
	}
	for _, tt := range tests {
		got := table.Format(NewMoney(tt.amount, tt.currency))
		if got != tt.want {
			t.Errorf("Format(%v %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[string]string{
		"1":           "1",
		"999":         "999",
		"1000":        "1,000",
		"1234567.89":  "1,234,567.89",
		"-1234567.89": "-1,234,567.89",
	}
	for in, want := range tests {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}
