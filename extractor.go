package negotiate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Offer Extractor — monetary mentions in free text
// ──────────────────────────────────────────────

// Plausibility window for extracted amounts, in the quoted currency's own
// units. Numerals outside the window are treated as non-monetary noise
// (dates, follower counts, phone fragments).
var (
	minPlausibleAmount = decimal.NewFromInt(1_000)
	maxPlausibleAmount = decimal.NewFromInt(10_000_000)
)

// ExtractedAmount is one monetary mention found in a message.
type ExtractedAmount struct {
	Money Money
	// Explicit is true when the currency came from a symbol or code in the
	// text rather than the counterparty-local default.
	Explicit bool
}

// OfferExtractor scans free text for prices using an ordered rule list:
//
//  1. currency-symbol-prefixed numerals ("₹15,000", "$1,200.50")
//  2. numerals followed by a currency code or word ("1500 USD", "5000 rupees")
//  3. bare numerals with a magnitude word ("50k", "5 lakh")
//
// Bare numerals are quoted in the counterparty's local currency unless a
// symbol or code says otherwise. Finding nothing is a normal outcome, not
// an error.
type OfferExtractor struct {
	symbolRule    *regexp.Regexp
	codeRule      *regexp.Regexp
	magnitudeRule *regexp.Regexp
}

var currencySymbols = map[string]string{
	"₹": "INR", "$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
	"C$": "CAD", "A$": "AUD", "R$": "BRL", "MX$": "MXN", "₩": "KRW",
}

var currencyWords = map[string]string{
	"usd": "USD", "dollar": "USD", "dollars": "USD",
	"eur": "EUR", "euro": "EUR", "euros": "EUR",
	"gbp": "GBP", "pound": "GBP", "pounds": "GBP",
	"inr": "INR", "rs": "INR", "rs.": "INR", "rupee": "INR", "rupees": "INR",
	"jpy": "JPY", "yen": "JPY",
	"cad": "CAD", "aud": "AUD", "brl": "BRL", "mxn": "MXN",
	"chf": "CHF", "cny": "CNY", "krw": "KRW",
}

// NewOfferExtractor compiles the rule set.
func NewOfferExtractor() *OfferExtractor {
	return &OfferExtractor{
		// Multi-char symbols before single-char so "C$" wins over "$".
		symbolRule:    regexp.MustCompile(`(C\$|A\$|R\$|MX\$|[₹$€£¥₩])\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
		codeRule:      regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(usd|eur|gbp|inr|jpy|cad|aud|brl|mxn|chf|cny|krw|rs\.?|rupees?|dollars?|euros?|pounds?|yen)\b`),
		magnitudeRule: regexp.MustCompile(`(?i)\b([0-9]+(?:\.[0-9]+)?)\s*(thousand|lakh|lac|k)\b`),
	}
}

// Extract returns the first plausible monetary mention in text, or ok=false
// when none is found. localCurrency denominates bare numerals; identical
// input always yields the identical result.
func (e *OfferExtractor) Extract(text, localCurrency string) (ExtractedAmount, bool) {
	all := e.scan(text, localCurrency, true)
	if len(all) == 0 {
		return ExtractedAmount{}, false
	}
	return all[0], true
}

// ExtractAll returns every plausible monetary mention, in rule-priority
// order then text order. Used for market-data aggregation.
func (e *OfferExtractor) ExtractAll(text, localCurrency string) []ExtractedAmount {
	return e.scan(text, localCurrency, false)
}

func (e *OfferExtractor) scan(text, localCurrency string, firstOnly bool) []ExtractedAmount {
	var out []ExtractedAmount
	add := func(amount decimal.Decimal, currency string, explicit bool) bool {
		if amount.LessThan(minPlausibleAmount) || amount.GreaterThan(maxPlausibleAmount) {
			return false
		}
		out = append(out, ExtractedAmount{
			Money:    Money{Amount: amount, Currency: currency},
			Explicit: explicit,
		})
		return firstOnly
	}

	for _, m := range e.symbolRule.FindAllStringSubmatch(text, -1) {
		code := currencySymbols[m[1]]
		if amt, ok := parseNumeral(m[2]); ok && add(amt, code, true) {
			return out
		}
	}
	for _, m := range e.codeRule.FindAllStringSubmatch(text, -1) {
		code, ok := currencyWords[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		if amt, ok := parseNumeral(m[1]); ok && add(amt, code, true) {
			return out
		}
	}
	for _, m := range e.magnitudeRule.FindAllStringSubmatch(text, -1) {
		amt, ok := parseNumeral(m[1])
		if !ok {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "thousand", "k":
			amt = amt.Mul(decimal.NewFromInt(1_000))
		case "lakh", "lac":
			amt = amt.Mul(decimal.NewFromInt(100_000))
		}
		if add(amt, strings.ToUpper(localCurrency), false) {
			return out
		}
	}
	return out
}

func parseNumeral(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
