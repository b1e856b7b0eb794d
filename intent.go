package negotiate

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Intent Classifier — accept / reject / keep negotiating
// ──────────────────────────────────────────────

// Intent is the classified disposition of a counterparty message.
type Intent string

const (
	IntentContinue Intent = "CONTINUE"
	IntentAgree    Intent = "AGREE"
	IntentReject   Intent = "REJECT"
)

// Phrase heuristics run before any generation call. Lists come first in
// classification order, so additions here change behavior for everyone.
var (
	agreementPhrases = []string{
		"i agree", "i accept", "let's close", "let's finalize",
		"deal!", "it's a deal", "ready to sign", "let's create contract",
		"let's make a contract", "finalize this", "let's move forward",
		"let's proceed", "sounds good, let's",
	}
	rejectionPhrases = []string{
		"i have to pass", "not interested", "can't do this deal",
		"won't work for me", "i decline", "i'm going to decline",
		"not feasible for me",
	}
	positiveWords = []string{
		"deal", "accept", "agreed", "perfect", "good", "works", "fine",
	}
	inflexibleWords = []string{
		"minimum", "non-negotiable", "final offer", "won't go lower",
		"lowest i can do", "that's my rate", "that's final",
	}
)

// rejectOverageFactor: a counter more than 40% above the max allowable
// budget, stated inflexibly, ends the negotiation.
var rejectOverageFactor = decimal.NewFromFloat(1.4)

// ClassifyInput carries the per-message context the classifier needs.
type ClassifyInput struct {
	Message string
	// MaxBudget is the session ceiling (budget × (1+flexibility)).
	// Quoted magnitudes are compared against it as-is; FX normalization
	// happens later, at offer-update time.
	MaxBudget Money
	// LocalCurrency denominates bare numerals in the message.
	LocalCurrency string
	// History is recent transcript context for the generation prompt.
	History []Message
}

// IntentClassifier decides whether a message signals acceptance, rejection,
// or continuation. Deterministic heuristics run first; the injected text
// generator only breaks ties, and its failure falls back to CONTINUE. The
// classifier is deliberately biased against false terminal classifications.
type IntentClassifier struct {
	extractor *OfferExtractor
	gen       *GenerationClient
}

// NewIntentClassifier builds a classifier. gen may wrap a nil generator;
// heuristics then decide everything.
func NewIntentClassifier(extractor *OfferExtractor, gen *GenerationClient) *IntentClassifier {
	return &IntentClassifier{extractor: extractor, gen: gen}
}

// Classify runs the ordered rule list; first match wins.
func (c *IntentClassifier) Classify(ctx context.Context, in ClassifyInput) Intent {
	lower := strings.ToLower(in.Message)

	// 1. Unambiguous acceptance.
	if containsAny(lower, agreementPhrases) {
		return IntentAgree
	}
	// 2. Unambiguous termination.
	if containsAny(lower, rejectionPhrases) {
		return IntentReject
	}

	extracted, hasPrice := c.extractor.Extract(in.Message, in.LocalCurrency)

	// 3. Affordable price plus positive sentiment reads as acceptance.
	if hasPrice && extracted.Money.Amount.LessThanOrEqual(in.MaxBudget.Amount) {
		if containsAny(lower, positiveWords) {
			return IntentAgree
		}
	}
	// 4. A far-over-ceiling price stated inflexibly ends the negotiation.
	if hasPrice && extracted.Money.Amount.GreaterThan(in.MaxBudget.Amount.Mul(rejectOverageFactor)) {
		if containsAny(lower, inflexibleWords) {
			return IntentReject
		}
	}

	// 5. Generation tie-break; heuristic default on failure.
	if intent, ok := c.classifyGenerated(ctx, in); ok {
		return intent
	}
	return IntentContinue
}

func (c *IntentClassifier) classifyGenerated(ctx context.Context, in ClassifyInput) (Intent, bool) {
	if c.gen == nil {
		return IntentContinue, false
	}
	text, err := c.gen.Generate(ctx, intentPrompt(in))
	if err != nil {
		return IntentContinue, false
	}
	switch strings.ToUpper(strings.Trim(firstWord(text), ".,!:;")) {
	case string(IntentAgree):
		return IntentAgree, true
	case string(IntentReject):
		return IntentReject, true
	case string(IntentContinue):
		return IntentContinue, true
	}
	return IntentContinue, false
}

func intentPrompt(in ClassifyInput) string {
	var b strings.Builder
	b.WriteString("You are classifying a counterparty message in a brand-creator price negotiation.\n\n")
	if len(in.History) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, m := range in.History {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Counterparty's latest message: %q\n\n", in.Message)
	b.WriteString(`Answer AGREE if they want to finalize the deal (e.g. "I accept your offer", "let's proceed", "ready to sign").
Answer REJECT only if they clearly want to end negotiations completely (e.g. "I have to pass", "this won't work for me").
Answer CONTINUE for ongoing negotiation: discussing terms, prices, deliverables, concerns, questions.

Answer with exactly one word: AGREE, REJECT, or CONTINUE.`)
	return b.String()
}

func containsAny(haystack string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
