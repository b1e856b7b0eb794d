package negotiate

import (
	"strings"
	"testing"
)

// ══════════════════════════════════════════════
// ResponseComposer
// ══════════════════════════════════════════════

func composerSession(t *testing.T) (*ResponseComposer, *Session, *Proposal) {
	t.Helper()
	campaign := proposalCampaign(1000, 12)
	profile := proposalProfile()
	proposal, err := newTestGenerator().Propose(profile, campaign, 15)
	if err != nil {
		t.Fatal(err)
	}
	offer := proposal.Offer
	s := &Session{
		ID:                 "test-session",
		Campaign:           campaign,
		Counterparty:       profile,
		Status:             StatusInitiated,
		Round:              1,
		CurrentOffer:       &offer,
		Strategy:           proposal.Strategy,
		MarketTotal:        proposal.MarketTotal,
		FlexibilityPercent: 15,
	}
	return NewResponseComposer(NewCurrencyTable()), s, proposal
}

func TestGreeting(t *testing.T) {
	r, s, _ := composerSession(t)
	got := r.Greeting(s)
	for _, want := range []string{"Creator", "EcoTech", "$1,000.00", "12x Instagram Post", "30 days"} {
		if !strings.Contains(got, want) {
			t.Errorf("greeting missing %q:\n%s", want, got)
		}
	}
}

func TestMarketAnalysis(t *testing.T) {
	r, s, p := composerSession(t)
	got := r.MarketAnalysis(s, p)
	for _, want := range []string{"15,000", "5.0%", "Instagram", "$1,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("analysis missing %q:\n%s", want, got)
		}
	}
}

func TestCounterResponse(t *testing.T) {
	r, s, _ := composerSession(t)
	ourPrice := NewMoney(1000, "USD")

	got := r.CounterResponse(s, NewMoney(1050, "USD"), ourPrice, true)
	if !strings.Contains(got, "$1,050.00") || !strings.Contains(got, "working figure") {
		t.Errorf("accepted counter response:\n%s", got)
	}
	// The review echoes the pre-update offer, not the counter.
	if !strings.Contains(got, "Our current offer: $1,000.00") {
		t.Errorf("accepted counter response missing standing offer:\n%s", got)
	}

	// A low-ball below 70% of our price draws a mid-point suggestion:
	// (1000 + 500) / 2 = 750.
	got = r.CounterResponse(s, NewMoney(500, "USD"), ourPrice, false)
	if !strings.Contains(got, "significantly below market") || !strings.Contains(got, "$750.00") {
		t.Errorf("low-ball response missing mid-point:\n%s", got)
	}

	// Above ceiling, non-US/India location states the maximum.
	got = r.CounterResponse(s, NewMoney(2000, "USD"), ourPrice, false)
	if !strings.Contains(got, "$1,150.00") {
		t.Errorf("over-budget response missing ceiling:\n%s", got)
	}
}

func TestOverBudgetSuggestion_Regions(t *testing.T) {
	r, s, _ := composerSession(t)
	counter := NewMoney(2000, "USD")
	ourPrice := NewMoney(1000, "USD")

	s.Counterparty.Location = LocationUS
	if got := r.CounterResponse(s, counter, ourPrice, false); !strings.Contains(got, "stretch to $1,150.00") {
		t.Errorf("US suggestion:\n%s", got)
	}

	// India gets the budget/ceiling mid-point: (1000 + 1150) / 2 = 1075.
	s.Counterparty.Location = LocationIndia
	if got := r.CounterResponse(s, counter, ourPrice, false); !strings.Contains(got, "$1,075.00") {
		t.Errorf("India suggestion:\n%s", got)
	}
}

func TestPaymentTermsFor(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{LocationIndia, "milestone"},
		{LocationUS, "NET-30"},
		{LocationUK, "50% advance, 50% on completion"},
	}
	for _, tt := range tests {
		if got := paymentTermsFor(tt.loc); !strings.Contains(got, tt.want) {
			t.Errorf("paymentTermsFor(%s) = %q, want substring %q", tt.loc, got, tt.want)
		}
	}
}

func TestAlreadyClosed(t *testing.T) {
	r := NewResponseComposer(NewCurrencyTable())
	for _, status := range []Status{StatusAgreed, StatusRejected, StatusCancelled} {
		got := r.AlreadyClosed(status)
		if !strings.Contains(got, string(status)) {
			t.Errorf("AlreadyClosed(%s) = %q", status, got)
		}
	}
}

func TestGeneralReply_Sentiment(t *testing.T) {
	r := NewResponseComposer(NewCurrencyTable())
	tests := []struct {
		message string
		want    string
	}{
		{"I'm really excited about this!", "great to hear"},
		{"I'm a bit worried about the timeline.", "address all your concerns"},
		{"Can you explain the revision process?", "Happy to clarify"},
		{"Let me think about it.", "right partnership"},
	}
	for _, tt := range tests {
		if got := r.GeneralReply(tt.message); !strings.Contains(got, tt.want) {
			t.Errorf("GeneralReply(%q) = %q, want substring %q", tt.message, got, tt.want)
		}
	}
}

func TestReplyPrompt_CapsAtCeiling(t *testing.T) {
	r, s, _ := composerSession(t)
	got := r.ReplyPrompt(s, "can you do better?", "draft reply", 6)
	if !strings.Contains(got, "Never offer more than $1,150.00") {
		t.Errorf("prompt missing ceiling cap:\n%s", got)
	}
	if !strings.Contains(got, "draft reply") {
		t.Error("prompt missing deterministic draft")
	}
}
