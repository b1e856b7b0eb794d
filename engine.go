package negotiate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Negotiation State Machine — session orchestration
// ──────────────────────────────────────────────
//
// Status flow:
//
//	INITIATED → IN_PROGRESS → COUNTER_OFFER ⇄ IN_PROGRESS → {AGREED | REJECTED}
//
// CANCELLED is reachable from any non-terminal state via Cancel. AGREED,
// REJECTED and CANCELLED are terminal; nothing leaves them.
//
// Usage:
//
//	engine := negotiate.NewEngine(negotiate.DefaultConfig(), negotiate.NewInMemorySessionStore(), myGenerator)
//	started, err := engine.Start(ctx, campaign, profile)
//	turn, err := engine.Continue(ctx, started.SessionID, "Can we do $1,200?")

// Engine owns negotiation sessions and advances them one turn at a time.
// It holds no per-session locks; see SessionStore for the concurrency
// contract.
type Engine struct {
	config     EngineConfig
	store      SessionStore
	currencies *CurrencyTable
	rates      *RateCalculator
	proposals  *ProposalGenerator
	extractor  *OfferExtractor
	classifier *IntentClassifier
	composer   *ResponseComposer
	gen        *GenerationClient
	metrics    *EngineMetrics
	now        func() time.Time
}

// NewEngine wires a complete engine. gen may be nil; every conversational
// capability then falls back to deterministic templates.
func NewEngine(config EngineConfig, store SessionStore, gen TextGenerator) *Engine {
	config = config.withDefaults()
	metrics := &EngineMetrics{}
	currencies := NewCurrencyTable()
	rates := NewRateCalculator()
	extractor := NewOfferExtractor()
	client := NewGenerationClient(gen, config.GenerationTimeout, config.GenerationRetries, metrics)
	return &Engine{
		config:     config,
		store:      store,
		currencies: currencies,
		rates:      rates,
		proposals:  NewProposalGenerator(rates, currencies),
		extractor:  extractor,
		classifier: NewIntentClassifier(extractor, client),
		composer:   NewResponseComposer(currencies),
		gen:        client,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Metrics exposes the engine's activity counters.
func (e *Engine) Metrics() *EngineMetrics { return e.metrics }

// StartResult is the outcome of opening a negotiation.
type StartResult struct {
	SessionID      string   `json:"session_id"`
	OpeningMessage string   `json:"opening_message"`
	InitialOffer   Offer    `json:"initial_offer"`
	Strategy       Strategy `json:"strategy"`
}

// Start validates the campaign, seeds the opening offer via the proposal
// generator, and persists a new INITIATED session. The two creation-time
// errors (invalid budget, empty requirements) are the only failures the
// engine ever surfaces to callers.
func (e *Engine) Start(ctx context.Context, campaign CampaignSpec, profile CounterpartyProfile) (*StartResult, error) {
	proposal, err := e.proposals.Propose(profile, campaign, e.config.FlexibilityPercent)
	if err != nil {
		return nil, err
	}

	now := e.now()
	offer := proposal.Offer
	session := &Session{
		ID:                 uuid.NewString(),
		Campaign:           campaign,
		Counterparty:       profile,
		Status:             StatusInitiated,
		Round:              1,
		CurrentOffer:       &offer,
		Strategy:           proposal.Strategy,
		MarketTotal:        proposal.MarketTotal,
		FlexibilityPercent: e.config.FlexibilityPercent,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	opening := fmt.Sprintf("%s\n\n---\n\n%s\n\n---\n\n%s",
		e.composer.Greeting(session),
		e.composer.MarketAnalysis(session, proposal),
		e.composer.ProposalMessage(session, offer),
	)
	session.AppendMessage(RoleAssistant, opening, now)

	if err := e.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	e.metrics.SessionsStarted.Inc()
	log.Printf("[Engine] session %s started | strategy=%s total=%s", session.ID, proposal.Strategy, offer.TotalPrice)

	return &StartResult{
		SessionID:      session.ID,
		OpeningMessage: opening,
		InitialOffer:   offer,
		Strategy:       proposal.Strategy,
	}, nil
}

// TurnResult is the outcome of one Continue call.
type TurnResult struct {
	Response     string `json:"response"`
	Status       Status `json:"status"`
	CurrentOffer *Offer `json:"current_offer,omitempty"`
	Round        int    `json:"round"`
}

// Continue advances the negotiation by one counterparty message.
//
// The message is appended to history, scanned for a price, and classified;
// the session transitions accordingly. Counter-offers above the ceiling are
// never silently accepted — they trigger a counter-proposal instead. A turn
// against a terminal session returns a fixed "already closed" reply without
// mutating anything.
func (e *Engine) Continue(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return &TurnResult{
			Response:     e.composer.AlreadyClosed(session.Status),
			Status:       session.Status,
			CurrentOffer: session.CurrentOffer,
			Round:        session.Round,
		}, nil
	}

	now := e.now()
	session.AppendMessage(RoleUser, message, now)
	e.metrics.TurnsProcessed.Inc()

	extracted, hasPrice := e.extractor.Extract(message, session.Counterparty.LocalCurrency())
	intent := e.classifier.Classify(ctx, ClassifyInput{
		Message:       message,
		MaxBudget:     session.MaxBudget(),
		LocalCurrency: session.Counterparty.LocalCurrency(),
		History:       session.RecentMessages(e.config.HistoryWindow),
	})

	var response string
	switch intent {
	case IntentAgree:
		response = e.applyAgreement(session, extracted, hasPrice)
	case IntentReject:
		session.Status = StatusRejected
		e.metrics.RejectionsReceived.Inc()
		response = e.composer.Rejection(session)
	default:
		response = e.applyContinue(ctx, session, message, extracted, hasPrice)
	}

	session.Round++
	session.AppendMessage(RoleAssistant, response, e.now())
	if err := e.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	log.Printf("[Engine] session %s turn %d | intent=%s status=%s", session.ID, session.Round-1, intent, session.Status)

	return &TurnResult{
		Response:     response,
		Status:       session.Status,
		CurrentOffer: session.CurrentOffer,
		Round:        session.Round,
	}, nil
}

// applyAgreement locks terms. When the accepting message itself quoted a
// plausible amount below our current total, the agreement locks at that
// lower figure with the breakdown scaled to match.
func (e *Engine) applyAgreement(session *Session, extracted ExtractedAmount, hasPrice bool) string {
	terms := *session.CurrentOffer
	if hasPrice {
		quoted := e.currencies.ConvertMoney(extracted.Money, terms.TotalPrice.Currency)
		quoted.Amount = quoted.Amount.Round(2)
		if quoted.IsPositive() && quoted.Amount.LessThan(terms.TotalPrice.Amount) {
			terms = terms.ScaledTo(quoted)
		}
	}
	session.Status = StatusAgreed
	session.AgreedTerms = &terms
	session.CurrentOffer = &terms
	e.metrics.AgreementsReached.Inc()
	return e.composer.Agreement(session, terms)
}

// applyContinue handles the CONTINUE intent: counter-offer bookkeeping,
// status transition, and reply composition.
func (e *Engine) applyContinue(ctx context.Context, session *Session, message string, extracted ExtractedAmount, hasPrice bool) string {
	var draft string
	switch {
	case hasPrice:
		session.Status = StatusCounterOffer
		session.CounterOffers = append(session.CounterOffers, extracted.Money)
		e.metrics.CounterOffersSeen.Inc()

		ourPrice := session.Campaign.Budget
		if session.CurrentOffer != nil {
			ourPrice = session.CurrentOffer.TotalPrice
		}
		counter := e.currencies.ConvertMoney(extracted.Money, session.Campaign.Budget.Currency)
		counter.Amount = counter.Amount.Round(2)
		// Lowballs get a middle-ground push-back rather than becoming the
		// working figure; everything else under the ceiling is accepted.
		lowball := counter.Amount.LessThan(ourPrice.Amount.Mul(lowballThreshold))
		accepted := !lowball && counter.Amount.LessThanOrEqual(session.MaxBudget().Amount)
		if accepted && session.CurrentOffer != nil {
			updated := session.CurrentOffer.ScaledTo(counter)
			session.CurrentOffer = &updated
		}
		draft = e.composer.CounterResponse(session, counter, ourPrice, accepted)
	case mentionsPricing(message):
		session.Status = StatusInProgress
		draft = e.composer.NoPriceReply()
	default:
		session.Status = StatusInProgress
		draft = e.composer.GeneralReply(message)
	}

	if !e.config.UseGeneratedReplies {
		return draft
	}
	text, err := e.gen.Generate(ctx, e.composer.ReplyPrompt(session, message, draft, e.config.HistoryWindow))
	if err != nil {
		return draft
	}
	return text
}

// pricingWords flags turns that talk rates without quoting a number; those
// get a direct ask for a figure instead of a general reply.
var pricingWords = []string{
	"price", "pricing", "rate", "charge", "budget", "fee", "compensation", "counter",
}

func mentionsPricing(message string) bool {
	return containsAny(strings.ToLower(message), pricingWords)
}

// Cancel terminates a non-terminal session from outside the conversation.
// Cancelling an already-terminal session is a no-op.
func (e *Engine) Cancel(ctx context.Context, sessionID string) error {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Terminal() {
		return nil
	}
	session.Status = StatusCancelled
	session.AppendMessage(RoleAssistant, e.composer.Cancelled(session), e.now())
	e.metrics.SessionsCancelled.Inc()
	return e.store.Put(ctx, session)
}

// SessionSummary is the caller-facing view of a session's progress.
type SessionSummary struct {
	SessionID                string  `json:"session_id"`
	Status                   Status  `json:"status"`
	Round                    int     `json:"round"`
	CurrentOffer             *Offer  `json:"current_offer,omitempty"`
	AgreedTerms              *Offer  `json:"agreed_terms,omitempty"`
	BudgetUtilizationPercent float64 `json:"budget_utilization_percent"`
	MessageCount             int     `json:"message_count"`
}

// Summary reports the session's status, offer, and budget utilization.
func (e *Engine) Summary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	utilization := 0.0
	if session.CurrentOffer != nil && session.Campaign.Budget.IsPositive() {
		ratio, _ := session.CurrentOffer.TotalPrice.Amount.
			Div(session.Campaign.Budget.Amount).Float64()
		utilization = ratio * 100
	}
	return &SessionSummary{
		SessionID:                session.ID,
		Status:                   session.Status,
		Round:                    session.Round,
		CurrentOffer:             session.CurrentOffer,
		AgreedTerms:              session.AgreedTerms,
		BudgetUtilizationPercent: utilization,
		MessageCount:             len(session.Messages),
	}, nil
}

// ContractTerms exposes the locked agreement for a downstream contract
// collaborator, or ErrSessionNotFound / nil terms when unavailable.
func (e *Engine) ContractTerms(ctx context.Context, sessionID string) (*ContractTerms, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.ContractTerms(), nil
}
