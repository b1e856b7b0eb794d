package negotiate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Response Composer — deterministic conversational templates
// ──────────────────────────────────────────────

// ResponseComposer renders every message the engine can emit without a text
// generator. The generator, when available, gets these renderings as
// grounding and may replace the CONTINUE-turn replies; terminal and opening
// messages always come from here so their content is exact.
type ResponseComposer struct {
	currencies *CurrencyTable
}

// NewResponseComposer creates a composer bound to the currency table.
func NewResponseComposer(currencies *CurrencyTable) *ResponseComposer {
	return &ResponseComposer{currencies: currencies}
}

// Greeting opens the conversation with the campaign pitch.
func (r *ResponseComposer) Greeting(s *Session) string {
	var summary []string
	for _, item := range sortedItems(requirementsAsItems(s.Campaign.Requirements)) {
		summary = append(summary, fmt.Sprintf("%dx %s", item.Quantity, item.ContentType.DisplayName()))
	}
	var platforms []string
	for _, p := range s.Campaign.TargetPlatforms {
		platforms = append(platforms, p.DisplayName())
	}
	return fmt.Sprintf(`Hello %s! I'm representing %s and I'm excited to discuss a potential collaboration with you.

Campaign goals: %s
Our budget: %s
Target platforms: %s
Content requirements: %s
Campaign duration: %d days

Based on our market research and your profile, we'd like to propose a collaboration that's mutually beneficial. Are you interested in learning more?`,
		s.Counterparty.Name,
		s.Campaign.BrandName,
		strings.Join(s.Campaign.Goals, ", "),
		r.currencies.Format(s.Campaign.Budget),
		strings.Join(platforms, ", "),
		strings.Join(summary, ", "),
		s.Campaign.DurationDays,
	)
}

// MarketAnalysis explains the rate research behind the opening offer.
func (r *ResponseComposer) MarketAnalysis(s *Session, p *Proposal) string {
	var lines []string
	for _, item := range sortedItems(p.Offer.Items) {
		lines = append(lines, fmt.Sprintf("- %s: %s x %d = %s",
			item.ContentType.DisplayName(),
			r.currencies.Format(item.UnitRate),
			item.Quantity,
			r.currencies.Format(item.Subtotal),
		))
	}
	return fmt.Sprintf(`We've analyzed current market rates for creators with your profile:

Followers: %s
Engagement rate: %.1f%%
Active platforms: %s

Proposed rates:
%s

Our total offer: %s

This reflects fair market pricing aligned with our campaign budget. What are your thoughts?`,
		groupThousands(fmt.Sprintf("%d", s.Counterparty.Followers)),
		s.Counterparty.EngagementRate*100,
		platformList(s.Counterparty.Platforms),
		strings.Join(lines, "\n"),
		r.currencies.Format(p.Offer.TotalPrice),
	)
}

// ProposalMessage states the formal terms.
func (r *ResponseComposer) ProposalMessage(s *Session, offer Offer) string {
	var lines []string
	for _, item := range sortedItems(offer.Items) {
		lines = append(lines, fmt.Sprintf("- %s x %d: %s",
			item.ContentType.DisplayName(), item.Quantity, r.currencies.Format(item.Subtotal)))
	}
	return fmt.Sprintf(`Here's our formal collaboration proposal:

%s

Total compensation: %s
Payment terms: %s
Revisions: %d included per deliverable
Timeline: %d days
Usage rights: %s

Would you like to move forward with these terms, or are there aspects you'd like to discuss?`,
		strings.Join(lines, "\n"),
		r.currencies.Format(offer.TotalPrice),
		offer.PaymentTerms,
		offer.RevisionsIncluded,
		offer.TimelineDays,
		offer.UsageRights,
	)
}

// lowballThreshold: counters below this fraction of the standing offer are
// significantly below market and get a middle-ground push-back instead of
// acceptance.
var lowballThreshold = decimal.NewFromFloat(0.7)

// CounterResponse reviews a counter-offer. ourPrice is the offer total as it
// stood before this turn updated anything; accepted reports whether the
// engine took the counter as the new current offer.
func (r *ResponseComposer) CounterResponse(s *Session, counter, ourPrice Money, accepted bool) string {
	maxBudget := s.MaxBudget()

	var analysis, suggestion string
	switch {
	case counter.Amount.LessThan(ourPrice.Amount.Mul(lowballThreshold)):
		analysis = "That price point is significantly below market rates for your audience quality and the deliverables requested."
		mid := ourPrice.Amount.Add(counter.Amount).Div(decimal.NewFromInt(2)).Round(2)
		suggestion = fmt.Sprintf("Would you be open to a middle ground around %s? We could also adjust deliverables to fit.",
			r.currencies.Format(Money{Amount: mid, Currency: ourPrice.Currency}))
	case accepted:
		analysis = fmt.Sprintf("Your request of %s works within our allocation.", r.currencies.Format(counter))
		suggestion = fmt.Sprintf("We'll proceed with %s as the working figure.", r.currencies.Format(counter))
	default:
		analysis = fmt.Sprintf("Your request exceeds the campaign's allocated budget of %s.", r.currencies.Format(s.Campaign.Budget))
		suggestion = r.overBudgetSuggestion(s, counter, maxBudget)
	}

	return fmt.Sprintf(`Thank you for your counter-proposal. Reviewing it from our side:

Your request: %s
Our current offer: %s

%s

%s`,
		r.currencies.Format(counter),
		r.currencies.Format(ourPrice),
		analysis,
		suggestion,
	)
}

// overBudgetSuggestion picks region-flavored compromise wording for
// counters above the ceiling.
func (r *ResponseComposer) overBudgetSuggestion(s *Session, counter, maxBudget Money) string {
	switch s.Counterparty.Location {
	case LocationIndia:
		mid := s.Campaign.Budget.Amount.Add(maxBudget.Amount).Div(decimal.NewFromInt(2)).Round(2)
		return fmt.Sprintf("Let's meet in the middle at %s — we see this as the start of a long-term partnership.",
			r.currencies.Format(Money{Amount: mid, Currency: maxBudget.Currency}))
	case LocationUS:
		return fmt.Sprintf("Given your portfolio we can stretch to %s, our absolute maximum for this campaign. Would that work?",
			r.currencies.Format(maxBudget))
	default:
		return fmt.Sprintf("Our maximum for this campaign is %s. Beyond that we'd need to reduce content scope or restructure. Would the maximum work, or should we explore alternatives?",
			r.currencies.Format(maxBudget))
	}
}

// NoPriceReply asks for a concrete number when a counter carried none.
func (r *ResponseComposer) NoPriceReply() string {
	return "I'd love to work with your pricing preferences. Could you share your expected rate so we can find the best path forward?"
}

// Agreement closes an accepted negotiation with the final terms.
func (r *ResponseComposer) Agreement(s *Session, terms Offer) string {
	var lines []string
	for _, item := range sortedItems(terms.Items) {
		lines = append(lines, fmt.Sprintf("- %s x %d: %s",
			item.ContentType.DisplayName(), item.Quantity, r.currencies.Format(item.Subtotal)))
	}
	lines = append(lines,
		fmt.Sprintf("- Total investment: %s", r.currencies.Format(terms.TotalPrice)),
		fmt.Sprintf("- Payment terms: %s", terms.PaymentTerms),
		fmt.Sprintf("- Campaign duration: %d days", terms.TimelineDays),
		fmt.Sprintf("- Usage rights: %s", terms.UsageRights),
	)
	return fmt.Sprintf(`Excellent! We're thrilled to move forward with this partnership.

Final agreement summary:
%s

Next steps: our team will prepare the contract within 2 business days, with the first payment processed on signing. Welcome aboard — %s is excited about the content you'll create!`,
		strings.Join(lines, "\n"),
		s.Campaign.BrandName,
	)
}

// Rejection closes a declined negotiation gracefully.
func (r *ResponseComposer) Rejection(s *Session) string {
	return fmt.Sprintf(`I understand and respect your decision. While we're disappointed this opportunity isn't the right fit, we appreciate you taking the time to consider our proposal.

%s values long-term relationships with quality creators — if circumstances change, we'd love to reconnect. Best of luck with your upcoming projects!`,
		s.Campaign.BrandName)
}

// Cancelled acknowledges an external cancellation.
func (r *ResponseComposer) Cancelled(s *Session) string {
	return fmt.Sprintf("This negotiation with %s has been cancelled. No terms were agreed.", s.Campaign.BrandName)
}

// AlreadyClosed is the fixed reply for turns against a terminal session.
func (r *ResponseComposer) AlreadyClosed(status Status) string {
	return fmt.Sprintf("This negotiation is already closed (status: %s). Please start a new session to discuss further collaboration.", status)
}

// GeneralReply keeps a price-less, intent-less turn moving.
func (r *ResponseComposer) GeneralReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, []string{"excited", "interested", "love", "great"}):
		return "That's great to hear! What aspects are most important to you in this partnership?"
	case containsAny(lower, []string{"concerned", "worried", "unsure"}):
		return "I appreciate your perspective — let's make sure we address all your concerns. What would make this opportunity more appealing for you?"
	case containsAny(lower, []string{"question", "clarify", "explain", "details"}):
		return "Happy to clarify! Each deliverable includes concept development, creation, editing, and posting, with the stated revision rounds to meet brand guidelines. What would you like me to explain further?"
	default:
		return "Building the right partnership is crucial. What elements would you like to discuss or adjust in our proposal?"
	}
}

// ReplyPrompt builds the generation prompt for a CONTINUE-turn reply. The
// deterministic draft is included so the generator can only improve on it.
func (r *ResponseComposer) ReplyPrompt(s *Session, message, draft string, historyWindow int) string {
	var b strings.Builder
	b.WriteString("You are a professional brand partnerships manager negotiating with a content creator.\n\n")
	fmt.Fprintf(&b, "Brand: %s\nBudget: %s\nCounterparty: %s (%s followers, %.1f%% engagement)\nStatus: %s, round %d\n\n",
		s.Campaign.BrandName,
		r.currencies.Format(s.Campaign.Budget),
		s.Counterparty.Name,
		groupThousands(fmt.Sprintf("%d", s.Counterparty.Followers)),
		s.Counterparty.EngagementRate*100,
		s.Status, s.Round,
	)
	if recent := s.RecentMessages(historyWindow); len(recent) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, m := range recent {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "They just said: %q\n\n", message)
	fmt.Fprintf(&b, "Respond conversationally in one short paragraph. Never offer more than %s. A reasonable draft you may improve on:\n%s",
		r.currencies.Format(s.MaxBudget()), draft)
	return b.String()
}

func requirementsAsItems(req map[ContentType]int) map[ContentType]LineItem {
	out := make(map[ContentType]LineItem, len(req))
	for ct, qty := range req {
		out[ct] = LineItem{ContentType: ct, Quantity: qty}
	}
	return out
}

func platformList(ps []Platform) string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.DisplayName())
	}
	return strings.Join(names, ", ")
}
