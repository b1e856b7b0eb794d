package negotiate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Budget-Constrained Proposal Generator — three-strategy pricing
// ──────────────────────────────────────────────

// Strategy tags how the initial offer relates to the campaign budget.
type Strategy string

const (
	// StrategyWithinBudget: market total fits inside the budget; offer
	// market rates as-is.
	StrategyWithinBudget Strategy = "within_budget"
	// StrategyNegotiableAboveBudget: market total is above budget but
	// within the flexibility band; open at the budget and keep market
	// rates as the negotiable ceiling.
	StrategyNegotiableAboveBudget Strategy = "negotiable_above_budget"
	// StrategyScaleToMaxBudget: market total exceeds even the flexibility
	// band; scale every item so the total lands exactly on max budget.
	StrategyScaleToMaxBudget Strategy = "scale_to_max_budget"
)

// Proposal is the generator output: the offer to open with, the strategy
// that produced it, and negotiation guidance for the response composer.
type Proposal struct {
	Offer       Offer
	Strategy    Strategy
	MarketTotal Money   // pre-constraint market value, in the budget currency
	MaxBudget   Money   // budget × (1 + flexibility)
	BudgetRatio float64 // market total / budget
	// Guidance holds strategy-appropriate talking points for the
	// text-generation collaborator (and the deterministic templates).
	Guidance []string
}

// ProposalGenerator turns market rates plus a campaign budget into an
// opening offer.
type ProposalGenerator struct {
	rates      *RateCalculator
	currencies *CurrencyTable
}

// NewProposalGenerator wires the generator to a rate calculator and the
// currency table.
func NewProposalGenerator(rates *RateCalculator, currencies *CurrencyTable) *ProposalGenerator {
	return &ProposalGenerator{rates: rates, currencies: currencies}
}

// Propose computes the budget-constrained opening offer.
//
// All market math runs in the reference currency and is converted into the
// budget currency for the offer, so the counterparty sees one consistent
// denomination throughout.
func (g *ProposalGenerator) Propose(profile CounterpartyProfile, campaign CampaignSpec, flexibilityPct float64) (*Proposal, error) {
	if !campaign.Budget.IsPositive() {
		return nil, &InvalidBudgetError{Budget: campaign.Budget}
	}
	totalQty := 0
	for _, qty := range campaign.Requirements {
		if qty > 0 {
			totalQty += qty
		}
	}
	if totalQty == 0 {
		return nil, &EmptyRequirementsError{}
	}

	cur := campaign.Budget.Currency
	breakdown := g.rates.Breakdown(profile, campaign.Requirements)

	items := make(map[ContentType]LineItem, len(breakdown))
	marketTotal := Zero(cur)
	for ct, rate := range breakdown {
		unit := g.currencies.ConvertMoney(rate.UnitRate, cur)
		unit.Amount = unit.Amount.Round(2)
		qty := campaign.Requirements[ct]
		subtotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		items[ct] = LineItem{
			ContentType: ct,
			Quantity:    qty,
			UnitRate:    unit,
			Subtotal:    subtotal,
			MarketRate:  unit,
		}
		marketTotal = marketTotal.Add(subtotal)
	}
	if marketTotal.IsZero() {
		return nil, &EmptyRequirementsError{}
	}

	maxBudget := campaign.Budget.Mul(decimal.NewFromFloat(1 + flexibilityPct/100))
	ratio, _ := marketTotal.Amount.Div(campaign.Budget.Amount).Float64()

	offer := Offer{
		TotalPrice:        marketTotal,
		Items:             items,
		PaymentTerms:      paymentTermsFor(profile.Location),
		RevisionsIncluded: 2,
		UsageRights:       "6 months social media usage",
		TimelineDays:      campaign.DurationDays,
	}

	var strategy Strategy
	switch {
	case marketTotal.Cmp(campaign.Budget) <= 0:
		strategy = StrategyWithinBudget
	case marketTotal.Cmp(maxBudget) <= 0:
		strategy = StrategyNegotiableAboveBudget
		// Open at the budget; MarketRate on each item keeps the original
		// rate as the ceiling for later rounds.
		offer = offer.ScaledTo(campaign.Budget)
	default:
		strategy = StrategyScaleToMaxBudget
		offer = offer.ScaledTo(maxBudget)
	}

	return &Proposal{
		Offer:       offer,
		Strategy:    strategy,
		MarketTotal: marketTotal,
		MaxBudget:   maxBudget,
		BudgetRatio: ratio,
		Guidance:    guidanceFor(strategy, g.currencies, marketTotal, campaign.Budget, maxBudget),
	}, nil
}

// guidanceFor produces the talking points handed to the text-generation
// collaborator alongside the structured offer.
func guidanceFor(s Strategy, t *CurrencyTable, market, budget, maxBudget Money) []string {
	switch s {
	case StrategyWithinBudget:
		return []string{
			fmt.Sprintf("Market value %s fits inside the allocated budget %s.", t.Format(market), t.Format(budget)),
			"Lead with the market-rate offer; no concessions needed up front.",
			"Room remains under budget for value-adds if the counterparty pushes back.",
		}
	case StrategyNegotiableAboveBudget:
		return []string{
			fmt.Sprintf("Market value %s runs above the %s budget but inside the flexibility band.", t.Format(market), t.Format(budget)),
			fmt.Sprintf("Open at the budget level; concede gradually toward %s if pressed.", t.Format(maxBudget)),
			"Frame movement above budget as recognition of the counterparty's market value.",
		}
	default:
		return []string{
			fmt.Sprintf("Market value %s exceeds the ceiling %s; items were scaled proportionally.", t.Format(market), t.Format(maxBudget)),
			fmt.Sprintf("Hold firm at %s; offer reduced scope or extended timelines instead of more money.", t.Format(maxBudget)),
			"Be transparent that the gap to market rate is a budget constraint, not a valuation.",
		}
	}
}

// paymentTermsFor picks region-appropriate payment wording.
func paymentTermsFor(loc Location) string {
	switch loc {
	case LocationIndia:
		return "50% advance, 50% on completion (milestone-based)"
	case LocationUS:
		return "50% upfront, 50% within NET-30 terms"
	default:
		return "50% advance, 50% on completion"
	}
}

// sortedItems returns the offer's line items in a stable content-type order
// for deterministic rendering.
func sortedItems(items map[ContentType]LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentType < out[j].ContentType })
	return out
}
