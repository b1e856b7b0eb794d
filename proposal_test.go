package negotiate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════
// ProposalGenerator
// ══════════════════════════════════════════════

// proposalProfile yields a 90 USD instagram_post unit rate:
// 1.0 × (5% × 1.2) × (15 × 1.0) × 1.0 = 90.
func proposalProfile() CounterpartyProfile {
	return CounterpartyProfile{
		Name:           "Creator",
		Followers:      15000,
		EngagementRate: 0.05,
		Location:       LocationOther,
		Platforms:      []Platform{PlatformInstagram},
	}
}

func proposalCampaign(budget float64, posts int) CampaignSpec {
	return CampaignSpec{
		BrandName:       "EcoTech",
		Budget:          NewMoney(budget, "USD"),
		Goals:           []string{"brand awareness"},
		TargetPlatforms: []Platform{PlatformInstagram},
		Requirements:    map[ContentType]int{ContentInstagramPost: posts},
		DurationDays:    30,
	}
}

func newTestGenerator() *ProposalGenerator {
	return NewProposalGenerator(NewRateCalculator(), NewCurrencyTable())
}

func TestPropose_WithinBudget(t *testing.T) {
	// market 10 × 90 = 900 against a 1000 budget.
	p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(1000, 10), 15)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strategy != StrategyWithinBudget {
		t.Fatalf("strategy = %s, want %s", p.Strategy, StrategyWithinBudget)
	}
	if want := decimal.NewFromInt(900); !p.Offer.TotalPrice.Amount.Equal(want) {
		t.Fatalf("final total = %s, want %s", p.Offer.TotalPrice.Amount, want)
	}
}

func TestPropose_NegotiableAboveBudget(t *testing.T) {
	// market 12 × 90 = 1080: above the 1000 budget, inside the 15% band.
	p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(1000, 12), 15)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strategy != StrategyNegotiableAboveBudget {
		t.Fatalf("strategy = %s, want %s", p.Strategy, StrategyNegotiableAboveBudget)
	}
	if want := decimal.NewFromInt(1000); !p.Offer.TotalPrice.Amount.Equal(want) {
		t.Fatalf("opening total = %s, want exactly the budget %s", p.Offer.TotalPrice.Amount, want)
	}
	if want := decimal.NewFromInt(1150); !p.MaxBudget.Amount.Equal(want) {
		t.Fatalf("ceiling = %s, want %s", p.MaxBudget.Amount, want)
	}
	// Market rates survive as the negotiable ceiling basis.
	item := p.Offer.Items[ContentInstagramPost]
	if want := decimal.NewFromInt(90); !item.MarketRate.Amount.Equal(want) {
		t.Fatalf("retained market rate = %s, want %s", item.MarketRate.Amount, want)
	}
	if item.UnitRate.Amount.GreaterThanOrEqual(item.MarketRate.Amount) {
		t.Fatalf("scaled unit rate %s should sit below market rate %s", item.UnitRate.Amount, item.MarketRate.Amount)
	}
}

func TestPropose_ScaleToMaxBudget(t *testing.T) {
	// market 23 × 90 = 2070: beyond the 15% band over 1000.
	p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(1000, 23), 15)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strategy != StrategyScaleToMaxBudget {
		t.Fatalf("strategy = %s, want %s", p.Strategy, StrategyScaleToMaxBudget)
	}
	if want := decimal.NewFromInt(1150); !p.Offer.TotalPrice.Amount.Equal(want) {
		t.Fatalf("final total = %s, want exactly max budget %s", p.Offer.TotalPrice.Amount, want)
	}
}

func TestPropose_BreakdownSumsToTotal(t *testing.T) {
	// market: 3 × 90 + 2 × 135 + 5 × 27 = 675, so a 500 budget forces the
	// scaling paths where rounding drift must be absorbed.
	campaign := proposalCampaign(500, 3)
	campaign.Requirements[ContentInstagramReel] = 2
	campaign.Requirements[ContentInstagramStory] = 5

	for _, flex := range []float64{0, 10, 15, 100} {
		p, err := newTestGenerator().Propose(proposalProfile(), campaign, flex)
		if err != nil {
			t.Fatal(err)
		}
		sum := decimal.Zero
		for _, item := range p.Offer.Items {
			sum = sum.Add(item.Subtotal.Amount)
		}
		if !sum.Equal(p.Offer.TotalPrice.Amount) {
			t.Errorf("flex=%v: breakdown sum %s != total %s", flex, sum, p.Offer.TotalPrice.Amount)
		}
	}
}

func TestPropose_NeverExceedsCeiling(t *testing.T) {
	budgets := []float64{50, 200, 900, 1000, 1080, 2069, 5000}
	flexes := []float64{0, 5, 15, 50, 100}
	for _, b := range budgets {
		for _, f := range flexes {
			p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(b, 12), f)
			if err != nil {
				t.Fatal(err)
			}
			ceiling := decimal.NewFromFloat(b * (1 + f/100)).Round(2)
			if p.Offer.TotalPrice.Amount.GreaterThan(ceiling) {
				t.Errorf("budget=%v flex=%v: total %s exceeds ceiling %s", b, f, p.Offer.TotalPrice.Amount, ceiling)
			}
		}
	}
}

func TestPropose_StrategyBoundaries(t *testing.T) {
	// market for 12 posts is exactly 1080.
	p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(1080, 12), 15)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strategy != StrategyWithinBudget {
		t.Fatalf("market == budget: strategy = %s, want %s", p.Strategy, StrategyWithinBudget)
	}

	// budget 1000 with 8% flexibility puts the ceiling exactly at 1080.
	p, err = newTestGenerator().Propose(proposalProfile(), proposalCampaign(1000, 12), 8)
	if err != nil {
		t.Fatal(err)
	}
	if p.Strategy != StrategyNegotiableAboveBudget {
		t.Fatalf("market == ceiling: strategy = %s, want %s", p.Strategy, StrategyNegotiableAboveBudget)
	}
}

func TestPropose_EmptyRequirements(t *testing.T) {
	campaign := proposalCampaign(1000, 0)
	_, err := newTestGenerator().Propose(proposalProfile(), campaign, 15)
	var emptyErr *EmptyRequirementsError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyRequirementsError, got %v", err)
	}

	campaign.Requirements = nil
	if _, err := newTestGenerator().Propose(proposalProfile(), campaign, 15); !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyRequirementsError for nil map, got %v", err)
	}
}

func TestPropose_InvalidBudget(t *testing.T) {
	campaign := proposalCampaign(0, 10)
	_, err := newTestGenerator().Propose(proposalProfile(), campaign, 15)
	var budgetErr *InvalidBudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("expected InvalidBudgetError, got %v", err)
	}
}

func TestPropose_OfferInBudgetCurrency(t *testing.T) {
	campaign := proposalCampaign(100000, 10)
	campaign.Budget.Currency = "INR"
	p, err := newTestGenerator().Propose(proposalProfile(), campaign, 15)
	if err != nil {
		t.Fatal(err)
	}
	if p.Offer.TotalPrice.Currency != "INR" {
		t.Fatalf("offer currency = %s, want INR", p.Offer.TotalPrice.Currency)
	}
	// 90 USD/post converts to 7470 INR; 10 posts = 74700 within budget.
	if want := decimal.NewFromInt(74700); !p.Offer.TotalPrice.Amount.Equal(want) {
		t.Fatalf("converted total = %s, want %s", p.Offer.TotalPrice.Amount, want)
	}
	if p.Strategy != StrategyWithinBudget {
		t.Fatalf("strategy = %s", p.Strategy)
	}
}

func TestPropose_GuidanceMatchesStrategy(t *testing.T) {
	p, err := newTestGenerator().Propose(proposalProfile(), proposalCampaign(1000, 23), 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Guidance) == 0 {
		t.Fatal("expected guidance talking points")
	}
}
