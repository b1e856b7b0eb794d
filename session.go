package negotiate

import (
	"time"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Session Model — campaign, counterparty, offer, negotiation state
// ──────────────────────────────────────────────

// Status is the negotiation lifecycle state.
type Status string

const (
	StatusInitiated    Status = "initiated"
	StatusInProgress   Status = "in_progress"
	StatusCounterOffer Status = "counter_offer"
	StatusAgreed       Status = "agreed"
	StatusRejected     Status = "rejected"
	StatusCancelled    Status = "cancelled"
)

// Terminal reports whether no further transition may leave this status.
func (s Status) Terminal() bool {
	return s == StatusAgreed || s == StatusRejected || s == StatusCancelled
}

// CounterpartyProfile describes the content creator being negotiated with.
// Immutable once a session starts.
type CounterpartyProfile struct {
	Name                string     `json:"name"`
	Followers           int        `json:"followers"`
	EngagementRate      float64    `json:"engagement_rate"` // 0-1 fraction
	Location            Location   `json:"location"`
	Platforms           []Platform `json:"platforms"`
	Niches              []string   `json:"niches"`
	PriorCollaborations int        `json:"prior_collaborations"`
}

// LocalCurrency returns the currency bare numerals from this counterparty
// are assumed to be quoted in.
func (p CounterpartyProfile) LocalCurrency() string {
	return LocalCurrency(p.Location)
}

// CampaignSpec describes the buying brand's campaign. Immutable once a
// session starts.
type CampaignSpec struct {
	BrandName       string              `json:"brand_name"`
	Budget          Money               `json:"budget"`
	Goals           []string            `json:"goals"`
	TargetPlatforms []Platform          `json:"target_platforms"`
	Requirements    map[ContentType]int `json:"requirements"`
	DurationDays    int                 `json:"duration_days"`
	TargetAudience  string              `json:"target_audience"`
	Guidelines      string              `json:"guidelines"`
	BrandLocation   Location            `json:"brand_location"`
}

// LineItem is one deliverable row in an offer breakdown.
type LineItem struct {
	ContentType ContentType `json:"content_type"`
	Quantity    int         `json:"quantity"`
	UnitRate    Money       `json:"unit_rate"`
	Subtotal    Money       `json:"subtotal"`
	// MarketRate is the pre-constraint unit rate, kept as the negotiable
	// ceiling basis under the negotiable_above_budget strategy.
	MarketRate Money `json:"market_rate"`
}

// Offer is a complete proposal: total, per-item breakdown, and commercial
// terms. Offers are value objects; mutations produce new offers.
type Offer struct {
	TotalPrice        Money                    `json:"total_price"`
	Items             map[ContentType]LineItem `json:"items"`
	PaymentTerms      string                   `json:"payment_terms"`
	RevisionsIncluded int                      `json:"revisions_included"`
	UsageRights       string                   `json:"usage_rights"`
	TimelineDays      int                      `json:"timeline_days"`
}

// ScaledTo returns a copy of the offer with every line item scaled so the
// total equals target (same currency as the offer). Subtotals are
// authoritative: the largest item absorbs rounding drift so they sum exactly
// to the target, and unit rates are re-derived from the final subtotals,
// rounded to cents.
func (o Offer) ScaledTo(target Money) Offer {
	out := o
	out.TotalPrice = target
	out.Items = make(map[ContentType]LineItem, len(o.Items))
	if o.TotalPrice.Amount.IsZero() {
		for k, v := range o.Items {
			out.Items[k] = v
		}
		return out
	}
	factor := target.Amount.Div(o.TotalPrice.Amount)

	var largest ContentType
	largestAmt := decimal.Zero
	running := decimal.Zero
	for ct, item := range o.Items {
		item.Subtotal = item.Subtotal.Mul(factor)
		out.Items[ct] = item
		running = running.Add(item.Subtotal.Amount)
		if item.Subtotal.Amount.GreaterThan(largestAmt) {
			largestAmt = item.Subtotal.Amount
			largest = ct
		}
	}
	if drift := target.Amount.Sub(running); !drift.IsZero() && largest != "" {
		item := out.Items[largest]
		item.Subtotal.Amount = item.Subtotal.Amount.Add(drift)
		out.Items[largest] = item
	}
	for ct, item := range out.Items {
		if item.Quantity > 0 {
			item.UnitRate = Money{
				Amount:   item.Subtotal.Amount.Div(decimal.NewFromInt(int64(item.Quantity))).Round(2),
				Currency: item.Subtotal.Currency,
			}
			out.Items[ct] = item
		}
	}
	return out
}

// Role identifies who authored a transcript message.
type Role string

const (
	RoleAssistant Role = "assistant" // the automated buyer
	RoleUser      Role = "user"      // the counterparty
)

// Message is one transcript entry.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full negotiation state for one campaign/counterparty pair.
// The engine mutates it exclusively through Start/Continue/Cancel; callers
// must serialize Continue calls per session id (see SessionStore).
type Session struct {
	ID           string              `json:"id"`
	Campaign     CampaignSpec        `json:"campaign"`
	Counterparty CounterpartyProfile `json:"counterparty"`

	Status Status `json:"status"`
	Round  int    `json:"round"`

	Messages      []Message `json:"messages"`
	CurrentOffer  *Offer    `json:"current_offer,omitempty"`
	CounterOffers []Money   `json:"counter_offers,omitempty"`
	AgreedTerms   *Offer    `json:"agreed_terms,omitempty"`

	Strategy           Strategy `json:"strategy"`
	MarketTotal        Money    `json:"market_total"`
	FlexibilityPercent float64  `json:"flexibility_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxBudget is the absolute ceiling the engine may ever offer or accept:
// budget × (1 + flexibility).
func (s *Session) MaxBudget() Money {
	factor := decimal.NewFromFloat(1 + s.FlexibilityPercent/100)
	return s.Campaign.Budget.Mul(factor)
}

// Terminal reports whether the session is closed.
func (s *Session) Terminal() bool { return s.Status.Terminal() }

// AppendMessage adds a transcript entry and bumps UpdatedAt.
func (s *Session) AppendMessage(role Role, text string, at time.Time) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text, Timestamp: at})
	s.UpdatedAt = at
}

// RecentMessages returns up to n of the latest transcript entries, oldest
// first, for prompt context.
func (s *Session) RecentMessages(n int) []Message {
	if n <= 0 || len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// ContractTerms is the locked agreement exposed to a downstream contract
// collaborator once Status == StatusAgreed. The engine never renders
// documents itself.
type ContractTerms struct {
	BrandName        string                   `json:"brand_name"`
	CounterpartyName string                   `json:"counterparty_name"`
	Total            Money                    `json:"total"`
	Items            map[ContentType]LineItem `json:"items"`
	DurationDays     int                      `json:"duration_days"`
	Platforms        []Platform               `json:"platforms"`
	PaymentTerms     string                   `json:"payment_terms"`
	UsageRights      string                   `json:"usage_rights"`
}

// ContractTerms exports the agreed offer, or nil when the session has not
// reached agreement.
func (s *Session) ContractTerms() *ContractTerms {
	if s.Status != StatusAgreed || s.AgreedTerms == nil {
		return nil
	}
	return &ContractTerms{
		BrandName:        s.Campaign.BrandName,
		CounterpartyName: s.Counterparty.Name,
		Total:            s.AgreedTerms.TotalPrice,
		Items:            s.AgreedTerms.Items,
		DurationDays:     s.AgreedTerms.TimelineDays,
		Platforms:        s.Campaign.TargetPlatforms,
		PaymentTerms:     s.AgreedTerms.PaymentTerms,
		UsageRights:      s.AgreedTerms.UsageRights,
	}
}
