package negotiate

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────
// Market Rate Calculator — fair-value estimates per deliverable
// ──────────────────────────────────────────────

// Multiplier floors keep rates sane for very small accounts: near-zero
// engagement or follower counts must not collapse the rate to zero.
const (
	engagementFloor = 0.1
	followerFloor   = 1.0
)

// defaultMinimumRate is the safe unit rate returned when a computation
// fails (e.g. unsupported content type for a platform).
var defaultMinimumRate = decimal.NewFromInt(50)

// MarketRate is the computed fair-value estimate for one unit of a
// deliverable, before any budget constraint is applied. Rates are always in
// the reference currency.
type MarketRate struct {
	Platform             Platform    `json:"platform"`
	ContentType          ContentType `json:"content_type"`
	BaseRatePer1K        float64     `json:"base_rate_per_1k_followers"`
	EngagementMultiplier float64     `json:"engagement_multiplier"`
	LocationMultiplier   float64     `json:"location_multiplier"`
	UnitRate             Money       `json:"unit_rate"`
}

// RateCalculator computes market rates from profile metrics and the static
// platform/location constant tables. Stateless after construction; safe for
// concurrent use.
type RateCalculator struct {
	platforms map[Platform]platformConfig
	locations map[Location]float64
}

// NewRateCalculator creates a calculator with the built-in constant tables.
func NewRateCalculator() *RateCalculator {
	return &RateCalculator{
		platforms: defaultPlatformConfigs(),
		locations: locationMultipliers,
	}
}

// Rate computes the market unit rate for one deliverable:
//
//	base_rate × max(engagement_mult, 0.1) × max(follower_mult, 1.0) × location_mult
//
// where engagement_mult = engagement% × platform engagement weight and
// follower_mult = followers/1000 × platform follower weight. Computation
// errors degrade to a safe minimum default rate and are logged; a bad
// deliverable must not abort proposal generation.
func (c *RateCalculator) Rate(profile CounterpartyProfile, ct ContentType) MarketRate {
	rate, err := c.compute(profile, ct)
	if err != nil {
		log.Printf("[RateCalculator] %v, using minimum default rate", err)
		platform, _ := PlatformFor(ct)
		return MarketRate{
			Platform:             platform,
			ContentType:          ct,
			BaseRatePer1K:        0.5,
			EngagementMultiplier: 1.0,
			LocationMultiplier:   1.0,
			UnitRate:             Money{Amount: defaultMinimumRate, Currency: ReferenceCurrency},
		}
	}
	return rate
}

func (c *RateCalculator) compute(profile CounterpartyProfile, ct ContentType) (MarketRate, error) {
	platform, ok := PlatformFor(ct)
	if !ok {
		return MarketRate{}, fmt.Errorf("unknown content type %q", ct)
	}
	cfg, ok := c.platforms[platform]
	if !ok {
		return MarketRate{}, fmt.Errorf("unsupported platform %q", platform)
	}
	baseRate, ok := cfg.baseRates[ct]
	if !ok {
		return MarketRate{}, fmt.Errorf("content type %q not supported on %s", ct, platform)
	}
	if profile.Followers < 0 {
		return MarketRate{}, fmt.Errorf("negative follower count %d", profile.Followers)
	}

	engagement := (profile.EngagementRate * 100) * cfg.engagementWeight
	followers := (float64(profile.Followers) / 1000) * cfg.followerWeight

	locMult, ok := c.locations[profile.Location]
	if !ok {
		locMult = c.locations[LocationOther]
	}

	final := baseRate * maxf(engagement, engagementFloor) * maxf(followers, followerFloor) * locMult
	return MarketRate{
		Platform:             platform,
		ContentType:          ct,
		BaseRatePer1K:        baseRate,
		EngagementMultiplier: engagement,
		LocationMultiplier:   locMult,
		UnitRate:             Money{Amount: decimal.NewFromFloat(final).Round(2), Currency: ReferenceCurrency},
	}, nil
}

// Breakdown computes rates for every requested content type with a positive
// quantity. Zero and negative quantities are skipped.
func (c *RateCalculator) Breakdown(profile CounterpartyProfile, requirements map[ContentType]int) map[ContentType]MarketRate {
	out := make(map[ContentType]MarketRate, len(requirements))
	for ct, qty := range requirements {
		if qty <= 0 {
			continue
		}
		out[ct] = c.Rate(profile, ct)
	}
	return out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
