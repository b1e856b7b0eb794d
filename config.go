package negotiate

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EngineConfig carries the tunables for a negotiation engine. Unset
// durations and counts are replaced by defaults in NewEngine; a zero
// FlexibilityPercent is meaningful (no movement above budget) and is kept.
type EngineConfig struct {
	// FlexibilityPercent is the maximum percentage above budget the engine
	// may ever offer or accept.
	FlexibilityPercent float64 `env:"NEGOTIATE_FLEXIBILITY_PERCENT" envDefault:"15"`
	// GenerationTimeout bounds each text-generation call.
	GenerationTimeout time.Duration `env:"NEGOTIATE_GENERATION_TIMEOUT" envDefault:"10s"`
	// GenerationRetries is the number of extra attempts after a failed
	// generation call.
	GenerationRetries int `env:"NEGOTIATE_GENERATION_RETRIES" envDefault:"1"`
	// HistoryWindow is how many recent transcript messages feed generation
	// prompts.
	HistoryWindow int `env:"NEGOTIATE_HISTORY_WINDOW" envDefault:"6"`
	// UseGeneratedReplies lets the text generator compose CONTINUE-turn
	// replies (with deterministic fallback). Terminal messages are always
	// template-rendered.
	UseGeneratedReplies bool `env:"NEGOTIATE_GENERATED_REPLIES" envDefault:"true"`
}

// LoadConfig reads EngineConfig from environment variables.
func LoadConfig() (EngineConfig, error) {
	var cfg EngineConfig
	if err := env.Parse(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse engine config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the production defaults without touching the
// environment.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		FlexibilityPercent:  15,
		GenerationTimeout:   10 * time.Second,
		GenerationRetries:   1,
		HistoryWindow:       6,
		UseGeneratedReplies: true,
	}
}

// withDefaults fills unset fields.
func (c EngineConfig) withDefaults() EngineConfig {
	d := DefaultConfig()
	if c.FlexibilityPercent < 0 {
		c.FlexibilityPercent = 0
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = d.GenerationTimeout
	}
	if c.GenerationRetries < 0 {
		c.GenerationRetries = d.GenerationRetries
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = d.HistoryWindow
	}
	return c
}
