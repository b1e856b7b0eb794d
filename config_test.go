package negotiate

import (
	"testing"
	"time"
)

// ══════════════════════════════════════════════
// EngineConfig
// ══════════════════════════════════════════════

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("env defaults %+v differ from DefaultConfig %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("NEGOTIATE_FLEXIBILITY_PERCENT", "0")
	t.Setenv("NEGOTIATE_GENERATION_TIMEOUT", "2s")
	t.Setenv("NEGOTIATE_GENERATION_RETRIES", "0")
	t.Setenv("NEGOTIATE_HISTORY_WINDOW", "10")
	t.Setenv("NEGOTIATE_GENERATED_REPLIES", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FlexibilityPercent != 0 {
		t.Errorf("flexibility = %v, want 0", cfg.FlexibilityPercent)
	}
	if cfg.GenerationTimeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.GenerationTimeout)
	}
	if cfg.GenerationRetries != 0 {
		t.Errorf("retries = %d", cfg.GenerationRetries)
	}
	if cfg.HistoryWindow != 10 {
		t.Errorf("history window = %d", cfg.HistoryWindow)
	}
	if cfg.UseGeneratedReplies {
		t.Error("generated replies should be disabled")
	}
}

func TestWithDefaults_KeepsZeroFlexibility(t *testing.T) {
	cfg := EngineConfig{FlexibilityPercent: 0}.withDefaults()
	if cfg.FlexibilityPercent != 0 {
		t.Fatalf("flexibility = %v, zero must be preserved", cfg.FlexibilityPercent)
	}
	if cfg.GenerationTimeout != DefaultConfig().GenerationTimeout {
		t.Fatalf("timeout = %v, want default", cfg.GenerationTimeout)
	}

	cfg = EngineConfig{FlexibilityPercent: -5}.withDefaults()
	if cfg.FlexibilityPercent != 0 {
		t.Fatalf("flexibility = %v, negatives clamp to 0", cfg.FlexibilityPercent)
	}
}
