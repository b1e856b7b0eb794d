package negotiate

import "go.uber.org/atomic"

// EngineMetrics counts engine activity. All fields are safe for concurrent
// use; read them with Snapshot for a consistent-enough view.
type EngineMetrics struct {
	SessionsStarted     atomic.Int64
	TurnsProcessed      atomic.Int64
	AgreementsReached   atomic.Int64
	RejectionsReceived  atomic.Int64
	SessionsCancelled   atomic.Int64
	CounterOffersSeen   atomic.Int64
	GenerationFallbacks atomic.Int64
}

// MetricsSnapshot is a plain-value copy of the counters.
type MetricsSnapshot struct {
	SessionsStarted     int64 `json:"sessions_started"`
	TurnsProcessed      int64 `json:"turns_processed"`
	AgreementsReached   int64 `json:"agreements_reached"`
	RejectionsReceived  int64 `json:"rejections_received"`
	SessionsCancelled   int64 `json:"sessions_cancelled"`
	CounterOffersSeen   int64 `json:"counter_offers_seen"`
	GenerationFallbacks int64 `json:"generation_fallbacks"`
}

// Snapshot copies the current counter values.
func (m *EngineMetrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		SessionsStarted:     m.SessionsStarted.Load(),
		TurnsProcessed:      m.TurnsProcessed.Load(),
		AgreementsReached:   m.AgreementsReached.Load(),
		RejectionsReceived:  m.RejectionsReceived.Load(),
		SessionsCancelled:   m.SessionsCancelled.Load(),
		CounterOffersSeen:   m.CounterOffersSeen.Load(),
		GenerationFallbacks: m.GenerationFallbacks.Load(),
	}
}
