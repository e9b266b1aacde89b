// Package state implements subsystem 6: a per-symbol hysteresis manager
// that smooths Stage6's raw, possibly noisy snapshot-to-snapshot decisions
// into a stable public signal — requiring N-bar confirmation and a minimum
// confidence delta before flipping, expiring a stale stable decision on
// TTL, and honoring a handful of hard-invalidation telemetry flags that
// force an immediate flip outside that normal vote. Grounded on the
// majority-vote, mutex-guarded FSM in internal/domain/regime/detector.go,
// generalized from a 3-regime vote to an arbitrary scenario/direction pair.
package state

import (
	"sync"
	"time"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/obs"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// symbolState is the hysteresis bookkeeping kept for one symbol.
type symbolState struct {
	Stable        *types.Stage6Decision
	StableSinceMs int64
	LastSeenMs    int64
	Pending       *types.Stage6Decision
	PendingCount  int
	LastFlip      *types.Flip
}

// Manager owns the hysteresis state for every symbol it has seen, guarded
// by a single mutex (spec.md §9: "the only process-wide state besides the
// structure event history").
type Manager struct {
	mu     sync.Mutex
	states map[string]*symbolState
}

// NewManager constructs an empty hysteresis manager.
func NewManager() *Manager {
	return &Manager{states: make(map[string]*symbolState)}
}

// LastFlip returns the most recent recorded stable-scenario transition for
// symbol, or nil if it has never flipped.
func (m *Manager) LastFlip(symbol string) *types.Flip {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[symbol]
	if !ok {
		return nil
	}
	return st.LastFlip
}

// Update feeds the raw Stage6 decision for symbol at nowMs and returns the
// hysteresis-smoothed decision actually surfaced to callers. A raw UNCLEAR
// decision is a hard invalidation of the pending vote: it resets pending
// immediately and, once it persists past confirmBars itself, clears the
// stable decision too.
func (m *Manager) Update(cfg config.StateConfig, symbol string, raw types.Stage6Decision, nowMs int64) types.Stage6Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[symbol]
	if !ok {
		st = &symbolState{}
		m.states[symbol] = st
	}
	st.LastSeenMs = nowMs
	metrics := obs.Metrics()
	metrics.Stage6DecisionsTotal.WithLabelValues(string(raw.ScenarioID)).Inc()

	if st.Stable != nil {
		if tag, hit := hardInvalidationTag(*st.Stable, raw); hit {
			m.flip(st, symbol, raw, nowMs, "hard_invalidation:"+tag, metrics)
			return raw
		}
	}

	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if st.Stable != nil && nowMs-st.StableSinceMs > ttl.Milliseconds() {
		m.flip(st, symbol, raw, nowMs, "ttl", metrics)
		return raw
	}

	if raw.ScenarioID == types.ScenarioUnclear {
		st.Pending, st.PendingCount = accumulate(st.Pending, st.PendingCount, raw)
		metrics.HysteresisPendingGauge.WithLabelValues(symbol).Set(float64(st.PendingCount))
		if st.PendingCount >= cfg.ConfirmBars {
			st.Stable = nil
			st.Pending = nil
			st.PendingCount = 0
		}
		if st.Stable != nil {
			return *st.Stable
		}
		return raw
	}

	if st.Stable == nil {
		st.Pending, st.PendingCount = accumulate(st.Pending, st.PendingCount, raw)
		metrics.HysteresisPendingGauge.WithLabelValues(symbol).Set(float64(st.PendingCount))
		if st.PendingCount >= cfg.ConfirmBars {
			confirmed := raw
			st.Stable = &confirmed
			st.StableSinceMs = nowMs
			st.Pending = nil
			st.PendingCount = 0
			return confirmed
		}
		return raw
	}

	if sameCall(*st.Stable, raw) {
		st.Pending = nil
		st.PendingCount = 0
		st.Stable.Confidence = raw.Confidence
		st.StableSinceMs = nowMs
		return *st.Stable
	}

	if raw.Confidence-st.Stable.Confidence < cfg.SwitchDelta {
		// Candidate isn't convincingly better than the current stable call;
		// ignore it rather than let marginal noise start a flip.
		st.Pending = nil
		st.PendingCount = 0
		return *st.Stable
	}

	st.Pending, st.PendingCount = accumulate(st.Pending, st.PendingCount, raw)
	metrics.HysteresisPendingGauge.WithLabelValues(symbol).Set(float64(st.PendingCount))
	if st.PendingCount >= cfg.ConfirmBars {
		m.flip(st, symbol, raw, nowMs, "confirmed", metrics)
		return *st.Stable
	}
	return *st.Stable
}

// hardInvalidationTag reports the QA tag for a raw decision whose telemetry
// flags demand an immediate flip regardless of confirm_bars/switch_delta:
// a failed hold against the direction we're currently stable on, or chop
// right after a sweep (liquidity taken, then nowhere to go).
func hardInvalidationTag(stable, raw types.Stage6Decision) (string, bool) {
	flags := raw.Telemetry.Flags
	if len(flags) == 0 {
		return "", false
	}
	if flags["failed_hold_up"] && stable.Direction == types.DirectionLong {
		return "failed_hold", true
	}
	if flags["chop_after_sweep"] {
		return "chop_after_sweep", true
	}
	return "", false
}

// flip replaces the stable decision with raw, records the transition and
// increments the flip counter by reason.
func (m *Manager) flip(st *symbolState, symbol string, raw types.Stage6Decision, nowMs int64, reason string, metrics *obs.Registry) {
	from := types.ScenarioUnclear
	if st.Stable != nil {
		from = st.Stable.ScenarioID
	}
	confirmed := raw
	st.Stable = &confirmed
	st.StableSinceMs = nowMs
	st.Pending = nil
	st.PendingCount = 0
	st.LastFlip = &types.Flip{From: from, To: raw.ScenarioID, Reason: reason}
	metrics.HysteresisFlipsTotal.WithLabelValues(reason).Inc()
	metrics.HysteresisPendingGauge.WithLabelValues(symbol).Set(0)
}

// accumulate increments the pending counter when raw matches the existing
// pending candidate, otherwise restarts it at 1 with raw as the new
// candidate.
func accumulate(pending *types.Stage6Decision, count int, raw types.Stage6Decision) (*types.Stage6Decision, int) {
	if pending != nil && sameCall(*pending, raw) {
		return pending, count + 1
	}
	return &raw, 1
}

func sameCall(a, b types.Stage6Decision) bool {
	return a.ScenarioID == b.ScenarioID && a.Direction == b.Direction
}
