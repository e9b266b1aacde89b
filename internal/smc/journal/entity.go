// Package journal implements subsystem 7: the lifecycle journal that diffs
// each snapshot's live entities (zones, pools, magnets) against the prior
// snapshot and emits created/removed/touched events (a merge surfaces as a
// removed event with reason replaced_by_merge), plus a
// per-frame reconciliation marker. Grounded on the teacher's
// snapshot-delta comparator in internal/explain/delta/comparator.go,
// generalized from config-diffing to entity-lifecycle-diffing, and its
// atomic JSONL persistence pattern in internal/explain/delta/writer.go.
package journal

import "github.com/sawpanic/smc-core/internal/smc/types"

// CurrentEntity is the caller-supplied snapshot of one live entity this
// step: a zone, pool or magnet reduced to the fields the journal needs to
// detect a change worth recording.
type CurrentEntity struct {
	Ref       types.EntityRef
	Type      string
	Direction types.Direction
	Role      types.PoolRole
	PriceMin  *float64
	PriceMax  *float64
	Level     *float64
	MergedFrom []string // IDs of entities this one replaces via zone merge
}

func (c CurrentEntity) priceChanged(prev types.JournalEntityState, epsilon float64) bool {
	if c.PriceMin != nil && absDiff(*c.PriceMin, prev.LastPriceMin) > epsilon {
		return true
	}
	if c.PriceMax != nil && absDiff(*c.PriceMax, prev.LastPriceMax) > epsilon {
		return true
	}
	if c.Level != nil && absDiff(*c.Level, prev.LastLevel) > epsilon {
		return true
	}
	return false
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func entityStateFrom(ref types.EntityRef, c CurrentEntity, nowMs, step int64) types.JournalEntityState {
	st := types.JournalEntityState{
		Ref: ref, CreatedAtMs: nowMs, CreatedStep: step, LastSeenStep: step,
		MissingSince: -1, RemovedAtStep: -1,
	}
	if c.PriceMin != nil {
		st.LastPriceMin = *c.PriceMin
	}
	if c.PriceMax != nil {
		st.LastPriceMax = *c.PriceMax
	}
	if c.Level != nil {
		st.LastLevel = *c.Level
	}
	return st
}
