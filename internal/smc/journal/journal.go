package journal

import (
	"sync"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/obs"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// seriesState is everything one (symbol, timeframe) pair needs remembered
// between steps: the live entities and a short-lived cache of recently
// removed ones, kept around so a late touch re-activates rather than
// double-creating.
type seriesState struct {
	active  map[types.EntityRef]*types.JournalEntityState
	removed map[types.EntityRef]removedEntry
	step    int64
}

type removedEntry struct {
	state        types.JournalEntityState
	removedStep  int64
}

// Journal owns lifecycle state for every (symbol, timeframe) pair it has
// seen, guarded by one mutex (spec.md §9).
type Journal struct {
	mu     sync.Mutex
	series map[string]*seriesState
}

// New constructs an empty Journal.
func New() *Journal {
	return &Journal{series: make(map[string]*seriesState)}
}

func seriesKey(symbol, tf string) string { return symbol + "|" + tf }

// Reconcile advances the (symbol, tf) series by one step, diffing current
// against the remembered entity set, and returns every lifecycle event
// produced this step: created/touched events in the order of current,
// followed by removed events. No merged event is emitted; an entity that
// disappears into a merge is reported as removed with reason
// replaced_by_merge.
func (j *Journal) Reconcile(cfg config.JournalConfig, symbol, tf string, current []CurrentEntity, nowMs int64) []types.JournalEvent {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := seriesKey(symbol, tf)
	s, ok := j.series[key]
	if !ok {
		s = &seriesState{active: make(map[types.EntityRef]*types.JournalEntityState), removed: make(map[types.EntityRef]removedEntry)}
		j.series[key] = s
	}
	s.step++
	step := s.step
	for ref, entry := range s.removed {
		if step-entry.removedStep > int64(cfg.RemovedCacheSteps) {
			delete(s.removed, ref)
		}
	}

	var events []types.JournalEvent
	seenThisStep := make(map[types.EntityRef]bool, len(current))

	mergedAway := make(map[types.EntityRef]types.EntityRef) // old ref -> merged-into ref
	for _, c := range current {
		for _, oldID := range c.MergedFrom {
			oldRef := types.EntityRef{Kind: c.Ref.Kind, ID: oldID}
			if oldRef != c.Ref {
				mergedAway[oldRef] = c.Ref
			}
		}
	}

	for _, c := range current {
		seenThisStep[c.Ref] = true

		if prev, exists := s.active[c.Ref]; exists {
			prev.LastSeenStep = step
			prev.MissingSince = -1
			if c.priceChanged(*prev, cfg.TouchEpsilon) {
				prev.Touched = true
				events = append(events, touchedEvent(symbol, tf, c, nowMs, false))
			}
			applyCurrent(prev, c)
			continue
		}

		if entry, wasRemoved := s.removed[c.Ref]; wasRemoved {
			late := step-entry.removedStep <= int64(cfg.RemovedCacheSteps)
			st := entry.state
			st.LastSeenStep = step
			st.MissingSince = -1
			st.RemovedAtStep = -1
			s.active[c.Ref] = &st
			delete(s.removed, c.Ref)
			events = append(events, touchedEvent(symbol, tf, c, nowMs, late))
			continue
		}

		st := entityStateFrom(c.Ref, c, nowMs, step)
		s.active[c.Ref] = &st
		events = append(events, createdEvent(symbol, tf, c, nowMs))
	}

	for ref, prev := range s.active {
		if seenThisStep[ref] {
			continue
		}
		if prev.MissingSince < 0 {
			prev.MissingSince = step
			continue
		}
		if step-prev.MissingSince < int64(cfg.RemovedConfirmCloseSteps) {
			continue
		}

		mergedInto, wasMerged := mergedAway[ref]
		reason, sub := classifyRemoval(*prev, cfg.RemovedConfirmCloseSteps, false, wasMerged)
		events = append(events, removedEvent(symbol, tf, *prev, reason, sub, nowMs, mergedInto))

		prev.RemovedAtStep = step
		s.removed[ref] = removedEntry{state: *prev, removedStep: step}
		delete(s.active, ref)
	}

	metrics := obs.Metrics()
	for _, ev := range events {
		metrics.JournalEventsTotal.WithLabelValues(string(ev.Entity), string(ev.Event)).Inc()
	}

	return events
}

func applyCurrent(st *types.JournalEntityState, c CurrentEntity) {
	if c.PriceMin != nil {
		st.LastPriceMin = *c.PriceMin
	}
	if c.PriceMax != nil {
		st.LastPriceMax = *c.PriceMax
	}
	if c.Level != nil {
		st.LastLevel = *c.Level
	}
}

func createdEvent(symbol, tf string, c CurrentEntity, nowMs int64) types.JournalEvent {
	return types.JournalEvent{
		TsMs: nowMs, Symbol: symbol, Tf: tf, Entity: c.Ref.Kind, Event: types.JournalCreated,
		ID: c.Ref.ID, Type: c.Type, Direction: c.Direction, Role: c.Role,
		PriceMin: c.PriceMin, PriceMax: c.PriceMax, Level: c.Level,
	}
}

func touchedEvent(symbol, tf string, c CurrentEntity, nowMs int64, late bool) types.JournalEvent {
	return types.JournalEvent{
		TsMs: nowMs, Symbol: symbol, Tf: tf, Entity: c.Ref.Kind, Event: types.JournalTouched,
		ID: c.Ref.ID, Type: c.Type, Direction: c.Direction, Role: c.Role,
		PriceMin: c.PriceMin, PriceMax: c.PriceMax, Level: c.Level,
		Ctx: types.JournalEventCtx{Late: late},
	}
}

func removedEvent(symbol, tf string, st types.JournalEntityState, reason types.RemovalReason, sub types.RemovalSubReason, nowMs int64, mergedInto types.EntityRef) types.JournalEvent {
	var mergedFrom []string
	if mergedInto.ID != "" {
		mergedFrom = []string{mergedInto.ID}
	}
	return types.JournalEvent{
		TsMs: nowMs, Symbol: symbol, Tf: tf, Entity: st.Ref.Kind, Event: types.JournalRemoved,
		ID: st.Ref.ID,
		Ctx: types.JournalEventCtx{
			Reason: reason, ReasonSub: sub,
			LifetimeBars: st.LastSeenStep - st.CreatedStep,
			MergedFrom:   mergedFrom,
			RemovedMs:    nowMs,
		},
	}
}
