package structure

import (
	"sync"
	"time"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// HistoryStore is the one piece of process-wide state the structure
// detector owns: a per-(symbol, timeframe) map of recently observed
// structure events, used to dedupe repeated BOS/CHOCH firings on overlapping
// recompute windows and to bound memory with a TTL plus a hard entry cap.
// Grounded on the teacher's regime cache in internal/domain/regime/detector.go
// (a single mutex-guarded map keyed by symbol, pruned on every call).
type HistoryStore struct {
	mu      sync.Mutex
	entries map[string]map[types.EventHistoryKey]types.EventHistoryEntry
}

// NewHistoryStore constructs an empty store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{entries: make(map[string]map[types.EventHistoryKey]types.EventHistoryEntry)}
}

func seriesKey(symbol, timeframe string) string { return symbol + "|" + timeframe }

// Reconcile merges newly detected events into the (symbol, timeframe)
// history, drops entries older than retention, evicts the oldest entries
// past maxEntries, and returns only the events not already in the history
// (an event seen before only has its LastSeen refreshed; the caller still gets the full current events list separately;
// this return value exists for callers that only want to journal novel
// firings).
func (s *HistoryStore) Reconcile(symbol, timeframe string, events []types.StructureEvent, now time.Time, retention time.Duration, maxEntries int) []types.StructureEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := seriesKey(symbol, timeframe)
	series, ok := s.entries[key]
	if !ok {
		series = make(map[types.EventHistoryKey]types.EventHistoryEntry)
		s.entries[key] = series
	}

	var fresh []types.StructureEvent
	for _, ev := range events {
		k := types.EventHistoryKey{EventType: ev.EventType, Direction: ev.Direction, TimeMs: ev.TimeMs, PriceLevel: ev.PriceLevel}
		if entry, seen := series[k]; seen {
			entry.LastSeen = now
			series[k] = entry
			continue
		}
		series[k] = types.EventHistoryEntry{FirstSeen: now, LastSeen: now}
		fresh = append(fresh, ev)
	}

	for k, entry := range series {
		if now.Sub(entry.LastSeen) > retention {
			delete(series, k)
		}
	}

	if maxEntries > 0 && len(series) > maxEntries {
		evictOldest(series, len(series)-maxEntries)
	}

	return fresh
}

// evictOldest removes the n entries with the oldest FirstSeen timestamp.
func evictOldest(series map[types.EventHistoryKey]types.EventHistoryEntry, n int) {
	type agedKey struct {
		key   types.EventHistoryKey
		first time.Time
	}
	aged := make([]agedKey, 0, len(series))
	for k, v := range series {
		aged = append(aged, agedKey{k, v.FirstSeen})
	}
	for i := 1; i < len(aged); i++ {
		j := i
		for j > 0 && aged[j].first.Before(aged[j-1].first) {
			aged[j], aged[j-1] = aged[j-1], aged[j]
			j--
		}
	}
	for i := 0; i < n && i < len(aged); i++ {
		delete(series, aged[i].key)
	}
}
