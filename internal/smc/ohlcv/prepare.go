// Package ohlcv normalizes raw bar frames before any subsystem touches
// them: drop incomplete leading bars, sort by open time, dedup keep-first,
// and compute ATR(14). Grounded on the teacher's indicator/validation style
// (internal/domain/indicators/technical.go, internal/quality/validator.go in
// the pristine _examples copy) — never raises, only drops or degrades.
package ohlcv

import (
	"sort"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Frame is a prepared, validated bar sequence for one timeframe.
type Frame struct {
	Bars   []types.Bar
	Reason string // non-empty when the frame is empty or degenerate
}

// Prepare validates, sorts and dedups a raw bar slice per spec.md §4.1:
// "drop incomplete leading bars, sort by open_time, normalize timestamp to
// UTC... duplicates resolved keep-first on ties." Never panics; a fully
// malformed input yields an empty Frame with Reason set.
func Prepare(raw []types.Bar) Frame {
	if len(raw) == 0 {
		return Frame{Reason: "empty_frame"}
	}

	clean := make([]types.Bar, 0, len(raw))
	for _, b := range raw {
		if !b.Valid() {
			continue
		}
		clean = append(clean, b)
	}
	if len(clean) == 0 {
		return Frame{Reason: "no_valid_bars"}
	}

	sort.SliceStable(clean, func(i, j int) bool {
		return clean[i].OpenTimeMs < clean[j].OpenTimeMs
	})

	deduped := make([]types.Bar, 0, len(clean))
	var lastOpen int64
	haveLast := false
	for _, b := range clean {
		if haveLast && b.OpenTimeMs == lastOpen {
			continue // keep-first on duplicate open_time
		}
		deduped = append(deduped, b)
		lastOpen = b.OpenTimeMs
		haveLast = true
	}

	dropLeadingIncomplete(&deduped)

	if len(deduped) == 0 {
		return Frame{Reason: "all_incomplete"}
	}
	return Frame{Bars: deduped}
}

// dropLeadingIncomplete removes a run of incomplete bars at the head of the
// sequence (an in-progress first bar carried over from a prior fetch), but
// leaves a trailing incomplete bar alone — it is the "current" preview bar.
func dropLeadingIncomplete(bars *[]types.Bar) {
	b := *bars
	i := 0
	for i < len(b)-1 && !b[i].IsComplete() {
		i++
	}
	*bars = b[i:]
}

// Empty reports whether the frame has no usable bars.
func (f Frame) Empty() bool { return len(f.Bars) == 0 }
