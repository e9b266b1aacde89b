// Package structure implements subsystem 1: swings -> legs -> trend ->
// BOS/CHOCH -> dealing range -> OTE zones -> bias, over a single primary
// timeframe. Every function here is a pure computation over an immutable
// bar slice; the only stateful piece is the event-history store in
// history.go, which mirrors the teacher's per-symbol cache ownership model
// (internal/domain/regime/detector.go's lastDetection field, generalized to
// a shared LRU+TTL map per spec.md §4.1).
package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// DetectSwings finds symmetric-window local extrema on H/L. window is
// max(1, min_swing_bars); a bar at position i qualifies as a HIGH when
// high[i] >= max(high[i-window..i+window]) excluding the center (ties are
// inclusive on both sides), and symmetrically for LOW.
func DetectSwings(bars []types.Bar, window int) []types.Swing {
	if window < 1 {
		window = 1
	}
	n := len(bars)
	var swings []types.Swing
	for i := window; i < n-window; i++ {
		if isSwingHigh(bars, i, window) {
			swings = append(swings, types.Swing{
				Index: i, TimeMs: bars[i].OpenTimeMs, Price: bars[i].High,
				Kind: types.SwingHigh, Strength: window,
			})
		}
		if isSwingLow(bars, i, window) {
			swings = append(swings, types.Swing{
				Index: i, TimeMs: bars[i].OpenTimeMs, Price: bars[i].Low,
				Kind: types.SwingLow, Strength: window,
			})
		}
	}
	return swings
}

func isSwingHigh(bars []types.Bar, i, window int) bool {
	h := bars[i].High
	for j := i - window; j <= i+window; j++ {
		if j == i {
			continue
		}
		if bars[j].High > h {
			return false
		}
	}
	return true
}

func isSwingLow(bars []types.Bar, i, window int) bool {
	l := bars[i].Low
	for j := i - window; j <= i+window; j++ {
		if j == i {
			continue
		}
		if bars[j].Low < l {
			return false
		}
	}
	return true
}
