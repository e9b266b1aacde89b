package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// ActiveRange computes the dealing range over the trailing window bars:
// high/low extremes, the midpoint as eq_level, and where the last close
// sits relative to that midpoint within tolerancePct.
func ActiveRange(bars []types.Bar, window int, tolerancePct float64) *types.Range {
	if len(bars) == 0 {
		return nil
	}
	if window <= 0 || window > len(bars) {
		window = len(bars)
	}
	slice := bars[len(bars)-window:]

	high, low := slice[0].High, slice[0].Low
	for _, b := range slice[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	eq := (high + low) / 2

	lastClose := slice[len(slice)-1].Close
	span := high - low
	state := types.RangeInside
	if span > 0 {
		tol := tolerancePct * span
		switch {
		case lastClose > eq+tol:
			state = types.RangeDevUp
		case lastClose < eq-tol:
			state = types.RangeDevDown
		}
	}

	return &types.Range{
		High: high, Low: low, EqLevel: eq,
		StartMs: slice[0].OpenTimeMs, EndMs: slice[len(slice)-1].OpenTimeMs,
		State: state,
	}
}
