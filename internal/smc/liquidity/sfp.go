package liquidity

import "github.com/sawpanic/smc-core/internal/smc/types"

// DetectSFPs scans bars against a set of levels for a Swing Failure
// Pattern: a bar's wick pierces the level by at least minBreakPct (as a
// fraction of the level) but its close snaps back across it, signaling a liquidity sweep rather than a
// genuine break. Direction is SHORT when the sweep is above a level
// (failed breakout, sellers took control) and LONG when below.
func DetectSFPs(bars []types.Bar, levels []float64, source string, minBreakPct float64) []types.SfpEvent {
	var out []types.SfpEvent
	for _, bar := range bars {
		for _, level := range levels {
			if level <= 0 {
				continue
			}
			if bar.High > level && bar.Close < level && (bar.High-level)/level >= minBreakPct {
				out = append(out, types.SfpEvent{Level: level, Source: source, TimeMs: bar.OpenTimeMs, Direction: types.DirectionShort})
			}
			if bar.Low < level && bar.Close > level && (level-bar.Low)/level >= minBreakPct {
				out = append(out, types.SfpEvent{Level: level, Source: source, TimeMs: bar.OpenTimeMs, Direction: types.DirectionLong})
			}
		}
	}
	return out
}

// PoolLevels extracts the bare price levels from a pool slice, the shape
// DetectSFPs needs.
func PoolLevels(pools []types.LiquidityPool) []float64 {
	levels := make([]float64, len(pools))
	for i, p := range pools {
		levels[i] = p.Level
	}
	return levels
}
