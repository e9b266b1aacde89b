// Package liquidity implements subsystem 2: clustering swing extremes into
// resting-liquidity pools (equal highs/lows, trendline and session
// liquidity, range extremes), SFP and wick-cluster detection, the AMD phase
// FSM and ranked liquidity targets. Grounded on the teacher's clustering
// style in internal/domain/microstructure.go (tolerance-banded grouping
// over a sorted slice) and the regime FSM in
// internal/domain/regime/detector.go for the AMD state machine.
package liquidity

import (
	"sort"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// DetectEqualHighsLows clusters swing highs (resp. lows) within
// tolerancePct of each other into EQH/EQL pools. A cluster needs at least
// two swings to count as "equal" liquidity; a lone extremum is not a pool.
func DetectEqualHighsLows(swings []types.Swing, tolerancePct float64) []types.LiquidityPool {
	highs := filterKind(swings, types.SwingHigh)
	lows := filterKind(swings, types.SwingLow)

	var pools []types.LiquidityPool
	pools = append(pools, clusterLevels(highs, tolerancePct, types.LiqEQH)...)
	pools = append(pools, clusterLevels(lows, tolerancePct, types.LiqEQL)...)
	return pools
}

func filterKind(swings []types.Swing, kind types.SwingKind) []types.Swing {
	out := make([]types.Swing, 0, len(swings))
	for _, s := range swings {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// clusterLevels groups price-sorted swings into tolerance bands and emits
// one pool per band with >= 2 members.
func clusterLevels(swings []types.Swing, tolerancePct float64, liqType types.SmcLiquidityType) []types.LiquidityPool {
	if len(swings) < 2 {
		return nil
	}
	sorted := append([]types.Swing(nil), swings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	var pools []types.LiquidityPool
	var bucket []types.Swing
	flush := func() {
		if len(bucket) < 2 {
			return
		}
		pools = append(pools, poolFromCluster(bucket, liqType))
	}

	bucket = append(bucket, sorted[0])
	for i := 1; i < len(sorted); i++ {
		ref := bucket[0].Price
		tol := tolerancePct * ref
		if sorted[i].Price-ref <= tol {
			bucket = append(bucket, sorted[i])
			continue
		}
		flush()
		bucket = []types.Swing{sorted[i]}
	}
	flush()
	return pools
}

func poolFromCluster(members []types.Swing, liqType types.SmcLiquidityType) types.LiquidityPool {
	sum := 0.0
	first, last := members[0].TimeMs, members[0].TimeMs
	for _, m := range members {
		sum += m.Price
		if m.TimeMs < first {
			first = m.TimeMs
		}
		if m.TimeMs > last {
			last = m.TimeMs
		}
	}
	return types.LiquidityPool{
		Level: sum / float64(len(members)), LiqType: liqType,
		Strength: float64(len(members)), NTouches: len(members),
		FirstTimeMs: first, LastTimeMs: last,
		SourceSwings: members, Role: types.RoleNeutral,
	}
}

// DetectRangeExtremes emits a single RANGE_EXTREME pool at each end of the
// active dealing range, when one exists.
func DetectRangeExtremes(rng *types.Range) []types.LiquidityPool {
	if rng == nil {
		return nil
	}
	return []types.LiquidityPool{
		{Level: rng.High, LiqType: types.LiqRangeExtreme, Strength: 1, NTouches: 1, FirstTimeMs: rng.StartMs, LastTimeMs: rng.EndMs, Role: types.RoleNeutral},
		{Level: rng.Low, LiqType: types.LiqRangeExtreme, Strength: 1, NTouches: 1, FirstTimeMs: rng.StartMs, LastTimeMs: rng.EndMs, Role: types.RoleNeutral},
	}
}

// DetectSessionExtremes emits SESSION_HIGH/SESSION_LOW pools over the
// trailing sessionBars window, approximating a fixed session boundary
// (spec.md §4.2 leaves session definition to the caller's calendar; this
// uses the most recent N-bar window as the session proxy).
func DetectSessionExtremes(bars []types.Bar, sessionBars int) []types.LiquidityPool {
	if len(bars) == 0 {
		return nil
	}
	if sessionBars <= 0 || sessionBars > len(bars) {
		sessionBars = len(bars)
	}
	window := bars[len(bars)-sessionBars:]
	high, low := window[0].High, window[0].Low
	for _, b := range window[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return []types.LiquidityPool{
		{Level: high, LiqType: types.LiqSessionHigh, Strength: 1, NTouches: 1, FirstTimeMs: window[0].OpenTimeMs, LastTimeMs: window[len(window)-1].OpenTimeMs, Role: types.RoleNeutral},
		{Level: low, LiqType: types.LiqSessionLow, Strength: 1, NTouches: 1, FirstTimeMs: window[0].OpenTimeMs, LastTimeMs: window[len(window)-1].OpenTimeMs, Role: types.RoleNeutral},
	}
}

// DetectTrendlineLiquidity approximates TLQ/SLQ as one flat pool at the
// average price of the last three same-kind swings; no sloped line is
// fitted or projected. LOW-kind swings in an uptrend give TLQ (trend support liquidity
// resting below), HIGH-kind swings in a downtrend give SLQ (supply
// liquidity resting above).
func DetectTrendlineLiquidity(swings []types.Swing, trend types.SmcTrend) []types.LiquidityPool {
	var kind types.SwingKind
	var liqType types.SmcLiquidityType
	switch trend {
	case types.TrendUp:
		kind, liqType = types.SwingLow, types.LiqTLQ
	case types.TrendDown:
		kind, liqType = types.SwingHigh, types.LiqSLQ
	default:
		return nil
	}

	members := filterKind(swings, kind)
	if len(members) < 3 {
		return nil
	}
	tail := members[len(members)-3:]
	avg := (tail[0].Price + tail[1].Price + tail[2].Price) / 3
	return []types.LiquidityPool{{
		Level: avg, LiqType: liqType, Strength: 3, NTouches: 3,
		FirstTimeMs: tail[0].TimeMs, LastTimeMs: tail[2].TimeMs,
		SourceSwings: tail, Role: types.RoleNeutral,
	}}
}

// AssignRoles tags every pool PRIMARY when it sits on the bias side (a
// short bias treats pools above price as primary sell-side liquidity, and
// vice versa), COUNTERTREND otherwise. With a neutral bias every pool keeps
// the role it came in with.
func AssignRoles(pools []types.LiquidityPool, lastClose float64, bias types.Direction) []types.LiquidityPool {
	out := make([]types.LiquidityPool, len(pools))
	for i, p := range pools {
		above := p.Level > lastClose
		primary := (bias == types.DirectionShort && above) || (bias == types.DirectionLong && !above)
		if primary {
			p.Role = types.RolePrimary
		} else if bias != types.DirectionNeutral {
			p.Role = types.RoleCountertrend
		}
		out[i] = p
	}
	return out
}
