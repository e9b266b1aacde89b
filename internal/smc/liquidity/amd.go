package liquidity

import (
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// AMDPhase classifies the prevailing Accumulation/Manipulation/Distribution
// phase, first match wins: no active range reads as NEUTRAL; any SFP event
// reads as MANIPULATION; an UP or DOWN trend reads as DISTRIBUTION; a calm
// market (current ATR within calmAtrMedianMult of its trailing median)
// reads as ACCUMULATION; anything else is NEUTRAL. Where price sits in the
// range, BOS events, pools and wick clusters are not consulted. Grounded on the three-state majority-vote FSM in
// internal/domain/regime/detector.go, generalized to this phase taxonomy.
func AMDPhase(atr ohlcv.ATRResult, rng *types.Range, sfps []types.SfpEvent, trend types.SmcTrend, calmAtrMedianMult float64) (types.SmcAmdPhase, string) {
	if rng == nil {
		return types.AmdNeutral, "no_active_range"
	}
	if len(sfps) > 0 {
		return types.AmdManipulation, "sfp_detected_in_range"
	}
	if trend == types.TrendUp || trend == types.TrendDown {
		return types.AmdDistribution, "trend_confirmed_break"
	}
	if atr.Available && atr.Value <= atr.Median*calmAtrMedianMult {
		return types.AmdAccumulation, "calm_range_bound"
	}
	return types.AmdNeutral, "no_clear_phase"
}
