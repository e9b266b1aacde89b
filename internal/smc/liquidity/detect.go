package liquidity

import (
	"sort"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Detect runs the full liquidity pipeline over a prepared frame and the
// structure detector's output: pool discovery (equal highs/lows, range
// extremes, session extremes, trendline liquidity), SFP and wick-cluster scans, role assignment, throttling, the AMD
// phase, magnets and ranked targets.
func Detect(cfg config.LiquidityConfig, bars []types.Bar, structureState types.StructureState, prevWickClusters []types.WickCluster, sessionBars int, nowMs int64) types.LiquidityState {
	if len(bars) == 0 {
		return types.LiquidityState{AmdPhase: types.AmdNeutral, AmdReason: "empty_frame"}
	}

	atr := ohlcv.ATRResult{Value: structureState.ATR14, Median: structureState.AtrMedian, Available: structureState.ATRAvailable}
	lastClose := bars[len(bars)-1].Close

	var pools []types.LiquidityPool
	pools = append(pools, DetectEqualHighsLows(structureState.Swings, cfg.EqTolerancePct)...)
	pools = append(pools, DetectRangeExtremes(structureState.ActiveRange)...)
	pools = append(pools, DetectSessionExtremes(bars, sessionBars)...)
	pools = append(pools, DetectTrendlineLiquidity(structureState.Swings, structureState.Trend)...)

	pools = AssignRoles(pools, lastClose, structureState.Bias)
	pools = throttle(pools, cfg.TopKPerType, cfg.GlobalCap)

	levels := PoolLevels(pools)
	sfps := DetectSFPs(bars, levels, "pool", cfg.MinBreakPct)

	wickClusters := DetectWickClusters(bars, atr, prevWickClusters, cfg.WickRatio, cfg.WickMinLifeBars, cfg.WickMinDensity, cfg.WickMinAmplitudeAtr, cfg.WickClusterTolPct, cfg.WickClusterMaxMoveAtr)

	amdPhase, amdReason := AMDPhase(atr, structureState.ActiveRange, sfps, structureState.Trend, cfg.CalmAtrMedianMult)

	magnets := BuildMagnets(pools, cfg.MagnetTolerancePct)
	internal, external, reasons := BuildTargets(pools, structureState.ActiveRange, lastClose, nowMs, cfg.MaxLiquidityTargets)

	return types.LiquidityState{
		Pools: pools, Magnets: magnets, AmdPhase: amdPhase, AmdReason: amdReason,
		SfpEvents: sfps, WickClusters: wickClusters,
		InternalTargets: internal, ExternalTargets: external, TargetReasons: reasons,
	}
}

// throttle keeps the top-K pools per liquidity type by strength, then caps
// the combined total at globalCap, preferring the strongest pools overall.
func throttle(pools []types.LiquidityPool, topKPerType, globalCap int) []types.LiquidityPool {
	byType := make(map[types.SmcLiquidityType][]types.LiquidityPool)
	for _, p := range pools {
		byType[p.LiqType] = append(byType[p.LiqType], p)
	}

	var kept []types.LiquidityPool
	for _, group := range byType {
		sort.Slice(group, func(i, j int) bool { return group[i].Strength > group[j].Strength })
		if topKPerType > 0 && len(group) > topKPerType {
			group = group[:topKPerType]
		}
		kept = append(kept, group...)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Strength != kept[j].Strength {
			return kept[i].Strength > kept[j].Strength
		}
		return kept[i].Level < kept[j].Level
	})
	if globalCap > 0 && len(kept) > globalCap {
		kept = kept[:globalCap]
	}
	return kept
}
