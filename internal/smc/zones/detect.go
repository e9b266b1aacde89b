package zones

import (
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Detect runs the full zones/POI pipeline: Order Blocks, Breakers and
// FVGs, IoU merge, active-zone distance filtering and POI selection.
func Detect(cfg config.ZonesConfig, bars []types.Bar, legs []types.Leg, timeframe string, atrValue float64, atrAvailable bool) types.ZonesState {
	if len(bars) == 0 {
		return types.ZonesState{Meta: map[string]any{"reason": "empty_frame"}}
	}

	obZones := DetectOrderBlocks(bars, legs, atrValue, atrAvailable, cfg.ObLegMinAtr, cfg.ObLegMaxBars, cfg.ObBodyShareStrong, cfg.ObBodyShareWeak)
	breakerZones := DetectBreakers(bars, obZones, atrValue, atrAvailable, cfg.BreakerMaxSweepDelayMin, cfg.BreakerMaxOBAgeMin, cfg.BreakerMinDisplacementAtr, cfg.BreakerMinBodyPct)
	fvgZones := DetectFVGs(bars, atrValue, atrAvailable, cfg.FvgMinGapAtr, cfg.FvgMinGapPct, cfg.FvgMaxAgeMin)

	all := make([]types.Zone, 0, len(obZones)+len(breakerZones)+len(fvgZones))
	all = append(all, obZones...)
	all = append(all, breakerZones...)
	all = append(all, fvgZones...)
	for i := range all {
		all[i].Timeframe = timeframe
	}

	merged := MergeOverlapping(all, cfg.ZoneMergeIoUThreshold)

	lastClose := bars[len(bars)-1].Close
	active := SelectActiveZones(merged, lastClose, atrValue, atrAvailable, cfg.MaxZoneSpanAtr, cfg.ObMaxActiveDistanceAtr)
	pois := SelectPOIs(active, lastClose, cfg.PoiMaxPerSide)

	return types.ZonesState{
		Zones: merged, ActiveZones: active, POIZones: pois,
		Meta: map[string]any{
			"order_blocks": len(obZones), "breakers": len(breakerZones),
			"fvgs": len(fvgZones), "merged_total": len(merged),
		},
	}
}
