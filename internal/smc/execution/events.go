package execution

import (
	"github.com/sawpanic/smc-core/internal/smc/structure"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// DetectSweep looks for a wick through the nearest POI/pool edge that
// closes back inside it with impulse (the move's range clearing
// sweepImpulseKAtr*atr) — the fast-timeframe analogue of a liquidity SFP,
// scoped to the level currently in play.
func DetectSweep(bars []types.Bar, poi types.POI, atrValue float64, atrAvailable bool, sweepImpulseKAtr float64) *types.ExecutionEvent {
	if len(bars) == 0 {
		return nil
	}
	minImpulse := 0.0
	if atrAvailable {
		minImpulse = sweepImpulseKAtr * atrValue
	}
	last := bars[len(bars)-1]
	impulse := last.High - last.Low

	if last.High > poi.Zone.PriceMax && last.Close < poi.Zone.PriceMax && impulse >= minImpulse {
		return &types.ExecutionEvent{
			EventType: types.SignalSweep, Direction: types.DirectionShort,
			TimeMs: last.OpenTimeMs, Price: last.Close, Level: poi.Zone.PriceMax,
			Ref: types.RefPOI, POIZoneID: poi.Zone.ZoneID,
		}
	}
	if last.Low < poi.Zone.PriceMin && last.Close > poi.Zone.PriceMin && impulse >= minImpulse {
		return &types.ExecutionEvent{
			EventType: types.SignalSweep, Direction: types.DirectionLong,
			TimeMs: last.OpenTimeMs, Price: last.Close, Level: poi.Zone.PriceMin,
			Ref: types.RefPOI, POIZoneID: poi.Zone.ZoneID,
		}
	}
	return nil
}

// DetectMicroStructureEvents runs the structure detector's swing/leg/event
// pipeline on the fast-timeframe bars themselves and relabels its BOS/CHOCH
// output as MICRO_BOS/MICRO_CHOCH, referencing the in-play POI.
func DetectMicroStructureEvents(bars []types.Bar, poi types.POI, atrValue float64, atrAvailable bool, pivotWindow int, bosKAtr, bosKPct float64) []types.ExecutionEvent {
	if len(bars) < 2*pivotWindow+1 {
		return nil
	}
	swings := structure.DetectSwings(bars, pivotWindow)
	legs := structure.BuildLegs(swings)
	lastClose := bars[len(bars)-1].Close
	threshold := structure.Threshold(atrAvailable, atrValue, lastClose, bosKAtr, bosKPct)
	structEvents := structure.DetectEvents(legs, threshold)

	out := make([]types.ExecutionEvent, 0, len(structEvents))
	for _, ev := range structEvents {
		kind := types.SignalMicroBOS
		if ev.EventType == types.EventCHOCH {
			kind = types.SignalMicroCHOCH
		}
		out = append(out, types.ExecutionEvent{
			EventType: kind, Direction: ev.Direction, TimeMs: ev.TimeMs,
			Price: ev.PriceLevel, Level: ev.PriceLevel,
			Ref: types.RefPOI, POIZoneID: poi.Zone.ZoneID,
		})
	}
	return out
}

// DetectRetest looks, over the last holdBars bars, for the first bar whose
// high-low range touches the zone (widened by touchEpsilon) without
// closing back through it — confirming the level now holds as support or
// resistance rather than being reclaimed.
func DetectRetest(bars []types.Bar, zone types.Zone, holdBars int, touchEpsilon float64) *types.ExecutionEvent {
	if len(bars) == 0 || holdBars <= 0 {
		return nil
	}
	window := bars
	if len(window) > holdBars {
		window = window[len(window)-holdBars:]
	}
	for _, b := range window {
		touched := touchesZone(b, zone, touchEpsilon)
		holds := (zone.Direction == types.DirectionLong && b.Close >= zone.PriceMin-touchEpsilon) ||
			(zone.Direction == types.DirectionShort && b.Close <= zone.PriceMax+touchEpsilon)
		if touched && holds {
			return &types.ExecutionEvent{
				EventType: types.SignalRetestOK, Direction: zone.Direction,
				TimeMs: b.OpenTimeMs, Price: b.Close, Level: zone.Center(),
				Ref: types.RefPOI, POIZoneID: zone.ZoneID,
			}
		}
	}
	return nil
}

func touchesZone(b types.Bar, zone types.Zone, epsilon float64) bool {
	lo, hi := zone.PriceMin-epsilon, zone.PriceMax+epsilon
	return b.High >= lo && b.Low <= hi
}
