package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// Threshold resolves the BOS/CHOCH break threshold in price units: the
// larger of k_atr * atr and k_pct * refPrice when ATR is available,
// otherwise k_pct * refPrice alone (spec.md §7: ATR unavailable degrades
// thresholds to their pct component rather than erroring).
func Threshold(atrAvailable bool, atrValue, refPrice, kAtr, kPct float64) float64 {
	if atrAvailable {
		return max(kAtr*atrValue, kPct*refPrice)
	}
	return kPct * refPrice
}

// DetectEvents walks labeled legs in order and classifies each qualifying
// break as BOS (continuation of the prevailing trend) or CHOCH (the first
// break against it, which also flips the trend used for subsequent legs).
// A leg only counts once its amplitude clears threshold; sub-threshold
// legs are structure noise and produce no event.
func DetectEvents(legs []types.Leg, threshold float64) []types.StructureEvent {
	var events []types.StructureEvent
	trend := types.TrendUnknown

	labeled := make([]types.Leg, 0, len(legs))
	for _, l := range legs {
		if l.Label != types.LegUndefined {
			labeled = append(labeled, l)
		}
	}

	for i, leg := range labeled {
		if leg.Amplitude() < threshold {
			continue
		}
		if i < 1 {
			// first labeled leg only seeds the trend, it cannot itself
			// break an established structure.
			trend = trendFromLabel(leg.Label, trend)
			continue
		}

		switch {
		case trend == types.TrendUp && leg.Label == types.LegHH:
			events = append(events, newEvent(types.EventBOS, types.DirectionLong, leg))
		case trend == types.TrendDown && leg.Label == types.LegLL:
			events = append(events, newEvent(types.EventBOS, types.DirectionShort, leg))
		case trend == types.TrendDown && leg.Label == types.LegHL:
			events = append(events, newEvent(types.EventCHOCH, types.DirectionLong, leg))
			trend = types.TrendUp
		case trend == types.TrendUp && leg.Label == types.LegLH:
			events = append(events, newEvent(types.EventCHOCH, types.DirectionShort, leg))
			trend = types.TrendDown
		case trend == types.TrendUnknown || trend == types.TrendRange:
			trend = trendFromLabel(leg.Label, trend)
		}
	}
	return events
}

func trendFromLabel(l types.LegLabel, fallback types.SmcTrend) types.SmcTrend {
	switch l {
	case types.LegHH, types.LegHL:
		return types.TrendUp
	case types.LegLL, types.LegLH:
		return types.TrendDown
	default:
		return fallback
	}
}

func newEvent(kind types.StructureEventType, dir types.Direction, leg types.Leg) types.StructureEvent {
	return types.StructureEvent{
		EventType:  kind,
		Direction:  dir,
		PriceLevel: leg.To.Price,
		TimeMs:     leg.To.TimeMs,
		SourceLeg:  leg,
	}
}
