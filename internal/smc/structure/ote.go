package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// DetectOteZones builds the 62-79% retracement band for every labeled leg
// whose amplitude clears legMinAtr*atr, tagging each zone PRIMARY when its
// direction matches bias, COUNTERTREND otherwise. trendOnly restricts
// candidates to legs whose direction agrees with trend (spec.md §4.1's
// "ote_trend_only" knob); maxActivePerSide caps how many zones per
// direction survive, keeping the most recent.
func DetectOteZones(legs []types.Leg, bias types.Direction, trend types.SmcTrend, minAmp float64, trendOnly bool, maxActivePerSide int) []types.OteZone {
	var longZones, shortZones []types.OteZone

	for _, leg := range legs {
		if leg.Label == types.LegUndefined || leg.Amplitude() < minAmp {
			continue
		}
		dir, ok := legDirection(leg.Label)
		if !ok {
			continue
		}
		if trendOnly && !trendAgrees(trend, dir) {
			continue
		}

		role := types.OteRoleCountertrend
		if dir == bias {
			role = types.OteRolePrimary
		}
		zoneMin, zoneMax := oteBand(leg, dir)
		zone := types.OteZone{Leg: leg, OteMin: zoneMin, OteMax: zoneMax, Direction: dir, Role: role}

		if dir == types.DirectionLong {
			longZones = append(longZones, zone)
		} else {
			shortZones = append(shortZones, zone)
		}
	}

	longZones = capRecent(longZones, maxActivePerSide)
	shortZones = capRecent(shortZones, maxActivePerSide)
	return append(longZones, shortZones...)
}

// legDirection maps a leg label to the directional bias it represents: a
// HH or HL arrival is bullish (price is expected to retrace down into the
// OTE band before continuing up); LL/LH is bearish.
func legDirection(label types.LegLabel) (types.Direction, bool) {
	switch label {
	case types.LegHH, types.LegHL:
		return types.DirectionLong, true
	case types.LegLL, types.LegLH:
		return types.DirectionShort, true
	default:
		return types.DirectionNeutral, false
	}
}

func trendAgrees(trend types.SmcTrend, dir types.Direction) bool {
	switch trend {
	case types.TrendUp:
		return dir == types.DirectionLong
	case types.TrendDown:
		return dir == types.DirectionShort
	default:
		return false
	}
}

// oteBand computes the 62-79% retracement band. For a bullish leg the band
// sits below the leg's higher end; for a bearish leg it sits above the
// leg's lower end.
func oteBand(leg types.Leg, dir types.Direction) (float64, float64) {
	const oteMinRatio, oteMaxRatio = 0.62, 0.79
	amp := leg.Amplitude()
	if dir == types.DirectionLong {
		high := max(leg.From.Price, leg.To.Price)
		return high - amp*oteMaxRatio, high - amp*oteMinRatio
	}
	low := min(leg.From.Price, leg.To.Price)
	return low + amp*oteMinRatio, low + amp*oteMaxRatio
}

// capRecent keeps at most n zones, preferring the most recently formed
// (highest leg.To.Index).
func capRecent(zones []types.OteZone, n int) []types.OteZone {
	if n <= 0 || len(zones) <= n {
		return zones
	}
	for i := 1; i < len(zones); i++ {
		j := i
		for j > 0 && zones[j].Leg.To.Index > zones[j-1].Leg.To.Index {
			zones[j], zones[j-1] = zones[j-1], zones[j]
			j--
		}
	}
	return zones[:n]
}
