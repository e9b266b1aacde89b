// Package execution implements subsystem 4: fast-timeframe micro-events —
// SWEEP, MICRO_BOS, MICRO_CHOCH, RETEST_OK — emitted only while price is
// "in play" around an active POI (liquidity pools and targets do not open
// the gate). Grounded on the
// teacher's gate-then-detect pipeline in internal/domain/gates/evaluate.go:
// a cheap boolean gate runs first, and the (more expensive) event detectors
// only run for symbols that pass it.
package execution

import "github.com/sawpanic/smc-core/internal/smc/types"

// InPlay reports whether lastClose sits within radiusAtr*atr of any POI's
// nearest edge — the gate that decides whether execution events are even
// worth computing for this bar.
func InPlay(lastClose, atrValue float64, atrAvailable bool, pois []types.POI, radiusAtr float64) (bool, string) {
	if !atrAvailable || atrValue <= 0 {
		return false, "atr_unavailable"
	}
	if len(pois) == 0 {
		return false, "no_poi"
	}
	radius := radiusAtr * atrValue
	for _, poi := range pois {
		dist := distanceToZone(lastClose, poi.Zone)
		if dist <= radius {
			return true, ""
		}
	}
	return false, "out_of_radius"
}

func distanceToZone(price float64, z types.Zone) float64 {
	if price < z.PriceMin {
		return z.PriceMin - price
	}
	if price > z.PriceMax {
		return price - z.PriceMax
	}
	return 0
}

// NearestPOI returns the POI with the smallest distance to lastClose.
func NearestPOI(lastClose float64, pois []types.POI) (types.POI, bool) {
	if len(pois) == 0 {
		return types.POI{}, false
	}
	best := pois[0]
	bestDist := distanceToZone(lastClose, best.Zone)
	for _, p := range pois[1:] {
		d := distanceToZone(lastClose, p.Zone)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}
