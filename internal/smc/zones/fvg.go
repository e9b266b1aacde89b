package zones

import (
	"fmt"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// DetectFVGs scans consecutive bar triples for a three-candle imbalance:
// bar[i-1].High < bar[i+1].Low (bullish gap) or bar[i-1].Low >
// bar[i+1].High (bearish gap), surviving only when the gap clears both the
// ATR and pct minimums and the triple's middle bar is no older than
// maxAgeMin relative to the last bar.
func DetectFVGs(bars []types.Bar, atrValue float64, atrAvailable bool, minGapAtr, minGapPct float64, maxAgeMin int) []types.Zone {
	if len(bars) < 3 {
		return nil
	}
	minGapAbs := 0.0
	lastTime := bars[len(bars)-1].OpenTimeMs

	var zones []types.Zone
	for i := 1; i < len(bars)-1; i++ {
		prev, mid, next := bars[i-1], bars[i], bars[i+1]
		ageMin := float64(lastTime-mid.OpenTimeMs) / 60000
		if ageMin > float64(maxAgeMin) {
			continue
		}
		refPrice := mid.Close
		if atrAvailable {
			minGapAbs = minGapAtr * atrValue
		}
		minGapAbsPct := minGapPct * refPrice
		floor := minGapAbs
		if minGapAbsPct > floor {
			floor = minGapAbsPct
		}

		if gap := next.Low - prev.High; gap >= floor {
			zones = append(zones, fvgZone(mid, prev.High, next.Low, types.DirectionLong))
		}
		if gap := prev.Low - next.High; gap >= floor {
			zones = append(zones, fvgZone(mid, next.High, prev.Low, types.DirectionShort))
		}
	}
	return zones
}

func fvgZone(mid types.Bar, low, high float64, dir types.Direction) types.Zone {
	return types.Zone{
		ZoneID:       fmt.Sprintf("fvg_%d_%s", mid.OpenTimeMs, dir),
		ZoneType:     types.ZoneImbalance,
		PriceMin:     low, PriceMax: high,
		OriginTimeMs: mid.OpenTimeMs, Direction: dir,
		Strength:     high - low, Confidence: 1.0,
		EntryMode:    types.EntryBody05, Quality: types.QualityMedium,
	}
}
