package zones

import (
	"fmt"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// DetectBreakers promotes an Order Block to a Breaker once a bar closes
// through it against the OB's direction: the OB must still be within
// maxOBAgeMin, the first such breaking bar must open within
// maxSweepDelayMin of the OB's origin, and it needs displacement and body
// strength above the configured minimums. No separate sweep of liquidity
// is checked for. A
// Breaker flips direction relative to its source OB — a broken bullish OB
// becomes bearish resistance.
func DetectBreakers(bars []types.Bar, obZones []types.Zone, atrValue float64, atrAvailable bool, maxSweepDelayMin, maxOBAgeMin int, minDisplacementAtr, minBodyPct float64) []types.Zone {
	if len(bars) == 0 {
		return nil
	}
	minDisp := 0.0
	if atrAvailable {
		minDisp = minDisplacementAtr * atrValue
	}
	lastBar := bars[len(bars)-1]

	var breakers []types.Zone
	for _, ob := range obZones {
		ageMin := float64(lastBar.OpenTimeMs-ob.OriginTimeMs) / 60000
		if ageMin > float64(maxOBAgeMin) {
			continue
		}
		_, breakBar, ok := firstBreakingBar(bars, ob)
		if !ok {
			continue
		}
		delayMin := float64(breakBar.OpenTimeMs-ob.OriginTimeMs) / 60000
		if delayMin > float64(maxSweepDelayMin) {
			continue
		}

		body := breakBar.Close - breakBar.Open
		if body < 0 {
			body = -body
		}
		span := breakBar.High - breakBar.Low
		bodyPct := 0.0
		if span > 0 {
			bodyPct = body / span
		}
		displacement := body
		if displacement < minDisp || bodyPct < minBodyPct {
			continue
		}

		newDir := types.DirectionShort
		if ob.Direction == types.DirectionShort {
			newDir = types.DirectionLong
		}

		breakers = append(breakers, types.Zone{
			ZoneID:       fmt.Sprintf("breaker_%d_%s", breakBar.OpenTimeMs, newDir),
			ZoneType:     types.ZoneBreaker,
			PriceMin:     ob.PriceMin, PriceMax: ob.PriceMax,
			OriginTimeMs: breakBar.OpenTimeMs, Direction: newDir,
			Strength:     displacement, Confidence: bodyPct,
			Components:   append([]string{}, ob.ZoneID),
			EntryMode:    entryModeForBodyShare(bodyPct, 0.65, 0.25),
			Quality:      qualityForBodyShare(bodyPct, 0.65, 0.25),
		})
	}
	return breakers
}

// firstBreakingBar finds the first bar after the OB's origin whose close
// crosses fully through the zone in the direction opposing the OB.
func firstBreakingBar(bars []types.Bar, ob types.Zone) (int, types.Bar, bool) {
	for i, b := range bars {
		if b.OpenTimeMs <= ob.OriginTimeMs {
			continue
		}
		if ob.Direction == types.DirectionLong && b.Close < ob.PriceMin {
			return i, b, true
		}
		if ob.Direction == types.DirectionShort && b.Close > ob.PriceMax {
			return i, b, true
		}
	}
	return 0, types.Bar{}, false
}
