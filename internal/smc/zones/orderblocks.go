// Package zones implements subsystem 3: Order Block, Breaker and Fair
// Value Gap detection, active-zone selection, IoU-based merging and
// proximity/why-list POI selection. Grounded on the teacher's candidate
// generation + dedupe pattern in internal/domain/scoring/composite.go
// (many narrow detectors feeding one ranked, deduped output).
package zones

import (
	"fmt"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// DetectOrderBlocks finds, for every leg whose amplitude clears
// legMinAtr*atr within maxBars, the last opposite-colored candle preceding
// the leg's origin — the classic "last down candle before the up-move"
// (and symmetrically for bearish legs).
func DetectOrderBlocks(bars []types.Bar, legs []types.Leg, atrValue float64, atrAvailable bool, legMinAtr float64, maxBars int, bodyStrong, bodyWeak float64) []types.Zone {
	minAmp := 0.0
	if atrAvailable {
		minAmp = legMinAtr * atrValue
	}

	var zones []types.Zone
	for _, leg := range legs {
		if leg.Label == types.LegUndefined || leg.Amplitude() < minAmp {
			continue
		}
		if leg.To.Index-leg.From.Index > maxBars {
			continue
		}
		dir, ok := obDirection(leg.Label)
		if !ok {
			continue
		}

		originIdx := originCandle(bars, leg.From.Index, dir)
		if originIdx < 0 {
			continue
		}
		candle := bars[originIdx]
		bodyTop, bodyBot := candle.Open, candle.Close
		if bodyBot > bodyTop {
			bodyTop, bodyBot = bodyBot, bodyTop
		}
		rangeSpan := candle.High - candle.Low
		bodyShare := 0.0
		if rangeSpan > 0 {
			bodyShare = (bodyTop - bodyBot) / rangeSpan
		}

		zones = append(zones, types.Zone{
			ZoneID:       fmt.Sprintf("ob_%d_%s", candle.OpenTimeMs, dir),
			ZoneType:     types.ZoneOrderBlock,
			PriceMin:     bodyBot, PriceMax: bodyTop,
			OriginTimeMs: candle.OpenTimeMs, Direction: dir,
			Strength:     leg.Amplitude(), Confidence: bodyShare,
			Components:   []string{fmt.Sprintf("leg_%d_%d", leg.From.Index, leg.To.Index)},
			EntryMode:    entryModeForBodyShare(bodyShare, bodyStrong, bodyWeak),
			Quality:      qualityForBodyShare(bodyShare, bodyStrong, bodyWeak),
		})
	}
	return zones
}

// obDirection maps a leg label to the Order Block's expected reaction
// direction: a bullish impulse (HH/HL) leaves a bullish OB below it.
func obDirection(label types.LegLabel) (types.Direction, bool) {
	switch label {
	case types.LegHH, types.LegHL:
		return types.DirectionLong, true
	case types.LegLL, types.LegLH:
		return types.DirectionShort, true
	default:
		return types.DirectionNeutral, false
	}
}

// originCandle walks backward from the leg's starting index for the last
// candle whose body color opposes the impulse direction.
func originCandle(bars []types.Bar, fromIdx int, dir types.Direction) int {
	for i := fromIdx; i >= 0 && i >= fromIdx-8; i-- {
		bullish := bars[i].Close >= bars[i].Open
		if dir == types.DirectionLong && !bullish {
			return i
		}
		if dir == types.DirectionShort && bullish {
			return i
		}
	}
	return -1
}

func entryModeForBodyShare(share, strong, weak float64) types.EntryMode {
	switch {
	case share >= strong:
		return types.EntryBody05
	case share <= weak:
		return types.EntryBodyTouch
	default:
		return types.EntryWick05
	}
}

func qualityForBodyShare(share, strong, weak float64) types.ZoneQuality {
	switch {
	case share >= strong:
		return types.QualityStrong
	case share <= weak:
		return types.QualityWeak
	default:
		return types.QualityMedium
	}
}
