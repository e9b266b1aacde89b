package stage6

import (
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/structure"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// htfAssessment is the independent higher-timeframe read Stage6 gates and
// scores against: a bias derived from running the swing/leg/trend pipeline
// on the 4h and 1h frames (falling back to a premium/discount read of the
// HTF-Lite dealing range when that comes back neutral), plus the ATR(14)
// the ATR_UNAVAILABLE gate and hold/fail-hold epsilon both key off.
type htfAssessment struct {
	Bias       types.Direction
	Mixed      bool
	BiasSource string // "context" | "htf_lite_pd" | "none"
	ATR        ohlcv.ATRResult
	ATRTf      string // "4h" | "1h"
	RangeHigh  float64
	RangeLow   float64
	RangeMid   float64
	HasRange   bool
	PDZone     string // "premium" | "discount" | "equilibrium" | ""
}

// assessHTF computes the HTF-Lite read described above. It tolerates
// missing frames (callers gate on that separately via runGates) and simply
// reports the most neutral/unavailable answer it can when bars are short.
func assessHTF(cfg config.Stage6Config, htf HTFContext) htfAssessment {
	bars4h := htf.Bars["4h"]
	bars1h := htf.Bars["1h"]

	atr := ohlcv.ATR14(bars4h)
	atrTf := "4h"
	if !atr.Available {
		atr = ohlcv.ATR14(bars1h)
		atrTf = "1h"
	}

	bias, mixed := combineBias(frameBias(bars4h), frameBias(bars1h))
	source := "context"

	rangeHigh, rangeLow, rangeMid, hasRange := dealingRange(bars4h, bars1h, cfg.DRWindowBars4h, cfg.DRWindowBars1h)
	pdZone := ""
	if hasRange {
		pdZone = pdZoneFor(lastClose(bars4h, bars1h), rangeHigh, rangeLow, rangeMid)
	}

	if bias == types.DirectionNeutral && !mixed && pdZone != "" && pdZone != "equilibrium" {
		source = "htf_lite_pd"
		if pdZone == "premium" {
			bias = types.DirectionShort
		} else {
			bias = types.DirectionLong
		}
	}
	if bias == types.DirectionNeutral && !mixed {
		source = "none"
	}

	return htfAssessment{
		Bias: bias, Mixed: mixed, BiasSource: source,
		ATR: atr, ATRTf: atrTf,
		RangeHigh: rangeHigh, RangeLow: rangeLow, RangeMid: rangeMid, HasRange: hasRange, PDZone: pdZone,
	}
}

// frameBias runs the primary structure pipeline's swing/leg/trend steps
// against one HTF frame in isolation — "HTF-Lite" per spec.md §4.5.
func frameBias(bars []types.Bar) types.Direction {
	if len(bars) == 0 {
		return types.DirectionNeutral
	}
	swings := structure.DetectSwings(bars, 2)
	legs := structure.BuildLegs(swings)
	trend := structure.DeriveTrend(legs)
	return structure.BiasFromTrend(trend)
}

// combineBias votes the 4h and 1h HTF-Lite biases together: agreement (or
// one side abstaining neutral) resolves to that direction; outright
// disagreement resolves to MIXED rather than being averaged away.
func combineBias(a, b types.Direction) (types.Direction, bool) {
	switch {
	case a == b:
		return a, false
	case a == types.DirectionNeutral:
		return b, false
	case b == types.DirectionNeutral:
		return a, false
	default:
		return types.DirectionNeutral, true
	}
}

// dealingRange computes the HTF-Lite high/low/mid over a trailing window,
// preferring 4h bars and falling back to 1h only when no 4h frame exists.
func dealingRange(bars4h, bars1h []types.Bar, window4h, window1h int) (high, low, mid float64, ok bool) {
	bars, window := bars4h, window4h
	if len(bars) == 0 {
		bars, window = bars1h, window1h
	}
	if len(bars) == 0 {
		return 0, 0, 0, false
	}
	if window > 0 && len(bars) > window {
		bars = bars[len(bars)-window:]
	}
	high, low = bars[0].High, bars[0].Low
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, (high + low) / 2, true
}

func lastClose(bars4h, bars1h []types.Bar) float64 {
	if len(bars4h) > 0 {
		return bars4h[len(bars4h)-1].Close
	}
	if len(bars1h) > 0 {
		return bars1h[len(bars1h)-1].Close
	}
	return 0
}

func pdZoneFor(price, high, low, mid float64) string {
	if high <= low {
		return ""
	}
	switch {
	case price > mid:
		return "premium"
	case price < mid:
		return "discount"
	default:
		return "equilibrium"
	}
}
