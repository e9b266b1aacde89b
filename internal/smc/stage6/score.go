package stage6

import (
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

const (
	retestLookbackBars = 10 // bars scanned behind the latest close for a retest touch
	targetNearAtrMult  = 0.5
	poiNearAtrMult     = 0.5
)

// scoreScenarios computes the two literal weighted scores — score_42
// (continuation-SHORT) and score_43 (break-and-hold-LONG) — from the fixed
// set of named factors. Every factor appends its own tag to the matching
// why[] so the decision's explanation is exactly what fired, not a
// reconstruction after the fact.
func scoreScenarios(cfg config.Stage6Config, in Input, htf htfAssessment) (score42, score43 float64, why42, why43 []string, flags map[string]bool) {
	flags = map[string]bool{}
	add42 := func(w float64, tag string) { score42 += w; why42 = append(why42, tag) }
	add43 := func(w float64, tag string) { score43 += w; why43 = append(why43, tag) }

	switch {
	case htf.Mixed:
		add43(0.4, "htf_bias_mixed")
		flags["htf_mixed"] = true
	case htf.Bias == types.DirectionShort:
		add42(2.2, "htf_bias_short")
		add43(-0.6, "htf_bias_short")
	case htf.Bias == types.DirectionLong:
		add43(1.2, "htf_bias_long")
		add42(-0.4, "htf_bias_long")
	}

	switch htf.PDZone {
	case "premium":
		add42(0.9, "premium_zone")
	case "discount":
		add43(0.4, "discount_zone")
	}

	sweepUp := hasSfpDirection(in.Liquidity.SfpEvents, types.DirectionShort)
	sweepDown := hasSfpDirection(in.Liquidity.SfpEvents, types.DirectionLong)
	if sweepUp {
		add42(0.9, "sweep_up")
		add43(0.2, "sweep_up")
	}
	if sweepDown {
		add43(0.6, "sweep_down")
	}

	if sweepTimeMs, hasSweep := latestSfpTime(in.Liquidity.SfpEvents); hasSweep {
		windowMs := int64(cfg.EventsAfterSweepWindowMin) * 60_000
		matched := false
		for _, ev := range in.Primary.Events {
			if ev.TimeMs < sweepTimeMs || ev.TimeMs > sweepTimeMs+windowMs {
				continue
			}
			switch {
			case ev.EventType == types.EventBOS && ev.Direction == types.DirectionShort:
				add42(1.8, "bos_down_after_sweep")
				matched = true
			case ev.EventType == types.EventBOS && ev.Direction == types.DirectionLong:
				add43(1.6, "bos_up_after_sweep")
				matched = true
			case ev.EventType == types.EventCHOCH && ev.Direction == types.DirectionLong:
				add43(1.2, "choch_up_after_sweep")
				matched = true
			}
		}
		if !matched {
			flags["chop_after_sweep"] = true
		}
	}

	if in.Primary.ActiveRange != nil {
		level := in.Primary.ActiveRange.High
		eps := cfg.EpsilonAtrMult * in.Primary.ATR14

		if breakAboveOnce(in.Bars, level, eps) {
			add43(2.2, "break_hold_up")
			add42(-0.6, "break_hold_up")
			if retestHoldUp(in.Bars, level, eps) {
				add43(0.6, "retest_hold_up")
			}
		}

		hold := holdAboveUp(in.Bars, level, eps)
		if hold {
			add43(3.2, "hold_above_up")
			add42(-2.4, "hold_above_up")
			flags["hold_above_up"] = true
		} else if failedHoldUp(in.Bars, level, eps, sweepUp, hold) {
			add42(2.8, "failed_hold_up")
			add43(-2.2, "failed_hold_up")
			flags["failed_hold_up"] = true
		}
	}

	if nearTarget(in.Liquidity.ExternalTargets, in.Primary.ATR14) {
		add42(0.8, "target_near")
		add43(0.5, "target_near")
	}

	if nearPOI(in.Zones.POIZones, in.LastPrice, in.Primary.ATR14) {
		add42(0.6, "poi_near")
		add43(0.4, "poi_near")
	}

	return score42, score43, why42, why43, flags
}

func hasSfpDirection(events []types.SfpEvent, dir types.Direction) bool {
	for _, e := range events {
		if e.Direction == dir {
			return true
		}
	}
	return false
}

func latestSfpTime(events []types.SfpEvent) (int64, bool) {
	if len(events) == 0 {
		return 0, false
	}
	latest := events[0].TimeMs
	for _, e := range events[1:] {
		if e.TimeMs > latest {
			latest = e.TimeMs
		}
	}
	return latest, true
}

// breakAboveOnce is a single close above range_high+eps — a bare break,
// with no persistence requirement.
func breakAboveOnce(bars []types.Bar, level, eps float64) bool {
	if len(bars) == 0 {
		return false
	}
	return bars[len(bars)-1].Close > level+eps
}

// retestHoldUp looks behind an already-confirmed break for a bar whose low
// dipped back to the broken level before the close held above it again.
func retestHoldUp(bars []types.Bar, level, eps float64) bool {
	if len(bars) < 2 || bars[len(bars)-1].Close <= level+eps {
		return false
	}
	start := len(bars) - retestLookbackBars
	if start < 0 {
		start = 0
	}
	for i := len(bars) - 2; i >= start; i-- {
		if bars[i].Low <= level+eps && bars[i].Low >= level-eps {
			return true
		}
	}
	return false
}

// holdAboveUp requires the last three closes all sit above range_high+eps —
// the P0 "this break stuck" signal.
func holdAboveUp(bars []types.Bar, level, eps float64) bool {
	if len(bars) < 3 {
		return false
	}
	for _, b := range bars[len(bars)-3:] {
		if b.Close <= level+eps {
			return false
		}
	}
	return true
}

// failedHoldUp is holdAboveUp's mutually exclusive opposite: the level was
// swept, price broke above it, and then gave it straight back.
func failedHoldUp(bars []types.Bar, level, eps float64, sweptUp, holding bool) bool {
	if holding || !sweptUp || len(bars) == 0 {
		return false
	}
	return bars[len(bars)-1].Close < level-eps
}

func nearTarget(targets []types.LiquidityTarget, atr float64) bool {
	if atr <= 0 || len(targets) == 0 {
		return false
	}
	return targets[0].Proximity <= atr*targetNearAtrMult
}

func nearPOI(pois []types.POI, lastPrice, atr float64) bool {
	if atr <= 0 {
		return false
	}
	for _, p := range pois {
		if lastPrice >= p.Zone.PriceMin-atr*poiNearAtrMult && lastPrice <= p.Zone.PriceMax+atr*poiNearAtrMult {
			return true
		}
	}
	return false
}
