package structure

import (
	"time"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Detect runs the full structure pipeline over one prepared frame: swings,
// legs, trend, BOS/CHOCH (recorded in history; the returned Events list is
// every event detected on this frame, not only the novel ones), dealing
// range, OTE zones and bias. A nil HistoryStore is accepted for stateless
// callers (e.g. unit tests) and simply skips recording/pruning.
func Detect(cfg config.StructureConfig, frame ohlcv.Frame, history *HistoryStore, symbol, timeframe string, now time.Time) types.StructureState {
	if frame.Empty() {
		reason := frame.Reason
		if reason == "" {
			reason = "empty_frame"
		}
		return types.StructureState{Reason: reason}
	}

	bars := frame.Bars
	atr := ohlcv.ATR14(bars)

	swings := DetectSwings(bars, cfg.MinSwingBars)
	legs := BuildLegs(swings)
	trend := DeriveTrend(legs)

	lastClose := bars[len(bars)-1].Close
	threshold := Threshold(atr.Available, atr.Value, lastClose, cfg.BosKAtr, cfg.BosKPct)
	events := DetectEvents(legs, threshold)

	if history != nil {
		retention := time.Duration(cfg.EventHistoryRetentionMin) * time.Minute
		history.Reconcile(symbol, timeframe, events, now, retention, cfg.EventHistoryMaxEntries)
	}

	bias := BiasFromTrend(trend)
	var lastChochMs int64
	haveChoch := false
	for _, ev := range events {
		if ev.EventType == types.EventCHOCH {
			bias = ev.Direction
			lastChochMs = ev.TimeMs
			haveChoch = true
		}
	}

	activeRange := ActiveRange(bars, cfg.MinRangeBars, cfg.EqTolerancePct)

	oteMinAmp := cfg.LegMinAtr * atr.Value
	if !atr.Available {
		oteMinAmp = 0
	}
	oteZones := DetectOteZones(legs, bias, trend, oteMinAmp, cfg.OteTrendOnly, cfg.OteMaxActivePerSide)

	return types.StructureState{
		Swings: swings, Legs: legs, Trend: trend, Bias: bias,
		LastChochMs: lastChochMs, HasLastChoch: haveChoch,
		Events: events, ActiveRange: activeRange, OteZones: oteZones,
		ATR14: atr.Value, ATRAvailable: atr.Available, AtrMedian: atr.Median,
	}
}
