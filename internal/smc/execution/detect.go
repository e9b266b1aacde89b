package execution

import (
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Detect gates on InPlay and, only when it holds, runs every micro-event
// detector against the nearest POI and caps the combined output at
// maxEvents (spec.md §4.4: "execution events are only ever emitted while
// in_play; the rest of the pipeline is unaffected").
func Detect(cfg config.ExecutionConfig, bars []types.Bar, pois []types.POI, atrValue float64, atrAvailable bool) []types.ExecutionEvent {
	if len(bars) == 0 {
		return nil
	}
	lastClose := bars[len(bars)-1].Close
	inPlay, _ := InPlay(lastClose, atrValue, atrAvailable, pois, cfg.InPlayRadiusAtr)
	if !inPlay {
		return nil
	}

	poi, ok := NearestPOI(lastClose, pois)
	if !ok {
		return nil
	}

	var events []types.ExecutionEvent
	if sweep := DetectSweep(bars, poi, atrValue, atrAvailable, cfg.SweepImpulseKAtr); sweep != nil {
		events = append(events, *sweep)
	}
	events = append(events, DetectMicroStructureEvents(bars, poi, atrValue, atrAvailable, cfg.PivotWindow, 0.5, 0.001)...)
	if retest := DetectRetest(bars, poi.Zone, cfg.HoldBars, 0.0005); retest != nil {
		events = append(events, *retest)
	}

	if cfg.MaxEvents > 0 && len(events) > cfg.MaxEvents {
		events = events[:cfg.MaxEvents]
	}
	return events
}
