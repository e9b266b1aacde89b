package stage6_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/stage6"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func validGateInput(cfg config.Stage6Config) stage6.Input {
	return stage6.Input{
		HasLastPrice: true, LastPrice: 100,
		Primary: types.StructureState{
			ATRAvailable: true, ATR14: 1.0,
			ActiveRange: &types.Range{High: 110, Low: 90, EqLevel: 100},
			Swings:      []types.Swing{{Index: 0, Kind: types.SwingLow, Price: 90}, {Index: 1, Kind: types.SwingHigh, Price: 95}},
		},
		HTF: stage6.HTFContext{Bars: map[string][]types.Bar{
			"4h": downtrendHTFBars(20),
			"1h": downtrendHTFBars(20),
		}},
	}
}

func TestGateNoStructurePassesOnEventsAloneWithoutTwoSwings(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5
	cfg.MinScore = 100 // force UNCLEAR via LOW_SCORE, not a structure gate failure

	in := validGateInput(cfg)
	in.Primary.Swings = nil
	in.Primary.Events = []types.StructureEvent{{EventType: types.EventBOS, Direction: types.DirectionShort}}

	d := stage6.Decide(cfg, in)
	assert.NotEqual(t, types.ReasonNoStructure, d.Telemetry.UnclearReason)
}

func TestGateNoStructureFailsWithNeitherEventsNorTwoSwings(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5

	in := validGateInput(cfg)
	in.Primary.Swings = []types.Swing{{Index: 0, Kind: types.SwingLow, Price: 90}}
	in.Primary.Events = nil

	d := stage6.Decide(cfg, in)
	assert.Equal(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.ReasonNoStructure, d.Telemetry.UnclearReason)
}

func TestGateATRUnavailableReadsHTFNotPrimary(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5

	in := validGateInput(cfg)
	in.Primary.ATRAvailable = false // primary ATR missing must not matter anymore
	in.HTF = stage6.HTFContext{Bars: map[string][]types.Bar{
		"4h": downtrendHTFBars(20),
		"1h": downtrendHTFBars(20),
	}}

	d := stage6.Decide(cfg, in)
	assert.NotEqual(t, types.ReasonATRUnavailable, d.Telemetry.UnclearReason)
}

func TestGateATRUnavailableWhenHTFFramesTooShortForATR(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5 // passes the frame-count gate but not ATR's 15-bar minimum

	in := validGateInput(cfg)
	in.HTF = stage6.HTFContext{Bars: map[string][]types.Bar{
		"4h": downtrendHTFBars(10),
		"1h": downtrendHTFBars(10),
	}}

	d := stage6.Decide(cfg, in)
	assert.Equal(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.ReasonATRUnavailable, d.Telemetry.UnclearReason)
}
