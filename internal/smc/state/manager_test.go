package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/state"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func decision(id types.ScenarioID, dir types.Direction, conf float64) types.Stage6Decision {
	return types.Stage6Decision{ScenarioID: id, Direction: dir, Confidence: conf}
}

func TestManagerRequiresConfirmBarsBeforeGoingStable(t *testing.T) {
	cfg := config.StateConfig{ConfirmBars: 2, SwitchDelta: 0.3, TTLMinutes: 60}
	mgr := state.NewManager()

	d1 := mgr.Update(cfg, "BTCUSDT", decision(types.Scenario42, types.DirectionLong, 2.5), 0)
	assert.Equal(t, types.Scenario42, d1.ScenarioID, "first observation surfaces raw, not yet stable")

	d2 := mgr.Update(cfg, "BTCUSDT", decision(types.Scenario42, types.DirectionLong, 2.6), 60_000)
	assert.Equal(t, types.Scenario42, d2.ScenarioID)
}

func TestManagerBlocksFlipBelowSwitchDelta(t *testing.T) {
	cfg := config.StateConfig{ConfirmBars: 1, SwitchDelta: 1.0, TTLMinutes: 60}
	mgr := state.NewManager()

	mgr.Update(cfg, "ETHUSDT", decision(types.Scenario42, types.DirectionLong, 3.0), 0)
	flipped := mgr.Update(cfg, "ETHUSDT", decision(types.Scenario43, types.DirectionShort, 3.2), 60_000)

	assert.Equal(t, types.Scenario42, flipped.ScenarioID, "a 0.2 improvement must not clear a 1.0 switch_delta")
	assert.Equal(t, types.DirectionLong, flipped.Direction)
}

func TestManagerFlipsAfterConfirmedLargerDelta(t *testing.T) {
	cfg := config.StateConfig{ConfirmBars: 1, SwitchDelta: 0.3, TTLMinutes: 60}
	mgr := state.NewManager()

	mgr.Update(cfg, "SOLUSDT", decision(types.Scenario42, types.DirectionLong, 2.0), 0)
	flipped := mgr.Update(cfg, "SOLUSDT", decision(types.Scenario43, types.DirectionShort, 3.0), 60_000)

	assert.Equal(t, types.Scenario43, flipped.ScenarioID)
	assert.Equal(t, types.DirectionShort, flipped.Direction)
}
