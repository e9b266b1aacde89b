package stage6_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/stage6"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func bar(i int, o, h, l, c float64) types.Bar {
	t := int64(i) * 3_600_000
	return types.Bar{OpenTimeMs: t, CloseTimeMs: t + 3_600_000, Open: o, High: h, Low: l, Close: c, Volume: 10}
}

func uptrendHTFBars(n int) []types.Bar {
	bars := make([]types.Bar, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		bars = append(bars, bar(i, price, price+2, price-1, price+1.5))
		price += 1.5
	}
	return bars
}

func downtrendHTFBars(n int) []types.Bar {
	bars := make([]types.Bar, 0, n)
	price := 200.0
	for i := 0; i < n; i++ {
		bars = append(bars, bar(i, price, price+1, price-2, price-1.5))
		price -= 1.5
	}
	return bars
}

func TestDecideUnclearWithoutLastPrice(t *testing.T) {
	cfg := config.Default().Stage6
	in := stage6.Input{HasLastPrice: false}
	d := stage6.Decide(cfg, in)
	assert.Equal(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.ReasonNoLastPrice, d.Telemetry.UnclearReason)
}

func TestDecideUnclearWithoutBothHTFFrames(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5
	in := stage6.Input{
		HasLastPrice: true, LastPrice: 100,
		HTF: stage6.HTFContext{Bars: map[string][]types.Bar{"4h": downtrendHTFBars(20)}},
	}
	d := stage6.Decide(cfg, in)
	assert.Equal(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.ReasonNoHTFFrames, d.Telemetry.UnclearReason)
}

// TestDecideContinuationScenario drives a clean 4_2 win: the monotonic HTF
// frames yield no swings, so the HTF bias falls back to premium/discount
// and reads LONG (discount); a liquidity sweep up immediately followed by a
// BOS down still outscores it. 4_2 is always SHORT.
func TestDecideContinuationScenario(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5
	cfg.MinScore = 1.0
	cfg.ScoreDelta = 0.1

	primary := types.StructureState{
		ATRAvailable: true, ATR14: 1.0,
		Swings:      []types.Swing{{Index: 0, Kind: types.SwingLow, Price: 90}, {Index: 1, Kind: types.SwingHigh, Price: 95}},
		ActiveRange: &types.Range{High: 110, Low: 90, EqLevel: 100},
		Events:      []types.StructureEvent{{EventType: types.EventBOS, Direction: types.DirectionShort, TimeMs: 2_000}},
	}

	in := stage6.Input{
		HasLastPrice: true, LastPrice: 95,
		Primary: primary,
		HTF: stage6.HTFContext{Bars: map[string][]types.Bar{
			"4h": downtrendHTFBars(20),
			"1h": downtrendHTFBars(20),
		}},
		Liquidity: types.LiquidityState{
			SfpEvents: []types.SfpEvent{{Level: 110, Direction: types.DirectionShort, TimeMs: 1_000}},
		},
	}

	d := stage6.Decide(cfg, in)
	require.NotEqual(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.Scenario42, d.ScenarioID)
	assert.Equal(t, types.DirectionShort, d.Direction)
	assert.GreaterOrEqual(t, d.Confidence, 0.5)
	assert.LessOrEqual(t, d.Confidence, 0.95)
}

// TestDecideBreakAndHoldScenario mirrors the above for a 4_3 win: the HTF
// bias again comes from the premium/discount fallback and reads SHORT
// (premium), and the last three closes hold above the range high.
// 4_3 is always LONG.
func TestDecideBreakAndHoldScenario(t *testing.T) {
	cfg := config.Default().Stage6
	cfg.MinHTFBars = 5
	cfg.MinScore = 1.0
	cfg.ScoreDelta = 0.1

	primary := types.StructureState{
		ATRAvailable: true, ATR14: 1.0,
		Swings:      []types.Swing{{Index: 0, Kind: types.SwingLow, Price: 90}, {Index: 1, Kind: types.SwingHigh, Price: 95}},
		ActiveRange: &types.Range{High: 110, Low: 90, EqLevel: 100},
	}

	holdBars := []types.Bar{
		bar(0, 111, 112, 110.5, 111.2),
		bar(1, 111.2, 113, 111, 112.0),
		bar(2, 112, 114, 111.5, 113.0),
	}

	in := stage6.Input{
		HasLastPrice: true, LastPrice: 113,
		Bars:    holdBars,
		Primary: primary,
		HTF: stage6.HTFContext{Bars: map[string][]types.Bar{
			"4h": uptrendHTFBars(20),
			"1h": uptrendHTFBars(20),
		}},
	}

	d := stage6.Decide(cfg, in)
	require.NotEqual(t, types.ScenarioUnclear, d.ScenarioID)
	assert.Equal(t, types.Scenario43, d.ScenarioID)
	assert.Equal(t, types.DirectionLong, d.Direction)
}
