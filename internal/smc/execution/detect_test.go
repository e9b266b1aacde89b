package execution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawpanic/smc-core/internal/smc/execution"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func bar(i int, o, h, l, c float64) types.Bar {
	t := int64(i) * 60_000
	return types.Bar{OpenTimeMs: t, CloseTimeMs: t + 60_000, Open: o, High: h, Low: l, Close: c, Volume: 10}
}

func TestInPlayFalseWithoutATR(t *testing.T) {
	poi := types.POI{Zone: types.Zone{PriceMin: 99, PriceMax: 101}}
	inPlay, reason := execution.InPlay(100, 0, false, []types.POI{poi}, 0.5)
	assert.False(t, inPlay)
	assert.Equal(t, "atr_unavailable", reason)
}

func TestInPlayTrueWithinRadius(t *testing.T) {
	poi := types.POI{Zone: types.Zone{PriceMin: 99, PriceMax: 101}}
	inPlay, _ := execution.InPlay(102, 1.0, true, []types.POI{poi}, 2.0)
	assert.True(t, inPlay)
}

func TestDetectSweepOnWickThroughZoneMax(t *testing.T) {
	poi := types.POI{Zone: types.Zone{ZoneID: "z1", PriceMin: 95, PriceMax: 100}}
	bars := []types.Bar{bar(0, 99, 103, 98, 99.5)}
	ev := execution.DetectSweep(bars, poi, 1.0, true, 0.1)
	assert.NotNil(t, ev)
	if ev != nil {
		assert.Equal(t, types.SignalSweep, ev.EventType)
		assert.Equal(t, types.DirectionShort, ev.Direction)
	}
}

func TestDetectRetestConfirmsHold(t *testing.T) {
	zone := types.Zone{ZoneID: "z1", Direction: types.DirectionLong, PriceMin: 99, PriceMax: 101}
	bars := []types.Bar{bar(0, 105, 106, 100, 104)}
	ev := execution.DetectRetest(bars, zone, 3, 0.0005)
	assert.NotNil(t, ev)
}
