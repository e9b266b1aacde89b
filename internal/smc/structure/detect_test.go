package structure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/structure"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func bar(i int, o, h, l, c float64) types.Bar {
	t := int64(i) * 60_000
	return types.Bar{OpenTimeMs: t, CloseTimeMs: t + 60_000, Open: o, High: h, Low: l, Close: c, Volume: 100}
}

// buildDowntrendBars shapes a sequence whose swings read as a downtrend
// (LH, LL) followed by a pullback HL and a confirming LL, matching spec.md
// §8's "BOS SHORT after HL -> LL" seed scenario.
func buildDowntrendBars() []types.Bar {
	bars := []types.Bar{
		bar(0, 100, 101, 99, 100),
		bar(1, 100, 102, 100, 101), // swing high ~102
		bar(2, 101, 101, 96, 97),
		bar(3, 97, 98, 94, 95), // swing low ~94 (LL vs nothing, seeds)
		bar(4, 95, 99, 95, 98),
		bar(5, 98, 99, 93, 94), // swing low lower again, but we want LH next
		bar(6, 94, 97, 93, 96),
		bar(7, 96, 97, 90, 91), // swing low ~90: new LL (confirms downtrend)
		bar(8, 91, 95, 91, 94),
		bar(9, 94, 96, 92, 93), // swing high lower than first: LH
		bar(10, 93, 94, 85, 86), // swing low ~85: deep LL, breaks structure -> BOS SHORT
		bar(11, 86, 92, 86, 91),
		bar(12, 91, 93, 88, 89), // pullback swing low ~88 > 85: HL
		bar(13, 89, 90, 87, 88),
		bar(14, 88, 89, 80, 81), // new swing low ~80 breaks below 85 -> confirming LL -> BOS SHORT
		bar(15, 81, 84, 81, 83),
		bar(16, 83, 84, 82, 83),
	}
	return bars
}

func TestDetectSwingsAndLegs(t *testing.T) {
	bars := buildDowntrendBars()
	swings := structure.DetectSwings(bars, 2)
	require.NotEmpty(t, swings)

	legs := structure.BuildLegs(swings)
	require.NotEmpty(t, legs)

	var sawLL, sawHL bool
	for _, l := range legs {
		if l.Label == types.LegLL {
			sawLL = true
		}
		if l.Label == types.LegHL {
			sawHL = true
		}
	}
	assert.True(t, sawLL, "expected at least one LL leg in a downtrend sequence")
	assert.True(t, sawHL, "expected the pullback low to label HL")
}

func TestDetectEmitsBosShortOnDowntrendContinuation(t *testing.T) {
	cfg := config.Default().Structure
	cfg.MinSwingBars = 2
	cfg.BosKPct = 0.001
	cfg.BosKAtr = 0 // force pct-based threshold regardless of ATR availability

	frame := ohlcv.Prepare(buildDowntrendBars())
	require.False(t, frame.Empty())

	state := structure.Detect(cfg, frame, nil, "BTCUSDT", "15m", time.Unix(0, 0))

	require.Equal(t, types.TrendDown, state.Trend)

	var sawBosShort bool
	for _, ev := range state.Events {
		if ev.EventType == types.EventBOS && ev.Direction == types.DirectionShort {
			sawBosShort = true
		}
	}
	assert.True(t, sawBosShort, "expected a BOS SHORT event confirming the downtrend continuation")
}

func TestDetectEmptyFrameReturnsReason(t *testing.T) {
	cfg := config.Default().Structure
	frame := ohlcv.Prepare(nil)
	state := structure.Detect(cfg, frame, nil, "BTCUSDT", "15m", time.Unix(0, 0))
	assert.Equal(t, "empty_frame", state.Reason)
	assert.Nil(t, state.ActiveRange)
}

func TestHistoryStoreDedupesRepeatedEvents(t *testing.T) {
	store := structure.NewHistoryStore()
	ev := types.StructureEvent{EventType: types.EventBOS, Direction: types.DirectionShort, TimeMs: 1000, PriceLevel: 80}
	now := time.Unix(100, 0)

	fresh1 := store.Reconcile("BTCUSDT", "15m", []types.StructureEvent{ev}, now, time.Hour, 100)
	fresh2 := store.Reconcile("BTCUSDT", "15m", []types.StructureEvent{ev}, now.Add(time.Minute), time.Hour, 100)

	assert.Len(t, fresh1, 1)
	assert.Len(t, fresh2, 0, "identical event on a later reconcile must not re-fire as fresh")
}
