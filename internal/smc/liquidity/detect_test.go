package liquidity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/liquidity"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func bar(i int, o, h, l, c float64) types.Bar {
	t := int64(i) * 60_000
	return types.Bar{OpenTimeMs: t, CloseTimeMs: t + 60_000, Open: o, High: h, Low: l, Close: c, Volume: 10}
}

func TestDetectEqualHighsLowsClustersWithinTolerance(t *testing.T) {
	swings := []types.Swing{
		{Index: 0, TimeMs: 0, Price: 100.0, Kind: types.SwingHigh},
		{Index: 5, TimeMs: 5000, Price: 100.05, Kind: types.SwingHigh},
		{Index: 10, TimeMs: 10000, Price: 90.0, Kind: types.SwingLow},
	}
	pools := liquidity.DetectEqualHighsLows(swings, 0.002)
	require.Len(t, pools, 1, "the two near-equal highs should cluster into one EQH pool; the lone low should not")
	assert.Equal(t, types.LiqEQH, pools[0].LiqType)
	assert.Equal(t, 2, pools[0].NTouches)
}

func TestDetectSFPsOnWickBeyondLevelWithCloseBack(t *testing.T) {
	bars := []types.Bar{bar(0, 100, 105, 99, 101)}
	sfps := liquidity.DetectSFPs(bars, []float64{104}, "pool", 0.0003)
	require.Len(t, sfps, 1)
	assert.Equal(t, types.DirectionShort, sfps[0].Direction)
}

func TestDetectHandlesEmptyFrame(t *testing.T) {
	cfg := config.Default().Liquidity
	state := liquidity.Detect(cfg, nil, types.StructureState{}, nil, 96, 0)
	assert.Equal(t, types.AmdNeutral, state.AmdPhase)
	assert.Equal(t, "empty_frame", state.AmdReason)
}
