package zones_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/types"
	"github.com/sawpanic/smc-core/internal/smc/zones"
)

func bar(i int, o, h, l, c float64) types.Bar {
	t := int64(i) * 60_000
	return types.Bar{OpenTimeMs: t, CloseTimeMs: t + 60_000, Open: o, High: h, Low: l, Close: c, Volume: 10}
}

// TestDetectFVGsBullishThreeBarGap matches spec.md §8's "bullish FVG
// three-bar scenario": bar[0].High sits below bar[2].Low, leaving a clean
// imbalance between them.
func TestDetectFVGsBullishThreeBarGap(t *testing.T) {
	bars := []types.Bar{
		bar(0, 100, 101, 99, 100.5),
		bar(1, 101, 103, 100.8, 102.5),
		bar(2, 102.5, 104, 102, 103),
	}
	zoneList := zones.DetectFVGs(bars, 1.0, true, 0.1, 0.0001, 10_000)
	require.Len(t, zoneList, 1)
	assert.Equal(t, types.DirectionLong, zoneList[0].Direction)
	assert.InDelta(t, 101.0, zoneList[0].PriceMin, 1e-9)
	assert.InDelta(t, 102.0, zoneList[0].PriceMax, 1e-9)
}

func TestIoUMergeCombinesOverlappingSameDirectionZones(t *testing.T) {
	a := types.Zone{ZoneID: "a", Direction: types.DirectionLong, PriceMin: 100, PriceMax: 110, Strength: 5}
	b := types.Zone{ZoneID: "b", Direction: types.DirectionLong, PriceMin: 105, PriceMax: 115, Strength: 8}
	merged := zones.MergeOverlapping([]types.Zone{a, b}, 0.2)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].ZoneID, "the stronger zone's identity should anchor the merge")
	assert.InDelta(t, 100, merged[0].PriceMin, 1e-9)
	assert.InDelta(t, 115, merged[0].PriceMax, 1e-9)
}

func TestIoUZeroForOpposingDirections(t *testing.T) {
	a := types.Zone{Direction: types.DirectionLong, PriceMin: 100, PriceMax: 110}
	b := types.Zone{Direction: types.DirectionShort, PriceMin: 100, PriceMax: 110}
	assert.Equal(t, 0.0, zones.IoU(a, b))
}
