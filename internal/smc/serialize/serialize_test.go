package serialize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/serialize"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func TestMarshalIsDeterministicAcrossRuns(t *testing.T) {
	hint := types.SmcHint{
		Symbol: "BTCUSDT",
		Structure: types.StructureState{Trend: types.TrendUp, Bias: types.DirectionLong, ATR14: 123.456789},
		Meta: types.HintMeta{SnapshotTf: "15m", ComputeKind: types.ComputeClose},
	}

	out1, err1 := serialize.Marshal(hint)
	out2, err2 := serialize.Marshal(hint)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, string(out1), string(out2))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out1, &decoded))
	structureMap := decoded["structure"].(map[string]any)
	assert.Equal(t, "123.456789", structureMap["atr14"])
}

func TestMarshalEmptyStructureCarriesReason(t *testing.T) {
	hint := types.SmcHint{Symbol: "ETHUSDT", Structure: types.StructureState{Reason: "empty_frame"}}
	out, err := serialize.Marshal(hint)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	structureMap := decoded["structure"].(map[string]any)
	assert.Equal(t, "empty_frame", structureMap["reason"])
}
