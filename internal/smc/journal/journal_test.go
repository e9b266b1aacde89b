package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/journal"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

func priceRef(v float64) *float64 { return &v }

func TestJournalCreatedThenTouchedThenRemoved(t *testing.T) {
	cfg := config.Default().Journal
	cfg.RemovedConfirmCloseSteps = 1
	cfg.RemovedCacheSteps = 2

	j := journal.New()
	ref := types.EntityRef{Kind: types.EntityZone, ID: "ob_1"}

	// step 1: created
	events := j.Reconcile(cfg, "BTCUSDT", "15m", []journal.CurrentEntity{
		{Ref: ref, Type: "ORDER_BLOCK", Direction: types.DirectionLong, PriceMin: priceRef(100), PriceMax: priceRef(102)},
	}, 1000)
	require.Len(t, events, 1)
	assert.Equal(t, types.JournalCreated, events[0].Event)

	// step 2: price moved -> touched
	events = j.Reconcile(cfg, "BTCUSDT", "15m", []journal.CurrentEntity{
		{Ref: ref, Type: "ORDER_BLOCK", Direction: types.DirectionLong, PriceMin: priceRef(100.5), PriceMax: priceRef(102.5)},
	}, 2000)
	require.Len(t, events, 1)
	assert.Equal(t, types.JournalTouched, events[0].Event)

	// step 3: entity absent -> missing_since set, not yet removed (confirm window)
	events = j.Reconcile(cfg, "BTCUSDT", "15m", nil, 3000)
	assert.Len(t, events, 0)

	// step 4: still absent, past confirm window -> removed
	events = j.Reconcile(cfg, "BTCUSDT", "15m", nil, 4000)
	require.Len(t, events, 1)
	assert.Equal(t, types.JournalRemoved, events[0].Event)
}

func TestJournalLateTouchReactivatesFromRemovedCache(t *testing.T) {
	cfg := config.Default().Journal
	cfg.RemovedConfirmCloseSteps = 1
	cfg.RemovedCacheSteps = 5

	j := journal.New()
	ref := types.EntityRef{Kind: types.EntityZone, ID: "fvg_1"}

	j.Reconcile(cfg, "ETHUSDT", "15m", []journal.CurrentEntity{
		{Ref: ref, Type: "IMBALANCE", PriceMin: priceRef(10), PriceMax: priceRef(12)},
	}, 1000)
	j.Reconcile(cfg, "ETHUSDT", "15m", nil, 2000) // missing_since set
	removed := j.Reconcile(cfg, "ETHUSDT", "15m", nil, 3000)
	require.Len(t, removed, 1)
	assert.Equal(t, types.JournalRemoved, removed[0].Event)

	reactivated := j.Reconcile(cfg, "ETHUSDT", "15m", []journal.CurrentEntity{
		{Ref: ref, Type: "IMBALANCE", PriceMin: priceRef(10), PriceMax: priceRef(12)},
	}, 4000)
	require.Len(t, reactivated, 1)
	assert.Equal(t, types.JournalTouched, reactivated[0].Event)
	assert.True(t, reactivated[0].Ctx.Late)
}
