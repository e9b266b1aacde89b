package journal

import "github.com/sawpanic/smc-core/internal/smc/types"

// classifyRemoval picks a (reason, sub-reason) pair for an entity that has
// been missing for confirmCloseSteps consecutive steps. Short-lived
// entities (created and gone within the same confirm window) read as
// flicker; anything evicted purely by the global cap reads as
// evicted_cap; the rest defaults to a rule-driven invalidation.
func classifyRemoval(st types.JournalEntityState, confirmCloseSteps int, evictedByCap bool, replacedByMerge bool) (types.RemovalReason, types.RemovalSubReason) {
	if replacedByMerge {
		return types.RemovedReplacedByMerge, types.SubMerged
	}
	if evictedByCap {
		return types.RemovedEvictedCap, types.SubRebucketTimeWindow
	}
	lifetimeSteps := st.LastSeenStep - st.CreatedStep
	if lifetimeSteps <= int64(confirmCloseSteps) {
		return types.RemovedInvalidatedRule, types.SubFlickerShortLived
	}
	return types.RemovedInvalidatedRule, types.SubPriceInvalidated
}
