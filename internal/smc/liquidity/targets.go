package liquidity

import (
	"sort"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// BuildMagnets clusters nearby pools (regardless of type) into composite
// magnets within tolerancePct, the way multiple distinct liquidity types
// resting at nearly the same price compound into one real target.
func BuildMagnets(pools []types.LiquidityPool, tolerancePct float64) []types.LiquidityMagnet {
	if len(pools) == 0 {
		return nil
	}
	sorted := append([]types.LiquidityPool(nil), pools...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	var magnets []types.LiquidityMagnet
	bucket := []types.LiquidityPool{sorted[0]}
	flush := func() {
		magnets = append(magnets, magnetFromBucket(bucket))
	}
	for i := 1; i < len(sorted); i++ {
		ref := bucket[0].Level
		if sorted[i].Level-ref <= tolerancePct*ref {
			bucket = append(bucket, sorted[i])
			continue
		}
		flush()
		bucket = []types.LiquidityPool{sorted[i]}
	}
	flush()
	return magnets
}

func magnetFromBucket(bucket []types.LiquidityPool) types.LiquidityMagnet {
	min, max := bucket[0].Level, bucket[0].Level
	sum := 0.0
	role := types.RoleNeutral
	liqType := bucket[0].LiqType
	for _, p := range bucket {
		if p.Level < min {
			min = p.Level
		}
		if p.Level > max {
			max = p.Level
		}
		sum += p.Level
		if p.Role == types.RolePrimary {
			role = types.RolePrimary
		}
	}
	return types.LiquidityMagnet{
		PriceMin: min, PriceMax: max, Center: sum / float64(len(bucket)),
		LiqType: liqType, Role: role, Pools: bucket,
	}
}

// BuildTargets ranks pools into internal (inside the active range) and
// external (outside it) liquidity targets by proximity to lastClose,
// capped at maxTargets each. Each target also records a freshness score
// that decays with time since the pool was last touched; freshness does
// not affect the order.
func BuildTargets(pools []types.LiquidityPool, rng *types.Range, lastClose float64, nowMs int64, maxTargets int) (internal, external []types.LiquidityTarget, reasons []string) {
	if len(pools) == 0 {
		return nil, nil, []string{"no_pools_available"}
	}

	for _, p := range pools {
		kind := "external"
		if rng != nil && p.Level >= rng.Low && p.Level <= rng.High {
			kind = "internal"
		}
		proximity := lastClose - p.Level
		if proximity < 0 {
			proximity = -proximity
		}
		ageMs := nowMs - p.LastTimeMs
		freshness := 1.0
		if ageMs > 0 {
			freshness = 1.0 / (1.0 + float64(ageMs)/float64(3_600_000))
		}
		t := types.LiquidityTarget{
			Price: p.Level, Kind: kind, Proximity: proximity,
			Freshness: freshness, Touches: p.NTouches,
			Reason: string(p.LiqType),
		}
		if kind == "internal" {
			internal = append(internal, t)
		} else {
			external = append(external, t)
		}
	}

	sort.Slice(internal, func(i, j int) bool { return internal[i].Proximity < internal[j].Proximity })
	sort.Slice(external, func(i, j int) bool { return external[i].Proximity < external[j].Proximity })

	if maxTargets > 0 {
		if len(internal) > maxTargets {
			internal = internal[:maxTargets]
		}
		if len(external) > maxTargets {
			external = external[:maxTargets]
		}
	}
	if len(internal) == 0 && len(external) == 0 {
		reasons = append(reasons, "no_targets_survived_ranking")
	}
	return internal, external, reasons
}
