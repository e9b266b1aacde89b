package zones

import "github.com/sawpanic/smc-core/internal/smc/types"

// IoU computes the 1-D intersection-over-union of two zones' price bands,
// treating each as a [min,max] interval. Zones of different direction
// never merge regardless of overlap.
func IoU(a, b types.Zone) float64 {
	if a.Direction != b.Direction {
		return 0
	}
	lo := max64(a.PriceMin, b.PriceMin)
	hi := min64(a.PriceMax, b.PriceMax)
	inter := hi - lo
	if inter <= 0 {
		return 0
	}
	union := (a.PriceMax - a.PriceMin) + (b.PriceMax - b.PriceMin) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// MergeOverlapping merges zones whose IoU clears threshold into a single
// wider zone, keeping the strongest member's type/direction/entry mode and
// recording every merged ZoneID under Meta["merged_from"]. Input order is
// preserved as the tie-breaker for which zone seeds a merge group.
func MergeOverlapping(zoneList []types.Zone, threshold float64) []types.Zone {
	if len(zoneList) < 2 {
		return zoneList
	}

	merged := make([]bool, len(zoneList))
	var out []types.Zone

	for i := range zoneList {
		if merged[i] {
			continue
		}
		group := []types.Zone{zoneList[i]}
		merged[i] = true
		for j := i + 1; j < len(zoneList); j++ {
			if merged[j] {
				continue
			}
			if IoU(zoneList[i], zoneList[j]) >= threshold {
				group = append(group, zoneList[j])
				merged[j] = true
			}
		}
		out = append(out, mergeGroup(group))
	}
	return out
}

func mergeGroup(group []types.Zone) types.Zone {
	if len(group) == 1 {
		return group[0]
	}
	best := group[0]
	for _, z := range group[1:] {
		if z.Strength > best.Strength {
			best = z
		}
	}
	priceMin, priceMax := group[0].PriceMin, group[0].PriceMax
	var mergedFrom []string
	for _, z := range group {
		if z.PriceMin < priceMin {
			priceMin = z.PriceMin
		}
		if z.PriceMax > priceMax {
			priceMax = z.PriceMax
		}
		mergedFrom = append(mergedFrom, z.ZoneID)
	}
	out := best
	out.PriceMin, out.PriceMax = priceMin, priceMax
	meta := map[string]any{"merged_from": mergedFrom}
	out.Meta = meta
	return out
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
