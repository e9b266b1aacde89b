package zones

import (
	"fmt"
	"sort"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// SelectActiveZones drops zones too wide to be tradable (span >
// maxZoneSpanAtr*atr) and zones too far from lastClose to matter
// (distance > maxActiveDistanceAtr*atr), the way the teacher's gate
// pipeline narrows a wide candidate set before scoring.
func SelectActiveZones(zoneList []types.Zone, lastClose, atrValue float64, atrAvailable bool, maxSpanAtr, maxDistanceAtr float64) []types.Zone {
	if !atrAvailable || atrValue <= 0 {
		return zoneList
	}
	maxSpan := maxSpanAtr * atrValue
	maxDistance := maxDistanceAtr * atrValue

	var out []types.Zone
	for _, z := range zoneList {
		if z.Width() > maxSpan {
			continue
		}
		dist := lastClose - z.Center()
		if dist < 0 {
			dist = -dist
		}
		if dist > maxDistance {
			continue
		}
		out = append(out, z)
	}
	return out
}

// SelectPOIs ranks active zones per direction by quality then proximity to
// lastClose, keeping at most maxPerSide and attaching a human-readable
// why[] trail for each survivor (spec.md §4.3's explainability
// requirement, grounded on the teacher's scoring breakdown in
// internal/domain/scoring/composite.go).
func SelectPOIs(activeZones []types.Zone, lastClose float64, maxPerSide int) []types.POI {
	byDir := map[types.Direction][]types.Zone{}
	for _, z := range activeZones {
		byDir[z.Direction] = append(byDir[z.Direction], z)
	}

	var pois []types.POI
	for _, dir := range []types.Direction{types.DirectionLong, types.DirectionShort} {
		group := byDir[dir]
		sort.Slice(group, func(i, j int) bool {
			qi, qj := qualityRank(group[i].Quality), qualityRank(group[j].Quality)
			if qi != qj {
				return qi > qj
			}
			return distanceTo(group[i], lastClose) < distanceTo(group[j], lastClose)
		})
		if maxPerSide > 0 && len(group) > maxPerSide {
			group = group[:maxPerSide]
		}
		for rank, z := range group {
			pois = append(pois, types.POI{Zone: z, Why: whyTrail(z, rank, lastClose)})
		}
	}
	return pois
}

func qualityRank(q types.ZoneQuality) int {
	switch q {
	case types.QualityStrong:
		return 3
	case types.QualityMedium:
		return 2
	case types.QualityWeak:
		return 1
	default:
		return 0
	}
}

func distanceTo(z types.Zone, lastClose float64) float64 {
	d := lastClose - z.Center()
	if d < 0 {
		return -d
	}
	return d
}

func whyTrail(z types.Zone, rank int, lastClose float64) []string {
	why := []string{fmt.Sprintf("zone_type_%s", z.ZoneType)}
	if rank == 0 {
		why = append(why, "top_ranked_for_direction")
	}
	why = append(why, fmt.Sprintf("quality_%s", z.Quality))
	if z.Meta != nil {
		if merged, ok := z.Meta["merged_from"]; ok {
			why = append(why, fmt.Sprintf("merged_zone_%v", merged))
		}
	}
	dist := distanceTo(z, lastClose)
	why = append(why, fmt.Sprintf("distance_%.6f", dist))
	return why
}
