package journal

import (
	"fmt"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
	"github.com/sawpanic/smc-core/internal/smc/zones"
)

// BuildFrameRecord produces the per-snapshot reconciliation marker: entity
// counts and active IDs by kind, plus the active zone overlap histogram
// (spec.md §4.7's preview-vs-close comparison point).
func BuildFrameRecord(cfg config.JournalConfig, symbol, tf string, kind types.ComputeKind, primaryCloseMs int64, barComplete bool, zoneList []types.Zone, poolRefs, magnetRefs []types.EntityRef, nowMs int64) types.FrameRecord {
	counts := map[types.JournalEntityKind]int{
		types.EntityZone:   len(zoneList),
		types.EntityPool:   len(poolRefs),
		types.EntityMagnet: len(magnetRefs),
	}

	activeIDs := map[types.JournalEntityKind][]string{}
	zoneIDs := make([]string, 0, len(zoneList))
	for _, z := range zoneList {
		zoneIDs = append(zoneIDs, z.ZoneID)
	}
	activeIDs[types.EntityZone] = zoneIDs
	activeIDs[types.EntityPool] = refIDs(poolRefs)
	activeIDs[types.EntityMagnet] = refIDs(magnetRefs)

	return types.FrameRecord{
		TsMs: nowMs, Symbol: symbol, Tf: tf, Kind: kind,
		PrimaryCloseMs: primaryCloseMs, BarComplete: barComplete,
		Counts: counts, ActiveIDs: activeIDs,
		ZoneOverlapActive: zoneOverlapBucket(zoneList, cfg.IoUBuckets),
	}
}

func refIDs(refs []types.EntityRef) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}

// zoneOverlapBucket computes pairwise IoU across every active zone and
// buckets the count of pairs meeting each configured threshold.
func zoneOverlapBucket(zoneList []types.Zone, thresholds []float64) types.ZoneOverlapBucket {
	bucket := types.ZoneOverlapBucket{NActive: len(zoneList), PairsIoUGe: map[string]int{}}
	for _, th := range thresholds {
		bucket.PairsIoUGe[fmt.Sprintf("%.1f", th)] = 0
	}

	for i := 0; i < len(zoneList); i++ {
		for j := i + 1; j < len(zoneList); j++ {
			bucket.TotalPairs++
			iou := zones.IoU(zoneList[i], zoneList[j])
			for _, th := range thresholds {
				if iou >= th {
					bucket.PairsIoUGe[fmt.Sprintf("%.1f", th)]++
				}
			}
		}
	}
	return bucket
}
