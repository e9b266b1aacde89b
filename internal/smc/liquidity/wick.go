package liquidity

import (
	"fmt"
	"math"

	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

type wickCandidate struct {
	side   types.SwingKind
	level  float64
	size   float64
	timeMs int64
}

// DetectWickClusters finds repeated wick rejections near a level across the
// frame and reconciles them against the caller-supplied previous snapshot
// so a cluster keeps its ClusterID as long as its level stays within
// tolerance (spec.md §4.2: "identified across snapshots via
// WickClusterID"). Cluster IDs are content-addressed (side + rounded level
// + first-seen time) rather than random, so identical input always
// produces an identical ID (spec.md §9 determinism).
func DetectWickClusters(bars []types.Bar, atr ohlcv.ATRResult, prev []types.WickCluster, wickRatio float64, minLifeBars int, minDensity, minAmpAtr, clusterTolPct, maxMoveAtr float64) []types.WickCluster {
	candidates := collectWickCandidates(bars, wickRatio)
	if len(candidates) == 0 {
		return carryForwardStale(prev)
	}

	minAmp := 0.0
	if atr.Available {
		minAmp = minAmpAtr * atr.Value
	}

	clusters := groupCandidates(candidates, clusterTolPct, minAmp)
	maxMove := math.MaxFloat64
	if atr.Available && atr.Value > 0 {
		maxMove = maxMoveAtr * atr.Value
	}

	out := make([]types.WickCluster, 0, len(clusters))
	for _, c := range clusters {
		density := float64(c.count) / float64(lifeBars(c, bars))
		if c.count < 1 || lifeBars(c, bars) < minLifeBars || density < minDensity {
			continue
		}
		if c.maxWick-c.minWick > maxMove {
			continue
		}
		id := matchPrevID(prev, c.side, c.level, clusterTolPct)
		if id == "" {
			id = fmt.Sprintf("wc_%s_%d_%d", c.side, int64(c.level*100), c.firstTs)
		}
		out = append(out, types.WickCluster{
			ClusterID: id, Side: c.side, Level: c.level, Count: c.count,
			MaxWick: c.maxAmp, FirstTsMs: c.firstTs, LastTsMs: c.lastTs, Source: "wick_scan",
		})
	}
	return out
}

type cluster struct {
	side             types.SwingKind
	level            float64
	count            int
	maxAmp           float64
	maxWick, minWick float64
	firstTs, lastTs  int64
}

func collectWickCandidates(bars []types.Bar, wickRatio float64) []wickCandidate {
	var out []wickCandidate
	for _, b := range bars {
		bodyTop, bodyBot := b.Open, b.Close
		if bodyBot > bodyTop {
			bodyTop, bodyBot = bodyBot, bodyTop
		}
		body := bodyTop - bodyBot
		upper := b.High - bodyTop
		lower := bodyBot - b.Low
		if body > 0 {
			if upper/body >= wickRatio {
				out = append(out, wickCandidate{side: types.SwingHigh, level: b.High, size: upper, timeMs: b.OpenTimeMs})
			}
			if lower/body >= wickRatio {
				out = append(out, wickCandidate{side: types.SwingLow, level: b.Low, size: lower, timeMs: b.OpenTimeMs})
			}
		}
	}
	return out
}

func groupCandidates(candidates []wickCandidate, tolPct, minAmp float64) []cluster {
	var clusters []cluster
	for _, cand := range candidates {
		if cand.size < minAmp {
			continue
		}
		matched := false
		for i := range clusters {
			if clusters[i].side != cand.side {
				continue
			}
			tol := tolPct * clusters[i].level
			if math.Abs(cand.level-clusters[i].level) > tol {
				continue
			}
			clusters[i].count++
			clusters[i].level = (clusters[i].level*float64(clusters[i].count-1) + cand.level) / float64(clusters[i].count)
			if cand.size > clusters[i].maxAmp {
				clusters[i].maxAmp = cand.size
			}
			if cand.level > clusters[i].maxWick {
				clusters[i].maxWick = cand.level
			}
			if cand.level < clusters[i].minWick {
				clusters[i].minWick = cand.level
			}
			if cand.timeMs < clusters[i].firstTs {
				clusters[i].firstTs = cand.timeMs
			}
			if cand.timeMs > clusters[i].lastTs {
				clusters[i].lastTs = cand.timeMs
			}
			matched = true
			break
		}
		if !matched {
			clusters = append(clusters, cluster{
				side: cand.side, level: cand.level, count: 1, maxAmp: cand.size,
				maxWick: cand.level, minWick: cand.level, firstTs: cand.timeMs, lastTs: cand.timeMs,
			})
		}
	}
	return clusters
}

func lifeBars(c cluster, bars []types.Bar) int {
	if len(bars) == 0 {
		return 0
	}
	span := c.lastTs - c.firstTs
	barSpan := bars[1%len(bars)].OpenTimeMs - bars[0].OpenTimeMs
	if barSpan <= 0 {
		return c.count
	}
	return int(span/barSpan) + 1
}

func matchPrevID(prev []types.WickCluster, side types.SwingKind, level, tolPct float64) string {
	for _, p := range prev {
		if p.Side != side {
			continue
		}
		if math.Abs(p.Level-level) <= tolPct*p.Level {
			return p.ClusterID
		}
	}
	return ""
}

// carryForwardStale returns previously tracked clusters unchanged when a
// frame produces no fresh wick candidates at all (e.g. a very quiet bar),
// matching spec.md §4.2's "clusters persist until invalidated, not until
// the next candidate happens to appear".
func carryForwardStale(prev []types.WickCluster) []types.WickCluster {
	return prev
}
