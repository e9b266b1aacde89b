package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// DeriveTrend classifies the most recent leg run: UP when the last two
// labeled legs read HH/HL (an uptrend's higher-high, higher-low cadence),
// DOWN on LL/LH, RANGE when the labels disagree, UNKNOWN with fewer than
// two labeled legs. Matches spec.md §4.1's "trend follows the last
// confirmed leg pair" rule.
func DeriveTrend(legs []types.Leg) types.SmcTrend {
	labeled := make([]types.Leg, 0, len(legs))
	for _, l := range legs {
		if l.Label != types.LegUndefined {
			labeled = append(labeled, l)
		}
	}
	if len(labeled) < 2 {
		return types.TrendUnknown
	}

	last := labeled[len(labeled)-1]
	prev := labeled[len(labeled)-2]

	up := isUpLabel(last.Label) && isUpLabel(prev.Label)
	down := isDownLabel(last.Label) && isDownLabel(prev.Label)

	switch {
	case up:
		return types.TrendUp
	case down:
		return types.TrendDown
	default:
		return types.TrendRange
	}
}

func isUpLabel(l types.LegLabel) bool   { return l == types.LegHH || l == types.LegHL }
func isDownLabel(l types.LegLabel) bool { return l == types.LegLL || l == types.LegLH }

// BiasFromTrend maps a trend classification to a default directional bias
// used when no CHOCH has fired yet.
func BiasFromTrend(t types.SmcTrend) types.Direction {
	switch t {
	case types.TrendUp:
		return types.DirectionLong
	case types.TrendDown:
		return types.DirectionShort
	default:
		return types.DirectionNeutral
	}
}
