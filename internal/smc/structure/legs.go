package structure

import "github.com/sawpanic/smc-core/internal/smc/types"

// BuildLegs connects each consecutive pair of swings (already sorted by
// index) into a Leg and labels the arrival swing against the last
// same-kind extremum seen so far: a new HIGH above the prior HIGH is HH,
// below it is LH; a new LOW above the prior LOW is HL, below it is LL.
// The very first occurrence of each kind has no reference and is
// UNDEFINED.
func BuildLegs(swings []types.Swing) []types.Leg {
	if len(swings) < 2 {
		return nil
	}
	legs := make([]types.Leg, 0, len(swings)-1)
	var lastHigh, lastLow float64
	var haveHigh, haveLow bool

	for i := 1; i < len(swings); i++ {
		from, to := swings[i-1], swings[i]
		leg := types.Leg{From: from, To: to}

		switch to.Kind {
		case types.SwingHigh:
			if haveHigh {
				leg.ReferencePrice = lastHigh
				if to.Price > lastHigh {
					leg.Label = types.LegHH
				} else {
					leg.Label = types.LegLH
				}
			} else {
				leg.Label = types.LegUndefined
			}
			lastHigh, haveHigh = to.Price, true
		case types.SwingLow:
			if haveLow {
				leg.ReferencePrice = lastLow
				if to.Price > lastLow {
					leg.Label = types.LegHL
				} else {
					leg.Label = types.LegLL
				}
			} else {
				leg.Label = types.LegUndefined
			}
			lastLow, haveLow = to.Price, true
		}

		legs = append(legs, leg)
	}
	return legs
}
