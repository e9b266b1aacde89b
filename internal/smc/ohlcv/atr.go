package ohlcv

import "github.com/sawpanic/smc-core/internal/smc/types"

// ATRResult is the classic True-Range rolling average with an explicit
// availability flag — spec.md §7 requires ATR-unavailable to degrade
// thresholds to their pct component rather than error out.
type ATRResult struct {
	Value     float64
	Median    float64
	Available bool
}

// ATR14 computes a 14-period ATR with min_periods=14 (spec.md §4.1). It
// also returns the median of the trailing ATR series ("atr_last <=
// atr_median*1.25" calm-market check used by the AMD FSM), taken over every
// rolling 14-bar ATR value the input yields, via sort-before-sum for
// determinism (spec.md §9).
func ATR14(bars []types.Bar) ATRResult {
	const period = 14
	if len(bars) < period+1 {
		return ATRResult{}
	}

	trs := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		trs = append(trs, types.TrueRange(bars[i], bars[i-1].Close, true))
	}
	if len(trs) < period {
		return ATRResult{}
	}

	window := trs[len(trs)-period:]
	sum := 0.0
	sorted := append([]float64(nil), window...)
	sortFloats(sorted)
	for _, v := range sorted {
		sum += v
	}
	atr := sum / float64(period)

	// Median ATR over a longer trailing series (for the "calm" check),
	// falling back to the single-window ATR when there isn't enough history.
	medianSeries := rollingATRSeries(trs, period)
	median := atr
	if len(medianSeries) > 0 {
		median = medianOf(medianSeries)
	}

	return ATRResult{Value: atr, Median: median, Available: true}
}

// rollingATRSeries produces one ATR value per trailing window of `period`
// true-range samples, oldest first.
func rollingATRSeries(trs []float64, period int) []float64 {
	if len(trs) < period {
		return nil
	}
	out := make([]float64, 0, len(trs)-period+1)
	for end := period; end <= len(trs); end++ {
		w := trs[end-period : end]
		sorted := append([]float64(nil), w...)
		sortFloats(sorted)
		sum := 0.0
		for _, v := range sorted {
			sum += v
		}
		out = append(out, sum/float64(period))
	}
	return out
}

func medianOf(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sortFloats(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sortFloats(v []float64) {
	// insertion sort: these windows are tiny (14 elements), and a stable,
	// allocation-free sort keeps accumulation order canonical without
	// pulling in sort.Float64s semantics around NaN (already filtered upstream).
	for i := 1; i < len(v); i++ {
		key := v[i]
		j := i - 1
		for j >= 0 && v[j] > key {
			v[j+1] = v[j]
			j--
		}
		v[j+1] = key
	}
}
