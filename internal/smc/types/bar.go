package types

import "math"

// Bar is one OHLCV candle for a single timeframe. OpenTimeMs/CloseTimeMs
// are Unix milliseconds (UTC); all price math downstream is done on the
// float64 fields directly — the core is a pure analytics layer, not a
// ledger, so shopspring/decimal-grade precision is left to callers that
// need it for money math.
type Bar struct {
	OpenTimeMs  int64
	CloseTimeMs int64
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	Complete    *bool // nil means "assume complete"; false marks an in-progress bar
}

// IsComplete treats a nil Complete flag as complete, matching callers that
// never set it.
func (b Bar) IsComplete() bool {
	return b.Complete == nil || *b.Complete
}

// Valid reports whether a bar satisfies the invariants in spec.md §3:
// close_time >= open_time and all prices finite.
func (b Bar) Valid() bool {
	if b.CloseTimeMs != 0 && b.CloseTimeMs < b.OpenTimeMs {
		return false
	}
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return false
		}
	}
	if b.High < b.Low {
		return false
	}
	return true
}

// TrueRange computes max(H-L, |H-prevClose|, |L-prevClose|) for ATR(14).
func TrueRange(cur Bar, prevClose float64, havePrev bool) float64 {
	hl := cur.High - cur.Low
	if !havePrev {
		return hl
	}
	hc := math.Abs(cur.High - prevClose)
	lc := math.Abs(cur.Low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}
