// Package stage6 implements subsystem 5: the deterministic 4_2/4_3/UNCLEAR
// scenario classifier. It gates first (any missing precondition routes
// straight to UNCLEAR with a tagged reason) and only scores when every
// gate passes, mirroring the teacher's two-phase gate-then-score pipeline
// in internal/domain/gates/evaluate.go and internal/domain/scoring/composite.go.
package stage6

import (
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// HTFContext carries the higher-timeframe bars the classifier derives its
// independent bias from, keyed by timeframe label ("4h", "1h").
type HTFContext struct {
	Bars map[string][]types.Bar
}

// Input bundles every subsystem output Stage6 reads.
type Input struct {
	Symbol       string
	LastPrice    float64
	HasLastPrice bool
	Bars         []types.Bar // primary-timeframe trailing bars, for the hold/fail-hold close checks
	Primary      types.StructureState
	Liquidity    types.LiquidityState
	Zones        types.ZonesState
	Execution    []types.ExecutionEvent
	HTF          HTFContext
}

// runGates checks the ordered preconditions and returns the first one that
// fails, nil once every gate passes. htf is the caller's already-computed
// HTF-Lite read, so the ATR/bias checks below don't recompute it.
func runGates(cfg config.Stage6Config, in Input, htf htfAssessment) *types.UnclearReason {
	reason := func(r types.UnclearReason) *types.UnclearReason { return &r }

	if !in.HasLastPrice {
		return reason(types.ReasonNoLastPrice)
	}

	bars4h, ok4h := in.HTF.Bars["4h"]
	bars1h, ok1h := in.HTF.Bars["1h"]
	if !ok4h || !ok1h || len(bars4h) < cfg.MinHTFBars || len(bars1h) < cfg.MinHTFBars {
		return reason(types.ReasonNoHTFFrames)
	}

	if !htf.ATR.Available {
		return reason(types.ReasonATRUnavailable)
	}

	if htf.Bias == types.DirectionNeutral && !htf.Mixed {
		return reason(types.ReasonNoHTF)
	}

	if in.Primary.ActiveRange == nil {
		return reason(types.ReasonNoRange)
	}

	if len(in.Primary.Events) == 0 && len(in.Primary.Swings) < 2 {
		return reason(types.ReasonNoStructure)
	}

	return nil
}
