package stage6

import (
	"math"

	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Decide runs the gates, and on pass scores both scenarios directly — 4_2
// is always SHORT, 4_3 is always LONG, per the literal formula, never
// derived from the primary structure's bias — then applies minScore and
// scoreDelta to pick a winner or fall back to UNCLEAR/LOW_SCORE or
// UNCLEAR/CONFLICT.
func Decide(cfg config.Stage6Config, in Input) types.Stage6Decision {
	htf := assessHTF(cfg, in.HTF)

	if reason := runGates(cfg, in, htf); reason != nil {
		return unclear(*reason, in, htf)
	}

	score42, score43, why42, why43, flags := scoreScenarios(cfg, in, htf)

	telemetry := types.Stage6Telemetry{
		HTFBias: htf.Bias, HTFBiasSource: htf.BiasSource,
		Score42: score42, Score43: score43,
		Flags: flags,
	}

	winner, loser := score42, score43
	winnerID, winnerDir, winnerWhy := types.Scenario42, types.DirectionShort, why42
	if score43 >= score42 {
		winner, loser = score43, score42
		winnerID, winnerDir, winnerWhy = types.Scenario43, types.DirectionLong, why43
	}
	confidence := confidenceFromScores(winner, loser)

	if winner < cfg.MinScore {
		telemetry.UnclearReason = types.ReasonLowScore
		telemetry.GatesTriggered = append(telemetry.GatesTriggered, "min_score")
		return types.Stage6Decision{ScenarioID: types.ScenarioUnclear, Direction: types.DirectionNeutral, Confidence: confidence, Why: winnerWhy, KeyLevels: keyLevels(in), Telemetry: telemetry}
	}
	if winner-loser < cfg.ScoreDelta {
		telemetry.UnclearReason = types.ReasonConflict
		telemetry.GatesTriggered = append(telemetry.GatesTriggered, "score_delta")
		return types.Stage6Decision{ScenarioID: types.ScenarioUnclear, Direction: types.DirectionNeutral, Confidence: confidence, Why: winnerWhy, KeyLevels: keyLevels(in), Telemetry: telemetry}
	}

	return types.Stage6Decision{
		ScenarioID: winnerID, Direction: winnerDir, Confidence: confidence,
		Why: winnerWhy, KeyLevels: keyLevels(in), Telemetry: telemetry,
	}
}

// confidenceFromScores rescales the winner/loser score gap through a
// sigmoid into [0.5, 0.95]: a zero gap maps to 0.725, a blowout saturates
// near 0.95.
func confidenceFromScores(winner, loser float64) float64 {
	diff := winner - loser
	sigmoid := 1.0 / (1.0 + math.Exp(-diff/2))
	c := 0.5 + sigmoid*0.45
	if c < 0.5 {
		c = 0.5
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func unclear(reason types.UnclearReason, in Input, htf htfAssessment) types.Stage6Decision {
	return types.Stage6Decision{
		ScenarioID: types.ScenarioUnclear, Direction: types.DirectionNeutral,
		Why:       []string{string(reason)},
		KeyLevels: keyLevels(in),
		Telemetry: types.Stage6Telemetry{UnclearReason: reason, HTFBias: htf.Bias, HTFBiasSource: htf.BiasSource},
	}
}

func keyLevels(in Input) map[string]float64 {
	levels := map[string]float64{}
	if in.Primary.ActiveRange != nil {
		levels["range_high"] = in.Primary.ActiveRange.High
		levels["range_low"] = in.Primary.ActiveRange.Low
		levels["range_eq"] = in.Primary.ActiveRange.EqLevel
	}
	if in.HasLastPrice {
		levels["last_price"] = in.LastPrice
	}
	return levels
}
