// Package config defines the SMC core's single immutable configuration
// record: frozen defaults, an optional YAML override loader, and the
// validation used to catch a bad override before it reaches the pipeline —
// grounded on the teacher's internal/config/regime/weights.go (a yaml-tagged
// struct with its own ValidateRegimeWeights) and internal/config/guards.go's
// load-then-validate pattern.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config groups tunables by the subsystem that consumes them, matching
// spec.md §6 "Config surface: a single immutable record with fields
// grouped by subsystem".
type Config struct {
	Structure StructureConfig `yaml:"structure"`
	Liquidity LiquidityConfig `yaml:"liquidity"`
	Zones     ZonesConfig     `yaml:"zones"`
	Execution ExecutionConfig `yaml:"execution"`
	Stage6    Stage6Config    `yaml:"stage6"`
	State     StateConfig     `yaml:"state"`
	Journal   JournalConfig   `yaml:"journal"`
}

type StructureConfig struct {
	MinSwingBars            int     `yaml:"min_swing_bars"`
	MinRangeBars            int     `yaml:"min_range_bars"`
	EqTolerancePct          float64 `yaml:"eq_tolerance_pct"`
	BosKAtr                 float64 `yaml:"bos_k_atr"`
	BosKPct                 float64 `yaml:"bos_k_pct"`
	LegMinAtr               float64 `yaml:"leg_min_atr"` // OTE leg amplitude gate
	OteMin                  float64 `yaml:"ote_min"`
	OteMax                  float64 `yaml:"ote_max"`
	OteTrendOnly            bool    `yaml:"ote_trend_only"`
	OtePrimaryOnly          bool    `yaml:"ote_primary_only"`
	OteMaxActivePerSide     int     `yaml:"ote_max_active_per_side"`
	EventHistoryRetentionMin int    `yaml:"event_history_retention_minutes"`
	EventHistoryMaxEntries  int     `yaml:"event_history_max_entries"`
}

type LiquidityConfig struct {
	EqTolerancePct       float64 `yaml:"eq_tolerance_pct"`
	BreakPct             float64 `yaml:"break_pct"`
	MinBreakPct          float64 `yaml:"min_break_pct"`
	WickRatio            float64 `yaml:"wick_ratio"`
	WickMinLifeBars      int     `yaml:"wick_min_life_bars"`
	WickMinDensity       float64 `yaml:"wick_min_density"`
	WickMinAmplitudeAtr  float64 `yaml:"wick_min_amplitude_atr"`
	WickClusterTolPct    float64 `yaml:"wick_cluster_tol_pct"`
	WickClusterMaxMoveAtr float64 `yaml:"wick_cluster_max_move_atr"`
	TopKPerType          int     `yaml:"top_k_per_type"`
	GlobalCap            int     `yaml:"global_cap"`
	MagnetTolerancePct   float64 `yaml:"magnet_tolerance_pct"`
	CalmAtrMedianMult    float64 `yaml:"calm_atr_median_mult"`
	MaxLiquidityTargets  int     `yaml:"max_liquidity_targets"`
}

type ZonesConfig struct {
	ObLegMinAtr             float64 `yaml:"ob_leg_min_atr"`
	ObLegMaxBars            int     `yaml:"ob_leg_max_bars"`
	ObBodyShareStrong       float64 `yaml:"ob_body_share_strong"` // >= this -> BODY_05
	ObBodyShareWeak         float64 `yaml:"ob_body_share_weak"`   // <= this -> BODY_TOUCH
	ObMaxActiveDistanceAtr  float64 `yaml:"ob_max_active_distance_atr"`
	MaxZoneSpanAtr          float64 `yaml:"max_zone_span_atr"`
	BreakerMaxSweepDelayMin int     `yaml:"breaker_max_sweep_delay_minutes"`
	BreakerMaxOBAgeMin      int     `yaml:"breaker_max_ob_age_minutes"`
	BreakerMinDisplacementAtr float64 `yaml:"breaker_min_displacement_atr"`
	BreakerMinBodyPct       float64 `yaml:"breaker_min_body_pct"`
	FvgMinGapAtr            float64 `yaml:"fvg_min_gap_atr"`
	FvgMinGapPct            float64 `yaml:"fvg_min_gap_pct"`
	FvgMaxAgeMin            int     `yaml:"fvg_max_age_minutes"`
	ZoneMergeIoUThreshold   float64 `yaml:"zone_merge_iou_threshold"`
	PoiMaxPerSide           int     `yaml:"poi_max_per_side"`
	TouchEpsilon            float64 `yaml:"touch_epsilon"`
	TouchPolicy             string  `yaml:"touch_policy"` // wick|body|close
}

type ExecutionConfig struct {
	InPlayRadiusAtr   float64 `yaml:"in_play_radius_atr"`
	HoldBars          int     `yaml:"hold_bars"`
	SweepImpulseKAtr  float64 `yaml:"sweep_impulse_k_atr"`
	PivotWindow       int     `yaml:"pivot_window"`
	MaxEvents         int     `yaml:"max_events"`
}

type Stage6Config struct {
	MinHTFBars       int     `yaml:"min_htf_bars"`
	DRWindowBars4h   int     `yaml:"dr_window_bars_4h"`
	DRWindowBars1h   int     `yaml:"dr_window_bars_1h"`
	HoldBars         int     `yaml:"hold_bars"`
	EpsilonAtrMult   float64 `yaml:"epsilon_atr_mult"`
	MinScore         float64 `yaml:"min_score"`
	ScoreDelta       float64 `yaml:"score_delta"`
	EventsAfterSweepWindowMin int `yaml:"events_after_sweep_window_minutes"`
}

// StateConfig tunes the hysteresis manager that smooths Stage6's
// snapshot-to-snapshot decisions into a stable public signal.
type StateConfig struct {
	ConfirmBars      int     `yaml:"confirm_bars"`
	SwitchDelta      float64 `yaml:"switch_delta"`
	TTLMinutes       int     `yaml:"ttl_minutes"`
}

type JournalConfig struct {
	RemovedConfirmCloseSteps int     `yaml:"removed_confirm_close_steps"`
	RemovedCacheSteps        int     `yaml:"removed_cache_steps"`
	TouchEpsilon             float64 `yaml:"touch_epsilon"`
	IoUBuckets               []float64 `yaml:"iou_buckets"`
}

// Default returns the frozen defaults. Changing these values is a release
// event, per spec.md §6 — callers that need different tuning construct
// their own Config rather than mutating the return value of Default().
func Default() Config {
	return Config{
		Structure: StructureConfig{
			MinSwingBars:             3,
			MinRangeBars:             20,
			EqTolerancePct:           0.0015,
			BosKAtr:                  0.5,
			BosKPct:                  0.001,
			LegMinAtr:                1.0,
			OteMin:                   0.62,
			OteMax:                   0.79,
			OteTrendOnly:             true,
			OtePrimaryOnly:           false,
			OteMaxActivePerSide:      2,
			EventHistoryRetentionMin: 240,
			EventHistoryMaxEntries:   500,
		},
		Liquidity: LiquidityConfig{
			EqTolerancePct:        0.0015,
			BreakPct:              0.0008,
			MinBreakPct:           0.0003,
			WickRatio:             2.0,
			WickMinLifeBars:       1,
			WickMinDensity:        0.02,
			WickMinAmplitudeAtr:   0.15,
			WickClusterTolPct:     0.0015,
			WickClusterMaxMoveAtr: 0.5,
			TopKPerType:           5,
			GlobalCap:             20,
			MagnetTolerancePct:    0.002,
			CalmAtrMedianMult:     1.25,
			MaxLiquidityTargets:   3,
		},
		Zones: ZonesConfig{
			ObLegMinAtr:               1.0,
			ObLegMaxBars:              20,
			ObBodyShareStrong:         0.65,
			ObBodyShareWeak:           0.25,
			ObMaxActiveDistanceAtr:    6.0,
			MaxZoneSpanAtr:            3.0,
			BreakerMaxSweepDelayMin:   240,
			BreakerMaxOBAgeMin:        1440,
			BreakerMinDisplacementAtr: 0.8,
			BreakerMinBodyPct:         0.55,
			FvgMinGapAtr:              0.1,
			FvgMinGapPct:              0.0005,
			FvgMaxAgeMin:              1440,
			ZoneMergeIoUThreshold:     0.5,
			PoiMaxPerSide:             3,
			TouchEpsilon:              0.0005,
			TouchPolicy:               "close",
		},
		Execution: ExecutionConfig{
			InPlayRadiusAtr:  0.6,
			HoldBars:         3,
			SweepImpulseKAtr: 0.3,
			PivotWindow:      3,
			MaxEvents:        20,
		},
		Stage6: Stage6Config{
			MinHTFBars:                16,
			DRWindowBars4h:            30,
			DRWindowBars1h:            48,
			HoldBars:                  3,
			EpsilonAtrMult:            0.05,
			MinScore:                  2.1,
			ScoreDelta:                0.65,
			EventsAfterSweepWindowMin: 5,
		},
		State: StateConfig{
			ConfirmBars: 2,
			SwitchDelta: 0.3,
			TTLMinutes:  180,
		},
		Journal: JournalConfig{
			RemovedConfirmCloseSteps: 2,
			RemovedCacheSteps:        3,
			TouchEpsilon:             0.0005,
			IoUBuckets:               []float64{0.2, 0.4, 0.6},
		},
	}
}

// Load reads a YAML override file on top of Default() and validates the
// result. A missing field in path keeps its default value; an unknown field
// is rejected by yaml.v3's strict decoder rather than silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the structural invariants a malformed override could
// break (ranges, non-negativity) before it reaches the pipeline.
func (c Config) Validate() error {
	if c.Structure.OteMin >= c.Structure.OteMax {
		return fmt.Errorf("structure.ote_min (%.3f) must be < ote_max (%.3f)", c.Structure.OteMin, c.Structure.OteMax)
	}
	if c.Structure.MinSwingBars < 1 {
		return fmt.Errorf("structure.min_swing_bars must be >= 1, got %d", c.Structure.MinSwingBars)
	}
	if c.Zones.ZoneMergeIoUThreshold <= 0 || c.Zones.ZoneMergeIoUThreshold > 1 {
		return fmt.Errorf("zones.zone_merge_iou_threshold must be in (0,1], got %.3f", c.Zones.ZoneMergeIoUThreshold)
	}
	if c.Zones.PoiMaxPerSide < 1 {
		return fmt.Errorf("zones.poi_max_per_side must be >= 1, got %d", c.Zones.PoiMaxPerSide)
	}
	if c.Stage6.MinScore <= 0 {
		return fmt.Errorf("stage6.min_score must be > 0, got %.3f", c.Stage6.MinScore)
	}
	if c.Stage6.ScoreDelta <= 0 {
		return fmt.Errorf("stage6.score_delta must be > 0, got %.3f", c.Stage6.ScoreDelta)
	}
	if c.State.ConfirmBars < 1 {
		return fmt.Errorf("state.confirm_bars must be >= 1, got %d", c.State.ConfirmBars)
	}
	if c.State.TTLMinutes < 1 {
		return fmt.Errorf("state.ttl_minutes must be >= 1, got %d", c.State.TTLMinutes)
	}
	if c.Journal.RemovedConfirmCloseSteps < 0 {
		return fmt.Errorf("journal.removed_confirm_close_steps must be >= 0, got %d", c.Journal.RemovedConfirmCloseSteps)
	}
	return nil
}
