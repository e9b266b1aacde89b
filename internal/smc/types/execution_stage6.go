package types

// ExecutionEvent is a fast-timeframe micro-event emitted only while in_play.
type ExecutionEvent struct {
	EventType SmcSignalType
	Direction Direction
	TimeMs    int64
	Price     float64
	Level     float64
	Ref       ExecutionRef
	POIZoneID string
	Meta      map[string]any
}

// Stage6Decision is the deterministic scenario classification for one snapshot.
type Stage6Decision struct {
	ScenarioID ScenarioID
	Direction  Direction
	Confidence float64
	Why        []string
	KeyLevels  map[string]float64
	Telemetry  Stage6Telemetry
}

// Stage6Telemetry carries the gate/score breakdown for QA and UI debugging.
type Stage6Telemetry struct {
	UnclearReason UnclearReason
	HTFBias       Direction
	HTFBiasSource string // "context" | "htf_lite_pd" | "none"
	Score42       float64
	Score43       float64
	GatesTriggered []string
	Flags         map[string]bool
}

// Flip records one hysteresis-manager stable-scenario transition, for QA
// counters and journaling — every replacement of an existing stable
// decision (confirmed, ttl or hard invalidation) gets one; the first
// stable decision and its clearing on a persistent UNCLEAR record none.
type Flip struct {
	From   ScenarioID
	To     ScenarioID
	Reason string
}
