package types

import "time"

// Swing is a confirmed local extremum on H/L produced by the symmetric
// window detector. Strength equals the detection window, a cheap proxy
// for "how many bars on each side confirm this as an extremum".
type Swing struct {
	Index    int
	TimeMs   int64
	Price    float64
	Kind     SwingKind
	Strength int
}

// Leg connects two consecutive swings and carries the label derived from
// comparing the "to" swing against the last same-kind extremum seen.
type Leg struct {
	From           Swing
	To             Swing
	Label          LegLabel
	ReferencePrice float64 // the prior same-kind extremum used to derive Label; 0 if UNDEFINED
}

// Amplitude is the absolute price distance spanned by the leg.
func (l Leg) Amplitude() float64 {
	d := l.To.Price - l.From.Price
	if d < 0 {
		return -d
	}
	return d
}

// DurationMs is the wall-clock span of the leg in milliseconds.
func (l Leg) DurationMs() int64 {
	return l.To.TimeMs - l.From.TimeMs
}

// Range is the dealing range derived from a trailing window of bars.
type Range struct {
	High      float64
	Low       float64
	EqLevel   float64
	StartMs   int64
	EndMs     int64
	State     RangeState
}

// StructureEvent is a BOS or CHOCH firing on a leg.
type StructureEvent struct {
	EventType  StructureEventType
	Direction  Direction
	PriceLevel float64
	TimeMs     int64
	SourceLeg  Leg
}

// EventHistoryKey matches spec.md §4.1: (event_type, direction, time, price_level).
type EventHistoryKey struct {
	EventType  StructureEventType
	Direction  Direction
	TimeMs     int64
	PriceLevel float64
}

// EventHistoryEntry tracks first/last observation of a structure event for
// TTL + LRU pruning in the per-(symbol,tf) history.
type EventHistoryEntry struct {
	FirstSeen time.Time
	LastSeen  time.Time
}

// OteZone is the 62-79% retracement band of a qualifying leg.
type OteZone struct {
	Leg       Leg
	OteMin    float64
	OteMax    float64
	Direction Direction
	Role      OteRole
}

// StructureState is the aggregate output of the structure detector.
type StructureState struct {
	Swings       []Swing
	Legs         []Leg
	Trend        SmcTrend
	Bias         Direction
	LastChochMs  int64
	HasLastChoch bool
	Events       []StructureEvent
	ActiveRange  *Range
	OteZones     []OteZone
	ATR14        float64
	ATRAvailable bool
	AtrMedian    float64
	Reason       string // non-empty on degenerate/empty input
}
