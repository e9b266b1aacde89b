package types

// EntityRef identifies one lifecycle-tracked entity: a zone, pool or magnet.
type EntityRef struct {
	Kind JournalEntityKind
	ID   string
}

// JournalEntityState is the per-(symbol,tf) lifecycle record for one entity.
// Owned exclusively by a single journal instance keyed by (symbol, tf) —
// never shared across symbols or timeframes.
type JournalEntityState struct {
	Ref           EntityRef
	CreatedAtMs   int64
	CreatedStep   int64
	LastSeenStep  int64
	Touched       bool
	LastPriceMin  float64
	LastPriceMax  float64
	LastLevel     float64
	MissingSince  int64 // step index; -1 when currently present
	RemovedAtStep int64 // -1 when not yet finalized removed
}

// JournalEvent is one emitted lifecycle record.
type JournalEvent struct {
	TsMs      int64
	Symbol    string
	Tf        string
	Entity    JournalEntityKind
	Event     JournalEventKind
	ID        string
	Type      string // e.g. the zone's ZoneType / pool's LiqType, as a string
	Direction Direction
	Role      PoolRole
	PriceMin  *float64
	PriceMax  *float64
	Level     *float64
	Ctx       JournalEventCtx
}

// JournalEventCtx carries the event-kind-specific extra fields.
type JournalEventCtx struct {
	MergedFrom    []string
	Reason        RemovalReason
	ReasonSub     RemovalSubReason
	LifetimeBars  int64
	TouchType     TouchPolicy
	Late          bool
	RemovedMs     int64
}

// ZoneOverlapBucket counts zone pairs whose IoU meets a threshold.
type ZoneOverlapBucket struct {
	NActive    int
	TotalPairs int
	PairsIoUGe map[string]int // "0.2", "0.4", "0.6" -> count
}

// FrameRecord is the per-snapshot reconciliation marker.
type FrameRecord struct {
	TsMs            int64
	Symbol          string
	Tf              string
	Kind            ComputeKind
	PrimaryCloseMs  int64
	BarComplete     bool
	Counts          map[JournalEntityKind]int
	ActiveIDs       map[JournalEntityKind][]string
	ZoneOverlapActive ZoneOverlapBucket
}
