// Package types holds the plain data model shared by every SMC subsystem:
// enums, swing/leg/zone/pool records and the top-level hint envelope.
// Nothing in this package does any computation; it exists so structure,
// liquidity, zones, execution, stage6, state and journal can all speak
// the same nouns without importing each other.
package types

// Direction is a trade-side bias, never "both".
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// SwingKind distinguishes a local high from a local low.
type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// LegLabel classifies a leg against the last same-kind extremum.
type LegLabel string

const (
	LegHH        LegLabel = "HH"
	LegHL        LegLabel = "HL"
	LegLH        LegLabel = "LH"
	LegLL        LegLabel = "LL"
	LegUndefined LegLabel = "UNDEFINED"
)

// SmcTrend is the structure detector's trend classification.
type SmcTrend string

const (
	TrendUp      SmcTrend = "UP"
	TrendDown    SmcTrend = "DOWN"
	TrendRange   SmcTrend = "RANGE"
	TrendUnknown SmcTrend = "UNKNOWN"
)

// RangeState locates the last close against the dealing range midpoint.
type RangeState string

const (
	RangeNone    RangeState = "NONE"
	RangeInside  RangeState = "INSIDE"
	RangeDevUp   RangeState = "DEV_UP"
	RangeDevDown RangeState = "DEV_DOWN"
)

// StructureEventType is BOS or CHOCH.
type StructureEventType string

const (
	EventBOS   StructureEventType = "BOS"
	EventCHOCH StructureEventType = "CHOCH"
)

// OteRole marks an OTE zone's relationship to the prevailing bias.
type OteRole string

const (
	OteRolePrimary     OteRole = "PRIMARY"
	OteRoleCountertrend OteRole = "COUNTERTREND"
	OteRoleNeutral     OteRole = "NEUTRAL"
)

// SmcLiquidityType enumerates the pool taxonomy.
type SmcLiquidityType string

const (
	LiqEQH           SmcLiquidityType = "EQH"
	LiqEQL           SmcLiquidityType = "EQL"
	LiqTLQ           SmcLiquidityType = "TLQ"
	LiqSLQ           SmcLiquidityType = "SLQ"
	LiqRangeExtreme  SmcLiquidityType = "RANGE_EXTREME"
	LiqSessionHigh   SmcLiquidityType = "SESSION_HIGH"
	LiqSessionLow    SmcLiquidityType = "SESSION_LOW"
	LiqSFP           SmcLiquidityType = "SFP"
	LiqWickCluster   SmcLiquidityType = "WICK_CLUSTER"
	LiqOther         SmcLiquidityType = "OTHER"
)

// SmcAmdPhase is the Accumulation/Manipulation/Distribution FSM output.
type SmcAmdPhase string

const (
	AmdAccumulation SmcAmdPhase = "ACCUMULATION"
	AmdManipulation SmcAmdPhase = "MANIPULATION"
	AmdDistribution SmcAmdPhase = "DISTRIBUTION"
	AmdNeutral      SmcAmdPhase = "NEUTRAL"
)

// PoolRole mirrors bias alignment for a liquidity pool or zone.
type PoolRole string

const (
	RolePrimary     PoolRole = "PRIMARY"
	RoleCountertrend PoolRole = "COUNTERTREND"
	RoleNeutral     PoolRole = "NEUTRAL"
)

// SmcZoneType enumerates POI/zone kinds.
type SmcZoneType string

const (
	ZoneOrderBlock SmcZoneType = "ORDER_BLOCK"
	ZoneBreaker    SmcZoneType = "BREAKER"
	ZoneImbalance  SmcZoneType = "IMBALANCE"
)

// EntryMode classifies how price is expected to tag a zone.
type EntryMode string

const (
	EntryBody05    EntryMode = "BODY_05"
	EntryWick05    EntryMode = "WICK_05"
	EntryBodyTouch EntryMode = "BODY_TOUCH"
	EntryWickTouch EntryMode = "WICK_TOUCH"
	EntryUnknown   EntryMode = "UNKNOWN"
)

// ZoneQuality is a coarse confidence bucket.
type ZoneQuality string

const (
	QualityStrong  ZoneQuality = "STRONG"
	QualityMedium  ZoneQuality = "MEDIUM"
	QualityWeak    ZoneQuality = "WEAK"
	QualityUnknown ZoneQuality = "UNKNOWN"
)

// SmcSignalType enumerates execution micro-events.
type SmcSignalType string

const (
	SignalSweep     SmcSignalType = "SWEEP"
	SignalMicroBOS  SmcSignalType = "MICRO_BOS"
	SignalMicroCHOCH SmcSignalType = "MICRO_CHOCH"
	SignalRetestOK  SmcSignalType = "RETEST_OK"
)

// ExecutionRef names what an execution event is relative to.
type ExecutionRef string

const (
	RefPOI     ExecutionRef = "POI"
	RefTarget  ExecutionRef = "TARGET"
	RefUnknown ExecutionRef = "UNKNOWN"
)

// ScenarioID is the Stage6 classifier's decision tag.
type ScenarioID string

const (
	Scenario42      ScenarioID = "4_2"
	Scenario43      ScenarioID = "4_3"
	ScenarioUnclear ScenarioID = "UNCLEAR"
)

// UnclearReason enumerates Stage6's gate-failure tags.
type UnclearReason string

const (
	ReasonNoLastPrice    UnclearReason = "NO_LAST_PRICE"
	ReasonNoHTFFrames    UnclearReason = "NO_HTF_FRAMES"
	ReasonATRUnavailable UnclearReason = "ATR_UNAVAILABLE"
	ReasonNoHTF          UnclearReason = "NO_HTF"
	ReasonNoRange        UnclearReason = "NO_RANGE"
	ReasonNoStructure    UnclearReason = "NO_STRUCTURE"
	ReasonLowScore       UnclearReason = "LOW_SCORE"
	ReasonConflict       UnclearReason = "CONFLICT"
	ReasonNone           UnclearReason = ""
)

// ComputeKind distinguishes an intra-bar preview hint from a closed-bar hint.
type ComputeKind string

const (
	ComputePreview ComputeKind = "preview"
	ComputeClose   ComputeKind = "close"
)

// JournalEntityKind is the lifecycle-tracked entity family.
type JournalEntityKind string

const (
	EntityZone    JournalEntityKind = "zone"
	EntityPool    JournalEntityKind = "pool"
	EntityMagnet  JournalEntityKind = "magnet"
)

// JournalEventKind is the lifecycle transition emitted for an entity.
type JournalEventKind string

const (
	JournalCreated JournalEventKind = "created"
	JournalRemoved JournalEventKind = "removed"
	JournalTouched JournalEventKind = "touched"
	JournalMerged  JournalEventKind = "merged"
)

// RemovalReason is the coarse classification of why an entity disappeared.
type RemovalReason string

const (
	RemovedExpiredTTL      RemovalReason = "expired_ttl"
	RemovedEvictedCap      RemovalReason = "evicted_cap"
	RemovedDroppedDistance RemovalReason = "dropped_distance"
	RemovedInvalidatedRule RemovalReason = "invalidated_rule"
	RemovedReplacedByMerge RemovalReason = "replaced_by_merge"
)

// RemovalSubReason refines RemovalReason with the specific trigger.
type RemovalSubReason string

const (
	SubFlickerShortLived     RemovalSubReason = "flicker_short_lived"
	SubContextFlip           RemovalSubReason = "context_flip"
	SubPriceInvalidated      RemovalSubReason = "price_invalidated"
	SubRebucketTimeWindow    RemovalSubReason = "rebucket_time_window"
	SubVanishedSameTypeRole  RemovalSubReason = "vanished_same_type_role"
	SubMerged                RemovalSubReason = "merged"
	SubTTLExpired            RemovalSubReason = "ttl_expired"
)

// TouchPolicy selects which part of a bar counts as a "touch" of a zone band.
type TouchPolicy string

const (
	TouchWick  TouchPolicy = "wick"
	TouchBody  TouchPolicy = "body"
	TouchClose TouchPolicy = "close"
)
