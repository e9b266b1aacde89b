package types

// LiquidityPool is a clustered price level where stops/limit liquidity is
// presumed to rest: equal highs/lows, trend/session/range extremes, SFP
// or wick-cluster derived levels.
type LiquidityPool struct {
	Level        float64
	LiqType      SmcLiquidityType
	Strength     float64
	NTouches     int
	FirstTimeMs  int64
	LastTimeMs   int64
	Role         PoolRole
	SourceSwings []Swing
	Meta         map[string]any
}

// LiquidityMagnet clusters nearby pools into one composite target.
type LiquidityMagnet struct {
	PriceMin float64
	PriceMax float64
	Center   float64
	LiqType  SmcLiquidityType
	Role     PoolRole
	Pools    []LiquidityPool
}

// SfpEvent is a Swing Failure Pattern: a wick beyond a level with a close
// back across it.
type SfpEvent struct {
	Level     float64
	Source    string // "pool" when scanned against liquidity pool levels
	TimeMs    int64
	Direction Direction
}

// WickCluster tracks repeated wick rejections near a level, identified
// across snapshots via ClusterID so the UI can show persistence.
type WickCluster struct {
	ClusterID string
	Side      SwingKind // HIGH (upper wick) or LOW (lower wick)
	Level     float64
	Count     int
	MaxWick   float64
	FirstTsMs int64
	LastTsMs  int64
	Source    string
}

// LiquidityTarget is a ranked internal or external liquidity destination.
type LiquidityTarget struct {
	Price      float64
	Kind       string // "internal" | "external"
	Proximity  float64
	Freshness  float64
	Touches    int
	Reason     string
}

// LiquidityState is the aggregate output of the liquidity analyzer.
type LiquidityState struct {
	Pools             []LiquidityPool
	Magnets           []LiquidityMagnet
	AmdPhase          SmcAmdPhase
	AmdReason         string
	SfpEvents         []SfpEvent
	WickClusters      []WickCluster
	InternalTargets   []LiquidityTarget
	ExternalTargets   []LiquidityTarget
	TargetReasons     []string // populated when no targets could be produced
	Meta              map[string]any
}
