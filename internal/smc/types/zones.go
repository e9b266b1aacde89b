package types

// Zone is an Order Block, Breaker or Fair-Value-Gap candidate.
type Zone struct {
	ZoneID        string
	ZoneType      SmcZoneType
	PriceMin      float64
	PriceMax      float64
	Timeframe     string
	OriginTimeMs  int64
	Direction     Direction
	Role          PoolRole
	Strength      float64
	Confidence    float64
	Components    []string // e.g. contributing swing/event identifiers
	EntryMode     EntryMode
	Quality       ZoneQuality
	BiasAtCreation Direction
	Meta          map[string]any // meta.merged_from []string lives here
}

// Width is |max-min|.
func (z Zone) Width() float64 {
	return z.PriceMax - z.PriceMin
}

// Center is the zone midpoint.
func (z Zone) Center() float64 {
	return (z.PriceMax + z.PriceMin) / 2
}

// POI is a selected zone annotated with the reasons it was kept.
type POI struct {
	Zone Zone
	Why  []string
}

// ZonesState is the aggregate output of the zones/POI builder.
type ZonesState struct {
	Zones      []Zone
	ActiveZones []Zone
	POIZones   []POI
	Meta       map[string]any // counts, thresholds, merge stats
}
