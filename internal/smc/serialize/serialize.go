// Package serialize turns the plain Go structs in internal/smc/types into
// the canonical JSON transport shape: enum values as their bare string
// constants (already true of the Go types), timestamps as RFC3339 instead
// of raw epoch millis, and prices rendered as fixed-format decimal strings
// so two runs over identical input produce byte-identical output
// regardless of float formatting quirks (spec.md §9 determinism). Map keys
// are sorted by encoding/json automatically, so building the canonical
// shape as nested map[string]any is sufficient — no manual key ordering
// needed.
package serialize

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Marshal renders a hint into the canonical transport JSON.
func Marshal(hint types.SmcHint) ([]byte, error) {
	return json.Marshal(hintToMap(hint))
}

func hintToMap(h types.SmcHint) map[string]any {
	return map[string]any{
		"symbol":    h.Symbol,
		"meta":      metaToMap(h.Meta),
		"structure": structureToMap(h.Structure),
		"liquidity": liquidityToMap(h.Liquidity),
		"zones":     zonesToMap(h.Zones),
		"execution": executionListToMap(h.Execution),
		"signals":   signalsListToMap(h.Signals),
	}
}

func metaToMap(m types.HintMeta) map[string]any {
	out := map[string]any{
		"snapshot_tf":  m.SnapshotTf,
		"compute_kind": string(m.ComputeKind),
		"session_tag":  m.SessionTag,
		"generated_at": rfc3339(m.GeneratedAtMs),
	}
	if m.HasLastPrice {
		out["last_price"] = decimal(m.LastPrice)
	}
	if m.Reason != "" {
		out["reason"] = m.Reason
	}
	return out
}

func structureToMap(s types.StructureState) map[string]any {
	if s.Reason != "" {
		return map[string]any{"reason": s.Reason}
	}
	swings := make([]any, len(s.Swings))
	for i, sw := range s.Swings {
		swings[i] = map[string]any{
			"time": rfc3339(sw.TimeMs), "price": decimal(sw.Price),
			"kind": string(sw.Kind), "strength": sw.Strength,
		}
	}
	legs := make([]any, len(s.Legs))
	for i, l := range s.Legs {
		legs[i] = map[string]any{
			"from_time": rfc3339(l.From.TimeMs), "to_time": rfc3339(l.To.TimeMs),
			"label": string(l.Label), "amplitude": decimal(l.Amplitude()),
		}
	}
	events := make([]any, len(s.Events))
	for i, ev := range s.Events {
		events[i] = map[string]any{
			"event_type": string(ev.EventType), "direction": string(ev.Direction),
			"price_level": decimal(ev.PriceLevel), "time": rfc3339(ev.TimeMs),
		}
	}
	otes := make([]any, len(s.OteZones))
	for i, o := range s.OteZones {
		otes[i] = map[string]any{
			"ote_min": decimal(o.OteMin), "ote_max": decimal(o.OteMax),
			"direction": string(o.Direction), "role": string(o.Role),
		}
	}

	out := map[string]any{
		"trend": string(s.Trend), "bias": string(s.Bias),
		"swings": swings, "legs": legs, "events": events, "ote_zones": otes,
		"atr14": decimal(s.ATR14), "atr_available": s.ATRAvailable,
	}
	if s.HasLastChoch {
		out["last_choch"] = rfc3339(s.LastChochMs)
	}
	if s.ActiveRange != nil {
		out["active_range"] = map[string]any{
			"high": decimal(s.ActiveRange.High), "low": decimal(s.ActiveRange.Low),
			"eq_level": decimal(s.ActiveRange.EqLevel), "state": string(s.ActiveRange.State),
		}
	}
	return out
}

func liquidityToMap(l types.LiquidityState) map[string]any {
	pools := make([]any, len(l.Pools))
	for i, p := range l.Pools {
		pools[i] = map[string]any{
			"level": decimal(p.Level), "type": string(p.LiqType),
			"strength": decimal(p.Strength), "n_touches": p.NTouches,
			"role": string(p.Role),
		}
	}
	magnets := make([]any, len(l.Magnets))
	for i, m := range l.Magnets {
		magnets[i] = map[string]any{
			"price_min": decimal(m.PriceMin), "price_max": decimal(m.PriceMax),
			"center": decimal(m.Center), "type": string(m.LiqType), "role": string(m.Role),
		}
	}
	sfps := make([]any, len(l.SfpEvents))
	for i, s := range l.SfpEvents {
		sfps[i] = map[string]any{
			"level": decimal(s.Level), "source": s.Source,
			"time": rfc3339(s.TimeMs), "direction": string(s.Direction),
		}
	}
	wicks := make([]any, len(l.WickClusters))
	for i, w := range l.WickClusters {
		wicks[i] = map[string]any{
			"cluster_id": w.ClusterID, "side": string(w.Side), "level": decimal(w.Level),
			"count": w.Count, "max_wick": decimal(w.MaxWick),
		}
	}
	return map[string]any{
		"pools": pools, "magnets": magnets, "amd_phase": string(l.AmdPhase),
		"amd_reason": l.AmdReason, "sfp_events": sfps, "wick_clusters": wicks,
		"internal_targets": targetsToMap(l.InternalTargets),
		"external_targets": targetsToMap(l.ExternalTargets),
		"target_reasons":   l.TargetReasons,
	}
}

func targetsToMap(targets []types.LiquidityTarget) []any {
	out := make([]any, len(targets))
	for i, t := range targets {
		out[i] = map[string]any{
			"price": decimal(t.Price), "kind": t.Kind,
			"proximity": decimal(t.Proximity), "freshness": decimal(t.Freshness),
			"touches": t.Touches, "reason": t.Reason,
		}
	}
	return out
}

func zonesToMap(z types.ZonesState) map[string]any {
	zoneList := make([]any, len(z.Zones))
	for i, zn := range z.Zones {
		zoneList[i] = zoneToMap(zn)
	}
	pois := make([]any, len(z.POIZones))
	for i, p := range z.POIZones {
		m := zoneToMap(p.Zone)
		m["why"] = p.Why
		pois[i] = m
	}
	return map[string]any{"zones": zoneList, "poi": pois, "meta": z.Meta}
}

func zoneToMap(z types.Zone) map[string]any {
	return map[string]any{
		"zone_id": z.ZoneID, "zone_type": string(z.ZoneType),
		"price_min": decimal(z.PriceMin), "price_max": decimal(z.PriceMax),
		"direction": string(z.Direction), "role": string(z.Role),
		"entry_mode": string(z.EntryMode), "quality": string(z.Quality),
		"confidence": decimal(z.Confidence), "origin_time": rfc3339(z.OriginTimeMs),
	}
}

func executionListToMap(events []types.ExecutionEvent) []any {
	out := make([]any, len(events))
	for i, ev := range events {
		out[i] = map[string]any{
			"event_type": string(ev.EventType), "direction": string(ev.Direction),
			"time": rfc3339(ev.TimeMs), "price": decimal(ev.Price), "level": decimal(ev.Level),
			"ref": string(ev.Ref), "poi_zone_id": ev.POIZoneID,
		}
	}
	return out
}

func signalsListToMap(decisions []types.Stage6Decision) []any {
	out := make([]any, len(decisions))
	for i, d := range decisions {
		out[i] = map[string]any{
			"scenario_id": string(d.ScenarioID), "direction": string(d.Direction),
			"confidence": decimal(d.Confidence), "why": d.Why, "key_levels": decimalMap(d.KeyLevels),
		}
	}
	return out
}

func decimalMap(m map[string]float64) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = decimal(v)
	}
	return out
}

// decimal renders a price/ratio as a fixed-format string: shortest
// round-trippable representation, never scientific notation.
func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rfc3339 renders a Unix-millisecond timestamp in UTC RFC3339 with
// millisecond precision.
func rfc3339(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)
}
