package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the counters the core itself increments. Constructed
// lazily via sync.Once so importing this package has zero side effects
// until a caller actually asks for the metrics (e.g. to register them on
// its own HTTP scrape endpoint — out of scope here).
type Registry struct {
	JournalEventsTotal    *prometheus.CounterVec
	Stage6DecisionsTotal  *prometheus.CounterVec
	HysteresisFlipsTotal  *prometheus.CounterVec
	HysteresisPendingGauge *prometheus.GaugeVec
}

var (
	registryOnce sync.Once
	registry     *Registry
)

// Metrics returns the process-wide lazily-constructed Registry. This is the
// one piece of intentional package-level state in the core (spec.md §9:
// "the structure event history and metrics counters are the only
// process-wide state"); it is safe for concurrent use because
// prometheus.CounterVec/GaugeVec already guard their own internals.
func Metrics() *Registry {
	registryOnce.Do(func() {
		registry = &Registry{
			JournalEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "smc_journal_events_total",
				Help: "Lifecycle journal events emitted, by entity and event kind.",
			}, []string{"entity", "event"}),
			Stage6DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "smc_stage6_decisions_total",
				Help: "Raw Stage6 decisions by scenario id.",
			}, []string{"scenario"}),
			HysteresisFlipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "smc_hysteresis_flips_total",
				Help: "Stable-scenario flips by reason.",
			}, []string{"reason"}),
			HysteresisPendingGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "smc_hysteresis_pending_count",
				Help: "Current pending-confirmation counter per symbol.",
			}, []string{"symbol"}),
		}
	})
	return registry
}

// Collectors returns every metric as a prometheus.Collector so a caller can
// register them with its own registry without reaching into field names.
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.JournalEventsTotal,
		r.Stage6DecisionsTotal,
		r.HysteresisFlipsTotal,
		r.HysteresisPendingGauge,
	}
}
