// Package obs carries the ambient observability stack: zerolog structured
// logging and a small set of lazily-registered Prometheus counters owned by
// the core, never by a scrape server (spec.md §5, §9). Grounded on the
// teacher's log.Logger wiring in cmd/cryptorun/main.go and the lazy
// sync.Once metrics pattern in internal/gates/metrics.go (pristine copy
// under _examples; both were trimmed from the workspace, see DESIGN.md).
package obs

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init wires the package-level zerolog logger the way the teacher's CLI
// entrypoint does. Safe to call multiple times; callers embedding the core
// in a larger service may prefer to configure zerolog themselves and skip
// this entirely — it exists for the demo replay CLI and for tests that want
// readable output.
func Init(pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// Debugf logs a soft-fail in an optional subsystem (execution, Stage6) at
// debug level, matching spec.md §7: "soft-fail and omit that subsystem from
// the output, logged at debug; the rest of the hint MUST still be produced."
func Debugf(symbol, step, msg string, fields map[string]any) {
	ev := log.Debug().Str("symbol", symbol).Str("step", step)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
