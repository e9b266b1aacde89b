// Command smcreplay is a thin walk-forward harness over the SMC core: it
// replays a JSON bar history bar-by-bar through structure, liquidity,
// zones, execution and Stage6, journals every zone lifecycle transition
// along the way, and prints the final serialized hint.
// It exists to exercise the pipeline end to end, not as a trading terminal.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	internallog "github.com/sawpanic/smc-core/internal/log"
	"github.com/sawpanic/smc-core/internal/smc/config"
	"github.com/sawpanic/smc-core/internal/smc/execution"
	"github.com/sawpanic/smc-core/internal/smc/journal"
	"github.com/sawpanic/smc-core/internal/smc/liquidity"
	"github.com/sawpanic/smc-core/internal/smc/obs"
	"github.com/sawpanic/smc-core/internal/smc/ohlcv"
	"github.com/sawpanic/smc-core/internal/smc/serialize"
	"github.com/sawpanic/smc-core/internal/smc/stage6"
	"github.com/sawpanic/smc-core/internal/smc/state"
	"github.com/sawpanic/smc-core/internal/smc/structure"
	"github.com/sawpanic/smc-core/internal/smc/types"
	"github.com/sawpanic/smc-core/internal/smc/zones"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("smcreplay failed")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smcreplay",
		Short: "Replay an OHLCV history through the SMC analysis pipeline",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var symbol, tf, inputPath, journalDir, configPath string
	var warmup int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk a bar history forward one close at a time and print the final hint",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs.Init(isTTY())
			return runReplay(symbol, tf, inputPath, journalDir, configPath, warmup)
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "BTCUSDT", "symbol label attached to output")
	cmd.Flags().StringVar(&tf, "tf", "15m", "primary timeframe label")
	cmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON array of bars (required)")
	cmd.Flags().StringVar(&journalDir, "journal-dir", "./out/journal", "directory for journal event/frame JSONL output")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML file overriding config.Default()")
	cmd.Flags().IntVar(&warmup, "warmup", 60, "number of leading bars consumed before emitting the first hint")
	cmd.MarkFlagRequired("input")
	return cmd
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runReplay(symbol, tf, inputPath, journalDir, configPath string, warmup int) error {
	sessionTag := uuid.New().String()
	log.Info().Str("session", sessionTag).Str("symbol", symbol).Str("tf", tf).Msg("starting replay")

	raw, err := loadBars(inputPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	frame := ohlcv.Prepare(raw)
	if frame.Empty() {
		return fmt.Errorf("input produced no usable bars: %s", frame.Reason)
	}
	if warmup >= len(frame.Bars) {
		return fmt.Errorf("warmup (%d) must be smaller than the bar count (%d)", warmup, len(frame.Bars))
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	history := structure.NewHistoryStore()
	stateMgr := state.NewManager()
	jrnl := journal.New()
	writer := journal.Writer{
		EventsPath: journalDir + "/events.jsonl",
		FramesPath: journalDir + "/frames.jsonl",
	}

	bars := frame.Bars
	total := len(bars) - warmup
	progress := internallog.NewProgressIndicator("replay", total, internallog.DefaultProgressConfig())

	var prevWickClusters []types.WickCluster
	var lastHint types.SmcHint

	for end := warmup; end < len(bars); end++ {
		window := bars[:end+1]
		nowMs := window[len(window)-1].CloseTimeMs

		structState := structure.Detect(cfg.Structure, ohlcv.Frame{Bars: window}, history, symbol, tf, types.Now())
		liqState := liquidity.Detect(cfg.Liquidity, window, structState, prevWickClusters, 96, nowMs)
		prevWickClusters = liqState.WickClusters

		zonesState := zones.Detect(cfg.Zones, window, structState.Legs, tf, structState.ATR14, structState.ATRAvailable)
		execEvents := execution.Detect(cfg.Execution, window, zonesState.POIZones, structState.ATR14, structState.ATRAvailable)

		decision := stage6.Decide(cfg.Stage6, stage6.Input{
			Symbol: symbol, LastPrice: window[len(window)-1].Close, HasLastPrice: true,
			Bars:    window,
			Primary: structState, Liquidity: liqState, Zones: zonesState, Execution: execEvents,
			HTF: stage6.HTFContext{Bars: map[string][]types.Bar{"4h": window, "1h": window}},
		})
		stable := stateMgr.Update(cfg.State, symbol, decision, nowMs)

		current := journalEntitiesFor(zonesState)
		events := jrnl.Reconcile(cfg.Journal, symbol, tf, current, nowMs)
		if err := writer.WriteEvents(events); err != nil {
			return fmt.Errorf("write journal events: %w", err)
		}
		frameRecord := journal.BuildFrameRecord(cfg.Journal, symbol, tf, types.ComputeClose, nowMs, true, zonesState.Zones, nil, nil, nowMs)
		if err := writer.WriteFrame(frameRecord); err != nil {
			return fmt.Errorf("write journal frame: %w", err)
		}

		lastHint = types.SmcHint{
			Symbol: symbol, Structure: structState, Liquidity: liqState, Zones: zonesState,
			Execution: execEvents, Signals: []types.Stage6Decision{stable},
			Meta: types.HintMeta{SnapshotTf: tf, LastPrice: window[len(window)-1].Close, HasLastPrice: true, ComputeKind: types.ComputeClose, GeneratedAtMs: nowMs, SessionTag: sessionTag},
		}
		progress.Update(end - warmup + 1)
	}
	progress.Finish()

	out, err := serialize.Marshal(lastHint)
	if err != nil {
		return fmt.Errorf("marshal final hint: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func journalEntitiesFor(zs types.ZonesState) []journal.CurrentEntity {
	entities := make([]journal.CurrentEntity, 0, len(zs.Zones))
	for _, z := range zs.Zones {
		priceMin, priceMax := z.PriceMin, z.PriceMax
		var mergedFrom []string
		if z.Meta != nil {
			if mf, ok := z.Meta["merged_from"].([]string); ok {
				mergedFrom = mf
			}
		}
		entities = append(entities, journal.CurrentEntity{
			Ref:       types.EntityRef{Kind: types.EntityZone, ID: z.ZoneID},
			Type:      string(z.ZoneType), Direction: z.Direction, Role: z.Role,
			PriceMin: &priceMin, PriceMax: &priceMax, MergedFrom: mergedFrom,
		})
	}
	return entities
}

func loadBars(path string) ([]types.Bar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bars []types.Bar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, err
	}
	return bars, nil
}
