package journal

import (
	smcio "github.com/sawpanic/smc-core/internal/io"
	"github.com/sawpanic/smc-core/internal/smc/types"
)

// Writer persists journal events and frame records to the caller's chosen
// paths. Events and frame records both accumulate as JSONL files: every
// write appends its records after the existing lines via
// AppendJSONLAtomic.
type Writer struct {
	EventsPath string
	FramesPath string
}

// WriteEvents appends events to EventsPath. A no-op when there are none,
// so a quiet step doesn't grow the file with empty writes.
func (w Writer) WriteEvents(events []types.JournalEvent) error {
	if len(events) == 0 {
		return nil
	}
	records := make([]any, len(events))
	for i, ev := range events {
		records[i] = ev
	}
	return smcio.AppendJSONLAtomic(w.EventsPath, records)
}

// WriteFrame appends one frame record to FramesPath.
func (w Writer) WriteFrame(frame types.FrameRecord) error {
	return smcio.AppendJSONLAtomic(w.FramesPath, []any{frame})
}
