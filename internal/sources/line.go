package sources

import (
	"os"
	"time"

	"stacklog/internal/event"
)

var pid = os.Getpid()

// lineEvent wraps one raw input line. The parse stage later replaces the
// defaults when the line carries its own record.
func lineEvent(service, source, line string, attrs map[string]any) event.Event {
	if attrs == nil {
		attrs = make(map[string]any, 1)
	}
	attrs["source"] = source

	now := time.Now()
	return event.Event{
		Name:      service,
		Msg:       line,
		LevelName: event.LevelName(event.LevelInfo),
		LevelNo:   event.LevelInfo,
		Created:   event.TimeToEpoch(now),
		Thread:    int64(pid),
		Process:   pid,
		Attrs:     attrs,
	}
}
