package transform

import (
	"errors"
	"fmt"
	"math"

	"stacklog/internal/event"
	"stacklog/internal/payload"
)

// ErrPrecondition marks events the transformer cannot handle at all. It wraps
// the event's own validation error (event.ErrNoLevelName, event.ErrNoCreated)
// and is never returned for per-field serialization problems.
var ErrPrecondition = errors.New("transform: precondition violated")

// Transform maps an event and its rendered message onto a payload.
// In reduced mode the timestamp and thread are left out. Transform does not
// modify ev and keeps no state between calls.
func Transform(ev event.Event, rendered string, reduced bool) (payload.Payload, error) {
	if err := ev.Validate(); err != nil {
		return payload.Payload{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	p := payload.Payload{
		Message:  rendered,
		Severity: ev.LevelName,
	}
	if !reduced {
		ts := Decompose(ev.Created)
		thread := ev.Thread
		p.Timestamp = &ts
		p.Thread = &thread
	}

	if keys := ev.ExtraKeys(); len(keys) > 0 {
		p.Extra = make(map[string]any, len(keys))
		for _, k := range keys {
			p.Extra[k] = SafeValue(ev.Attrs[k])
		}
	}
	return p, nil
}

// Decompose splits epoch seconds into whole seconds and rounded nanoseconds.
// Nanos always ends up in [0, 1e9).
func Decompose(created float64) payload.Timestamp {
	secs := math.Floor(created)
	nanos := int64(math.Round((created - secs) * 1e9))
	if nanos >= 1e9 {
		secs++
		nanos -= 1e9
	}
	return payload.Timestamp{Seconds: int64(secs), Nanos: nanos}
}
