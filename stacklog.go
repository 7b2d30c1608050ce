// Package stacklog turns log records into structured payloads in the
// Stackdriver style: message, severity, split timestamp, thread and the
// caller's extra attributes.
//
// A Handler plugs the transformer into log/slog and writes one payload per
// line:
//
//	logger, _ := stacklog.NewLogger(stacklog.NewRegistry(), stacklog.Options{ReducedOutput: true})
//	logger.Info("user logged in", "user_id", 42)
//	// {"extra":{"user_id":42},"message":"user logged in","severity":"INFO"}
//
// Transform can also be called directly on records decoded from elsewhere.
package stacklog

import (
	"stacklog/internal/event"
	"stacklog/internal/payload"
	"stacklog/internal/transform"
)

type (
	// Event is one log occurrence with its standard record attributes.
	Event = event.Event
	// Payload is the structured output record.
	Payload = payload.Payload
	// Timestamp is a payload time split into seconds and nanoseconds.
	Timestamp = payload.Timestamp
)

var (
	ErrPrecondition = transform.ErrPrecondition
	ErrNoLevelName  = event.ErrNoLevelName
	ErrNoCreated    = event.ErrNoCreated
	ErrUnknownField = payload.ErrUnknownField
	ErrFieldType    = payload.ErrFieldType
)

// Transform maps ev and its rendered message onto a payload. In reduced mode
// the timestamp and thread are left out.
func Transform(ev Event, rendered string, reduced bool) (Payload, error) {
	return transform.Transform(ev, rendered, reduced)
}

// EventFromMap builds an event from a decoded record dictionary.
func EventFromMap(raw map[string]any) Event {
	return *event.FromMap(raw)
}

// PayloadFromMap rebuilds a payload from its plain mapping form.
func PayloadFromMap(m map[string]any) (Payload, error) {
	return payload.FromMap(m)
}
