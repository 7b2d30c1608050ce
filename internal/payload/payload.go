// Package payload defines the normalized structured-log record emitted for
// every event.
package payload

// Field names of the plain mapping form.
const (
	KeyMessage   = "message"
	KeySeverity  = "severity"
	KeyTimestamp = "timestamp"
	KeyThread    = "thread"
	KeyExtra     = "extra"

	KeySeconds = "seconds"
	KeyNanos   = "nanos"
)

// Timestamp is an epoch time split into whole seconds and nanoseconds.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// ToMap returns the timestamp as a plain mapping.
func (t Timestamp) ToMap() map[string]any {
	return map[string]any{
		KeySeconds: t.Seconds,
		KeyNanos:   t.Nanos,
	}
}

// Payload is built fresh for each event and is not mutated once it has been
// handed to an encoder. Timestamp and Thread are nil in reduced mode; Extra
// is nil when the event carried no extra attributes.
type Payload struct {
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp *Timestamp     `json:"timestamp,omitempty"`
	Thread    *int64         `json:"thread,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// ToMap converts the payload into a plain nested mapping ready for encoding.
// The timestamp is flattened into its own mapping; every other value is
// copied as is.
func (p Payload) ToMap() map[string]any {
	m := map[string]any{
		KeyMessage:  p.Message,
		KeySeverity: p.Severity,
	}
	if p.Timestamp != nil {
		m[KeyTimestamp] = p.Timestamp.ToMap()
	}
	if p.Thread != nil {
		m[KeyThread] = *p.Thread
	}
	if p.Extra != nil {
		extra := make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			extra[k] = v
		}
		m[KeyExtra] = extra
	}
	return m
}
