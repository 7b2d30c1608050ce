package parse

import "stacklog/internal/event"

// ParseJSON merges a decoded JSON object into evt. An object without its own
// message keeps the raw line as the message.
func ParseJSON(evt *event.Event, raw map[string]any) {
	evt.Apply(raw)
	evt.SetAttr("format", "json")
}
