package parse

import "stacklog/internal/event"

func MarkPlain(evt *event.Event) {
	evt.SetAttr("format", "plain")
}
