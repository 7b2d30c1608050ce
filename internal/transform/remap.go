package transform

import (
	"context"
	"strings"
	"unicode"

	"stacklog/internal/event"
)

// RemapTransform attaches fixed attributes to every event and can recase the
// message text.
type RemapTransform struct {
	AddFields map[string]string
	Case      string
}

func (t *RemapTransform) Run(ctx context.Context, in <-chan event.Event, out chan<- event.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-in:
			if !ok {
				return nil
			}
			t.Apply(&evt)
			select {
			case out <- evt:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Apply remaps a single event in place. Attributes the event already carries
// are overwritten.
func (t *RemapTransform) Apply(evt *event.Event) {
	if len(t.AddFields) > 0 && evt.Attrs != nil {
		// copy so events sharing an attribute map with the source stay untouched
		attrs := make(map[string]any, len(evt.Attrs)+len(t.AddFields))
		for k, v := range evt.Attrs {
			attrs[k] = v
		}
		evt.Attrs = attrs
	}
	for k, v := range t.AddFields {
		evt.SetAttr(k, v)
	}

	switch t.Case {
	case "upper":
		evt.Msg = strings.ToUpper(evt.Msg)
	case "lower":
		evt.Msg = strings.ToLower(evt.Msg)
	case "snake":
		evt.Msg = toSnakeCase(evt.Msg)
	case "camel":
		evt.Msg = toCamelCase(evt.Msg)
	}
}

func toSnakeCase(s string) string {
	var result strings.Builder
	s = strings.TrimSpace(s)

	for i, r := range s {
		if i > 0 {
			if unicode.IsUpper(r) || unicode.IsSpace(r) || r == '-' {
				currStr := result.String()
				if len(currStr) > 0 && currStr[len(currStr)-1] != '_' {
					result.WriteRune('_')
				}
			}
		}

		if !unicode.IsSpace(r) && r != '-' {
			result.WriteRune(unicode.ToLower(r))
		}
	}
	return result.String()
}

func toCamelCase(s string) string {
	s = strings.ToLower(s)
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_'
	})

	if len(words) == 0 {
		return s
	}

	result := words[0]
	for i := 1; i < len(words); i++ {
		w := []rune(words[i])
		w[0] = unicode.ToUpper(w[0])
		result += string(w)
	}
	return result
}
