package parse

import (
	"strings"

	"github.com/valyala/fastjson"

	"stacklog/internal/event"
)

var parsers fastjson.ParserPool

// ParseEvent decodes the raw line held in evt.Msg. JSON objects are merged
// into the event; anything else is left as plain text.
func ParseEvent(evt *event.Event) {
	s := strings.TrimSpace(evt.Msg)
	if s == "" {
		evt.SetAttr("format", "empty")
		return
	}

	raw, ok := decodeObject(s)
	if !ok {
		MarkPlain(evt)
		return
	}

	ParseJSON(evt, raw)
}

func decodeObject(s string) (map[string]any, bool) {
	if s[0] != '{' {
		return nil, false
	}

	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.Parse(s)
	if err != nil {
		return nil, false
	}
	obj, ok := toAny(v).(map[string]any)
	return obj, ok
}

// toAny copies a fastjson value into plain Go values. Integral numbers become
// int64, other numbers float64.
func toAny(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		m := make(map[string]any, o.Len())
		o.Visit(func(key []byte, val *fastjson.Value) {
			m[string(key)] = toAny(val)
		})
		return m
	case fastjson.TypeArray:
		items, _ := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toAny(item)
		}
		return out
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return string(b)
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	}
	return nil
}
