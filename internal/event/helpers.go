package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FromMap builds an Event from a decoded record dictionary.
func FromMap(raw map[string]any) *Event {
	e := &Event{}
	e.Apply(raw)
	return e
}

// Apply merges a decoded object into the event. Standard record names fill
// the matching fields and every other key becomes an attribute. The aliases
// used by common JSON loggers (level, severity, ts, time, @timestamp) are
// consulted only when the object lacks the standard name.
func (e *Event) Apply(fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			e.Name = stringOf(v)
		case "msg":
			e.Msg = stringOf(v)
		case "message":
			// rendered text, handled below so it wins over msg
		case "args":
			switch args := v.(type) {
			case []any:
				e.Args = args
			case map[string]any:
				e.NamedArgs = args
			}
		case "levelname":
			e.LevelName = strings.ToUpper(stringOf(v))
		case "levelno":
			e.LevelNo, _ = intVal(v)
		case "created":
			e.Created, e.HasCreated = floatVal(v)
		case "msecs":
			e.Msecs, _ = floatVal(v)
		case "relativeCreated":
			e.RelativeCreated, _ = floatVal(v)
		case "thread":
			if n, ok := intVal(v); ok {
				e.Thread = int64(n)
			}
		case "threadName":
			e.ThreadName = stringOf(v)
		case "process":
			e.Process, _ = intVal(v)
		case "processName":
			e.ProcessName = stringOf(v)
		case "pathname":
			e.PathName = stringOf(v)
		case "filename":
			e.FileName = stringOf(v)
		case "module":
			e.Module = stringOf(v)
		case "funcName":
			e.FuncName = stringOf(v)
		case "lineno":
			e.LineNo, _ = intVal(v)
		case "exc_info":
			e.ExcInfo = stringOf(v)
		case "exc_text":
			e.ExcText = stringOf(v)
		case "stack_info":
			e.StackInfo = stringOf(v)
		case "asctime", "id":
			// derived by the facility, nothing to keep
		case "level", "severity", "ts", "time", "@timestamp":
			// aliases, handled below
		default:
			e.SetAttr(k, v)
		}
	}

	if msg, ok := stringVal(fields, "message"); ok {
		e.Msg = msg
		e.Args = nil
		e.NamedArgs = nil
	}

	if _, ok := fields["levelname"]; !ok {
		found := false
		for _, key := range []string{"level", "severity"} {
			if s, ok := stringVal(fields, key); ok {
				e.LevelName = strings.ToUpper(s)
				found = true
				break
			}
		}
		if _, ok := fields["levelno"]; ok && !found {
			if name := LevelName(e.LevelNo); name != "" {
				e.LevelName = name
			}
		}
	}
	if _, ok := fields["levelno"]; !ok && e.LevelName != "" {
		e.LevelNo, _ = LevelNo(e.LevelName)
	}

	if _, ok := fields["created"]; !ok {
		for _, key := range []string{"ts", "time", "@timestamp"} {
			if v, ok := fields[key]; ok {
				if secs, ok := EpochSeconds(v); ok {
					e.Created = secs
					e.HasCreated = true
					break
				}
			}
		}
	}
}

// EpochSeconds converts a timestamp value to floating point epoch seconds.
// It accepts numbers, numeric strings, RFC3339 strings and time.Time.
func EpochSeconds(v any) (float64, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0, false
		}
		return TimeToEpoch(t), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if p, err := time.Parse(layout, t); err == nil {
				return TimeToEpoch(p), true
			}
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
		return 0, false
	}
	return floatVal(v)
}

// TimeToEpoch returns t as epoch seconds with sub-second precision.
func TimeToEpoch(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func stringVal(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func floatVal(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func intVal(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	}
	f, ok := floatVal(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}
