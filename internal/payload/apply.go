package payload

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownField = errors.New("payload: unknown field")
	ErrFieldType    = errors.New("payload: wrong field type")
)

// Apply assigns the recognized fields of partial. Keys other than message,
// severity, timestamp, thread and extra are rejected; on any error the
// payload is left untouched.
func (p *Payload) Apply(partial map[string]any) error {
	next := *p
	for k, v := range partial {
		var err error
		switch k {
		case KeyMessage:
			next.Message, err = asString(k, v)
		case KeySeverity:
			next.Severity, err = asString(k, v)
		case KeyTimestamp:
			next.Timestamp, err = asTimestamp(v)
		case KeyThread:
			next.Thread, err = asThread(v)
		case KeyExtra:
			next.Extra, err = asExtra(v)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if err != nil {
			return err
		}
	}
	*p = next
	return nil
}

// FromMap rebuilds a payload from its plain mapping form, for example after
// a JSON round trip.
func FromMap(m map[string]any) (Payload, error) {
	var p Payload
	if err := p.Apply(m); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrFieldType, key, v)
	}
	return s, nil
}

func asTimestamp(v any) (*Timestamp, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Timestamp:
		return &t, nil
	case *Timestamp:
		if t == nil {
			return nil, nil
		}
		c := *t
		return &c, nil
	case map[string]any:
		secs, err := asInt(KeySeconds, t[KeySeconds])
		if err != nil {
			return nil, err
		}
		nanos, err := asInt(KeyNanos, t[KeyNanos])
		if err != nil {
			return nil, err
		}
		return &Timestamp{Seconds: secs, Nanos: nanos}, nil
	}
	return nil, fmt.Errorf("%w: timestamp must be a {seconds, nanos} mapping, got %T", ErrFieldType, v)
}

func asThread(v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := asInt(KeyThread, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func asExtra(v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return m, nil
	}
	return nil, fmt.Errorf("%w: extra must be a mapping, got %T", ErrFieldType, v)
}

func asInt(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrFieldType, key, v)
}
