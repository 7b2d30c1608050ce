package transform

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacklog/internal/event"
	"stacklog/internal/payload"
)

type opaque struct {
	ID int
}

type colour string

type stamp struct{}

func (stamp) MarshalJSON() ([]byte, error) { return []byte(`"stamp"`), nil }

func (stamp) String() string { return "stamp!" }

func newEvent(attrs map[string]any) event.Event {
	return event.Event{
		Name:      "app",
		Msg:       "hello %s",
		Args:      []any{"world"},
		LevelName: "INFO",
		LevelNo:   event.LevelInfo,
		Created:   1700000000.25,
		Thread:    140001,
		Attrs:     attrs,
	}
}

func TestTransform_ReducedOmitsTimestampAndThread(t *testing.T) {
	p, err := Transform(newEvent(nil), "hello world", true)
	require.NoError(t, err)

	assert.Equal(t, "hello world", p.Message)
	assert.Equal(t, "INFO", p.Severity)
	assert.Nil(t, p.Timestamp)
	assert.Nil(t, p.Thread)

	m := p.ToMap()
	assert.NotContains(t, m, payload.KeyTimestamp)
	assert.NotContains(t, m, payload.KeyThread)
}

func TestTransform_FullSetsTimestampAndThread(t *testing.T) {
	p, err := Transform(newEvent(nil), "hello world", false)
	require.NoError(t, err)

	require.NotNil(t, p.Timestamp)
	assert.Equal(t, payload.Timestamp{Seconds: 1700000000, Nanos: 250000000}, *p.Timestamp)
	require.NotNil(t, p.Thread)
	assert.Equal(t, int64(140001), *p.Thread)
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name    string
		created float64
		want    payload.Timestamp
	}{
		{"whole", 1700000000, payload.Timestamp{Seconds: 1700000000}},
		{"half", 1700000000.5, payload.Timestamp{Seconds: 1700000000, Nanos: 500000000}},
		{"eighth", 1700000000.125, payload.Timestamp{Seconds: 1700000000, Nanos: 125000000}},
		{"small", 12.000000001, payload.Timestamp{Seconds: 12, Nanos: 1}},
		{"rounds up into next second", 1.9999999999, payload.Timestamp{Seconds: 2}},
		{"negative", -1.5, payload.Timestamp{Seconds: -2, Nanos: 500000000}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decompose(tt.created))
		})
	}
}

func TestDecompose_ApproximatesCreated(t *testing.T) {
	for _, created := range []float64{1.1, 1634567890.123456, 1700000000.987654321, 0.000001} {
		ts := Decompose(created)
		assert.InDelta(t, created, float64(ts.Seconds)+float64(ts.Nanos)/1e9, 1e-6)
		assert.Equal(t, int64(math.Floor(created)), ts.Seconds)
		assert.GreaterOrEqual(t, ts.Nanos, int64(0))
		assert.Less(t, ts.Nanos, int64(1e9))
	}
}

func TestTransform_NoExtrasOmitsExtra(t *testing.T) {
	p, err := Transform(newEvent(map[string]any{"_hidden": 1, "levelname": "x"}), "m", false)
	require.NoError(t, err)

	assert.Nil(t, p.Extra)
	assert.NotContains(t, p.ToMap(), payload.KeyExtra)
}

func TestTransform_ExtrasExcludeReserved(t *testing.T) {
	attrs := map[string]any{
		"user_id":  42,
		"path":     "/login",
		"thread":   "spoofed",
		"msg":      "spoofed",
		"_private": "x",
	}
	p, err := Transform(newEvent(attrs), "m", false)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"user_id": 42, "path": "/login"}, p.Extra)
	assert.Equal(t, int64(140001), *p.Thread)
}

func TestTransform_SerializableValuesKept(t *testing.T) {
	attrs := map[string]any{
		"int":    7,
		"float":  1.5,
		"bool":   true,
		"nil":    nil,
		"list":   []any{1, "two", 3.0},
		"nested": map[string]any{"a": []string{"x"}},
		"named":  colour("red"),
		"array":  [2]int{1, 2},
	}
	p, err := Transform(newEvent(attrs), "m", true)
	require.NoError(t, err)

	assert.Equal(t, attrs, p.Extra)
}

func TestTransform_UnserializableValuesStringified(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	attrs := map[string]any{
		"struct":  opaque{ID: 9},
		"pointer": &opaque{ID: 3},
		"time":    when,
		"nan":     math.NaN(),
		"inf":     math.Inf(1),
		"bytes":   []byte{1, 2},
		"mixed":   []any{1, opaque{ID: 2}},
		"intkeys": map[int]string{1: "a"},
		"custom":  stamp{},
		"cyclic":  cyclic,
	}
	p, err := Transform(newEvent(attrs), "m", true)
	require.NoError(t, err)

	assert.Equal(t, "{9}", p.Extra["struct"])
	assert.Equal(t, "&{3}", p.Extra["pointer"])
	assert.Equal(t, when.String(), p.Extra["time"])
	assert.Equal(t, "NaN", p.Extra["nan"])
	assert.Equal(t, "+Inf", p.Extra["inf"])
	assert.Equal(t, "[1 2]", p.Extra["bytes"])
	assert.Equal(t, "[1 {2}]", p.Extra["mixed"])
	assert.Equal(t, "map[1:a]", p.Extra["intkeys"])
	assert.Equal(t, "stamp!", p.Extra["custom"])
	assert.Equal(t, "map[string]interface {}", p.Extra["cyclic"])

	_, err = json.Marshal(p.ToMap())
	assert.NoError(t, err)
}

func TestTransform_ChannelAndFuncStringified(t *testing.T) {
	ch := make(chan int)
	p, err := Transform(newEvent(map[string]any{"ch": ch, "fn": func() {}}), "m", true)
	require.NoError(t, err)

	assert.IsType(t, "", p.Extra["ch"])
	assert.IsType(t, "", p.Extra["fn"])
	_, err = json.Marshal(p.ToMap())
	assert.NoError(t, err)
}

func TestTransform_Preconditions(t *testing.T) {
	ev := newEvent(nil)
	ev.LevelName = ""
	_, err := Transform(ev, "m", false)
	assert.ErrorIs(t, err, event.ErrNoLevelName)
	assert.ErrorIs(t, err, ErrPrecondition)

	ev = newEvent(nil)
	ev.Created = 0
	_, err = Transform(ev, "m", false)
	assert.ErrorIs(t, err, event.ErrNoCreated)
	assert.ErrorIs(t, err, ErrPrecondition)

	ev.HasCreated = true
	p, err := Transform(ev, "m", false)
	require.NoError(t, err, "explicit epoch 0 is a real time")
	assert.Equal(t, payload.Timestamp{Seconds: 0, Nanos: 0}, *p.Timestamp)
}

func TestTransform_IsPure(t *testing.T) {
	attrs := map[string]any{"k": "v", "obj": opaque{ID: 1}}
	ev := newEvent(attrs)

	first, err := Transform(ev, "m", false)
	require.NoError(t, err)
	second, err := Transform(ev, "m", false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, opaque{ID: 1}, attrs["obj"], "input attributes must not change")
}

func TestTransform_JSONRoundTrip(t *testing.T) {
	p, err := Transform(newEvent(map[string]any{"user": "alice", "n": 3}), "hello world", false)
	require.NoError(t, err)

	data, err := json.Marshal(p.ToMap())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded, 5)
	assert.Equal(t, "hello world", decoded["message"])
	assert.Equal(t, "INFO", decoded["severity"])
	assert.Equal(t, map[string]any{"seconds": float64(1700000000), "nanos": float64(250000000)}, decoded["timestamp"])
	assert.Equal(t, float64(140001), decoded["thread"])
	assert.Equal(t, map[string]any{"user": "alice", "n": float64(3)}, decoded["extra"])
}

func TestTransform_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := Transform(newEvent(map[string]any{"i": i}), "m", false)
			assert.NoError(t, err)
			assert.Equal(t, i, p.Extra["i"])
		}(i)
	}
	wg.Wait()
}

func TestStackdriver_Run(t *testing.T) {
	stage := &Stackdriver{Reduced: true, Log: zerolog.Nop()}
	in := make(chan event.Event, 3)
	out := make(chan payload.Payload, 3)

	bad := newEvent(nil)
	bad.LevelName = ""
	in <- newEvent(nil)
	in <- bad
	in <- newEvent(map[string]any{"k": 1})
	close(in)

	require.NoError(t, stage.Run(context.Background(), in, out))
	close(out)

	var got []payload.Payload
	for p := range out {
		got = append(got, p)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "hello world", got[0].Message)
	assert.Nil(t, got[0].Timestamp)
	assert.Equal(t, map[string]any{"k": 1}, got[1].Extra)
}
