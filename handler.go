package stacklog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"stacklog/internal/event"
	"stacklog/internal/sinks"
	"stacklog/internal/transform"
)

// Options configures a Handler.
type Options struct {
	// Writer receives one encoded payload per line. Defaults to os.Stdout.
	Writer io.Writer
	// Level is the minimum level handled. Defaults to slog.LevelDebug.
	Level slog.Leveler
	// Pretty switches to indented output for debugging.
	Pretty bool
	// Color adds a colored severity line to pretty output.
	Color bool
	// ReducedOutput leaves timestamp and thread out of every payload.
	ReducedOutput bool
	// Formatter renders the payload message. Defaults to Event.RenderMessage.
	Formatter func(Event) string
}

type attr struct {
	key   string
	value any
}

// Handler is a slog.Handler emitting transformer payloads.
type Handler struct {
	mu       *sync.Mutex
	w        io.Writer
	enc      sinks.Encoder
	reduced  bool
	format   func(Event) string
	level    *slog.LevelVar
	disabled *atomic.Bool

	preset []attr
	prefix string
}

// NewHandler returns a Handler configured by opts.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		mu:       &sync.Mutex{},
		w:        opts.Writer,
		enc:      sinks.Encoder{Pretty: opts.Pretty, Color: opts.Color},
		reduced:  opts.ReducedOutput,
		format:   opts.Formatter,
		level:    &slog.LevelVar{},
		disabled: &atomic.Bool{},
	}
	if h.w == nil {
		h.w = os.Stdout
	}
	if h.format == nil {
		h.format = func(ev Event) string { return ev.RenderMessage() }
	}
	h.level.Set(slog.LevelDebug)
	if opts.Level != nil {
		h.level.Set(opts.Level.Level())
	}
	return h
}

// SetLevel changes the minimum level for this handler and every handler
// derived from it.
func (h *Handler) SetLevel(l slog.Level) {
	h.level.Set(l)
}

// Disable stops the handler and its derivatives from emitting anything.
func (h *Handler) Disable() {
	h.disabled.Store(true)
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return !h.disabled.Load() && level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ev := h.event(r)
	p, err := transform.Transform(ev, h.format(ev), h.reduced)
	if err != nil {
		return err
	}
	data, err := h.enc.Encode(p)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(data, '\n'))
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.preset = append([]attr(nil), h.preset...)
	for _, a := range attrs {
		h2.preset = appendAttr(h2.preset, h.prefix, a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *Handler) event(r slog.Record) event.Event {
	created := r.Time
	if created.IsZero() {
		created = time.Now()
	}
	no, name := event.FromSlogLevel(r.Level)

	ev := event.Event{
		Msg:       r.Message,
		LevelName: name,
		LevelNo:   no,
		Created:   event.TimeToEpoch(created),
		Thread:    goroutineID(),
		Process:   pid,
	}

	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		ev.PathName = f.File
		ev.FileName = filepath.Base(f.File)
		ev.Module = strings.TrimSuffix(ev.FileName, filepath.Ext(ev.FileName))
		ev.FuncName = f.Function
		ev.LineNo = f.Line
	}

	attrs := append([]attr(nil), h.preset...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	for _, a := range attrs {
		ev.SetAttr(a.key, a.value)
	}
	return ev
}

// appendAttr flattens a into dotted keys below prefix. Empty attrs are dropped
// and inline groups (empty key) are merged into the parent.
func appendAttr(dst []attr, prefix string, a slog.Attr) []attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, sub, ga)
		}
		return dst
	}
	return append(dst, attr{key: prefix + a.Key, value: a.Value.Any()})
}

var pid = os.Getpid()

// goroutineID reads the current goroutine's id from its stack header.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseInt(s[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}
