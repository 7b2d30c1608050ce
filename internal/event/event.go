package event

import (
	"sort"
	"strings"
)

// Event is one log occurrence as handed over by the logging facility.
// The named fields are the facility's standard record attributes; Attrs holds
// whatever the caller attached at emission time.
type Event struct {
	Name            string
	Msg             string
	Args            []any
	NamedArgs       map[string]any // mapping-style args for %(key)s
	LevelName       string
	LevelNo         int
	Created         float64 // epoch seconds
	HasCreated      bool    // Created was set explicitly, even if zero
	Msecs           float64
	RelativeCreated float64
	Thread          int64
	ThreadName      string
	Process         int
	ProcessName     string
	PathName        string
	FileName        string
	Module          string
	FuncName        string
	LineNo          int
	ExcInfo         string
	ExcText         string
	StackInfo       string

	Attrs map[string]any
}

// ExtraKeys returns the sorted attribute names that are neither reserved nor private.
func (e *Event) ExtraKeys() []string {
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		if IsReserved(k) || strings.HasPrefix(k, PrivatePrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderMessage formats Msg with Args or NamedArgs using printf-style
// conversions and appends exception and stack text. Without args the message
// is taken literally.
func (e *Event) RenderMessage() string {
	msg := e.Msg
	if len(e.Args) > 0 || len(e.NamedArgs) > 0 {
		msg = percentFormat(msg, e.Args, e.NamedArgs)
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, extra := range []string{e.ExcText, e.StackInfo} {
		if extra == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(extra)
	}
	return b.String()
}

// SetAttr stores a caller attribute, allocating Attrs on first use.
func (e *Event) SetAttr(key string, value any) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]any)
	}
	e.Attrs[key] = value
}
