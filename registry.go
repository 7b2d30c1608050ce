package stacklog

import (
	"log/slog"
	"sync"
)

// Sink is an installed log handler that can be switched off.
type Sink interface {
	slog.Handler
	Disable()
}

// Registry tracks the sinks currently receiving log records.
type Registry interface {
	ListActiveSinks() []Sink
	Disable(s Sink)
	Install(s Sink)
}

// MemRegistry is an in-process Registry.
type MemRegistry struct {
	mu     sync.Mutex
	active []Sink
}

func NewRegistry() *MemRegistry {
	return &MemRegistry{}
}

func (r *MemRegistry) ListActiveSinks() []Sink {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sink(nil), r.active...)
}

// Disable switches s off and forgets it. Unknown sinks are still disabled.
func (r *MemRegistry) Disable(s Sink) {
	s.Disable()

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.active {
		if a == s {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}

// Install registers s as active. Installing the same sink twice is a no-op.
func (r *MemRegistry) Install(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.active {
		if a == s {
			return
		}
	}
	r.active = append(r.active, s)
}

// NewLogger disables every sink active in reg, installs a fresh Handler built
// from opts and returns a logger writing through it.
func NewLogger(reg Registry, opts Options) (*slog.Logger, *Handler) {
	for _, s := range reg.ListActiveSinks() {
		reg.Disable(s)
	}
	h := NewHandler(opts)
	reg.Install(h)
	return slog.New(h), h
}
