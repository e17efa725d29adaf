package display

import (
	"context"
	"sync"
)

// Registry keeps one running engine per event. Engines start lazily
// when a display first connects and all stop together on shutdown.
type Registry struct {
	src Source
	bc  Broadcaster

	mu      sync.Mutex
	engines map[string]*Engine
	ctx     context.Context
	stop    context.CancelFunc
}

func NewRegistry(src Source, bc Broadcaster) *Registry {
	ctx, stop := context.WithCancel(context.Background())
	return &Registry{
		src:     src,
		bc:      bc,
		engines: make(map[string]*Engine),
		ctx:     ctx,
		stop:    stop,
	}
}

// Ensure returns the engine for an event, starting one if needed.
func (r *Registry) Ensure(eventID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[eventID]; ok {
		return e
	}
	e := NewEngine(eventID, r.src, r.bc)
	r.engines[eventID] = e
	go e.Run(r.ctx)
	return e
}

// Get returns a running engine or nil.
func (r *Registry) Get(eventID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engines[eventID]
}

// Stop tears down every engine.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stop()
	r.engines = make(map[string]*Engine)
}
