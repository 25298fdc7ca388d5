package testutil

import (
	"sync"

	"github.com/c360/statekit/component"
)

// LegacyEmitter is a scripted legacy child: it hands its Listen hook to the
// composer and lets tests push new state through Emit.
type LegacyEmitter struct {
	Name  string
	State any

	mu        sync.Mutex
	listeners []component.Listener
}

// NewLegacyEmitter creates a scripted legacy child with an initial state.
func NewLegacyEmitter(name string, state any) *LegacyEmitter {
	return &LegacyEmitter{Name: name, State: state}
}

// Listen registers a listener, matching the legacy subscribe contract.
func (e *LegacyEmitter) Listen(l component.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = append(e.listeners, l)
}

// Emit pushes a new state value to every registered listener, synchronously.
func (e *LegacyEmitter) Emit(newState any) {
	e.mu.Lock()
	e.State = newState
	listeners := make([]component.Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, l := range listeners {
		l(newState)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *LegacyEmitter) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners)
}

// Child adapts the emitter into the closed child contract.
func (e *LegacyEmitter) Child() component.Child {
	return component.Legacy(component.LegacyConfig{
		Name:          e.Name,
		State:         e.State,
		DefaultState:  map[string]any{},
		Config:        map[string]any{},
		DefaultConfig: map[string]any{},
		Listen:        e.Listen,
	})
}
