package bot

import (
	"context"
	"fmt"
)

// Registry manages bot handlers and dispatches invocations.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make([]Handler, 0),
	}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Dispatch routes an invocation to the first handler that owns its kind.
// An unclaimed kind is a wiring bug and reported as an error.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) ([]Reply, error) {
	for _, h := range r.handlers {
		if h.CanHandle(inv.Command.Kind) {
			return h.Handle(ctx, inv)
		}
	}
	return nil, fmt.Errorf("no handler registered for command %s", inv.Command.Kind)
}

// GetHandler returns a handler by name, or nil if not registered.
func (r *Registry) GetHandler(name string) Handler {
	for _, h := range r.handlers {
		if h.Name() == name {
			return h
		}
	}
	return nil
}
