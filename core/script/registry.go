package script

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
)

// Handler executes one command.
type Handler interface {
	Call(ctx context.Context, env *Env, args []string) Result
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, env *Env, args []string) Result

// Call implements Handler.
func (f HandlerFunc) Call(ctx context.Context, env *Env, args []string) Result {
	return f(ctx, env, args)
}

var _ Handler = (HandlerFunc)(nil)

// Registry maps command names to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler; names must be unique.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return eris.New("command name can't be empty")
	}
	if h == nil {
		return eris.Errorf("nil handler for command %q", name)
	}
	if _, ok := r.handlers[name]; ok {
		return eris.Errorf("command %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is Register that panics on error; for init-time tables.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Lookup finds the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists the registered commands in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
