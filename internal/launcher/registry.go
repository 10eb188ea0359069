// Package launcher is the execution collaborator of the routing pipeline: a
// registry of named URL-builder handlers resolved at startup, plus the
// simulator dispatch that opens the resulting URL scheme. Handlers declare
// their parameter order statically, so sequencing never needs reflection.
package launcher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kiosk404/portkey/internal/pkg/errno"
)

// BuilderFunc builds a URL-scheme string from positional arguments. Absent
// optional arguments arrive as empty strings.
type BuilderFunc func(args []string) (string, error)

// Handler is one registered execution binding.
type Handler struct {
	// Module groups related handlers; together with Function it forms the
	// binding key a descriptor selects by.
	Module   string
	Function string
	// Params is the declared parameter order. It is the static contract the
	// sequencer uses to produce positional arguments.
	Params []string
	// Build produces the URL scheme.
	Build BuilderFunc
}

func (h *Handler) key() string {
	return h.Module + "/" + h.Function
}

// Registry is a thread-safe registry of execution handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Register adds a handler to the registry. Returns an error if a handler
// with the same module/function is already registered.
func (r *Registry) Register(h *Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := h.key()
	if _, ok := r.handlers[key]; ok {
		return fmt.Errorf("handler %s is already registered", key)
	}
	r.handlers[key] = h
	return nil
}

// MustRegister adds a handler and panics on conflict. Intended for startup
// wiring where a duplicate is a programming error.
func (r *Registry) MustRegister(h *Handler) {
	if err := r.Register(h); err != nil {
		panic(err)
	}
}

// Lookup returns the handler bound to module/function.
func (r *Registry) Lookup(module, function string) (*Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[module+"/"+function]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", errno.ErrUnknownBinding, module, function)
	}
	return h, nil
}

// Params returns the declared parameter order for a binding, or nil when the
// binding is unknown. Used by the sequencer, which must never fail.
func (r *Registry) Params(module, function string) []string {
	h, err := r.Lookup(module, function)
	if err != nil {
		return nil
	}
	return h.Params
}

// List returns all handlers sorted by binding key for deterministic output.
func (r *Registry) List() []*Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
