package launcher

import (
	"context"
	"fmt"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/pkg/logger"
)

// Launcher resolves an execution binding, builds the URL scheme and hands it
// to the dispatcher. It is the only component that acts on the outside world;
// everything before it is pure routing.
type Launcher struct {
	registry   *Registry
	dispatcher URLOpener
}

// New creates a Launcher over the given handler registry and dispatcher.
func New(registry *Registry, dispatcher URLOpener) *Launcher {
	return &Launcher{registry: registry, dispatcher: dispatcher}
}

// Registry exposes the handler registry for parameter-order lookups.
func (l *Launcher) Registry() *Registry {
	return l.registry
}

// Execute builds the URL for the bound handler and dispatches it. The built
// URL is returned as output text even on dispatch failure so callers can
// report what was attempted.
func (l *Launcher) Execute(ctx context.Context, module, function string, argv []string) (string, error) {
	h, err := l.registry.Lookup(module, function)
	if err != nil {
		return "", err
	}

	url, err := h.Build(argv)
	if err != nil {
		return "", fmt.Errorf("%w: handler %s/%s: %v", errno.ErrLaunchFailed, module, function, err)
	}
	logger.Debug("built URL scheme %q via %s/%s", url, module, function)

	if err := l.dispatcher.Open(ctx, url); err != nil {
		return url, fmt.Errorf("%w: %v", errno.ErrLaunchFailed, err)
	}
	return url, nil
}
