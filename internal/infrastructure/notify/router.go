package notify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

// Sender delivers a notification over one transport.
type Sender interface {
	Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error

func (f SenderFunc) Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error {
	return f(ctx, endpoint, n)
}

// Router picks the Sender registered for the endpoint's kind. Every failure it
// returns wraps ErrDispatch.
type Router struct {
	mu      sync.RWMutex
	senders map[constant.EndpointKind]Sender
	log     logger.Logger
}

// NewRouter creates an empty Router.
func NewRouter(log logger.Logger) *Router {
	return &Router{
		senders: make(map[constant.EndpointKind]Sender),
		log:     log,
	}
}

// Register installs s for kind, replacing any previous sender.
func (r *Router) Register(kind constant.EndpointKind, s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[kind] = s
	r.log.Info(fmt.Sprintf("Registered %s notifier", kind))
}

// Supports reports whether a sender is registered for kind.
func (r *Router) Supports(kind constant.EndpointKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.senders[kind]
	return ok
}

// Notify dispatches n to endpoint.
func (r *Router) Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error {
	r.mu.RLock()
	s, ok := r.senders[endpoint.Kind]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: no notifier for endpoint kind %q", appErrors.ErrDispatch, endpoint.Kind)
	}

	if err := s.Notify(ctx, endpoint, n); err != nil {
		return fmt.Errorf("%w: %s: %w", appErrors.ErrDispatch, endpoint.Kind, err)
	}
	r.log.Debug("Notification dispatched",
		zap.String("kind", string(endpoint.Kind)),
		zap.String("confirmation_id", n.ConfirmationID),
		zap.String("notification", string(n.Kind)),
	)
	return nil
}
