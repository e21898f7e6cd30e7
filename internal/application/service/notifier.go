package service

import (
	"context"
	"time"

	"medreminder/internal/domain/entity"
)

// Notifier delivers a reminder to a user's endpoint. Implementations must
// return promptly once ctx is done.
type Notifier interface {
	Notify(ctx context.Context, endpoint entity.Endpoint, n entity.Notification) error
}

// Clock returns the current time.
type Clock func() time.Time
