package repository

import (
	"context"
	"time"

	"medreminder/internal/domain/entity"
)

// ScheduleRepository defines the interface for schedule data operations.
type ScheduleRepository interface {
	// Create stores a new schedule. The ID must already be set.
	Create(ctx context.Context, schedule *entity.Schedule) error
	// FindByID retrieves a schedule owned by userID.
	FindByID(ctx context.Context, id, userID string) (*entity.Schedule, error)
	// FindActiveByUserID lists a user's active schedules ordered by creation.
	FindActiveByUserID(ctx context.Context, userID string) ([]*entity.Schedule, error)
	// FindActiveDueAt returns active schedules whose time-of-day equals timeOfDay exactly
	// and whose day-set contains day. An empty result is not an error.
	FindActiveDueAt(ctx context.Context, timeOfDay string, day time.Weekday) ([]*entity.Schedule, error)
	// Update persists name, time, period, days and active flag.
	Update(ctx context.Context, schedule *entity.Schedule) error
	// Delete hard-deletes a schedule owned by userID.
	Delete(ctx context.Context, id, userID string) error
}
