package service

import (
	"context"

	"medreminder/internal/application/dto"
)

// ScheduleService defines the interface for managing a user's medication schedules.
type ScheduleService interface {
	// CreateSchedule validates and stores a new active schedule.
	CreateSchedule(ctx context.Context, userID string, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	// ListSchedules returns the user's active schedules ordered by creation.
	ListSchedules(ctx context.Context, userID string) ([]dto.ScheduleResponse, error)
	// GetSchedule returns one schedule owned by the user.
	GetSchedule(ctx context.Context, userID, scheduleID string) (*dto.ScheduleResponse, error)
	// UpdateSchedule applies a partial update.
	UpdateSchedule(ctx context.Context, userID, scheduleID string, req dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	// DeleteSchedule hard-deletes a schedule. Its confirmations are kept.
	DeleteSchedule(ctx context.Context, userID, scheduleID string) error
}
