package service

import (
	"context"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/constant"
)

// ConfirmationService defines the interface for answering reminders.
type ConfirmationService interface {
	// Acknowledge records the user's answer to a reminder: taken is terminal,
	// snoozed re-arms the reminder after minutes (nil means the default).
	Acknowledge(ctx context.Context, userID, confirmationID string, status constant.ConfirmationStatus, minutes *int) (*dto.ConfirmationResponse, error)
	// GetConfirmation returns one confirmation owned by the user.
	GetConfirmation(ctx context.Context, userID, confirmationID string) (*dto.ConfirmationResponse, error)
	// ListConfirmations returns the user's confirmations for a date, optionally filtered by status.
	ListConfirmations(ctx context.Context, userID, date, status string) ([]dto.ConfirmationResponse, error)
}
