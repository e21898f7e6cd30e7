package repository

import (
	"context"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
)

// ConfirmationRepository defines the interface for confirmation data operations.
// Creation and status changes are atomic at the store level.
type ConfirmationRepository interface {
	// CreateIfAbsent inserts c unless a confirmation with the same
	// (schedule id, scheduled time, date) exists. It returns the stored record and
	// whether this call created it.
	CreateIfAbsent(ctx context.Context, c *entity.Confirmation) (*entity.Confirmation, bool, error)
	// FindByID retrieves a confirmation by its ID.
	FindByID(ctx context.Context, id string) (*entity.Confirmation, error)
	// FindByUserAndDate lists a user's confirmations for a calendar day, optionally
	// filtered by status (empty means any).
	FindByUserAndDate(ctx context.Context, userID, date string, status constant.ConfirmationStatus) ([]*entity.Confirmation, error)
	// FindSnoozedDueAt lists snoozed confirmations whose deadline is exactly (date, timeOfDay).
	FindSnoozedDueAt(ctx context.Context, date, timeOfDay string) ([]*entity.Confirmation, error)
	// TransitionStatus is a compare-and-set status update. When from is empty any
	// non-terminal current status matches. A taken confirmation never changes.
	// Fails with ErrNotFound or ErrConflict.
	TransitionStatus(ctx context.Context, id string, from, to constant.ConfirmationStatus, extra entity.Transition) (*entity.Confirmation, error)
}
