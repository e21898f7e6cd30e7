package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
)

var occurrenceColumns = []clause.Column{{Name: "schedule_id"}, {Name: "scheduled_time"}, {Name: "date_str"}}

type confirmationRepository struct {
	db *gorm.DB
}

// NewConfirmationRepository creates a new instance of ConfirmationRepository.
func NewConfirmationRepository(db *gorm.DB) repository.ConfirmationRepository {
	return &confirmationRepository{db: db}
}

// CreateIfAbsent relies on the unique occurrence index: the insert is a no-op
// when the tuple already exists, and the existing row is returned instead.
func (r *confirmationRepository) CreateIfAbsent(ctx context.Context, c *entity.Confirmation) (*entity.Confirmation, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: occurrenceColumns, DoNothing: true}).
		Create(c)
	if res.Error != nil {
		return nil, false, wrap(res.Error, "create confirmation for schedule %s at %s %s", c.ScheduleID, c.Date, c.ScheduledTime)
	}
	if res.RowsAffected == 1 {
		return c, true, nil
	}

	var existing entity.Confirmation
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND scheduled_time = ? AND date_str = ?", c.ScheduleID, c.ScheduledTime, c.Date).
		First(&existing).Error; err != nil {
		return nil, false, wrap(err, "find confirmation for schedule %s at %s %s", c.ScheduleID, c.Date, c.ScheduledTime)
	}
	return &existing, false, nil
}

// FindByID retrieves a confirmation by its ID.
func (r *confirmationRepository) FindByID(ctx context.Context, id string) (*entity.Confirmation, error) {
	var c entity.Confirmation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, wrap(err, "find confirmation %s", id)
	}
	return &c, nil
}

// FindByUserAndDate lists a user's confirmations for a day, oldest slot first.
func (r *confirmationRepository) FindByUserAndDate(ctx context.Context, userID, date string, status constant.ConfirmationStatus) ([]*entity.Confirmation, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND date_str = ?", userID, date)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var list []*entity.Confirmation
	if err := q.Order("scheduled_time asc, created_at asc").Find(&list).Error; err != nil {
		return nil, wrap(err, "find confirmations for user %s on %s", userID, date)
	}
	return list, nil
}

// FindSnoozedDueAt lists snoozed confirmations whose deadline is exactly (date, timeOfDay).
func (r *confirmationRepository) FindSnoozedDueAt(ctx context.Context, date, timeOfDay string) ([]*entity.Confirmation, error) {
	var list []*entity.Confirmation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND snooze_date = ? AND snooze_until = ?", string(constant.StatusSnoozed), date, timeOfDay).
		Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, wrap(err, "find snoozed confirmations due at %s %s", date, timeOfDay)
	}
	return list, nil
}

// TransitionStatus performs the compare-and-set in a single UPDATE. The WHERE
// clause only admits source statuses the state machine allows for `to`, so a
// taken confirmation is never modified.
func (r *confirmationRepository) TransitionStatus(ctx context.Context, id string, from, to constant.ConfirmationStatus, extra entity.Transition) (*entity.Confirmation, error) {
	sources := sourcesFor(to)
	if from != "" {
		if !from.CanTransitionTo(to) {
			return nil, fmt.Errorf("%w: cannot move confirmation %s from %s to %s", appErrors.ErrConflict, id, from, to)
		}
		sources = []string{string(from)}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no transition leads to %q", appErrors.ErrConflict, to)
	}

	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if extra.SnoozeUntil != nil {
		updates["snooze_until"] = *extra.SnoozeUntil
	}
	if extra.SnoozeDate != nil {
		updates["snooze_date"] = *extra.SnoozeDate
	}
	if extra.SnoozedAt != nil {
		updates["snoozed_at"] = *extra.SnoozedAt
	}
	if extra.TakenAt != nil {
		updates["taken_at"] = *extra.TakenAt
	}
	if extra.SentAt != nil {
		updates["sent_at"] = *extra.SentAt
	}

	res := r.db.WithContext(ctx).
		Model(&entity.Confirmation{}).
		Where("id = ? AND status IN ?", id, sources).
		Updates(updates)
	if res.Error != nil {
		return nil, wrap(res.Error, "update status of confirmation %s", id)
	}
	if res.RowsAffected == 0 {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: confirmation %s is %s, cannot move to %s", appErrors.ErrConflict, id, current.Status, to)
	}
	return r.FindByID(ctx, id)
}

func sourcesFor(to constant.ConfirmationStatus) []string {
	var sources []string
	for _, s := range []constant.ConfirmationStatus{constant.StatusSent, constant.StatusSnoozed, constant.StatusTaken} {
		if s.CanTransitionTo(to) {
			sources = append(sources, string(s))
		}
	}
	return sources
}
