package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
)

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create stores a new schedule.
func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return wrap(err, "create schedule for user %s", schedule.UserID)
	}
	return nil
}

// FindByID retrieves a schedule owned by userID.
func (r *scheduleRepository) FindByID(ctx context.Context, id, userID string) (*entity.Schedule, error) {
	var schedule entity.Schedule
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&schedule).Error; err != nil {
		return nil, wrap(err, "find schedule %s", id)
	}
	return &schedule, nil
}

// FindActiveByUserID lists a user's active schedules ordered by creation.
func (r *scheduleRepository) FindActiveByUserID(ctx context.Context, userID string) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at asc, id asc").
		Find(&schedules).Error; err != nil {
		return nil, wrap(err, "find schedules by user_id %s", userID)
	}
	return schedules, nil
}

// FindActiveDueAt returns active schedules firing at exactly timeOfDay on day.
func (r *scheduleRepository) FindActiveDueAt(ctx context.Context, timeOfDay string, day time.Weekday) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND time_of_day = ? AND (days & ?) <> 0", true, timeOfDay, int64(entity.WeekdayBit(day))).
		Order("created_at asc").
		Find(&schedules).Error; err != nil {
		return nil, wrap(err, "find schedules due at %s %s", entity.WeekdayAbbr(day), timeOfDay)
	}
	return schedules, nil
}

// Update persists the mutable schedule fields.
func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Schedule{}).
		Where("id = ? AND user_id = ?", schedule.ID, schedule.UserID).
		Updates(map[string]any{
			"medicine_name": schedule.MedicineName,
			"time_of_day":   schedule.TimeOfDay,
			"period":        schedule.Period,
			"days":          schedule.Days,
			"is_active":     schedule.Active,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return wrap(res.Error, "update schedule %s", schedule.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: schedule %s", appErrors.ErrNotFound, schedule.ID)
	}
	return nil
}

// Delete hard-deletes a schedule. Confirmations referencing it are kept.
func (r *scheduleRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Schedule{})
	if res.Error != nil {
		return wrap(res.Error, "delete schedule %s", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: schedule %s", appErrors.ErrNotFound, id)
	}
	return nil
}
