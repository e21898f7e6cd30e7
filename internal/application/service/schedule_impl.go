package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

const maxMedicineNameLen = 200

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	log          logger.Logger
}

// NewScheduleService creates a new instance of ScheduleService implementation.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, log logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		log:          log,
	}
}

// CreateSchedule validates and stores a new active schedule.
func (s *scheduleService) CreateSchedule(ctx context.Context, userID string, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	name, err := validateMedicineName(req.MedicineName)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := entity.ParseTimeOfDay(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, err
	}
	days := entity.EveryDay()
	if req.Days != nil {
		if days, err = dto.DecodeDays(*req.Days); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	schedule := &entity.Schedule{
		ID:           uuid.NewString(),
		UserID:       userID,
		MedicineName: name,
		TimeOfDay:    timeOfDay,
		Period:       strings.TrimSpace(req.Period),
		Days:         days,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create schedule for user %s", userID), err)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Created schedule %s for user %s at %s", schedule.ID, userID, timeOfDay))
	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// ListSchedules returns the user's active schedules ordered by creation.
func (s *scheduleService) ListSchedules(ctx context.Context, userID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list schedules for user %s", userID), err)
		return nil, err
	}
	return dto.ToScheduleResponseList(schedules), nil
}

// GetSchedule returns one schedule owned by the user.
func (s *scheduleService) GetSchedule(ctx context.Context, userID, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// UpdateSchedule applies a partial update. Changing the time affects future
// ticks only; confirmations already created keep their scheduled time.
func (s *scheduleService) UpdateSchedule(ctx context.Context, userID, scheduleID string, req dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID, userID)
	if err != nil {
		return nil, err
	}

	if req.MedicineName != nil {
		if schedule.MedicineName, err = validateMedicineName(*req.MedicineName); err != nil {
			return nil, err
		}
	}
	if req.Time != nil {
		if schedule.TimeOfDay, err = entity.ParseTimeOfDay(strings.TrimSpace(*req.Time)); err != nil {
			return nil, err
		}
	}
	if req.Period != nil {
		schedule.Period = strings.TrimSpace(*req.Period)
	}
	if req.Days != nil {
		if schedule.Days, err = dto.DecodeDays(*req.Days); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		schedule.Active = *req.Active
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update schedule %s", scheduleID), err)
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Updated schedule %s for user %s", scheduleID, userID))
	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// DeleteSchedule hard-deletes a schedule. Its confirmations are kept.
func (s *scheduleService) DeleteSchedule(ctx context.Context, userID, scheduleID string) error {
	if err := s.scheduleRepo.Delete(ctx, scheduleID, userID); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("Deleted schedule %s for user %s", scheduleID, userID))
	return nil
}

func validateMedicineName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: medicine name is required", appErrors.ErrValidation)
	}
	if len(name) > maxMedicineNameLen {
		return "", fmt.Errorf("%w: medicine name exceeds %d characters", appErrors.ErrValidation, maxMedicineNameLen)
	}
	return name, nil
}
