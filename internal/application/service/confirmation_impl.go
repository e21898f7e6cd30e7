package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

const (
	// DefaultSnoozeMinutes applies when the caller does not pick a duration.
	DefaultSnoozeMinutes = 30
	// MaxSnoozeMinutes keeps a snooze within one day of the acknowledgement.
	MaxSnoozeMinutes = 24 * 60
)

// ConfirmationOptions configures the confirmation service.
type ConfirmationOptions struct {
	DefaultSnoozeMinutes int
	Location             *time.Location
	Clock                Clock
}

type confirmationService struct {
	confirmationRepo repository.ConfirmationRepository
	defaultSnooze    int
	loc              *time.Location
	now              Clock
	log              logger.Logger
}

// NewConfirmationService creates a new instance of ConfirmationService implementation.
func NewConfirmationService(confirmationRepo repository.ConfirmationRepository, opts ConfirmationOptions, log logger.Logger) ConfirmationService {
	if opts.DefaultSnoozeMinutes <= 0 {
		opts.DefaultSnoozeMinutes = DefaultSnoozeMinutes
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &confirmationService{
		confirmationRepo: confirmationRepo,
		defaultSnooze:    opts.DefaultSnoozeMinutes,
		loc:              opts.Location,
		now:              opts.Clock,
		log:              log,
	}
}

// Acknowledge records the user's answer to a reminder.
func (s *confirmationService) Acknowledge(ctx context.Context, userID, confirmationID string, status constant.ConfirmationStatus, minutes *int) (*dto.ConfirmationResponse, error) {
	if status != constant.StatusTaken && status != constant.StatusSnoozed {
		return nil, fmt.Errorf("%w: status must be %q or %q", appErrors.ErrValidation, constant.StatusTaken, constant.StatusSnoozed)
	}

	snooze := s.defaultSnooze
	if status == constant.StatusSnoozed && minutes != nil {
		snooze = *minutes
	}
	if status == constant.StatusSnoozed && (snooze < 1 || snooze > MaxSnoozeMinutes) {
		return nil, fmt.Errorf("%w: snooze minutes must be between 1 and %d, got %d", appErrors.ErrValidation, MaxSnoozeMinutes, snooze)
	}

	current, err := s.owned(ctx, userID, confirmationID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	var extra entity.Transition
	switch status {
	case constant.StatusTaken:
		extra.TakenAt = &now
	case constant.StatusSnoozed:
		until := now.Add(time.Duration(snooze) * time.Minute)
		untilTime := until.Format(entity.TimeOfDayLayout)
		untilDate := until.Format(entity.DateLayout)
		extra.SnoozeUntil = &untilTime
		extra.SnoozeDate = &untilDate
		extra.SnoozedAt = &now
	}

	updated, err := s.confirmationRepo.TransitionStatus(ctx, confirmationID, current.Status, status, extra)
	if err != nil {
		if errors.Is(err, appErrors.ErrConflict) {
			s.log.Warn(fmt.Sprintf("Rejected %s for confirmation %s in state %s", status, confirmationID, current.Status),
				zap.String("user_id", userID))
		} else if !errors.Is(err, appErrors.ErrNotFound) {
			s.log.Error(fmt.Sprintf("Failed to acknowledge confirmation %s", confirmationID), err)
		}
		return nil, err
	}

	fields := []zap.Field{zap.String("confirmation_id", confirmationID), zap.String("user_id", userID)}
	if status == constant.StatusSnoozed {
		fields = append(fields, zap.String("snooze_until", *extra.SnoozeDate+" "+*extra.SnoozeUntil))
	}
	s.log.Info(fmt.Sprintf("Confirmation marked %s", status), fields...)

	resp := dto.ToConfirmationResponse(updated)
	return &resp, nil
}

// GetConfirmation returns one confirmation owned by the user.
func (s *confirmationService) GetConfirmation(ctx context.Context, userID, confirmationID string) (*dto.ConfirmationResponse, error) {
	c, err := s.owned(ctx, userID, confirmationID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToConfirmationResponse(c)
	return &resp, nil
}

// ListConfirmations returns the user's confirmations for a date. An empty date means today.
func (s *confirmationService) ListConfirmations(ctx context.Context, userID, date, status string) ([]dto.ConfirmationResponse, error) {
	if date == "" {
		date = s.now().In(s.loc).Format(entity.DateLayout)
	}
	date, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}
	st := constant.ConfirmationStatus(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", appErrors.ErrValidation, status)
	}

	list, err := s.confirmationRepo.FindByUserAndDate(ctx, userID, date, st)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list confirmations for user %s on %s", userID, date), err)
		return nil, err
	}
	return dto.ToConfirmationResponseList(list), nil
}

// owned loads the confirmation and hides it from other users.
func (s *confirmationService) owned(ctx context.Context, userID, confirmationID string) (*entity.Confirmation, error) {
	c, err := s.confirmationRepo.FindByID(ctx, confirmationID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("%w: confirmation %s", appErrors.ErrNotFound, confirmationID)
	}
	return c, nil
}
