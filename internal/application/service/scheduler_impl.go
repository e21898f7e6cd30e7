package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	"medreminder/internal/infrastructure/scheduler"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

const defaultNotifyTimeout = 10 * time.Second

// SchedulerOptions configures the reminder loop.
type SchedulerOptions struct {
	// Spec is a seconds-precision cron spec, e.g. "*/20 * * * * *".
	Spec          string
	Location      *time.Location
	NotifyTimeout time.Duration
	Clock         Clock
}

type reminderScheduler struct {
	cron             *scheduler.Cron
	scheduleRepo     repository.ScheduleRepository
	confirmationRepo repository.ConfirmationRepository
	userRepo         repository.UserRepository
	notifier         Notifier
	opts             SchedulerOptions
	log              logger.Logger

	mu      sync.Mutex
	started bool
	entry   cron.EntryID
	ticks   atomic.Uint64
}

// NewReminderScheduler creates a new instance of ReminderScheduler implementation.
func NewReminderScheduler(
	cronScheduler *scheduler.Cron,
	scheduleRepo repository.ScheduleRepository,
	confirmationRepo repository.ConfirmationRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	opts SchedulerOptions,
	log logger.Logger,
) ReminderScheduler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &reminderScheduler{
		cron:             cronScheduler,
		scheduleRepo:     scheduleRepo,
		confirmationRepo: confirmationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		opts:             opts,
		log:              log,
	}
}

// Start registers the tick job and begins firing.
func (s *reminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	entry, err := s.cron.AddJob(s.opts.Spec, s.runTick)
	if err != nil {
		return fmt.Errorf("register reminder tick: %w", err)
	}
	s.entry = entry
	s.cron.Start()
	s.started = true
	s.log.Info(fmt.Sprintf("Reminder scheduler started with spec %q", s.opts.Spec),
		zap.String("location", s.opts.Location.String()))
	return nil
}

// Stop unregisters the tick and waits for the in-flight one.
func (s *reminderScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.started = false
	s.cron.Remove(s.entry)
	s.entry = 0
	if err := s.cron.Stop(ctx); err != nil {
		return err
	}
	s.log.Info("Reminder scheduler stopped.")
	return nil
}

// runTick is the cron job body. Tick errors stop here.
func (s *reminderScheduler) runTick() {
	_ = s.Tick(context.Background(), s.opts.Clock())
}

// Tick runs both passes against a single wall-clock reading.
func (s *reminderScheduler) Tick(ctx context.Context, now time.Time) error {
	m := entity.MomentOf(now.In(s.opts.Location))
	log := s.log.With(zap.Uint64("tick", s.ticks.Add(1)), zap.String("at", m.Date+" "+m.Time))

	var errs []error
	errs = append(errs, s.duePass(ctx, m, log)...)
	errs = append(errs, s.snoozePass(ctx, m, log)...)

	for _, err := range errs {
		var te *TickError
		if errors.As(err, &te) {
			log.Error("Reminder tick failure", te.Err,
				zap.String("pass", te.Pass),
				zap.String("schedule_id", te.ScheduleID),
				zap.String("confirmation_id", te.ConfirmationID),
			)
			continue
		}
		log.Error("Reminder tick failure", err)
	}
	return errors.Join(errs...)
}

// duePass creates a confirmation for every schedule due at m and notifies only
// when this tick created it.
func (s *reminderScheduler) duePass(ctx context.Context, m entity.Moment, log logger.Logger) []error {
	schedules, err := s.scheduleRepo.FindActiveDueAt(ctx, m.Time, m.Day)
	if err != nil {
		return []error{&TickError{Pass: PassDue, Err: err}}
	}

	var errs []error
	for _, sch := range schedules {
		now := m.At.UTC()
		c, created, err := s.confirmationRepo.CreateIfAbsent(ctx, &entity.Confirmation{
			ID:            uuid.NewString(),
			UserID:        sch.UserID,
			ScheduleID:    sch.ID,
			MedicineName:  sch.MedicineName,
			ScheduledTime: m.Time,
			Date:          m.Date,
			Status:        constant.StatusSent,
			SentAt:        now,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			errs = append(errs, &TickError{Pass: PassDue, ScheduleID: sch.ID, Err: err})
			continue
		}
		if !created {
			log.Debug("Occurrence already handled", zap.String("schedule_id", sch.ID), zap.String("confirmation_id", c.ID))
			continue
		}

		log.Info(fmt.Sprintf("Reminder due for %s", sch.MedicineName),
			zap.String("schedule_id", sch.ID),
			zap.String("confirmation_id", c.ID),
			zap.String("user_id", sch.UserID),
		)
		if err := s.dispatch(ctx, c, constant.KindDue, log); err != nil {
			errs = append(errs, &TickError{Pass: PassDue, ScheduleID: sch.ID, ConfirmationID: c.ID, Err: err})
		}
	}
	return errs
}

// snoozePass re-arms snoozed confirmations whose deadline is m. The
// snoozed -> sent transition is the guard: if the user answered in between,
// the transition conflicts and nothing is sent.
func (s *reminderScheduler) snoozePass(ctx context.Context, m entity.Moment, log logger.Logger) []error {
	snoozed, err := s.confirmationRepo.FindSnoozedDueAt(ctx, m.Date, m.Time)
	if err != nil {
		return []error{&TickError{Pass: PassSnoozeExpiry, Err: err}}
	}

	var errs []error
	for _, c := range snoozed {
		sentAt := m.At.UTC()
		rearmed, err := s.confirmationRepo.TransitionStatus(ctx, c.ID, constant.StatusSnoozed, constant.StatusSent, entity.Transition{SentAt: &sentAt})
		if err != nil {
			if errors.Is(err, appErrors.ErrConflict) || errors.Is(err, appErrors.ErrNotFound) {
				log.Debug("Snoozed confirmation changed before re-arm", zap.String("confirmation_id", c.ID), zap.Error(err))
				continue
			}
			errs = append(errs, &TickError{Pass: PassSnoozeExpiry, ScheduleID: c.ScheduleID, ConfirmationID: c.ID, Err: err})
			continue
		}

		log.Info(fmt.Sprintf("Snooze ended for %s", rearmed.MedicineName),
			zap.String("confirmation_id", rearmed.ID),
			zap.String("user_id", rearmed.UserID),
		)
		if err := s.dispatch(ctx, rearmed, constant.KindSnoozeExpired, log); err != nil {
			errs = append(errs, &TickError{Pass: PassSnoozeExpiry, ScheduleID: rearmed.ScheduleID, ConfirmationID: rearmed.ID, Err: err})
		}
	}
	return errs
}

// dispatch hands the notification to the notifier. The confirmation state is
// never rolled back on failure. An expired endpoint is cleared so later ticks
// stop using it.
func (s *reminderScheduler) dispatch(ctx context.Context, c *entity.Confirmation, kind constant.NotificationKind, log logger.Logger) error {
	user, err := s.userRepo.FindByID(ctx, c.UserID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s has no notification endpoint", appErrors.ErrDispatch, c.UserID)
		}
		return err
	}
	ep, ok := user.Endpoint()
	if !ok {
		return fmt.Errorf("%w: user %s has no notification endpoint", appErrors.ErrDispatch, c.UserID)
	}

	nctx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
	defer cancel()

	err = s.notifier.Notify(nctx, ep, entity.NewNotification(c, kind))
	if err == nil {
		return nil
	}
	if errors.Is(err, appErrors.ErrEndpointExpired) {
		if clearErr := s.userRepo.ClearEndpointIfMatches(ctx, user.ID, ep.Address); clearErr != nil {
			log.Error("Failed to clear expired endpoint", clearErr, zap.String("user_id", user.ID))
		} else {
			log.Warn(fmt.Sprintf("Cleared expired %s endpoint", ep.Kind), zap.String("user_id", user.ID))
		}
	}
	if !errors.Is(err, appErrors.ErrDispatch) {
		err = fmt.Errorf("%w: %w", appErrors.ErrDispatch, err)
	}
	return err
}
