package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	"medreminder/internal/infrastructure/database"
	"medreminder/internal/infrastructure/scheduler"
	"medreminder/internal/pkg/logger"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute, second int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC)
}

type sent struct {
	Endpoint     entity.Endpoint
	Notification entity.Notification
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, ep entity.Endpoint, msg entity.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{Endpoint: ep, Notification: msg})
	return n.err
}

func (n *recordingNotifier) Sent() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.sent...)
}

type fixture struct {
	schedules     repository.ScheduleRepository
	confirmations repository.ConfirmationRepository
	users         repository.UserRepository
	notifier      *recordingNotifier
	clock         time.Time

	scheduleSvc     ScheduleService
	confirmationSvc ConfirmationService
	userSvc         UserService
	scheduler       ReminderScheduler
	cron            *scheduler.Cron
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, URL: ":memory:", Logger: logger.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.NewNop()
	f := &fixture{
		schedules:     database.NewScheduleRepository(db),
		confirmations: database.NewConfirmationRepository(db),
		users:         database.NewUserRepository(db),
		notifier:      &recordingNotifier{},
		clock:         monday,
		cron:          scheduler.NewCron(time.UTC, log),
	}
	clock := func() time.Time { return f.clock }

	f.scheduleSvc = NewScheduleService(f.schedules, log)
	f.confirmationSvc = NewConfirmationService(f.confirmations, ConfirmationOptions{
		DefaultSnoozeMinutes: 30,
		Location:             time.UTC,
		Clock:                clock,
	}, log)
	f.userSvc = NewUserService(f.users, nil, log)
	f.scheduler = NewReminderScheduler(
		f.cron,
		f.schedules, f.confirmations, f.users, f.notifier,
		SchedulerOptions{Spec: "*/20 * * * * *", Location: time.UTC, NotifyTimeout: time.Second, Clock: clock},
		log,
	)
	return f
}

func (f *fixture) registerLine(t *testing.T, userID string) {
	t.Helper()
	_, err := f.users.UpsertEndpoint(context.Background(), userID, entity.Endpoint{Kind: constant.EndpointLine, Address: "L-" + userID})
	require.NoError(t, err)
}

func (f *fixture) tick(t *testing.T, now time.Time) error {
	t.Helper()
	f.clock = now
	return f.scheduler.Tick(context.Background(), now)
}
