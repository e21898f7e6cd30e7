package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

func dueConfirmation(t *testing.T, f *fixture, userID string) string {
	t.Helper()
	f.registerLine(t, userID)
	_, err := f.scheduleSvc.CreateSchedule(context.Background(), userID, dto.CreateScheduleRequest{MedicineName: "Aspirin", Time: "08:00"})
	require.NoError(t, err)
	require.NoError(t, f.tick(t, at(monday, 8, 0, 0)))
	sent := f.notifier.Sent()
	require.NotEmpty(t, sent)
	return sent[len(sent)-1].Notification.ConfirmationID
}

func TestAcknowledge_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := dueConfirmation(t, f, "u1")

	_, err := f.confirmationSvc.Acknowledge(ctx, "u1", id, constant.StatusSent, nil)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = f.confirmationSvc.Acknowledge(ctx, "u1", id, "skipped", nil)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	for _, minutes := range []int{0, -5, MaxSnoozeMinutes + 1} {
		_, err = f.confirmationSvc.Acknowledge(ctx, "u1", id, constant.StatusSnoozed, intPtr(minutes))
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "minutes=%d", minutes)
	}

	got, err := f.confirmationSvc.GetConfirmation(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, string(constant.StatusSent), got.Status, "rejected requests leave the record alone")
}

func TestAcknowledge_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := dueConfirmation(t, f, "u1")

	_, err := f.confirmationSvc.Acknowledge(ctx, "u1", "missing", constant.StatusTaken, nil)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = f.confirmationSvc.Acknowledge(ctx, "u2", id, constant.StatusTaken, nil)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound), "other users cannot see the confirmation")

	_, err = f.confirmationSvc.GetConfirmation(ctx, "u2", id)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestAcknowledge_SnoozeTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := dueConfirmation(t, f, "u1")

	f.clock = at(monday, 8, 1, 0)
	_, err := f.confirmationSvc.Acknowledge(ctx, "u1", id, constant.StatusSnoozed, intPtr(10))
	require.NoError(t, err)

	_, err = f.confirmationSvc.Acknowledge(ctx, "u1", id, constant.StatusSnoozed, intPtr(10))
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	taken, err := f.confirmationSvc.Acknowledge(ctx, "u1", id, constant.StatusTaken, nil)
	require.NoError(t, err)
	assert.Equal(t, string(constant.StatusTaken), taken.Status)
}

// racingConfirmations runs interleave once, between the service's read and its
// status update.
type racingConfirmations struct {
	repository.ConfirmationRepository
	interleave func()
}

func (r *racingConfirmations) TransitionStatus(ctx context.Context, id string, from, to constant.ConfirmationStatus, extra entity.Transition) (*entity.Confirmation, error) {
	if r.interleave != nil {
		r.interleave()
		r.interleave = nil
	}
	return r.ConfirmationRepository.TransitionStatus(ctx, id, from, to, extra)
}

func TestAcknowledge_StaleObservationConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := dueConfirmation(t, f, "u1")

	racing := &racingConfirmations{ConfirmationRepository: f.confirmations}
	racing.interleave = func() {
		until, date := "08:30", "2025-06-02"
		_, err := f.confirmations.TransitionStatus(ctx, id, constant.StatusSent, constant.StatusSnoozed,
			entity.Transition{SnoozeUntil: &until, SnoozeDate: &date})
		require.NoError(t, err)
	}
	svc := NewConfirmationService(racing, ConfirmationOptions{
		Location: time.UTC,
		Clock:    func() time.Time { return at(monday, 8, 1, 0) },
	}, logger.NewNop())

	_, err := svc.Acknowledge(ctx, "u1", id, constant.StatusTaken, nil)
	assert.True(t, errors.Is(err, appErrors.ErrConflict), "the record moved after it was read")

	got, err := f.confirmationSvc.GetConfirmation(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, string(constant.StatusSnoozed), got.Status)
}

func TestListConfirmations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := dueConfirmation(t, f, "u1")

	f.clock = at(monday, 9, 0, 0)
	today, err := f.confirmationSvc.ListConfirmations(ctx, "u1", "", "")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, id, today[0].ID)

	taken, err := f.confirmationSvc.ListConfirmations(ctx, "u1", "2025-06-02", string(constant.StatusTaken))
	require.NoError(t, err)
	assert.Empty(t, taken)

	_, err = f.confirmationSvc.ListConfirmations(ctx, "u1", "June 2nd", "")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = f.confirmationSvc.ListConfirmations(ctx, "u1", "2025-06-02", "pending")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
