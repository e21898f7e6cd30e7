package service

import (
	"context"
	"fmt"
	"time"
)

// ReminderScheduler drives the periodic reminder loop.
type ReminderScheduler interface {
	// Start registers the tick job and begins firing. Calling it again is a no-op.
	Start(ctx context.Context) error
	// Stop prevents new ticks and waits for the in-flight one, bounded by ctx.
	Stop(ctx context.Context) error
	// Tick runs the due pass and the snooze-expiry pass for now. Failures are
	// returned joined for inspection; the loop itself only logs them.
	Tick(ctx context.Context, now time.Time) error
}

// Tick passes.
const (
	PassDue          = "due"
	PassSnoozeExpiry = "snooze-expiry"
)

// TickError describes a failure for a single schedule or confirmation within a
// tick. The rest of the tick still runs.
type TickError struct {
	Pass           string
	ScheduleID     string
	ConfirmationID string
	Err            error
}

func (e *TickError) Error() string {
	switch {
	case e.ConfirmationID != "":
		return fmt.Sprintf("%s pass: confirmation %s: %v", e.Pass, e.ConfirmationID, e.Err)
	case e.ScheduleID != "":
		return fmt.Sprintf("%s pass: schedule %s: %v", e.Pass, e.ScheduleID, e.Err)
	}
	return fmt.Sprintf("%s pass: %v", e.Pass, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}
