package entity

import (
	"fmt"

	"medreminder/internal/domain/constant"
)

// Notification is the payload handed to a Notifier.
type Notification struct {
	ConfirmationID string
	MedicineName   string
	ScheduledTime  string
	Kind           constant.NotificationKind
}

// NewNotification builds the payload for c.
func NewNotification(c *Confirmation, kind constant.NotificationKind) Notification {
	return Notification{
		ConfirmationID: c.ID,
		MedicineName:   c.MedicineName,
		ScheduledTime:  c.ScheduledTime,
		Kind:           kind,
	}
}

// Title is the short headline shown by the client.
func (n Notification) Title() string {
	if n.Kind == constant.KindSnoozeExpired {
		return fmt.Sprintf("Snooze ended: %s", n.MedicineName)
	}
	return fmt.Sprintf("Time for %s", n.MedicineName)
}

// Body is the longer message text.
func (n Notification) Body() string {
	if n.Kind == constant.KindSnoozeExpired {
		return "Time to take your medication now!"
	}
	return fmt.Sprintf("It's %s. Please take your medicine.", n.ScheduledTime)
}
