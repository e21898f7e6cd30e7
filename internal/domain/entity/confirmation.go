package entity

import (
	"time"

	"medreminder/internal/domain/constant"
)

// Confirmation records one due occurrence of a schedule and the user's response to it.
// At most one exists per (ScheduleID, ScheduledTime, Date).
type Confirmation struct {
	ID            string                      `gorm:"column:id;primaryKey"`
	UserID        string                      `gorm:"column:user_id;index"`
	ScheduleID    string                      `gorm:"column:schedule_id"`
	MedicineName  string                      `gorm:"column:medicine_name"`
	ScheduledTime string                      `gorm:"column:scheduled_time"` // HH:MM
	Date          string                      `gorm:"column:date_str"`       // YYYY-MM-DD
	Status        constant.ConfirmationStatus `gorm:"column:status"`
	SentAt        time.Time                   `gorm:"column:sent_at"`
	SnoozeUntil   *string                     `gorm:"column:snooze_until"` // HH:MM
	SnoozeDate    *string                     `gorm:"column:snooze_date"`  // Day the snooze deadline falls on
	SnoozedAt     *time.Time                  `gorm:"column:snoozed_at"`
	TakenAt       *time.Time                  `gorm:"column:taken_at"`
	CreatedAt     time.Time                   `gorm:"column:created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Confirmation entity.
func (Confirmation) TableName() string {
	return "confirmations"
}

// Transition carries the fields written alongside a status change.
type Transition struct {
	SnoozeUntil *string
	SnoozeDate  *string
	SnoozedAt   *time.Time
	TakenAt     *time.Time
	SentAt      *time.Time
}
