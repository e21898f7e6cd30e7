package entity

import "time"

// Schedule is a user's recurring medicine reminder.
type Schedule struct {
	ID           string    `gorm:"column:id;primaryKey"`
	UserID       string    `gorm:"column:user_id;index"`
	MedicineName string    `gorm:"column:medicine_name"`
	TimeOfDay    string    `gorm:"column:time_of_day"` // HH:MM
	Period       string    `gorm:"column:period"`      // Informational label (Morning, Night...)
	Days         DaySet    `gorm:"column:days"`
	Active       bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Schedule entity.
func (Schedule) TableName() string {
	return "schedules"
}

// DueAt reports whether the schedule fires at m: exact minute equality and weekday membership.
func (s *Schedule) DueAt(m Moment) bool {
	return s.Active && s.TimeOfDay == m.Time && s.Days.Contains(m.Day)
}
