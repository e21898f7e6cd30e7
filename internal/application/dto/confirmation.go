package dto

import (
	"time"

	"medreminder/internal/domain/entity"
)

// AcknowledgeRequest is the DTO for answering a reminder.
type AcknowledgeRequest struct {
	Status  string `json:"status"`
	Minutes *int   `json:"minutes,omitempty"`
}

// ConfirmRequest carries the confirmation id in the body instead of the path.
type ConfirmRequest struct {
	ConfirmationID string `json:"confirmation_id"`
	Status         string `json:"status"`
	Minutes        *int   `json:"minutes,omitempty"`
}

// ConfirmationResponse is the DTO for sending confirmation information to the client.
type ConfirmationResponse struct {
	ID            string     `json:"id"`
	ScheduleID    string     `json:"schedule_id"`
	MedicineName  string     `json:"medicine_name"`
	ScheduledTime string     `json:"scheduled_time"`
	Date          string     `json:"date"`
	Status        string     `json:"status"`
	SentAt        time.Time  `json:"sent_at"`
	SnoozeUntil   *string    `json:"snooze_until,omitempty"`
	SnoozeDate    *string    `json:"snooze_date,omitempty"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
}

// ToConfirmationResponse converts an entity.Confirmation to a ConfirmationResponse DTO.
func ToConfirmationResponse(c *entity.Confirmation) ConfirmationResponse {
	return ConfirmationResponse{
		ID:            c.ID,
		ScheduleID:    c.ScheduleID,
		MedicineName:  c.MedicineName,
		ScheduledTime: c.ScheduledTime,
		Date:          c.Date,
		Status:        string(c.Status),
		SentAt:        c.SentAt,
		SnoozeUntil:   c.SnoozeUntil,
		SnoozeDate:    c.SnoozeDate,
		TakenAt:       c.TakenAt,
	}
}

// ToConfirmationResponseList converts a slice of entity.Confirmation to DTOs.
func ToConfirmationResponseList(list []*entity.Confirmation) []ConfirmationResponse {
	out := make([]ConfirmationResponse, len(list))
	for i, c := range list {
		out[i] = ToConfirmationResponse(c)
	}
	return out
}
