package dto

import (
	"fmt"
	"time"

	"medreminder/internal/domain/entity"
	appErrors "medreminder/internal/pkg/errors"
)

// CreateScheduleRequest is the DTO for creating a schedule. A nil Days means every day.
type CreateScheduleRequest struct {
	MedicineName string    `json:"medicine_name"`
	Time         string    `json:"time"`
	Period       string    `json:"period"`
	Days         *[]string `json:"days,omitempty"`
}

// UpdateScheduleRequest is the DTO for a partial schedule update. Nil fields are left unchanged.
type UpdateScheduleRequest struct {
	MedicineName *string   `json:"medicine_name,omitempty"`
	Time         *string   `json:"time,omitempty"`
	Period       *string   `json:"period,omitempty"`
	Days         *[]string `json:"days,omitempty"`
	Active       *bool     `json:"is_active,omitempty"`
}

// ScheduleResponse is the DTO for sending schedule information to the client.
type ScheduleResponse struct {
	ID           string    `json:"id"`
	MedicineName string    `json:"medicine_name"`
	Time         string    `json:"time"`
	Period       string    `json:"period"`
	Days         []string  `json:"days"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToScheduleResponse converts an entity.Schedule to a ScheduleResponse DTO.
func ToScheduleResponse(s *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		MedicineName: s.MedicineName,
		Time:         s.TimeOfDay,
		Period:       s.Period,
		Days:         EncodeDays(s.Days),
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
	}
}

// ToScheduleResponseList converts a slice of entity.Schedule to ScheduleResponse DTOs.
func ToScheduleResponseList(schedules []*entity.Schedule) []ScheduleResponse {
	list := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		list[i] = ToScheduleResponse(s)
	}
	return list
}

// EncodeDays renders a day-set as ["Mon","Wed"], Monday first.
func EncodeDays(d entity.DaySet) []string {
	out := make([]string, 0, 7)
	for _, day := range d.Days() {
		if day != time.Sunday {
			out = append(out, entity.WeekdayAbbr(day))
		}
	}
	if d.Contains(time.Sunday) {
		out = append(out, entity.WeekdayAbbr(time.Sunday))
	}
	return out
}

// DecodeDays parses weekday names into a day-set. An empty list is invalid.
func DecodeDays(days []string) (entity.DaySet, error) {
	if len(days) == 0 {
		return 0, fmt.Errorf("%w: days must not be empty", appErrors.ErrValidation)
	}
	var set entity.DaySet
	for _, name := range days {
		day, err := entity.ParseWeekday(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", appErrors.ErrValidation, err)
		}
		set |= entity.WeekdayBit(day)
	}
	return set, nil
}
