package errors

import "errors"

// Application error taxonomy. Stores and services wrap these with %w so callers
// can branch with errors.Is.
var (
	ErrNotFound        = errors.New("not found")                     // Schedule or confirmation missing, or owned by another user
	ErrConflict        = errors.New("status conflict")               // Transition from an unexpected current state
	ErrValidation      = errors.New("validation failed")             // Malformed time-of-day, empty day-set, bad snooze duration
	ErrDispatch        = errors.New("notification dispatch failed")  // Notifier could not deliver
	ErrEndpointExpired = errors.New("notification endpoint expired") // Transport reports the endpoint is gone for good
	ErrStore           = errors.New("store operation failed")        // Database failure
	ErrUnauthorized    = errors.New("unauthorized")                  // Missing or invalid identity
)
