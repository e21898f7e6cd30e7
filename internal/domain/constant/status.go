package constant

// ConfirmationStatus is the state of a single dose occurrence.
type ConfirmationStatus string

const (
	// StatusSent is the initial state, set when the reminder goes out (and again on re-arm).
	StatusSent ConfirmationStatus = "sent"
	// StatusTaken is terminal for the occurrence.
	StatusTaken ConfirmationStatus = "taken"
	// StatusSnoozed carries a snooze-until deadline.
	StatusSnoozed ConfirmationStatus = "snoozed"
)

// Valid reports whether s is a known status.
func (s ConfirmationStatus) Valid() bool {
	switch s {
	case StatusSent, StatusTaken, StatusSnoozed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> to.
func (s ConfirmationStatus) CanTransitionTo(to ConfirmationStatus) bool {
	switch s {
	case StatusSent:
		return to == StatusTaken || to == StatusSnoozed
	case StatusSnoozed:
		return to == StatusSent || to == StatusTaken
	}
	return false
}

func (s ConfirmationStatus) String() string {
	return string(s)
}
