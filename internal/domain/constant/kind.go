package constant

// NotificationKind tells the client why a reminder was sent.
type NotificationKind string

const (
	KindDue           NotificationKind = "due"
	KindSnoozeExpired NotificationKind = "snooze-expired"
)

// EndpointKind selects the transport used to reach a user.
type EndpointKind string

const (
	EndpointWebPush  EndpointKind = "webpush"
	EndpointLine     EndpointKind = "line"
	EndpointTelegram EndpointKind = "telegram"
)

// Valid reports whether k is a known endpoint kind.
func (k EndpointKind) Valid() bool {
	switch k {
	case EndpointWebPush, EndpointLine, EndpointTelegram:
		return true
	}
	return false
}
