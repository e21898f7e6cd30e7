package entity

import (
	"time"

	"medreminder/internal/domain/constant"
)

// User holds what the reminder core needs about an account: its id and the
// notification endpoint. Credentials live elsewhere.
type User struct {
	ID              string                `gorm:"column:id;primaryKey"`
	EndpointKind    constant.EndpointKind `gorm:"column:endpoint_kind"`
	EndpointAddress string                `gorm:"column:endpoint_address"`
	EndpointP256dh  string                `gorm:"column:endpoint_p256dh"`
	EndpointAuth    string                `gorm:"column:endpoint_auth"`
	CreatedAt       time.Time             `gorm:"column:created_at"`
	UpdatedAt       time.Time             `gorm:"column:updated_at"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Endpoint returns the registered notification endpoint, if any.
func (u *User) Endpoint() (Endpoint, bool) {
	if u.EndpointKind == "" || u.EndpointAddress == "" {
		return Endpoint{}, false
	}
	return Endpoint{
		Kind:    u.EndpointKind,
		Address: u.EndpointAddress,
		P256dh:  u.EndpointP256dh,
		Auth:    u.EndpointAuth,
	}, true
}

// SetEndpoint stores ep on the user.
func (u *User) SetEndpoint(ep Endpoint) {
	u.EndpointKind = ep.Kind
	u.EndpointAddress = ep.Address
	u.EndpointP256dh = ep.P256dh
	u.EndpointAuth = ep.Auth
}

// Endpoint describes where a user's notifications go. Address is the push
// service URL, LINE user id or Telegram chat id depending on Kind; P256dh and
// Auth are only meaningful for web push.
type Endpoint struct {
	Kind    constant.EndpointKind
	Address string
	P256dh  string
	Auth    string
}
