package service

import (
	"context"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/constant"
)

// UserService defines the interface for managing where a user's reminders are delivered.
type UserService interface {
	// RegisterEndpoint validates and stores the user's notification endpoint,
	// creating the user record on first use.
	RegisterEndpoint(ctx context.Context, userID string, req dto.RegisterEndpointRequest) (*dto.EndpointResponse, error)
	// GetEndpoint returns the registered endpoint. ErrNotFound when none is set.
	GetEndpoint(ctx context.Context, userID string) (*dto.EndpointResponse, error)
	// ClearEndpoint stops delivery to the user.
	ClearEndpoint(ctx context.Context, userID string) error
	// ResolveUser maps a transport identity (e.g. a LINE user id) to the user id.
	ResolveUser(ctx context.Context, kind constant.EndpointKind, address string) (string, error)
}

// EndpointSupport reports which endpoint kinds have a configured notifier.
type EndpointSupport interface {
	Supports(kind constant.EndpointKind) bool
}
