package repository

import (
	"context"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEndpoint retrieves the user registered with the given endpoint.
	FindByEndpoint(ctx context.Context, kind constant.EndpointKind, address string) (*entity.User, error)
	// UpsertEndpoint creates the user row if needed and stores the endpoint.
	UpsertEndpoint(ctx context.Context, userID string, endpoint entity.Endpoint) (*entity.User, error)
	// ClearEndpoint removes the user's endpoint. Clearing a missing user is not an error.
	ClearEndpoint(ctx context.Context, userID string) error
	// ClearEndpointIfMatches removes the endpoint only if it is still the given address,
	// so a fresh registration is not wiped by a stale failure.
	ClearEndpointIfMatches(ctx context.Context, userID, address string) error
}
