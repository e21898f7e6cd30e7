package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
)

var endpointColumns = []string{"endpoint_kind", "endpoint_address", "endpoint_p256dh", "endpoint_auth", "updated_at"}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrap(err, "find user %s", id)
	}
	return &user, nil
}

// FindByEndpoint retrieves the user registered with the given endpoint.
func (r *userRepository) FindByEndpoint(ctx context.Context, kind constant.EndpointKind, address string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("endpoint_kind = ? AND endpoint_address = ?", string(kind), address).
		First(&user).Error; err != nil {
		return nil, wrap(err, "find user by %s endpoint", kind)
	}
	return &user, nil
}

// UpsertEndpoint stores the endpoint on the user, creating the row if needed.
// An endpoint belongs to one user at a time; a previous owner loses it.
func (r *userRepository) UpsertEndpoint(ctx context.Context, userID string, endpoint entity.Endpoint) (*entity.User, error) {
	now := time.Now().UTC()
	user := &entity.User{ID: userID, CreatedAt: now, UpdatedAt: now}
	user.SetEndpoint(endpoint)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.User{}).
			Where("id <> ? AND endpoint_kind = ? AND endpoint_address = ?", userID, string(endpoint.Kind), endpoint.Address).
			Updates(clearedEndpoint(now)).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(endpointColumns),
		}).Create(user).Error
	})
	if err != nil {
		return nil, wrap(err, "register endpoint for user %s", userID)
	}
	return r.FindByID(ctx, userID)
}

// ClearEndpoint removes the user's endpoint.
func (r *userRepository) ClearEndpoint(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(clearedEndpoint(time.Now().UTC())).Error; err != nil {
		return wrap(err, "clear endpoint for user %s", userID)
	}
	return nil
}

// ClearEndpointIfMatches removes the endpoint only while it still points at address.
func (r *userRepository) ClearEndpointIfMatches(ctx context.Context, userID, address string) error {
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND endpoint_address = ?", userID, address).
		Updates(clearedEndpoint(time.Now().UTC())).Error; err != nil {
		return wrap(err, "clear endpoint for user %s", userID)
	}
	return nil
}

func clearedEndpoint(now time.Time) map[string]any {
	return map[string]any{
		"endpoint_kind":    "",
		"endpoint_address": "",
		"endpoint_p256dh":  "",
		"endpoint_auth":    "",
		"updated_at":       now,
	}
}
