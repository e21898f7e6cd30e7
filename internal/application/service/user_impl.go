package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"medreminder/internal/application/dto"
	"medreminder/internal/domain/constant"
	"medreminder/internal/domain/entity"
	"medreminder/internal/domain/repository"
	appErrors "medreminder/internal/pkg/errors"
	"medreminder/internal/pkg/logger"
)

type userService struct {
	userRepo repository.UserRepository
	support  EndpointSupport
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
// support may be nil, in which case every known kind is accepted.
func NewUserService(userRepo repository.UserRepository, support EndpointSupport, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		support:  support,
		log:      log,
	}
}

// RegisterEndpoint validates and stores the user's notification endpoint.
func (s *userService) RegisterEndpoint(ctx context.Context, userID string, req dto.RegisterEndpointRequest) (*dto.EndpointResponse, error) {
	ep, err := s.parseEndpoint(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpsertEndpoint(ctx, userID, ep)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to register %s endpoint for user %s", ep.Kind, userID), err)
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Registered %s endpoint for user %s", ep.Kind, userID))

	stored, _ := user.Endpoint()
	resp := dto.ToEndpointResponse(stored)
	return &resp, nil
}

// GetEndpoint returns the registered endpoint.
func (s *userService) GetEndpoint(ctx context.Context, userID string) (*dto.EndpointResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ep, ok := user.Endpoint()
	if !ok {
		return nil, fmt.Errorf("%w: user %s has no endpoint", appErrors.ErrNotFound, userID)
	}
	resp := dto.ToEndpointResponse(ep)
	return &resp, nil
}

// ClearEndpoint stops delivery to the user.
func (s *userService) ClearEndpoint(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearEndpoint(ctx, userID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to clear endpoint for user %s", userID), err)
		return err
	}
	s.log.Info(fmt.Sprintf("Cleared endpoint for user %s", userID))
	return nil
}

// ResolveUser maps a transport identity to the user id.
func (s *userService) ResolveUser(ctx context.Context, kind constant.EndpointKind, address string) (string, error) {
	user, err := s.userRepo.FindByEndpoint(ctx, kind, address)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *userService) parseEndpoint(req dto.RegisterEndpointRequest) (entity.Endpoint, error) {
	kind := constant.EndpointKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return entity.Endpoint{}, fmt.Errorf("%w: unknown endpoint kind %q", appErrors.ErrValidation, req.Kind)
	}
	if s.support != nil && !s.support.Supports(kind) {
		return entity.Endpoint{}, fmt.Errorf("%w: %s notifications are not configured", appErrors.ErrValidation, kind)
	}

	ep := entity.Endpoint{Kind: kind, Address: strings.TrimSpace(req.Address)}
	if ep.Address == "" {
		return entity.Endpoint{}, fmt.Errorf("%w: endpoint address is required", appErrors.ErrValidation)
	}

	switch kind {
	case constant.EndpointWebPush:
		u, err := url.Parse(ep.Address)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return entity.Endpoint{}, fmt.Errorf("%w: web push endpoint must be an absolute URL", appErrors.ErrValidation)
		}
		if req.Keys.P256dh == "" || req.Keys.Auth == "" {
			return entity.Endpoint{}, fmt.Errorf("%w: web push subscriptions need p256dh and auth keys", appErrors.ErrValidation)
		}
		ep.P256dh = req.Keys.P256dh
		ep.Auth = req.Keys.Auth
	case constant.EndpointTelegram:
		if _, err := strconv.ParseInt(ep.Address, 10, 64); err != nil {
			return entity.Endpoint{}, fmt.Errorf("%w: telegram chat id must be numeric", appErrors.ErrValidation)
		}
	}
	return ep, nil
}
