// Package users serves the profile endpoints: listing users, reading a
// profile and editing the caller's own name, bio and avatar. Records are
// owned by the auth plugin; this package only reads and updates them, and
// never sees a password hash.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/keyxmakerx/mesto/internal/apperror"
	"github.com/keyxmakerx/mesto/internal/plugins/auth"
)

// ProfileStore is the slice of auth.UserRepository this plugin needs.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
	List(ctx context.Context) ([]auth.User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*auth.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*auth.User, error)
}

// ProfileService defines the business logic contract for profiles.
type ProfileService interface {
	List(ctx context.Context) ([]auth.User, error)
	Get(ctx context.Context, id string) (*auth.User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*auth.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*auth.User, error)
}

// UpdateProfileInput is the validated input for PATCH /users/me.
type UpdateProfileInput struct {
	Name  string
	About string
}

// profileService implements ProfileService.
type profileService struct {
	store ProfileStore
}

// NewProfileService creates a new profile service.
func NewProfileService(store ProfileStore) ProfileService {
	return &profileService{store: store}
}

// List returns every user.
func (s *profileService) List(ctx context.Context) ([]auth.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing users: %w", err))
	}
	return users, nil
}

// Get returns one user. A malformed id is a validation error rather than a
// lookup that can only miss.
func (s *profileService) Get(ctx context.Context, id string) (*auth.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NewValidation("invalid user id")
	}
	return passThrough(s.store.FindByID(ctx, id))
}

// UpdateProfile replaces the name and bio of user id.
func (s *profileService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*auth.User, error) {
	if err := auth.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := auth.ValidateAbout(input.About); err != nil {
		return nil, err
	}
	return passThrough(s.store.UpdateProfile(ctx, id, input.Name, input.About))
}

// UpdateAvatar replaces the avatar link of user id.
func (s *profileService) UpdateAvatar(ctx context.Context, id, avatar string) (*auth.User, error) {
	if err := auth.ValidateAvatar(avatar); err != nil {
		return nil, err
	}
	return passThrough(s.store.UpdateAvatar(ctx, id, avatar))
}

// passThrough keeps domain errors from the store and wraps the rest as
// internal failures.
func passThrough(user *auth.User, err error) (*auth.User, error) {
	if err == nil {
		return user, nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return nil, err
	}
	return nil, apperror.NewInternal(err)
}
