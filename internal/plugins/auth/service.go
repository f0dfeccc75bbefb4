package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

// Client-facing auth failure messages. Each is shared by every cause it
// covers so responses cannot be used to probe accounts or tokens.
const (
	// MsgInvalidCredentials covers both an unknown email and a wrong password.
	MsgInvalidCredentials = "invalid email or password"

	// MsgAuthRequired covers a missing header, the wrong scheme and every
	// kind of bad token.
	MsgAuthRequired = "authorization required"

	// MsgLoginSuccess is the message of a successful login response.
	MsgLoginSuccess = "logged in"
)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
	Authenticate(ctx context.Context, token string) (userID string, err error)
}

// authService implements AuthService. It keeps no per-request state.
type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register hashes the password and persists a new user. Uniqueness is left
// to the store's unique index rather than a check-then-insert, which would
// race under concurrent registrations.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Password == "" {
		return nil, apperror.NewValidation("password is required")
	}
	email := NormalizeEmail(input.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		if _, ok := err.(*apperror.AppError); ok {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		Name:         input.Name,
		About:        input.About,
		Avatar:       input.Avatar,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.Is(err, apperror.TypeConflict) || apperror.Is(err, apperror.TypeValidation) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered", slog.String("user_id", user.ID))

	return user, nil
}

// Login authenticates a user by email and password and issues a session
// token. An unknown email and a wrong password return the same error.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.repo.FindByEmailWithHash(ctx, NormalizeEmail(input.Email))
	if err != nil && !apperror.Is(err, apperror.TypeNotFound) {
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	// Always run one comparison so an unknown email costs the same as a
	// wrong password.
	hash := dummyPasswordHash
	if user != nil {
		hash = user.PasswordHash
	}
	matched, verr := s.hasher.Verify(ctx, input.Password, hash)
	if verr != nil {
		return "", apperror.NewInternal(fmt.Errorf("verifying password: %w", verr))
	}

	if user == nil || !matched {
		slog.Info("login failed")
		return "", apperror.NewUnauthorized(MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return token, nil
}

// Authenticate resolves a bearer token to its subject ID. Every failure is
// the same unauthorized error.
func (s *authService) Authenticate(_ context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", apperror.NewUnauthorized(MsgAuthRequired)
	}
	return userID, nil
}
