package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

// bcryptCost is the fixed work factor for new hashes.
const bcryptCost = 10

// dummyPasswordHash is compared against when a login email is unknown, so
// both failure paths pay for one bcrypt comparison. It is built at package
// init so the first unknown-email login costs the same as later ones.
var dummyPasswordHash = mustDummyHash()

func mustDummyHash() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("mesto-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("generating dummy bcrypt hash: %v", err))
	}
	return string(hash)
}

// PasswordHasher hashes and verifies passwords. Both operations are
// CPU-bound and honour ctx by returning early when it is cancelled.
type PasswordHasher interface {
	// Hash produces a self-describing salted hash of the password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches hash. An unparseable hash is
	// a mismatch, not an error.
	Verify(ctx context.Context, password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default work factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

// Hash creates a bcrypt hash of the password. The salt and cost are encoded
// in the returned string.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		done <- result{hash, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if errors.Is(r.err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.NewValidation("password must be at most 72 bytes")
		}
		if r.err != nil {
			return "", fmt.Errorf("bcrypt hash: %w", r.err)
		}
		return string(r.hash), nil
	}
}

// Verify checks a plaintext password against a bcrypt hash. bcrypt compares
// digests in constant time.
func (h *BcryptHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	done := make(chan error, 1)
	go func() {
		done <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-done:
		return err == nil, nil
	}
}
