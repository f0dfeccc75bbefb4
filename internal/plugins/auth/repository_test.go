package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

func TestPrepareForInsert(t *testing.T) {
	u := &User{Email: " A@B.com ", PasswordHash: "$2a$10$hash"}
	require.NoError(t, prepareForInsert(u))

	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, DefaultName, u.Name)
	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err)
}

func TestPrepareForInsert_KeepsID(t *testing.T) {
	u := &User{ID: "fixed-id", Email: "a@b.com", PasswordHash: "$2a$10$hash"}
	require.NoError(t, prepareForInsert(u))
	assert.Equal(t, "fixed-id", u.ID)
}

func TestPrepareForInsert_Rejects(t *testing.T) {
	tests := map[string]*User{
		"no hash":    {Email: "a@b.com"},
		"bad email":  {Email: "nope", PasswordHash: "h"},
		"short name": {Name: "x", Email: "a@b.com", PasswordHash: "h"},
		"long email": {Email: strings.Repeat("a", 250) + "@b.com", PasswordHash: "h"},
		"long avatar": {
			Email:        "a@b.com",
			Avatar:       "https://example.com/" + strings.Repeat("a", 3000),
			PasswordHash: "h",
		},
	}
	for name, u := range tests {
		t.Run(name, func(t *testing.T) {
			err := prepareForInsert(u)
			assert.True(t, apperror.Is(err, apperror.TypeValidation), "got %v", err)
			assert.Empty(t, u.ID)
		})
	}
}

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry 'a@b.com' for key 'uq_users_email'"}

	assert.True(t, isDuplicateEntry(dup))
	assert.True(t, isDuplicateEntry(fmt.Errorf("inserting user: %w", dup)))
	assert.False(t, isDuplicateEntry(&mysql.MySQLError{Number: 1146}))
	assert.False(t, isDuplicateEntry(errors.New("Duplicate entry")))
}
