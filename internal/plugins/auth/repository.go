package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

// mysqlErrDuplicateEntry is the server error number for a unique index
// violation (ER_DUP_ENTRY).
const mysqlErrDuplicateEntry = 1062

// Client-facing messages for store failures.
const (
	msgDuplicateEmail = "a user with this email is already registered"
	msgUserNotFound   = "user with the given id was not found"
)

// UserRepository defines the data access contract for user records.
// All SQL lives in the concrete implementation -- no SQL leaks out.
//
// Every read except FindByEmailWithHash leaves PasswordHash empty.
type UserRepository interface {
	// Create validates the record, fills defaults and an ID, and inserts it.
	// A taken email is reported as a conflict by the unique index, so two
	// concurrent inserts of one email cannot both succeed.
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmailWithHash(ctx context.Context, email string) (*User, error)

	// Profile maintenance, used by the users plugin.
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*User, error)
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row into the users table.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	if err := prepareForInsert(user); err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, about, avatar, email, password_hash)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.About,
		user.Avatar,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict(msgDuplicateEmail)
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by ID without the password hash.
// Returns apperror.NotFound if no user exists with this ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, name, about, avatar, email FROM users WHERE id = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.About,
		&user.Avatar,
		&user.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmailWithHash retrieves a user by email including the password hash.
// This is the only query that selects password_hash; it exists for login.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmailWithHash(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, about, avatar, email, password_hash
	          FROM users WHERE email = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, NormalizeEmail(email)).Scan(
		&user.ID,
		&user.Name,
		&user.About,
		&user.Avatar,
		&user.Email,
		&user.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}

// List returns every user ordered by creation time, without hashes.
func (r *userRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, name, about, avatar, email FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdateProfile sets name and about and returns the updated record.
func (r *userRepository) UpdateProfile(ctx context.Context, id, name, about string) (*User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateAbout(about); err != nil {
		return nil, err
	}

	query := `UPDATE users SET name = ?, about = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, name, about, id); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	// RowsAffected is 0 for an unchanged row in MariaDB, so existence is
	// decided by the re-read.
	return r.FindByID(ctx, id)
}

// UpdateAvatar sets the avatar link and returns the updated record.
func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*User, error) {
	if err := ValidateAvatar(avatar); err != nil {
		return nil, err
	}

	query := `UPDATE users SET avatar = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, avatar, id); err != nil {
		return nil, fmt.Errorf("updating avatar: %w", err)
	}

	return r.FindByID(ctx, id)
}

// prepareForInsert normalises, defaults and validates a user before it is
// written, and assigns an ID if the caller did not.
func prepareForInsert(user *User) error {
	user.Email = NormalizeEmail(user.Email)
	applyDefaults(user)
	if err := ValidateProfile(user); err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return apperror.NewValidation("password is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

// isDuplicateEntry reports whether err is a MariaDB unique-key violation.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry
}
