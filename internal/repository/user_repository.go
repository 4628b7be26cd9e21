package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/utils"
)

// UserRepo provides account storage for authentication.  Passwords
// are hashed with bcrypt before insertion; the plain text never
// reaches the database.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, password_hash, role, created_at`

func scanUser(scan func(dest ...any) error) (*model.User, error) {
	var u model.User
	var createdAt string
	if err := scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create hashes the password and inserts a new user, returning the
// generated id.  Duplicate usernames and emails are rejected with
// ErrUsernameExists / ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, bcryptCost int) (uint64, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrUsernameExists
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, username, email, hash, role, fmtTime(nowUTC()))
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername returns the user with the given login name.  Absence
// surfaces as sql.ErrNoRows for the auth handler to map onto invalid
// credentials.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	row := r.db.QueryRowContext(ctx, q, username)
	return scanUser(row.Scan)
}

// GetByID returns the user with the given id, or (nil, nil) when it
// does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
