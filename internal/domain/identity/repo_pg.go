package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userCols = "id, username, email, password_hash, created_at"

// UserRepoPG is the PostgreSQL implementation of UserRepository.
type UserRepoPG struct {
	pool *pgxpool.Pool
}

// NewUserRepoPG creates a UserRepoPG backed by the given pool.
func NewUserRepoPG(pool *pgxpool.Pool) *UserRepoPG {
	return &UserRepoPG{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a user. A duplicate email maps to ErrEmailTaken via the
// unique constraint, covering the race the service pre-check leaves open.
func (r *UserRepoPG) Create(ctx context.Context, user *User) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO users (id, username, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`,
		user.ID, user.Username, user.Email, user.PasswordHash,
	)
	if err := row.Scan(&user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns the user with the given email, or ErrNotFound.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userCols+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *UserRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userCols+" FROM users WHERE id = $1", id)
	return scanUser(row)
}
