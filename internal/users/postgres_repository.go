package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores users in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool DB) *PostgresRepository {
	if pool == nil {
		panic("users: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Ensure returns the user for the email, creating it on first sight.
func (r *PostgresRepository) Ensure(ctx context.Context, req *EnsureUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := r.GetByEmail(ctx, req.Email)
	if err == nil {
		return user, nil
	}
	if err != ErrUserNotFound {
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, credits)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, credits, created_on
	`
	row := r.pool.QueryRow(ctx, query, req.Name, req.Email, starterCredits)
	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("users: insert failed: %w", err)
	}
	return created, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, credits, created_on
		FROM users
		WHERE email = $1
	`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("users: select failed: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Credits,
		&user.CreatedOn,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
