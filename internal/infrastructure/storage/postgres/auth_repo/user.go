// Package auth_repo provides PostgreSQL implementations for auth repositories.
// Users live in the control-plane database, so the repository holds its own
// pool instead of reading one from the tenant context.
package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/internal/core/apperror"
	"stockpile/internal/domain/auth"
)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new user repository on the control-plane pool.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, login_id, email, password_hash, email_verified,
	verification_code, verification_code_expiry,
	created_at, updated_at
`

// Create creates a new user and fills in the assigned ID.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (
			login_id, email, password_hash, email_verified,
			verification_code, verification_code_expiry,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		user.LoginID, user.Email, user.PasswordHash, user.EmailVerified,
		user.VerificationCode, user.VerificationCodeExpiry,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "login_id", user.LoginID).WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user auth.User
	err := pgxscan.Get(ctx, r.pool, &user, query, userID)
	if pgxscan.NotFound(err) {
		return nil, apperror.NewNotFound("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetByLogin retrieves user by login ID or email.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*auth.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE login_id = $1 OR email = $2
	`

	var user auth.User
	err := pgxscan.Get(ctx, r.pool, &user, query, strings.TrimSpace(login), strings.ToLower(strings.TrimSpace(login)))
	if pgxscan.NotFound(err) {
		return nil, apperror.NewNotFound("user", login)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	query := `
		UPDATE users
		SET email = $2,
			password_hash = $3,
			email_verified = $4,
			verification_code = $5,
			verification_code_expiry = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.EmailVerified,
		user.VerificationCode, user.VerificationCodeExpiry,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID)
	}

	return nil
}

// ExistsByLogin checks whether the login ID is taken.
func (r *UserRepo) ExistsByLogin(ctx context.Context, loginID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM users WHERE login_id = $1 LIMIT 1`, loginID)
}

// ExistsByEmail checks whether the email is taken.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email)
}

func (r *UserRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, query, arg).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
