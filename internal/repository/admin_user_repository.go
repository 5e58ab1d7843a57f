package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recrent-shop/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAdminUserNotFound      = errors.New("admin user not found")
	ErrAdminUserAlreadyExists = errors.New("admin user with this username already exists")
)

const uniqueViolation = "23505"

// AdminUserRepository defines the interface for admin credential data access
type AdminUserRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) error
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	FindByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type adminUserRepository struct {
	db *sql.DB
}

// NewAdminUserRepository creates a new instance of AdminUserRepository
func NewAdminUserRepository(db *sql.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

// Create inserts a new admin user and fills its id and creation time
func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAdminUserAlreadyExists
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}

func (r *adminUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.AdminUser, error) {
	query := `SELECT id, username, password_hash, last_login, created_at FROM admin_users WHERE ` + where

	user := &domain.AdminUser{}
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&lastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

// FindByUsername retrieves an admin user by username
func (r *adminUserRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	user, err := r.findOne(ctx, "username = $1", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to find admin user by username: %w", err)
	}
	return user, nil
}

// FindByID retrieves an admin user by ID
func (r *adminUserRepository) FindByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	user, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to find admin user by ID: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash
func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.execOne(ctx, `UPDATE admin_users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

// UpdateLastLogin records a successful login
func (r *adminUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, `UPDATE admin_users SET last_login = $2 WHERE id = $1`, id, at)
}

func (r *adminUserRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update admin user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAdminUserNotFound
	}

	return nil
}
