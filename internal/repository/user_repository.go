package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// UserRepository handles account persistence.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	const query = `INSERT INTO users (id, open_id, name, email, password_hash, role, edu_role, account_status, created_at, updated_at)
        VALUES (:id, :open_id, :name, :email, :password_hash, :role, :edu_role, :account_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID fetches an account by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	const query = `SELECT id, open_id, name, email, password_hash, role, edu_role, account_status, last_signed_in, created_at, updated_at
        FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches an account by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	const query = `SELECT id, open_id, name, email, password_hash, role, edu_role, account_status, last_signed_in, created_at, updated_at
        FROM users WHERE LOWER(email) = LOWER($1)`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all accounts, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	const query = `SELECT id, open_id, name, email, password_hash, role, edu_role, account_status, last_signed_in, created_at, updated_at
        FROM users ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole sets both role fields on an account.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.UserRole, eduRole models.EduRole) error {
	const query = `UPDATE users SET role = $1, edu_role = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, role, eduRole, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAccountStatus moves an account through the approval workflow.
func (r *UserRepository) UpdateAccountStatus(ctx context.Context, id string, status models.AccountStatus) error {
	const query = `UPDATE users SET account_status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TouchLastSignedIn records a successful login.
func (r *UserRepository) TouchLastSignedIn(ctx context.Context, id string) error {
	const query = `UPDATE users SET last_signed_in = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("touch last sign-in: %w", err)
	}
	return nil
}
