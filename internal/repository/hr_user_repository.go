package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// HRUserRepository handles persistence for HR operator accounts.
type HRUserRepository interface {
	Create(ctx context.Context, user *domain.HRUser) error
	GetByEmail(ctx context.Context, email string) (*domain.HRUser, error)
	GetByID(ctx context.Context, id string) (*domain.HRUser, error)
}

type hrUserRepository struct {
	pool *pgxpool.Pool
}

// NewHRUserRepository instantiates the repository.
func NewHRUserRepository(pool *pgxpool.Pool) HRUserRepository {
	return &hrUserRepository{pool: pool}
}

func (r *hrUserRepository) Create(ctx context.Context, user *domain.HRUser) error {
	const query = `
        INSERT INTO hr_users (email, password_hash)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *hrUserRepository) GetByEmail(ctx context.Context, email string) (*domain.HRUser, error) {
	const query = `
        SELECT id, email, password_hash, created_at
        FROM hr_users WHERE email=$1`

	var user domain.HRUser
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *hrUserRepository) GetByID(ctx context.Context, id string) (*domain.HRUser, error) {
	const query = `
        SELECT id, email, password_hash, created_at
        FROM hr_users WHERE id=$1`

	var user domain.HRUser
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
