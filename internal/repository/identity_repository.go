package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/identity-service/internal/domain"
)

const uniqueViolation = "23505"

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO identities (kind, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		identity.Kind,
		identity.Email,
		identity.PasswordHash,
	).Scan(&identity.ID, &identity.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func (r *identityRepository) GetByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Identity, error) {
	const query = `
        SELECT id, kind, email, password_hash, created_at
        FROM identities WHERE kind=$1 AND email=$2`

	var identity domain.Identity
	if err := r.pool.QueryRow(ctx, query, kind, email).Scan(
		&identity.ID,
		&identity.Kind,
		&identity.Email,
		&identity.PasswordHash,
		&identity.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) List(ctx context.Context, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error) {
	const query = `
        SELECT id, kind, email, password_hash, created_at
        FROM identities WHERE kind=$1
        ORDER BY created_at, id
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		var identity domain.Identity
		if err := rows.Scan(
			&identity.ID,
			&identity.Kind,
			&identity.Email,
			&identity.PasswordHash,
			&identity.CreatedAt,
		); err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return identities, rows.Err()
}
