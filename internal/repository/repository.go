package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/identity-service/internal/domain"
)

var (
	// ErrNotFound is returned when no identity matches the lookup.
	ErrNotFound = errors.New("identity not found")
	// ErrDuplicateEmail is returned when the email is already registered for the kind.
	ErrDuplicateEmail = errors.New("email already registered")
)

// IdentityRepository defines persistence access for admins and users.
// Create must be atomic with respect to the email uniqueness check.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Identity, error)
	List(ctx context.Context, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error)
}
