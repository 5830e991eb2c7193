package service

import (
	"context"
	"errors"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// BootstrapAdmin creates the first admin from startup configuration. It is a
// no-op when the admin already exists. The registration policy is skipped
// because no token can exist before the first admin.
func (s *AuthService) BootstrapAdmin(ctx context.Context, creds auth.Credentials) (*domain.Identity, bool, error) {
	if err := creds.Validate(); err != nil {
		return nil, false, apperrors.NewValidationError("invalid bootstrap admin credentials", map[string]any{"error": err.Error()})
	}

	existing, err := s.identities.GetByEmail(ctx, domain.IdentityKindAdmin, normalizeEmail(creds.Email))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, apperrors.NewStorageFailure(err)
	}

	result, err := s.register(ctx, domain.IdentityKindAdmin, creds)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeConflict {
			found, getErr := s.identities.GetByEmail(ctx, domain.IdentityKindAdmin, normalizeEmail(creds.Email))
			if getErr != nil {
				return nil, false, apperrors.NewStorageFailure(getErr)
			}
			return found, false, nil
		}
		return nil, false, err
	}
	return result.Identity, true, nil
}
