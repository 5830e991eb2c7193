package service

import (
	"fmt"

	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// AdminRegistrationPolicy decides whether a verified actor may create admins.
type AdminRegistrationPolicy interface {
	AuthorizeAdminRegistration(actor domain.TokenPayload) error
}

// AllowAnyToken accepts any actor holding a verified token.
type AllowAnyToken struct{}

func (AllowAnyToken) AuthorizeAdminRegistration(actor domain.TokenPayload) error {
	if actor.SubjectID == "" {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return nil
}

// RequireAdminActor only accepts actors that are themselves admins.
type RequireAdminActor struct{}

func (RequireAdminActor) AuthorizeAdminRegistration(actor domain.TokenPayload) error {
	if actor.SubjectID == "" {
		return apperrors.NewUnauthorized("unauthorized")
	}
	if actor.Subject != domain.SubjectTypeAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// PolicyFromConfig maps AUTH_ADMIN_REGISTRATION_POLICY to a policy.
func PolicyFromConfig(name string) (AdminRegistrationPolicy, error) {
	switch name {
	case config.AdminPolicyAnyToken:
		return AllowAnyToken{}, nil
	case config.AdminPolicyAdminOnly, "":
		return RequireAdminActor{}, nil
	default:
		return nil, fmt.Errorf("unknown admin registration policy %q", name)
	}
}
