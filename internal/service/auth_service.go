package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// TokenIssuer mints bearer tokens for identities.
type TokenIssuer interface {
	Issue(payload domain.TokenPayload) (string, time.Time, error)
}

// AuthResult is returned by every successful login or registration.
type AuthResult struct {
	Identity  *domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows for admins and users.
// It never logs; every failure is returned as a *util.DomainError.
type AuthService struct {
	identities repository.IdentityRepository
	tokens     TokenIssuer
	policy     AdminRegistrationPolicy
	bcryptCost int
	decoy      *auth.PasswordDecoy
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Identities repository.IdentityRepository
	Tokens     TokenIssuer
	Policy     AdminRegistrationPolicy
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	policy := deps.Policy
	if policy == nil {
		policy = RequireAdminActor{}
	}
	// the decoy input is fixed and short, so hashing cannot fail
	decoy, _ := auth.NewPasswordDecoy(deps.BcryptCost)
	return &AuthService{
		identities: deps.Identities,
		tokens:     deps.Tokens,
		policy:     policy,
		bcryptCost: deps.BcryptCost,
		decoy:      decoy,
	}
}

// LoginAdmin authenticates an admin.
func (s *AuthService) LoginAdmin(ctx context.Context, creds auth.Credentials) (*AuthResult, error) {
	return s.login(ctx, domain.IdentityKindAdmin, creds)
}

// LoginUser authenticates an end-user.
func (s *AuthService) LoginUser(ctx context.Context, creds auth.Credentials) (*AuthResult, error) {
	return s.login(ctx, domain.IdentityKindUser, creds)
}

// RegisterUser creates a new end-user account.
func (s *AuthService) RegisterUser(ctx context.Context, creds auth.Credentials) (*AuthResult, error) {
	return s.register(ctx, domain.IdentityKindUser, creds)
}

// RegisterAdmin creates a new admin on behalf of actor. The actor payload must
// come from a token that already passed verification.
func (s *AuthService) RegisterAdmin(ctx context.Context, actor domain.TokenPayload, creds auth.Credentials) (*AuthResult, error) {
	if err := s.policy.AuthorizeAdminRegistration(actor); err != nil {
		return nil, err
	}
	return s.register(ctx, domain.IdentityKindAdmin, creds)
}

// ListIdentities returns a page of identities of kind. Only admins may list.
func (s *AuthService) ListIdentities(ctx context.Context, actor domain.TokenPayload, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error) {
	if actor.Subject != domain.SubjectTypeAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	identities, err := s.identities.List(ctx, kind, limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return identities, nil
}

func (s *AuthService) login(ctx context.Context, kind domain.IdentityKind, creds auth.Credentials) (*AuthResult, error) {
	identity, err := s.identities.GetByEmail(ctx, kind, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.decoy.Check(creds.Password)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if err := auth.ComparePassword(identity.PasswordHash, creds.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(identity)
}

func (s *AuthService) register(ctx context.Context, kind domain.IdentityKind, creds auth.Credentials) (*AuthResult, error) {
	email := normalizeEmail(creds.Email)

	if _, err := s.identities.GetByEmail(ctx, kind, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewStorageFailure(err)
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	identity := &domain.Identity{
		Kind:         kind,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	return s.issue(identity)
}

func (s *AuthService) issue(identity *domain.Identity) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(domain.PayloadFor(identity))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Identity: identity, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
