// Package authflow holds the request handling shared by the gRPC and GraphQL
// adapters: input validation, bearer verification, core dispatch and the
// conversion of results into transport-neutral DTOs.
//
// Every error returned by Flow is a *util.DomainError with a public message;
// adapters only translate it into their wire representation.
package authflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/service"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// Transport labels used in audit events.
const (
	TransportGRPC    = "grpc"
	TransportGraphQL = "graphql"
)

const (
	invalidArgumentsMessage = "Invalid arguments."
	invalidTokenMessage     = "Authorization argument is not valid."
)

// Core is the authentication core consumed by the adapters.
type Core interface {
	LoginAdmin(ctx context.Context, creds auth.Credentials) (*service.AuthResult, error)
	LoginUser(ctx context.Context, creds auth.Credentials) (*service.AuthResult, error)
	RegisterAdmin(ctx context.Context, actor domain.TokenPayload, creds auth.Credentials) (*service.AuthResult, error)
	RegisterUser(ctx context.Context, creds auth.Credentials) (*service.AuthResult, error)
	ListIdentities(ctx context.Context, actor domain.TokenPayload, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error)
}

// TokenVerifier checks presented bearer tokens.
type TokenVerifier interface {
	Verify(token string) auth.Verification
}

// Dependencies wires a Flow.
type Dependencies struct {
	Core         Core
	Verifier     TokenVerifier
	Events       events.Dispatcher
	BearerScheme string
	Transport    string
}

// Flow runs one auth operation per call. It holds no per-request state.
type Flow struct {
	core      Core
	verifier  TokenVerifier
	events    events.Dispatcher
	scheme    string
	transport string
	now       func() time.Time
}

// New builds a Flow.
func New(deps Dependencies) *Flow {
	return &Flow{
		core:      deps.Core,
		verifier:  deps.Verifier,
		events:    deps.Events,
		scheme:    deps.BearerScheme,
		transport: deps.Transport,
		now:       time.Now,
	}
}

// LoginAdmin validates input and authenticates an admin.
func (f *Flow) LoginAdmin(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	creds, err := credentials(req)
	if err != nil {
		return nil, err
	}
	result, err := f.core.LoginAdmin(ctx, creds)
	return f.finish(ctx, events.EventIdentityLoggedIn, nil, result, err)
}

// LoginUser validates input and authenticates a user.
func (f *Flow) LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	creds, err := credentials(req)
	if err != nil {
		return nil, err
	}
	result, err := f.core.LoginUser(ctx, creds)
	return f.finish(ctx, events.EventIdentityLoggedIn, nil, result, err)
}

// RegisterUser validates input and creates a user.
func (f *Flow) RegisterUser(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	creds, err := credentials(req)
	if err != nil {
		return nil, err
	}
	result, err := f.core.RegisterUser(ctx, creds)
	return f.finish(ctx, events.EventIdentityRegistered, nil, result, err)
}

// RegisterAdmin validates input, verifies the caller's bearer token and
// creates an admin on the caller's behalf. The store is not touched unless
// the token verifies.
func (f *Flow) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidateRegisterAdmin(req.Email, req.Password, req.Authorization); err != nil {
		return nil, invalidArguments(err)
	}

	actor, err := f.Authorize(req.Authorization)
	if err != nil {
		return nil, err
	}

	creds := auth.Credentials{Email: req.Email, Password: req.Password}
	result, err := f.core.RegisterAdmin(ctx, actor, creds)
	return f.finish(ctx, events.EventIdentityRegistered, &actor, result, err)
}

// ListIdentities returns a page of identities for an authorized admin.
func (f *Flow) ListIdentities(ctx context.Context, authorization string, kind domain.IdentityKind, limit, offset int) ([]dto.IdentityView, error) {
	actor, err := f.Authorize(authorization)
	if err != nil {
		return nil, err
	}

	identities, err := f.core.ListIdentities(ctx, actor, kind, limit, offset)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	out := make([]dto.IdentityView, 0, len(identities))
	for i := range identities {
		out = append(out, view(&identities[i]))
	}
	return out, nil
}

// Authorize strips the configured bearer scheme and verifies the token.
func (f *Flow) Authorize(authorization string) (domain.TokenPayload, error) {
	token, ok := auth.StripBearer(authorization, f.scheme)
	if !ok {
		return domain.TokenPayload{}, apperrors.NewInvalidToken(invalidTokenMessage)
	}
	verified := f.verifier.Verify(token)
	if !verified.Valid || verified.Data == nil {
		return domain.TokenPayload{}, apperrors.NewInvalidToken(invalidTokenMessage)
	}
	return *verified.Data, nil
}

func (f *Flow) finish(ctx context.Context, eventType events.EventType, actor *domain.TokenPayload, result *service.AuthResult, err error) (*dto.AuthResponse, error) {
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Kind:       result.Identity.Kind,
		IdentityID: result.Identity.ID,
		Email:      result.Identity.Email,
		Transport:  f.transport,
		Timestamp:  f.now().UTC(),
	}
	if actor != nil {
		event.Actor = &events.Actor{Type: actor.Subject, ID: actor.SubjectID}
	}
	if f.events != nil {
		// audit delivery is best effort
		_ = f.events.Publish(ctx, event)
	}

	return &dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Identity:  view(result.Identity),
	}, nil
}

func credentials(req dto.LoginRequest) (auth.Credentials, error) {
	if err := auth.ValidateCredentials(req.Email, req.Password); err != nil {
		return auth.Credentials{}, invalidArguments(err)
	}
	return auth.Credentials{Email: req.Email, Password: req.Password}, nil
}

func invalidArguments(err error) error {
	return apperrors.NewValidationError(invalidArgumentsMessage, map[string]any{"fields": err.Error()})
}

func view(identity *domain.Identity) dto.IdentityView {
	return dto.IdentityView{
		ID:        identity.ID,
		Email:     identity.Email,
		CreatedAt: identity.CreatedAt,
	}
}
