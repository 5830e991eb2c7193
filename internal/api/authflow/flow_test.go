package authflow

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	"github.com/spec-kit/identity-service/internal/service"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// countingRepo records every store call.
type countingRepo struct {
	repository.IdentityRepository
	mu    sync.Mutex
	calls int
}

func (r *countingRepo) touch() {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *countingRepo) Create(ctx context.Context, identity *domain.Identity) error {
	r.touch()
	return r.IdentityRepository.Create(ctx, identity)
}

func (r *countingRepo) GetByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Identity, error) {
	r.touch()
	return r.IdentityRepository.GetByEmail(ctx, kind, email)
}

func (r *countingRepo) List(ctx context.Context, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error) {
	r.touch()
	return r.IdentityRepository.List(ctx, kind, limit, offset)
}

type flowFixture struct {
	repo   *countingRepo
	tokens *auth.TokenManager
	core   *service.AuthService
	events []events.Event
	flow   *Flow
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	tokens, err := auth.NewTokenManager("flow-secret", time.Minute)
	require.NoError(t, err)
	repo := &countingRepo{IdentityRepository: repository.NewMemoryIdentityRepository()}
	core := service.NewAuthService(service.AuthDependencies{
		Identities: repo,
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
	})

	f := &flowFixture{repo: repo, tokens: tokens, core: core}
	dispatcher := events.NewInMemoryDispatcher()
	collect := func(_ context.Context, e events.Event) error {
		f.events = append(f.events, e)
		return nil
	}
	dispatcher.Subscribe(events.EventIdentityRegistered, collect)
	dispatcher.Subscribe(events.EventIdentityLoggedIn, collect)

	f.flow = New(Dependencies{
		Core:         core,
		Verifier:     tokens,
		Events:       dispatcher,
		BearerScheme: "Bearer",
		Transport:    TransportGRPC,
	})
	return f
}

func (f *flowFixture) adminToken(t *testing.T) string {
	t.Helper()
	_, _, err := f.core.BootstrapAdmin(context.Background(), auth.Credentials{Email: "root@x.com", Password: "root"})
	require.NoError(t, err)
	res, err := f.core.LoginAdmin(context.Background(), auth.Credentials{Email: "root@x.com", Password: "root"})
	require.NoError(t, err)
	return "Bearer " + res.Token
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.CodeOf(err))
}

func TestMissingFieldsRejectedBeforeStore(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	bad := []dto.LoginRequest{
		{},
		{Email: "a@x.com"},
		{Password: "p"},
	}

	for _, req := range bad {
		_, err := f.flow.LoginAdmin(ctx, req)
		requireCode(t, err, apperrors.CodeInvalidArgument)
		_, err = f.flow.LoginUser(ctx, req)
		requireCode(t, err, apperrors.CodeInvalidArgument)
		_, err = f.flow.RegisterUser(ctx, req)
		requireCode(t, err, apperrors.CodeInvalidArgument)
		_, err = f.flow.RegisterAdmin(ctx, dto.RegisterAdminRequest{Email: req.Email, Password: req.Password, Authorization: "Bearer x"})
		requireCode(t, err, apperrors.CodeInvalidArgument)
	}

	_, err := f.flow.RegisterAdmin(ctx, dto.RegisterAdminRequest{Email: "a@x.com", Password: "p"})
	requireCode(t, err, apperrors.CodeInvalidArgument)

	assert.Zero(t, f.repo.calls)
	assert.Empty(t, f.events)
}

func TestOverlongPasswordRejectedBeforeStore(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	req := dto.LoginRequest{Email: "long@x.com", Password: strings.Repeat("a", auth.MaxPasswordBytes+1)}

	_, err := f.flow.RegisterUser(ctx, req)
	requireCode(t, err, apperrors.CodeInvalidArgument)
	_, err = f.flow.LoginUser(ctx, req)
	requireCode(t, err, apperrors.CodeInvalidArgument)
	_, err = f.flow.RegisterAdmin(ctx, dto.RegisterAdminRequest{Email: req.Email, Password: req.Password, Authorization: "Bearer x"})
	requireCode(t, err, apperrors.CodeInvalidArgument)

	assert.Zero(t, f.repo.calls)
	assert.Empty(t, f.events)
}

func TestRegisterAdminInvalidTokenNeverMutatesStore(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	for _, authorization := range []string{"garbage", "Bearer garbage", "Basic abc", "Bearer "} {
		_, err := f.flow.RegisterAdmin(ctx, dto.RegisterAdminRequest{Email: "new@x.com", Password: "p", Authorization: authorization})
		requireCode(t, err, apperrors.CodeInvalidToken)
	}
	assert.Zero(t, f.repo.calls)
}

func TestRegisterAdminWithAdminToken(t *testing.T) {
	f := newFlowFixture(t)
	authorization := f.adminToken(t)

	res, err := f.flow.RegisterAdmin(context.Background(), dto.RegisterAdminRequest{Email: "new@x.com", Password: "p", Authorization: authorization})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", res.Identity.Email)

	verified := f.tokens.Verify(res.Token)
	require.True(t, verified.Valid)
	assert.Equal(t, domain.SubjectTypeAdmin, verified.Data.Subject)

	require.Len(t, f.events, 1)
	assert.Equal(t, events.EventIdentityRegistered, f.events[0].Type)
	require.NotNil(t, f.events[0].Actor)
	assert.Equal(t, TransportGRPC, f.events[0].Transport)
}

func TestRegisterAdminWithUserTokenIsForbidden(t *testing.T) {
	f := newFlowFixture(t)
	user, err := f.flow.RegisterUser(context.Background(), dto.LoginRequest{Email: "u@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = f.flow.RegisterAdmin(context.Background(), dto.RegisterAdminRequest{Email: "new@x.com", Password: "p", Authorization: "Bearer " + user.Token})
	requireCode(t, err, apperrors.CodeForbidden)
}

func TestLoginUserEndToEnd(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	registered, err := f.flow.RegisterUser(ctx, dto.LoginRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	res, err := f.flow.LoginUser(ctx, dto.LoginRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, registered.Identity.ID, res.Identity.ID)
	assert.Equal(t, registered.Identity.ID, f.tokens.Verify(res.Token).Data.SubjectID)

	_, err = f.flow.LoginUser(ctx, dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	requireCode(t, err, apperrors.CodeUnauthorized)

	_, err = f.flow.RegisterUser(ctx, dto.LoginRequest{Email: "a@x.com", Password: "p"})
	requireCode(t, err, apperrors.CodeConflict)
}

func TestListIdentities(t *testing.T) {
	f := newFlowFixture(t)
	authorization := f.adminToken(t)
	_, err := f.flow.RegisterUser(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	list, err := f.flow.ListIdentities(context.Background(), authorization, domain.IdentityKindUser, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a@x.com", list[0].Email)

	_, err = f.flow.ListIdentities(context.Background(), "Bearer nope", domain.IdentityKindUser, 10, 0)
	requireCode(t, err, apperrors.CodeInvalidToken)
}
