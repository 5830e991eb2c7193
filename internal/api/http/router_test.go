package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/identity-service/internal/api/authflow"
	graphqlapi "github.com/spec-kit/identity-service/internal/api/graphql"
	"github.com/spec-kit/identity-service/internal/api/http/handlers"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/observability"
	"github.com/spec-kit/identity-service/internal/repository"
	"github.com/spec-kit/identity-service/internal/service"
)

type stubPinger map[string]error

func (s stubPinger) Ping(context.Context) map[string]error { return s }

func newApp(t *testing.T, stores handlers.Pinger) (*fiber.App, *observability.Metrics) {
	t.Helper()

	tokens, err := auth.NewTokenManager("http-secret", time.Minute)
	require.NoError(t, err)
	core := service.NewAuthService(service.AuthDependencies{
		Identities: repository.NewMemoryIdentityRepository(),
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
	})
	flow := authflow.New(authflow.Dependencies{
		Core:         core,
		Verifier:     tokens,
		BearerScheme: "Bearer",
		Transport:    authflow.TransportGraphQL,
	})
	schema, err := graphqlapi.NewSchema(flow)
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("identity-service", "test", "memory", stores),
		Metrics:        handlers.NewMetricsHandler(metrics),
		GraphQL:        graphqlapi.NewHandler(schema),
		AuthMiddleware: auth.NewAuthMiddleware("Authorization"),
	})
	return app, metrics
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHealthLive(t *testing.T) {
	app, _ := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", decode(t, resp.Body)["status"])
}

func TestHealthReady(t *testing.T) {
	app, _ := newApp(t, stubPinger{"redis": nil})
	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app, _ = newApp(t, stubPinger{"postgres": errors.New("connection refused")})
	resp, err = app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGraphQLRouteAndMetrics(t *testing.T) {
	app, _ := newApp(t, nil)

	body := `{"query":"mutation { registerUser(email: \"u@x.com\", password: \"pw\") { token user { email } } }"}`
	req := httptest.NewRequest("POST", "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	var snap observability.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.NotEmpty(t, snap.Requests)
	assert.Equal(t, "/graphql|POST|200", snap.Requests[0].Key)
}

func TestEmptyGraphQLQueryIsBadRequest(t *testing.T) {
	app, metrics := newApp(t, nil)

	req := httptest.NewRequest("POST", "/graphql", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errBody := decode(t, resp.Body)["error"].(map[string]any)
	assert.Equal(t, "INVALID_ARGUMENT", errBody["code"])
	require.Len(t, metrics.Snapshot().Errors, 1)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	app, _ := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp.Body)["error"].(map[string]any)["code"])
}
