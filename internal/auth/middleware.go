package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type authorizationKey struct{}

// AuthMiddleware copies the configured bearer header into the request's user
// context. It never rejects a request; resolvers decide whether the header is
// required and verify it themselves.
type AuthMiddleware struct {
	header string
}

// NewAuthMiddleware constructs middleware reading header (Authorization when empty).
func NewAuthMiddleware(header string) *AuthMiddleware {
	if header == "" {
		header = fiber.HeaderAuthorization
	}
	return &AuthMiddleware{header: header}
}

// Handle stores the raw header value, if any.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if value := c.Get(m.header); value != "" {
		c.SetUserContext(WithAuthorization(c.UserContext(), value))
	}
	return c.Next()
}

// WithAuthorization returns ctx carrying the raw authorization header.
func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationKey{}, header)
}

// AuthorizationFromContext retrieves the raw header stored by the middleware.
func AuthorizationFromContext(ctx context.Context) (string, bool) {
	header, ok := ctx.Value(authorizationKey{}).(string)
	return header, ok && header != ""
}
