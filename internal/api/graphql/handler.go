package graphqlapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// Request is a GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler executes GraphQL requests posted to fiber. The bearer header is
// expected in the user context, see auth.AuthMiddleware.
type Handler struct {
	schema graphql.Schema
}

// NewHandler builds a handler for schema.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Serve runs one GraphQL request. When the request produced errors the HTTP
// status follows the first error that carries one.
func (h *Handler) Serve(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Query == "" {
		return apperrors.NewValidationError("query is required", nil)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})

	return c.Status(responseStatus(result)).JSON(result)
}

func responseStatus(result *graphql.Result) int {
	for _, e := range result.Errors {
		if status, ok := e.Extensions["status"].(int); ok && status > 0 {
			return status
		}
	}
	return fiber.StatusOK
}
