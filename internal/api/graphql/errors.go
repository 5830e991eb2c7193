package graphqlapi

import (
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// Error is the resolver failure surfaced in a GraphQL response. Only the
// public message is rendered; extensions carry the code and an HTTP status.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]any {
	return map[string]any{
		"code":   e.Code,
		"status": e.Status,
	}
}

func toGraphQLError(err error) error {
	de := apperrors.ToDomainError(err)
	if de == nil {
		return nil
	}
	return &Error{Code: de.Code, Status: de.HTTPStatus, Message: de.Message}
}
