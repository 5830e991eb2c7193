package domain

// SubjectType differentiates admin vs user tokens.
type SubjectType string

const (
	SubjectTypeAdmin SubjectType = "ADMIN"
	SubjectTypeUser  SubjectType = "USER"
)

// Valid reports whether the subject type is known.
func (s SubjectType) Valid() bool {
	return s == SubjectTypeAdmin || s == SubjectTypeUser
}

// TokenPayload is the identity data embedded in a bearer token.
type TokenPayload struct {
	SubjectID string      `json:"sub"`
	Subject   SubjectType `json:"subject"`
	Email     string      `json:"email"`
}

// PayloadFor builds the token payload bound to an identity.
func PayloadFor(identity *Identity) TokenPayload {
	return TokenPayload{
		SubjectID: identity.ID,
		Subject:   identity.Kind.SubjectType(),
		Email:     identity.Email,
	}
}
