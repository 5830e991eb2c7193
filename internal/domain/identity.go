package domain

import "time"

// IdentityKind partitions the identity store.
type IdentityKind string

const (
	IdentityKindAdmin IdentityKind = "ADMIN"
	IdentityKindUser  IdentityKind = "USER"
)

// SubjectType returns the token subject for identities of this kind.
func (k IdentityKind) SubjectType() SubjectType {
	if k == IdentityKindAdmin {
		return SubjectTypeAdmin
	}
	return SubjectTypeUser
}

// Identity is a persisted admin or user record.
type Identity struct {
	ID           string
	Kind         IdentityKind
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
