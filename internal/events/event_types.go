package events

import (
	"time"

	"github.com/spec-kit/identity-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIdentityRegistered EventType = "identity_registered"
	EventIdentityLoggedIn   EventType = "identity_logged_in"
)

// Actor identifies who triggered an admin registration.
type Actor struct {
	Type domain.SubjectType `json:"type"`
	ID   string             `json:"id"`
}

// Event represents an identity event emitted after a successful operation.
type Event struct {
	ID         string              `json:"id"`
	Type       EventType           `json:"type"`
	Kind       domain.IdentityKind `json:"kind"`
	IdentityID string              `json:"identity_id"`
	Email      string              `json:"email"`
	Transport  string              `json:"transport"`
	Actor      *Actor              `json:"actor,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}
