package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/identity-service/internal/domain"
)

var _ IdentityRepository = (*MemoryIdentityRepository)(nil)

// MemoryIdentityRepository keeps identities in process memory.
type MemoryIdentityRepository struct {
	lock    sync.RWMutex
	byEmail map[domain.IdentityKind]map[string]*domain.Identity
	order   map[domain.IdentityKind][]string
}

// NewMemoryIdentityRepository returns an empty in-memory store.
func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{
		byEmail: make(map[domain.IdentityKind]map[string]*domain.Identity),
		order:   make(map[domain.IdentityKind][]string),
	}
}

func (r *MemoryIdentityRepository) Create(_ context.Context, identity *domain.Identity) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	partition, ok := r.byEmail[identity.Kind]
	if !ok {
		partition = make(map[string]*domain.Identity)
		r.byEmail[identity.Kind] = partition
	}
	if _, exists := partition[identity.Email]; exists {
		return ErrDuplicateEmail
	}

	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	identity.CreatedAt = time.Now().UTC()

	stored := *identity
	partition[identity.Email] = &stored
	r.order[identity.Kind] = append(r.order[identity.Kind], identity.Email)
	return nil
}

func (r *MemoryIdentityRepository) GetByEmail(_ context.Context, kind domain.IdentityKind, email string) (*domain.Identity, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	stored, ok := r.byEmail[kind][email]
	if !ok {
		return nil, ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (r *MemoryIdentityRepository) List(_ context.Context, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	emails := r.order[kind]
	if offset < 0 || offset >= len(emails) {
		return nil, nil
	}
	end := len(emails)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]domain.Identity, 0, end-offset)
	for _, email := range emails[offset:end] {
		out = append(out, *r.byEmail[kind][email])
	}
	return out, nil
}

// Count returns the number of identities of a kind.
func (r *MemoryIdentityRepository) Count(kind domain.IdentityKind) int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.byEmail[kind])
}
