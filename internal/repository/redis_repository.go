package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/identity-service/internal/domain"
)

type redisIdentityRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisIdentityRepository stores identities as hashes with an email index.
// Email uniqueness is claimed with SETNX inside the same script that writes
// the record.
func NewRedisIdentityRepository(client *redis.Client, prefix string) IdentityRepository {
	if prefix == "" {
		prefix = "identity"
	}
	return &redisIdentityRepository{client: client, prefix: prefix}
}

func (r *redisIdentityRepository) emailKey(kind domain.IdentityKind, email string) string {
	return fmt.Sprintf("%s:%s:email:%s", r.prefix, kind, email)
}

func (r *redisIdentityRepository) recordKey(kind domain.IdentityKind, id string) string {
	return fmt.Sprintf("%s:%s:record:%s", r.prefix, kind, id)
}

func (r *redisIdentityRepository) indexKey(kind domain.IdentityKind) string {
	return fmt.Sprintf("%s:%s:index", r.prefix, kind)
}

func (r *redisIdentityRepository) seqKey(kind domain.IdentityKind) string {
	return fmt.Sprintf("%s:%s:seq", r.prefix, kind)
}

// createScript claims the email, assigns the next sequence number, writes the
// record and indexes it in one atomic step. Returns 0 when the email is taken.
// KEYS: email, record, index, seq. ARGV: id, kind, email, password_hash, created_at.
var createScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return 0
end
local seq = redis.call("INCR", KEYS[4])
redis.call("HSET", KEYS[2], "id", ARGV[1], "kind", ARGV[2], "email", ARGV[3], "password_hash", ARGV[4], "created_at", ARGV[5])
redis.call("ZADD", KEYS[3], seq, ARGV[1])
return 1
`)

func (r *redisIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	id := identity.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := time.Now().UTC()

	keys := []string{
		r.emailKey(identity.Kind, identity.Email),
		r.recordKey(identity.Kind, id),
		r.indexKey(identity.Kind),
		r.seqKey(identity.Kind),
	}
	created, err := createScript.Run(ctx, r.client, keys,
		id,
		string(identity.Kind),
		identity.Email,
		identity.PasswordHash,
		createdAt.UnixNano(),
	).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return ErrDuplicateEmail
	}

	identity.ID = id
	identity.CreatedAt = createdAt
	return nil
}

func (r *redisIdentityRepository) GetByEmail(ctx context.Context, kind domain.IdentityKind, email string) (*domain.Identity, error) {
	id, err := r.client.Get(ctx, r.emailKey(kind, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.load(ctx, kind, id)
}

func (r *redisIdentityRepository) List(ctx context.Context, kind domain.IdentityKind, limit, offset int) ([]domain.Identity, error) {
	if offset < 0 {
		offset = 0
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}

	ids, err := r.client.ZRange(ctx, r.indexKey(kind), int64(offset), stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Identity, 0, len(ids))
	for _, id := range ids {
		identity, err := r.load(ctx, kind, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *identity)
	}
	return out, nil
}

func (r *redisIdentityRepository) load(ctx context.Context, kind domain.IdentityKind, id string) (*domain.Identity, error) {
	fields, err := r.client.HGetAll(ctx, r.recordKey(kind, id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode created_at for %s: %w", id, err)
	}
	return &domain.Identity{
		ID:           fields["id"],
		Kind:         domain.IdentityKind(fields["kind"]),
		Email:        fields["email"],
		PasswordHash: fields["password_hash"],
		CreatedAt:    time.Unix(0, createdAt).UTC(),
	}, nil
}
