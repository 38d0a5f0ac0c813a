package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

const (
	keyPrefix     = "idempotency:"
	pendingMarker = "pending"
)

// IdempotencyStore keeps request results in Redis. A key is reserved with
// SET NX holding a pending marker, then overwritten with the numeric result.
type IdempotencyStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

var _ repository.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore creates a store whose keys expire after ttl.
func NewIdempotencyStore(client goredis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Begin(ctx context.Context, key string) (*int64, error) {
	k := keyPrefix + key
	reserved, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if reserved {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainErrors.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if val == pendingMarker {
		return nil, domainErrors.ErrDuplicateRequest
	}

	result, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt idempotency value %q: %w", val, err)
	}
	return &result, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, result int64) error {
	return s.client.Set(ctx, keyPrefix+key, strconv.FormatInt(result, 10), s.ttl).Err()
}

func (s *IdempotencyStore) Abort(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// NoopStore never deduplicates; it is used when Redis is not configured.
type NoopStore struct{}

var _ repository.IdempotencyStore = NoopStore{}

func (NoopStore) Begin(context.Context, string) (*int64, error) { return nil, nil }
func (NoopStore) Complete(context.Context, string, int64) error { return nil }
func (NoopStore) Abort(context.Context, string) error           { return nil }
