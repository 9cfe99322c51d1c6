// Package session stores server-correlated session state in Redis. Each
// session is one key; deleting the key is what logout and role switching
// actually do. No TTL is set: the session lifecycle is bounded by an explicit
// revoke or by the store going away, not by a timer.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/nextgen-care/clinic-service/internal/config"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Sessions"),
	}
}

func (s *RedisStore) Save(ctx context.Context, id string, p domain.Principal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = s.cb.Execute(func() (any, error) {
		return nil, s.client.Set(ctx, keyPrefix+id, payload, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("%w: save session: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, id string) (domain.Principal, error) {
	out, err := s.cb.Execute(func() (any, error) {
		val, err := s.client.Get(ctx, keyPrefix+id).Result()
		if errors.Is(err, redis.Nil) {
			// An absent session is a miss, not a backend failure; it must
			// not count toward tripping the breaker.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: find session: %v", domain.ErrStoreUnavailable, err)
	}
	if out == nil {
		return domain.Principal{}, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}

	var p domain.Principal
	if err := json.Unmarshal([]byte(out.(string)), &p); err != nil {
		return domain.Principal{}, fmt.Errorf("session %q: corrupt payload: %v", id, err)
	}
	return p, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.cb.Execute(func() (any, error) {
		return s.client.Del(ctx, keyPrefix+id).Result()
	})
	if err != nil {
		return fmt.Errorf("%w: delete session: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
