package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisStore implements Store on Redis. Carts are stored as JSON under
// cart:<session id> with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) GetCart(ctx context.Context, sessionID string) (models.Cart, error) {
	key := cartKeyPrefix + sessionID

	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart := models.NewCart()
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (s *RedisStore) SetCart(ctx context.Context, sessionID string, cart models.Cart) error {
	key := cartKeyPrefix + sessionID

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return nil
}
