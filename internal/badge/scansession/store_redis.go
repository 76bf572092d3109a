package scansession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

const keyPrefix = "gatepass:scansession:"

// RedisStore persists scan sessions in Redis so every instance behind a load
// balancer sees the same single-consumption state. Redis owns expiry through
// the key TTL, so an expired token is indistinguishable from an unknown one
// and both surface as ErrNotFound.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisSession struct {
	VisitorID int64     `json:"visitor_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisStore) Put(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("scan session already expired")
	}

	raw, err := json.Marshal(redisSession{
		VisitorID: int64(sess.VisitorID),
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal scan session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.Token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("store scan session: %w", sentinel.ErrUnavailable)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, token string) (Session, error) {
	// GETDEL makes read-and-consume atomic across instances.
	raw, err := s.client.GetDel(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, sentinel.ErrNotFound
		}
		return Session{}, fmt.Errorf("consume scan session: %w", sentinel.ErrUnavailable)
	}

	var stored redisSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Session{}, fmt.Errorf("unmarshal scan session: %w", err)
	}
	return Session{
		Token:     token,
		VisitorID: id.VisitorID(stored.VisitorID),
		ExpiresAt: stored.ExpiresAt,
	}, nil
}
