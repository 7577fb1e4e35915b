package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps an existing client. A non-positive ttl uses 24h.
func New(client *redis.Client, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Storage{client: client, ttl: ttl}
}

func (s *Storage) SaveSession(ctx context.Context, chatID int64, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, buildSessionKey(chatID), data, s.ttl).Err()
}

// GetSession returns the chat's session, or a fresh default one when the
// chat has none or it expired.
func (s *Storage) GetSession(ctx context.Context, chatID int64) (*Session, error) {
	data, err := s.client.Get(ctx, buildSessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal failure: %w", err)
	}
	return &session, nil
}

func (s *Storage) DropSession(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, buildSessionKey(chatID)).Err()
}

func buildSessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}
