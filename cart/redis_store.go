package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps cart snapshots in Redis under "cart:<session>".
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) key(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

// Load fails open: a missing key or a snapshot that no longer parses both
// come back as an empty cart.
func (s *RedisSnapshotStore) Load(ctx context.Context, sessionID string) ([]Line, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var lines []Line
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
