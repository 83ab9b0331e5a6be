package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "authkit:tokens"

// RedisStore keeps the triplet in a single Redis hash. One HSET per Save
// and one DEL per Clear keep the triplet atomic from the caller's
// perspective.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, tokens Tokens) error {
	expiry := ""
	if !tokens.ExpiresAt.IsZero() {
		expiry = tokens.ExpiresAt.UTC().Format(time.RFC3339)
	}

	// Pipeline the replace so readers never see a mix of old and new fields.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	pipe.HSet(ctx, s.key,
		KeyAccessToken, tokens.AccessToken,
		KeyRefreshToken, tokens.RefreshToken,
		KeyTokenExpiry, expiry,
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) (Tokens, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Tokens{}, fmt.Errorf("read tokens: %w", err)
	}
	if len(fields) == 0 {
		return Tokens{}, nil
	}

	tokens := Tokens{
		AccessToken:  fields[KeyAccessToken],
		RefreshToken: fields[KeyRefreshToken],
	}
	if raw := fields[KeyTokenExpiry]; raw != "" {
		expiry, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Tokens{}, fmt.Errorf("decode token expiry: %w", err)
		}
		tokens.ExpiresAt = expiry
	}
	return tokens, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
