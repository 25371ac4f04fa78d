package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisStorage is the rueidis-backed token storage.
type RedisStorage struct {
	redis rueidis.Client
}

const redisTokenPrefix = "auth:token:"

// NewRedisStorage creates a new RedisStorage.
func NewRedisStorage(redis rueidis.Client) *RedisStorage {
	return &RedisStorage{redis: redis}
}

func (s *RedisStorage) Get(ctx context.Context, token string) (TokenInfo, error) {
	reply := s.redis.Do(ctx, s.redis.B().Get().Key(redisTokenPrefix+token).Build())
	if err := reply.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return TokenInfo{}, ErrNotFound
		}

		return TokenInfo{}, err
	}

	raw, err := reply.AsBytes()
	if err != nil {
		return TokenInfo{}, fmt.Errorf("read token info: %w", err)
	}

	var info TokenInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return TokenInfo{}, fmt.Errorf("unmarshal token info: %w", err)
	}

	return info, nil
}

func (s *RedisStorage) Create(ctx context.Context, info TokenInfo) (string, error) {
	if err := info.Validate(); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 64)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(tokenBytes)

	raw, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("marshal token info: %w", err)
	}

	reply := s.redis.Do(ctx, s.redis.B().Set().
		Key(redisTokenPrefix+token).
		Value(rueidis.BinaryString(raw)).
		ExSeconds(DefaultTokenExpire).
		Build())
	if err := reply.Error(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisStorage) Delete(ctx context.Context, token string) error {
	reply := s.redis.Do(ctx, s.redis.B().Del().Key(redisTokenPrefix+token).Build())
	return reply.Error()
}

// DeleteByAccount scans every stored token and revokes the ones that
// belong to the account. The scan is linear in the number of live
// sessions, which is acceptable for a once-per-account operation.
func (s *RedisStorage) DeleteByAccount(ctx context.Context, accountID int64) error {
	var cursor uint64

	for {
		cursorReply := s.redis.Do(ctx, s.redis.B().Scan().Cursor(cursor).Match(redisTokenPrefix+"*").Count(100).Build())
		if err := cursorReply.Error(); err != nil {
			return fmt.Errorf("list tokens: %w", err)
		}

		scanEntry, err := cursorReply.AsScanEntry()
		if err != nil {
			return fmt.Errorf("parse token keys: %w", err)
		}

		for _, key := range scanEntry.Elements {
			getReply := s.redis.Do(ctx, s.redis.B().Get().Key(key).Build())
			if err := getReply.Error(); err != nil {
				if rueidis.IsRedisNil(err) {
					continue // expired between scan and get
				}

				return fmt.Errorf("get token info: %w", err)
			}

			raw, err := getReply.AsBytes()
			if err != nil {
				return fmt.Errorf("read token info: %w", err)
			}

			var info TokenInfo
			if err := json.Unmarshal(raw, &info); err != nil {
				return fmt.Errorf("unmarshal token info: %w", err)
			}

			if info.AccountID != accountID {
				continue
			}

			if err := s.redis.Do(ctx, s.redis.B().Del().Key(key).Build()).Error(); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
		}

		if scanEntry.Cursor == 0 {
			break
		}
		cursor = scanEntry.Cursor
	}

	return nil
}

var _ Storage = (*RedisStorage)(nil)
