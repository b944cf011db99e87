package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/book-collections/internal/logger"
)

const revokedKeyPrefix = "books:revoked:"

// redisDenylist stores revoked token IDs as keys that expire together with
// the token.
type redisDenylist struct {
	client *redis.Client
	logger *logger.Logger
}

// ConnectRedis initializes a Redis client from a redis:// URL or a plain
// host:port and checks that the server answers.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %w", ErrStoreUnavailable, err)
	}

	return client, nil
}

func NewRedisDenylist(client *redis.Client, logger *logger.Logger) TokenDenylist {
	logger.Debug().Msg("creating redis token denylist")
	return &redisDenylist{client: client, logger: logger}
}

// Revoke marks tokenID as revoked until expiresAt. Tokens that already
// expired are not recorded.
func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return unavailable("revoke token", err)
	}
	return nil
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, unavailable("check revoked token", err)
	}
	return n > 0, nil
}
