// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/book-collections/internal/logger"
)

func TestMemoryDenylist(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewMemoryDenylist(logger.Nop()).(*memoryDenylist)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, d.Revoke(ctx, "already-expired", now.Add(-time.Second)))

	revoked, err := d.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = d.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryDenylist_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewMemoryDenylist(logger.Nop()).(*memoryDenylist)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "b", now.Add(time.Hour)))

	assert.Equal(t, 0, d.Sweep(now))
	assert.Equal(t, 1, d.Sweep(now.Add(time.Minute)))
	assert.Equal(t, 1, d.Sweep(now.Add(2*time.Hour)))
	assert.Empty(t, d.revoked)
}

func TestMemoryDenylist_CanceledContext(t *testing.T) {
	d := NewMemoryDenylist(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, d.Revoke(ctx, "a", time.Now().Add(time.Hour)), context.Canceled)
	_, err := d.IsRevoked(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	d := NewRedisDenylist(client, logger.Nop())
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, d.Revoke(ctx, "already-expired", time.Now().Add(-time.Second)))

	key := revokedKeyPrefix + "live"
	assert.True(t, mr.Exists(key))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(key).Seconds(), 5)
	assert.False(t, mr.Exists(revokedKeyPrefix+"already-expired"))

	tests := []struct {
		tokenID string
		want    bool
	}{
		{"live", true},
		{"already-expired", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.tokenID, func(t *testing.T) {
			revoked, err := d.IsRevoked(ctx, tt.tokenID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, revoked)
		})
	}

	mr.FastForward(time.Hour + time.Minute)
	assert.False(t, mr.Exists(key))
	revoked, err := d.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylist_Unavailable(t *testing.T) {
	d := NewRedisDenylist(unreachableRedis(t), logger.Nop())
	ctx := context.Background()

	err := d.Revoke(ctx, "jti", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = d.IsRevoked(ctx, "jti")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRedisDenylist_ExpiredTokenIsNotStored(t *testing.T) {
	d := NewRedisDenylist(unreachableRedis(t), logger.Nop())

	// no round trip happens, so the unreachable server does not matter
	assert.NoError(t, d.Revoke(context.Background(), "jti", time.Now().Add(-time.Minute)))
}

func TestConnectRedis_Errors(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "redis://:bad-port")
	assert.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = ConnectRedis(ctx, "127.0.0.1:1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
