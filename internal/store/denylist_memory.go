package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/book-collections/internal/logger"
)

// memoryDenylist keeps revoked token IDs with their expiry. Expired entries
// are dropped by Sweep.
type memoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// MemoryDenylist is a [TokenDenylist] that also implements [Sweeper].
type MemoryDenylist interface {
	TokenDenylist
	Sweeper
}

func NewMemoryDenylist(logger *logger.Logger) MemoryDenylist {
	logger.Debug().Msg("creating in-memory token denylist")
	return &memoryDenylist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *memoryDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !expiresAt.After(d.now()) {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = expiresAt

	return nil
}

func (d *memoryDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	expiresAt, ok := d.revoked[tokenID]
	return ok && d.now().Before(expiresAt), nil
}

// Sweep removes entries that expired at or before now and returns how many
// were removed.
func (d *memoryDenylist) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for id, expiresAt := range d.revoked {
		if !expiresAt.After(now) {
			delete(d.revoked, id)
			removed++
		}
	}

	return removed
}
