// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/store"
)

// DenylistSweeper periodically drops revoked-token entries whose tokens have
// expired.
type DenylistSweeper struct {
	sweeper  store.Sweeper
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func NewDenylistSweeper(sweeper store.Sweeper, interval time.Duration, logger *logger.Logger) *DenylistSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DenylistSweeper{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (d *DenylistSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info().Dur("interval", d.interval).Msg("denylist sweeper started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("denylist sweeper stopped")
			return nil
		case <-ticker.C:
			if removed := d.sweeper.Sweep(d.now()); removed > 0 {
				d.logger.Debug().Int("removed", removed).Msg("expired revoked tokens swept")
			}
		}
	}
}
