package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers the storages need. It may return
// an empty set, for instance when revoked tokens expire in Redis by TTL.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if storages.Sweeper != nil {
		w.workers = append(w.workers, NewDenylistSweeper(storages.Sweeper, cfg.DenylistSweepInterval, logger))
	}
	return w
}

// Len returns the number of configured workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gCtx)
		})
	}
	return g.Wait()
}
