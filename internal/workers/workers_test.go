// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/mock"
	"github.com/MKhiriev/book-collections/internal/store"
)

// funcWorker adapts a function to the Worker interface.
type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	var calls atomic.Int32
	worker := funcWorker(func(context.Context) error {
		calls.Add(1)
		return nil
	})

	ws := &Workers{workers: []Worker{worker, worker, worker}}
	require.NoError(t, ws.Run(context.Background()))

	assert.EqualValues(t, 3, calls.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}
	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := funcWorker(func(context.Context) error { return boom })
	blocking := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	ws := &Workers{workers: []Worker{blocking, failing}}
	assert.ErrorIs(t, ws.Run(context.Background()), boom)
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)

	ws := NewWorkers(&store.Storages{Sweeper: mock.NewMockSweeper(ctrl)}, config.Workers{DenylistSweepInterval: time.Second}, logger.Nop())
	assert.Equal(t, 1, ws.Len())

	ws = NewWorkers(&store.Storages{}, config.Workers{}, logger.Nop())
	assert.Zero(t, ws.Len())
}

func TestDenylistSweeper_SweepsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockSweeper(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sweeps atomic.Int32
	sweeper.EXPECT().Sweep(gomock.Any()).DoAndReturn(func(time.Time) int {
		if sweeps.Add(1) == 2 {
			cancel()
		}
		return 1
	}).MinTimes(2)

	worker := NewDenylistSweeper(sweeper, 5*time.Millisecond, logger.Nop())

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestDenylistSweeper_WithMemoryDenylist(t *testing.T) {
	denylist := store.NewMemoryDenylist(logger.Nop())
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(50*time.Millisecond)))

	worker := NewDenylistSweeper(denylist, time.Hour, logger.Nop())
	worker.now = func() time.Time { return time.Now().Add(time.Hour) }

	assert.Equal(t, 1, denylist.Sweep(worker.now()))
	assert.Zero(t, denylist.Sweep(worker.now()))
}

func TestNewDenylistSweeper_DefaultInterval(t *testing.T) {
	worker := NewDenylistSweeper(nil, 0, logger.Nop())
	assert.Equal(t, time.Minute, worker.interval)
}
