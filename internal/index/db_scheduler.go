package index

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-sod/kdrange/internal/dataset/model"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/google/uuid"
)

// Scheduler options
type dbSchedulerConfig struct {
	maxDatasets    int
	maxStorageTime time.Duration
	rebuildDBTime  time.Duration
}

type evictFn func(context.Context, ...uuid.UUID)

func newDBScheduler(config dbSchedulerConfig, deps pullDependencies, evict evictFn) *dbScheduler {
	return &dbScheduler{opts: config, deps: deps, evict: evict, now: time.Now}
}

// The scheduler removes datasets from the store, and their trees from memory,
// once they are too old or once there are too many of them.
type dbScheduler struct {
	opts  dbSchedulerConfig
	deps  pullDependencies
	evict evictFn
	now   func() time.Time
}

// processOutdated deletes every dataset older than maxStorageTime.
func (s *dbScheduler) processOutdated(ctx context.Context) error {
	outdated, err := s.deps.fetchDatasets(ctx, func(ds model.Dataset) bool {
		return s.now().Sub(ds.CreatedAt) > s.opts.maxStorageTime
	})
	if err != nil {
		return fmt.Errorf("unable find outdated datasets: %v", err)
	}
	return s.remove(ctx, outdated)
}

// processOverSize keeps the maxDatasets newest datasets and deletes the rest.
func (s *dbScheduler) processOverSize(ctx context.Context) error {
	keys, err := s.deps.fetchKeys()
	if err != nil {
		return fmt.Errorf("unable count datasets: %v", err)
	}
	if len(keys) <= s.opts.maxDatasets {
		return nil
	}

	// @TODO FindAll decodes the points of every dataset only to read CreatedAt
	datasets, err := s.deps.fetchDatasets(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable find datasets: %v", err)
	}
	if len(datasets) <= s.opts.maxDatasets {
		return nil
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].CreatedAt.Before(datasets[j].CreatedAt)
	})
	return s.remove(ctx, datasets[:len(datasets)-s.opts.maxDatasets])
}

func (s *dbScheduler) remove(ctx context.Context, datasets []model.Dataset) error {
	if len(datasets) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(datasets))
	for i := range datasets {
		ids[i] = datasets[i].ID
	}
	if err := s.deps.deleteDatasets(ctx, ids); err != nil {
		return fmt.Errorf("unable delete datasets: %v", err)
	}
	s.evict(ctx, ids...)
	logging.FromContext(ctx).Infof("retention removed %d datasets", len(ids))
	return nil
}

func (s *dbScheduler) rebuild(ctx context.Context) {
	logger := logging.FromContext(ctx)
	if s.opts.maxStorageTime > 0 {
		if err := s.processOutdated(ctx); err != nil {
			logger.Errorf("unable db rebuild outdated: %v", err)
		}
	}
	if s.opts.maxDatasets > 0 {
		if err := s.processOverSize(ctx); err != nil {
			logger.Errorf("unable db rebuild size: %v", err)
		}
	}
}

// Scheduler for running data cleanup functions in the DB
func (s *dbScheduler) schedule(ctx context.Context) {
	ticker := time.NewTicker(s.opts.rebuildDBTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.rebuild(ctx)
		case <-ctx.Done():
			return
		}
	}
}
