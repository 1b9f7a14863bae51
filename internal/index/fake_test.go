package index

import (
	"context"
	"fmt"
	"sync"

	datasetDb "github.com/go-sod/kdrange/internal/dataset/database"
	"github.com/go-sod/kdrange/internal/dataset/model"
	"github.com/google/uuid"
)

// memStore stands in for the bolt store.
type memStore struct {
	mtx      sync.Mutex
	datasets map[uuid.UUID]model.Dataset
	err      error
	// findAll calls
	scans int
}

func newMemStore(datasets ...model.Dataset) *memStore {
	s := &memStore{datasets: map[uuid.UUID]model.Dataset{}}
	for _, ds := range datasets {
		s.datasets[ds.ID] = ds
	}
	return s
}

func (s *memStore) deps() pullDependencies {
	return pullDependencies{
		fetchDatasets:  s.findAll,
		fetchDataset:   s.find,
		fetchKeys:      s.keys,
		storeDataset:   s.store,
		deleteDataset:  s.delete,
		deleteDatasets: s.deleteMany,
	}
}

func (s *memStore) findAll(_ context.Context, filter datasetDb.FilterFn) ([]model.Dataset, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.scans++
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Dataset
	for _, ds := range s.datasets {
		if filter == nil || filter(ds) {
			out = append(out, ds)
		}
	}
	return out, nil
}

func (s *memStore) find(_ context.Context, id uuid.UUID) (model.Dataset, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.err != nil {
		return model.Dataset{}, s.err
	}
	ds, ok := s.datasets[id]
	if !ok {
		return model.Dataset{}, fmt.Errorf("%s: %w", id, datasetDb.ErrNotFound)
	}
	return ds, nil
}

func (s *memStore) keys() ([]uuid.UUID, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	keys := make([]uuid.UUID, 0, len(s.datasets))
	for id := range s.datasets {
		keys = append(keys, id)
	}
	return keys, nil
}

func (s *memStore) store(_ context.Context, ds model.Dataset) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.err != nil {
		return s.err
	}
	s.datasets[ds.ID] = ds
	return nil
}

func (s *memStore) delete(_ context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.datasets, id)
	return nil
}

func (s *memStore) deleteMany(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := s.delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.datasets)
}

func (s *memStore) scanCount() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.scans
}

func (s *memStore) has(id uuid.UUID) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	_, ok := s.datasets[id]
	return ok
}
