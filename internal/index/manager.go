package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-sod/kdrange/internal/cache"
	"github.com/go-sod/kdrange/internal/database"
	datasetDb "github.com/go-sod/kdrange/internal/dataset/database"
	"github.com/go-sod/kdrange/internal/dataset/model"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/metrics"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

var (
	ErrNotFound = fmt.Errorf("index: dataset not found")
	ErrClosed   = fmt.Errorf("index: shutting down")
)

// Contract for returning the Manager instance
type ProvideFn func() (Manager, error)

// Manager holds one tree per stored dataset and keeps it in sync with the store.
type Manager interface {
	Ingester
	Searcher
	// Run loads the stored datasets and starts the retention scheduler
	Run(context.Context) error
	Stop()
}

type Ingester interface {
	Put(ctx context.Context, name string, points []geom.Point) (Info, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Searcher interface {
	// Search returns the points of the dataset inside the closed box [min, max]
	Search(ctx context.Context, id uuid.UUID, min, max geom.Point) ([]geom.Point, error)
	Stats() []Info
}

// Info describes an indexed dataset.
type Info struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Dimensions int       `json:"dimensions"`
	Len        int       `json:"len"`
	Depth      int       `json:"depth"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Abstractions for getting dependencies
type (
	fetchDatasetsFn  func(context.Context, datasetDb.FilterFn) ([]model.Dataset, error)
	fetchDatasetFn   func(context.Context, uuid.UUID) (model.Dataset, error)
	fetchKeysFn      func() ([]uuid.UUID, error)
	storeDatasetFn   func(context.Context, model.Dataset) error
	deleteDatasetFn  func(context.Context, uuid.UUID) error
	deleteDatasetsFn func(context.Context, []uuid.UUID) error
)

type pullDependencies struct {
	fetchDatasets  fetchDatasetsFn
	fetchDataset   fetchDatasetFn
	fetchKeys      fetchKeysFn
	storeDataset   storeDatasetFn
	deleteDataset  deleteDatasetFn
	deleteDatasets deleteDatasetsFn
}

type Option func(*manager)

func WithMaxDepth(n int) Option {
	return func(m *manager) {
		m.opts.maxDepth = n
	}
}

func WithMaxDatasets(n int) Option {
	return func(m *manager) {
		m.opts.maxDatasets = n
	}
}

func WithMaxStorageTime(t time.Duration) Option {
	return func(m *manager) {
		m.opts.maxStorageTime = t
	}
}

func WithRebuildDBTime(t time.Duration) Option {
	return func(m *manager) {
		m.opts.rebuildDBTime = t
	}
}

func WithCache(c cache.Cache) Option {
	return func(m *manager) {
		m.cache = c
	}
}

// FromConfig turns the env config into options.
func FromConfig(cfg *Config) []Option {
	return []Option{
		WithMaxDepth(cfg.MaxDepth),
		WithMaxDatasets(cfg.MaxDatasets),
		WithMaxStorageTime(cfg.MaxStorageTime),
		WithRebuildDBTime(cfg.RebuildDBTime),
	}
}

type options struct {
	maxDepth       int
	maxDatasets    int
	maxStorageTime time.Duration
	rebuildDBTime  time.Duration
}

func New(db *database.DB, opts ...Option) (*manager, error) {
	if db == nil {
		return nil, fmt.Errorf("database instance is not created")
	}
	store := datasetDb.New(db)
	return newManager(pullDependencies{
		fetchDatasets:  store.FindAll,
		fetchDataset:   store.Find,
		fetchKeys:      store.Keys,
		storeDataset:   store.Store,
		deleteDataset:  store.Delete,
		deleteDatasets: store.DeleteMany,
	}, opts...), nil
}

func newManager(deps pullDependencies, opts ...Option) *manager {
	m := &manager{
		deps:    deps,
		cache:   cache.Noop{},
		entries: map[uuid.UUID]entry{},
		now:     time.Now,
	}
	for _, f := range opts {
		f(m)
	}
	m.scheduler = newDBScheduler(dbSchedulerConfig{
		maxDatasets:    m.opts.maxDatasets,
		maxStorageTime: m.opts.maxStorageTime,
		rebuildDBTime:  m.opts.rebuildDBTime,
	}, deps, m.evict)
	return m
}

type entry struct {
	info model.Dataset
	tree *kdtree.Tree
	// fixed at build time
	dims, len, depth int
}

func (e entry) Info() Info {
	return Info{
		ID:         e.info.ID,
		Name:       e.info.Name,
		Dimensions: e.dims,
		Len:        e.len,
		Depth:      e.depth,
		CreatedAt:  e.info.CreatedAt,
	}
}

type manager struct {
	mtx sync.RWMutex

	opts      options
	deps      pullDependencies
	cache     cache.Cache
	scheduler *dbScheduler

	// Trees by dataset id, datasets carry no points here
	entries map[uuid.UUID]entry
	closed  bool
	now     func() time.Time

	cancel func()
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if err := m.bulkLoad(ctx); err != nil {
		cancel()
		return fmt.Errorf("can not start index manager: %w", err)
	}
	if m.opts.rebuildDBTime > 0 {
		go m.scheduler.schedule(ctx)
	}
	go func() {
		<-ctx.Done()
		m.mtx.Lock()
		m.closed = true
		m.mtx.Unlock()
	}()
	return nil
}

func (m *manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// bulkLoad builds trees for every stored dataset
func (m *manager) bulkLoad(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	datasets, err := m.deps.fetchDatasets(ctx, nil)
	if err != nil {
		return fmt.Errorf("error fetching all datasets: %w", err)
	}

	for _, ds := range datasets {
		e, err := m.build(ctx, ds)
		if err != nil {
			// datasets stored under a looser depth limit are skipped
			logger.Errorf("skip dataset %s: %v", ds.ID, err)
			continue
		}
		m.mtx.Lock()
		m.entries[ds.ID] = e
		m.mtx.Unlock()
	}

	n := m.count()
	metrics.RecordDatasets(ctx, n)
	logger.Infof("index loaded %d of %d datasets", n, len(datasets))
	return nil
}

func (m *manager) build(ctx context.Context, ds model.Dataset) (entry, error) {
	start := time.Now()
	var opts []kdtree.Option
	if m.opts.maxDepth > 0 {
		opts = append(opts, kdtree.WithMaxDepth(m.opts.maxDepth))
	}
	tree, err := kdtree.Build(ds.Items(), opts...)
	if err != nil {
		return entry{}, err
	}
	metrics.RecordBuild(ctx, start)

	ds.Points = nil
	return entry{
		info:  ds,
		tree:  tree,
		dims:  tree.Dimensions(),
		len:   tree.Len(),
		depth: tree.Depth(),
	}, nil
}

// Put builds a tree for a new dataset, persists the dataset and publishes the tree.
// Nothing is stored when the tree can not be built.
func (m *manager) Put(ctx context.Context, name string, points []geom.Point) (Info, error) {
	if m.isClosed() {
		return Info{}, ErrClosed
	}

	ds := model.NewDataset(name, points, m.now())
	e, err := m.build(ctx, ds)
	if err != nil {
		return Info{}, fmt.Errorf("build dataset %q: %w", name, err)
	}
	if err := m.deps.storeDataset(ctx, ds); err != nil {
		return Info{}, fmt.Errorf("store dataset %q: %w", name, err)
	}

	m.mtx.Lock()
	m.entries[ds.ID] = e
	n := len(m.entries)
	m.mtx.Unlock()

	metrics.RecordDatasets(ctx, n)
	logging.FromContext(ctx).Infof("indexed dataset %s (%s), %d points", ds.ID, name, len(points))
	return e.Info(), nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	if m.isClosed() {
		return ErrClosed
	}
	m.mtx.RLock()
	_, ok := m.entries[id]
	m.mtx.RUnlock()
	if !ok {
		// not indexed, it may still be stored when bulk load skipped it
		if _, err := m.deps.fetchDataset(ctx, id); err != nil {
			if errors.Is(err, datasetDb.ErrNotFound) {
				return fmt.Errorf("%s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("find dataset %s: %w", id, err)
		}
	}

	if err := m.deps.deleteDataset(ctx, id); err != nil {
		return fmt.Errorf("delete dataset %s: %w", id, err)
	}
	m.evict(ctx, id)
	return nil
}

// evict drops trees whose datasets have left the store.
func (m *manager) evict(ctx context.Context, ids ...uuid.UUID) {
	m.mtx.Lock()
	for _, id := range ids {
		delete(m.entries, id)
	}
	n := len(m.entries)
	m.mtx.Unlock()
	metrics.RecordDatasets(ctx, n)
}

func (m *manager) Search(ctx context.Context, id uuid.UUID, min, max geom.Point) ([]geom.Point, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	m.mtx.RLock()
	e, ok := m.entries[id]
	closed := m.closed
	m.mtx.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err := validateRange(e.tree.Dimensions(), min, max); err != nil {
		return nil, err
	}

	key := cache.Key(id, min, max)
	points, hit, err := m.cache.Get(ctx, key)
	if err != nil {
		logger.Warnf("cache get: %v", err)
	}
	if hit {
		if err := metrics.RecordSearch(ctx, start, metrics.CacheHit, len(points)); err != nil {
			logger.Debugf("record search: %v", err)
		}
		return points, nil
	}

	found, err := e.tree.SearchRange(min, max)
	if err != nil {
		return nil, err
	}
	points = make([]geom.Point, len(found))
	for i := range found {
		points[i] = found[i].(geom.Point)
	}

	if err := m.cache.Set(ctx, key, points); err != nil {
		logger.Warnf("cache set: %v", err)
	}
	if err := metrics.RecordSearch(ctx, start, metrics.CacheMiss, len(points)); err != nil {
		logger.Debugf("record search: %v", err)
	}
	return points, nil
}

// Stats lists the indexed datasets, oldest first.
func (m *manager) Stats() []Info {
	m.mtx.RLock()
	infos := make([]Info, 0, len(m.entries))
	for _, e := range m.entries {
		infos = append(infos, e.Info())
	}
	m.mtx.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID.String() < infos[j].ID.String()
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

func (m *manager) count() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.entries)
}

func (m *manager) isClosed() bool {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.closed
}

// validateRange checks the box before the cache is consulted.
func validateRange(dims int, min, max geom.Point) error {
	if min.Dimensions() != dims {
		return fmt.Errorf("range has %d dimensions, dataset has %d: %w", min.Dimensions(), dims, kdtree.ErrInvalidRange)
	}
	if err := (geom.Rect{Min: min, Max: max}).Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, kdtree.ErrInvalidRange)
	}
	return nil
}
